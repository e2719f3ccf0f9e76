package types

type Symptom struct {
  ID              int             `gorm:"primaryKey;autoIncrement" json:"id"`
  UserID          int             `gorm:"index;column:user_id" json:"userId"`
  Severity        int             `gorm:"column:severity;not null" json:"severity"`
  Description     string          `gorm:"column:description;type:text;not null" json:"description"`
  Triggers        *string         `gorm:"column:triggers;type:text" json:"triggers"`
  MedicationUsed  *string         `gorm:"column:medication_used;type:text" json:"medication_used"`
  Timestamp       string          `gorm:"column:timestamp;not null" json:"timestamp"`
}

func (Symptom) TableName() string {
  return "symptoms"
}

// Clone returns a copy that shares no pointers with s.
func (s Symptom) Clone() Symptom {
  out := s
  if s.Triggers != nil {
    t := *s.Triggers
    out.Triggers = &t
  }
  if s.MedicationUsed != nil {
    m := *s.MedicationUsed
    out.MedicationUsed = &m
  }
  return out
}
