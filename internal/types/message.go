package types

// Message is one side of a chat turn. IsBot marks assistant-authored content.
type Message struct {
  ID          int             `gorm:"primaryKey;autoIncrement" json:"id"`
  UserID      int             `gorm:"index;column:user_id" json:"userId"`
  Content     string          `gorm:"column:content;type:text;not null" json:"content"`
  IsBot       bool            `gorm:"column:is_bot;not null" json:"isBot"`
  Timestamp   string          `gorm:"column:timestamp;not null" json:"timestamp"`
}

func (Message) TableName() string {
  return "messages"
}
