package types

type User struct {
  ID                  int                       `gorm:"primaryKey;autoIncrement" json:"id"`
  Username            string                    `gorm:"uniqueIndex;not null;column:username" json:"username"`
  Password            string                    `gorm:"not null;column:password" json:"-"`
}

func (User) TableName() string {
  return "users"
}
