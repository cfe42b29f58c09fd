package model

// User data model. Password holds a bcrypt hash and is never serialized.
type User struct {
	ID       int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Email    string `json:"email" gorm:"uniqueIndex;not null"`
	Password string `json:"-"`
}

func (User) TableName() string {
	return "users"
}
