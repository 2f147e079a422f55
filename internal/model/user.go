package model

import "time"

// User identity record. Password holds the bcrypt hash and never leaves
// the server.
type User struct {
	ID        string `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Username  string `gorm:"type:varchar(150);uniqueIndex:ux_user_username;not null" json:"username"`
	Email     string `gorm:"type:varchar(254)" json:"email"`
	Password  string `gorm:"type:varchar(100);not null" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}

func (User) TableName() string { return "users" }
