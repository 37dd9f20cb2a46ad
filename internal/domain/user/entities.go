package user

import (
	"errors"
	"time"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")
)

// User is an operator account of the console. Table: users.
type User struct {
	ID           uint64    `gorm:"primaryKey;column:id" json:"-"`
	UserID       string    `gorm:"column:user_id;size:32;uniqueIndex:ux_users_user_id" json:"id"`
	Name         string    `gorm:"column:name;size:255;not null" json:"name"`
	Email        string    `gorm:"column:email;size:255;not null;uniqueIndex:ux_users_email" json:"email"`
	PasswordHash string    `gorm:"column:password_hash;size:72;not null" json:"-"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime" json:"-"`
}

func (User) TableName() string { return "users" }
