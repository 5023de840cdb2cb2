package models

import (
	"time"
)

const (
	RoleAdmin   = "admin"
	RoleTeacher = "teacher"
)

type User struct {
	ID           string `gorm:"primaryKey;type:uuid" json:"id"`
	Email        string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Name         string `gorm:"size:255;not null" json:"name"`
	Role         string `gorm:"size:20;not null;default:'teacher'" json:"role"`
	Department   string `gorm:"size:120" json:"department,omitempty"`
	PasswordHash []byte `json:"-"`

	// Registered push target for admin notifications.
	FCMToken string `gorm:"size:512" json:"-"`

	LastLoginAt *time.Time `gorm:"index" json:"lastLoginAt,omitempty"`
	LastSeenAt  *time.Time `gorm:"index" json:"lastSeenAt,omitempty"`
	LoginCount  int64      `gorm:"not null;default:0" json:"loginCount"`
	LastLoginIP string     `gorm:"size:45" json:"-"`
	LastLoginUA string     `gorm:"size:255" json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (User) TableName() string { return "users" }

func (u *User) IsAdminRole() bool { return u.Role == RoleAdmin }
