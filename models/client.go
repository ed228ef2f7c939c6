package models

import (
	"gorm.io/gorm"
)

// Client is a guest account. Staff-entered bookings may lazily create one
// from contact details, in which case the password is random and the
// username is derived from the email address.
type Client struct {
	gorm.Model

	FullName     string `gorm:"size:150" json:"fullName"`
	Email        string `gorm:"uniqueIndex;size:150" json:"email"`
	Username     string `gorm:"uniqueIndex;size:100" json:"username"`
	PasswordHash string `gorm:"column:password_hash;size:100" json:"-"`
	Phone        string `gorm:"size:50" json:"phone,omitempty"`
	Country      string `gorm:"size:100" json:"country,omitempty"`

	IsActive    bool   `gorm:"column:is_active;default:true" json:"isActive"`
	VerifyToken string `gorm:"column:verify_token;size:128" json:"-"`
	ResetToken  string `gorm:"column:reset_token;size:128" json:"-"`
}
