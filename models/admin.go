package models

import (
	"gorm.io/gorm"
)

// Admin is a staff account (owner, manager, receptionist, cleaner).
type Admin struct {
	gorm.Model

	FullName     string `gorm:"size:150" json:"fullName"`
	Username     string `gorm:"uniqueIndex;size:100" json:"username"`
	PasswordHash string `gorm:"column:password_hash;size:100" json:"-"`
	Role         string `gorm:"size:50;default:receptionist" json:"role"`
}
