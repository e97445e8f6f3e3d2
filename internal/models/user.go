package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// User represents the user model in the database
type User struct {
	Base
	Username       string          `gorm:"uniqueIndex;not null" json:"username"`
	Email          string          `gorm:"uniqueIndex;not null" json:"email"`
	Password       string          `gorm:"not null" json:"-"`
	FirstName      string          `json:"first_name"`
	LastName       string          `json:"last_name"`
	DOB            *time.Time      `json:"dob,omitempty"`
	AvatarURL      string          `json:"avatar_url,omitempty"`
	InitialBalance decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"initial_balance"`

	Categories   []Category    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"categories,omitempty"`
	Transactions []Transaction `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"transactions,omitempty"`
	Goals        []Goal        `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"goals,omitempty"`
}
