package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Goal represents a savings target the user wants to reach by a date.
type Goal struct {
	Base
	UserID      string          `gorm:"type:uuid;not null;index" json:"user_id"`
	Title       string          `gorm:"size:255;not null" json:"title"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	Date        time.Time       `gorm:"not null" json:"date"`
}
