package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents a financial transaction in the system.
// Amount is a signed exact decimal; the sign convention follows the
// category type rather than being enforced here.
type Transaction struct {
	Base
	UserID      string          `gorm:"type:uuid;not null;index" json:"user_id"`
	CategoryID  string          `gorm:"type:uuid;not null;index" json:"category_id"`
	Title       string          `gorm:"size:100;not null" json:"title"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	Date        time.Time       `gorm:"not null" json:"date"`

	Category Category `gorm:"foreignKey:CategoryID" json:"category"`
}
