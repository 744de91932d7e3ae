package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a single dated monetary event.
type Transaction struct {
	ID          string          `json:"id"`
	UserID      string          `json:"-"`
	Amount      decimal.Decimal `json:"amount"`
	Type        EntryType       `json:"type"`
	CategoryID  string          `json:"categoryId"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}
