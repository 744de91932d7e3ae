package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Period is the recurrence of a budget.
type Period string

const (
	Monthly Period = "monthly"
	Yearly  Period = "yearly"
)

// Valid reports whether p is one of the known periods.
func (p Period) Valid() bool {
	return p == Monthly || p == Yearly
}

// Budget caps expense transactions in one category over a period.
type Budget struct {
	ID         string          `json:"id"`
	UserID     string          `json:"-"`
	CategoryID string          `json:"categoryId"`
	Amount     decimal.Decimal `json:"amount"`
	Period     Period          `json:"period"`
	StartDate  time.Time       `json:"startDate"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

// Progress is derived on every read and never stored.
type Progress struct {
	Spent          decimal.Decimal `json:"spent"`
	Remaining      decimal.Decimal `json:"remaining"`
	PercentageUsed decimal.Decimal `json:"percentageUsed"`
}

// BudgetProgress pairs a budget with its current progress.
type BudgetProgress struct {
	Budget
	Progress
}
