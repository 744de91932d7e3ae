package models

import "time"

// EntryType is the direction of money for a category or transaction.
type EntryType string

const (
	Income  EntryType = "income"
	Expense EntryType = "expense"
)

// Valid reports whether t is one of the known entry types.
func (t EntryType) Valid() bool {
	return t == Income || t == Expense
}

// Category is a named, directional grouping owned by one user.
type Category struct {
	ID        string    `json:"id"`
	UserID    string    `json:"-"`
	Name      string    `json:"name"`
	Type      EntryType `json:"type"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DefaultCategory describes a category seeded for every new user.
type DefaultCategory struct {
	Name string
	Type EntryType
}

// DefaultCategories is the fixed set created at registration.
var DefaultCategories = []DefaultCategory{
	{Name: "Salary", Type: Income},
	{Name: "Freelance", Type: Income},
	{Name: "Investments", Type: Income},
	{Name: "Other Income", Type: Income},

	{Name: "Housing", Type: Expense},
	{Name: "Transportation", Type: Expense},
	{Name: "Food & Dining", Type: Expense},
	{Name: "Utilities", Type: Expense},
	{Name: "Insurance", Type: Expense},
	{Name: "Healthcare", Type: Expense},
	{Name: "Entertainment", Type: Expense},
	{Name: "Shopping", Type: Expense},
	{Name: "Education", Type: Expense},
	{Name: "Other Expenses", Type: Expense},
}
