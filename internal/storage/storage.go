package storage

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/LeviOP/wealthwise/internal/models"
)

// ErrNotFound indicates a record does not exist or is not owned by the caller.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists indicates a uniqueness conflict.
var ErrAlreadyExists = errors.New("record already exists")

// UserStore captures persistence operations for credentials.
type UserStore interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
	FindByID(ctx context.Context, id string) (models.User, error)
}

// CategoryFilter narrows ListCategories. Zero values match everything.
type CategoryFilter struct {
	Type models.EntryType
}

// CategoryStore persists categories. Every method is scoped to userID.
type CategoryStore interface {
	CreateCategory(ctx context.Context, category models.Category) (models.Category, error)
	CreateCategories(ctx context.Context, categories []models.Category) error
	GetCategory(ctx context.Context, userID, id string) (models.Category, error)
	ListCategories(ctx context.Context, userID string, filter CategoryFilter) ([]models.Category, error)
	UpdateCategory(ctx context.Context, category models.Category) (models.Category, error)
	DeleteCategory(ctx context.Context, userID, id string) error
}

// TransactionFilter narrows ListTransactions. From and To are inclusive;
// zero values match everything.
type TransactionFilter struct {
	CategoryID string
	From       time.Time
	To         time.Time
}

// TransactionStore persists transactions. Every method is scoped to userID.
type TransactionStore interface {
	CreateTransaction(ctx context.Context, tx models.Transaction) (models.Transaction, error)
	GetTransaction(ctx context.Context, userID, id string) (models.Transaction, error)
	ListTransactions(ctx context.Context, userID string, filter TransactionFilter) ([]models.Transaction, error)
	UpdateTransaction(ctx context.Context, tx models.Transaction) (models.Transaction, error)
	DeleteTransaction(ctx context.Context, userID, id string) error
	// SumExpenses totals expense transactions in categoryID with
	// from <= date < to.
	SumExpenses(ctx context.Context, userID, categoryID string, from, to time.Time) (decimal.Decimal, error)
}

// BudgetFilter narrows ListBudgets. Zero values match everything.
type BudgetFilter struct {
	Period     models.Period
	CategoryID string
}

// BudgetStore persists budgets. Every method is scoped to userID.
type BudgetStore interface {
	CreateBudget(ctx context.Context, budget models.Budget) (models.Budget, error)
	GetBudget(ctx context.Context, userID, id string) (models.Budget, error)
	ListBudgets(ctx context.Context, userID string, filter BudgetFilter) ([]models.Budget, error)
	UpdateBudget(ctx context.Context, budget models.Budget) (models.Budget, error)
	DeleteBudget(ctx context.Context, userID, id string) error
}

// Store is the full persistence surface used by the service layer.
type Store interface {
	UserStore
	CategoryStore
	TransactionStore
	BudgetStore
	Close() error
}
