package service

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/LeviOP/wealthwise/internal/auth"
	"github.com/LeviOP/wealthwise/internal/models"
	"github.com/LeviOP/wealthwise/internal/storage"
)

const entityBudget = "budget"

// BudgetInput creates a budget. A nil StartDate means now.
type BudgetInput struct {
	CategoryID string
	Amount     decimal.Decimal
	Period     models.Period
	StartDate  *time.Time
}

// BudgetPatch updates a budget; nil fields are left unchanged.
type BudgetPatch struct {
	Amount    *decimal.Decimal
	Period    *models.Period
	StartDate *time.Time
}

// CreateBudget adds a budget on one of the caller's categories.
func (s *Service) CreateBudget(ctx context.Context, id auth.Identity, in BudgetInput) (models.BudgetProgress, error) {
	user, err := id.Require()
	if err != nil {
		return models.BudgetProgress{}, err
	}
	now := s.timestamp()
	b := models.Budget{
		ID:         s.newID(),
		UserID:     user.ID,
		CategoryID: strings.TrimSpace(in.CategoryID),
		Amount:     in.Amount,
		Period:     in.Period,
		StartDate:  now,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if in.StartDate != nil {
		b.StartDate = normalize(*in.StartDate)
	}
	if b.CategoryID == "" {
		return models.BudgetProgress{}, invalid("categoryId is required")
	}
	if err := validateBudget(b); err != nil {
		return models.BudgetProgress{}, err
	}
	if err := s.requireCategory(ctx, user.ID, b.CategoryID); err != nil {
		return models.BudgetProgress{}, err
	}
	created, err := s.store.CreateBudget(ctx, b)
	if err != nil {
		return models.BudgetProgress{}, translate(err, entityBudget)
	}
	return s.progress(ctx, created)
}

// UpdateBudget applies patch to one of the caller's budgets.
func (s *Service) UpdateBudget(ctx context.Context, id auth.Identity, budgetID string, patch BudgetPatch) (models.BudgetProgress, error) {
	user, err := id.Require()
	if err != nil {
		return models.BudgetProgress{}, err
	}
	b, err := s.store.GetBudget(ctx, user.ID, budgetID)
	if err != nil {
		return models.BudgetProgress{}, translate(err, entityBudget)
	}
	if patch.Amount != nil {
		b.Amount = *patch.Amount
	}
	if patch.Period != nil {
		b.Period = *patch.Period
	}
	if patch.StartDate != nil {
		b.StartDate = normalize(*patch.StartDate)
	}
	if err := validateBudget(b); err != nil {
		return models.BudgetProgress{}, err
	}
	b.UpdatedAt = s.timestamp()
	updated, err := s.store.UpdateBudget(ctx, b)
	if err != nil {
		return models.BudgetProgress{}, translate(err, entityBudget)
	}
	return s.progress(ctx, updated)
}

// DeleteBudget removes one of the caller's budgets.
func (s *Service) DeleteBudget(ctx context.Context, id auth.Identity, budgetID string) (bool, error) {
	user, err := id.Require()
	if err != nil {
		return false, err
	}
	if err := s.store.DeleteBudget(ctx, user.ID, budgetID); err != nil {
		return false, translate(err, entityBudget)
	}
	return true, nil
}

// Budget returns one of the caller's budgets with fresh progress.
func (s *Service) Budget(ctx context.Context, id auth.Identity, budgetID string) (models.BudgetProgress, error) {
	user, err := id.Require()
	if err != nil {
		return models.BudgetProgress{}, err
	}
	b, err := s.store.GetBudget(ctx, user.ID, budgetID)
	if err != nil {
		return models.BudgetProgress{}, translate(err, entityBudget)
	}
	return s.progress(ctx, b)
}

// Budgets lists the caller's budgets with fresh progress.
func (s *Service) Budgets(ctx context.Context, id auth.Identity) ([]models.BudgetProgress, error) {
	user, err := id.Require()
	if err != nil {
		return nil, err
	}
	return s.listBudgets(ctx, user, storage.BudgetFilter{})
}

// BudgetsByPeriod lists the caller's budgets of one period.
func (s *Service) BudgetsByPeriod(ctx context.Context, id auth.Identity, period models.Period) ([]models.BudgetProgress, error) {
	user, err := id.Require()
	if err != nil {
		return nil, err
	}
	if !period.Valid() {
		return nil, invalid("period must be monthly or yearly")
	}
	return s.listBudgets(ctx, user, storage.BudgetFilter{Period: period})
}

// BudgetsByCategory lists the caller's budgets on one category.
func (s *Service) BudgetsByCategory(ctx context.Context, id auth.Identity, categoryID string) ([]models.BudgetProgress, error) {
	user, err := id.Require()
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(categoryID) == "" {
		return nil, invalid("categoryId is required")
	}
	return s.listBudgets(ctx, user, storage.BudgetFilter{CategoryID: categoryID})
}

func (s *Service) listBudgets(ctx context.Context, user models.User, filter storage.BudgetFilter) ([]models.BudgetProgress, error) {
	budgets, err := s.store.ListBudgets(ctx, user.ID, filter)
	if err != nil {
		return nil, err
	}
	return s.progressAll(ctx, budgets)
}

func validateBudget(b models.Budget) error {
	if b.Amount.IsNegative() {
		return invalid("amount must not be negative")
	}
	if !b.Period.Valid() {
		return invalid("period must be monthly or yearly")
	}
	return checkYear("startDate", b.StartDate)
}
