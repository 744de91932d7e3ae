package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/LeviOP/wealthwise/internal/models"
)

var hundred = decimal.NewFromInt(100)

// PeriodWindow returns the half-open window [from, to) a budget is measured
// against. The window is fixed to the month (or year) containing start and
// does not advance with the current date.
func PeriodWindow(period models.Period, start time.Time) (from, to time.Time) {
	start = start.UTC()
	switch period {
	case models.Yearly:
		from = time.Date(start.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
		return from, from.AddDate(1, 0, 0)
	default:
		from = time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)
		return from, from.AddDate(0, 1, 0)
	}
}

// ComputeProgress derives remaining and percentage used from a cap and the
// amount spent. Remaining never goes below zero; a zero cap reports 0%.
func ComputeProgress(amount, spent decimal.Decimal) models.Progress {
	remaining := amount.Sub(spent)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}
	percentage := decimal.Zero
	if !amount.IsZero() {
		percentage = spent.Div(amount).Mul(hundred)
	}
	return models.Progress{
		Spent:          spent,
		Remaining:      remaining,
		PercentageUsed: percentage,
	}
}

// progress computes a budget's progress from the current transaction set.
func (s *Service) progress(ctx context.Context, b models.Budget) (models.BudgetProgress, error) {
	from, to := PeriodWindow(b.Period, b.StartDate)
	spent, err := s.store.SumExpenses(ctx, b.UserID, b.CategoryID, from, to)
	if err != nil {
		return models.BudgetProgress{}, fmt.Errorf("compute progress for budget %s: %w", b.ID, err)
	}
	return models.BudgetProgress{Budget: b, Progress: ComputeProgress(b.Amount, spent)}, nil
}

// progressAll computes progress for every budget concurrently, preserving
// input order.
func (s *Service) progressAll(ctx context.Context, budgets []models.Budget) ([]models.BudgetProgress, error) {
	out := make([]models.BudgetProgress, len(budgets))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(progressConcurrency)
	for i, b := range budgets {
		i, b := i, b
		g.Go(func() error {
			p, err := s.progress(gctx, b)
			if err != nil {
				return err
			}
			out[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
