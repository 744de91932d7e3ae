package sqlite

import (
	"context"
	"fmt"

	"github.com/LeviOP/wealthwise/internal/models"
	"github.com/LeviOP/wealthwise/internal/storage"
)

const budgetColumns = `id, user_id, category_id, amount, period, start_date, created_at, updated_at`

// CreateBudget inserts a budget row.
func (s *Store) CreateBudget(ctx context.Context, b models.Budget) (models.Budget, error) {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO budgets (`+budgetColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.UserID, b.CategoryID, b.Amount.String(), string(b.Period),
		formatTime(b.StartDate), formatTime(b.CreatedAt), formatTime(b.UpdatedAt),
	)
	if err != nil {
		return models.Budget{}, fmt.Errorf("insert budget: %w", err)
	}
	return s.GetBudget(ctx, b.UserID, b.ID)
}

// GetBudget fetches a budget owned by userID.
func (s *Store) GetBudget(ctx context.Context, userID, id string) (models.Budget, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+budgetColumns+` FROM budgets WHERE id = ? AND user_id = ?`, id, userID)
	return scanBudget(row)
}

// ListBudgets returns the user's budgets in creation order.
func (s *Store) ListBudgets(ctx context.Context, userID string, filter storage.BudgetFilter) ([]models.Budget, error) {
	where := &whereBuilder{}
	where.add("user_id = ?", userID)
	if filter.Period != "" {
		where.add("period = ?", string(filter.Period))
	}
	if filter.CategoryID != "" {
		where.add("category_id = ?", filter.CategoryID)
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+budgetColumns+` FROM budgets WHERE `+where.String()+` ORDER BY created_at ASC, id ASC`, where.args...)
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	defer rows.Close()

	budgets := []models.Budget{}
	for rows.Next() {
		b, err := scanBudget(rows)
		if err != nil {
			return nil, err
		}
		budgets = append(budgets, b)
	}
	return budgets, rows.Err()
}

// UpdateBudget rewrites amount, period and start date of a budget owned by b.UserID.
func (s *Store) UpdateBudget(ctx context.Context, b models.Budget) (models.Budget, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE budgets SET amount = ?, period = ?, start_date = ?, updated_at = ? WHERE id = ? AND user_id = ?`,
		b.Amount.String(), string(b.Period), formatTime(b.StartDate), formatTime(b.UpdatedAt), b.ID, b.UserID,
	)
	if err != nil {
		return models.Budget{}, fmt.Errorf("update budget: %w", err)
	}
	if err := affectedOrNotFound(res); err != nil {
		return models.Budget{}, err
	}
	return s.GetBudget(ctx, b.UserID, b.ID)
}

// DeleteBudget removes a budget owned by userID.
func (s *Store) DeleteBudget(ctx context.Context, userID, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM budgets WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete budget: %w", err)
	}
	return affectedOrNotFound(res)
}

func scanBudget(row scanner) (models.Budget, error) {
	var b models.Budget
	var amount, period, startDate, createdAt, updatedAt string
	if err := row.Scan(&b.ID, &b.UserID, &b.CategoryID, &amount, &period, &startDate, &createdAt, &updatedAt); err != nil {
		return models.Budget{}, notFound(err)
	}
	var err error
	if b.Amount, err = parseAmount(amount); err != nil {
		return models.Budget{}, err
	}
	b.Period = models.Period(period)
	if b.StartDate, err = parseTime(startDate); err != nil {
		return models.Budget{}, err
	}
	if b.CreatedAt, err = parseTime(createdAt); err != nil {
		return models.Budget{}, err
	}
	if b.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return models.Budget{}, err
	}
	return b, nil
}
