package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/LeviOP/wealthwise/internal/models"
	"github.com/LeviOP/wealthwise/internal/storage"
)

const budgetColumns = `id, user_id, category_id, amount::text, period, start_date, created_at, updated_at`

// CreateBudget inserts a budget row.
func (s *Store) CreateBudget(ctx context.Context, b models.Budget) (models.Budget, error) {
	query := `
		INSERT INTO budgets (id, user_id, category_id, amount, period, start_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + budgetColumns
	row := s.pool.QueryRow(ctx, query, b.ID, b.UserID, b.CategoryID, b.Amount.String(), string(b.Period), b.StartDate, b.CreatedAt, b.UpdatedAt)
	return scanBudget(row)
}

// GetBudget fetches a budget owned by userID.
func (s *Store) GetBudget(ctx context.Context, userID, id string) (models.Budget, error) {
	query := `SELECT ` + budgetColumns + ` FROM budgets WHERE id = $1 AND user_id = $2`
	return scanBudget(s.pool.QueryRow(ctx, query, id, userID))
}

// ListBudgets returns the user's budgets in creation order.
func (s *Store) ListBudgets(ctx context.Context, userID string, filter storage.BudgetFilter) ([]models.Budget, error) {
	where := &whereBuilder{}
	where.add("user_id = $%d", userID)
	if filter.Period != "" {
		where.add("period = $%d", string(filter.Period))
	}
	if filter.CategoryID != "" {
		where.add("category_id = $%d", filter.CategoryID)
	}
	query := `SELECT ` + budgetColumns + ` FROM budgets WHERE ` + where.String() + ` ORDER BY created_at ASC, id ASC`
	rows, err := s.pool.Query(ctx, query, where.args...)
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
	query := `
		UPDATE budgets SET amount = $1, period = $2, start_date = $3, updated_at = $4
		WHERE id = $5 AND user_id = $6
		RETURNING ` + budgetColumns
	row := s.pool.QueryRow(ctx, query, b.Amount.String(), string(b.Period), b.StartDate, b.UpdatedAt, b.ID, b.UserID)
	return scanBudget(row)
}

// DeleteBudget removes a budget owned by userID.
func (s *Store) DeleteBudget(ctx context.Context, userID, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM budgets WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete budget: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func scanBudget(row pgx.Row) (models.Budget, error) {
	var b models.Budget
	var amount, period string
	if err := row.Scan(&b.ID, &b.UserID, &b.CategoryID, &amount, &period, &b.StartDate, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return models.Budget{}, notFound(err)
	}
	parsed, err := parseAmount(amount)
	if err != nil {
		return models.Budget{}, err
	}
	b.Amount = parsed
	b.Period = models.Period(period)
	b.StartDate = utc(b.StartDate)
	b.CreatedAt = utc(b.CreatedAt)
	b.UpdatedAt = utc(b.UpdatedAt)
	return b, nil
}
