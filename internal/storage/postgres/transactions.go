package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/LeviOP/wealthwise/internal/models"
	"github.com/LeviOP/wealthwise/internal/storage"
)

const transactionColumns = `id, user_id, amount::text, type, category_id, description, date, created_at, updated_at`

// CreateTransaction inserts a transaction row.
func (s *Store) CreateTransaction(ctx context.Context, t models.Transaction) (models.Transaction, error) {
	query := `
		INSERT INTO transactions (id, user_id, amount, type, category_id, description, date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + transactionColumns
	row := s.pool.QueryRow(ctx, query, t.ID, t.UserID, t.Amount.String(), string(t.Type), t.CategoryID, t.Description, t.Date, t.CreatedAt, t.UpdatedAt)
	return scanTransaction(row)
}

// GetTransaction fetches a transaction owned by userID.
func (s *Store) GetTransaction(ctx context.Context, userID, id string) (models.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1 AND user_id = $2`
	return scanTransaction(s.pool.QueryRow(ctx, query, id, userID))
}

// ListTransactions returns the user's transactions, most recent first.
func (s *Store) ListTransactions(ctx context.Context, userID string, filter storage.TransactionFilter) ([]models.Transaction, error) {
	where := &whereBuilder{}
	where.add("user_id = $%d", userID)
	if filter.CategoryID != "" {
		where.add("category_id = $%d", filter.CategoryID)
	}
	if !filter.From.IsZero() {
		where.add("date >= $%d", filter.From)
	}
	if !filter.To.IsZero() {
		where.add("date <= $%d", filter.To)
	}
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE ` + where.String() + ` ORDER BY date DESC, created_at DESC`
	rows, err := s.pool.Query(ctx, query, where.args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	txs := []models.Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txs = append(txs, t)
	}
	return txs, rows.Err()
}

// UpdateTransaction rewrites the mutable fields of a transaction owned by t.UserID.
func (s *Store) UpdateTransaction(ctx context.Context, t models.Transaction) (models.Transaction, error) {
	query := `
		UPDATE transactions
		SET amount = $1, type = $2, category_id = $3, description = $4, date = $5, updated_at = $6
		WHERE id = $7 AND user_id = $8
		RETURNING ` + transactionColumns
	row := s.pool.QueryRow(ctx, query, t.Amount.String(), string(t.Type), t.CategoryID, t.Description, t.Date, t.UpdatedAt, t.ID, t.UserID)
	return scanTransaction(row)
}

// DeleteTransaction removes a transaction owned by userID.
func (s *Store) DeleteTransaction(ctx context.Context, userID, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM transactions WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// SumExpenses totals expense amounts for a category within [from, to).
func (s *Store) SumExpenses(ctx context.Context, userID, categoryID string, from, to time.Time) (decimal.Decimal, error) {
	const query = `
		SELECT COALESCE(SUM(amount), 0)::text
		FROM transactions
		WHERE user_id = $1 AND category_id = $2 AND type = 'expense' AND date >= $3 AND date < $4
	`
	var raw string
	if err := s.pool.QueryRow(ctx, query, userID, categoryID, from, to).Scan(&raw); err != nil {
		return decimal.Zero, fmt.Errorf("sum expenses: %w", err)
	}
	return parseAmount(raw)
}

func scanTransaction(row pgx.Row) (models.Transaction, error) {
	var t models.Transaction
	var amount, kind string
	if err := row.Scan(&t.ID, &t.UserID, &amount, &kind, &t.CategoryID, &t.Description, &t.Date, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return models.Transaction{}, notFound(err)
	}
	parsed, err := parseAmount(amount)
	if err != nil {
		return models.Transaction{}, err
	}
	t.Amount = parsed
	t.Type = models.EntryType(kind)
	t.Date = utc(t.Date)
	t.CreatedAt = utc(t.CreatedAt)
	t.UpdatedAt = utc(t.UpdatedAt)
	return t, nil
}
