package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/LeviOP/wealthwise/internal/models"
	"github.com/LeviOP/wealthwise/internal/storage"
)

const transactionColumns = `id, user_id, amount, type, category_id, description, date, created_at, updated_at`

// CreateTransaction inserts a transaction row.
func (s *Store) CreateTransaction(ctx context.Context, t models.Transaction) (models.Transaction, error) {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO transactions (`+transactionColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.UserID, t.Amount.String(), string(t.Type), t.CategoryID, t.Description,
		formatTime(t.Date), formatTime(t.CreatedAt), formatTime(t.UpdatedAt),
	)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("insert transaction: %w", err)
	}
	return s.GetTransaction(ctx, t.UserID, t.ID)
}

// GetTransaction fetches a transaction owned by userID.
func (s *Store) GetTransaction(ctx context.Context, userID, id string) (models.Transaction, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE id = ? AND user_id = ?`, id, userID)
	return scanTransaction(row)
}

// ListTransactions returns the user's transactions, most recent first.
func (s *Store) ListTransactions(ctx context.Context, userID string, filter storage.TransactionFilter) ([]models.Transaction, error) {
	where := &whereBuilder{}
	where.add("user_id = ?", userID)
	if filter.CategoryID != "" {
		where.add("category_id = ?", filter.CategoryID)
	}
	if !filter.From.IsZero() {
		where.add("date >= ?", formatTime(filter.From))
	}
	if !filter.To.IsZero() {
		where.add("date <= ?", formatTime(filter.To))
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE `+where.String()+` ORDER BY date DESC, created_at DESC`, where.args...)
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
	res, err := s.db.ExecContext(ctx,
		`UPDATE transactions SET amount = ?, type = ?, category_id = ?, description = ?, date = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`,
		t.Amount.String(), string(t.Type), t.CategoryID, t.Description, formatTime(t.Date), formatTime(t.UpdatedAt), t.ID, t.UserID,
	)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("update transaction: %w", err)
	}
	if err := affectedOrNotFound(res); err != nil {
		return models.Transaction{}, err
	}
	return s.GetTransaction(ctx, t.UserID, t.ID)
}

// DeleteTransaction removes a transaction owned by userID.
func (s *Store) DeleteTransaction(ctx context.Context, userID, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	return affectedOrNotFound(res)
}

// SumExpenses totals expense amounts for a category within [from, to).
// Amounts are stored as text, so the sum is taken in Go to stay exact.
func (s *Store) SumExpenses(ctx context.Context, userID, categoryID string, from, to time.Time) (decimal.Decimal, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT amount FROM transactions
		WHERE user_id = ? AND category_id = ? AND type = 'expense' AND date >= ? AND date < ?`,
		userID, categoryID, formatTime(from), formatTime(to),
	)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum expenses: %w", err)
	}
	defer rows.Close()

	total := decimal.Zero
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return decimal.Zero, err
		}
		amount, err := parseAmount(raw)
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(amount)
	}
	return total, rows.Err()
}

func scanTransaction(row scanner) (models.Transaction, error) {
	var t models.Transaction
	var amount, kind, date, createdAt, updatedAt string
	if err := row.Scan(&t.ID, &t.UserID, &amount, &kind, &t.CategoryID, &t.Description, &date, &createdAt, &updatedAt); err != nil {
		return models.Transaction{}, notFound(err)
	}
	var err error
	if t.Amount, err = parseAmount(amount); err != nil {
		return models.Transaction{}, err
	}
	t.Type = models.EntryType(kind)
	if t.Date, err = parseTime(date); err != nil {
		return models.Transaction{}, err
	}
	if t.CreatedAt, err = parseTime(createdAt); err != nil {
		return models.Transaction{}, err
	}
	if t.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return models.Transaction{}, err
	}
	return t, nil
}
