package sqlite

import (
	"context"
	"fmt"

	"github.com/LeviOP/wealthwise/internal/models"
	"github.com/LeviOP/wealthwise/internal/storage"
)

const categoryColumns = `id, user_id, name, type, created_at, updated_at`

// CreateCategory inserts a category; a duplicate (user, name, type) yields
// storage.ErrAlreadyExists.
func (s *Store) CreateCategory(ctx context.Context, c models.Category) (models.Category, error) {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO categories (`+categoryColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		c.ID, c.UserID, c.Name, string(c.Type), formatTime(c.CreatedAt), formatTime(c.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return models.Category{}, storage.ErrAlreadyExists
		}
		return models.Category{}, fmt.Errorf("insert category: %w", err)
	}
	return s.GetCategory(ctx, c.UserID, c.ID)
}

// CreateCategories inserts several categories in a single transaction.
func (s *Store) CreateCategories(ctx context.Context, categories []models.Category) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO categories (`+categoryColumns+`) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert category: %w", err)
	}
	defer stmt.Close()

	for _, c := range categories {
		if _, err := stmt.ExecContext(ctx, c.ID, c.UserID, c.Name, string(c.Type), formatTime(c.CreatedAt), formatTime(c.UpdatedAt)); err != nil {
			if isUniqueViolation(err) {
				return storage.ErrAlreadyExists
			}
			return fmt.Errorf("insert category: %w", err)
		}
	}
	return tx.Commit()
}

// GetCategory fetches a category owned by userID.
func (s *Store) GetCategory(ctx context.Context, userID, id string) (models.Category, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE id = ? AND user_id = ?`, id, userID)
	return scanCategory(row)
}

// ListCategories returns the user's categories ordered by name.
func (s *Store) ListCategories(ctx context.Context, userID string, filter storage.CategoryFilter) ([]models.Category, error) {
	where := &whereBuilder{}
	where.add("user_id = ?", userID)
	if filter.Type != "" {
		where.add("type = ?", string(filter.Type))
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE `+where.String()+` ORDER BY name ASC, type ASC`, where.args...)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// UpdateCategory rewrites name and type of a category owned by c.UserID.
func (s *Store) UpdateCategory(ctx context.Context, c models.Category) (models.Category, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE categories SET name = ?, type = ?, updated_at = ? WHERE id = ? AND user_id = ?`,
		c.Name, string(c.Type), formatTime(c.UpdatedAt), c.ID, c.UserID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return models.Category{}, storage.ErrAlreadyExists
		}
		return models.Category{}, fmt.Errorf("update category: %w", err)
	}
	if err := affectedOrNotFound(res); err != nil {
		return models.Category{}, err
	}
	return s.GetCategory(ctx, c.UserID, c.ID)
}

// DeleteCategory removes a category. Referencing rows are left in place.
func (s *Store) DeleteCategory(ctx context.Context, userID, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM categories WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return affectedOrNotFound(res)
}

func scanCategory(row scanner) (models.Category, error) {
	var c models.Category
	var kind, createdAt, updatedAt string
	if err := row.Scan(&c.ID, &c.UserID, &c.Name, &kind, &createdAt, &updatedAt); err != nil {
		return models.Category{}, notFound(err)
	}
	c.Type = models.EntryType(kind)
	var err error
	if c.CreatedAt, err = parseTime(createdAt); err != nil {
		return models.Category{}, err
	}
	if c.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return models.Category{}, err
	}
	return c, nil
}
