package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/LeviOP/wealthwise/internal/models"
	"github.com/LeviOP/wealthwise/internal/storage"
)

const categoryColumns = `id, user_id, name, type, created_at, updated_at`

// CreateCategory inserts a category; a duplicate (user, name, type) yields
// storage.ErrAlreadyExists.
func (s *Store) CreateCategory(ctx context.Context, c models.Category) (models.Category, error) {
	query := `
		INSERT INTO categories (` + categoryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + categoryColumns
	row := s.pool.QueryRow(ctx, query, c.ID, c.UserID, c.Name, string(c.Type), c.CreatedAt, c.UpdatedAt)
	created, err := scanCategory(row)
	if err != nil {
		if isUniqueViolation(err) {
			return models.Category{}, storage.ErrAlreadyExists
		}
		return models.Category{}, err
	}
	return created, nil
}

// CreateCategories inserts several categories in one round trip.
func (s *Store) CreateCategories(ctx context.Context, categories []models.Category) error {
	const query = `INSERT INTO categories (` + categoryColumns + `) VALUES ($1, $2, $3, $4, $5, $6)`
	batch := &pgx.Batch{}
	for _, c := range categories {
		batch.Queue(query, c.ID, c.UserID, c.Name, string(c.Type), c.CreatedAt, c.UpdatedAt)
	}
	results := s.pool.SendBatch(ctx, batch)
	defer results.Close()
	for range categories {
		if _, err := results.Exec(); err != nil {
			if isUniqueViolation(err) {
				return storage.ErrAlreadyExists
			}
			return fmt.Errorf("insert category: %w", err)
		}
	}
	return nil
}

// GetCategory fetches a category owned by userID.
func (s *Store) GetCategory(ctx context.Context, userID, id string) (models.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = $1 AND user_id = $2`
	return scanCategory(s.pool.QueryRow(ctx, query, id, userID))
}

// ListCategories returns the user's categories ordered by name.
func (s *Store) ListCategories(ctx context.Context, userID string, filter storage.CategoryFilter) ([]models.Category, error) {
	where := &whereBuilder{}
	where.add("user_id = $%d", userID)
	if filter.Type != "" {
		where.add("type = $%d", string(filter.Type))
	}
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE ` + where.String() + ` ORDER BY name ASC, type ASC`
	rows, err := s.pool.Query(ctx, query, where.args...)
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
	query := `
		UPDATE categories SET name = $1, type = $2, updated_at = $3
		WHERE id = $4 AND user_id = $5
		RETURNING ` + categoryColumns
	row := s.pool.QueryRow(ctx, query, c.Name, string(c.Type), c.UpdatedAt, c.ID, c.UserID)
	updated, err := scanCategory(row)
	if err != nil {
		if isUniqueViolation(err) {
			return models.Category{}, storage.ErrAlreadyExists
		}
		return models.Category{}, err
	}
	return updated, nil
}

// DeleteCategory removes a category. Referencing rows are left in place.
func (s *Store) DeleteCategory(ctx context.Context, userID, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func scanCategory(row pgx.Row) (models.Category, error) {
	var c models.Category
	var kind string
	if err := row.Scan(&c.ID, &c.UserID, &c.Name, &kind, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return models.Category{}, notFound(err)
	}
	c.Type = models.EntryType(kind)
	c.CreatedAt = utc(c.CreatedAt)
	c.UpdatedAt = utc(c.UpdatedAt)
	return c, nil
}
