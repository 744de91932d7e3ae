package service

import (
	"context"
	"strings"

	"github.com/LeviOP/wealthwise/internal/auth"
	"github.com/LeviOP/wealthwise/internal/models"
	"github.com/LeviOP/wealthwise/internal/storage"
)

const entityCategory = "category"

// CategoryInput creates a category.
type CategoryInput struct {
	Name string
	Type models.EntryType
}

// CategoryPatch updates a category; nil fields are left unchanged.
type CategoryPatch struct {
	Name *string
	Type *models.EntryType
}

// CreateCategory adds a category for the caller. A duplicate (name, type)
// is a conflict.
func (s *Service) CreateCategory(ctx context.Context, id auth.Identity, in CategoryInput) (models.Category, error) {
	user, err := id.Require()
	if err != nil {
		return models.Category{}, err
	}
	in.Name = strings.TrimSpace(in.Name)
	if err := validateCategory(in.Name, in.Type); err != nil {
		return models.Category{}, err
	}
	now := s.timestamp()
	created, err := s.store.CreateCategory(ctx, models.Category{
		ID:        s.newID(),
		UserID:    user.ID,
		Name:      in.Name,
		Type:      in.Type,
		CreatedAt: now,
		UpdatedAt: now,
	})
	return created, translate(err, entityCategory)
}

// UpdateCategory renames and/or retypes one of the caller's categories.
func (s *Service) UpdateCategory(ctx context.Context, id auth.Identity, categoryID string, patch CategoryPatch) (models.Category, error) {
	user, err := id.Require()
	if err != nil {
		return models.Category{}, err
	}
	current, err := s.store.GetCategory(ctx, user.ID, categoryID)
	if err != nil {
		return models.Category{}, translate(err, entityCategory)
	}
	if patch.Name != nil {
		current.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Type != nil {
		current.Type = *patch.Type
	}
	if err := validateCategory(current.Name, current.Type); err != nil {
		return models.Category{}, err
	}
	current.UpdatedAt = s.timestamp()
	updated, err := s.store.UpdateCategory(ctx, current)
	return updated, translate(err, entityCategory)
}

// DeleteCategory removes one of the caller's categories. Transactions and
// budgets that reference it are kept.
func (s *Service) DeleteCategory(ctx context.Context, id auth.Identity, categoryID string) (bool, error) {
	user, err := id.Require()
	if err != nil {
		return false, err
	}
	if err := s.store.DeleteCategory(ctx, user.ID, categoryID); err != nil {
		return false, translate(err, entityCategory)
	}
	return true, nil
}

// Category returns one of the caller's categories.
func (s *Service) Category(ctx context.Context, id auth.Identity, categoryID string) (models.Category, error) {
	user, err := id.Require()
	if err != nil {
		return models.Category{}, err
	}
	c, err := s.store.GetCategory(ctx, user.ID, categoryID)
	return c, translate(err, entityCategory)
}

// Categories lists the caller's categories by name.
func (s *Service) Categories(ctx context.Context, id auth.Identity) ([]models.Category, error) {
	user, err := id.Require()
	if err != nil {
		return nil, err
	}
	return s.store.ListCategories(ctx, user.ID, storage.CategoryFilter{})
}

// CategoriesByType lists the caller's categories of one direction.
func (s *Service) CategoriesByType(ctx context.Context, id auth.Identity, kind models.EntryType) ([]models.Category, error) {
	user, err := id.Require()
	if err != nil {
		return nil, err
	}
	if !kind.Valid() {
		return nil, invalid("category type must be income or expense")
	}
	return s.store.ListCategories(ctx, user.ID, storage.CategoryFilter{Type: kind})
}

func validateCategory(name string, kind models.EntryType) error {
	if name == "" {
		return invalid("category name is required")
	}
	if !kind.Valid() {
		return invalid("category type must be income or expense")
	}
	return nil
}
