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

const entityTransaction = "transaction"

// TransactionInput creates a transaction. A nil Date means now.
type TransactionInput struct {
	Amount      decimal.Decimal
	Type        models.EntryType
	CategoryID  string
	Description string
	Date        *time.Time
}

// TransactionPatch updates a transaction; nil fields are left unchanged.
type TransactionPatch struct {
	Amount      *decimal.Decimal
	Type        *models.EntryType
	CategoryID  *string
	Description *string
	Date        *time.Time
}

// CreateTransaction records a transaction in one of the caller's categories.
// The transaction's own type is authoritative; it is not checked against
// the category's type.
func (s *Service) CreateTransaction(ctx context.Context, id auth.Identity, in TransactionInput) (models.Transaction, error) {
	user, err := id.Require()
	if err != nil {
		return models.Transaction{}, err
	}
	now := s.timestamp()
	t := models.Transaction{
		ID:          s.newID(),
		UserID:      user.ID,
		Amount:      in.Amount,
		Type:        in.Type,
		CategoryID:  strings.TrimSpace(in.CategoryID),
		Description: strings.TrimSpace(in.Description),
		Date:        now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if in.Date != nil {
		t.Date = normalize(*in.Date)
	}
	if err := validateTransaction(t); err != nil {
		return models.Transaction{}, err
	}
	if err := s.requireCategory(ctx, user.ID, t.CategoryID); err != nil {
		return models.Transaction{}, err
	}
	created, err := s.store.CreateTransaction(ctx, t)
	return created, translate(err, entityTransaction)
}

// UpdateTransaction applies patch to one of the caller's transactions.
func (s *Service) UpdateTransaction(ctx context.Context, id auth.Identity, transactionID string, patch TransactionPatch) (models.Transaction, error) {
	user, err := id.Require()
	if err != nil {
		return models.Transaction{}, err
	}
	t, err := s.store.GetTransaction(ctx, user.ID, transactionID)
	if err != nil {
		return models.Transaction{}, translate(err, entityTransaction)
	}
	if patch.Amount != nil {
		t.Amount = *patch.Amount
	}
	if patch.Type != nil {
		t.Type = *patch.Type
	}
	if patch.Description != nil {
		t.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.Date != nil {
		t.Date = normalize(*patch.Date)
	}
	categoryChanged := false
	if patch.CategoryID != nil {
		next := strings.TrimSpace(*patch.CategoryID)
		categoryChanged = next != t.CategoryID
		t.CategoryID = next
	}
	if err := validateTransaction(t); err != nil {
		return models.Transaction{}, err
	}
	if categoryChanged {
		if err := s.requireCategory(ctx, user.ID, t.CategoryID); err != nil {
			return models.Transaction{}, err
		}
	}
	t.UpdatedAt = s.timestamp()
	updated, err := s.store.UpdateTransaction(ctx, t)
	return updated, translate(err, entityTransaction)
}

// DeleteTransaction removes one of the caller's transactions.
func (s *Service) DeleteTransaction(ctx context.Context, id auth.Identity, transactionID string) (bool, error) {
	user, err := id.Require()
	if err != nil {
		return false, err
	}
	if err := s.store.DeleteTransaction(ctx, user.ID, transactionID); err != nil {
		return false, translate(err, entityTransaction)
	}
	return true, nil
}

// Transaction returns one of the caller's transactions.
func (s *Service) Transaction(ctx context.Context, id auth.Identity, transactionID string) (models.Transaction, error) {
	user, err := id.Require()
	if err != nil {
		return models.Transaction{}, err
	}
	t, err := s.store.GetTransaction(ctx, user.ID, transactionID)
	return t, translate(err, entityTransaction)
}

// Transactions lists the caller's transactions, most recent first.
func (s *Service) Transactions(ctx context.Context, id auth.Identity) ([]models.Transaction, error) {
	user, err := id.Require()
	if err != nil {
		return nil, err
	}
	return s.store.ListTransactions(ctx, user.ID, storage.TransactionFilter{})
}

// TransactionsByCategory lists the caller's transactions in one category.
func (s *Service) TransactionsByCategory(ctx context.Context, id auth.Identity, categoryID string) ([]models.Transaction, error) {
	user, err := id.Require()
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(categoryID) == "" {
		return nil, invalid("categoryId is required")
	}
	return s.store.ListTransactions(ctx, user.ID, storage.TransactionFilter{CategoryID: categoryID})
}

// TransactionsByDateRange lists the caller's transactions dated within
// [start, end], both ends inclusive.
func (s *Service) TransactionsByDateRange(ctx context.Context, id auth.Identity, start, end time.Time) ([]models.Transaction, error) {
	user, err := id.Require()
	if err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, invalid("endDate must not be before startDate")
	}
	return s.store.ListTransactions(ctx, user.ID, storage.TransactionFilter{From: start.UTC(), To: end.UTC()})
}

// requireCategory fails with "category not found" unless categoryID is
// one of userID's categories.
func (s *Service) requireCategory(ctx context.Context, userID, categoryID string) error {
	_, err := s.store.GetCategory(ctx, userID, categoryID)
	return translate(err, entityCategory)
}

func validateTransaction(t models.Transaction) error {
	if t.Amount.IsNegative() {
		return invalid("amount must not be negative")
	}
	if !t.Type.Valid() {
		return invalid("transaction type must be income or expense")
	}
	if t.CategoryID == "" {
		return invalid("categoryId is required")
	}
	if t.Description == "" {
		return invalid("description is required")
	}
	return checkYear("date", t.Date)
}
