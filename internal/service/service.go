// Package service implements the finance domain: registration and login,
// and per-user categories, transactions and budgets. Every user-scoped
// operation takes the caller's auth.Identity and refuses to run without a
// user.
package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/LeviOP/wealthwise/internal/auth"
	"github.com/LeviOP/wealthwise/internal/log"
	"github.com/LeviOP/wealthwise/internal/storage"
)

var (
	// ErrUnauthenticated means the operation needs a signed-in user.
	ErrUnauthenticated = auth.ErrUnauthenticated
	// ErrNotFound covers both missing records and records owned by someone else.
	ErrNotFound = errors.New("not found")
	// ErrValidation is wrapped by every input validation failure.
	ErrValidation = errors.New("invalid input")
	// ErrConflict is wrapped by uniqueness violations.
	ErrConflict = errors.New("already exists")
	// ErrInvalidCredentials is returned by Login for any bad email/password pair.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// progressConcurrency bounds the fan-out when computing progress for a list
// of budgets.
const progressConcurrency = 8

// Service is the entry point for every finance operation.
type Service struct {
	store  storage.Store
	tokens *auth.TokenManager
	logger *log.Logger
	now    func() time.Time
	newID  func() string
}

// Option customizes a Service.
type Option func(*Service)

// WithClock overrides the time source used for defaults and timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New builds a Service over store.
func New(store storage.Store, tokens *auth.TokenManager, logger *log.Logger, opts ...Option) *Service {
	s := &Service{
		store:  store,
		tokens: tokens,
		logger: logger.WithComponent(log.ComponentService),
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// timestamp returns the current time at storage precision.
func (s *Service) timestamp() time.Time {
	return normalize(s.now())
}

func normalize(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}

// maxYear keeps every stored date, and the end of any budget window built
// from it, within four-digit years.
const maxYear = 9998

func checkYear(field string, t time.Time) error {
	if t.Year() > maxYear {
		return invalid("%s must be before the year 9999", field)
	}
	return nil
}

// Error is a user-visible failure classified by one of the sentinel errors.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

func invalid(format string, args ...any) error {
	return &Error{Kind: ErrValidation, Message: fmt.Sprintf(format, args...)}
}

func notFound(entity string) error {
	return &Error{Kind: ErrNotFound, Message: entity + " not found"}
}

func conflict(message string) error {
	return &Error{Kind: ErrConflict, Message: message}
}

// translate maps storage sentinels onto service errors for entity.
func translate(err error, entity string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, storage.ErrNotFound):
		return notFound(entity)
	case errors.Is(err, storage.ErrAlreadyExists):
		return conflict(entity + " already exists")
	default:
		return err
	}
}
