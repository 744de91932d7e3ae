package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"github.com/LeviOP/wealthwise/internal/auth"
	"github.com/LeviOP/wealthwise/internal/log"
	"github.com/LeviOP/wealthwise/internal/models"
	"github.com/LeviOP/wealthwise/internal/storage"
)

const minPasswordLength = 6

// RegisterInput carries the fields needed to create an account.
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// AuthResult is returned by Register and Login.
type AuthResult struct {
	Token string
	User  models.User
}

// Register creates a user, seeds the default categories and issues a token.
// Seeding is not atomic with user creation.
func (s *Service) Register(ctx context.Context, in RegisterInput) (AuthResult, error) {
	in.Email = strings.TrimSpace(in.Email)
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	if err := validateRegistration(in); err != nil {
		return AuthResult{}, err
	}

	if _, err := s.store.FindByEmail(ctx, in.Email); err == nil {
		return AuthResult{}, conflict("email already registered")
	} else if !errors.Is(err, storage.ErrNotFound) {
		return AuthResult{}, fmt.Errorf("lookup user: %w", err)
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return AuthResult{}, fmt.Errorf("hash password: %w", err)
	}

	now := s.timestamp()
	user, err := s.store.CreateUser(ctx, models.User{
		ID:           s.newID(),
		Email:        in.Email,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		PasswordHash: hash,
		CreatedAt:    now,
	})
	if err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return AuthResult{}, conflict("email already registered")
		}
		return AuthResult{}, fmt.Errorf("create user: %w", err)
	}

	defaults := make([]models.Category, 0, len(models.DefaultCategories))
	for _, d := range models.DefaultCategories {
		defaults = append(defaults, models.Category{
			ID:        s.newID(),
			UserID:    user.ID,
			Name:      d.Name,
			Type:      d.Type,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	if err := s.store.CreateCategories(ctx, defaults); err != nil {
		return AuthResult{}, fmt.Errorf("seed default categories: %w", err)
	}

	s.logger.InfoContext(ctx, "user registered", log.FieldUserID, user.ID)
	return s.issue(user)
}

// Login verifies credentials and issues a fresh token.
func (s *Service) Login(ctx context.Context, email, password string) (AuthResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return AuthResult{}, invalid("email and password are required")
	}
	user, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return AuthResult{}, ErrInvalidCredentials
		}
		return AuthResult{}, fmt.Errorf("lookup user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return AuthResult{}, ErrInvalidCredentials
	}
	return s.issue(user)
}

// Me returns the signed-in user.
func (s *Service) Me(id auth.Identity) (models.User, error) {
	return id.Require()
}

func (s *Service) issue(user models.User) (AuthResult, error) {
	token, err := s.tokens.Generate(user)
	if err != nil {
		return AuthResult{}, fmt.Errorf("generate token: %w", err)
	}
	return AuthResult{Token: token, User: user}, nil
}

func validateRegistration(in RegisterInput) error {
	if in.Email == "" || in.FirstName == "" || in.LastName == "" {
		return invalid("email, firstName, and lastName are required")
	}
	if !strings.Contains(in.Email, "@") {
		return invalid("email is malformed")
	}
	if len(strings.TrimSpace(in.Password)) < minPasswordLength || !utf8.ValidString(in.Password) {
		return invalid("password must be at least %d characters", minPasswordLength)
	}
	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
