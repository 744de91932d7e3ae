package auth

import (
	"context"
	"errors"

	"github.com/LeviOP/wealthwise/internal/models"
)

// ErrUnauthenticated is returned by Require on an anonymous identity.
var ErrUnauthenticated = errors.New("not authenticated")

// Identity is either Authenticated (carrying a user) or Anonymous.
type Identity struct {
	user *models.User
}

// Anonymous returns an identity with no user.
func Anonymous() Identity {
	return Identity{}
}

// Authenticated returns an identity for user.
func Authenticated(user models.User) Identity {
	return Identity{user: &user}
}

// IsAuthenticated reports whether a user is attached.
func (i Identity) IsAuthenticated() bool {
	return i.user != nil
}

// Require returns the user or ErrUnauthenticated.
func (i Identity) Require() (models.User, error) {
	if i.user == nil {
		return models.User{}, ErrUnauthenticated
	}
	return *i.user, nil
}

type identityKey struct{}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// FromContext returns the identity stored in ctx, or Anonymous.
func FromContext(ctx context.Context) Identity {
	if id, ok := ctx.Value(identityKey{}).(Identity); ok {
		return id
	}
	return Anonymous()
}
