package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/LeviOP/wealthwise/internal/log"
	"github.com/LeviOP/wealthwise/internal/storage"
)

// Gate resolves bearer tokens to identities. It never rejects a request:
// anything that does not check out becomes Anonymous, and operations that
// need a user call Identity.Require.
type Gate struct {
	tokens *TokenManager
	users  storage.UserStore
	logger *log.Logger
}

// NewGate constructs a gate backed by tokens and users.
func NewGate(tokens *TokenManager, users storage.UserStore, logger *log.Logger) *Gate {
	return &Gate{tokens: tokens, users: users, logger: logger.WithComponent(log.ComponentAuth)}
}

// Resolve maps an Authorization header value to an identity.
func (g *Gate) Resolve(ctx context.Context, header string) Identity {
	raw, ok := bearerToken(header)
	if !ok {
		return Anonymous()
	}
	userID, err := g.tokens.Parse(raw)
	if err != nil {
		g.logger.DebugContext(ctx, "rejected bearer token", log.FieldError, err)
		return Anonymous()
	}
	user, err := g.users.FindByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			g.logger.ErrorContext(ctx, "resolve token user", log.FieldUserID, userID, log.FieldError, err)
		}
		return Anonymous()
	}
	return Authenticated(user)
}

// Middleware attaches the resolved identity to every request context.
func (g *Gate) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := g.Resolve(r.Context(), r.Header.Get("Authorization"))
		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
	})
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
