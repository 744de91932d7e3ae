package graph

import (
	"context"
	"errors"

	"github.com/graphql-go/graphql/gqlerrors"

	"github.com/LeviOP/wealthwise/internal/log"
	"github.com/LeviOP/wealthwise/internal/service"
)

// Error codes reported under extensions.code.
const (
	CodeUnauthenticated    = "UNAUTHENTICATED"
	CodeNotFound           = "NOT_FOUND"
	CodeBadUserInput       = "BAD_USER_INPUT"
	CodeConflict           = "CONFLICT"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeInternal           = "INTERNAL_SERVER_ERROR"
)

// Error is a resolver failure carrying a machine-readable code.
type Error struct {
	Message string
	Code    string
}

var _ gqlerrors.ExtendedError = (*Error)(nil)

func (e *Error) Error() string { return e.Message }

// Extensions implements gqlerrors.ExtendedError.
func (e *Error) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": e.Code}
}

// fail classifies err for the client. Anything that is not a known domain
// failure is logged and replaced with a generic message.
func (s *Schema) fail(ctx context.Context, operation string, err error) error {
	code := classify(err)
	if code != CodeInternal {
		return &Error{Message: err.Error(), Code: code}
	}
	s.logger.ErrorContext(ctx, "resolver failed", log.FieldOperation, operation, log.FieldError, err)
	return &Error{Message: "internal server error", Code: CodeInternal}
}

func classify(err error) string {
	switch {
	case errors.Is(err, service.ErrUnauthenticated):
		return CodeUnauthenticated
	case errors.Is(err, service.ErrInvalidCredentials):
		return CodeInvalidCredentials
	case errors.Is(err, service.ErrNotFound):
		return CodeNotFound
	case errors.Is(err, service.ErrValidation):
		return CodeBadUserInput
	case errors.Is(err, service.ErrConflict):
		return CodeConflict
	default:
		return CodeInternal
	}
}
