package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/mpjwt/go-mpjwt/validator"
)

// Sentinel errors for token checks.
var (
	// ErrJWTMissing is returned when no token was presented and credentials
	// are required.
	ErrJWTMissing = errors.New("jwt missing")

	// ErrKeyNotFound is returned when the KeyResolver has no key for a kid.
	ErrKeyNotFound = errors.New("key not found")

	// ErrIdentityNotFound is returned when no identity is stored in a context.
	ErrIdentityNotFound = errors.New("identity not found in context")
)

// Error codes for failures that do not come from the validator.
const (
	ErrorCodeTokenMissing = "token_missing"
	ErrorCodeKeyNotFound  = "key_not_found"
	ErrorCodeUnknown      = "unknown"
)

// ErrorCode returns the machine-readable code for an error returned by
// CheckToken.
func ErrorCode(err error) string {
	var validationErr *validator.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return validationErr.Code
	case errors.Is(err, ErrJWTMissing):
		return ErrorCodeTokenMissing
	case errors.Is(err, ErrKeyNotFound):
		return ErrorCodeKeyNotFound
	default:
		return ErrorCodeUnknown
	}
}

// resolveKey calls lookup and makes sure any failure matches ErrKeyNotFound.
func resolveKey(ctx context.Context, lookup func(context.Context, string) (any, error), kid string) (any, error) {
	key, err := lookup(ctx, kid)
	if err == nil {
		return key, nil
	}

	if errors.Is(err, ErrKeyNotFound) {
		return nil, err
	}

	return nil, fmt.Errorf("%w: kid %q: %w", ErrKeyNotFound, kid, err)
}
