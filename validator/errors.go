package validator

import (
	"errors"
	"fmt"
)

// Sentinel errors for token verification. Every error returned by the
// Validator is a *ValidationError that matches exactly one of these with
// errors.Is, and also matches ErrInvalidToken.
var (
	// ErrInvalidToken matches every verification failure.
	ErrInvalidToken = errors.New("token invalid")

	ErrMalformedToken       = errors.New("token malformed")
	ErrInvalidType          = errors.New("token type is not JWT")
	ErrUnsupportedAlgorithm = errors.New("unsupported algorithm")
	ErrDecryption           = errors.New("token decryption failed")
	ErrMissingClaims        = errors.New("required claims missing")
	ErrMissingPrincipal     = errors.New("caller principal missing")
	ErrIssuerMismatch       = errors.New("issuer mismatch")
	ErrExpiredToken         = errors.New("token expired")
	ErrInvalidSignature     = errors.New("signature invalid")
	ErrNoParsedToken        = errors.New("no parsed token")
)

// Error codes carried by ValidationError.
const (
	ErrorCodeTokenMalformed       = "token_malformed"
	ErrorCodeInvalidType          = "invalid_type"
	ErrorCodeUnsupportedAlgorithm = "unsupported_algorithm"
	ErrorCodeDecryptionFailed     = "decryption_failed"
	ErrorCodeMissingClaims        = "missing_claims"
	ErrorCodeMissingPrincipal     = "missing_principal"
	ErrorCodeInvalidIssuer        = "invalid_issuer"
	ErrorCodeTokenExpired         = "token_expired"
	ErrorCodeInvalidSignature     = "invalid_signature"
	ErrorCodeNoParsedToken        = "no_parsed_token"
	ErrorCodeConfigInvalid        = "config_invalid"
)

var errorCodes = map[error]string{
	ErrMalformedToken:       ErrorCodeTokenMalformed,
	ErrInvalidType:          ErrorCodeInvalidType,
	ErrUnsupportedAlgorithm: ErrorCodeUnsupportedAlgorithm,
	ErrDecryption:           ErrorCodeDecryptionFailed,
	ErrMissingClaims:        ErrorCodeMissingClaims,
	ErrMissingPrincipal:     ErrorCodeMissingPrincipal,
	ErrIssuerMismatch:       ErrorCodeInvalidIssuer,
	ErrExpiredToken:         ErrorCodeTokenExpired,
	ErrInvalidSignature:     ErrorCodeInvalidSignature,
	ErrNoParsedToken:        ErrorCodeNoParsedToken,
}

// ValidationError wraps a verification failure with a machine-readable code.
// It provides structured error information that can be used for
// logging, metrics, and mapping to transport-level responses.
type ValidationError struct {
	// Code is a machine-readable error code (e.g., "token_expired", "invalid_signature").
	Code string

	// Message is a human-readable error message.
	Message string

	// Details contains the underlying error, if any.
	Details error

	kind error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Details != nil {
		return e.Message + ": " + e.Details.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error for error unwrapping.
func (e *ValidationError) Unwrap() error {
	return e.Details
}

// Is reports whether target is ErrInvalidToken or the sentinel this error
// was created for.
func (e *ValidationError) Is(target error) bool {
	if e.kind == nil {
		return false
	}
	return target == ErrInvalidToken || target == e.kind
}

// NewConfigError creates a ValidationError for invalid configuration.
// Configuration errors do not match ErrInvalidToken.
func NewConfigError(message string) *ValidationError {
	return &ValidationError{
		Code:    ErrorCodeConfigInvalid,
		Message: message,
	}
}

// newError builds a ValidationError for the given sentinel.
func newError(kind error, details error, format string, args ...any) *ValidationError {
	return &ValidationError{
		Code:    errorCodes[kind],
		Message: fmt.Sprintf(format, args...),
		Details: details,
		kind:    kind,
	}
}
