package validator

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError(t *testing.T) {
	sentinels := []error{
		ErrMalformedToken,
		ErrInvalidType,
		ErrUnsupportedAlgorithm,
		ErrDecryption,
		ErrMissingClaims,
		ErrMissingPrincipal,
		ErrIssuerMismatch,
		ErrExpiredToken,
		ErrInvalidSignature,
		ErrNoParsedToken,
	}

	for _, sentinel := range sentinels {
		t.Run(sentinel.Error(), func(t *testing.T) {
			err := newError(sentinel, nil, "failed with %d", 1)

			assert.ErrorIs(t, err, sentinel)
			assert.ErrorIs(t, err, ErrInvalidToken)
			assert.NotEmpty(t, err.Code)
			assert.Equal(t, errorCodes[sentinel], err.Code)

			for _, other := range sentinels {
				if other != sentinel {
					assert.NotErrorIs(t, err, other)
				}
			}
		})
	}
}

func TestValidationError_Details(t *testing.T) {
	cause := errors.New("boom")
	err := newError(ErrDecryption, cause, "failed to decrypt token")

	assert.Equal(t, "failed to decrypt token: boom", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Same(t, cause, errors.Unwrap(err))
	assert.Equal(t, ErrorCodeDecryptionFailed, err.Code)
}

func TestValidationError_Wrapped(t *testing.T) {
	err := fmt.Errorf("checking token: %w", newError(ErrExpiredToken, nil, "token expired"))

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, ErrorCodeTokenExpired, validationErr.Code)
	assert.ErrorIs(t, err, ErrExpiredToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewConfigError(t *testing.T) {
	err := NewConfigError("bad option")

	assert.Equal(t, "bad option", err.Error())
	assert.Equal(t, ErrorCodeConfigInvalid, err.Code)
	assert.NotErrorIs(t, err, ErrInvalidToken)
	assert.Nil(t, errors.Unwrap(err))
}
