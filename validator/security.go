package validator

import (
	"strings"
)

const (
	// maxTokenDots is the number of dots in a JWE compact token
	// (header.key.iv.ciphertext.tag). JWS compact tokens have 2.
	maxTokenDots = 4

	// defaultMaxTokenSize bounds the accepted token length.
	// Valid JWTs should rarely exceed a few KB.
	defaultMaxTokenSize = 1024 * 1024
)

// validateTokenFormat rejects inputs that can never be a compact JWT before
// any segment is split or decoded.
func validateTokenFormat(token string, maxSize int) error {
	if token == "" {
		return newError(ErrMalformedToken, nil, "token is empty")
	}

	if len(token) > maxSize {
		return newError(ErrMalformedToken, nil, "token exceeds maximum size (%d bytes)", maxSize)
	}

	if dots := strings.Count(token, "."); dots > maxTokenDots {
		return newError(ErrMalformedToken, nil, "token contains %d dots, at most %d allowed", dots, maxTokenDots)
	}

	return nil
}
