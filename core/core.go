// Package core provides transport-agnostic MP-JWT verification that ties the
// validator to key resolution, logging, metrics and tracing.
//
// The Core type owns the per-request flow: classify the token, pick keys by
// kid, decrypt if needed and verify against the configured issuer.
package core

import (
	"context"
	"time"

	"github.com/mpjwt/go-mpjwt/validator"
)

// Validator defines the token operations the Core drives.
// *validator.Validator implements it.
type Validator interface {
	Parse(token string) (validator.ParsedToken, error)
	Decrypt(token validator.ParsedToken, privateKey any) (*validator.SignedToken, error)
	Verify(token validator.ParsedToken, issuer string, publicKey any) (*validator.VerifiedIdentity, error)
}

// KeyResolver looks up verification and decryption keys by kid.
// An empty kid means the token did not name a key.
type KeyResolver interface {
	PublicKey(ctx context.Context, kid string) (any, error)
	PrivateKey(ctx context.Context, kid string) (any, error)
}

// Logger defines an optional logging interface for the Core.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Core is the transport-agnostic MP-JWT verification engine.
// It is safe for concurrent use once New returns.
type Core struct {
	validator           Validator
	keys                KeyResolver
	issuer              string
	credentialsOptional bool
	logger              Logger
	metrics             Metrics
	tracer              Tracer
}

// CheckToken verifies a compact MP-JWT and returns the caller's identity.
//
//   - If token is empty and credentialsOptional is true, returns (nil, nil)
//   - If token is empty and credentialsOptional is false, returns ErrJWTMissing
//   - Otherwise the token is parsed, decrypted when it is a JWE, and verified
//     with the keys the KeyResolver returns for its kid headers
//
// Verification failures are *validator.ValidationError values; key lookup
// failures match ErrKeyNotFound.
func (c *Core) CheckToken(ctx context.Context, token string) (*validator.VerifiedIdentity, error) {
	ctx, span := c.tracer.StartSpan(ctx, SpanCheckToken)
	defer span.Finish()

	if token == "" {
		if c.credentialsOptional {
			if c.logger != nil {
				c.logger.Debug("No token provided, but credentials are optional")
			}
			span.SetTag(TagResult, ResultSkipped)
			c.metrics.IncCounter(MetricVerifications, map[string]string{"result": ResultSkipped, "code": ""})
			return nil, nil
		}

		if c.logger != nil {
			c.logger.Warn("No token provided and credentials are required")
		}
		c.fail(span, ErrJWTMissing, 0)

		return nil, ErrJWTMissing
	}

	start := time.Now()
	identity, kid, err := c.verify(ctx, token, span)
	duration := time.Since(start)

	if err != nil {
		code := c.fail(span, err, duration)
		if c.logger != nil {
			c.logger.Error("Token validation failed", "code", code, "error", err, "duration", duration)
		}

		return nil, err
	}

	span.SetTag(TagResult, ResultSuccess)
	c.metrics.IncCounter(MetricVerifications, map[string]string{"result": ResultSuccess, "code": ""})
	c.metrics.ObserveHistogram(MetricVerificationDuration, duration.Seconds(), map[string]string{"result": ResultSuccess})

	if c.logger != nil {
		c.logger.Debug("Token validated successfully", "principal", identity.PrincipalName, "kid", kid, "duration", duration)
	}

	return identity, nil
}

// verify runs parse, decrypt and verify and returns the kid the public key
// was resolved with.
func (c *Core) verify(ctx context.Context, token string, span Span) (*validator.VerifiedIdentity, string, error) {
	parsed, err := c.validator.Parse(token)
	if err != nil {
		return nil, "", err
	}

	outerKID := parsed.Header().KeyID

	signed, isSigned := parsed.(*validator.SignedToken)
	span.SetTag(TagEncrypted, !isSigned)

	if !isSigned {
		privateKey, err := resolveKey(ctx, c.keys.PrivateKey, outerKID)
		if err != nil {
			return nil, "", err
		}

		if signed, err = c.validator.Decrypt(parsed, privateKey); err != nil {
			return nil, "", err
		}
	}

	kid := signed.Header().KeyID
	if kid == "" {
		kid = outerKID
	}

	publicKey, err := resolveKey(ctx, c.keys.PublicKey, kid)
	if err != nil {
		return nil, kid, err
	}

	identity, err := c.validator.Verify(signed, c.issuer, publicKey)
	if err != nil {
		return nil, kid, err
	}

	return identity, kid, nil
}

// fail records a failed check on the span and in metrics and returns the
// error code it was recorded under.
func (c *Core) fail(span Span, err error, duration time.Duration) string {
	code := ErrorCode(err)

	span.SetTag(TagResult, ResultFailure)
	span.SetTag(TagCode, code)
	span.RecordError(err)

	c.metrics.IncCounter(MetricVerifications, map[string]string{"result": ResultFailure, "code": code})
	if duration > 0 {
		c.metrics.ObserveHistogram(MetricVerificationDuration, duration.Seconds(), map[string]string{"result": ResultFailure})
	}

	return code
}
