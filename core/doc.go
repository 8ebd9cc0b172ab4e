/*
Package core provides transport-agnostic MP-JWT verification.

The Core type sits between a transport (HTTP handler, gRPC interceptor, message
consumer) and the validator package. It owns the per-token flow so that every
transport gets the same behavior:

 1. an empty token is rejected with ErrJWTMissing, or passed through with a
    nil identity when credentials are optional
 2. the token is parsed as a signed or encrypted JWT
 3. an encrypted token is decrypted with the private key the KeyResolver
    returns for its kid header
 4. the signed token is verified against the configured issuer with the
    public key for its kid header (the outer kid if the inner one is empty)

# Basic Usage

	import (
	    "github.com/mpjwt/go-mpjwt/core"
	    "github.com/mpjwt/go-mpjwt/jwks"
	    "github.com/mpjwt/go-mpjwt/validator"
	)

	v, err := validator.New(validator.WithNamespacedClaims(true))
	if err != nil {
	    log.Fatal(err)
	}

	provider, err := jwks.NewProvider(
	    jwks.WithPublicKeys(publicSet),
	    jwks.WithPrivateKeys(privateSet),
	)
	if err != nil {
	    log.Fatal(err)
	}

	c, err := core.New(
	    core.WithValidator(v),
	    core.WithKeyResolver(provider),
	    core.WithIssuer("https://idp.example.com"),
	)
	if err != nil {
	    log.Fatal(err)
	}

	identity, err := c.CheckToken(ctx, bearerToken)
	if err != nil {
	    // errors.Is(err, validator.ErrInvalidToken), core.ErrKeyNotFound
	    // or core.ErrJWTMissing
	    return err
	}
	ctx = core.SetIdentity(ctx, identity)

# Observability

Logger, Metrics and Tracer are small interfaces. The root mpjwt package has
adapters for zap, logrus, zerolog, Prometheus and OpenTelemetry. Without
them the Core is silent.

Every CheckToken call increments mpjwt_token_verifications_total with result
and code labels and, when a token was presented, observes
mpjwt_token_verification_duration_seconds. The span mpjwt.CheckToken carries
mpjwt.result, mpjwt.code and mpjwt.encrypted tags.

# Error Codes

ErrorCode maps any error returned by CheckToken to a stable code: the
validator's ValidationError code, token_missing, key_not_found, or unknown.
*/
package core
