package core

import (
	"github.com/mpjwt/go-mpjwt/validator"
)

// Option is a function that configures the Core.
// Options return errors to enable validation during construction.
type Option func(*Core) error

// New creates a new Core instance with the provided options.
//
// WithValidator, WithKeyResolver and WithIssuer are required. Logging is off
// and metrics and tracing are no-ops unless configured.
//
// Example:
//
//	c, err := core.New(
//	    core.WithValidator(v),
//	    core.WithKeyResolver(provider),
//	    core.WithIssuer("https://idp.example.com"),
//	    core.WithLogger(logger),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
func New(opts ...Option) (*Core, error) {
	c := &Core{
		credentialsOptional: false,
		metrics:             NoopMetrics{},
		tracer:              NoopTracer{},
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	if err := c.validate(); err != nil {
		return nil, err
	}

	return c, nil
}

// validate ensures all required fields are set.
func (c *Core) validate() error {
	if c.validator == nil {
		return validator.NewConfigError("validator is required but not set (use WithValidator option)")
	}
	if c.keys == nil {
		return validator.NewConfigError("key resolver is required but not set (use WithKeyResolver option)")
	}
	if c.issuer == "" {
		return validator.NewConfigError("issuer is required but not set (use WithIssuer option)")
	}
	return nil
}

// WithValidator sets the validator for the Core. This is a required option.
func WithValidator(v Validator) Option {
	return func(c *Core) error {
		if v == nil {
			return validator.NewConfigError("validator cannot be nil")
		}
		c.validator = v
		return nil
	}
}

// WithKeyResolver sets where verification and decryption keys come from.
// This is a required option.
func WithKeyResolver(keys KeyResolver) Option {
	return func(c *Core) error {
		if keys == nil {
			return validator.NewConfigError("key resolver cannot be nil")
		}
		c.keys = keys
		return nil
	}
}

// WithIssuer sets the issuer every token's iss claim must equal exactly.
// This is a required option.
func WithIssuer(issuer string) Option {
	return func(c *Core) error {
		if issuer == "" {
			return validator.NewConfigError("issuer cannot be empty")
		}
		c.issuer = issuer
		return nil
	}
}

// WithCredentialsOptional configures whether an empty token is accepted.
//
// When set to true, CheckToken returns a nil identity and no error for an
// empty token. When set to false (default), it returns ErrJWTMissing.
func WithCredentialsOptional(optional bool) Option {
	return func(c *Core) error {
		c.credentialsOptional = optional
		return nil
	}
}

// WithLogger sets an optional logger for the Core.
//
// The Core logs missing tokens, failures with their error code and duration,
// and successes with the principal and kid. Tokens are never logged.
func WithLogger(logger Logger) Option {
	return func(c *Core) error {
		if logger == nil {
			return validator.NewConfigError("logger cannot be nil")
		}
		c.logger = logger
		return nil
	}
}

// WithMetrics sets where verification counters and durations are recorded.
func WithMetrics(metrics Metrics) Option {
	return func(c *Core) error {
		if metrics == nil {
			return validator.NewConfigError("metrics cannot be nil")
		}
		c.metrics = metrics
		return nil
	}
}

// WithTracer sets the tracer used to span each CheckToken call.
func WithTracer(tracer Tracer) Option {
	return func(c *Core) error {
		if tracer == nil {
			return validator.NewConfigError("tracer cannot be nil")
		}
		c.tracer = tracer
		return nil
	}
}
