package validator

import (
	"time"
)

// Option is how options for the Validator are set up.
// Options return errors to enable validation during construction.
type Option func(*Validator) error

// WithNamespacedClaims enables stripping of the namespace prefix from
// claim names before the claims are validated.
//
// The prefix is DefaultNamespace unless overridden with WithCustomNamespace.
func WithNamespacedClaims(enabled bool) Option {
	return func(v *Validator) error {
		v.namespacedClaims = enabled
		return nil
	}
}

// WithCustomNamespace overrides the namespace prefix stripped when
// namespaced claims are enabled. It has no effect on its own.
func WithCustomNamespace(namespace string) Option {
	return func(v *Validator) error {
		if namespace == "" {
			return NewConfigError("custom namespace cannot be empty")
		}
		v.namespace = namespace
		return nil
	}
}

// WithTypeVerificationDisabled turns off the check that the signed token's
// typ header (or the encrypted token's cty header) is "JWT".
func WithTypeVerificationDisabled(disabled bool) Option {
	return func(v *Validator) error {
		v.typeVerificationDisabled = disabled
		return nil
	}
}

// WithNamespaceCollisionPolicy sets what happens when stripping the
// namespace makes two claims share a name. The default is
// NamespaceCollisionReject.
func WithNamespaceCollisionPolicy(policy NamespaceCollisionPolicy) Option {
	return func(v *Validator) error {
		switch policy {
		case NamespaceCollisionReject, NamespaceCollisionPreferNamespaced:
			v.collisionPolicy = policy
			return nil
		default:
			return NewConfigError("unknown namespace collision policy")
		}
	}
}

// WithTimeFunc sets the clock used for the expiry check.
// If not set, time.Now is used.
func WithTimeFunc(now func() time.Time) Option {
	return func(v *Validator) error {
		if now == nil {
			return NewConfigError("time func cannot be nil")
		}
		v.now = now
		return nil
	}
}

// WithMaxTokenSize bounds the length of tokens accepted by Parse.
// The default is 1 MiB.
func WithMaxTokenSize(size int) Option {
	return func(v *Validator) error {
		if size <= 0 {
			return NewConfigError("max token size must be positive")
		}
		v.maxTokenSize = size
		return nil
	}
}
