package core

import (
	"context"

	"github.com/mpjwt/go-mpjwt/validator"
)

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey int

const (
	identityKey contextKey = iota
)

// GetIdentity retrieves the verified identity stored by SetIdentity.
//
// Example usage:
//
//	identity, err := core.GetIdentity(ctx)
//	if err != nil {
//	    return err
//	}
//	log.Printf("caller %s", identity.PrincipalName)
func GetIdentity(ctx context.Context) (*validator.VerifiedIdentity, error) {
	identity, ok := ctx.Value(identityKey).(*validator.VerifiedIdentity)
	if !ok || identity == nil {
		return nil, ErrIdentityNotFound
	}

	return identity, nil
}

// SetIdentity stores a verified identity in the context.
func SetIdentity(ctx context.Context, identity *validator.VerifiedIdentity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// HasIdentity checks if an identity exists in the context without retrieving it.
func HasIdentity(ctx context.Context) bool {
	_, err := GetIdentity(ctx)
	return err == nil
}
