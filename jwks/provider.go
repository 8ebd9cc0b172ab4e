package jwks

import (
	"context"
	"fmt"

	"github.com/lestrrat-go/jwx/v3/jwk"

	"github.com/mpjwt/go-mpjwt/core"
	"github.com/mpjwt/go-mpjwt/validator"
)

// ErrKeyNotFound is returned when a set holds no key for a kid.
// It matches core.ErrKeyNotFound.
var ErrKeyNotFound = fmt.Errorf("jwks: %w", core.ErrKeyNotFound)

// Provider resolves verification and decryption keys from fixed JSON Web
// Key Sets. It implements core.KeyResolver and is safe for concurrent use as
// long as the sets are not modified after NewProvider.
type Provider struct {
	publicKeys  jwk.Set // Required.
	privateKeys jwk.Set // Optional.
}

var _ core.KeyResolver = (*Provider)(nil)

// NewProvider builds and returns a new *Provider.
// Required options:
//   - WithPublicKeys: keys tokens are verified with
//
// Optional options:
//   - WithPrivateKeys: keys encrypted tokens are decrypted with
//
// Example:
//
//	publicSet, err := jwks.ParseSet(jwksJSON)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	provider, err := jwks.NewProvider(jwks.WithPublicKeys(publicSet))
func NewProvider(opts ...ProviderOption) (*Provider, error) {
	p := &Provider{}

	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}

	if p.publicKeys == nil {
		return nil, validator.NewConfigError("public keys are required but not set (use WithPublicKeys option)")
	}

	return p, nil
}

// PublicKey returns the raw public key for kid, such as *rsa.PublicKey or
// *ecdsa.PublicKey. A private key in the public set yields its public half.
//
// An empty kid resolves only when the set holds exactly one key.
func (p *Provider) PublicKey(_ context.Context, kid string) (any, error) {
	key, err := lookup(p.publicKeys, kid)
	if err != nil {
		return nil, err
	}

	public, err := jwk.PublicKeyOf(key)
	if err != nil {
		return nil, fmt.Errorf("could not derive public key for kid %q: %w", kid, err)
	}

	return export(public, kid)
}

// PrivateKey returns the raw private key for kid, such as *rsa.PrivateKey.
//
// An empty kid resolves only when the set holds exactly one key.
func (p *Provider) PrivateKey(_ context.Context, kid string) (any, error) {
	if p.privateKeys == nil {
		return nil, fmt.Errorf("%w: kid %q: no private keys configured", ErrKeyNotFound, kid)
	}

	key, err := lookup(p.privateKeys, kid)
	if err != nil {
		return nil, err
	}

	return export(key, kid)
}

func lookup(set jwk.Set, kid string) (jwk.Key, error) {
	if kid == "" {
		if set.Len() != 1 {
			return nil, fmt.Errorf("%w: token has no kid and the set holds %d keys", ErrKeyNotFound, set.Len())
		}

		key, ok := set.Key(0)
		if !ok {
			return nil, fmt.Errorf("%w: token has no kid", ErrKeyNotFound)
		}
		return key, nil
	}

	key, ok := set.LookupKeyID(kid)
	if !ok {
		return nil, fmt.Errorf("%w: kid %q", ErrKeyNotFound, kid)
	}

	return key, nil
}

func export(key jwk.Key, kid string) (any, error) {
	var raw any
	if err := jwk.Export(key, &raw); err != nil {
		return nil, fmt.Errorf("could not export key for kid %q: %w", kid, err)
	}

	return raw, nil
}
