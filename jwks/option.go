package jwks

import (
	"bytes"
	"fmt"

	"github.com/lestrrat-go/jwx/v3/jwk"

	"github.com/mpjwt/go-mpjwt/validator"
)

// ProviderOption is how options for the Provider are set up.
type ProviderOption func(*Provider) error

// WithPublicKeys sets the keys signed tokens are verified with.
// This is a required option.
func WithPublicKeys(set jwk.Set) ProviderOption {
	return func(p *Provider) error {
		if set == nil {
			return validator.NewConfigError("public key set cannot be nil")
		}
		if set.Len() == 0 {
			return validator.NewConfigError("public key set cannot be empty")
		}
		p.publicKeys = set
		return nil
	}
}

// WithPrivateKeys sets the keys encrypted tokens are decrypted with.
// Without it, every encrypted token fails with ErrKeyNotFound.
func WithPrivateKeys(set jwk.Set) ProviderOption {
	return func(p *Provider) error {
		if set == nil {
			return validator.NewConfigError("private key set cannot be nil")
		}
		if set.Len() == 0 {
			return validator.NewConfigError("private key set cannot be empty")
		}
		p.privateKeys = set
		return nil
	}
}

// ParseSet parses key material into a set. data may be a JWKS document, a
// single JWK, or one or more PEM blocks.
func ParseSet(data []byte) (jwk.Set, error) {
	set, err := jwk.Parse(data, jwk.WithPEM(isPEM(data)))
	if err != nil {
		return nil, fmt.Errorf("could not parse keys: %w", err)
	}

	return set, nil
}

func isPEM(data []byte) bool {
	return bytes.HasPrefix(bytes.TrimSpace(data), []byte("-----BEGIN"))
}
