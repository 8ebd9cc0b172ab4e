package validator

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rsa"
	"fmt"

	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/lestrrat-go/jwx/v3/jws"
)

// signatureScheme binds an allowed signature algorithm to its jwx
// counterpart and the public key type it requires.
type signatureScheme struct {
	algorithm jwa.SignatureAlgorithm
	publicKey func(any) (any, error)
}

// signatureAlgorithms is the signature allow-list. An algorithm not listed
// here is rejected before any claim is read.
var signatureAlgorithms = map[SignatureAlgorithm]signatureScheme{
	RS256: {algorithm: jwa.RS256(), publicKey: rsaPublicKey},
	ES256: {algorithm: jwa.ES256(), publicKey: p256PublicKey},
}

// verify checks the token signature with jwx. Any failure, including a key
// of the wrong type, is ErrInvalidSignature.
func (s signatureScheme) verify(token *SignedToken, key any) error {
	publicKey, err := s.publicKey(key)
	if err != nil {
		return newError(ErrInvalidSignature, err, "public key does not match algorithm %s", s.algorithm)
	}

	if _, err := jws.Verify(token.compact, jws.WithKey(s.algorithm, publicKey)); err != nil {
		return newError(ErrInvalidSignature, err, "failed to verify %s signature", s.algorithm)
	}

	return nil
}

func rsaPublicKey(key any) (any, error) {
	raw, err := exportKey(key)
	if err != nil {
		return nil, err
	}

	publicKey, ok := raw.(*rsa.PublicKey)
	if !ok || publicKey == nil {
		return nil, fmt.Errorf("expected *rsa.PublicKey, got %T", raw)
	}

	return publicKey, nil
}

func p256PublicKey(key any) (any, error) {
	raw, err := exportKey(key)
	if err != nil {
		return nil, err
	}

	publicKey, ok := raw.(*ecdsa.PublicKey)
	if !ok || publicKey == nil {
		return nil, fmt.Errorf("expected *ecdsa.PublicKey, got %T", raw)
	}
	if publicKey.Curve == nil {
		return nil, fmt.Errorf("ecdsa public key has no curve")
	}
	if publicKey.Curve != elliptic.P256() {
		return nil, fmt.Errorf("expected P-256 curve, got %s", publicKey.Curve.Params().Name)
	}

	return publicKey, nil
}

// exportKey turns a jwk.Key into its raw crypto key. Other values are
// returned as they are.
func exportKey(key any) (any, error) {
	switch k := key.(type) {
	case nil:
		return nil, fmt.Errorf("key is nil")
	case jwk.Key:
		var raw any
		if err := jwk.Export(k, &raw); err != nil {
			return nil, fmt.Errorf("failed to export JWK: %w", err)
		}
		return raw, nil
	default:
		return key, nil
	}
}
