package validator

import (
	"time"
)

// DefaultNamespace is the claim name prefix stripped when namespaced claims
// are enabled and no custom namespace is configured.
const DefaultNamespace = "https://payara.fish/mp-jwt/"

// Signature algorithms
const (
	RS256 = SignatureAlgorithm("RS256") // RSASSA-PKCS-v1.5 using SHA-256
	ES256 = SignatureAlgorithm("ES256") // ECDSA using P-256 and SHA-256
)

// Key encryption algorithms
const (
	RSAOAEP = KeyEncryptionAlgorithm("RSA-OAEP") // RSAES OAEP using default parameters
)

// SignatureAlgorithm is a JWS signature algorithm.
type SignatureAlgorithm string

// KeyEncryptionAlgorithm is a JWE key management algorithm.
type KeyEncryptionAlgorithm string

// NamespaceCollisionPolicy decides the outcome when stripping the namespace
// prefix produces a claim name that is already taken.
type NamespaceCollisionPolicy int

const (
	// NamespaceCollisionReject fails verification with ErrMalformedToken.
	NamespaceCollisionReject NamespaceCollisionPolicy = iota
	// NamespaceCollisionPreferNamespaced keeps the value of the namespaced claim.
	NamespaceCollisionPreferNamespaced
)

// Validator verifies MP-JWT bearer tokens.
//
// A Validator is immutable after New returns and safe for concurrent use.
// Per-token state lives in the ParsedToken returned by Parse.
type Validator struct {
	namespacedClaims         bool                     // Optional.
	namespace                string                   // Optional.
	typeVerificationDisabled bool                     // Optional.
	collisionPolicy          NamespaceCollisionPolicy // Optional.
	maxTokenSize             int                      // Optional.
	now                      func() time.Time         // Optional.
}

// New sets up a new Validator with the given options.
//
// Example:
//
//	v, err := validator.New(
//	    validator.WithNamespacedClaims(true),
//	    validator.WithCustomNamespace("https://example.com/claims/"),
//	)
func New(opts ...Option) (*Validator, error) {
	v := &Validator{
		namespace:    DefaultNamespace,
		maxTokenSize: defaultMaxTokenSize,
		now:          time.Now,
	}

	for _, opt := range opts {
		if err := opt(v); err != nil {
			return nil, err
		}
	}

	return v, nil
}

// Verify validates a signed token and returns the caller's identity.
//
// The checks run in a fixed order and stop at the first failure:
// algorithm allow-list, payload decoding, namespace normalization, required
// claims, principal resolution, issuer, expiry and finally the signature.
// The signature is checked last so that cheap content checks fail before
// the expensive cryptographic one; a token is only ever accepted once all
// checks have passed.
//
// An *EncryptedToken must go through VerifyEncrypted (or Decrypt) first.
func (v *Validator) Verify(token ParsedToken, issuer string, publicKey any) (*VerifiedIdentity, error) {
	signed, err := signedToken(token)
	if err != nil {
		return nil, err
	}

	scheme, ok := signatureAlgorithms[SignatureAlgorithm(signed.header.Algorithm)]
	if !ok {
		return nil, newError(ErrUnsupportedAlgorithm, nil, "signing algorithm %q is not one of %v", signed.header.Algorithm, supportedSignatureAlgorithms())
	}

	claims, err := decodeClaims(signed.payload)
	if err != nil {
		return nil, err
	}

	if v.namespacedClaims {
		if claims, err = normalizeNamespace(claims, v.namespace, v.collisionPolicy); err != nil {
			return nil, err
		}
	}

	if missing := claims.missing(requiredClaims); len(missing) > 0 {
		return nil, newError(ErrMissingClaims, nil, "required claims missing: %v", missing)
	}

	principal, ok := claims.callerPrincipal()
	if !ok {
		return nil, newError(ErrMissingPrincipal, nil, "one of %v is required to be a non-null string", principalClaims)
	}

	if err := claims.checkIssuer(issuer); err != nil {
		return nil, err
	}

	if err := claims.checkNotExpired(v.now()); err != nil {
		return nil, err
	}

	if err := scheme.verify(signed, publicKey); err != nil {
		return nil, err
	}

	claims[ClaimRawToken] = signed.raw

	return &VerifiedIdentity{
		PrincipalName: principal,
		Claims:        claims,
	}, nil
}

// VerifyEncrypted decrypts token with privateKey if it is encrypted and then
// verifies the inner signed token exactly like Verify. A signed token is
// verified directly and privateKey is ignored.
func (v *Validator) VerifyEncrypted(token ParsedToken, issuer string, publicKey, privateKey any) (*VerifiedIdentity, error) {
	signed, err := v.Decrypt(token, privateKey)
	if err != nil {
		return nil, err
	}

	return v.Verify(signed, issuer, publicKey)
}

// KeyID returns the kid header of the parsed token without validating
// anything. Callers use it to pick the key to verify with.
func (v *Validator) KeyID(token ParsedToken) (string, error) {
	if isNil(token) {
		return "", newError(ErrNoParsedToken, nil, "no parsed signed or encrypted token")
	}
	return token.Header().KeyID, nil
}

func signedToken(token ParsedToken) (*SignedToken, error) {
	if isNil(token) {
		return nil, newError(ErrNoParsedToken, nil, "no parsed signed token")
	}

	signed, ok := token.(*SignedToken)
	if !ok {
		return nil, newError(ErrNoParsedToken, nil, "no parsed signed token, encrypted token must be decrypted first")
	}

	return signed, nil
}

func isNil(token ParsedToken) bool {
	switch t := token.(type) {
	case *SignedToken:
		return t == nil
	case *EncryptedToken:
		return t == nil
	default:
		return true
	}
}
