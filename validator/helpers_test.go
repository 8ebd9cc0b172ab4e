package validator

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwe"
	"github.com/lestrrat-go/jwx/v3/jws"
	"github.com/stretchr/testify/require"
)

const (
	testIssuer  = "https://idp.example"
	testSubject = "24400320"
	testUPN     = "jdoe@example.com"
)

var testNow = time.Unix(1700000000, 0)

type testKeys struct {
	rsa      *rsa.PrivateKey
	otherRSA *rsa.PrivateKey
	ec       *ecdsa.PrivateKey
	otherEC  *ecdsa.PrivateKey
	p384     *ecdsa.PrivateKey
}

var (
	keysOnce   sync.Once
	sharedKeys testKeys
	keysErr    error
)

// keys returns key pairs shared by all tests in the package.
func keys(t *testing.T) testKeys {
	t.Helper()

	keysOnce.Do(func() {
		var k testKeys
		if k.rsa, keysErr = rsa.GenerateKey(rand.Reader, 2048); keysErr != nil {
			return
		}
		if k.otherRSA, keysErr = rsa.GenerateKey(rand.Reader, 2048); keysErr != nil {
			return
		}
		if k.ec, keysErr = ecdsa.GenerateKey(elliptic.P256(), rand.Reader); keysErr != nil {
			return
		}
		if k.otherEC, keysErr = ecdsa.GenerateKey(elliptic.P256(), rand.Reader); keysErr != nil {
			return
		}
		if k.p384, keysErr = ecdsa.GenerateKey(elliptic.P384(), rand.Reader); keysErr != nil {
			return
		}
		sharedKeys = k
	})
	require.NoError(t, keysErr)

	return sharedKeys
}

// validClaims returns a claim set that passes every content check at testNow.
func validClaims() map[string]any {
	return map[string]any{
		"iss":    testIssuer,
		"sub":    testSubject,
		"exp":    testNow.Add(time.Hour).Unix(),
		"iat":    testNow.Add(-time.Minute).Unix(),
		"jti":    "a-123",
		"upn":    testUPN,
		"groups": []string{"admin", "user"},
	}
}

func withClaims(claims map[string]any, overrides map[string]any) map[string]any {
	for name, value := range overrides {
		claims[name] = value
	}
	return claims
}

func withoutClaim(claims map[string]any, name string) map[string]any {
	delete(claims, name)
	return claims
}

func jwtHeaders() map[string]any {
	return map[string]any{"typ": "JWT", "kid": "sig-key"}
}

// signedJWT signs claims with jwx and returns the compact token.
func signedJWT(t *testing.T, alg jwa.SignatureAlgorithm, key any, claims map[string]any, headers map[string]any) string {
	t.Helper()

	payload, err := json.Marshal(claims)
	require.NoError(t, err)

	protected := jws.NewHeaders()
	for name, value := range headers {
		require.NoError(t, protected.Set(name, value))
	}

	signed, err := jws.Sign(payload, jws.WithKey(alg, key, jws.WithProtectedHeaders(protected)))
	require.NoError(t, err)

	return string(signed)
}

// compactToken assembles a token by hand so tests can use algorithms,
// payloads and signatures jwx would refuse to produce.
func compactToken(t *testing.T, header map[string]any, payload any, signature string) string {
	t.Helper()

	headerJSON, err := json.Marshal(header)
	require.NoError(t, err)

	var payloadJSON []byte
	switch p := payload.(type) {
	case []byte:
		payloadJSON = p
	default:
		payloadJSON, err = json.Marshal(p)
		require.NoError(t, err)
	}

	return segment(headerJSON) + "." + segment(payloadJSON) + "." + segment([]byte(signature))
}

// encryptedJWT wraps payload in a compact JWE using alg and A256GCM.
func encryptedJWT(t *testing.T, alg jwa.KeyEncryptionAlgorithm, key any, payload []byte, headers map[string]any) string {
	t.Helper()

	protected := jwe.NewHeaders()
	for name, value := range headers {
		require.NoError(t, protected.Set(name, value))
	}

	encrypted, err := jwe.Encrypt(payload,
		jwe.WithKey(alg, key),
		jwe.WithContentEncryption(jwa.A256GCM()),
		jwe.WithProtectedHeaders(protected),
	)
	require.NoError(t, err)

	return string(encrypted)
}

func segment(b []byte) string {
	return base64.RawURLEncoding.EncodeToString(b)
}

func newTestValidator(t *testing.T, opts ...Option) *Validator {
	t.Helper()

	opts = append([]Option{WithTimeFunc(func() time.Time { return testNow })}, opts...)
	v, err := New(opts...)
	require.NoError(t, err)

	return v
}

// parseAndVerify runs the signed path end to end.
func parseAndVerify(t *testing.T, v *Validator, token, issuer string, publicKey any) (*VerifiedIdentity, error) {
	t.Helper()

	parsed, err := v.Parse(token)
	if err != nil {
		return nil, err
	}

	return v.Verify(parsed, issuer, publicKey)
}
