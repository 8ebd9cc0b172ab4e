package mpjwt

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"testing"
	"time"

	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwe"
	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/lestrrat-go/jwx/v3/jws"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/mpjwt/go-mpjwt/core"
	"github.com/mpjwt/go-mpjwt/jwks"
	"github.com/mpjwt/go-mpjwt/validator"
)

const issuer = "https://idp.example"

// TestCheckToken_EndToEnd wires every package together the way a service
// would and checks both token forms.
func TestCheckToken_EndToEnd(t *testing.T) {
	signingKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	decryptionKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	publicSet := jwk.NewSet()
	publicKey, err := jwk.Import(&signingKey.PublicKey)
	require.NoError(t, err)
	require.NoError(t, publicKey.Set(jwk.KeyIDKey, "sig-1"))
	require.NoError(t, publicSet.AddKey(publicKey))

	privateSet := jwk.NewSet()
	privateKey, err := jwk.Import(decryptionKey)
	require.NoError(t, err)
	require.NoError(t, privateKey.Set(jwk.KeyIDKey, "enc-1"))
	require.NoError(t, privateSet.AddKey(privateKey))

	provider, err := jwks.NewProvider(jwks.WithPublicKeys(publicSet), jwks.WithPrivateKeys(privateSet))
	require.NoError(t, err)

	v, err := validator.New(validator.WithNamespacedClaims(true))
	require.NoError(t, err)

	observed, logs := observer.New(zapcore.DebugLevel)
	registry := prometheus.NewRegistry()

	c, err := core.New(
		core.WithValidator(v),
		core.WithKeyResolver(provider),
		core.WithIssuer(issuer),
		core.WithLogger(NewZapLogger(zap.New(observed))),
		core.WithMetrics(NewPrometheusMetrics(registry)),
		core.WithTracer(NewOpenTelemetryTracer(noop.NewTracerProvider().Tracer("test"))),
	)
	require.NoError(t, err)

	now := time.Now()
	claims := map[string]any{
		"iss":    issuer,
		"sub":    "24400320",
		"exp":    now.Add(time.Hour).Unix(),
		"iat":    now.Unix(),
		"jti":    "a-123",
		"groups": []string{"admin"},
	}
	claims[validator.DefaultNamespace+"upn"] = "jdoe@example.com"

	payload, err := json.Marshal(claims)
	require.NoError(t, err)

	signedHeaders := jws.NewHeaders()
	require.NoError(t, signedHeaders.Set("typ", "JWT"))
	require.NoError(t, signedHeaders.Set("kid", "sig-1"))
	signed, err := jws.Sign(payload, jws.WithKey(jwa.ES256(), signingKey, jws.WithProtectedHeaders(signedHeaders)))
	require.NoError(t, err)

	encryptedHeaders := jwe.NewHeaders()
	require.NoError(t, encryptedHeaders.Set("cty", "JWT"))
	require.NoError(t, encryptedHeaders.Set("kid", "enc-1"))
	encrypted, err := jwe.Encrypt(signed,
		jwe.WithKey(jwa.RSA_OAEP(), &decryptionKey.PublicKey),
		jwe.WithContentEncryption(jwa.A256GCM()),
		jwe.WithProtectedHeaders(encryptedHeaders),
	)
	require.NoError(t, err)

	for name, token := range map[string]string{"signed": string(signed), "encrypted": string(encrypted)} {
		t.Run(name, func(t *testing.T) {
			identity, err := c.CheckToken(context.Background(), token)
			require.NoError(t, err)

			assert.Equal(t, "jdoe@example.com", identity.PrincipalName)
			assert.Equal(t, []string{"admin"}, identity.Groups())
			assert.Equal(t, token, identity.RawToken())

			ctx := core.SetIdentity(context.Background(), identity)
			stored, err := core.GetIdentity(ctx)
			require.NoError(t, err)
			assert.Same(t, identity, stored)
		})
	}

	t.Run("rejected", func(t *testing.T) {
		_, err := c.CheckToken(context.Background(), string(signed)+"x")
		assert.ErrorIs(t, err, validator.ErrInvalidToken)
	})

	assert.Equal(t, 2, logs.FilterMessage("Token validated successfully").Len())
	assert.Equal(t, 1, logs.FilterMessage("Token validation failed").Len())

	counter := &dto.Metric{}
	families, err := registry.Gather()
	require.NoError(t, err)
	for _, family := range families {
		if family.GetName() != core.MetricVerifications {
			continue
		}
		for _, metric := range family.GetMetric() {
			for _, label := range metric.GetLabel() {
				if label.GetName() == "result" && label.GetValue() == core.ResultSuccess {
					counter = metric
				}
			}
		}
	}
	assert.Equal(t, float64(2), counter.GetCounter().GetValue())
}
