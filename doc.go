/*
Package mpjwt verifies MicroProfile JWT (MP-JWT) bearer tokens and connects
the verifier to common logging, metrics and tracing libraries.

The work is split across packages:

  - validator: parses compact JWS and JWE tokens and verifies a token's
    algorithm, claims, issuer, expiry and signature
  - core: runs the per-request flow (parse, pick keys by kid, decrypt,
    verify) and reports it through Logger, Metrics and Tracer
  - jwks: resolves keys for core from JSON Web Key Sets
  - mpjwt (this package): core.Logger, core.Metrics and core.Tracer
    adapters for zap, logrus, zerolog, Prometheus and OpenTelemetry

# Quick Start

	v, err := validator.New()
	if err != nil {
	    log.Fatal(err)
	}

	publicSet, err := jwks.ParseSet(publicKeyPEM)
	if err != nil {
	    log.Fatal(err)
	}
	provider, err := jwks.NewProvider(jwks.WithPublicKeys(publicSet))
	if err != nil {
	    log.Fatal(err)
	}

	zapLogger, _ := zap.NewProduction()

	c, err := core.New(
	    core.WithValidator(v),
	    core.WithKeyResolver(provider),
	    core.WithIssuer("https://idp.example.com"),
	    core.WithLogger(mpjwt.NewZapLogger(zapLogger)),
	    core.WithMetrics(mpjwt.NewPrometheusMetrics(prometheus.DefaultRegisterer)),
	    core.WithTracer(mpjwt.NewOpenTelemetryTracer(otel.Tracer("mpjwt"))),
	)
	if err != nil {
	    log.Fatal(err)
	}

	identity, err := c.CheckToken(ctx, bearerToken)
	if err != nil {
	    return err
	}
	fmt.Println(identity.PrincipalName, identity.Groups())

# Logging

The adapters pass the Core's key-value arguments through as structured
fields:

	mpjwt.NewZapLogger(zapLogger)
	mpjwt.NewLogrusLogger(logrus.StandardLogger())
	mpjwt.NewZerologLogger(zerolog.New(os.Stderr))

# Metrics

NewPrometheusMetrics registers vectors lazily on the given registerer:

  - mpjwt_token_verifications_total{result, code}
  - mpjwt_token_verification_duration_seconds{result}

# Tracing

NewOpenTelemetryTracer starts one mpjwt.CheckToken span per call, tagged with
mpjwt.result, mpjwt.code and mpjwt.encrypted. Failures are recorded on the
span and set its status to error.
*/
package mpjwt
