package core

import "context"

// Metric and span names emitted by CheckToken.
const (
	MetricVerifications        = "mpjwt_token_verifications_total"
	MetricVerificationDuration = "mpjwt_token_verification_duration_seconds"

	SpanCheckToken = "mpjwt.CheckToken"

	TagResult    = "mpjwt.result"
	TagCode      = "mpjwt.code"
	TagEncrypted = "mpjwt.encrypted"
)

// Values of the result label and span tag.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
	ResultSkipped = "skipped"
)

// Metrics is a generic metrics interface for the Core.
type Metrics interface {
	IncCounter(name string, tags map[string]string)
	ObserveHistogram(name string, value float64, tags map[string]string)
}

// NoopMetrics is the default metrics implementation and does nothing.
type NoopMetrics struct{}

func (NoopMetrics) IncCounter(name string, tags map[string]string)                      {}
func (NoopMetrics) ObserveHistogram(name string, value float64, tags map[string]string) {}

// Tracer is a generic tracing interface for the Core.
type Tracer interface {
	StartSpan(ctx context.Context, operationName string) (context.Context, Span)
}

// Span is a single traced operation.
type Span interface {
	Finish()
	SetTag(key string, value any)
	RecordError(err error)
}

// NoopTracer is the default tracer and does nothing.
type NoopTracer struct{}

func (NoopTracer) StartSpan(ctx context.Context, operationName string) (context.Context, Span) {
	return ctx, NoopSpan{}
}

// NoopSpan is the span returned by NoopTracer.
type NoopSpan struct{}

func (NoopSpan) Finish()                      {}
func (NoopSpan) SetTag(key string, value any) {}
func (NoopSpan) RecordError(err error)        {}
