// Package observe provides the gateway's observability primitives:
// OpenTelemetry metrics with a Prometheus exporter bridge so the standard
// /metrics endpoint keeps working.
//
// A package-level default [Metrics] instance ([DefaultMetrics]) is provided
// for convenience; tests should use [NewMetrics] with their own
// [metric.MeterProvider] to avoid cross-test pollution.
package observe

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// meterName is the instrumentation scope name for all gateway metrics.
const meterName = "github.com/dr-ninja/toolko"

// Outcome labels for the generation counter.
const (
	OutcomeSuccess   = "success"
	OutcomeRejected  = "rejected"
	OutcomeUpstream  = "upstream_error"
	OutcomeCancelled = "cancelled"
	OutcomeCacheHit  = "cache_hit"
)

// Metrics holds the OTel instruments for the gateway. The underlying OTel
// types handle their own synchronisation, so all fields are safe for
// concurrent use.
type Metrics struct {
	// Generations counts generation requests. Attributes: tool, outcome.
	Generations metric.Int64Counter

	// TokensUsed accumulates provider-reported token usage. Attributes:
	// tool, model.
	TokensUsed metric.Int64Counter

	// GenerationDuration tracks end-to-end generation latency including
	// the provider call. Attributes: tool.
	GenerationDuration metric.Float64Histogram
}

// latencyBuckets covers the range from validation rejections (ms) to slow
// provider calls (up to the 120 s dispatch timeout).
var latencyBuckets = []float64{
	0.005, 0.025, 0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120,
}

// NewMetrics creates a fully initialised [Metrics] using the given
// [metric.MeterProvider].
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	if met.Generations, err = m.Int64Counter("toolko.generations",
		metric.WithDescription("Total generation requests by tool and outcome."),
	); err != nil {
		return nil, err
	}
	if met.TokensUsed, err = m.Int64Counter("toolko.tokens_used",
		metric.WithDescription("Total provider-reported tokens by tool and model."),
	); err != nil {
		return nil, err
	}
	if met.GenerationDuration, err = m.Float64Histogram("toolko.generation.duration",
		metric.WithDescription("End-to-end generation latency by tool."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}

	return met, nil
}

// RecordGeneration records one finished generation attempt.
func (m *Metrics) RecordGeneration(ctx context.Context, tool, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.Generations.Add(ctx, 1,
		metric.WithAttributes(attribute.String("tool", tool), attribute.String("outcome", outcome)))
	m.GenerationDuration.Record(ctx, elapsed.Seconds(),
		metric.WithAttributes(attribute.String("tool", tool)))
}

// RecordTokens records provider-reported token usage.
func (m *Metrics) RecordTokens(ctx context.Context, tool, model string, tokens int) {
	if m == nil || tokens <= 0 {
		return
	}
	m.TokensUsed.Add(ctx, int64(tokens),
		metric.WithAttributes(attribute.String("tool", tool), attribute.String("model", model)))
}

var (
	defaultMetrics     *Metrics
	defaultMetricsOnce sync.Once
)

// DefaultMetrics returns the package-level [Metrics], creating it on first
// call from the global meter provider. Panics if instrument creation fails,
// which cannot happen with the global provider.
func DefaultMetrics() *Metrics {
	defaultMetricsOnce.Do(func() {
		var err error
		defaultMetrics, err = NewMetrics(otel.GetMeterProvider())
		if err != nil {
			panic(err)
		}
	})
	return defaultMetrics
}
