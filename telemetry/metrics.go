// Package telemetry provides Prometheus metrics, OpenTelemetry tracing setup,
// and correlation-id aware logging helpers.
package telemetry

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	once sync.Once

	// Counters
	UpdateCycles   prometheus.Counter
	UpdateFailures prometheus.Counter

	// Histograms (seconds)
	CycleDuration      prometheus.Observer
	APIRequestDuration prometheus.Observer

	// Gauges
	LastUpdateUnix prometheus.Gauge
)

// Init registers metrics (idempotent).
func Init() {
	once.Do(func() {
		UpdateCycles = promauto.NewCounter(prometheus.CounterOpts{Name: "clockname_update_cycles_total", Help: "Number of name update cycles started"})
		UpdateFailures = promauto.NewCounter(prometheus.CounterOpts{Name: "clockname_update_failures_total", Help: "Number of name update cycles that failed"})
		CycleDuration = promauto.NewHistogram(prometheus.HistogramOpts{Name: "clockname_cycle_duration_seconds", Help: "Update cycle duration seconds", Buckets: prometheus.DefBuckets})
		APIRequestDuration = promauto.NewHistogram(prometheus.HistogramOpts{Name: "clockname_api_request_duration_seconds", Help: "Twitter API request duration seconds", Buckets: prometheus.DefBuckets})
		LastUpdateUnix = promauto.NewGauge(prometheus.GaugeOpts{Name: "clockname_last_update_unix", Help: "Unix time of the last successful name update"})
	})
}

// RecordUpdate marks a successful cycle completion.
func RecordUpdate(at time.Time) {
	if LastUpdateUnix != nil {
		LastUpdateUnix.Set(float64(at.Unix()))
	}
}

// TimeFunc measures the duration of fn and records it in obs if non-nil.
func TimeFunc(obs prometheus.Observer, fn func()) time.Duration {
	start := time.Now()
	fn()
	d := time.Since(start)
	if obs != nil {
		obs.Observe(d.Seconds())
	}
	return d
}

// Correlation ID helpers ----------------------------------------------------
type corrKeyType struct{}

var corrKey corrKeyType

// WithCorrelation returns a new context embedding the correlation id.
func WithCorrelation(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, corrKey, id)
}

// GetCorrelation returns the correlation id or empty string.
func GetCorrelation(ctx context.Context) string {
	if s, ok := ctx.Value(corrKey).(string); ok {
		return s
	}
	return ""
}

// LoggerWithCorr returns a logger with a corr attribute if present.
func LoggerWithCorr(ctx context.Context) *slog.Logger {
	if id := GetCorrelation(ctx); id != "" {
		return slog.Default().With(slog.String("corr", id))
	}
	return slog.Default()
}
