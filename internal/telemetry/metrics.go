package telemetry

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsConfig configures a Metrics registry. Its shape mirrors the
// connection-config struct the pack uses for its own Prometheus client,
// even though this one only exposes local instrumentation through Handler,
// never queries a remote server.
type MetricsConfig struct {
	Namespace string
}

// Metrics holds the counters and histogram a gapfill run reports.
type Metrics struct {
	registry *prometheus.Registry

	RowsFilled   *prometheus.CounterVec
	RowsUnfilled prometheus.Counter
	FillDuration prometheus.Histogram
}

// NewMetrics registers a fresh set of run metrics under cfg.Namespace.
func NewMetrics(cfg MetricsConfig) *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		RowsFilled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "rows_filled_total",
			Help:      "Rows filled by the gap-fill engine, partitioned by method.",
		}, []string{"method"}),
		RowsUnfilled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "rows_unfilled_total",
			Help:      "Rows the escalation ladder could not fill.",
		}),
		FillDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: cfg.Namespace,
			Name:      "fill_duration_seconds",
			Help:      "Wall-clock duration of a full GapFill run.",
			Buckets:   prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(m.RowsFilled, m.RowsUnfilled, m.FillDuration)
	return m
}

// Handler returns an HTTP handler exposing the registered metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
