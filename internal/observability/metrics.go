package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// data-preparation pipeline.
type Metrics struct {
	RowsRead    *prometheus.CounterVec // labels: table={input,reference}
	RowsWritten prometheus.Counter
	StepErrors  prometheus.Counter
	JobRunning  prometheus.Gauge

	StepDuration  *prometheus.HistogramVec // labels: step
	ReferenceSize prometheus.Gauge

	// Nearest-neighbor search metrics.
	AssignQueries prometheus.Counter
}

// NewMetrics creates and registers all pipeline metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.RowsRead,
		m.RowsWritten,
		m.StepErrors,
		m.JobRunning,
		m.StepDuration,
		m.ReferenceSize,
		m.AssignQueries,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		RowsRead: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tidal_etl",
			Name:      "rows_read_total",
			Help:      "Total table rows read, by table role.",
		}, []string{"table"}),
		RowsWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tidal_etl",
			Name:      "rows_written_total",
			Help:      "Total table rows written to the output sink.",
		}),
		StepErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tidal_etl",
			Name:      "step_errors_total",
			Help:      "Total pipeline step failures.",
		}),
		JobRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "tidal_etl",
			Name:      "job_running",
			Help:      "1 while a batch job is active, 0 otherwise.",
		}),
		StepDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "tidal_etl",
			Name:      "step_duration_seconds",
			Help:      "Wall time of a pipeline step, by step name.",
			Buckets:   []float64{0.01, 0.1, 0.5, 1, 5, 15, 60, 300, 1200},
		}, []string{"step"}),
		ReferenceSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "tidal_etl",
			Name:      "reference_rows",
			Help:      "Row count of the reference set scanned per query.",
		}),
		AssignQueries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tidal_etl",
			Name:      "assign_queries_total",
			Help:      "Nearest-neighbor queries answered.",
		}),
	}
}
