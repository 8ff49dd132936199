package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "hydrograph_axis"

// Metrics holds the Prometheus counters, histograms, and gauges for the axis service.
type Metrics struct {
	SnapshotsConsumed prometheus.Counter
	ReportsProduced   prometheus.Counter
	TransformErrors   prometheus.Counter
	PipelineRunning   prometheus.Gauge

	// Batch processing metrics.
	BatchSize               prometheus.Histogram
	BatchProcessingDuration prometheus.Histogram

	// NWIS fetch metrics.
	NWISRequests    *prometheus.CounterVec // labels: outcome={success,error,empty}
	NWISCache       *prometheus.CounterVec // labels: result={hit,miss}
	NWISAPIDuration prometheus.Histogram
	NWISEnabled     prometheus.Gauge

	// API metrics.
	APIRequests *prometheus.CounterVec // labels: route, status
}

// NewMetrics creates and registers all service metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.SnapshotsConsumed,
		m.ReportsProduced,
		m.TransformErrors,
		m.PipelineRunning,
		m.BatchSize,
		m.BatchProcessingDuration,
		m.NWISRequests,
		m.NWISCache,
		m.NWISAPIDuration,
		m.NWISEnabled,
		m.APIRequests,
	)
	return m
}

// NewMetricsForTesting creates unregistered Metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		SnapshotsConsumed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "snapshots_consumed_total",
			Help:      "Total series snapshots read from the source topic.",
		}),
		ReportsProduced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reports_produced_total",
			Help:      "Total axis reports written to the sink topic.",
		}),
		TransformErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transform_errors_total",
			Help:      "Total snapshots that could not be turned into a report.",
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pipeline_running",
			Help:      "1 when the pipeline is active, 0 when shut down.",
		}),
		BatchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_size",
			Help:      "Number of snapshots per batch extracted from Kafka.",
			Buckets:   []float64{1, 5, 10, 20, 30, 40, 50, 75, 100},
		}),
		BatchProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_processing_duration_seconds",
			Help:      "Duration of a complete batch extract-transform-load cycle.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
		NWISRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "nwis_requests_total",
			Help:      "NWIS instantaneous-values requests by outcome.",
		}, []string{"outcome"}),
		NWISCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "nwis_cache_total",
			Help:      "NWIS series cache lookups by result.",
		}, []string{"result"}),
		NWISAPIDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "nwis_api_duration_seconds",
			Help:      "NWIS request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		NWISEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "nwis_enabled",
			Help:      "1 when NWIS series fetching is enabled, 0 otherwise.",
		}),
		APIRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "api_requests_total",
			Help:      "Axis API requests by route and status code.",
		}, []string{"route", "status"}),
	}
}
