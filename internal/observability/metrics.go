// Package observability defines the Prometheus metrics exported by the service.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "flight_delay"

// Metrics holds the Prometheus counters, histograms, and gauges for the service.
type Metrics struct {
	// Dataset store metrics.
	DatasetCache        *prometheus.CounterVec   // labels: result={hit,miss}
	DatasetLoads        *prometheus.CounterVec   // labels: dataset, outcome={success,error}
	DatasetLoadDuration *prometheus.HistogramVec // labels: dataset
	DatasetRows         *prometheus.GaugeVec     // labels: dataset
	DatasetsReady       prometheus.Gauge

	// View computation metrics.
	ViewRequests *prometheus.CounterVec   // labels: view, outcome={ok,empty,invalid,error}
	ViewDuration *prometheus.HistogramVec // labels: view
	ViewRows     *prometheus.HistogramVec // labels: view
}

func newMetrics() *Metrics {
	return &Metrics{
		DatasetCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dataset_cache_total",
			Help:      "Dataset cache lookups by result.",
		}, []string{"result"}),
		DatasetLoads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dataset_loads_total",
			Help:      "Dataset loads from disk by dataset and outcome.",
		}, []string{"dataset", "outcome"}),
		DatasetLoadDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "dataset_load_duration_seconds",
			Help:      "Duration of reading, validating and deriving a dataset.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"dataset"}),
		DatasetRows: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "dataset_rows",
			Help:      "Records held in memory per dataset.",
		}, []string{"dataset"}),
		DatasetsReady: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "datasets_ready",
			Help:      "1 when every dataset is loaded, 0 otherwise.",
		}),
		ViewRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "view_requests_total",
			Help:      "View computations by view and outcome.",
		}, []string{"view", "outcome"}),
		ViewDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "view_duration_seconds",
			Help:      "Duration of a filter-and-aggregate view computation.",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}, []string{"view"}),
		ViewRows: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "view_filtered_rows",
			Help:      "Records left after filtering, per view.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
		}, []string{"view"}),
	}
}

// NewMetrics creates and registers all service metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.DatasetCache,
		m.DatasetLoads,
		m.DatasetLoadDuration,
		m.DatasetRows,
		m.DatasetsReady,
		m.ViewRequests,
		m.ViewDuration,
		m.ViewRows,
	)
	return m
}

// NewMetricsForTesting creates unregistered Metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}
