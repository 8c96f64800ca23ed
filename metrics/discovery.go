package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// DiscoveryMetrics holds metrics for topic lookup and partition resolution.
type DiscoveryMetrics struct {
	// LookupsTotal tracks completed topic lookups.
	// Labels: result (success, failure)
	LookupsTotal *prometheus.CounterVec

	// RetriesTotal tracks ServiceNotReady retries across all lookups.
	RetriesTotal prometheus.Counter

	// RedirectsTotal tracks redirect hops followed during lookups.
	RedirectsTotal prometheus.Counter

	// ReconnectsTotal tracks transparent reconnects after a disconnected
	// connection.
	ReconnectsTotal prometheus.Counter

	// LookupDuration tracks end-to-end lookup latency in seconds, including
	// retries and redirect hops.
	LookupDuration prometheus.Histogram

	// PartitionMetadataTotal tracks partition metadata queries.
	// Labels: result (success, failure)
	PartitionMetadataTotal *prometheus.CounterVec
}

// NewDiscoveryMetrics creates and registers discovery metrics.
// Uses promauto for automatic registration with the default registry.
func NewDiscoveryMetrics() *DiscoveryMetrics {
	return &DiscoveryMetrics{
		LookupsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "quill",
				Subsystem: "discovery",
				Name:      "lookups_total",
				Help:      "Total number of completed topic lookups, broken down by result.",
			},
			[]string{"result"},
		),
		RetriesTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: "quill",
				Subsystem: "discovery",
				Name:      "retries_total",
				Help:      "Total number of ServiceNotReady retries.",
			},
		),
		RedirectsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: "quill",
				Subsystem: "discovery",
				Name:      "redirects_total",
				Help:      "Total number of redirect hops followed.",
			},
		),
		ReconnectsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: "quill",
				Subsystem: "discovery",
				Name:      "reconnects_total",
				Help:      "Total number of transparent reconnects after a closed connection.",
			},
		),
		LookupDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "quill",
				Subsystem: "discovery",
				Name:      "lookup_duration_seconds",
				Help:      "End-to-end topic lookup latency in seconds.",
				Buckets:   prometheus.ExponentialBuckets(0.001, 2, 14),
			},
		),
		PartitionMetadataTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "quill",
				Subsystem: "discovery",
				Name:      "partition_metadata_total",
				Help:      "Total number of partition metadata queries, broken down by result.",
			},
			[]string{"result"},
		),
	}
}

// NewDiscoveryMetricsWithRegistry creates discovery metrics registered with a
// custom registry. Useful for testing to avoid conflicts with the default
// registry.
func NewDiscoveryMetricsWithRegistry(reg prometheus.Registerer) *DiscoveryMetrics {
	lookupsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "quill",
			Subsystem: "discovery",
			Name:      "lookups_total",
			Help:      "Total number of completed topic lookups, broken down by result.",
		},
		[]string{"result"},
	)
	retriesTotal := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "quill",
			Subsystem: "discovery",
			Name:      "retries_total",
			Help:      "Total number of ServiceNotReady retries.",
		},
	)
	redirectsTotal := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "quill",
			Subsystem: "discovery",
			Name:      "redirects_total",
			Help:      "Total number of redirect hops followed.",
		},
	)
	reconnectsTotal := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "quill",
			Subsystem: "discovery",
			Name:      "reconnects_total",
			Help:      "Total number of transparent reconnects after a closed connection.",
		},
	)
	lookupDuration := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "quill",
			Subsystem: "discovery",
			Name:      "lookup_duration_seconds",
			Help:      "End-to-end topic lookup latency in seconds.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 14),
		},
	)
	partitionMetadataTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "quill",
			Subsystem: "discovery",
			Name:      "partition_metadata_total",
			Help:      "Total number of partition metadata queries, broken down by result.",
		},
		[]string{"result"},
	)

	reg.MustRegister(lookupsTotal, retriesTotal, redirectsTotal, reconnectsTotal, lookupDuration, partitionMetadataTotal)

	return &DiscoveryMetrics{
		LookupsTotal:           lookupsTotal,
		RetriesTotal:           retriesTotal,
		RedirectsTotal:         redirectsTotal,
		ReconnectsTotal:        reconnectsTotal,
		LookupDuration:         lookupDuration,
		PartitionMetadataTotal: partitionMetadataTotal,
	}
}

// LookupCompleted records one finished lookup. All methods are safe on a nil
// receiver so callers can run without metrics wired.
func (m *DiscoveryMetrics) LookupCompleted(success bool, d time.Duration) {
	if m == nil {
		return
	}
	m.LookupsTotal.WithLabelValues(resultLabel(success)).Inc()
	m.LookupDuration.Observe(d.Seconds())
}

// RetryObserved records one ServiceNotReady retry.
func (m *DiscoveryMetrics) RetryObserved() {
	if m == nil {
		return
	}
	m.RetriesTotal.Inc()
}

// RedirectObserved records one redirect hop.
func (m *DiscoveryMetrics) RedirectObserved() {
	if m == nil {
		return
	}
	m.RedirectsTotal.Inc()
}

// ReconnectObserved records one transparent reconnect.
func (m *DiscoveryMetrics) ReconnectObserved() {
	if m == nil {
		return
	}
	m.ReconnectsTotal.Inc()
}

// PartitionMetadataCompleted records one finished partition metadata query.
func (m *DiscoveryMetrics) PartitionMetadataCompleted(success bool) {
	if m == nil {
		return
	}
	m.PartitionMetadataTotal.WithLabelValues(resultLabel(success)).Inc()
}

func resultLabel(success bool) string {
	if success {
		return "success"
	}
	return "failure"
}
