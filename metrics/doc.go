// Package metrics provides Prometheus metrics for the Quill client.
//
// This package exposes metrics for service discovery:
//   - Lookup counters broken down by result
//   - ServiceNotReady retry, redirect hop, and reconnect counters
//   - End-to-end lookup latency histogram
//   - Partition metadata query counters by result
//
// Metrics are exposed via a dedicated HTTP server on /metrics in Prometheus
// format.
//
// Usage:
//
//	discoveryMetrics := metrics.NewDiscoveryMetrics()
//
//	sd := discovery.New(discovery.Config{
//		Provider: provider,
//		Metrics:  discoveryMetrics,
//	})
//
//	metricsServer := metrics.NewServer(":9090")
//	metricsServer.Start()
package metrics
