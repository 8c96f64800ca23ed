package discovery

import (
	"github.com/quillmq/quill-go/config"
	"github.com/quillmq/quill-go/connection"
	"github.com/quillmq/quill-go/metrics"
)

// NewFromConfig creates a ServiceDiscovery applying the lookup settings from a
// loaded client configuration. Metrics may be nil.
func NewFromConfig(cfg *config.Config, provider connection.Provider, m *metrics.DiscoveryMetrics) *ServiceDiscovery {
	return New(Config{
		Provider:     provider,
		Metrics:      m,
		MaxRetries:   cfg.Lookup.MaxRetries,
		RetryBackoff: cfg.Lookup.RetryBackoff(),
		MaxRedirects: cfg.Lookup.MaxRedirects,
	})
}
