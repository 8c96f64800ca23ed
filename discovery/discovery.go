package discovery

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/quillmq/quill-go/connection"
	"github.com/quillmq/quill-go/logging"
	"github.com/quillmq/quill-go/metrics"
	"github.com/quillmq/quill-go/protocol"
)

const (
	// DefaultMaxRetries is the default ServiceNotReady retry budget per lookup.
	DefaultMaxRetries = 20

	// DefaultRetryBackoff is the default fixed delay between ServiceNotReady
	// retries.
	DefaultRetryBackoff = 500 * time.Millisecond

	// DefaultMaxRedirects is the default ceiling on redirect hops per lookup.
	// A misbehaving cluster could otherwise redirect indefinitely.
	DefaultMaxRedirects = 20

	defaultPlainPort = "6650"
	defaultTLSPort   = "6651"
)

// Config configures a ServiceDiscovery.
type Config struct {
	// Provider hands out broker connections. Required.
	Provider connection.Provider

	// Delayer takes the backoff delays between retries.
	// Defaults to TimerDelayer.
	Delayer Delayer

	// Logger for lookup events. Defaults to the global logger.
	Logger *logging.Logger

	// Metrics for lookup observability. Optional.
	Metrics *metrics.DiscoveryMetrics

	// MaxRetries is the ServiceNotReady retry budget per lookup.
	// Zero means DefaultMaxRetries; use a negative value to disable retries.
	MaxRetries int

	// RetryBackoff is the fixed delay between ServiceNotReady retries.
	// Zero means DefaultRetryBackoff.
	RetryBackoff time.Duration

	// MaxRedirects is the ceiling on redirect hops per lookup.
	// Zero means DefaultMaxRedirects.
	MaxRedirects int
}

// ServiceDiscovery resolves topics and partitioned topics to broker
// addresses, following redirects and proxy indirection. Safe for concurrent
// use; each call owns its own loop state.
type ServiceDiscovery struct {
	provider     connection.Provider
	delayer      Delayer
	logger       *logging.Logger
	metrics      *metrics.DiscoveryMetrics
	maxRetries   int
	retryBackoff time.Duration
	maxRedirects int
}

// New creates a ServiceDiscovery from cfg, filling in defaults for any unset
// optional field.
func New(cfg Config) *ServiceDiscovery {
	s := &ServiceDiscovery{
		provider:     cfg.Provider,
		delayer:      cfg.Delayer,
		logger:       cfg.Logger,
		metrics:      cfg.Metrics,
		maxRetries:   cfg.MaxRetries,
		retryBackoff: cfg.RetryBackoff,
		maxRedirects: cfg.MaxRedirects,
	}
	if s.delayer == nil {
		s.delayer = TimerDelayer{}
	}
	if s.logger == nil {
		s.logger = logging.Global()
	}
	if s.maxRetries == 0 {
		s.maxRetries = DefaultMaxRetries
	} else if s.maxRetries < 0 {
		s.maxRetries = 0
	}
	if s.retryBackoff == 0 {
		s.retryBackoff = DefaultRetryBackoff
	}
	if s.maxRedirects == 0 {
		s.maxRedirects = DefaultMaxRedirects
	}
	return s
}

// LookupTopic resolves a (possibly partition-suffixed) topic name to the
// address of the broker that owns it. The returned connection to that broker
// is confirmed live before the address is returned; how long to retain it is
// the caller's concern.
func (s *ServiceDiscovery) LookupTopic(ctx context.Context, topic string) (connection.BrokerAddress, error) {
	start := time.Now()
	addr, err := s.lookupTopic(ctx, topic)
	s.metrics.LookupCompleted(err == nil, time.Since(start))
	return addr, err
}

func (s *ServiceDiscovery) lookupTopic(ctx context.Context, topic string) (connection.BrokerAddress, error) {
	log := logging.ContextLogger(ctx, s.logger)
	if log.CorrelationID() == "" {
		log = log.WithCorrelationID(uuid.NewString())
	}
	log = log.With(map[string]any{"topic": topic})

	conn, err := s.provider.GetBaseConnection(ctx)
	if err != nil {
		return connection.BrokerAddress{}, fmt.Errorf("discovery: acquiring base connection: %w", err)
	}

	baseURL := s.provider.BaseURL()
	brokerAddr := s.provider.BaseAddress()
	authoritative := false
	proxied := false
	retries := s.maxRetries
	redirects := s.maxRedirects

	for {
		resp, err := conn.LookupTopic(ctx, topic, authoritative)
		if errors.Is(err, connection.ErrDisconnected) {
			log.Error("lookup connection was closed, reconnecting")
			s.metrics.ReconnectObserved()
			conn, err = s.provider.GetConnection(ctx, brokerAddr)
			if err != nil {
				return connection.BrokerAddress{}, fmt.Errorf("discovery: reconnecting for lookup: %w", err)
			}
			resp, err = conn.LookupTopic(ctx, topic, authoritative)
		}
		if err != nil {
			return connection.BrokerAddress{}, fmt.Errorf("discovery: lookup request: %w", err)
		}

		if resp.Failed() {
			if serverRetryable(resp.Error) && retries > 0 {
				retries--
				log.Errorf("lookup answered ServiceNotReady, retrying after backoff", map[string]any{
					"backoff":   s.retryBackoff.String(),
					"remaining": retries,
				})
				s.metrics.RetryObserved()
				if derr := s.delayer.Delay(ctx, s.retryBackoff); derr != nil {
					return connection.BrokerAddress{}, derr
				}
				continue
			}
			return connection.BrokerAddress{}, &QueryError{ServerError: resp.Error, Message: optString(resp.Message)}
		}

		out, err := parseLookupOutcome(resp)
		if err != nil {
			log.Error("lookup response carried no usable broker URL")
			return connection.BrokerAddress{}, err
		}
		authoritative = out.authoritative

		// Prefer the TLS endpoint when the broker offers one.
		connectURL := out.brokerURL
		if out.brokerURLTLS != nil {
			connectURL = out.brokerURLTLS
		}

		// Once the chain goes through a proxy it stays there; brokers behind
		// the proxy are not independently reachable.
		physical := connectURL
		if proxied || out.proxy {
			physical = baseURL
		}

		brokerAddr = connection.BrokerAddress{
			URL:       physical,
			BrokerURL: logicalBrokerURL(out.brokerURL, out.brokerURLTLS),
			Proxy:     proxied || out.proxy,
		}

		if out.redirect {
			if redirects == 0 {
				return connection.BrokerAddress{}, ErrTooManyRedirects
			}
			redirects--
			log.Debugf("lookup redirected", map[string]any{"broker": brokerAddr.BrokerURL})
			s.metrics.RedirectObserved()
			conn, err = s.provider.GetConnection(ctx, brokerAddr)
			if err != nil {
				return connection.BrokerAddress{}, fmt.Errorf("discovery: following redirect: %w", err)
			}
			proxied = brokerAddr.Proxy
			continue
		}

		if _, err := s.provider.GetConnection(ctx, brokerAddr); err != nil {
			return connection.BrokerAddress{}, fmt.Errorf("discovery: connecting to resolved broker: %w", err)
		}
		return brokerAddr, nil
	}
}

// PartitionCount returns the number of partitions of a partitioned topic.
// Zero means the topic is not partitioned.
func (s *ServiceDiscovery) PartitionCount(ctx context.Context, topic string) (uint32, error) {
	n, err := s.partitionCount(ctx, topic)
	s.metrics.PartitionMetadataCompleted(err == nil)
	return n, err
}

func (s *ServiceDiscovery) partitionCount(ctx context.Context, topic string) (uint32, error) {
	log := logging.ContextLogger(ctx, s.logger).With(map[string]any{"topic": topic})

	conn, err := s.provider.GetBaseConnection(ctx)
	if err != nil {
		return 0, fmt.Errorf("discovery: acquiring base connection: %w", err)
	}

	retries := s.maxRetries
	for {
		resp, err := conn.PartitionedMetadata(ctx, topic)
		if errors.Is(err, connection.ErrDisconnected) {
			log.Error("partition metadata connection was closed, reconnecting")
			s.metrics.ReconnectObserved()
			conn, err = s.provider.GetBaseConnection(ctx)
			if err != nil {
				return 0, fmt.Errorf("discovery: reconnecting for partition metadata: %w", err)
			}
			resp, err = conn.PartitionedMetadata(ctx, topic)
		}
		if err != nil {
			return 0, fmt.Errorf("discovery: partition metadata request: %w", err)
		}

		if resp.Failed() {
			if serverRetryable(resp.Error) && retries > 0 {
				retries--
				log.Errorf("partition metadata answered ServiceNotReady, retrying after backoff", map[string]any{
					"backoff":   s.retryBackoff.String(),
					"remaining": retries,
				})
				s.metrics.RetryObserved()
				if derr := s.delayer.Delay(ctx, s.retryBackoff); derr != nil {
					return 0, derr
				}
				continue
			}
			return 0, &QueryError{ServerError: resp.Error, Message: optString(resp.Message)}
		}

		if resp.Partitions == nil {
			return 0, &QueryError{ServerError: resp.Error, Message: optString(resp.Message)}
		}
		return *resp.Partitions, nil
	}
}

// PartitionLookup pairs a partition topic name with its resolved broker
// address.
type PartitionLookup struct {
	Topic   string
	Address connection.BrokerAddress
}

// LookupPartitionedTopic resolves every partition of a partitioned topic
// concurrently. The result preserves ascending partition index order and is
// all-or-nothing: any failed partition lookup fails the whole call with the
// first error observed.
func (s *ServiceDiscovery) LookupPartitionedTopic(ctx context.Context, topic string) ([]PartitionLookup, error) {
	partitions, err := s.PartitionCount(ctx, topic)
	if err != nil {
		return nil, err
	}

	results := make([]PartitionLookup, partitions)
	var g errgroup.Group
	for i := uint32(0); i < partitions; i++ {
		i := i
		name := fmt.Sprintf("%s-partition-%d", topic, i)
		g.Go(func() error {
			addr, err := s.LookupTopic(ctx, name)
			if err != nil {
				return err
			}
			results[i] = PartitionLookup{Topic: name, Address: addr}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// logicalBrokerURL builds the host:port identity of the owning broker,
// preferring the TLS endpoint and falling back to the scheme's default port.
func logicalBrokerURL(plain, tls *url.URL) string {
	if tls != nil {
		return hostPort(tls, defaultTLSPort)
	}
	return hostPort(plain, defaultPlainPort)
}

func hostPort(u *url.URL, defaultPort string) string {
	port := u.Port()
	if port == "" {
		port = defaultPort
	}
	return net.JoinHostPort(u.Hostname(), port)
}

func serverRetryable(e *protocol.ServerError) bool {
	return e != nil && e.Retryable()
}

func optString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
