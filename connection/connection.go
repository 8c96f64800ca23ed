// Package connection defines the connection surface the service discovery
// layer consumes: broker addresses, the Connection and Provider interfaces
// implemented by the transport layer, and exported mocks for tests.
//
// Socket lifecycle, pooling, and the wire codec live behind these interfaces;
// this package owns none of them.
package connection

import (
	"context"
	"errors"
	"net/url"

	"github.com/quillmq/quill-go/protocol"
)

// ErrDisconnected is returned by a Connection whose underlying socket has
// been closed. Callers may acquire a fresh connection and retry.
var ErrDisconnected = errors.New("connection: disconnected")

// Connection is an established connection to a single broker, able to carry
// lookup traffic.
type Connection interface {
	// LookupTopic asks the broker which broker owns topic. The authoritative
	// flag tells the broker a previous hop already redirected here and the
	// answer should be definitive.
	LookupTopic(ctx context.Context, topic string, authoritative bool) (*protocol.LookupTopicResponse, error)

	// PartitionedMetadata asks the broker for the partition metadata of topic.
	PartitionedMetadata(ctx context.Context, topic string) (*protocol.PartitionedMetadataResponse, error)
}

// Provider hands out connections to brokers. Implementations must be safe for
// concurrent use; partitioned topic resolution acquires connections from
// multiple goroutines at once.
type Provider interface {
	// GetBaseConnection returns a connection to the cluster's base (discovery)
	// endpoint.
	GetBaseConnection(ctx context.Context) (Connection, error)

	// GetConnection returns a connection to the given broker, dialing it if
	// no live connection exists.
	GetConnection(ctx context.Context, addr BrokerAddress) (Connection, error)

	// BaseAddress returns the address of the cluster's base endpoint.
	BaseAddress() BrokerAddress

	// BaseURL returns the cluster's base service URL.
	BaseURL() *url.URL
}
