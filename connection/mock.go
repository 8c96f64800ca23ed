package connection

import (
	"context"
	"fmt"
	"net/url"
	"sync"

	"github.com/quillmq/quill-go/protocol"
)

// LookupRequest records one lookup request received by a MockConnection.
type LookupRequest struct {
	Topic         string
	Authoritative bool
}

type lookupReply struct {
	resp *protocol.LookupTopicResponse
	err  error
}

type metadataReply struct {
	resp *protocol.PartitionedMetadataResponse
	err  error
}

// MockConnection implements Connection with scripted FIFO responses.
// It is exported so that tests in other packages can use it.
type MockConnection struct {
	mu sync.Mutex

	// Name identifies the connection in test failure messages.
	Name string

	lookupReplies   []lookupReply
	metadataReplies []metadataReply

	// LookupRequests holds every lookup request received, in order.
	LookupRequests []LookupRequest

	// MetadataRequests holds every partition metadata topic requested, in order.
	MetadataRequests []string
}

// NewMockConnection creates a MockConnection with the given name.
func NewMockConnection(name string) *MockConnection {
	return &MockConnection{Name: name}
}

// QueueLookup appends a scripted reply for the next LookupTopic call.
func (c *MockConnection) QueueLookup(resp *protocol.LookupTopicResponse, err error) *MockConnection {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lookupReplies = append(c.lookupReplies, lookupReply{resp: resp, err: err})
	return c
}

// QueueMetadata appends a scripted reply for the next PartitionedMetadata call.
func (c *MockConnection) QueueMetadata(resp *protocol.PartitionedMetadataResponse, err error) *MockConnection {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.metadataReplies = append(c.metadataReplies, metadataReply{resp: resp, err: err})
	return c
}

func (c *MockConnection) LookupTopic(_ context.Context, topic string, authoritative bool) (*protocol.LookupTopicResponse, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.LookupRequests = append(c.LookupRequests, LookupRequest{Topic: topic, Authoritative: authoritative})
	if len(c.lookupReplies) == 0 {
		return nil, fmt.Errorf("mock connection %q: no scripted lookup reply for topic %q", c.Name, topic)
	}
	reply := c.lookupReplies[0]
	c.lookupReplies = c.lookupReplies[1:]
	return reply.resp, reply.err
}

func (c *MockConnection) PartitionedMetadata(_ context.Context, topic string) (*protocol.PartitionedMetadataResponse, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.MetadataRequests = append(c.MetadataRequests, topic)
	if len(c.metadataReplies) == 0 {
		return nil, fmt.Errorf("mock connection %q: no scripted metadata reply for topic %q", c.Name, topic)
	}
	reply := c.metadataReplies[0]
	c.metadataReplies = c.metadataReplies[1:]
	return reply.resp, reply.err
}

// MockProvider implements Provider for testing. Connections are registered by
// logical broker URL; GetConnection falls back to the base connection when the
// requested address is the base address.
type MockProvider struct {
	mu sync.Mutex

	baseURL  *url.URL
	baseAddr BrokerAddress
	baseConn Connection

	conns    map[string]Connection
	connErrs map[string]error

	// BaseConnErr, when set, is returned by GetBaseConnection.
	BaseConnErr error

	// GetConnectionCalls records every address passed to GetConnection.
	GetConnectionCalls []BrokerAddress
}

// NewMockProvider creates a MockProvider whose base endpoint is rawURL.
// Panics if rawURL does not parse; tests pass literals.
func NewMockProvider(rawURL string, base Connection) *MockProvider {
	u, err := url.Parse(rawURL)
	if err != nil {
		panic(fmt.Sprintf("mock provider: bad base url %q: %v", rawURL, err))
	}
	port := u.Port()
	if port == "" {
		port = "6650"
	}
	return &MockProvider{
		baseURL: u,
		baseAddr: BrokerAddress{
			URL:       u,
			BrokerURL: u.Hostname() + ":" + port,
		},
		baseConn: base,
		conns:    make(map[string]Connection),
		connErrs: make(map[string]error),
	}
}

// Register makes conn available for addresses whose BrokerURL is brokerURL.
func (p *MockProvider) Register(brokerURL string, conn Connection) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.conns[brokerURL] = conn
}

// FailConnection makes GetConnection return err for addresses whose BrokerURL
// is brokerURL.
func (p *MockProvider) FailConnection(brokerURL string, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.connErrs[brokerURL] = err
}

func (p *MockProvider) GetBaseConnection(_ context.Context) (Connection, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.BaseConnErr != nil {
		return nil, p.BaseConnErr
	}
	return p.baseConn, nil
}

func (p *MockProvider) GetConnection(_ context.Context, addr BrokerAddress) (Connection, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.GetConnectionCalls = append(p.GetConnectionCalls, addr)
	if err, ok := p.connErrs[addr.BrokerURL]; ok {
		return nil, err
	}
	if conn, ok := p.conns[addr.BrokerURL]; ok {
		return conn, nil
	}
	if addr.BrokerURL == p.baseAddr.BrokerURL {
		return p.baseConn, nil
	}
	return nil, fmt.Errorf("mock provider: no connection registered for broker %q", addr.BrokerURL)
}

func (p *MockProvider) BaseAddress() BrokerAddress {
	return p.baseAddr
}

func (p *MockProvider) BaseURL() *url.URL {
	return p.baseURL
}
