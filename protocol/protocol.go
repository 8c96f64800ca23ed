// Package protocol declares the wire-level command schemas the client consumes
// during topic lookup. Encoding and decoding of these commands on the socket is
// owned by the codec layer; this package only defines the shapes and enums.
//
// Optional wire fields are represented as pointers: a nil pointer means the
// broker omitted the field. Use Ptr to build responses in tests.
package protocol

// LookupType is the disposition of a topic lookup response.
type LookupType int32

const (
	// LookupTypeRedirect instructs the client to repeat the lookup against
	// the broker named in the response.
	LookupTypeRedirect LookupType = 0
	// LookupTypeConnect means the named broker owns the topic and the client
	// should connect to it.
	LookupTypeConnect LookupType = 1
	// LookupTypeFailed means the broker could not resolve the topic.
	LookupTypeFailed LookupType = 2
)

func (t LookupType) String() string {
	switch t {
	case LookupTypeRedirect:
		return "Redirect"
	case LookupTypeConnect:
		return "Connect"
	case LookupTypeFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// PartitionedLookupType is the disposition of a partition metadata response.
type PartitionedLookupType int32

const (
	// PartitionedLookupSuccess means the response carries partition metadata.
	PartitionedLookupSuccess PartitionedLookupType = 0
	// PartitionedLookupFailed means the broker could not resolve the topic's
	// partition metadata.
	PartitionedLookupFailed PartitionedLookupType = 1
)

func (t PartitionedLookupType) String() string {
	switch t {
	case PartitionedLookupSuccess:
		return "Success"
	case PartitionedLookupFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// ServerError identifies why a broker rejected a request.
type ServerError int32

const (
	ServerErrorUnknownError            ServerError = 0
	ServerErrorMetadataError           ServerError = 1
	ServerErrorPersistenceError        ServerError = 2
	ServerErrorAuthenticationError     ServerError = 3
	ServerErrorAuthorizationError      ServerError = 4
	ServerErrorConsumerBusy            ServerError = 5
	ServerErrorServiceNotReady         ServerError = 6
	ServerErrorProducerBlockedQuota    ServerError = 7
	ServerErrorChecksumError           ServerError = 9
	ServerErrorUnsupportedVersionError ServerError = 10
	ServerErrorTopicNotFound           ServerError = 11
	ServerErrorSubscriptionNotFound    ServerError = 12
	ServerErrorConsumerNotFound        ServerError = 13
	ServerErrorTooManyRequests         ServerError = 14
	ServerErrorTopicTerminatedError    ServerError = 15
	ServerErrorProducerBusy            ServerError = 16
	ServerErrorInvalidTopicName        ServerError = 17
)

func (e ServerError) String() string {
	switch e {
	case ServerErrorUnknownError:
		return "UnknownError"
	case ServerErrorMetadataError:
		return "MetadataError"
	case ServerErrorPersistenceError:
		return "PersistenceError"
	case ServerErrorAuthenticationError:
		return "AuthenticationError"
	case ServerErrorAuthorizationError:
		return "AuthorizationError"
	case ServerErrorConsumerBusy:
		return "ConsumerBusy"
	case ServerErrorServiceNotReady:
		return "ServiceNotReady"
	case ServerErrorProducerBlockedQuota:
		return "ProducerBlockedQuotaExceeded"
	case ServerErrorChecksumError:
		return "ChecksumError"
	case ServerErrorUnsupportedVersionError:
		return "UnsupportedVersionError"
	case ServerErrorTopicNotFound:
		return "TopicNotFound"
	case ServerErrorSubscriptionNotFound:
		return "SubscriptionNotFound"
	case ServerErrorConsumerNotFound:
		return "ConsumerNotFound"
	case ServerErrorTooManyRequests:
		return "TooManyRequests"
	case ServerErrorTopicTerminatedError:
		return "TopicTerminatedError"
	case ServerErrorProducerBusy:
		return "ProducerBusy"
	case ServerErrorInvalidTopicName:
		return "InvalidTopicName"
	default:
		return "Unknown"
	}
}

// Retryable reports whether the error is transient and the request may be
// repeated unchanged after a short delay.
func (e ServerError) Retryable() bool {
	return e == ServerErrorServiceNotReady
}

// LookupTopicResponse is the broker's answer to a topic lookup request.
type LookupTopicResponse struct {
	// Response is the lookup disposition. A nil Response is treated as a
	// failed lookup.
	Response *LookupType

	// BrokerServiceURL is the plaintext service URL of the owning broker.
	BrokerServiceURL *string

	// BrokerServiceURLTLS is the TLS service URL of the owning broker, when
	// the broker accepts TLS traffic.
	BrokerServiceURLTLS *string

	// Authoritative reports whether the answer is definitive. The client
	// echoes this flag on the next hop of a redirect chain.
	Authoritative *bool

	// ProxyThroughServiceURL instructs the client to keep dialing the
	// cluster's base URL and let the proxy forward to the owning broker.
	ProxyThroughServiceURL *bool

	// Error and Message describe a failed lookup.
	Error   *ServerError
	Message *string
}

// Failed reports whether the response must be treated as a failed lookup.
func (r *LookupTopicResponse) Failed() bool {
	return r.Response == nil || *r.Response == LookupTypeFailed
}

// Redirect reports whether the response redirects the client to another broker.
func (r *LookupTopicResponse) Redirect() bool {
	return r.Response != nil && *r.Response == LookupTypeRedirect
}

// PartitionedMetadataResponse is the broker's answer to a partitioned topic
// metadata request.
type PartitionedMetadataResponse struct {
	// Response is the metadata disposition. A nil Response is treated as a
	// failed request.
	Response *PartitionedLookupType

	// Partitions is the number of partitions of the topic. Zero means the
	// topic is not partitioned.
	Partitions *uint32

	// Error and Message describe a failed request.
	Error   *ServerError
	Message *string
}

// Failed reports whether the response must be treated as a failed request.
func (r *PartitionedMetadataResponse) Failed() bool {
	return r.Response == nil || *r.Response == PartitionedLookupFailed
}

// Ptr returns a pointer to v. Convenience for building responses with
// optional fields.
func Ptr[T any](v T) *T {
	return &v
}
