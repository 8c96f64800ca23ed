package connection

import (
	"fmt"
	"net/url"
)

// BrokerAddress identifies the broker that owns a topic and how to reach it.
type BrokerAddress struct {
	// URL is the physical address the client dials: the broker's own service
	// URL, or the cluster's base URL when traffic is proxied.
	URL *url.URL

	// BrokerURL is the logical host:port identity of the owning broker. It is
	// the value the remote peer expects in the connect handshake, independent
	// of which address the socket is opened to.
	BrokerURL string

	// Proxy reports whether traffic to this broker is tunneled through the
	// proxy behind the base URL.
	Proxy bool
}

func (a BrokerAddress) String() string {
	u := ""
	if a.URL != nil {
		u = a.URL.String()
	}
	if a.Proxy {
		return fmt.Sprintf("%s (broker %s, proxied)", u, a.BrokerURL)
	}
	return fmt.Sprintf("%s (broker %s)", u, a.BrokerURL)
}

// Equal reports whether two addresses identify the same broker through the
// same path.
func (a BrokerAddress) Equal(other BrokerAddress) bool {
	if a.BrokerURL != other.BrokerURL || a.Proxy != other.Proxy {
		return false
	}
	switch {
	case a.URL == nil && other.URL == nil:
		return true
	case a.URL == nil || other.URL == nil:
		return false
	default:
		return a.URL.String() == other.URL.String()
	}
}
