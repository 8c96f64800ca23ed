package discovery

import (
	"net/url"

	"github.com/quillmq/quill-go/protocol"
)

// lookupOutcome is the information extracted from one successful lookup
// response. It lives only within one resolution step.
type lookupOutcome struct {
	brokerURL     *url.URL
	brokerURLTLS  *url.URL
	proxy         bool
	redirect      bool
	authoritative bool
}

// parseLookupOutcome extracts the broker URLs and routing flags from a lookup
// response. Returns ErrNotFound when the response carries no broker service
// URL or a URL does not parse.
func parseLookupOutcome(resp *protocol.LookupTopicResponse) (*lookupOutcome, error) {
	out := &lookupOutcome{
		proxy:         resp.ProxyThroughServiceURL != nil && *resp.ProxyThroughServiceURL,
		authoritative: resp.Authoritative != nil && *resp.Authoritative,
		redirect:      resp.Redirect(),
	}

	if resp.BrokerServiceURL == nil {
		return nil, ErrNotFound
	}
	u, err := url.Parse(*resp.BrokerServiceURL)
	if err != nil || u.Host == "" {
		return nil, ErrNotFound
	}
	out.brokerURL = u

	if resp.BrokerServiceURLTLS != nil {
		tu, err := url.Parse(*resp.BrokerServiceURLTLS)
		if err != nil || tu.Host == "" {
			return nil, ErrNotFound
		}
		out.brokerURLTLS = tu
	}

	return out, nil
}
