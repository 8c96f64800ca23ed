package discovery

import (
	"errors"
	"fmt"

	"github.com/quillmq/quill-go/protocol"
)

// ErrNotFound is returned when a lookup response carries no usable broker
// service URL, or a broker URL fails to parse.
var ErrNotFound = errors.New("discovery: no broker address in lookup response")

// ErrTooManyRedirects is returned when a lookup chain exceeds the configured
// redirect ceiling.
var ErrTooManyRedirects = errors.New("discovery: redirect limit exceeded")

// QueryError reports a lookup the cluster explicitly failed, after any retry
// budget was spent.
type QueryError struct {
	// ServerError is the broker's error code, when one was supplied.
	ServerError *protocol.ServerError

	// Message is the broker's error message, when one was supplied.
	Message string
}

func (e *QueryError) Error() string {
	code := "none"
	if e.ServerError != nil {
		code = e.ServerError.String()
	}
	if e.Message == "" {
		return fmt.Sprintf("discovery: lookup failed (server error %s)", code)
	}
	return fmt.Sprintf("discovery: lookup failed (server error %s): %s", code, e.Message)
}
