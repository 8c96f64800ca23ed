// Package discovery resolves topic names to broker addresses.
//
// Topic Lookup
//
// LookupTopic drives the lookup state machine against the cluster's base
// connection: it sends lookup requests, follows redirects to the broker that
// owns the topic, and returns the address the client should open its
// data-plane connection to. Along the way it handles three failure shapes:
//
//   - A closed connection is replaced once, transparently, and the request is
//     re-sent on the fresh connection.
//   - A ServiceNotReady answer is retried with a fixed backoff, up to a
//     bounded number of attempts.
//   - Anything else surfaces to the caller as a typed error.
//
// A redirect answer names a broker to ask next; the client re-queries there,
// echoing the authoritative flag from the previous answer. Once an answer
// marks the chain as proxied, every later hop keeps dialing the cluster's
// base URL; brokers behind a proxy are not independently reachable.
//
// Partitioned Topics
//
// LookupPartitionedTopic resolves the partition count of a topic and then
// resolves every "<topic>-partition-<i>" name concurrently. The result is
// all-or-nothing: the full ordered list of partition addresses, or the first
// error observed.
//
// The package defines no cancellation of its own; pass a context with a
// deadline to bound the whole resolution.
package discovery
