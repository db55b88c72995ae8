package domain

import "errors"

// Upstream failure taxonomy. Clients wrap these so callers can dispatch with
// errors.Is while keeping the upstream name and cause in the message.
var (
	// ErrUpstreamUnavailable covers transport-level failures: connection
	// refused, timeout, cancelled context.
	ErrUpstreamUnavailable = errors.New("upstream: unavailable")

	// ErrUpstreamBadResponse covers calls that completed at the transport
	// level but returned a non-2xx status or a payload that does not decode
	// into the expected shape.
	ErrUpstreamBadResponse = errors.New("upstream: bad response")
)
