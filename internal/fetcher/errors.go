package fetcher

import "errors"

var (
	// ErrUnexpectedStatus is returned when a backend responds with a non-2xx status.
	ErrUnexpectedStatus = errors.New("unexpected status from retrieval backend")

	// ErrMissingField is returned when a JSON backend's envelope lacks the
	// field holding the page.
	ErrMissingField = errors.New("retrieval backend response has no content field")
)

// ErrInvalidProxyAddress is returned when the SOCKS5 proxy address is not
// in "host:port" format.
var ErrInvalidProxyAddress = errors.New("invalid proxy address format: expected host:port")
