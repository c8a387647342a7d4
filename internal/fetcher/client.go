package fetcher

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/net/proxy"
)

// maxRedirects bounds the redirects followed for one retrieval.
const maxRedirects = 10

// NewHTTPClient creates the HTTP client shared by the retrieval backends and
// the blacklist source. When socksAddr is non-empty, every connection is
// routed through the SOCKS5 proxy at that "host:port" address.
//
// Design decision: The proxy is only validated, not contacted, here. The
// client can be created while the proxy is still starting, and a dead proxy
// shows up as failed retrievals, which the orchestrator already tolerates.
func NewHTTPClient(timeout time.Duration, socksAddr string) (*http.Client, error) {
	transport := http.DefaultTransport.(*http.Transport).Clone() //nolint:forcetypeassert // DefaultTransport is always *http.Transport

	if socksAddr != "" {
		if !isValidProxyAddress(socksAddr) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidProxyAddress, socksAddr)
		}

		// No auth: local SOCKS proxies such as Tor accept anonymous clients.
		dialer, err := proxy.SOCKS5("tcp", socksAddr, nil, proxy.Direct)
		if err != nil {
			return nil, fmt.Errorf("failed to create SOCKS5 dialer: %w", err)
		}

		transport.Proxy = nil
		transport.DialContext = dialContext(dialer)
	}

	return &http.Client{
		Transport: transport,
		Timeout:   timeout,
		CheckRedirect: func(_ *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return http.ErrUseLastResponse
			}
			return nil
		},
	}, nil
}

// dialContext adapts a proxy.Dialer to the transport's DialContext. The
// SOCKS5 dialer of x/net implements proxy.ContextDialer; other dialers are
// wrapped so that a cancelled context still returns promptly.
func dialContext(dialer proxy.Dialer) func(ctx context.Context, network, addr string) (net.Conn, error) {
	if cd, ok := dialer.(proxy.ContextDialer); ok {
		return cd.DialContext
	}

	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		type dialResult struct {
			conn net.Conn
			err  error
		}
		resultCh := make(chan dialResult, 1)

		go func() {
			conn, err := dialer.Dial(network, addr)
			resultCh <- dialResult{conn, err}
		}()

		select {
		case result := <-resultCh:
			return result.conn, result.err
		case <-ctx.Done():
			// The dial may still finish; close what it returns.
			go func() {
				if result := <-resultCh; result.conn != nil {
					result.conn.Close()
				}
			}()
			return nil, ctx.Err()
		}
	}
}

// isValidProxyAddress checks for a non-empty host and a port in 1-65535.
func isValidProxyAddress(address string) bool {
	host, port, err := net.SplitHostPort(address)
	if err != nil || host == "" {
		return false
	}
	n, err := strconv.Atoi(port)
	return err == nil && n >= 1 && n <= 65535
}
