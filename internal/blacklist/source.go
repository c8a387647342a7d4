package blacklist

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

//go:embed untrustworthy-publishers.txt
var embeddedList []byte

// Source opens the raw blacklist resource.
// The caller closes the returned reader.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
}

// EmbeddedSource serves the list compiled into the binary.
type EmbeddedSource struct{}

// Open implements Source.
func (EmbeddedSource) Open(_ context.Context) (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(embeddedList)), nil
}

// FileSource reads the list from a local file.
type FileSource struct {
	Path string
}

// Open implements Source.
func (s FileSource) Open(_ context.Context) (io.ReadCloser, error) {
	f, err := os.Open(s.Path) //nolint:gosec // User-provided blacklist path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to open blacklist file: %w", err)
	}
	return f, nil
}

// HTTPSource downloads the list from a URL.
type HTTPSource struct {
	// URL is the location of the list.
	URL string

	// Client performs the request. http.DefaultClient is used when nil.
	Client *http.Client
}

// Open implements Source.
func (s HTTPSource) Open(ctx context.Context) (io.ReadCloser, error) {
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create blacklist request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch blacklist: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}
	return resp.Body, nil
}

// NewSource picks a source for a location given on the command line or in
// the configuration file: empty selects the embedded list, an http(s) URL
// selects HTTPSource and anything else is treated as a file path.
func NewSource(location string, client *http.Client) Source {
	switch {
	case location == "":
		return EmbeddedSource{}
	case strings.HasPrefix(location, "http://"), strings.HasPrefix(location, "https://"):
		return HTTPSource{URL: location, Client: client}
	default:
		return FileSource{Path: location}
	}
}
