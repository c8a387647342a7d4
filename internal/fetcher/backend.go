package fetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/nao1215/bsdetector/internal/config"
	"golang.org/x/net/html/charset"
)

// Backend is one way of retrieving an article's HTML.
// Retrieve returns the page or an error; every backend honours the same
// contract so the Fetcher can treat them as an ordered list of strategies.
type Backend interface {
	// Name identifies the backend in logs.
	Name() string

	// Retrieve fetches the page at target.
	Retrieve(ctx context.Context, target string) (string, error)
}

// ProxyBackend retrieves pages through a templated proxy URL.
type ProxyBackend struct {
	name        string
	template    string
	encode      bool
	jsonField   string
	client      *http.Client
	userAgent   string
	maxBodySize int64
}

// ProxyOption configures a ProxyBackend.
type ProxyOption func(*ProxyBackend)

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) ProxyOption {
	return func(b *ProxyBackend) {
		if ua != "" {
			b.userAgent = ua
		}
	}
}

// WithMaxBodySize limits how many bytes of a response are read.
func WithMaxBodySize(size int64) ProxyOption {
	return func(b *ProxyBackend) {
		if size > 0 {
			b.maxBodySize = size
		}
	}
}

// NewProxyBackend creates a backend from its configuration.
// The client is shared between backends; its timeout bounds each attempt.
func NewProxyBackend(cfg config.BackendConfig, client *http.Client, opts ...ProxyOption) *ProxyBackend {
	if client == nil {
		client = http.DefaultClient
	}

	b := &ProxyBackend{
		name:        cfg.Name,
		template:    cfg.Template,
		encode:      cfg.Encode,
		jsonField:   cfg.JSONField,
		client:      client,
		userAgent:   config.DefaultUserAgent,
		maxBodySize: config.DefaultMaxBodySize,
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// NewProxyBackends creates backends for every configuration, keeping the order.
func NewProxyBackends(cfgs []config.BackendConfig, client *http.Client, opts ...ProxyOption) []Backend {
	backends := make([]Backend, 0, len(cfgs))
	for _, cfg := range cfgs {
		backends = append(backends, NewProxyBackend(cfg, client, opts...))
	}
	return backends
}

// Name implements Backend.
func (b *ProxyBackend) Name() string {
	return b.name
}

// RequestURL returns the proxy URL for a target.
func (b *ProxyBackend) RequestURL(target string) string {
	if b.encode {
		target = url.QueryEscape(target)
	}
	return strings.Replace(b.template, "%s", target, 1)
}

// Retrieve implements Backend.
func (b *ProxyBackend) Retrieve(ctx context.Context, target string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.RequestURL(target), nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	setBrowserHeaders(req.Header, b.userAgent)

	resp, err := b.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	body := io.LimitReader(resp.Body, b.maxBodySize)

	if b.jsonField != "" {
		return b.unwrap(body)
	}

	// Decode legacy encodings (Shift_JIS, ISO-8859-1, ...) to UTF-8 using the
	// Content-Type header and <meta charset> sniffing.
	reader, err := charset.NewReader(body, resp.Header.Get("Content-Type"))
	if err != nil {
		return "", fmt.Errorf("failed to decode charset: %w", err)
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("failed to read body: %w", err)
	}
	return string(data), nil
}

// unwrap extracts the page from a JSON envelope.
func (b *ProxyBackend) unwrap(body io.Reader) (string, error) {
	var envelope map[string]json.RawMessage
	if err := json.NewDecoder(body).Decode(&envelope); err != nil {
		return "", fmt.Errorf("failed to decode JSON envelope: %w", err)
	}

	raw, ok := envelope[b.jsonField]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrMissingField, b.jsonField)
	}

	// A null field means the backend could not reach the page.
	var contents *string
	if err := json.Unmarshal(raw, &contents); err != nil {
		return "", fmt.Errorf("failed to decode %s: %w", b.jsonField, err)
	}
	if contents == nil {
		return "", nil
	}
	return *contents, nil
}
