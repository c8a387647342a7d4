package blacklist

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strings"
	"sync"
)

// Cache is an explicitly owned, lazily loaded set of blacklisted hostnames.
//
// Design decision: The cache is an object handed to the analyzers instead of
// package-level state. Tests and batch runs get isolated lists, and the load
// state is visible through the loaded flag rather than inferred from a nil set.
type Cache struct {
	source Source
	logger *slog.Logger

	// mu guards loaded and hosts. It is held for the duration of a load so
	// concurrent first callers wait for a single load.
	mu     sync.Mutex
	loaded bool
	hosts  map[string]struct{}
}

// Option configures a Cache.
type Option func(*Cache)

// WithLogger sets the logger for load diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Cache) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewCache creates a cache reading from source. Nothing is loaded until the
// first lookup.
func NewCache(source Source, opts ...Option) *Cache {
	c := &Cache{
		source: source,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// IsBlacklisted reports whether the URL's hostname is on the list.
// Unparseable URLs and URLs without a hostname are never blacklisted.
func (c *Cache) IsBlacklisted(ctx context.Context, rawURL string) bool {
	hosts := c.set(ctx)

	hostname := hostnameOf(rawURL)
	if hostname == "" {
		return false
	}

	for _, variant := range variants(hostname) {
		if _, ok := hosts[variant]; ok {
			c.logger.Debug("publisher is blacklisted", "host", hostname, "match", variant)
			return true
		}
	}
	return false
}

// ReasonFor returns a category-specific explanation for a blacklisted URL.
// It does not consult the list; call it only after IsBlacklisted reported a hit.
func (c *Cache) ReasonFor(rawURL string) string {
	return Reason(rawURL)
}

// Len returns the number of hostnames on the list, loading it if needed.
func (c *Cache) Len(ctx context.Context) int {
	return len(c.set(ctx))
}

// Loaded reports whether the list has been loaded successfully.
func (c *Cache) Loaded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loaded
}

// Reload discards the cached list and loads it again.
// On failure the previous list is kept.
func (c *Cache) Reload(ctx context.Context) error {
	hosts, err := c.load(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.hosts = hosts
	c.loaded = true
	return nil
}

// set returns the cached list, loading it on first use. A failed load
// returns an empty set and leaves loaded unset so the next call retries.
func (c *Cache) set(ctx context.Context) map[string]struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.loaded {
		return c.hosts
	}

	hosts, err := c.load(ctx)
	if err != nil {
		c.logger.Warn("failed to load publisher blacklist", "error", err)
		return map[string]struct{}{}
	}

	c.hosts = hosts
	c.loaded = true
	c.logger.Debug("loaded publisher blacklist", "hosts", len(hosts))
	return c.hosts
}

func (c *Cache) load(ctx context.Context) (map[string]struct{}, error) {
	if c.source == nil {
		return nil, ErrNoSource
	}

	rc, err := c.source.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	return Parse(rc)
}

// Parse reads a newline-delimited hostname list. Lines are trimmed, blank
// lines and "#" comments are skipped and entries are lower-cased.
func Parse(r io.Reader) (map[string]struct{}, error) {
	hosts := make(map[string]struct{})

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		hosts[strings.ToLower(line)] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read blacklist: %w", err)
	}
	return hosts, nil
}

// hostnameOf returns the lower-cased hostname of rawURL, or "" when the URL
// cannot be parsed or has no host.
func hostnameOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}

// variants returns the hostname as given, without "www." and with "www.".
func variants(hostname string) []string {
	withoutWWW := strings.TrimPrefix(hostname, "www.")
	withWWW := hostname
	if !strings.HasPrefix(hostname, "www.") {
		withWWW = "www." + hostname
	}
	return []string{hostname, withoutWWW, withWWW}
}
