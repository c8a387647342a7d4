package config

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// DefaultTimeout bounds a single retrieval request. Public retrieval
	// backends are slow and flaky, but one of six being stuck must not stall
	// the whole analysis for minutes.
	DefaultTimeout = 15 * time.Second

	// DefaultBatchSize of 4 concurrent analyses keeps the load on the shared
	// retrieval backends modest.
	DefaultBatchSize = 4

	// AppName is the application name used for XDG directory paths.
	AppName = "bsdetector"

	// DefaultFetchDelay is the minimum spacing between retrieval attempts.
	// This is a politeness setting for the free third-party backends.
	DefaultFetchDelay = 250 * time.Millisecond

	// DefaultUserAgent mimics a desktop Firefox. Several retrieval backends
	// and news sites refuse requests without a browser-like profile.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:109.0) Gecko/20100101 Firefox/119.0"

	// DefaultMaxBodySize limits the maximum response body size to read.
	// 5MB is sufficient for article pages while preventing memory exhaustion.
	DefaultMaxBodySize = 5 * 1024 * 1024 // 5MB

	// DefaultLanguage selects the language of the fallback warning.
	DefaultLanguage = "en"

	// DefaultDBFile is the SQLite database file name inside DBDir.
	DefaultDBFile = "bsdetector.db"
)

// Store kinds.
const (
	// StoreMemory keeps votes only for the lifetime of the process.
	StoreMemory = "memory"
	// StoreSQLite persists votes in a SQLite database file.
	StoreSQLite = "sqlite"
	// StoreRedis persists votes in a Redis list.
	StoreRedis = "redis"
)

// BackendConfig describes one retrieval backend.
type BackendConfig struct {
	// Name identifies the backend in logs.
	Name string `yaml:"name"`

	// Template is the request URL with a single %s placeholder for the target.
	Template string `yaml:"template"`

	// Encode percent-encodes the target before substitution.
	// Some backends expect the raw URL appended to their path.
	Encode bool `yaml:"encode"`

	// JSONField names the field holding the page when the backend wraps the
	// page in a JSON envelope. Empty means the body is raw HTML.
	JSONField string `yaml:"jsonField,omitempty"`
}

// DefaultBackends returns the built-in retrieval backends in the order they
// are tried.
func DefaultBackends() []BackendConfig {
	return []BackendConfig{
		{Name: "allorigins", Template: "https://api.allorigins.win/get?url=%s", Encode: true, JSONField: "contents"},
		{Name: "htmldriven", Template: "https://cors-proxy.htmldriven.com/?url=%s", Encode: true},
		{Name: "codetabs", Template: "https://api.codetabs.com/v1/proxy?quest=%s", Encode: true},
		{Name: "thingproxy", Template: "https://thingproxy.freeboard.io/fetch/%s", Encode: true},
		{Name: "crossorigin", Template: "https://crossorigin.me/%s"},
		{Name: "cors-anywhere", Template: "https://cors-anywhere.herokuapp.com/%s"},
	}
}

// Config holds all configuration options for bsdetector.
// This struct is populated from defaults, the configuration file and CLI
// flags (in that order of precedence, lowest first) and passed through the
// application via dependency injection rather than global state.
//
// Design decision: We use a single flat struct instead of nested structs.
// The number of options is manageable, and nesting would add complexity
// without significant benefit.
type Config struct {
	// Timeout is the timeout for each retrieval request.
	Timeout time.Duration

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// BatchSize is the number of concurrent analyses when processing several URLs.
	BatchSize int

	// Language selects the language of user-facing warnings ("en", "de").
	Language string

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches for .bsdetector in the current directory
	// and then in the user's home directory.
	ConfigFilePath string

	// Blacklist is a file path or http(s) URL of the publisher blacklist.
	// When empty, the list compiled into the binary is used.
	Blacklist string

	// JSONReport enables JSON report output instead of human-readable format.
	// Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport enables Markdown report output instead of human-readable format.
	// Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path for the report.
	// When set, the report is written to this file instead of stdout.
	// Directories are created automatically if they don't exist.
	ReportFile string

	// Targets is the list of article URLs to analyse.
	Targets []string

	// Store selects the vote store: memory, sqlite or redis.
	Store string

	// DBDir is the directory path for the SQLite database.
	// Defaults to XDG data directory (~/.local/share/bsdetector on Linux).
	DBDir string

	// RedisAddr is the "host:port" of the Redis server for the redis store.
	RedisAddr string

	// RedisPassword authenticates against the Redis server.
	RedisPassword string

	// RedisDB selects the Redis logical database.
	RedisDB int

	// SaveAnalyses stores each finished analysis so that later votes and
	// "vote rating" can refer back to it.
	SaveAnalyses bool

	// FetchDelay is the minimum delay between retrieval attempts.
	FetchDelay time.Duration

	// UserAgent is the User-Agent header sent with retrieval requests.
	UserAgent string

	// MaxBodySize is the maximum response body size in bytes to read.
	// Set to 0 to use the default (5MB).
	MaxBodySize int64

	// Backends are the retrieval backends tried in order.
	Backends []BackendConfig

	// SOCKSProxy is the "host:port" of a SOCKS5 proxy (for example a local
	// Tor daemon) that all retrieval traffic goes through. Empty connects
	// directly.
	SOCKSProxy string
}

// NewConfig creates a new Config with default values.
//
// Design decision: We use a constructor function instead of relying on
// zero values because many defaults are non-zero. This also serves as
// documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		Timeout:      DefaultTimeout,
		BatchSize:    DefaultBatchSize,
		Language:     DefaultLanguage,
		Store:        StoreSQLite,
		DBDir:        XDGDataDir(),
		SaveAnalyses: true,
		FetchDelay:   DefaultFetchDelay,
		UserAgent:    DefaultUserAgent,
		MaxBodySize:  DefaultMaxBodySize,
		Backends:     DefaultBackends(),
	}
}

// XDGDataDir returns the XDG data directory for bsdetector.
// On Linux: ~/.local/share/bsdetector
// On macOS: ~/Library/Application Support/bsdetector
// On Windows: %LOCALAPPDATA%\bsdetector
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// DBPath returns the SQLite database file path.
func (c *Config) DBPath() string {
	return filepath.Join(c.DBDir, DefaultDBFile)
}

// ApplyFile overlays the values set in a configuration file.
// Zero values in the file leave the current setting untouched.
func (c *Config) ApplyFile(f *File) {
	if f == nil {
		return
	}
	if f.Language != "" {
		c.Language = f.Language
	}
	if f.Blacklist != "" {
		c.Blacklist = f.Blacklist
	}
	if f.BatchSize > 0 {
		c.BatchSize = f.BatchSize
	}

	if f.Fetch.Timeout > 0 {
		c.Timeout = f.Fetch.Timeout
	}
	if f.Fetch.Delay > 0 {
		c.FetchDelay = f.Fetch.Delay
	}
	if f.Fetch.UserAgent != "" {
		c.UserAgent = f.Fetch.UserAgent
	}
	if f.Fetch.MaxBodySize > 0 {
		c.MaxBodySize = f.Fetch.MaxBodySize
	}
	if len(f.Fetch.Backends) > 0 {
		c.Backends = f.Fetch.Backends
	}
	if f.Fetch.SOCKSProxy != "" {
		c.SOCKSProxy = f.Fetch.SOCKSProxy
	}

	if f.Store.Kind != "" {
		c.Store = f.Store.Kind
	}
	if f.Store.DBDir != "" {
		c.DBDir = f.Store.DBDir
	}
	if f.Store.RedisAddr != "" {
		c.RedisAddr = f.Store.RedisAddr
	}
	if f.Store.RedisPassword != "" {
		c.RedisPassword = f.Store.RedisPassword
	}
	if f.Store.RedisDB != 0 {
		c.RedisDB = f.Store.RedisDB
	}
	if f.Store.SaveAnalyses != nil {
		c.SaveAnalyses = *f.Store.SaveAnalyses
	}
}

// Validate checks if the configuration is valid for the analyze command.
// It returns a specific error describing what is invalid.
//
// We return the first error found rather than collecting all errors
// because fixing one error often makes others irrelevant.
func (c *Config) Validate() error {
	if len(c.Targets) == 0 {
		return ErrNoTarget
	}
	return c.ValidateSettings()
}

// ValidateSettings checks every option except the targets. The vote
// commands use it because they never analyse anything.
func (c *Config) ValidateSettings() error {
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}

	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	if c.FetchDelay < 0 {
		return ErrInvalidFetchDelay
	}

	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}

	switch c.Store {
	case StoreMemory, StoreSQLite:
	case StoreRedis:
		if c.RedisAddr == "" {
			return ErrMissingRedisAddr
		}
	default:
		return ErrUnknownStore
	}

	for _, b := range c.Backends {
		if b.Name == "" || !strings.Contains(b.Template, "%s") {
			return ErrInvalidBackend
		}
	}

	return nil
}
