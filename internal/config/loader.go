package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".bsdetector"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// FetchFile holds the retrieval settings of the configuration file.
type FetchFile struct {
	// Timeout bounds each retrieval request (e.g. "15s").
	Timeout time.Duration `yaml:"timeout,omitempty"`

	// Delay is the minimum spacing between retrieval attempts (e.g. "250ms").
	Delay time.Duration `yaml:"delay,omitempty"`

	// UserAgent overrides the browser User-Agent.
	UserAgent string `yaml:"userAgent,omitempty"`

	// MaxBodySize limits the response body size in bytes.
	MaxBodySize int64 `yaml:"maxBodySize,omitempty"`

	// Backends replaces the built-in retrieval backends when non-empty.
	Backends []BackendConfig `yaml:"backends,omitempty"`

	// SOCKSProxy routes retrieval through a SOCKS5 proxy ("host:port").
	SOCKSProxy string `yaml:"socksProxy,omitempty"`
}

// StoreFile holds the persistence settings of the configuration file.
type StoreFile struct {
	Kind          string `yaml:"kind,omitempty"`
	DBDir         string `yaml:"dbDir,omitempty"`
	RedisAddr     string `yaml:"redisAddr,omitempty"`
	RedisPassword string `yaml:"redisPassword,omitempty"`
	RedisDB       int    `yaml:"redisDB,omitempty"`

	// SaveAnalyses is a pointer so that an explicit "false" can be told apart
	// from an absent key.
	SaveAnalyses *bool `yaml:"saveAnalyses,omitempty"`
}

// File represents the structure of the .bsdetector configuration file.
type File struct {
	// Language selects the language of user-facing warnings.
	Language string `yaml:"language,omitempty"`

	// Blacklist is a file path or URL of the publisher blacklist.
	Blacklist string `yaml:"blacklist,omitempty"`

	// BatchSize is the number of concurrent analyses.
	BatchSize int `yaml:"batchSize,omitempty"`

	Fetch FetchFile `yaml:"fetch,omitempty"`
	Store StoreFile `yaml:"store,omitempty"`
}

// LoadConfigFile loads settings from a YAML file.
// If the file does not exist, it returns ErrConfigNotFound.
// Callers should handle this error appropriately based on whether
// the config file path was explicitly specified by the user.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}

	return &cf, nil
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .bsdetector in the current directory
// 3. Look for .bsdetector in the user's home directory
//
// Returns the path to the configuration file if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	cwd, err := os.Getwd()
	if err == nil {
		cwdConfig := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	home, err := os.UserHomeDir()
	if err == nil {
		homeConfig := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(homeConfig); err == nil {
			return homeConfig
		}
	}

	return ""
}
