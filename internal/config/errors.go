package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrNoTarget is returned when no article URL is specified.
	// This error occurs when neither --batch nor a positional argument provides a target.
	ErrNoTarget = errors.New("no target specified: provide an article URL or use --batch")

	// ErrInvalidTimeout is returned when the timeout is not positive.
	// A timeout of zero or negative would cause every retrieval to fail immediately.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidBatchSize is returned when the batch size is not positive.
	ErrInvalidBatchSize = errors.New("invalid batch size: must be positive")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified. Only one output format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrInvalidFetchDelay is returned when the delay between retrieval attempts is negative.
	ErrInvalidFetchDelay = errors.New("invalid fetch delay: must be non-negative")

	// ErrInvalidMaxBodySize is returned when the max body size is negative.
	// Use 0 to use the default limit.
	ErrInvalidMaxBodySize = errors.New("invalid max body size: must be non-negative")

	// ErrUnknownStore is returned when the store kind is not memory, sqlite or redis.
	ErrUnknownStore = errors.New("unknown store: must be one of memory, sqlite, redis")

	// ErrMissingRedisAddr is returned when the redis store is selected without an address.
	ErrMissingRedisAddr = errors.New("redis store requires --redis-addr")

	// ErrInvalidBackend is returned when a configured retrieval backend has
	// no name or its URL template has no %s placeholder.
	ErrInvalidBackend = errors.New("invalid retrieval backend: name and a URL template containing %s are required")
)
