// Package log provides secure logging functionality with automatic sanitization
// of sensitive information, built on top of the standard slog package.
//
// This package extends slog to provide:
//   - Masking of values whose attribute key names a secret (passwords, tokens)
//   - Masking of secret-looking values regardless of key (bearer tokens, JWTs)
//   - Masking of credentials embedded in logged URLs (user info and query
//     parameters such as token or api_key)
//   - Configurable log levels with verbose mode support
//
// Article URLs are logged at every stage of an analysis, and users paste URLs
// copied straight out of their browser. Those URLs regularly carry session
// tokens or signed query parameters, so URL values are rewritten rather than
// dropped: the host and path stay readable while the secret parts are masked.
//
// # Usage
//
//	logger := log.NewSecureLogger(os.Stderr, true) // verbose=true
//
//	logger.Debug("retrieving article",
//	    "url", "https://news.example/a?id=7&token=abc", // logged as ...?id=7&token=***REDACTED***
//	)
//
//	slog.SetDefault(logger)
package log
