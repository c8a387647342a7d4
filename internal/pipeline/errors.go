package pipeline

import "errors"

var (
	// ErrNoResult is returned internally when every strategy declined.
	ErrNoResult = errors.New("no strategy produced a result")

	// ErrStrategyPanic wraps a panic recovered from a strategy.
	ErrStrategyPanic = errors.New("strategy panicked")

	// ErrParseHTML is returned when retrieved HTML cannot be parsed.
	ErrParseHTML = errors.New("failed to parse retrieved HTML")
)
