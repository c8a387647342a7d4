package votes

import "errors"

var (
	// ErrNilVote is returned when a nil vote is saved.
	ErrNilVote = errors.New("vote is nil")

	// ErrNilAnalysis is returned when a nil analysis is saved.
	ErrNilAnalysis = errors.New("analysis is nil")

	// ErrUnknownStore is returned for an unsupported store kind.
	ErrUnknownStore = errors.New("unknown vote store")
)
