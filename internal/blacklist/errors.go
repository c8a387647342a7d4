package blacklist

import "errors"

var (
	// ErrUnexpectedStatus is returned by HTTPSource when the list is not served
	// with a 2xx status.
	ErrUnexpectedStatus = errors.New("unexpected status fetching blacklist")

	// ErrNoSource is returned when a Cache is created without a source.
	ErrNoSource = errors.New("blacklist source is nil")
)
