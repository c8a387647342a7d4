package analyzer

import "errors"

// ErrInvalidURL is returned when the article URL has no hostname that the
// link analysis can compare against.
var ErrInvalidURL = errors.New("invalid article URL")
