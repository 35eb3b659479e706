package analytics

import "errors"

// Engine failure taxonomy. Errors are wrapped with %w so callers can match
// with errors.Is and decide whether to report-and-continue (dashboard) or
// abort (one-shot report).
var (
	// ErrInsufficientData marks a fit/correlation/forecast attempted with too
	// few distinct observations.
	ErrInsufficientData = errors.New("insufficient data")

	// ErrInvalidArgument marks a caller-supplied parameter outside the
	// documented domain (unknown group key, non-positive horizon, ...).
	ErrInvalidArgument = errors.New("invalid argument")
)
