package placement

import "errors"

// Sentinel kinds for placement parsing.
var (
	// ErrNotPlacement marks a cell without two numeric tokens. Callers skip it silently.
	ErrNotPlacement = errors.New("not a placement")
	// ErrMalformedPlacement marks a cell that looks like a placement but cannot be
	// turned into a percentile, e.g. a zero denominator.
	ErrMalformedPlacement = errors.New("malformed placement")
)
