package breakdown

import "errors"

// ErrUnknownCategory marks a rule whose subject or strategy is not charted.
var ErrUnknownCategory = errors.New("unknown category")
