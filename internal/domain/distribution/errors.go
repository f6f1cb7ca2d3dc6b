package distribution

import "errors"

// ErrEmpty marks a tournament table without a single parsable placement.
var ErrEmpty = errors.New("empty distribution")
