package individual

import "errors"

// Sentinel kinds for individual statistics.
var (
	ErrMemberOutOfRange = errors.New("member out of range")
	ErrIdentityMismatch = errors.New("member identity differs across tournaments")
)
