package cookability

import "errors"

// ErrMaxMissingOutOfRange is returned by AlmostCookable when maxMissing
// falls outside [1, 5] (spec.md §4.2).
var ErrMaxMissingOutOfRange = errors.New("maxMissing must be between 1 and 5")
