package meshopt

import "errors"

// ErrEmptyInput indicates an operation was given zero indices or points
// to work with; callers should treat this as a no-op, not a failure.
var ErrEmptyInput = errors.New("meshopt: empty input")
