package repositories

import "errors"

// ErrNotFound is wrapped by every repository lookup that misses, so callers
// can distinguish a missing record from a store failure with errors.Is.
var ErrNotFound = errors.New("record not found")
