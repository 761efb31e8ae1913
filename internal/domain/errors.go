package domain

import "errors"

// Shared sentinels. Failures specific to one engine operation live in that
// module's errors.go; these two cross package boundaries: the store
// implementations return them and every handler maps them.
var (
	ErrNotFound = errors.New("not found")
	ErrNetwork  = errors.New("platform store unreachable")
)
