package repository

import "errors"

var (
	// ErrNotFound is returned when no record matches the id. Ids that are not
	// well formed for the backing store are reported the same way.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when a unique constraint is violated.
	ErrDuplicate = errors.New("duplicate")
)
