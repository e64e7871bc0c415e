package repositories

import "errors"

var (
	// ErrNotFound is returned when the requested row does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateKey is returned when an insert loses a uniqueness race.
	ErrDuplicateKey = errors.New("duplicate key")
)
