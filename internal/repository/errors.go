package repository

import "errors"

var (
	// ErrNotFound is returned when no user matches the lookup key.
	ErrNotFound = errors.New("user not found")
	// ErrDuplicateEmail is returned when a create would violate the
	// unique email constraint.
	ErrDuplicateEmail = errors.New("email already registered")
)
