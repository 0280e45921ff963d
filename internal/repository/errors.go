package repository

import "errors"

// ErrNotFound is returned when a requested user has no persisted state.
var ErrNotFound = errors.New("not found")
