package catalog

import "errors"

var (
	// ErrActivityNotFound indicates no node with the requested name exists.
	ErrActivityNotFound = errors.New("activity not found")
	// ErrMalformedPath indicates an activity path with an empty segment.
	ErrMalformedPath = errors.New("malformed activity path")
	// ErrMissingAncestor indicates a path segment that does not exist and
	// was not allowed to be created.
	ErrMissingAncestor = errors.New("missing ancestor activity")
)
