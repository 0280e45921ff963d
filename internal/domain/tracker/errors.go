package tracker

import "errors"

// ErrUnknownActivity indicates a start request for a name absent from the
// catalog. Activities must be created before they can be logged.
var ErrUnknownActivity = errors.New("unknown activity")
