package timeline

import "errors"

var (
	// ErrNothingToFinish indicates no interval is currently open.
	ErrNothingToFinish = errors.New("no activity in progress")
	// ErrClockSkew indicates the open interval started on a later calendar
	// day than the finish instant. Surfaced instead of silently corrected.
	ErrClockSkew = errors.New("activity finishes before it was started, system clock may be wrong")
)
