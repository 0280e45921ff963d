package timeline

import "time"

// Interval is one contiguous stretch of time spent on one activity, or
// one day fragment of a stretch that crossed midnight.
type Interval struct {
	ActivityID string
	// Name is a denormalized copy of the activity name at start time. It
	// is never re-resolved against the catalog.
	Name  string
	Start time.Time
	// End is nil while the interval is open.
	End *time.Time
	// Continuation marks an automatically generated fragment standing in
	// for days 2..N of a multi-day interval. Fragments are always closed
	// and never the current activity.
	Continuation bool
}

// Open reports whether the interval has not been finished yet.
func (iv Interval) Open() bool {
	return iv.End == nil
}

// Summary describes a just-finished interval.
type Summary struct {
	Start time.Time
	End   time.Time
	Name  string
}

// Day is one day bucket of the log, used for queries and serialization.
type Day struct {
	Date      string
	Intervals []Interval
}
