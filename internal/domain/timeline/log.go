// Package timeline keeps the day-keyed log of activity intervals and the
// algorithms that keep it consistent: starting an interval auto-closes the
// open one, finishing an interval that crossed midnight splits it into
// per-day continuation fragments, and at most one interval is ever open.
package timeline

import (
	"fmt"
	"sort"
	"time"

	"github.com/rpggio/stint/internal/clock"
)

// Log maps calendar-day keys to ordered interval sequences. Day buckets
// are created on demand and never deleted.
type Log struct {
	days map[string][]Interval
}

// NewLog returns an empty log.
func NewLog() *Log {
	return &Log{days: make(map[string][]Interval)}
}

// FromDays rebuilds a log from serialized day buckets.
func FromDays(days []Day) *Log {
	l := NewLog()
	for _, d := range days {
		l.days[d.Date] = append(l.days[d.Date], d.Intervals...)
	}
	return l
}

// Days returns every day bucket in chronological order, for serialization.
func (l *Log) Days() []Day {
	keys := make([]string, 0, len(l.days))
	for k := range l.days {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]Day, 0, len(keys))
	for _, k := range keys {
		out = append(out, Day{Date: k, Intervals: append([]Interval(nil), l.days[k]...)})
	}
	return out
}

// Current returns a copy of the open interval, or nil when nothing is in
// progress. Only the chronologically last day bucket can hold an open
// interval, so this scans day keys once and inspects one entry.
func (l *Log) Current() *Interval {
	day, ok := l.lastDay()
	if !ok {
		return nil
	}
	entries := l.days[day]
	last := entries[len(entries)-1]
	if !last.Open() {
		return nil
	}
	return &last
}

// Start opens a new interval for the given activity at now, first
// finishing any interval still open. It returns the summary of the
// implicitly finished interval, or nil if nothing was open.
func (l *Log) Start(activityID, name string, now time.Time) (*Summary, error) {
	var completed *Summary
	if l.Current() != nil {
		s, err := l.Finish(now)
		if err != nil {
			return nil, err
		}
		completed = &s
	}

	key := clock.DayKey(now)
	l.days[key] = append(l.days[key], Interval{
		ActivityID: activityID,
		Name:       name,
		Start:      now,
	})
	return completed, nil
}

// Finish closes the open interval at now. If the interval spans several
// calendar days, a closed continuation fragment is recorded in each day
// bucket after the start day, carrying the original start and the final
// end so every covered day shows the activity.
func (l *Log) Finish(now time.Time) (Summary, error) {
	day, ok := l.lastDay()
	if !ok {
		return Summary{}, ErrNothingToFinish
	}
	entries := l.days[day]
	idx := len(entries) - 1
	if !entries[idx].Open() {
		return Summary{}, ErrNothingToFinish
	}

	start := entries[idx].Start
	if clock.DayKey(start) > clock.DayKey(now) {
		return Summary{}, fmt.Errorf("%w: started %s, finished %s",
			ErrClockSkew, clock.DayKey(start), clock.DayKey(now))
	}

	end := now
	l.days[day][idx].End = &end

	closed := l.days[day][idx]
	for d := clock.Midnight(start).AddDate(0, 0, 1); !d.After(clock.Midnight(now)); d = d.AddDate(0, 0, 1) {
		key := clock.DayKey(d)
		l.days[key] = append(l.days[key], Interval{
			ActivityID:   closed.ActivityID,
			Name:         closed.Name,
			Start:        start,
			End:          &end,
			Continuation: true,
		})
	}

	return Summary{Start: start, End: end, Name: closed.Name}, nil
}

// Recent returns the day buckets holding the n most recent intervals,
// oldest included day first and each day's intervals in original order.
// Continuation fragments are skipped and do not count toward n. Fewer
// than n intervals are returned when the log is exhausted.
func (l *Log) Recent(n int) []Day {
	if n <= 0 {
		return nil
	}
	keys := make([]string, 0, len(l.days))
	for k := range l.days {
		keys = append(keys, k)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))

	var collected []Day
	remaining := n
	for _, key := range keys {
		var kept []Interval
		for _, iv := range l.days[key] {
			if iv.Continuation {
				continue
			}
			kept = append(kept, iv)
			remaining--
			if remaining == 0 {
				break
			}
		}
		if len(kept) > 0 {
			collected = append(collected, Day{Date: key, Intervals: kept})
		}
		if remaining == 0 {
			break
		}
	}

	// Newest day was collected first; callers want oldest first.
	for i, j := 0, len(collected)-1; i < j; i, j = i+1, j-1 {
		collected[i], collected[j] = collected[j], collected[i]
	}
	return collected
}

func (l *Log) lastDay() (string, bool) {
	var max string
	for k := range l.days {
		if k > max {
			max = k
		}
	}
	return max, max != ""
}
