// Package daterange provides the half-open date interval value object
// used for grant and project durations.
package daterange

import (
	"fmt"
	"time"
)

// DateRange is a half-open interval [Start, End). A nil End means the
// range is unbounded above, which is how project access durations are
// modelled.
type DateRange struct {
	start time.Time
	end   *time.Time
}

// New creates a bounded range [start, end). End must be after start.
func New(start, end time.Time) (DateRange, error) {
	start = truncate(start)
	end = truncate(end)
	if !end.After(start) {
		return DateRange{}, fmt.Errorf("date range end %s must be after start %s",
			end.Format(time.DateOnly), start.Format(time.DateOnly))
	}
	return DateRange{start: start, end: &end}, nil
}

// NewOpenEnded creates a range with the given lower bound and no upper
// bound.
func NewOpenEnded(start time.Time) DateRange {
	return DateRange{start: truncate(start)}
}

// Reconstruct rebuilds a range from persisted bounds without re-running
// the ordering check (the constraint held when the row was written).
func Reconstruct(start time.Time, end *time.Time) DateRange {
	r := DateRange{start: truncate(start)}
	if end != nil {
		e := truncate(*end)
		r.end = &e
	}
	return r
}

// Start returns the inclusive lower bound.
func (r DateRange) Start() time.Time {
	return r.start
}

// End returns the exclusive upper bound, or nil when unbounded.
func (r DateRange) End() *time.Time {
	if r.end == nil {
		return nil
	}
	e := *r.end
	return &e
}

// Bounded reports whether the range has an upper bound.
func (r DateRange) Bounded() bool {
	return r.end != nil
}

// OpenEnded returns a copy of the range with the upper bound removed,
// keeping the lower bound.
func (r DateRange) OpenEnded() DateRange {
	return DateRange{start: r.start}
}

// Equal reports whether two ranges have the same bounds.
func (r DateRange) Equal(other DateRange) bool {
	if !r.start.Equal(other.start) {
		return false
	}
	if (r.end == nil) != (other.end == nil) {
		return false
	}
	return r.end == nil || r.end.Equal(*other.end)
}

// IsZero reports whether the range is the zero value.
func (r DateRange) IsZero() bool {
	return r.start.IsZero() && r.end == nil
}

func (r DateRange) String() string {
	if r.end == nil {
		return fmt.Sprintf("[%s,)", r.start.Format(time.DateOnly))
	}
	return fmt.Sprintf("[%s,%s)", r.start.Format(time.DateOnly), r.end.Format(time.DateOnly))
}

// FromEpochMillis builds a bounded range from external millisecond-epoch
// timestamps, converted to calendar dates in UTC.
func FromEpochMillis(startMillis, endMillis int64) (DateRange, error) {
	return New(time.UnixMilli(startMillis).UTC(), time.UnixMilli(endMillis).UTC())
}

func truncate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
