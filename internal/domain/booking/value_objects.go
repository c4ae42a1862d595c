package booking

import (
	"errors"
	"time"
)

var (
	ErrStartAfterEnd  = errors.New("start date is after end date")
	ErrZeroLengthSlot = errors.New("start and end dates are equal")
	ErrStartInPast    = errors.New("start date is in the past")
)

// IntervalPolicy collects the date-validation switches applied when a period
// is proposed. The start-after-end and equal-bounds checks are unconditional;
// only the past-start check is optional.
type IntervalPolicy struct {
	RequireFutureStart bool
}

// Period is the booked interval. Both bounds are compared strictly: a period
// touching "now" at either bound is neither current, past, nor future.
type Period struct {
	start time.Time
	end   time.Time
}

func NewPeriod(start, end time.Time, policy IntervalPolicy, now time.Time) (Period, error) {
	if start.After(end) {
		return Period{}, ErrStartAfterEnd
	}
	if start.Equal(end) {
		return Period{}, ErrZeroLengthSlot
	}
	if policy.RequireFutureStart && start.Before(now) {
		return Period{}, ErrStartInPast
	}
	return Period{start: start, end: end}, nil
}

// ReconstructPeriod rebuilds a period from storage without re-applying the
// proposal policy; persisted periods were validated when they were created.
func ReconstructPeriod(start, end time.Time) Period {
	return Period{start: start, end: end}
}

func (p Period) Start() time.Time { return p.start }
func (p Period) End() time.Time   { return p.end }

func (p Period) Duration() time.Duration {
	return p.end.Sub(p.start)
}

func (p Period) IsCurrent(now time.Time) bool {
	return p.start.Before(now) && p.end.After(now)
}

func (p Period) IsPast(now time.Time) bool {
	return p.end.Before(now)
}

func (p Period) IsFuture(now time.Time) bool {
	return p.start.After(now)
}
