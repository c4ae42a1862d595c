package booking

import (
	"errors"
	"strings"
	"time"
)

type Status string

const (
	StatusWaiting  Status = "WAITING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusWaiting, StatusApproved, StatusRejected:
		return true
	default:
		return false
	}
}

// IsDecided reports whether the status is terminal.
func (s Status) IsDecided() bool {
	return s == StatusApproved || s == StatusRejected
}

var ErrUnknownState = errors.New("unknown booking state")

// State selects which slice of a user's bookings a listing returns. The
// temporal states are evaluated against a "now" captured once per query;
// membership in them changes as time passes, so it is never stored.
type State string

const (
	StateAll      State = "ALL"
	StateCurrent  State = "CURRENT"
	StatePast     State = "PAST"
	StateFuture   State = "FUTURE"
	StateWaiting  State = "WAITING"
	StateRejected State = "REJECTED"
)

// ParseState maps a raw query value to a State. Empty input defaults to ALL.
func ParseState(raw string) (State, error) {
	if raw == "" {
		return StateAll, nil
	}
	s := State(strings.ToUpper(raw))
	switch s {
	case StateAll, StateCurrent, StatePast, StateFuture, StateWaiting, StateRejected:
		return s, nil
	default:
		return "", ErrUnknownState
	}
}

func (s State) String() string {
	return string(s)
}

// Matches is the classification predicate for a single booking. The SQL
// retrieval in the read store mirrors these exact comparisons; this form
// exists so the semantics live in one testable place.
func (s State) Matches(b *Booking, now time.Time) bool {
	switch s {
	case StateAll:
		return true
	case StateCurrent:
		return b.period.IsCurrent(now)
	case StatePast:
		return b.period.IsPast(now)
	case StateFuture:
		return b.period.IsFuture(now)
	case StateWaiting:
		return b.status == StatusWaiting
	case StateRejected:
		return b.status == StatusRejected
	default:
		return false
	}
}
