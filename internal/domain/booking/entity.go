package booking

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrAlreadyDecided = errors.New("booking has already been decided")
	ErrInvalidStatus  = errors.New("invalid booking status")
)

// Booking is a time-bounded claim by a booker on an item. It is created
// WAITING and decided at most once by the item's owner; APPROVED and
// REJECTED are terminal.
type Booking struct {
	id        uuid.UUID
	itemID    uuid.UUID
	bookerID  uuid.UUID
	period    Period
	status    Status
	decidedAt *time.Time
	createdAt time.Time
	updatedAt time.Time
}

func NewBooking(itemID, bookerID uuid.UUID, period Period) *Booking {
	return &Booking{
		id:       uuid.New(),
		itemID:   itemID,
		bookerID: bookerID,
		period:   period,
		status:   StatusWaiting,
	}
}

func ReconstructBooking(
	id, itemID, bookerID uuid.UUID,
	period Period,
	status Status,
	decidedAt *time.Time,
	createdAt, updatedAt time.Time,
) (*Booking, error) {
	if !status.IsValid() {
		return nil, ErrInvalidStatus
	}
	return &Booking{
		id:        id,
		itemID:    itemID,
		bookerID:  bookerID,
		period:    period,
		status:    status,
		decidedAt: decidedAt,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}, nil
}

// Decide applies the owner's verdict. It fails on anything but WAITING, so a
// second call can never flip a terminal status.
func (b *Booking) Decide(approved bool, now time.Time) error {
	if b.status != StatusWaiting {
		return ErrAlreadyDecided
	}
	if approved {
		b.status = StatusApproved
	} else {
		b.status = StatusRejected
	}
	b.decidedAt = &now
	return nil
}

func (b *Booking) IsBookedBy(userID uuid.UUID) bool {
	return b.bookerID == userID
}

// HasFinishedFor reports whether this booking entitles the given user to
// comment on the item: approved and strictly ended.
func (b *Booking) HasFinishedFor(userID uuid.UUID, now time.Time) bool {
	return b.bookerID == userID && b.status == StatusApproved && b.period.IsPast(now)
}

func (b *Booking) ID() uuid.UUID        { return b.id }
func (b *Booking) ItemID() uuid.UUID    { return b.itemID }
func (b *Booking) BookerID() uuid.UUID  { return b.bookerID }
func (b *Booking) Period() Period       { return b.period }
func (b *Booking) Status() Status       { return b.status }
func (b *Booking) DecidedAt() *time.Time { return b.decidedAt }
func (b *Booking) CreatedAt() time.Time { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time { return b.updatedAt }
