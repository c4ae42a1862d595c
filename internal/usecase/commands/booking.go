package commands

import (
	"context"
	"time"

	"lendit/internal/domain/booking"
	"lendit/internal/infra"
	"lendit/internal/pkg/clock"
	"lendit/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound    = errs.New("user not found")
	ErrItemNotFound    = errs.New("item not found")
	ErrOwnItemBooking  = errs.New("owner cannot book own item")
	ErrItemUnavailable = errs.New("item is not available for booking")
	ErrInvalidPeriod   = errs.New("invalid booking period")
	ErrBookingNotFound = errs.New("booking not found")
	ErrNotItemOwner    = errs.New("only the item owner may decide the booking")
	ErrAlreadyDecided  = errs.New("booking has already been decided")
)

type BookingRepository interface {
	Create(ctx context.Context, b *booking.Booking) error
	// UpdateStatusIfWaiting flips the status only when the row is still
	// WAITING and reports how many rows changed.
	UpdateStatusIfWaiting(ctx context.Context, id uuid.UUID, status booking.Status, decidedAt time.Time) (int64, error)
}

type BookingCommands interface {
	// Propose creates a WAITING booking for the item on behalf of the booker.
	Propose(ctx context.Context, itemID, bookerID uuid.UUID, start, end time.Time) (uuid.UUID, error)
	// Decide approves or rejects a WAITING booking. Only the item owner may
	// decide, and only once.
	Decide(ctx context.Context, bookingID, actorID uuid.UUID, approved bool) error
}

type bookingCommandsImpl struct {
	repo   BookingRepository
	reads  CommandReads
	policy booking.IntervalPolicy
	clock  clock.Clock
}

func NewBookingCommands(repo BookingRepository, reads CommandReads, policy booking.IntervalPolicy, clk clock.Clock) BookingCommands {
	return &bookingCommandsImpl{repo: repo, reads: reads, policy: policy, clock: clk}
}

func (c *bookingCommandsImpl) Propose(ctx context.Context, itemID, bookerID uuid.UUID, start, end time.Time) (uuid.UUID, error) {
	exists, err := c.reads.UserExists(ctx, bookerID)
	if err != nil {
		return uuid.Nil, errs.Wrap(err, "failed to check booker existence")
	}
	if !exists {
		return uuid.Nil, ErrUserNotFound
	}

	itemSnap, err := c.reads.ItemByID(ctx, itemID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return uuid.Nil, ErrItemNotFound
		}
		return uuid.Nil, errs.Wrap(err, "failed to find item")
	}
	if itemSnap.OwnerID == bookerID {
		return uuid.Nil, ErrOwnItemBooking
	}
	if !itemSnap.Available {
		return uuid.Nil, ErrItemUnavailable
	}

	now := c.clock.Now()
	period, err := booking.NewPeriod(start, end, c.policy, now)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrInvalidPeriod)
	}

	entity := booking.NewBooking(itemID, bookerID, period)
	if err := c.repo.Create(ctx, entity); err != nil {
		if infra.IsKind(err, infra.KindForeignKeyViolated) {
			return uuid.Nil, ErrItemNotFound
		}
		return uuid.Nil, errs.Wrap(err, "failed to create booking")
	}
	return entity.ID(), nil
}

func (c *bookingCommandsImpl) Decide(ctx context.Context, bookingID, actorID uuid.UUID, approved bool) error {
	snap, err := c.reads.BookingByID(ctx, bookingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return ErrBookingNotFound
		}
		return errs.Wrap(err, "failed to find booking")
	}
	if snap.ItemOwnerID != actorID {
		return ErrNotItemOwner
	}

	entity, err := booking.ReconstructBooking(
		snap.ID, snap.ItemID, snap.BookerID,
		booking.ReconstructPeriod(snap.Start, snap.End),
		booking.Status(snap.Status), nil,
		snap.CreatedAt, snap.UpdatedAt,
	)
	if err != nil {
		return errs.Wrap(err, "stored booking status is malformed")
	}

	// The entity state machine decides the transition; the repository only
	// persists its outcome.
	now := c.clock.Now()
	if err := entity.Decide(approved, now); err != nil {
		return errs.Mark(err, ErrAlreadyDecided)
	}

	// Conditional update keeps the decision single-shot even under
	// concurrent deciders; zero rows means someone else got there first.
	affected, err := c.repo.UpdateStatusIfWaiting(ctx, bookingID, entity.Status(), now)
	if err != nil {
		return errs.Wrap(err, "failed to update booking status")
	}
	if affected == 0 {
		return ErrAlreadyDecided
	}
	return nil
}
