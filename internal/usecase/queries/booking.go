package queries

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
	ErrBookingNotFound = errs.New("booking not found")
	ErrNotParticipant  = errs.New("only the booker or the item owner may view the booking")
)

// BookingReadStore retrieves bookings. For the list methods the store applies
// the state's predicate against the supplied instant and orders the result by
// start descending (id descending as stable tiebreaker).
type BookingReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	FindByBooker(ctx context.Context, bookerID uuid.UUID, state booking.State, now time.Time, page Page) ([]*BookingView, error)
	FindByOwner(ctx context.Context, ownerID uuid.UUID, state booking.State, now time.Time, page Page) ([]*BookingView, error)
}

type BookingQueries interface {
	// GetByID returns the booking to its participants (booker or item
	// owner), any status.
	GetByID(ctx context.Context, id, actorID uuid.UUID) (*BookingView, error)
	// ListByBooker returns the actor's own bookings filtered by state.
	ListByBooker(ctx context.Context, bookerID uuid.UUID, stateRaw string, from, size int) ([]*BookingView, error)
	// ListByOwner returns bookings on items the actor owns, filtered by state.
	ListByOwner(ctx context.Context, ownerID uuid.UUID, stateRaw string, from, size int) ([]*BookingView, error)
}

type bookingQueriesImpl struct {
	store BookingReadStore
	users UserReadStore
	clock clock.Clock
}

func NewBookingQueries(store BookingReadStore, users UserReadStore, clk clock.Clock) BookingQueries {
	return &bookingQueriesImpl{store: store, users: users, clock: clk}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, id, actorID uuid.UUID) (*BookingView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, errs.Wrap(err, "failed to find booking")
	}
	if actorID != view.Booker.ID && actorID != view.Item.OwnerID {
		return nil, ErrNotParticipant
	}
	return view, nil
}

func (q *bookingQueriesImpl) ListByBooker(ctx context.Context, bookerID uuid.UUID, stateRaw string, from, size int) ([]*BookingView, error) {
	state, page, now, err := q.prepareList(ctx, bookerID, stateRaw, from, size)
	if err != nil {
		return nil, err
	}
	return q.store.FindByBooker(ctx, bookerID, state, now, page)
}

func (q *bookingQueriesImpl) ListByOwner(ctx context.Context, ownerID uuid.UUID, stateRaw string, from, size int) ([]*BookingView, error) {
	state, page, now, err := q.prepareList(ctx, ownerID, stateRaw, from, size)
	if err != nil {
		return nil, err
	}
	return q.store.FindByOwner(ctx, ownerID, state, now, page)
}

// prepareList validates the common listing inputs and samples the clock once
// so the whole listing sees a single consistent "now".
func (q *bookingQueriesImpl) prepareList(ctx context.Context, actorID uuid.UUID, stateRaw string, from, size int) (booking.State, Page, time.Time, error) {
	state, err := booking.ParseState(stateRaw)
	if err != nil {
		return "", Page{}, time.Time{}, err
	}
	page, err := NewPage(from, size)
	if err != nil {
		return "", Page{}, time.Time{}, err
	}
	exists, err := q.users.Exists(ctx, actorID)
	if err != nil {
		return "", Page{}, time.Time{}, errs.Wrap(err, "failed to check user existence")
	}
	if !exists {
		return "", Page{}, time.Time{}, ErrUserNotFound
	}
	return state, page, q.clock.Now(), nil
}
