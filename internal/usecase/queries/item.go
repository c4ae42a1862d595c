package queries

import (
	"context"
	"strings"
	"time"

	"lendit/internal/infra"
	"lendit/internal/pkg/clock"
	"lendit/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrItemNotFound = errs.New("item not found")

type ItemReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ItemView, error)
	FindByOwner(ctx context.Context, ownerID uuid.UUID, page Page) ([]*ItemView, error)
	SearchAvailable(ctx context.Context, text string, page Page) ([]*ItemView, error)
	// LastApprovedBooking returns the approved booking with the greatest
	// start at or before the instant; nil when none exists.
	LastApprovedBooking(ctx context.Context, itemID uuid.UUID, at time.Time) (*BookingRef, error)
	// NextApprovedBooking returns the approved booking with the smallest
	// start strictly after the instant; nil when none exists.
	NextApprovedBooking(ctx context.Context, itemID uuid.UUID, at time.Time) (*BookingRef, error)
	CommentsForItem(ctx context.Context, itemID uuid.UUID) ([]CommentView, error)
}

type ItemQueries interface {
	// GetByID returns the item with its comments; the last/next booking
	// projection is filled in only for the owner.
	GetByID(ctx context.Context, id, viewerID uuid.UUID) (*ItemView, error)
	// ListByOwner returns the owner's items, each with the owner projection.
	ListByOwner(ctx context.Context, ownerID uuid.UUID, from, size int) ([]*ItemView, error)
	// Search returns available items matching the text; blank text yields an
	// empty result without touching the store.
	Search(ctx context.Context, text string, from, size int) ([]*ItemView, error)
}

type itemQueriesImpl struct {
	store ItemReadStore
	clock clock.Clock
}

func NewItemQueries(store ItemReadStore, clk clock.Clock) ItemQueries {
	return &itemQueriesImpl{store: store, clock: clk}
}

func (q *itemQueriesImpl) GetByID(ctx context.Context, id, viewerID uuid.UUID) (*ItemView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, errs.Wrap(err, "failed to find item")
	}
	now := q.clock.Now()
	if err := q.decorate(ctx, view, viewerID, now); err != nil {
		return nil, err
	}
	return view, nil
}

func (q *itemQueriesImpl) ListByOwner(ctx context.Context, ownerID uuid.UUID, from, size int) ([]*ItemView, error) {
	page, err := NewPage(from, size)
	if err != nil {
		return nil, err
	}
	views, err := q.store.FindByOwner(ctx, ownerID, page)
	if err != nil {
		return nil, errs.Wrap(err, "failed to list items")
	}
	now := q.clock.Now()
	for _, view := range views {
		if err := q.decorate(ctx, view, ownerID, now); err != nil {
			return nil, err
		}
	}
	return views, nil
}

func (q *itemQueriesImpl) Search(ctx context.Context, text string, from, size int) ([]*ItemView, error) {
	if strings.TrimSpace(text) == "" {
		return []*ItemView{}, nil
	}
	page, err := NewPage(from, size)
	if err != nil {
		return nil, err
	}
	return q.store.SearchAvailable(ctx, text, page)
}

// decorate attaches comments and, for the owner only, the last/next approved
// booking projection. The same instant is reused for both bounds so the pair
// is consistent.
func (q *itemQueriesImpl) decorate(ctx context.Context, view *ItemView, viewerID uuid.UUID, now time.Time) error {
	comments, err := q.store.CommentsForItem(ctx, view.ID)
	if err != nil {
		return errs.Wrap(err, "failed to load comments")
	}
	view.Comments = comments

	if view.OwnerID != viewerID {
		return nil
	}
	last, err := q.store.LastApprovedBooking(ctx, view.ID, now)
	if err != nil {
		return errs.Wrap(err, "failed to load last booking")
	}
	next, err := q.store.NextApprovedBooking(ctx, view.ID, now)
	if err != nil {
		return errs.Wrap(err, "failed to load next booking")
	}
	view.LastBooking = last
	view.NextBooking = next
	return nil
}
