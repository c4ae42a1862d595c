package readstore

import (
	"context"
	"time"

	"lendit/internal/domain/booking"
	"lendit/internal/infra"
	"lendit/internal/pkg/pgconv"
	"lendit/internal/usecase/queries"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingReadStore struct {
	pool *pgxpool.Pool
}

func NewBookingReadStore(pool *pgxpool.Pool) *BookingReadStore {
	return &BookingReadStore{pool: pool}
}

var _ queries.BookingReadStore = (*BookingReadStore)(nil)

var bookingColumns = []string{
	"b.id", "b.start_time", "b.end_time", "b.status", "b.decided_at",
	"i.id", "i.name", "i.owner_id",
	"u.id", "u.name",
	"b.created_at",
}

func bookingBase() squirrel.SelectBuilder {
	return psql.Select(bookingColumns...).
		From("bookings b").
		Join("items i ON b.item_id = i.id").
		Join("users u ON b.booker_id = u.id")
}

// stateCondition translates a listing state into its time or status
// predicate. CURRENT is strict on both bounds; an in-progress booking whose
// start or end equals the instant falls into neither PAST nor FUTURE.
func stateCondition(state booking.State, now time.Time) squirrel.Sqlizer {
	switch state {
	case booking.StateCurrent:
		return squirrel.And{
			squirrel.Lt{"b.start_time": now},
			squirrel.Gt{"b.end_time": now},
		}
	case booking.StatePast:
		return squirrel.Lt{"b.end_time": now}
	case booking.StateFuture:
		return squirrel.Gt{"b.start_time": now}
	case booking.StateWaiting:
		return squirrel.Eq{"b.status": booking.StatusWaiting.String()}
	case booking.StateRejected:
		return squirrel.Eq{"b.status": booking.StatusRejected.String()}
	default:
		return nil
	}
}

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	query, args, err := bookingBase().Where(squirrel.Eq{"b.id": id}).ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build booking query", err)
	}

	view, err := scanBooking(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}
	return view, nil
}

func (r *BookingReadStore) FindByBooker(ctx context.Context, bookerID uuid.UUID, state booking.State, now time.Time, page queries.Page) ([]*queries.BookingView, error) {
	return r.list(ctx, squirrel.Eq{"b.booker_id": bookerID}, state, now, page)
}

func (r *BookingReadStore) FindByOwner(ctx context.Context, ownerID uuid.UUID, state booking.State, now time.Time, page queries.Page) ([]*queries.BookingView, error) {
	return r.list(ctx, squirrel.Eq{"i.owner_id": ownerID}, state, now, page)
}

// buildBookingList assembles the listing query: scope, optional state
// predicate, newest bookings first with id as the stable tiebreaker.
func buildBookingList(scope squirrel.Sqlizer, state booking.State, now time.Time, page queries.Page) (string, []any, error) {
	builder := bookingBase().Where(scope)
	if cond := stateCondition(state, now); cond != nil {
		builder = builder.Where(cond)
	}
	return builder.
		OrderBy("b.start_time DESC", "b.id DESC").
		Limit(uint64(page.Limit())).
		Offset(uint64(page.Offset())).
		ToSql()
}

func (r *BookingReadStore) list(ctx context.Context, scope squirrel.Sqlizer, state booking.State, now time.Time, page queries.Page) ([]*queries.BookingView, error) {
	query, args, err := buildBookingList(scope, state, now, page)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build bookings query", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings", err)
	}
	defer rows.Close()

	views := []*queries.BookingView{}
	for rows.Next() {
		view, err := scanBooking(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking row", err)
		}
		views = append(views, view)
	}
	return views, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row rowScanner) (*queries.BookingView, error) {
	var (
		view      queries.BookingView
		decidedAt pgtype.Timestamptz
	)
	if err := row.Scan(
		&view.ID, &view.Start, &view.End, &view.Status, &decidedAt,
		&view.Item.ID, &view.Item.Name, &view.Item.OwnerID,
		&view.Booker.ID, &view.Booker.Name,
		&view.CreatedAt,
	); err != nil {
		return nil, err
	}
	view.DecidedAt = pgconv.TimePtrFromPgtype(decidedAt)
	return &view, nil
}
