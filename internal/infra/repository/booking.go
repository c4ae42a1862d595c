package repository

import (
	"context"
	"time"

	"lendit/internal/domain/booking"
	"lendit/internal/infra"
	"lendit/internal/pkg/pgconv"
	"lendit/internal/usecase/commands"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingRepository struct {
	pool *pgxpool.Pool
}

func NewBookingRepository(pool *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{pool: pool}
}

var _ commands.BookingRepository = (*BookingRepository)(nil)

func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) error {
	query, args, err := psql.Insert("bookings").
		Columns("id", "item_id", "booker_id", "start_time", "end_time", "status").
		Values(b.ID(), b.ItemID(), b.BookerID(), b.Period().Start(), b.Period().End(), b.Status().String()).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build booking insert", err)
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return infra.WrapRepoErr("failed to insert booking", err)
	}
	return nil
}

// UpdateStatusIfWaiting is the single place a booking leaves WAITING. The
// status predicate makes the decision atomic; losers of a race see zero rows.
func (r *BookingRepository) UpdateStatusIfWaiting(ctx context.Context, id uuid.UUID, status booking.Status, decidedAt time.Time) (int64, error) {
	query, args, err := psql.Update("bookings").
		Set("status", status.String()).
		Set("decided_at", pgconv.TimeToPgtype(decidedAt)).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": booking.StatusWaiting.String()}).
		ToSql()
	if err != nil {
		return 0, infra.WrapRepoErr("failed to build booking status update", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to update booking status", err)
	}
	return ct.RowsAffected(), nil
}
