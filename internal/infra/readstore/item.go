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
	"github.com/jackc/pgx/v5/pgxpool"
)

type ItemReadStore struct {
	pool *pgxpool.Pool
}

func NewItemReadStore(pool *pgxpool.Pool) *ItemReadStore {
	return &ItemReadStore{pool: pool}
}

var _ queries.ItemReadStore = (*ItemReadStore)(nil)

var itemColumns = []string{"id", "owner_id", "name", "description", "available", "created_at"}

func (r *ItemReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ItemView, error) {
	query, args, err := psql.Select(itemColumns...).
		From("items").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build item query", err)
	}

	var view queries.ItemView
	if err := r.pool.QueryRow(ctx, query, args...).
		Scan(&view.ID, &view.OwnerID, &view.Name, &view.Description, &view.Available, &view.CreatedAt); err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("item not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find item by ID", err)
	}
	return &view, nil
}

func (r *ItemReadStore) FindByOwner(ctx context.Context, ownerID uuid.UUID, page queries.Page) ([]*queries.ItemView, error) {
	builder := psql.Select(itemColumns...).
		From("items").
		Where(squirrel.Eq{"owner_id": ownerID}).
		OrderBy("created_at ASC", "id ASC")
	return r.listItems(ctx, builder, page)
}

func (r *ItemReadStore) SearchAvailable(ctx context.Context, text string, page queries.Page) ([]*queries.ItemView, error) {
	pattern := "%" + text + "%"
	builder := psql.Select(itemColumns...).
		From("items").
		Where(squirrel.Eq{"available": true}).
		Where(squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"description": pattern},
		}).
		OrderBy("created_at ASC", "id ASC")
	return r.listItems(ctx, builder, page)
}

func (r *ItemReadStore) listItems(ctx context.Context, builder squirrel.SelectBuilder, page queries.Page) ([]*queries.ItemView, error) {
	query, args, err := builder.
		Limit(uint64(page.Limit())).
		Offset(uint64(page.Offset())).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build items query", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list items", err)
	}
	defer rows.Close()

	views := []*queries.ItemView{}
	for rows.Next() {
		var view queries.ItemView
		if err := rows.Scan(&view.ID, &view.OwnerID, &view.Name, &view.Description, &view.Available, &view.CreatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan item row", err)
		}
		views = append(views, &view)
	}
	return views, rows.Err()
}

func (r *ItemReadStore) LastApprovedBooking(ctx context.Context, itemID uuid.UUID, at time.Time) (*queries.BookingRef, error) {
	return r.scanBookingRef(ctx, lastApprovedQuery(itemID, at))
}

func (r *ItemReadStore) NextApprovedBooking(ctx context.Context, itemID uuid.UUID, at time.Time) (*queries.BookingRef, error) {
	return r.scanBookingRef(ctx, nextApprovedQuery(itemID, at))
}

// lastApprovedQuery picks the approved booking already begun at the instant;
// a booking starting exactly then counts as begun.
func lastApprovedQuery(itemID uuid.UUID, at time.Time) squirrel.SelectBuilder {
	return approvedBookingRef(itemID).
		Where(squirrel.LtOrEq{"start_time": at}).
		OrderBy("start_time DESC").
		Limit(1)
}

// nextApprovedQuery picks the approved booking starting strictly after it.
func nextApprovedQuery(itemID uuid.UUID, at time.Time) squirrel.SelectBuilder {
	return approvedBookingRef(itemID).
		Where(squirrel.Gt{"start_time": at}).
		OrderBy("start_time ASC").
		Limit(1)
}

func approvedBookingRef(itemID uuid.UUID) squirrel.SelectBuilder {
	return psql.Select("id", "booker_id", "start_time", "end_time").
		From("bookings").
		Where(squirrel.Eq{"item_id": itemID}).
		Where(squirrel.Eq{"status": booking.StatusApproved.String()})
}

func (r *ItemReadStore) scanBookingRef(ctx context.Context, builder squirrel.SelectBuilder) (*queries.BookingRef, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build booking ref query", err)
	}

	var ref queries.BookingRef
	if err := r.pool.QueryRow(ctx, query, args...).
		Scan(&ref.ID, &ref.BookerID, &ref.Start, &ref.End); err != nil {
		if pgconv.IsNoRows(err) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to find booking ref", err)
	}
	return &ref, nil
}

func (r *ItemReadStore) CommentsForItem(ctx context.Context, itemID uuid.UUID) ([]queries.CommentView, error) {
	query, args, err := psql.Select("c.id", "c.text", "u.name", "c.created_at").
		From("comments c").
		Join("users u ON c.author_id = u.id").
		Where(squirrel.Eq{"c.item_id": itemID}).
		OrderBy("c.created_at DESC", "c.id DESC").
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build comments query", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list comments", err)
	}
	defer rows.Close()

	views := []queries.CommentView{}
	for rows.Next() {
		var view queries.CommentView
		if err := rows.Scan(&view.ID, &view.Text, &view.AuthorName, &view.CreatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan comment row", err)
		}
		views = append(views, view)
	}
	return views, rows.Err()
}
