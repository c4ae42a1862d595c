package readstore

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

// CommandReadStore serves the write side's pre-write lookups. It returns
// plain snapshots so command handlers stay decoupled from the query views.
type CommandReadStore struct {
	pool *pgxpool.Pool
}

func NewCommandReadStore(pool *pgxpool.Pool) *CommandReadStore {
	return &CommandReadStore{pool: pool}
}

var _ commands.CommandReads = (*CommandReadStore)(nil)

func (r *CommandReadStore) UserExists(ctx context.Context, id uuid.UUID) (bool, error) {
	sub, args, err := psql.Select("1").From("users").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return false, infra.WrapRepoErr("failed to build user existence query", err)
	}

	var exists bool
	if err := r.pool.QueryRow(ctx, "SELECT EXISTS ("+sub+")", args...).Scan(&exists); err != nil {
		return false, infra.WrapRepoErr("failed to check user existence", err)
	}
	return exists, nil
}

func (r *CommandReadStore) UserByID(ctx context.Context, id uuid.UUID) (*commands.UserSnapshot, error) {
	query, args, err := psql.Select("id", "name", "email", "password_hash", "created_at", "updated_at").
		From("users").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build user query", err)
	}

	var snap commands.UserSnapshot
	if err := r.pool.QueryRow(ctx, query, args...).
		Scan(&snap.ID, &snap.Name, &snap.Email, &snap.PasswordHash, &snap.CreatedAt, &snap.UpdatedAt); err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by ID", err)
	}
	return &snap, nil
}

func (r *CommandReadStore) ItemByID(ctx context.Context, id uuid.UUID) (*commands.ItemSnapshot, error) {
	query, args, err := psql.Select("id", "owner_id", "name", "description", "available", "created_at", "updated_at").
		From("items").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build item query", err)
	}

	var snap commands.ItemSnapshot
	if err := r.pool.QueryRow(ctx, query, args...).
		Scan(&snap.ID, &snap.OwnerID, &snap.Name, &snap.Description, &snap.Available, &snap.CreatedAt, &snap.UpdatedAt); err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("item not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find item by ID", err)
	}
	return &snap, nil
}

func (r *CommandReadStore) BookingByID(ctx context.Context, id uuid.UUID) (*commands.BookingSnapshot, error) {
	query, args, err := psql.Select(
		"b.id", "b.item_id", "b.booker_id", "i.owner_id",
		"b.start_time", "b.end_time", "b.status", "b.created_at", "b.updated_at",
	).
		From("bookings b").
		Join("items i ON b.item_id = i.id").
		Where(squirrel.Eq{"b.id": id}).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build booking query", err)
	}

	var snap commands.BookingSnapshot
	if err := r.pool.QueryRow(ctx, query, args...).
		Scan(
			&snap.ID, &snap.ItemID, &snap.BookerID, &snap.ItemOwnerID,
			&snap.Start, &snap.End, &snap.Status, &snap.CreatedAt, &snap.UpdatedAt,
		); err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}
	return &snap, nil
}

func (r *CommandReadStore) HasFinishedBooking(ctx context.Context, itemID, userID uuid.UUID, now time.Time) (bool, error) {
	sub, args, err := psql.Select("1").
		From("bookings").
		Where(squirrel.Eq{"item_id": itemID}).
		Where(squirrel.Eq{"booker_id": userID}).
		Where(squirrel.Eq{"status": booking.StatusApproved.String()}).
		Where(squirrel.Lt{"end_time": now}).
		ToSql()
	if err != nil {
		return false, infra.WrapRepoErr("failed to build finished booking query", err)
	}

	var exists bool
	if err := r.pool.QueryRow(ctx, "SELECT EXISTS ("+sub+")", args...).Scan(&exists); err != nil {
		return false, infra.WrapRepoErr("failed to check finished booking", err)
	}
	return exists, nil
}
