package readstore

import (
	"context"

	"lendit/internal/infra"
	"lendit/internal/pkg/pgconv"
	"lendit/internal/usecase/queries"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserReadStore struct {
	pool *pgxpool.Pool
}

func NewUserReadStore(pool *pgxpool.Pool) *UserReadStore {
	return &UserReadStore{pool: pool}
}

var _ queries.UserReadStore = (*UserReadStore)(nil)

func (r *UserReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.UserView, error) {
	query, args, err := psql.Select("id", "name", "email", "created_at").
		From("users").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build user query", err)
	}

	var view queries.UserView
	if err := r.pool.QueryRow(ctx, query, args...).
		Scan(&view.ID, &view.Name, &view.Email, &view.CreatedAt); err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by ID", err)
	}
	return &view, nil
}

func (r *UserReadStore) FindAll(ctx context.Context, page queries.Page) ([]*queries.UserView, error) {
	query, args, err := psql.Select("id", "name", "email", "created_at").
		From("users").
		OrderBy("created_at ASC", "id ASC").
		Limit(uint64(page.Limit())).
		Offset(uint64(page.Offset())).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build users query", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list users", err)
	}
	defer rows.Close()

	views := []*queries.UserView{}
	for rows.Next() {
		var view queries.UserView
		if err := rows.Scan(&view.ID, &view.Name, &view.Email, &view.CreatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan user row", err)
		}
		views = append(views, &view)
	}
	return views, rows.Err()
}

func (r *UserReadStore) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	sub, args, err := psql.Select("1").
		From("users").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return false, infra.WrapRepoErr("failed to build user existence query", err)
	}

	var exists bool
	if err := r.pool.QueryRow(ctx, "SELECT EXISTS ("+sub+")", args...).Scan(&exists); err != nil {
		return false, infra.WrapRepoErr("failed to check user existence", err)
	}
	return exists, nil
}

func (r *UserReadStore) FindAuthByEmail(ctx context.Context, email string) (*queries.UserView, string, error) {
	query, args, err := psql.Select("id", "name", "email", "password_hash", "created_at").
		From("users").
		Where(squirrel.Eq{"email": email}).
		ToSql()
	if err != nil {
		return nil, "", infra.WrapRepoErr("failed to build auth query", err)
	}

	var (
		view queries.UserView
		hash string
	)
	if err := r.pool.QueryRow(ctx, query, args...).
		Scan(&view.ID, &view.Name, &view.Email, &hash, &view.CreatedAt); err != nil {
		if pgconv.IsNoRows(err) {
			return nil, "", infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, "", infra.WrapRepoErr("failed to find user by email", err)
	}
	return &view, hash, nil
}
