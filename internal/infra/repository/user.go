package repository

import (
	"context"

	"lendit/internal/domain/user"
	"lendit/internal/infra"
	"lendit/internal/usecase/commands"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

var _ commands.UserRepository = (*UserRepository)(nil)

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	query, args, err := psql.Insert("users").
		Columns("id", "name", "email", "password_hash").
		Values(u.ID(), u.Name(), u.Email().Value(), u.PasswordHash()).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build user insert", err)
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return infra.WrapRepoErr("failed to insert user", err)
	}
	return nil
}

func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	query, args, err := psql.Update("users").
		Set("name", u.Name()).
		Set("email", u.Email().Value()).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": u.ID()}).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build user update", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return infra.WrapRepoErr("failed to update user", err)
	}
	if ct.RowsAffected() == 0 {
		return infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	query, args, err := psql.Delete("users").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return 0, infra.WrapRepoErr("failed to build user delete", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to delete user", err)
	}
	return ct.RowsAffected(), nil
}
