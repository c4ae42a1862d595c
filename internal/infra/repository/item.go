package repository

import (
	"context"

	"lendit/internal/domain/item"
	"lendit/internal/infra"
	"lendit/internal/usecase/commands"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ItemRepository struct {
	pool *pgxpool.Pool
}

func NewItemRepository(pool *pgxpool.Pool) *ItemRepository {
	return &ItemRepository{pool: pool}
}

var _ commands.ItemRepository = (*ItemRepository)(nil)

func (r *ItemRepository) Create(ctx context.Context, i *item.Item) error {
	query, args, err := psql.Insert("items").
		Columns("id", "owner_id", "name", "description", "available").
		Values(i.ID(), i.OwnerID(), i.Name(), i.Description(), i.Available()).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build item insert", err)
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return infra.WrapRepoErr("failed to insert item", err)
	}
	return nil
}

func (r *ItemRepository) Update(ctx context.Context, i *item.Item) error {
	query, args, err := psql.Update("items").
		Set("name", i.Name()).
		Set("description", i.Description()).
		Set("available", i.Available()).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": i.ID()}).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build item update", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return infra.WrapRepoErr("failed to update item", err)
	}
	if ct.RowsAffected() == 0 {
		return infra.WrapRepoErr("item not found", nil, infra.KindNotFound)
	}
	return nil
}
