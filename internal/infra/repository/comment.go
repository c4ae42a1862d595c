package repository

import (
	"context"

	"lendit/internal/domain/item"
	"lendit/internal/infra"
	"lendit/internal/usecase/commands"

	"github.com/jackc/pgx/v5/pgxpool"
)

type CommentRepository struct {
	pool *pgxpool.Pool
}

func NewCommentRepository(pool *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{pool: pool}
}

var _ commands.CommentRepository = (*CommentRepository)(nil)

func (r *CommentRepository) Create(ctx context.Context, c *item.Comment) error {
	query, args, err := psql.Insert("comments").
		Columns("id", "item_id", "author_id", "text", "created_at").
		Values(c.ID(), c.ItemID(), c.AuthorID(), c.Text(), c.CreatedAt()).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build comment insert", err)
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return infra.WrapRepoErr("failed to insert comment", err)
	}
	return nil
}
