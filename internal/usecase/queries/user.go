package queries

import (
	"context"

	"lendit/internal/infra"
	"lendit/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrUserNotFound = errs.New("user not found")

type UserReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*UserView, error)
	FindAll(ctx context.Context, page Page) ([]*UserView, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	// FindAuthByEmail also returns the stored password hash; it never leaves
	// the auth path.
	FindAuthByEmail(ctx context.Context, email string) (*UserView, string, error)
}

type UserQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*UserView, error)
	List(ctx context.Context, from, size int) ([]*UserView, error)
}

type userQueriesImpl struct {
	store UserReadStore
}

func NewUserQueries(store UserReadStore) UserQueries {
	return &userQueriesImpl{store: store}
}

func (q *userQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*UserView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, errs.Wrap(err, "failed to find user")
	}
	return view, nil
}

func (q *userQueriesImpl) List(ctx context.Context, from, size int) ([]*UserView, error) {
	page, err := NewPage(from, size)
	if err != nil {
		return nil, err
	}
	return q.store.FindAll(ctx, page)
}
