package commands

import (
	"context"

	"lendit/internal/domain/item"
	"lendit/internal/infra"
	"lendit/internal/pkg/clock"
	"lendit/internal/pkg/errs"
	"lendit/internal/usecase/queries"

	"github.com/google/uuid"
)

var (
	ErrDomainValidation  = errs.New("domain validation error")
	ErrCommentNotAllowed = errs.New("commenting requires a finished approved booking")
)

type ItemRepository interface {
	Create(ctx context.Context, i *item.Item) error
	Update(ctx context.Context, i *item.Item) error
}

type CommentRepository interface {
	Create(ctx context.Context, c *item.Comment) error
}

type CreateItemRequest struct {
	Name        string
	Description string
	Available   bool
}

type UpdateItemRequest struct {
	Name        *string
	Description *string
	Available   *bool
}

type ItemCommands interface {
	Create(ctx context.Context, ownerID uuid.UUID, req CreateItemRequest) (uuid.UUID, error)
	// Update patches the item; only the owner may change it.
	Update(ctx context.Context, itemID, actorID uuid.UUID, req UpdateItemRequest) error
	// AddComment posts a comment by a user whose approved booking on the
	// item has already finished.
	AddComment(ctx context.Context, itemID, authorID uuid.UUID, text string) (*queries.CommentView, error)
}

type itemCommandsImpl struct {
	items    ItemRepository
	comments CommentRepository
	reads    CommandReads
	clock    clock.Clock
}

func NewItemCommands(items ItemRepository, comments CommentRepository, reads CommandReads, clk clock.Clock) ItemCommands {
	return &itemCommandsImpl{items: items, comments: comments, reads: reads, clock: clk}
}

func (c *itemCommandsImpl) Create(ctx context.Context, ownerID uuid.UUID, req CreateItemRequest) (uuid.UUID, error) {
	exists, err := c.reads.UserExists(ctx, ownerID)
	if err != nil {
		return uuid.Nil, errs.Wrap(err, "failed to check owner existence")
	}
	if !exists {
		return uuid.Nil, ErrUserNotFound
	}

	entity, err := item.NewItem(ownerID, req.Name, req.Description, req.Available)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrDomainValidation)
	}
	if err := c.items.Create(ctx, entity); err != nil {
		return uuid.Nil, errs.Wrap(err, "failed to create item")
	}
	return entity.ID(), nil
}

func (c *itemCommandsImpl) Update(ctx context.Context, itemID, actorID uuid.UUID, req UpdateItemRequest) error {
	snap, err := c.reads.ItemByID(ctx, itemID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return ErrItemNotFound
		}
		return errs.Wrap(err, "failed to find item")
	}
	if snap.OwnerID != actorID {
		return ErrNotItemOwner
	}

	entity := item.ReconstructItem(snap.ID, snap.OwnerID, snap.Name, snap.Description, snap.Available, snap.CreatedAt, snap.UpdatedAt)
	if err := entity.Patch(req.Name, req.Description, req.Available); err != nil {
		return errs.Mark(err, ErrDomainValidation)
	}
	return c.items.Update(ctx, entity)
}

func (c *itemCommandsImpl) AddComment(ctx context.Context, itemID, authorID uuid.UUID, text string) (*queries.CommentView, error) {
	author, err := c.reads.UserByID(ctx, authorID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, errs.Wrap(err, "failed to find author")
	}
	if _, err := c.reads.ItemByID(ctx, itemID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, errs.Wrap(err, "failed to find item")
	}

	now := c.clock.Now()
	allowed, err := c.reads.HasFinishedBooking(ctx, itemID, authorID, now)
	if err != nil {
		return nil, errs.Wrap(err, "failed to check comment eligibility")
	}
	if !allowed {
		return nil, ErrCommentNotAllowed
	}

	entity, err := item.NewComment(itemID, authorID, text, now)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}
	if err := c.comments.Create(ctx, entity); err != nil {
		return nil, errs.Wrap(err, "failed to create comment")
	}
	return &queries.CommentView{
		ID:         entity.ID(),
		Text:       entity.Text(),
		AuthorName: author.Name,
		CreatedAt:  entity.CreatedAt(),
	}, nil
}
