//go:build unit

package builder

import (
	"time"

	"lendit/internal/domain/item"
	"lendit/internal/usecase/queries"

	"github.com/google/uuid"
)

type ItemBuilder struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Name        string
	Description string
	Available   bool
}

func NewItemBuilder() *ItemBuilder {
	return &ItemBuilder{
		ID:          uuid.New(),
		OwnerID:     uuid.New(),
		Name:        "Cordless Drill",
		Description: "18V cordless drill with two batteries",
		Available:   true,
	}
}

func (i *ItemBuilder) With(mutate func(*ItemBuilder)) *ItemBuilder {
	mutate(i)
	return i
}

func (i *ItemBuilder) WithID(id uuid.UUID) *ItemBuilder {
	i.ID = id
	return i
}

func (i *ItemBuilder) WithOwner(ownerID uuid.UUID) *ItemBuilder {
	i.OwnerID = ownerID
	return i
}

func (i *ItemBuilder) WithName(name string) *ItemBuilder {
	i.Name = name
	return i
}

func (i *ItemBuilder) Unavailable() *ItemBuilder {
	i.Available = false
	return i
}

func (i *ItemBuilder) BuildDomain() (*item.Item, error) {
	return item.NewItem(i.OwnerID, i.Name, i.Description, i.Available)
}

func (i *ItemBuilder) BuildView() *queries.ItemView {
	return &queries.ItemView{
		ID:          i.ID,
		OwnerID:     i.OwnerID,
		Name:        i.Name,
		Description: i.Description,
		Available:   i.Available,
		Comments:    []queries.CommentView{},
		CreatedAt:   time.Now(),
	}
}
