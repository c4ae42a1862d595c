package item

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	MaxNameLength        = 255
	MaxDescriptionLength = 2000
)

var (
	ErrEmptyName          = errors.New("item name is empty")
	ErrNameTooLong        = errors.New("item name is too long")
	ErrEmptyDescription   = errors.New("item description is empty")
	ErrDescriptionTooLong = errors.New("item description is too long")
)

// Item is a physical thing an owner offers for booking. The availability
// flag is read by the booking gate and only ever written by the owner.
type Item struct {
	id          uuid.UUID
	ownerID     uuid.UUID
	name        string
	description string
	available   bool
	createdAt   time.Time
	updatedAt   time.Time
}

func NewItem(ownerID uuid.UUID, name, description string, available bool) (*Item, error) {
	name = strings.TrimSpace(name)
	description = strings.TrimSpace(description)
	if err := validateName(name); err != nil {
		return nil, err
	}
	if err := validateDescription(description); err != nil {
		return nil, err
	}
	return &Item{
		id:          uuid.New(),
		ownerID:     ownerID,
		name:        name,
		description: description,
		available:   available,
	}, nil
}

func ReconstructItem(id, ownerID uuid.UUID, name, description string, available bool, createdAt, updatedAt time.Time) *Item {
	return &Item{
		id:          id,
		ownerID:     ownerID,
		name:        name,
		description: description,
		available:   available,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (i *Item) IsOwnedBy(userID uuid.UUID) bool {
	return i.ownerID == userID
}

// Patch applies a partial update. Nil fields are left untouched.
func (i *Item) Patch(name, description *string, available *bool) error {
	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if err := validateName(trimmed); err != nil {
			return err
		}
		i.name = trimmed
	}
	if description != nil {
		trimmed := strings.TrimSpace(*description)
		if err := validateDescription(trimmed); err != nil {
			return err
		}
		i.description = trimmed
	}
	if available != nil {
		i.available = *available
	}
	return nil
}

func validateName(name string) error {
	if name == "" {
		return ErrEmptyName
	}
	if len(name) > MaxNameLength {
		return ErrNameTooLong
	}
	return nil
}

func validateDescription(description string) error {
	if description == "" {
		return ErrEmptyDescription
	}
	if len(description) > MaxDescriptionLength {
		return ErrDescriptionTooLong
	}
	return nil
}

func (i *Item) ID() uuid.UUID        { return i.id }
func (i *Item) OwnerID() uuid.UUID   { return i.ownerID }
func (i *Item) Name() string         { return i.name }
func (i *Item) Description() string  { return i.description }
func (i *Item) Available() bool      { return i.available }
func (i *Item) CreatedAt() time.Time { return i.createdAt }
func (i *Item) UpdatedAt() time.Time { return i.updatedAt }
