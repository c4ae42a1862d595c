package commands

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Write-side snapshots prevent dependency on read-side query types.
type UserSnapshot struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type ItemSnapshot struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Name        string
	Description string
	Available   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type BookingSnapshot struct {
	ID          uuid.UUID
	ItemID      uuid.UUID
	BookerID    uuid.UUID
	ItemOwnerID uuid.UUID
	Start       time.Time
	End         time.Time
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CommandReads covers the lookups command handlers need before writing.
type CommandReads interface {
	UserExists(ctx context.Context, id uuid.UUID) (bool, error)
	UserByID(ctx context.Context, id uuid.UUID) (*UserSnapshot, error)
	ItemByID(ctx context.Context, id uuid.UUID) (*ItemSnapshot, error)
	BookingByID(ctx context.Context, id uuid.UUID) (*BookingSnapshot, error)
	// HasFinishedBooking reports whether the user has an approved booking on
	// the item that ended strictly before the instant.
	HasFinishedBooking(ctx context.Context, itemID, userID uuid.UUID, now time.Time) (bool, error)
}
