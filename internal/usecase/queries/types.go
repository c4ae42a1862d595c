package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)

type BookingView struct {
	ID        uuid.UUID       `json:"id"`
	Start     time.Time       `json:"start"`
	End       time.Time       `json:"end"`
	Status    string          `json:"status"`
	DecidedAt *time.Time      `json:"decided_at,omitempty"`
	Item      BookingItemView `json:"item"`
	Booker    BookingUserView `json:"booker"`
	CreatedAt time.Time       `json:"created_at"`
}

type BookingItemView struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	// OwnerID is carried for authorization checks, never rendered.
	OwnerID uuid.UUID `json:"-"`
}

type BookingUserView struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// BookingRef is the owner-only last/next projection on an item view.
type BookingRef struct {
	ID       uuid.UUID `json:"id"`
	BookerID uuid.UUID `json:"booker_id"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
}

type CommentView struct {
	ID         uuid.UUID `json:"id"`
	Text       string    `json:"text"`
	AuthorName string    `json:"author_name"`
	CreatedAt  time.Time `json:"created_at"`
}

type ItemView struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"-"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Available   bool      `json:"available"`
	// LastBooking and NextBooking are populated only when the viewer owns
	// the item; other viewers must never see who booked it or when.
	LastBooking *BookingRef   `json:"last_booking,omitempty"`
	NextBooking *BookingRef   `json:"next_booking,omitempty"`
	Comments    []CommentView `json:"comments"`
	CreatedAt   time.Time     `json:"created_at"`
}

type UserView struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}
