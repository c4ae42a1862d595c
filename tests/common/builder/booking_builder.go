//go:build unit

package builder

import (
	"time"

	"lendit/internal/domain/booking"
	"lendit/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	ID       uuid.UUID
	ItemID   uuid.UUID
	ItemName string
	OwnerID  uuid.UUID
	BookerID uuid.UUID
	Start    time.Time
	End      time.Time
	Status   booking.Status
}

func NewBookingBuilder() *BookingBuilder {
	now := time.Now()
	return &BookingBuilder{
		ID:       uuid.New(),
		ItemID:   uuid.New(),
		ItemName: "Cordless Drill",
		OwnerID:  uuid.New(),
		BookerID: uuid.New(),
		Start:    now.Add(24 * time.Hour),
		End:      now.Add(48 * time.Hour),
		Status:   booking.StatusWaiting,
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) WithID(id uuid.UUID) *BookingBuilder {
	b.ID = id
	return b
}

func (b *BookingBuilder) WithItem(itemID uuid.UUID) *BookingBuilder {
	b.ItemID = itemID
	return b
}

func (b *BookingBuilder) WithOwner(ownerID uuid.UUID) *BookingBuilder {
	b.OwnerID = ownerID
	return b
}

func (b *BookingBuilder) WithBooker(bookerID uuid.UUID) *BookingBuilder {
	b.BookerID = bookerID
	return b
}

func (b *BookingBuilder) WithPeriod(start, end time.Time) *BookingBuilder {
	b.Start = start
	b.End = end
	return b
}

func (b *BookingBuilder) WithStatus(status booking.Status) *BookingBuilder {
	b.Status = status
	return b
}

func (b *BookingBuilder) BuildDomain() (*booking.Booking, error) {
	period := booking.ReconstructPeriod(b.Start, b.End)
	return booking.ReconstructBooking(
		b.ID, b.ItemID, b.BookerID, period, b.Status, nil, time.Now(), time.Now(),
	)
}

func (b *BookingBuilder) BuildView() *queries.BookingView {
	return &queries.BookingView{
		ID:     b.ID,
		Start:  b.Start,
		End:    b.End,
		Status: b.Status.String(),
		Item: queries.BookingItemView{
			ID:      b.ItemID,
			Name:    b.ItemName,
			OwnerID: b.OwnerID,
		},
		Booker: queries.BookingUserView{
			ID:   b.BookerID,
			Name: "Test Booker",
		},
		CreatedAt: time.Now(),
	}
}
