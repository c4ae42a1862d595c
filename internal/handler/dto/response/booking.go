package response

import (
	"time"

	"lendit/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingResponse struct {
	ID        uuid.UUID         `json:"id"`
	Start     time.Time         `json:"start"`
	End       time.Time         `json:"end"`
	Status    string            `json:"status"`
	DecidedAt *time.Time        `json:"decidedAt,omitempty"`
	Item      BookingItemPart   `json:"item"`
	Booker    BookingBookerPart `json:"booker"`
	CreatedAt time.Time         `json:"createdAt"`
}

type BookingItemPart struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type BookingBookerPart struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

func FromBookingView(view *queries.BookingView) *BookingResponse {
	return &BookingResponse{
		ID:        view.ID,
		Start:     view.Start,
		End:       view.End,
		Status:    view.Status,
		DecidedAt: view.DecidedAt,
		Item:      BookingItemPart{ID: view.Item.ID, Name: view.Item.Name},
		Booker:    BookingBookerPart{ID: view.Booker.ID, Name: view.Booker.Name},
		CreatedAt: view.CreatedAt,
	}
}

func FromBookingList(views []*queries.BookingView) []*BookingResponse {
	out := make([]*BookingResponse, len(views))
	for i, view := range views {
		out[i] = FromBookingView(view)
	}
	return out
}
