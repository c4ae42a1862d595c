package response

import (
	"time"

	"lendit/internal/usecase/queries"

	"github.com/google/uuid"
)

type ItemResponse struct {
	ID          uuid.UUID           `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Available   bool                `json:"available"`
	LastBooking *BookingRefResponse `json:"lastBooking,omitempty"`
	NextBooking *BookingRefResponse `json:"nextBooking,omitempty"`
	Comments    []CommentResponse   `json:"comments"`
	CreatedAt   time.Time           `json:"createdAt"`
}

type BookingRefResponse struct {
	ID       uuid.UUID `json:"id"`
	BookerID uuid.UUID `json:"bookerId"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
}

type CommentResponse struct {
	ID         uuid.UUID `json:"id"`
	Text       string    `json:"text"`
	AuthorName string    `json:"authorName"`
	CreatedAt  time.Time `json:"createdAt"`
}

func FromItemView(view *queries.ItemView) *ItemResponse {
	return &ItemResponse{
		ID:          view.ID,
		Name:        view.Name,
		Description: view.Description,
		Available:   view.Available,
		LastBooking: fromBookingRef(view.LastBooking),
		NextBooking: fromBookingRef(view.NextBooking),
		Comments:    FromCommentList(view.Comments),
		CreatedAt:   view.CreatedAt,
	}
}

func FromItemList(views []*queries.ItemView) []*ItemResponse {
	out := make([]*ItemResponse, len(views))
	for i, view := range views {
		out[i] = FromItemView(view)
	}
	return out
}

func fromBookingRef(ref *queries.BookingRef) *BookingRefResponse {
	if ref == nil {
		return nil
	}
	return &BookingRefResponse{
		ID:       ref.ID,
		BookerID: ref.BookerID,
		Start:    ref.Start,
		End:      ref.End,
	}
}

func FromCommentView(view *queries.CommentView) *CommentResponse {
	return &CommentResponse{
		ID:         view.ID,
		Text:       view.Text,
		AuthorName: view.AuthorName,
		CreatedAt:  view.CreatedAt,
	}
}

func FromCommentList(views []queries.CommentView) []CommentResponse {
	out := make([]CommentResponse, len(views))
	for i := range views {
		out[i] = *FromCommentView(&views[i])
	}
	return out
}
