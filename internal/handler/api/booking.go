package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"lendit/internal/domain/booking"
	reqdto "lendit/internal/handler/dto/request"
	resdto "lendit/internal/handler/dto/response"
	"lendit/internal/handler/middleware"
	"lendit/internal/usecase/commands"
	"lendit/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	cmds commands.BookingCommands
	q    queries.BookingQueries
}

func NewBookingHandler(cmds commands.BookingCommands, q queries.BookingQueries) *BookingHandler {
	return &BookingHandler{cmds: cmds, q: q}
}

func (h *BookingHandler) Create(c *gin.Context) {
	bookerID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	var req reqdto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}
	itemID, err := uuid.Parse(req.ItemID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid item ID format",
		})
		return
	}

	id, err := h.cmds.Propose(c.Request.Context(), itemID, bookerID, req.Start, req.End)
	if err != nil {
		h.abortProposeError(c, err)
		return
	}

	view, err := h.q.GetByID(c.Request.Context(), id, bookerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	c.JSON(http.StatusCreated, resdto.FromBookingView(view))
}

// Decide handles PATCH /bookings/:id?approved=true|false by the item owner.
func (h *BookingHandler) Decide(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid booking ID format",
		})
		return
	}
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}
	approved, err := strconv.ParseBool(c.Query("approved"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Query parameter 'approved' must be true or false",
		})
		return
	}

	if err := h.cmds.Decide(c.Request.Context(), id, actorID, approved); err != nil {
		switch {
		case errors.Is(err, commands.ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Booking not found",
			})
		case errors.Is(err, commands.ErrNotItemOwner):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Only the item owner can decide the booking",
			})
		case errors.Is(err, commands.ErrAlreadyDecided):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Booking has already been decided",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	view, err := h.q.GetByID(c.Request.Context(), id, actorID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

func (h *BookingHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid booking ID format",
		})
		return
	}
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	view, err := h.q.GetByID(c.Request.Context(), id, actorID)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Booking not found",
			})
		case errors.Is(err, queries.ErrNotParticipant):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Only the booker or the item owner can view the booking",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// ListOwn returns the authenticated user's bookings filtered by state.
func (h *BookingHandler) ListOwn(c *gin.Context) {
	h.list(c, h.q.ListByBooker)
}

// ListOwner returns bookings on the authenticated user's items.
func (h *BookingHandler) ListOwner(c *gin.Context) {
	h.list(c, h.q.ListByOwner)
}

type listFunc func(ctx context.Context, actorID uuid.UUID, state string, from, size int) ([]*queries.BookingView, error)

func (h *BookingHandler) list(c *gin.Context, fn listFunc) {
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}
	from, size, err := pageParams(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid pagination parameters",
		})
		return
	}

	views, err := fn(c.Request.Context(), actorID, c.Query("state"), from, size)
	if err != nil {
		switch {
		case errors.Is(err, booking.ErrUnknownState):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Unknown state: " + c.Query("state"),
			})
		case errors.Is(err, queries.ErrInvalidPage):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid pagination parameters",
			})
		case errors.Is(err, queries.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "User not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingList(views))
}

func (h *BookingHandler) abortProposeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "User not found",
		})
	case errors.Is(err, commands.ErrItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Item not found",
		})
	case errors.Is(err, commands.ErrOwnItemBooking):
		c.JSON(http.StatusForbidden, gin.H{
			"error": "Owner cannot book own item",
		})
	case errors.Is(err, commands.ErrItemUnavailable):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Item is not available for booking",
		})
	case errors.Is(err, commands.ErrInvalidPeriod):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid booking period",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
