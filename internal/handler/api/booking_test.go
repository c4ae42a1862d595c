//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"lendit/internal/domain/booking"
	"lendit/internal/handler/api"
	resdto "lendit/internal/handler/dto/response"
	"lendit/internal/usecase/commands"
	"lendit/internal/usecase/queries"
	"lendit/tests/common/builder"
	"lendit/tests/common/httptest"
	commandsmock "lendit/tests/mock/commands"
	queriesmock "lendit/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BookingHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockBookingCommands
	mockQueries  *queriesmock.MockBookingQueries
	handler      *api.BookingHandler
	actorID      uuid.UUID
}

func TestBookingHandlerSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}

func (s *BookingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockBookingCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockBookingQueries(s.mockCtrl)
	s.handler = api.NewBookingHandler(s.mockCommands, s.mockQueries)
	s.actorID = uuid.New()

	// Stands in for the auth middleware: any bearer token authenticates as
	// the suite's actor.
	s.router.Use(func(c *gin.Context) {
		if c.GetHeader("Authorization") != "" {
			c.Set("user_id", s.actorID)
		}
		c.Next()
	})

	s.router.POST("/bookings", s.handler.Create)
	s.router.GET("/bookings", s.handler.ListOwn)
	s.router.GET("/bookings/owner", s.handler.ListOwner)
	s.router.GET("/bookings/:id", s.handler.Get)
	s.router.PATCH("/bookings/:id", s.handler.Decide)
}

func (s *BookingHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func (s *BookingHandlerTestSuite) TestCreate() {
	view := builder.NewBookingBuilder().WithBooker(s.actorID).BuildView()
	body := map[string]any{
		"item_id": view.Item.ID.String(),
		"start":   view.Start.Format(time.RFC3339),
		"end":     view.End.Format(time.RFC3339),
	}

	s.Run("created", func() {
		s.mockCommands.EXPECT().
			Propose(gomock.Any(), view.Item.ID, s.actorID, gomock.Any(), gomock.Any()).
			Return(view.ID, nil)
		s.mockQueries.EXPECT().GetByID(gomock.Any(), view.ID, s.actorID).Return(view, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings", body, "token")

		var got resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusCreated, &got)
		s.Equal(view.ID, got.ID)
		s.Equal(booking.StatusWaiting.String(), got.Status)
	})

	s.Run("unauthenticated", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings", body, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusUnauthorized, "not authenticated")
	})

	s.Run("malformed item id", func() {
		bad := map[string]any{"item_id": "not-a-uuid", "start": body["start"], "end": body["end"]}
		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings", bad, "token")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "")
	})

	errCases := []struct {
		name       string
		err        error
		expectCode int
	}{
		{"unknown item", commands.ErrItemNotFound, http.StatusNotFound},
		{"unknown booker", commands.ErrUserNotFound, http.StatusNotFound},
		{"own item", commands.ErrOwnItemBooking, http.StatusForbidden},
		{"unavailable item", commands.ErrItemUnavailable, http.StatusBadRequest},
		{"invalid period", commands.ErrInvalidPeriod, http.StatusBadRequest},
	}
	for _, c := range errCases {
		s.Run(c.name, func() {
			s.mockCommands.EXPECT().
				Propose(gomock.Any(), view.Item.ID, s.actorID, gomock.Any(), gomock.Any()).
				Return(uuid.Nil, c.err)

			w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings", body, "token")
			httptest.AssertErrorResponse(s.T(), w, c.expectCode, "")
		})
	}
}

func (s *BookingHandlerTestSuite) TestDecide() {
	view := builder.NewBookingBuilder().WithOwner(s.actorID).WithStatus(booking.StatusApproved).BuildView()
	url := "/bookings/" + view.ID.String()

	s.Run("approved", func() {
		s.mockCommands.EXPECT().Decide(gomock.Any(), view.ID, s.actorID, true).Return(nil)
		s.mockQueries.EXPECT().GetByID(gomock.Any(), view.ID, s.actorID).Return(view, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url+"?approved=true", nil, "token")

		var got resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &got)
		s.Equal(booking.StatusApproved.String(), got.Status)
	})

	s.Run("rejected", func() {
		s.mockCommands.EXPECT().Decide(gomock.Any(), view.ID, s.actorID, false).Return(nil)
		s.mockQueries.EXPECT().GetByID(gomock.Any(), view.ID, s.actorID).Return(view, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url+"?approved=false", nil, "token")
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, nil)
	})

	s.Run("missing approved parameter", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, nil, "token")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "approved")
	})

	s.Run("not the item owner", func() {
		s.mockCommands.EXPECT().Decide(gomock.Any(), view.ID, s.actorID, true).Return(commands.ErrNotItemOwner)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url+"?approved=true", nil, "token")
		httptest.AssertErrorResponse(s.T(), w, http.StatusForbidden, "owner")
	})

	s.Run("already decided", func() {
		s.mockCommands.EXPECT().Decide(gomock.Any(), view.ID, s.actorID, true).Return(commands.ErrAlreadyDecided)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url+"?approved=true", nil, "token")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "already been decided")
	})

	s.Run("unknown booking", func() {
		s.mockCommands.EXPECT().Decide(gomock.Any(), view.ID, s.actorID, true).Return(commands.ErrBookingNotFound)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url+"?approved=true", nil, "token")
		httptest.AssertErrorResponse(s.T(), w, http.StatusNotFound, "")
	})
}

func (s *BookingHandlerTestSuite) TestGet() {
	view := builder.NewBookingBuilder().WithBooker(s.actorID).BuildView()
	url := "/bookings/" + view.ID.String()

	s.Run("found", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), view.ID, s.actorID).Return(view, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "token")

		var got resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &got)
		s.Equal(view.ID, got.ID)
	})

	s.Run("not a participant", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), view.ID, s.actorID).Return(nil, queries.ErrNotParticipant)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "token")
		httptest.AssertErrorResponse(s.T(), w, http.StatusForbidden, "")
	})

	s.Run("unknown booking", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), view.ID, s.actorID).Return(nil, queries.ErrBookingNotFound)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "token")
		httptest.AssertErrorResponse(s.T(), w, http.StatusNotFound, "")
	})

	s.Run("malformed id", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/not-a-uuid", nil, "token")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "")
	})
}

func (s *BookingHandlerTestSuite) TestList() {
	views := []*queries.BookingView{builder.NewBookingBuilder().WithBooker(s.actorID).BuildView()}

	s.Run("own bookings with defaults", func() {
		s.mockQueries.EXPECT().
			ListByBooker(gomock.Any(), s.actorID, "", 0, queries.DefaultPageSize).
			Return(views, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings", nil, "token")

		var got []*resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &got)
		s.Len(got, 1)
	})

	s.Run("state and paging forwarded", func() {
		s.mockQueries.EXPECT().
			ListByBooker(gomock.Any(), s.actorID, "FUTURE", 20, 5).
			Return(views, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings?state=FUTURE&from=20&size=5", nil, "token")
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, nil)
	})

	s.Run("owner listing", func() {
		s.mockQueries.EXPECT().
			ListByOwner(gomock.Any(), s.actorID, "", 0, queries.DefaultPageSize).
			Return(views, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/owner", nil, "token")
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, nil)
	})

	s.Run("unknown state", func() {
		s.mockQueries.EXPECT().
			ListByBooker(gomock.Any(), s.actorID, "UNSUPPORTED_STATUS", 0, queries.DefaultPageSize).
			Return(nil, booking.ErrUnknownState)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings?state=UNSUPPORTED_STATUS", nil, "token")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Unknown state: UNSUPPORTED_STATUS")
	})

	s.Run("non-numeric paging", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings?from=abc", nil, "token")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "pagination")
	})

	s.Run("invalid paging from the query layer", func() {
		s.mockQueries.EXPECT().
			ListByBooker(gomock.Any(), s.actorID, "", -1, queries.DefaultPageSize).
			Return(nil, queries.ErrInvalidPage)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings?from=-1", nil, "token")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "pagination")
	})
}
