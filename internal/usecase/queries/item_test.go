//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"lendit/internal/pkg/clock"
	"lendit/internal/usecase/queries"
	"lendit/tests/common/builder"
	queriesmock "lendit/tests/mock/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ItemQueriesTestSuite struct {
	suite.Suite
	ctrl  *gomock.Controller
	store *queriesmock.MockItemReadStore
	clock *clock.MockClock
	sut   queries.ItemQueries
}

func TestItemQueriesTestSuite(t *testing.T) {
	suite.Run(t, new(ItemQueriesTestSuite))
}

func (s *ItemQueriesTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.store = queriesmock.NewMockItemReadStore(s.ctrl)
	s.clock = clock.NewMockClock(time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC))
	s.sut = queries.NewItemQueries(s.store, s.clock)
}

func (s *ItemQueriesTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *ItemQueriesTestSuite) TestGetByID() {
	comments := []queries.CommentView{{ID: uuid.New(), Text: "Worked great", AuthorName: "Bob"}}

	s.Run("owner sees the booking projection", func() {
		view := builder.NewItemBuilder().BuildView()
		now := s.clock.Now()
		last := &queries.BookingRef{ID: uuid.New(), Start: now.Add(-48 * time.Hour), End: now.Add(-24 * time.Hour)}
		next := &queries.BookingRef{ID: uuid.New(), Start: now.Add(24 * time.Hour), End: now.Add(48 * time.Hour)}

		s.store.EXPECT().FindByID(gomock.Any(), view.ID).Return(view, nil)
		s.store.EXPECT().CommentsForItem(gomock.Any(), view.ID).Return(comments, nil)
		s.store.EXPECT().LastApprovedBooking(gomock.Any(), view.ID, now).Return(last, nil)
		s.store.EXPECT().NextApprovedBooking(gomock.Any(), view.ID, now).Return(next, nil)

		got, err := s.sut.GetByID(context.Background(), view.ID, view.OwnerID)
		s.NoError(err)
		s.Equal(comments, got.Comments)
		s.Equal(last, got.LastBooking)
		s.Equal(next, got.NextBooking)
	})

	s.Run("other viewers get comments but no projection", func() {
		view := builder.NewItemBuilder().BuildView()

		s.store.EXPECT().FindByID(gomock.Any(), view.ID).Return(view, nil)
		s.store.EXPECT().CommentsForItem(gomock.Any(), view.ID).Return(comments, nil)

		got, err := s.sut.GetByID(context.Background(), view.ID, uuid.New())
		s.NoError(err)
		s.Equal(comments, got.Comments)
		s.Nil(got.LastBooking)
		s.Nil(got.NextBooking)
	})

	s.Run("owner with no approved bookings", func() {
		view := builder.NewItemBuilder().BuildView()
		now := s.clock.Now()

		s.store.EXPECT().FindByID(gomock.Any(), view.ID).Return(view, nil)
		s.store.EXPECT().CommentsForItem(gomock.Any(), view.ID).Return(nil, nil)
		s.store.EXPECT().LastApprovedBooking(gomock.Any(), view.ID, now).Return(nil, nil)
		s.store.EXPECT().NextApprovedBooking(gomock.Any(), view.ID, now).Return(nil, nil)

		got, err := s.sut.GetByID(context.Background(), view.ID, view.OwnerID)
		s.NoError(err)
		s.Nil(got.LastBooking)
		s.Nil(got.NextBooking)
	})
}

func (s *ItemQueriesTestSuite) TestListByOwner() {
	ownerID := uuid.New()
	view := builder.NewItemBuilder().WithOwner(ownerID).BuildView()
	now := s.clock.Now()

	page, err := queries.NewPage(0, 10)
	s.Require().NoError(err)

	s.store.EXPECT().FindByOwner(gomock.Any(), ownerID, page).Return([]*queries.ItemView{view}, nil)
	s.store.EXPECT().CommentsForItem(gomock.Any(), view.ID).Return(nil, nil)
	s.store.EXPECT().LastApprovedBooking(gomock.Any(), view.ID, now).Return(nil, nil)
	s.store.EXPECT().NextApprovedBooking(gomock.Any(), view.ID, now).Return(nil, nil)

	got, err := s.sut.ListByOwner(context.Background(), ownerID, 0, 10)
	s.NoError(err)
	s.Len(got, 1)
}

func (s *ItemQueriesTestSuite) TestSearch() {
	s.Run("blank text returns empty without touching the store", func() {
		got, err := s.sut.Search(context.Background(), "   ", 0, 10)
		s.NoError(err)
		s.Empty(got)
	})

	s.Run("passes text and page through", func() {
		view := builder.NewItemBuilder().BuildView()
		page, err := queries.NewPage(0, 10)
		s.Require().NoError(err)

		s.store.EXPECT().SearchAvailable(gomock.Any(), "drill", page).Return([]*queries.ItemView{view}, nil)

		got, err := s.sut.Search(context.Background(), "drill", 0, 10)
		s.NoError(err)
		s.Len(got, 1)
	})

	s.Run("invalid page", func() {
		_, err := s.sut.Search(context.Background(), "drill", 0, 0)
		s.ErrorIs(err, queries.ErrInvalidPage)
	})
}
