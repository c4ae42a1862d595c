//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"lendit/internal/domain/booking"
	"lendit/internal/infra"
	"lendit/internal/pkg/clock"
	"lendit/internal/usecase/commands"
	commandsmock "lendit/tests/mock/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BookingCommandsTestSuite struct {
	suite.Suite
	ctrl  *gomock.Controller
	repo  *commandsmock.MockBookingRepository
	reads *commandsmock.MockCommandReads
	clock *clock.MockClock
	sut   commands.BookingCommands

	itemID   uuid.UUID
	ownerID  uuid.UUID
	bookerID uuid.UUID
	start    time.Time
	end      time.Time
}

func TestBookingCommandsTestSuite(t *testing.T) {
	suite.Run(t, new(BookingCommandsTestSuite))
}

func (s *BookingCommandsTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.repo = commandsmock.NewMockBookingRepository(s.ctrl)
	s.reads = commandsmock.NewMockCommandReads(s.ctrl)
	s.clock = clock.NewMockClock(time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC))
	s.sut = commands.NewBookingCommands(s.repo, s.reads, booking.IntervalPolicy{RequireFutureStart: true}, s.clock)

	s.itemID = uuid.New()
	s.ownerID = uuid.New()
	s.bookerID = uuid.New()
	s.start = s.clock.Now().Add(24 * time.Hour)
	s.end = s.clock.Now().Add(48 * time.Hour)
}

func (s *BookingCommandsTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *BookingCommandsTestSuite) availableItem() *commands.ItemSnapshot {
	return &commands.ItemSnapshot{
		ID:        s.itemID,
		OwnerID:   s.ownerID,
		Name:      "Cordless Drill",
		Available: true,
	}
}

func (s *BookingCommandsTestSuite) TestPropose() {
	s.Run("success", func() {
		s.reads.EXPECT().UserExists(gomock.Any(), s.bookerID).Return(true, nil)
		s.reads.EXPECT().ItemByID(gomock.Any(), s.itemID).Return(s.availableItem(), nil)
		s.repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, b *booking.Booking) error {
				s.Equal(s.itemID, b.ItemID())
				s.Equal(s.bookerID, b.BookerID())
				s.Equal(booking.StatusWaiting, b.Status())
				return nil
			})

		id, err := s.sut.Propose(context.Background(), s.itemID, s.bookerID, s.start, s.end)
		s.NoError(err)
		s.NotEqual(uuid.Nil, id)
	})

	s.Run("unknown booker short-circuits before the item lookup", func() {
		s.reads.EXPECT().UserExists(gomock.Any(), s.bookerID).Return(false, nil)

		_, err := s.sut.Propose(context.Background(), s.itemID, s.bookerID, s.start, s.end)
		s.ErrorIs(err, commands.ErrUserNotFound)
	})

	s.Run("unknown item", func() {
		s.reads.EXPECT().UserExists(gomock.Any(), s.bookerID).Return(true, nil)
		s.reads.EXPECT().ItemByID(gomock.Any(), s.itemID).
			Return(nil, infra.WrapRepoErr("item not found", errors.New("no rows"), infra.KindNotFound))

		_, err := s.sut.Propose(context.Background(), s.itemID, s.bookerID, s.start, s.end)
		s.ErrorIs(err, commands.ErrItemNotFound)
	})

	s.Run("owner cannot book own item", func() {
		s.reads.EXPECT().UserExists(gomock.Any(), s.ownerID).Return(true, nil)
		s.reads.EXPECT().ItemByID(gomock.Any(), s.itemID).Return(s.availableItem(), nil)

		_, err := s.sut.Propose(context.Background(), s.itemID, s.ownerID, s.start, s.end)
		s.ErrorIs(err, commands.ErrOwnItemBooking)
	})

	s.Run("ownership is checked before availability", func() {
		snap := s.availableItem()
		snap.Available = false
		s.reads.EXPECT().UserExists(gomock.Any(), s.ownerID).Return(true, nil)
		s.reads.EXPECT().ItemByID(gomock.Any(), s.itemID).Return(snap, nil)

		_, err := s.sut.Propose(context.Background(), s.itemID, s.ownerID, s.start, s.end)
		s.ErrorIs(err, commands.ErrOwnItemBooking)
	})

	s.Run("unavailable item", func() {
		snap := s.availableItem()
		snap.Available = false
		s.reads.EXPECT().UserExists(gomock.Any(), s.bookerID).Return(true, nil)
		s.reads.EXPECT().ItemByID(gomock.Any(), s.itemID).Return(snap, nil)

		_, err := s.sut.Propose(context.Background(), s.itemID, s.bookerID, s.start, s.end)
		s.ErrorIs(err, commands.ErrItemUnavailable)
	})

	s.Run("invalid period", func() {
		s.reads.EXPECT().UserExists(gomock.Any(), s.bookerID).Return(true, nil)
		s.reads.EXPECT().ItemByID(gomock.Any(), s.itemID).Return(s.availableItem(), nil)

		_, err := s.sut.Propose(context.Background(), s.itemID, s.bookerID, s.end, s.start)
		s.ErrorIs(err, commands.ErrInvalidPeriod)
		s.ErrorIs(err, booking.ErrStartAfterEnd)
	})

	s.Run("past start rejected by policy", func() {
		s.reads.EXPECT().UserExists(gomock.Any(), s.bookerID).Return(true, nil)
		s.reads.EXPECT().ItemByID(gomock.Any(), s.itemID).Return(s.availableItem(), nil)

		past := s.clock.Now().Add(-time.Hour)
		_, err := s.sut.Propose(context.Background(), s.itemID, s.bookerID, past, s.end)
		s.ErrorIs(err, commands.ErrInvalidPeriod)
		s.ErrorIs(err, booking.ErrStartInPast)
	})

	s.Run("item deleted between lookup and insert", func() {
		s.reads.EXPECT().UserExists(gomock.Any(), s.bookerID).Return(true, nil)
		s.reads.EXPECT().ItemByID(gomock.Any(), s.itemID).Return(s.availableItem(), nil)
		s.repo.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(infra.WrapRepoErr("insert booking", errors.New("fk violation"), infra.KindForeignKeyViolated))

		_, err := s.sut.Propose(context.Background(), s.itemID, s.bookerID, s.start, s.end)
		s.ErrorIs(err, commands.ErrItemNotFound)
	})
}

func (s *BookingCommandsTestSuite) waitingSnapshot(bookingID uuid.UUID) *commands.BookingSnapshot {
	return &commands.BookingSnapshot{
		ID:          bookingID,
		ItemID:      s.itemID,
		BookerID:    s.bookerID,
		ItemOwnerID: s.ownerID,
		Start:       s.start,
		End:         s.end,
		Status:      booking.StatusWaiting.String(),
	}
}

func (s *BookingCommandsTestSuite) TestDecide() {
	bookingID := uuid.New()

	s.Run("approve", func() {
		s.reads.EXPECT().BookingByID(gomock.Any(), bookingID).Return(s.waitingSnapshot(bookingID), nil)
		s.repo.EXPECT().UpdateStatusIfWaiting(gomock.Any(), bookingID, booking.StatusApproved, s.clock.Now()).
			Return(int64(1), nil)

		err := s.sut.Decide(context.Background(), bookingID, s.ownerID, true)
		s.NoError(err)
	})

	s.Run("reject", func() {
		s.reads.EXPECT().BookingByID(gomock.Any(), bookingID).Return(s.waitingSnapshot(bookingID), nil)
		s.repo.EXPECT().UpdateStatusIfWaiting(gomock.Any(), bookingID, booking.StatusRejected, s.clock.Now()).
			Return(int64(1), nil)

		err := s.sut.Decide(context.Background(), bookingID, s.ownerID, false)
		s.NoError(err)
	})

	s.Run("unknown booking", func() {
		s.reads.EXPECT().BookingByID(gomock.Any(), bookingID).
			Return(nil, infra.WrapRepoErr("booking not found", errors.New("no rows"), infra.KindNotFound))

		err := s.sut.Decide(context.Background(), bookingID, s.ownerID, true)
		s.ErrorIs(err, commands.ErrBookingNotFound)
	})

	s.Run("only the owner may decide", func() {
		s.reads.EXPECT().BookingByID(gomock.Any(), bookingID).Return(s.waitingSnapshot(bookingID), nil)

		err := s.sut.Decide(context.Background(), bookingID, s.bookerID, true)
		s.ErrorIs(err, commands.ErrNotItemOwner)
	})

	s.Run("already decided", func() {
		snap := s.waitingSnapshot(bookingID)
		snap.Status = booking.StatusApproved.String()
		s.reads.EXPECT().BookingByID(gomock.Any(), bookingID).Return(snap, nil)

		err := s.sut.Decide(context.Background(), bookingID, s.ownerID, false)
		s.ErrorIs(err, commands.ErrAlreadyDecided)
		s.ErrorIs(err, booking.ErrAlreadyDecided)
	})

	s.Run("malformed stored status", func() {
		snap := s.waitingSnapshot(bookingID)
		snap.Status = "CANCELLED"
		s.reads.EXPECT().BookingByID(gomock.Any(), bookingID).Return(snap, nil)

		err := s.sut.Decide(context.Background(), bookingID, s.ownerID, true)
		s.ErrorIs(err, booking.ErrInvalidStatus)
	})

	s.Run("lost the race to another decider", func() {
		s.reads.EXPECT().BookingByID(gomock.Any(), bookingID).Return(s.waitingSnapshot(bookingID), nil)
		s.repo.EXPECT().UpdateStatusIfWaiting(gomock.Any(), bookingID, booking.StatusApproved, s.clock.Now()).
			Return(int64(0), nil)

		err := s.sut.Decide(context.Background(), bookingID, s.ownerID, true)
		s.ErrorIs(err, commands.ErrAlreadyDecided)
	})
}

func TestNewBookingCommands(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sut := commands.NewBookingCommands(
		commandsmock.NewMockBookingRepository(ctrl),
		commandsmock.NewMockCommandReads(ctrl),
		booking.IntervalPolicy{},
		clock.NewRealClock(),
	)
	require.NotNil(t, sut)
}
