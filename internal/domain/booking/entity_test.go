//go:build unit

package booking_test

import (
	"testing"
	"time"

	"lendit/internal/domain/booking"
	"lendit/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBooking(t *testing.T) {
	itemID := uuid.New()
	bookerID := uuid.New()
	period := booking.ReconstructPeriod(time.Now().Add(time.Hour), time.Now().Add(2*time.Hour))

	b := booking.NewBooking(itemID, bookerID, period)

	assert.NotEqual(t, uuid.Nil, b.ID())
	assert.Equal(t, itemID, b.ItemID())
	assert.Equal(t, bookerID, b.BookerID())
	assert.Equal(t, booking.StatusWaiting, b.Status())
	assert.Nil(t, b.DecidedAt())
}

func TestReconstructBooking(t *testing.T) {
	t.Run("rejects unknown status", func(t *testing.T) {
		_, err := builder.NewBookingBuilder().WithStatus("CANCELLED").BuildDomain()
		require.ErrorIs(t, err, booking.ErrInvalidStatus)
	})

	t.Run("accepts every known status", func(t *testing.T) {
		for _, s := range []booking.Status{booking.StatusWaiting, booking.StatusApproved, booking.StatusRejected} {
			b, err := builder.NewBookingBuilder().WithStatus(s).BuildDomain()
			require.NoError(t, err)
			assert.Equal(t, s, b.Status())
		}
	})
}

func TestDecide(t *testing.T) {
	now := time.Now()

	t.Run("approve", func(t *testing.T) {
		b, err := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err)

		require.NoError(t, b.Decide(true, now))
		assert.Equal(t, booking.StatusApproved, b.Status())
		require.NotNil(t, b.DecidedAt())
		assert.Equal(t, now, *b.DecidedAt())
	})

	t.Run("reject", func(t *testing.T) {
		b, err := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err)

		require.NoError(t, b.Decide(false, now))
		assert.Equal(t, booking.StatusRejected, b.Status())
	})

	t.Run("second decision fails", func(t *testing.T) {
		b, err := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err)

		require.NoError(t, b.Decide(true, now))
		require.ErrorIs(t, b.Decide(false, now), booking.ErrAlreadyDecided)
		assert.Equal(t, booking.StatusApproved, b.Status())
	})

	t.Run("already approved booking cannot be decided", func(t *testing.T) {
		b, err := builder.NewBookingBuilder().WithStatus(booking.StatusApproved).BuildDomain()
		require.NoError(t, err)

		require.ErrorIs(t, b.Decide(false, now), booking.ErrAlreadyDecided)
	})

	t.Run("already rejected booking cannot be decided", func(t *testing.T) {
		b, err := builder.NewBookingBuilder().WithStatus(booking.StatusRejected).BuildDomain()
		require.NoError(t, err)

		require.ErrorIs(t, b.Decide(true, now), booking.ErrAlreadyDecided)
	})
}

func TestHasFinishedFor(t *testing.T) {
	now := time.Now()
	bookerID := uuid.New()

	finished := func() *builder.BookingBuilder {
		return builder.NewBookingBuilder().
			WithBooker(bookerID).
			WithPeriod(now.Add(-48*time.Hour), now.Add(-24*time.Hour)).
			WithStatus(booking.StatusApproved)
	}

	t.Run("approved and ended", func(t *testing.T) {
		b, err := finished().BuildDomain()
		require.NoError(t, err)
		assert.True(t, b.HasFinishedFor(bookerID, now))
	})

	t.Run("different user", func(t *testing.T) {
		b, err := finished().BuildDomain()
		require.NoError(t, err)
		assert.False(t, b.HasFinishedFor(uuid.New(), now))
	})

	t.Run("still waiting", func(t *testing.T) {
		b, err := finished().WithStatus(booking.StatusWaiting).BuildDomain()
		require.NoError(t, err)
		assert.False(t, b.HasFinishedFor(bookerID, now))
	})

	t.Run("rejected", func(t *testing.T) {
		b, err := finished().WithStatus(booking.StatusRejected).BuildDomain()
		require.NoError(t, err)
		assert.False(t, b.HasFinishedFor(bookerID, now))
	})

	t.Run("still running", func(t *testing.T) {
		b, err := finished().WithPeriod(now.Add(-time.Hour), now.Add(time.Hour)).BuildDomain()
		require.NoError(t, err)
		assert.False(t, b.HasFinishedFor(bookerID, now))
	})

	t.Run("ends exactly now", func(t *testing.T) {
		b, err := finished().WithPeriod(now.Add(-time.Hour), now).BuildDomain()
		require.NoError(t, err)
		assert.False(t, b.HasFinishedFor(bookerID, now))
	})
}
