//go:build unit

package booking_test

import (
	"strings"
	"testing"
	"time"

	"coworking-backend/internal/domain/booking"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newConfirmedBooking(t *testing.T) *booking.Booking {
	t.Helper()
	period := mustPeriod(t,
		time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC),
	)
	purpose, err := booking.NewPurpose("thesis writing")
	require.NoError(t, err)
	return booking.NewBooking(uuid.New(), uuid.New(), period, purpose)
}

func TestNewBooking(t *testing.T) {
	b := newConfirmedBooking(t)

	assert.NotEqual(t, uuid.Nil, b.ID())
	assert.Equal(t, booking.StatusConfirmed, b.Status())
	assert.True(t, b.IsActive())
}

func TestBookingCancel(t *testing.T) {
	t.Run("confirmed booking cancels", func(t *testing.T) {
		b := newConfirmedBooking(t)
		require.NoError(t, b.Cancel())
		assert.Equal(t, booking.StatusCancelled, b.Status())
		assert.False(t, b.IsActive())
	})

	t.Run("cancelling twice fails", func(t *testing.T) {
		b := newConfirmedBooking(t)
		require.NoError(t, b.Cancel())
		assert.ErrorIs(t, b.Cancel(), booking.ErrNotConfirmed)
	})
}

func TestBookingReschedule(t *testing.T) {
	newWindow := func(t *testing.T) booking.Period {
		return mustPeriod(t,
			time.Date(2026, 3, 11, 14, 0, 0, 0, time.UTC),
			time.Date(2026, 3, 11, 16, 0, 0, 0, time.UTC),
		)
	}

	t.Run("confirmed booking reschedules", func(t *testing.T) {
		b := newConfirmedBooking(t)
		purpose, err := booking.NewPurpose("group project")
		require.NoError(t, err)

		require.NoError(t, b.Reschedule(newWindow(t), purpose))
		assert.Equal(t, newWindow(t).Start(), b.Period().Start())
		assert.Equal(t, "group project", b.Purpose().String())
	})

	t.Run("cancelled booking rejects reschedule", func(t *testing.T) {
		b := newConfirmedBooking(t)
		require.NoError(t, b.Cancel())
		assert.ErrorIs(t, b.Reschedule(newWindow(t), booking.Purpose{}), booking.ErrNotConfirmed)
	})
}

func TestBookingHasStarted(t *testing.T) {
	b := newConfirmedBooking(t)
	start := b.Period().Start()

	assert.False(t, b.HasStarted(start.Add(-time.Minute)))
	assert.True(t, b.HasStarted(start))
	assert.True(t, b.HasStarted(start.Add(time.Minute)))
}

func TestReconstructBooking(t *testing.T) {
	period := mustPeriod(t,
		time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC),
	)

	t.Run("valid status", func(t *testing.T) {
		b, err := booking.ReconstructBooking(
			uuid.New(), uuid.New(), uuid.New(),
			period, booking.Purpose{}, booking.StatusCompleted,
			time.Now(), time.Now(),
		)
		require.NoError(t, err)
		assert.Equal(t, booking.StatusCompleted, b.Status())
	})

	t.Run("unknown status rejected", func(t *testing.T) {
		_, err := booking.ReconstructBooking(
			uuid.New(), uuid.New(), uuid.New(),
			period, booking.Purpose{}, booking.Status("pending"),
			time.Now(), time.Now(),
		)
		assert.ErrorIs(t, err, booking.ErrInvalidStatus)
	})
}

func TestNewPurpose(t *testing.T) {
	t.Run("trims whitespace", func(t *testing.T) {
		p, err := booking.NewPurpose("  study session  ")
		require.NoError(t, err)
		assert.Equal(t, "study session", p.String())
	})

	t.Run("empty is allowed", func(t *testing.T) {
		p, err := booking.NewPurpose("")
		require.NoError(t, err)
		assert.True(t, p.IsEmpty())
	})

	t.Run("over length limit rejected", func(t *testing.T) {
		_, err := booking.NewPurpose(strings.Repeat("a", booking.MaxPurposeLength+1))
		assert.ErrorIs(t, err, booking.ErrPurposeTooLong)
	})
}

func TestStatus(t *testing.T) {
	assert.True(t, booking.StatusConfirmed.IsValid())
	assert.True(t, booking.StatusCancelled.IsValid())
	assert.True(t, booking.StatusCompleted.IsValid())
	assert.False(t, booking.Status("pending").IsValid())

	assert.False(t, booking.StatusConfirmed.IsTerminal())
	assert.True(t, booking.StatusCancelled.IsTerminal())
	assert.True(t, booking.StatusCompleted.IsTerminal())
}
