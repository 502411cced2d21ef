//go:build unit

package booking_test

import (
	"testing"
	"time"

	"coworking-backend/internal/domain/booking"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAvailableSlots(t *testing.T) {
	policy := booking.DefaultPolicy()
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	at := func(h int) time.Time {
		return time.Date(2026, 3, 10, h, 0, 0, 0, time.UTC)
	}

	t.Run("empty day yields full operating window", func(t *testing.T) {
		slots := booking.AvailableSlots(policy, date, nil)
		require.Len(t, slots, 12)
		assert.Equal(t, at(9), slots[0].Start)
		assert.Equal(t, at(10), slots[0].End)
		assert.Equal(t, at(20), slots[11].Start)
		assert.Equal(t, at(21), slots[11].End)
	})

	t.Run("confirmed bookings remove their slots", func(t *testing.T) {
		busy := []booking.Period{
			mustPeriod(t, at(10), at(12)),
			mustPeriod(t, at(15), at(16)),
		}
		slots := booking.AvailableSlots(policy, date, busy)
		require.Len(t, slots, 9)
		for _, s := range slots {
			for _, b := range busy {
				p := mustPeriod(t, s.Start, s.End)
				assert.False(t, p.Overlaps(b), "slot %v overlaps booking %v", s, b)
			}
		}
	})

	t.Run("partial hour booking blocks both touched slots", func(t *testing.T) {
		busy := []booking.Period{
			mustPeriod(t, date.Add(10*time.Hour+30*time.Minute), date.Add(11*time.Hour+30*time.Minute)),
		}
		slots := booking.AvailableSlots(policy, date, busy)
		require.Len(t, slots, 10)

		starts := make([]time.Time, 0, len(slots))
		for _, s := range slots {
			starts = append(starts, s.Start)
		}
		assert.NotContains(t, starts, at(10))
		assert.NotContains(t, starts, at(11))
		assert.Contains(t, starts, at(9))
		assert.Contains(t, starts, at(12))
	})

	t.Run("booking adjacent to a slot does not block it", func(t *testing.T) {
		busy := []booking.Period{mustPeriod(t, at(12), at(14))}
		slots := booking.AvailableSlots(policy, date, busy)

		starts := make([]time.Time, 0, len(slots))
		for _, s := range slots {
			starts = append(starts, s.Start)
		}
		assert.Contains(t, starts, at(11))
		assert.Contains(t, starts, at(14))
		assert.NotContains(t, starts, at(12))
		assert.NotContains(t, starts, at(13))
	})

	t.Run("fully booked day yields no slots", func(t *testing.T) {
		busy := []booking.Period{mustPeriod(t, at(9), at(21))}
		slots := booking.AvailableSlots(policy, date, busy)
		assert.Empty(t, slots)
	})

	t.Run("slots are ordered earliest first", func(t *testing.T) {
		slots := booking.AvailableSlots(policy, date, []booking.Period{mustPeriod(t, at(13), at(14))})
		for i := 1; i < len(slots); i++ {
			assert.True(t, slots[i-1].Start.Before(slots[i].Start))
		}
	})

	t.Run("result is stable across calls", func(t *testing.T) {
		busy := []booking.Period{mustPeriod(t, at(10), at(11))}
		first := booking.AvailableSlots(policy, date, busy)
		second := booking.AvailableSlots(policy, date, busy)
		assert.Empty(t, cmp.Diff(first, second))
	})
}
