package booking

import "time"

// Slot is one bookable unit of the operating day.
type Slot struct {
	Start time.Time
	End   time.Time
}

const slotSize = time.Hour

// AvailableSlots partitions the operating window of the given calendar date
// into fixed one-hour slots and returns those that overlap no confirmed
// booking, earliest first. The result is fully materialized and recomputed
// on every call; bookings change between calls and staleness would be a
// correctness bug, not a performance win.
func AvailableSlots(policy *Policy, date time.Time, busy []Period) []Slot {
	opening, closing := policy.OperatingWindowOn(date)

	slots := make([]Slot, 0, int(closing.Sub(opening)/slotSize))
	for start := opening; start.Add(slotSize).Compare(closing) <= 0; start = start.Add(slotSize) {
		candidate, err := NewPeriod(start, start.Add(slotSize))
		if err != nil {
			continue
		}
		if overlapsAny(candidate, busy) {
			continue
		}
		slots = append(slots, Slot{Start: candidate.Start(), End: candidate.End()})
	}
	return slots
}

func overlapsAny(candidate Period, busy []Period) bool {
	for _, b := range busy {
		if candidate.Overlaps(b) {
			return true
		}
	}
	return false
}
