package booking

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidDuration = errors.New("end time must be after start time")

// Period is a half-open interval [start, end). The end instant is excluded
// so back-to-back bookings on the same room never conflict.
type Period struct {
	start time.Time
	end   time.Time
}

func NewPeriod(start, end time.Time) (Period, error) {
	if !end.After(start) {
		return Period{}, ErrInvalidDuration
	}
	return Period{start: start.UTC(), end: end.UTC()}, nil
}

func (p Period) Start() time.Time {
	return p.start
}

func (p Period) End() time.Time {
	return p.end
}

func (p Period) Duration() time.Duration {
	return p.end.Sub(p.start)
}

// Overlaps implements the half-open interval predicate:
// [s1,e1) and [s2,e2) overlap iff s1 < e2 && s2 < e1.
func (p Period) Overlaps(other Period) bool {
	return p.start.Before(other.end) && other.start.Before(p.end)
}

func (p Period) String() string {
	return fmt.Sprintf("[%s,%s)", p.start.Format(time.RFC3339), p.end.Format(time.RFC3339))
}
