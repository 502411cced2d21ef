package booking

import (
	"errors"
	"time"
)

var (
	ErrPastStart             = errors.New("start time cannot be in the past")
	ErrDurationTooLong       = errors.New("booking duration exceeds the maximum")
	ErrOutsideOperatingHours = errors.New("booking is outside operating hours")
	ErrQuotaExceeded         = errors.New("maximum number of active bookings reached")
	ErrAlreadyStarted        = errors.New("booking has already started")
	ErrTooCloseToStart       = errors.New("booking starts too soon to cancel")
)

// Policy holds the booking business rules. It is pure validation: no
// persistence, no side effects. Checks are independent and composable; the
// lifecycle commands call them in a fixed order so a rejected request always
// yields the same specific error.
type Policy struct {
	location    *time.Location
	openingHour int
	closingHour int
	maxDuration time.Duration
	maxActive   int
	cancelLead  time.Duration
}

func NewPolicy(location *time.Location, openingHour, closingHour, maxDurationHours, maxActive, cancelLeadHours int) *Policy {
	return &Policy{
		location:    location,
		openingHour: openingHour,
		closingHour: closingHour,
		maxDuration: time.Duration(maxDurationHours) * time.Hour,
		maxActive:   maxActive,
		cancelLead:  time.Duration(cancelLeadHours) * time.Hour,
	}
}

// DefaultPolicy returns the standard rules: 09:00-21:00 operating window,
// 4 hour maximum duration, 3 active bookings per user, 2 hour cancel lead.
func DefaultPolicy() *Policy {
	return NewPolicy(time.UTC, 9, 21, 4, 3, 2)
}

// ValidateWindow checks the candidate time window in deterministic order:
// past start, inverted interval, operating hours, duration. The operating
// hours check compares full timestamps against the day's opening and closing
// instants, so 20:59-21:59 is rejected even though the start hour looks fine.
func (p *Policy) ValidateWindow(now, start, end time.Time) error {
	if start.Before(now) {
		return ErrPastStart
	}
	if !end.After(start) {
		return ErrInvalidDuration
	}

	opening, closing := p.OperatingWindow(start)
	if start.Before(opening) || end.After(closing) {
		return ErrOutsideOperatingHours
	}

	if end.Sub(start) > p.maxDuration {
		return ErrDurationTooLong
	}
	return nil
}

// ValidateQuota rejects a new booking once the user already holds maxActive
// confirmed bookings.
func (p *Policy) ValidateQuota(activeCount int) error {
	if activeCount >= p.maxActive {
		return ErrQuotaExceeded
	}
	return nil
}

// ValidateCancellation rejects cancelling a booking that has started or
// starts within the minimum lead window.
func (p *Policy) ValidateCancellation(start, now time.Time) error {
	if !start.After(now) {
		return ErrAlreadyStarted
	}
	if start.Sub(now) < p.cancelLead {
		return ErrTooCloseToStart
	}
	return nil
}

// OperatingWindow returns the [opening, closing) instants of the operating
// day containing t, evaluated in the policy's local calendar.
func (p *Policy) OperatingWindow(t time.Time) (time.Time, time.Time) {
	local := t.In(p.location)
	return p.windowFor(local.Year(), local.Month(), local.Day())
}

// OperatingWindowOn returns the [opening, closing) instants for the calendar
// date named by date's year, month and day fields, anchored in the policy's
// location. Unlike OperatingWindow it never converts the input to the local
// zone first, so a civil date parsed at UTC midnight stays on the same day
// even when the policy operates west of UTC.
func (p *Policy) OperatingWindowOn(date time.Time) (time.Time, time.Time) {
	return p.windowFor(date.Year(), date.Month(), date.Day())
}

func (p *Policy) windowFor(year int, month time.Month, day int) (time.Time, time.Time) {
	opening := time.Date(year, month, day, p.openingHour, 0, 0, 0, p.location)
	closing := time.Date(year, month, day, p.closingHour, 0, 0, 0, p.location)
	return opening.UTC(), closing.UTC()
}

func (p *Policy) MaxActive() int {
	return p.maxActive
}

func (p *Policy) CancelLead() time.Duration {
	return p.cancelLead
}
