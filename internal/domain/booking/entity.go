package booking

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotConfirmed   = errors.New("booking is not confirmed")
	ErrInvalidStatus  = errors.New("invalid booking status")
	ErrPurposeTooLong = errors.New("purpose is too long (max 500 characters)")
)

const MaxPurposeLength = 500

type Booking struct {
	id        uuid.UUID
	userID    uuid.UUID
	roomID    uuid.UUID
	period    Period
	purpose   Purpose
	status    Status
	createdAt time.Time
	updatedAt time.Time
}

// NewBooking builds a confirmed booking. Policy and overlap validation happen
// before this is called; the entity only guards its own invariants.
func NewBooking(userID, roomID uuid.UUID, period Period, purpose Purpose) *Booking {
	return &Booking{
		id:      uuid.New(),
		userID:  userID,
		roomID:  roomID,
		period:  period,
		purpose: purpose,
		status:  StatusConfirmed,
	}
}

func ReconstructBooking(
	id, userID, roomID uuid.UUID,
	period Period,
	purpose Purpose,
	status Status,
	createdAt, updatedAt time.Time,
) (*Booking, error) {
	if !status.IsValid() {
		return nil, ErrInvalidStatus
	}
	return &Booking{
		id:        id,
		userID:    userID,
		roomID:    roomID,
		period:    period,
		purpose:   purpose,
		status:    status,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}, nil
}

// Reschedule replaces the time window and purpose. Only confirmed bookings
// may change; terminal statuses stay terminal.
func (b *Booking) Reschedule(period Period, purpose Purpose) error {
	if b.status != StatusConfirmed {
		return ErrNotConfirmed
	}
	b.period = period
	b.purpose = purpose
	return nil
}

// Cancel transitions a confirmed booking to cancelled.
func (b *Booking) Cancel() error {
	if b.status != StatusConfirmed {
		return ErrNotConfirmed
	}
	b.status = StatusCancelled
	return nil
}

func (b *Booking) HasStarted(now time.Time) bool {
	return !b.period.Start().After(now)
}

func (b *Booking) IsActive() bool {
	return b.status == StatusConfirmed
}

func (b *Booking) ID() uuid.UUID        { return b.id }
func (b *Booking) UserID() uuid.UUID    { return b.userID }
func (b *Booking) RoomID() uuid.UUID    { return b.roomID }
func (b *Booking) Period() Period       { return b.period }
func (b *Booking) Purpose() Purpose     { return b.purpose }
func (b *Booking) Status() Status       { return b.status }
func (b *Booking) CreatedAt() time.Time { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time { return b.updatedAt }

type Purpose struct {
	value string
}

func NewPurpose(value string) (Purpose, error) {
	value = strings.TrimSpace(value)
	if len(value) > MaxPurposeLength {
		return Purpose{}, ErrPurposeTooLong
	}
	return Purpose{value: value}, nil
}

func (p Purpose) String() string {
	return p.value
}

func (p Purpose) IsEmpty() bool {
	return p.value == ""
}
