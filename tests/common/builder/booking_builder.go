//go:build unit || e2e

package builder

import (
	"time"

	dombooking "coworking-backend/internal/domain/booking"
	reqdto "coworking-backend/internal/handler/dto/request"
	"coworking-backend/internal/usecase/queries"
	"coworking-backend/internal/usecase/shared"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	UserName  string
	RoomID    uuid.UUID
	RoomName  string
	StartTime time.Time
	EndTime   time.Time
	Purpose   string
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewBookingBuilder() *BookingBuilder {
	now := time.Now().UTC().Truncate(time.Second)
	start := now.Add(24 * time.Hour).Truncate(time.Hour)
	return &BookingBuilder{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		UserName:  "Mika Tanaka",
		RoomID:    uuid.New(),
		RoomName:  "Study Room A",
		StartTime: start,
		EndTime:   start.Add(2 * time.Hour),
		Purpose:   "thesis writing",
		Status:    "confirmed",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *BookingBuilder) BuildDomain() (*dombooking.Booking, error) {
	period, err := dombooking.NewPeriod(b.StartTime, b.EndTime)
	if err != nil {
		return nil, err
	}
	purpose, err := dombooking.NewPurpose(b.Purpose)
	if err != nil {
		return nil, err
	}
	return dombooking.ReconstructBooking(
		b.ID, b.UserID, b.RoomID,
		period, purpose, dombooking.Status(b.Status),
		b.CreatedAt, b.UpdatedAt,
	)
}

func (b *BookingBuilder) BuildSnapshot() *shared.BookingSnapshot {
	var purpose *string
	if b.Purpose != "" {
		purpose = &b.Purpose
	}
	return &shared.BookingSnapshot{
		ID:        b.ID,
		UserID:    b.UserID,
		RoomID:    b.RoomID,
		StartTime: b.StartTime,
		EndTime:   b.EndTime,
		Purpose:   purpose,
		Status:    b.Status,
	}
}

func (b *BookingBuilder) BuildView() *queries.BookingView {
	var purpose *string
	if b.Purpose != "" {
		purpose = &b.Purpose
	}
	return &queries.BookingView{
		ID:        b.ID,
		RoomID:    b.RoomID,
		RoomName:  b.RoomName,
		UserID:    b.UserID,
		UserName:  b.UserName,
		StartTime: b.StartTime,
		EndTime:   b.EndTime,
		Purpose:   purpose,
		Status:    b.Status,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

func (b *BookingBuilder) BuildCreateRequestDTO() reqdto.CreateBookingRequest {
	var purpose *string
	if b.Purpose != "" {
		purpose = &b.Purpose
	}
	return reqdto.CreateBookingRequest{
		RoomID:    b.RoomID,
		StartTime: b.StartTime,
		EndTime:   b.EndTime,
		Purpose:   purpose,
	}
}
