package request

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	RoomID    uuid.UUID `json:"room_id" binding:"required"`
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time" binding:"required"`
	Purpose   *string   `json:"purpose,omitempty"`
}

func (r CreateBookingRequest) GetPurpose() *string {
	return trimmedPtr(r.Purpose)
}

type UpdateBookingRequest struct {
	StartTime *time.Time `json:"start_time,omitempty"`
	EndTime   *time.Time `json:"end_time,omitempty"`
	Purpose   *string    `json:"purpose,omitempty"`
}

func (r UpdateBookingRequest) GetPurpose() *string {
	return trimmedPtr(r.Purpose)
}

func trimmedPtr(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
