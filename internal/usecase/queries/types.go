package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type RoomView struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Capacity    int32     `json:"capacity"`
	Equipment   string    `json:"equipment"`
	Description string    `json:"description"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type BookingView struct {
	ID        uuid.UUID `json:"id"`
	RoomID    uuid.UUID `json:"room_id"`
	RoomName  string    `json:"room_name"`
	UserID    uuid.UUID `json:"user_id"`
	UserName  string    `json:"user_name"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Purpose   *string   `json:"purpose,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type SlotView struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type AvailabilityView struct {
	RoomID   uuid.UUID  `json:"room_id"`
	RoomName string     `json:"room_name"`
	Date     string     `json:"date"`
	Slots    []SlotView `json:"available_slots"`
}

type UserView struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	FullName     string    `json:"full_name"`
	Role         string    `json:"role"`
	IsActive     bool      `json:"is_active"`
	Karma        int32     `json:"karma"`
	TotalDonated float64   `json:"total_donated"`
	CreatedAt    time.Time `json:"created_at"`
}

type VisitView struct {
	ID              uuid.UUID  `json:"id"`
	UserID          uuid.UUID  `json:"user_id"`
	CheckIn         time.Time  `json:"check_in"`
	CheckOut        *time.Time `json:"check_out,omitempty"`
	DurationMinutes int32      `json:"duration_minutes"`
}

type DonationView struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	UserName    *string   `json:"user_name,omitempty"`
	Amount      float64   `json:"amount"`
	Message     *string   `json:"message,omitempty"`
	IsAnonymous bool      `json:"is_anonymous"`
	DonatedAt   time.Time `json:"donated_at"`
}
