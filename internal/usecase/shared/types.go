package shared

import (
	"time"

	"coworking-backend/internal/domain/user"

	"github.com/google/uuid"
)

// UserContext identifies the authenticated caller. It is built by the
// handler layer from verified token claims and passed explicitly through
// every command and query; nothing downstream reads auth state from
// globals or request contexts.
type UserContext struct {
	ID   uuid.UUID
	Role user.Role
}

func (u UserContext) IsAdmin() bool {
	return u.Role == user.RoleAdmin
}

// Write-side snapshots keep commands off the read-side view types.
type RoomSnapshot struct {
	ID       uuid.UUID
	Name     string
	Capacity int
	IsActive bool
}

type BookingSnapshot struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	RoomID    uuid.UUID
	StartTime time.Time
	EndTime   time.Time
	Purpose   *string
	Status    string
}

type VisitSnapshot struct {
	ID       uuid.UUID
	UserID   uuid.UUID
	CheckIn  time.Time
	CheckOut *time.Time
}

type AuthSnapshot struct {
	ID             uuid.UUID
	Email          string
	HashedPassword string
	FullName       string
	Role           string
	IsActive       bool
}

type IdempotencyRecord struct {
	Key             uuid.UUID
	UserID          uuid.UUID
	Status          string
	RequestHash     string
	ResultBookingID *uuid.UUID
	ExpiresAt       time.Time
}

type CreateDonationParams struct {
	UserID      uuid.UUID
	Amount      float64
	Message     *string
	IsAnonymous bool
}
