package shared

import (
	"context"
	"time"

	"coworking-backend/internal/domain/booking"
	"coworking-backend/internal/domain/room"
	"coworking-backend/internal/domain/user"

	"github.com/google/uuid"
)

// UnitOfWork scopes every write to one transaction. The booking flow relies
// on this: "read confirmed bookings for room R, then insert" must be atomic
// per room, or two callers both pass the overlap check.
type UnitOfWork interface {
	// Within: Full transaction for write operations with retry on
	// serialization failures
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

// Tx exposes the repositories bound to the running transaction.
type Tx interface {
	Bookings() BookingRepository
	Rooms() RoomRepository
	Users() UserRepository
	Visits() VisitRepository
	Donations() DonationRepository
	Idempotency() IdempotencyRepository
}

type BookingRepository interface {
	Create(ctx context.Context, b *booking.Booking) (uuid.UUID, error)
	Update(ctx context.Context, b *booking.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*BookingSnapshot, error)
	// LockRoom serializes concurrent booking writes per room for the rest of
	// the transaction. Rooms are independent; no cross-room ordering exists.
	LockRoom(ctx context.Context, roomID uuid.UUID) error
	// HasOverlap reports whether any confirmed booking for the room overlaps
	// the half-open candidate period, skipping excludeID when revalidating an
	// update of the same booking.
	HasOverlap(ctx context.Context, roomID uuid.UUID, period booking.Period, excludeID *uuid.UUID) (bool, error)
	CountActiveByUser(ctx context.Context, userID uuid.UUID) (int, error)
}

type RoomRepository interface {
	Create(ctx context.Context, r *room.Room) (uuid.UUID, error)
	Update(ctx context.Context, r *room.Room) error
	FindByID(ctx context.Context, id uuid.UUID) (*room.Room, error)
}

type UserRepository interface {
	Create(ctx context.Context, u *user.User) (uuid.UUID, error)
	FindAuthByEmail(ctx context.Context, email string) (*AuthSnapshot, error)
	AddKarma(ctx context.Context, userID uuid.UUID, delta int) error
	AddDonatedTotal(ctx context.Context, userID uuid.UUID, amount float64) error
}

type VisitRepository interface {
	CheckIn(ctx context.Context, userID uuid.UUID, at time.Time) (uuid.UUID, error)
	FindByID(ctx context.Context, id uuid.UUID) (*VisitSnapshot, error)
	FindOpenByUser(ctx context.Context, userID uuid.UUID) (*VisitSnapshot, error)
	Complete(ctx context.Context, id uuid.UUID, checkOut time.Time, durationMinutes int) error
}

type DonationRepository interface {
	Create(ctx context.Context, params CreateDonationParams, at time.Time) (uuid.UUID, error)
}

type IdempotencyRepository interface {
	// TryInsert claims the key; it is a no-op when the key already exists.
	TryInsert(ctx context.Context, key, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) error
	Get(ctx context.Context, key, userID uuid.UUID) (*IdempotencyRecord, error)
	MarkCompleted(ctx context.Context, key, userID uuid.UUID, resultBookingID uuid.UUID) error
}
