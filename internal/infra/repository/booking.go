// Package repository holds the write-side persistence implementations. Only
// SQL and type mapping live here; validation and policy belong to the
// usecase and domain layers.
package repository

import (
	"context"

	"coworking-backend/internal/domain/booking"
	"coworking-backend/internal/infra"
	"coworking-backend/internal/infra/db"
	"coworking-backend/internal/pkg/pgconv"
	"coworking-backend/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type BookingRepository struct {
	db db.DBTX
}

func NewBookingRepository(dbtx db.DBTX) shared.BookingRepository {
	return &BookingRepository{db: dbtx}
}

func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) (uuid.UUID, error) {
	const q = `
		INSERT INTO bookings (id, user_id, room_id, start_time, end_time, purpose, status)
		VALUES (@id, @user_id, @room_id, @start_time, @end_time, @purpose, @status)
		RETURNING id`

	args := pgx.NamedArgs{
		"id":         b.ID(),
		"user_id":    b.UserID(),
		"room_id":    b.RoomID(),
		"start_time": b.Period().Start(),
		"end_time":   b.Period().End(),
		"purpose":    purposeToDB(b.Purpose()),
		"status":     b.Status().String(),
	}

	var id uuid.UUID
	if err := r.db.QueryRow(ctx, q, args).Scan(&id); err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create booking", err)
	}
	return id, nil
}

func (r *BookingRepository) Update(ctx context.Context, b *booking.Booking) error {
	const q = `
		UPDATE bookings
		SET start_time = @start_time,
		    end_time   = @end_time,
		    purpose    = @purpose,
		    status     = @status,
		    updated_at = now()
		WHERE id = @id`

	args := pgx.NamedArgs{
		"id":         b.ID(),
		"start_time": b.Period().Start(),
		"end_time":   b.Period().End(),
		"purpose":    purposeToDB(b.Purpose()),
		"status":     b.Status().String(),
	}

	tag, err := r.db.Exec(ctx, q, args)
	if err != nil {
		return infra.WrapRepoErr("failed to update booking", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *BookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*shared.BookingSnapshot, error) {
	const q = `
		SELECT id, user_id, room_id, start_time, end_time, purpose, status
		FROM bookings
		WHERE id = @id`

	var snap shared.BookingSnapshot
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}).Scan(
		&snap.ID, &snap.UserID, &snap.RoomID,
		&snap.StartTime, &snap.EndTime, &snap.Purpose, &snap.Status,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking", err)
	}
	return &snap, nil
}

// LockRoom takes a transaction-scoped advisory lock keyed by the room id.
// It serializes the overlap check and insert for one room without blocking
// writers on other rooms.
func (r *BookingRepository) LockRoom(ctx context.Context, roomID uuid.UUID) error {
	const q = `SELECT pg_advisory_xact_lock(hashtext(@room_id::text))`

	if _, err := r.db.Exec(ctx, q, pgx.NamedArgs{"room_id": roomID}); err != nil {
		return infra.WrapRepoErr("failed to lock room", err)
	}
	return nil
}

func (r *BookingRepository) HasOverlap(ctx context.Context, roomID uuid.UUID, period booking.Period, excludeID *uuid.UUID) (bool, error) {
	const q = `
		SELECT EXISTS (
			SELECT 1
			FROM bookings
			WHERE room_id = @room_id
			  AND status = 'confirmed'
			  AND start_time < @end_time
			  AND end_time > @start_time
			  AND (@exclude_id::uuid IS NULL OR id <> @exclude_id)
		)`

	args := pgx.NamedArgs{
		"room_id":    roomID,
		"start_time": period.Start(),
		"end_time":   period.End(),
		"exclude_id": pgconv.UUIDPtrToPgtype(excludeID),
	}

	var exists bool
	if err := r.db.QueryRow(ctx, q, args).Scan(&exists); err != nil {
		return false, infra.WrapRepoErr("failed to check booking overlap", err)
	}
	return exists, nil
}

func (r *BookingRepository) CountActiveByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	const q = `
		SELECT count(*)
		FROM bookings
		WHERE user_id = @user_id
		  AND status = 'confirmed'
		  AND end_time > now()`

	var count int
	if err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"user_id": userID}).Scan(&count); err != nil {
		return 0, infra.WrapRepoErr("failed to count active bookings", err)
	}
	return count, nil
}

func purposeToDB(p booking.Purpose) *string {
	if p.IsEmpty() {
		return nil
	}
	s := p.String()
	return &s
}
