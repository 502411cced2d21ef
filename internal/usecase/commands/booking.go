package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"coworking-backend/internal/domain/booking"
	"coworking-backend/internal/infra"
	"coworking-backend/internal/pkg/clock"
	"coworking-backend/internal/pkg/errs"
	"coworking-backend/internal/pkg/patch"
	"coworking-backend/internal/pkg/permission"
	"coworking-backend/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrRoomNotFound     = errs.New("room not found")
	ErrRoomInactive     = errs.New("room is not available for booking")
	ErrBookingNotFound  = errs.New("booking not found")
	ErrBookingConflict  = errs.New("time slot conflict")
	ErrPastBooking      = errs.New("booking is in the past")
	ErrForbidden        = errs.New("not enough permissions")
	ErrDuplicateRequest = errs.New("duplicate request with different parameters")
)

type CreateBookingRequest struct {
	RoomID    uuid.UUID
	StartTime time.Time
	EndTime   time.Time
	Purpose   *string
}

type UpdateBookingRequest struct {
	StartTime *time.Time
	EndTime   *time.Time
	Purpose   *string
}

type CreateBookingResult struct {
	BookingID  uuid.UUID
	IsReplayed bool
}

type BookingCommands interface {
	Create(ctx context.Context, req CreateBookingRequest, actor shared.UserContext, idempotencyKey *uuid.UUID) (*CreateBookingResult, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateBookingRequest, actor shared.UserContext) error
	Cancel(ctx context.Context, id uuid.UUID, actor shared.UserContext) error
}

type bookingCommandsImpl struct {
	uow    shared.UnitOfWork
	policy *booking.Policy
	perms  *permission.Matrix
	clock  clock.Clock
}

func NewBookingCommands(uow shared.UnitOfWork, policy *booking.Policy, perms *permission.Matrix, clk clock.Clock) BookingCommands {
	return &bookingCommandsImpl{uow: uow, policy: policy, perms: perms, clock: clk}
}

// Create runs the full validation chain in deterministic order (window,
// operating hours, duration, quota, room, overlap) and persists the
// confirmed booking in the same transaction as the overlap check. Nothing
// is written when any check fails.
func (c *bookingCommandsImpl) Create(
	ctx context.Context,
	req CreateBookingRequest,
	actor shared.UserContext,
	idempotencyKey *uuid.UUID,
) (*CreateBookingResult, error) {
	if !c.perms.Allows(actor.Role, permission.CreateBookings) {
		return nil, ErrForbidden
	}

	now := c.clock.Now()
	if err := c.policy.ValidateWindow(now, req.StartTime, req.EndTime); err != nil {
		return nil, err
	}
	period, err := booking.NewPeriod(req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}
	purpose, err := booking.NewPurpose(patch.Coalesce(req.Purpose, ""))
	if err != nil {
		return nil, err
	}

	result := &CreateBookingResult{}
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if idempotencyKey != nil {
			replayed, derr := c.claimIdempotencyKey(ctx, tx, *idempotencyKey, actor.ID, req, now, result)
			if derr != nil || replayed {
				return derr
			}
		}

		activeCount, derr := tx.Bookings().CountActiveByUser(ctx, actor.ID)
		if derr != nil {
			return derr
		}
		if derr := c.policy.ValidateQuota(activeCount); derr != nil {
			return derr
		}

		roomEntity, derr := tx.Rooms().FindByID(ctx, req.RoomID)
		if derr != nil {
			if infra.IsKind(derr, infra.KindNotFound) {
				return ErrRoomNotFound
			}
			return derr
		}
		if !roomEntity.IsActive() {
			return ErrRoomInactive
		}

		// Serialize the check-then-insert against concurrent writers for the
		// same room; the exclusion constraint is the backstop.
		if derr := tx.Bookings().LockRoom(ctx, req.RoomID); derr != nil {
			return derr
		}
		conflicts, derr := tx.Bookings().HasOverlap(ctx, req.RoomID, period, nil)
		if derr != nil {
			return derr
		}
		if conflicts {
			return ErrBookingConflict
		}

		entity := booking.NewBooking(actor.ID, req.RoomID, period, purpose)
		id, derr := tx.Bookings().Create(ctx, entity)
		if derr != nil {
			if infra.IsKind(derr, infra.KindConflict) {
				return ErrBookingConflict
			}
			return derr
		}
		result.BookingID = id

		if idempotencyKey != nil {
			return tx.Idempotency().MarkCompleted(ctx, *idempotencyKey, actor.ID, id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (c *bookingCommandsImpl) Update(
	ctx context.Context,
	id uuid.UUID,
	req UpdateBookingRequest,
	actor shared.UserContext,
) error {
	now := c.clock.Now()

	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := c.loadBooking(ctx, tx, id)
		if err != nil {
			return err
		}
		if !c.perms.AllowsOnOwned(actor.Role, snap.UserID == actor.ID, permission.EditOwnBookings, permission.EditAllBookings) {
			return ErrForbidden
		}
		if snap.StartTime.Before(now) {
			return ErrPastBooking
		}

		start := patch.Coalesce(req.StartTime, snap.StartTime)
		end := patch.Coalesce(req.EndTime, snap.EndTime)
		if err := c.policy.ValidateWindow(now, start, end); err != nil {
			return err
		}
		period, err := booking.NewPeriod(start, end)
		if err != nil {
			return err
		}
		purposeText := patch.Coalesce(req.Purpose, patch.Coalesce(snap.Purpose, ""))
		purpose, err := booking.NewPurpose(purposeText)
		if err != nil {
			return err
		}

		entity, err := reconstructFromSnapshot(snap)
		if err != nil {
			return err
		}
		if err := entity.Reschedule(period, purpose); err != nil {
			return err
		}

		if err := tx.Bookings().LockRoom(ctx, snap.RoomID); err != nil {
			return err
		}
		conflicts, err := tx.Bookings().HasOverlap(ctx, snap.RoomID, period, &id)
		if err != nil {
			return err
		}
		if conflicts {
			return ErrBookingConflict
		}

		if err := tx.Bookings().Update(ctx, entity); err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return ErrBookingConflict
			}
			return err
		}
		return nil
	})
}

// Cancel enforces the full cancellation policy, including the minimum lead
// time before start. Cancelled is terminal; the booking stops counting for
// overlap checks and quota the moment the transaction commits.
func (c *bookingCommandsImpl) Cancel(ctx context.Context, id uuid.UUID, actor shared.UserContext) error {
	now := c.clock.Now()

	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := c.loadBooking(ctx, tx, id)
		if err != nil {
			return err
		}
		if !c.perms.AllowsOnOwned(actor.Role, snap.UserID == actor.ID, permission.CancelOwnBookings, permission.CancelAllBookings) {
			return ErrForbidden
		}

		if err := c.policy.ValidateCancellation(snap.StartTime, now); err != nil {
			return err
		}

		entity, err := reconstructFromSnapshot(snap)
		if err != nil {
			return err
		}
		if err := entity.Cancel(); err != nil {
			return err
		}
		return tx.Bookings().Update(ctx, entity)
	})
}

func (c *bookingCommandsImpl) loadBooking(ctx context.Context, tx shared.Tx, id uuid.UUID) (*shared.BookingSnapshot, error) {
	snap, err := tx.Bookings().FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return snap, nil
}

// claimIdempotencyKey returns replayed=true when the key already completed;
// the original booking id is written into result. A reused key with a
// different payload is rejected. Records past their expiry no longer replay
// or block; the request runs as a fresh one and overwrites them.
func (c *bookingCommandsImpl) claimIdempotencyKey(
	ctx context.Context,
	tx shared.Tx,
	key, userID uuid.UUID,
	req CreateBookingRequest,
	now time.Time,
	result *CreateBookingResult,
) (bool, error) {
	requestHash := calculateRequestHash(req)
	expiresAt := now.Add(24 * time.Hour)

	if err := tx.Idempotency().TryInsert(ctx, key, userID, "POST /api/bookings", requestHash, expiresAt); err != nil {
		return false, err
	}
	record, err := tx.Idempotency().Get(ctx, key, userID)
	if err != nil {
		return false, err
	}
	if !now.Before(record.ExpiresAt) {
		return false, nil
	}
	if record.RequestHash != requestHash {
		return false, ErrDuplicateRequest
	}
	if record.Status == "completed" && record.ResultBookingID != nil {
		result.BookingID = *record.ResultBookingID
		result.IsReplayed = true
		return true, nil
	}
	return false, nil
}

func reconstructFromSnapshot(snap *shared.BookingSnapshot) (*booking.Booking, error) {
	period, err := booking.NewPeriod(snap.StartTime, snap.EndTime)
	if err != nil {
		return nil, err
	}
	purpose, err := booking.NewPurpose(patch.Coalesce(snap.Purpose, ""))
	if err != nil {
		return nil, err
	}
	return booking.ReconstructBooking(
		snap.ID, snap.UserID, snap.RoomID,
		period, purpose, booking.Status(snap.Status),
		time.Time{}, time.Time{},
	)
}

func calculateRequestHash(req CreateBookingRequest) string {
	data, _ := json.Marshal(req)
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
