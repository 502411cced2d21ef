//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"coworking-backend/internal/domain/booking"
	"coworking-backend/internal/domain/room"
	"coworking-backend/internal/domain/user"
	"coworking-backend/internal/infra"
	"coworking-backend/internal/pkg/clock"
	"coworking-backend/internal/pkg/permission"
	"coworking-backend/internal/usecase/commands"
	"coworking-backend/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// In-memory transaction fakes. Each repo method is a function field so a
// test overrides exactly the calls it cares about; unset methods succeed
// with zero values.

type fakeUow struct {
	tx *fakeTx
}

func (u *fakeUow) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return fn(ctx, u.tx)
}

type fakeTx struct {
	bookings  *fakeBookingRepo
	rooms     *fakeRoomRepo
	users     *fakeUserRepo
	visits    *fakeVisitRepo
	donations *fakeDonationRepo
	idem      *fakeIdempotencyRepo
}

func (t *fakeTx) Bookings() shared.BookingRepository        { return t.bookings }
func (t *fakeTx) Rooms() shared.RoomRepository              { return t.rooms }
func (t *fakeTx) Users() shared.UserRepository              { return t.users }
func (t *fakeTx) Visits() shared.VisitRepository            { return t.visits }
func (t *fakeTx) Donations() shared.DonationRepository      { return t.donations }
func (t *fakeTx) Idempotency() shared.IdempotencyRepository { return t.idem }

type fakeBookingRepo struct {
	createFn     func(b *booking.Booking) (uuid.UUID, error)
	updateFn     func(b *booking.Booking) error
	findByIDFn   func(id uuid.UUID) (*shared.BookingSnapshot, error)
	lockRoomFn   func(roomID uuid.UUID) error
	hasOverlapFn func(roomID uuid.UUID, period booking.Period, excludeID *uuid.UUID) (bool, error)
	countFn      func(userID uuid.UUID) (int, error)

	lockedRooms []uuid.UUID
	created     []*booking.Booking
	updated     []*booking.Booking
}

func (r *fakeBookingRepo) Create(_ context.Context, b *booking.Booking) (uuid.UUID, error) {
	r.created = append(r.created, b)
	if r.createFn != nil {
		return r.createFn(b)
	}
	return b.ID(), nil
}

func (r *fakeBookingRepo) Update(_ context.Context, b *booking.Booking) error {
	r.updated = append(r.updated, b)
	if r.updateFn != nil {
		return r.updateFn(b)
	}
	return nil
}

func (r *fakeBookingRepo) FindByID(_ context.Context, id uuid.UUID) (*shared.BookingSnapshot, error) {
	if r.findByIDFn != nil {
		return r.findByIDFn(id)
	}
	return nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
}

func (r *fakeBookingRepo) LockRoom(_ context.Context, roomID uuid.UUID) error {
	r.lockedRooms = append(r.lockedRooms, roomID)
	if r.lockRoomFn != nil {
		return r.lockRoomFn(roomID)
	}
	return nil
}

func (r *fakeBookingRepo) HasOverlap(_ context.Context, roomID uuid.UUID, period booking.Period, excludeID *uuid.UUID) (bool, error) {
	if r.hasOverlapFn != nil {
		return r.hasOverlapFn(roomID, period, excludeID)
	}
	return false, nil
}

func (r *fakeBookingRepo) CountActiveByUser(_ context.Context, userID uuid.UUID) (int, error) {
	if r.countFn != nil {
		return r.countFn(userID)
	}
	return 0, nil
}

type fakeRoomRepo struct {
	createFn   func(r *room.Room) (uuid.UUID, error)
	updateFn   func(r *room.Room) error
	findByIDFn func(id uuid.UUID) (*room.Room, error)

	updated []*room.Room
}

func (r *fakeRoomRepo) Create(_ context.Context, entity *room.Room) (uuid.UUID, error) {
	if r.createFn != nil {
		return r.createFn(entity)
	}
	return entity.ID(), nil
}

func (r *fakeRoomRepo) Update(_ context.Context, entity *room.Room) error {
	r.updated = append(r.updated, entity)
	if r.updateFn != nil {
		return r.updateFn(entity)
	}
	return nil
}

func (r *fakeRoomRepo) FindByID(_ context.Context, id uuid.UUID) (*room.Room, error) {
	if r.findByIDFn != nil {
		return r.findByIDFn(id)
	}
	return nil, infra.WrapRepoErr("room not found", nil, infra.KindNotFound)
}

type fakeIdempotencyRepo struct {
	tryInsertFn     func(key, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) error
	getFn           func(key, userID uuid.UUID) (*shared.IdempotencyRecord, error)
	markCompletedFn func(key, userID, resultBookingID uuid.UUID) error

	completed []uuid.UUID
}

func (r *fakeIdempotencyRepo) TryInsert(_ context.Context, key, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) error {
	if r.tryInsertFn != nil {
		return r.tryInsertFn(key, userID, endpoint, requestHash, expiresAt)
	}
	return nil
}

func (r *fakeIdempotencyRepo) Get(_ context.Context, key, userID uuid.UUID) (*shared.IdempotencyRecord, error) {
	if r.getFn != nil {
		return r.getFn(key, userID)
	}
	return nil, infra.WrapRepoErr("idempotency key not found", nil, infra.KindNotFound)
}

func (r *fakeIdempotencyRepo) MarkCompleted(_ context.Context, key, userID, resultBookingID uuid.UUID) error {
	r.completed = append(r.completed, resultBookingID)
	if r.markCompletedFn != nil {
		return r.markCompletedFn(key, userID, resultBookingID)
	}
	return nil
}

type bookingFixture struct {
	cmd      commands.BookingCommands
	bookings *fakeBookingRepo
	rooms    *fakeRoomRepo
	idem     *fakeIdempotencyRepo
	clock    *clock.MockClock
	actor    shared.UserContext
	roomID   uuid.UUID
}

func newBookingFixture(t *testing.T) *bookingFixture {
	t.Helper()
	now := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	roomID := uuid.New()

	activeRoom, err := room.NewRoom("Study Room A", 6, "", "")
	require.NoError(t, err)

	f := &bookingFixture{
		bookings: &fakeBookingRepo{},
		rooms: &fakeRoomRepo{
			findByIDFn: func(id uuid.UUID) (*room.Room, error) {
				if id == roomID {
					return activeRoom, nil
				}
				return nil, infra.WrapRepoErr("room not found", nil, infra.KindNotFound)
			},
		},
		idem:   &fakeIdempotencyRepo{},
		clock:  clock.NewMockClock(now),
		actor:  shared.UserContext{ID: uuid.New(), Role: user.RoleUser},
		roomID: roomID,
	}
	uow := &fakeUow{tx: &fakeTx{bookings: f.bookings, rooms: f.rooms, idem: f.idem}}
	f.cmd = commands.NewBookingCommands(uow, booking.DefaultPolicy(), permission.NewMatrix(), f.clock)
	return f
}

func (f *bookingFixture) createRequest() commands.CreateBookingRequest {
	return commands.CreateBookingRequest{
		RoomID:    f.roomID,
		StartTime: time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC),
	}
}

func TestBookingCommandsCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("valid request creates a confirmed booking", func(t *testing.T) {
		f := newBookingFixture(t)

		result, err := f.cmd.Create(ctx, f.createRequest(), f.actor, nil)
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, result.BookingID)
		assert.False(t, result.IsReplayed)

		require.Len(t, f.bookings.created, 1)
		assert.Equal(t, booking.StatusConfirmed, f.bookings.created[0].Status())
		assert.Equal(t, []uuid.UUID{f.roomID}, f.bookings.lockedRooms)
	})

	t.Run("start in the past", func(t *testing.T) {
		f := newBookingFixture(t)
		req := f.createRequest()
		req.StartTime = f.clock.Now().Add(-time.Hour)

		_, err := f.cmd.Create(ctx, req, f.actor, nil)
		assert.ErrorIs(t, err, booking.ErrPastStart)
		assert.Empty(t, f.bookings.created)
	})

	t.Run("window outside operating hours", func(t *testing.T) {
		f := newBookingFixture(t)
		req := f.createRequest()
		req.StartTime = time.Date(2026, 3, 10, 20, 0, 0, 0, time.UTC)
		req.EndTime = time.Date(2026, 3, 10, 22, 0, 0, 0, time.UTC)

		_, err := f.cmd.Create(ctx, req, f.actor, nil)
		assert.ErrorIs(t, err, booking.ErrOutsideOperatingHours)
	})

	t.Run("unknown room", func(t *testing.T) {
		f := newBookingFixture(t)
		req := f.createRequest()
		req.RoomID = uuid.New()

		_, err := f.cmd.Create(ctx, req, f.actor, nil)
		assert.ErrorIs(t, err, commands.ErrRoomNotFound)
	})

	t.Run("inactive room", func(t *testing.T) {
		f := newBookingFixture(t)
		inactive, err := room.NewRoom("Closed Room", 4, "", "")
		require.NoError(t, err)
		inactive.Deactivate()
		f.rooms.findByIDFn = func(uuid.UUID) (*room.Room, error) { return inactive, nil }

		_, err = f.cmd.Create(ctx, f.createRequest(), f.actor, nil)
		assert.ErrorIs(t, err, commands.ErrRoomInactive)
	})

	t.Run("quota exhausted", func(t *testing.T) {
		f := newBookingFixture(t)
		f.bookings.countFn = func(uuid.UUID) (int, error) { return 3, nil }

		_, err := f.cmd.Create(ctx, f.createRequest(), f.actor, nil)
		assert.ErrorIs(t, err, booking.ErrQuotaExceeded)
		assert.Empty(t, f.bookings.created)
	})

	t.Run("quota failure wins over an unknown room", func(t *testing.T) {
		f := newBookingFixture(t)
		f.bookings.countFn = func(uuid.UUID) (int, error) { return 3, nil }
		req := f.createRequest()
		req.RoomID = uuid.New()

		_, err := f.cmd.Create(ctx, req, f.actor, nil)
		assert.ErrorIs(t, err, booking.ErrQuotaExceeded)
	})

	t.Run("overlapping booking", func(t *testing.T) {
		f := newBookingFixture(t)
		f.bookings.hasOverlapFn = func(uuid.UUID, booking.Period, *uuid.UUID) (bool, error) { return true, nil }

		_, err := f.cmd.Create(ctx, f.createRequest(), f.actor, nil)
		assert.ErrorIs(t, err, commands.ErrBookingConflict)
		assert.Empty(t, f.bookings.created)
	})

	t.Run("exclusion constraint race maps to conflict", func(t *testing.T) {
		f := newBookingFixture(t)
		f.bookings.createFn = func(*booking.Booking) (uuid.UUID, error) {
			return uuid.Nil, infra.WrapRepoErr("insert booking", nil, infra.KindConflict)
		}

		_, err := f.cmd.Create(ctx, f.createRequest(), f.actor, nil)
		assert.ErrorIs(t, err, commands.ErrBookingConflict)
	})
}

func TestBookingCommandsCreateIdempotency(t *testing.T) {
	ctx := context.Background()

	t.Run("fresh key writes and completes", func(t *testing.T) {
		f := newBookingFixture(t)
		key := uuid.New()
		var insertedHash string
		f.idem.tryInsertFn = func(_, _ uuid.UUID, _, requestHash string, _ time.Time) error {
			insertedHash = requestHash
			return nil
		}
		f.idem.getFn = func(k, u uuid.UUID) (*shared.IdempotencyRecord, error) {
			return &shared.IdempotencyRecord{
				Key: k, UserID: u,
				Status:      "processing",
				RequestHash: insertedHash,
				ExpiresAt:   f.clock.Now().Add(24 * time.Hour),
			}, nil
		}

		result, err := f.cmd.Create(ctx, f.createRequest(), f.actor, &key)
		require.NoError(t, err)
		assert.False(t, result.IsReplayed)
		require.Len(t, f.idem.completed, 1)
		assert.Equal(t, result.BookingID, f.idem.completed[0])
	})

	t.Run("completed key replays the original booking", func(t *testing.T) {
		f := newBookingFixture(t)
		key := uuid.New()
		originalID := uuid.New()
		var insertedHash string
		f.idem.tryInsertFn = func(_, _ uuid.UUID, _, requestHash string, _ time.Time) error {
			insertedHash = requestHash
			return nil
		}
		f.idem.getFn = func(k, u uuid.UUID) (*shared.IdempotencyRecord, error) {
			return &shared.IdempotencyRecord{
				Key: k, UserID: u,
				Status:          "completed",
				RequestHash:     insertedHash,
				ResultBookingID: &originalID,
				ExpiresAt:       f.clock.Now().Add(24 * time.Hour),
			}, nil
		}

		result, err := f.cmd.Create(ctx, f.createRequest(), f.actor, &key)
		require.NoError(t, err)
		assert.True(t, result.IsReplayed)
		assert.Equal(t, originalID, result.BookingID)
		assert.Empty(t, f.bookings.created)
	})

	t.Run("reused key with different payload rejected", func(t *testing.T) {
		f := newBookingFixture(t)
		key := uuid.New()
		f.idem.getFn = func(k, u uuid.UUID) (*shared.IdempotencyRecord, error) {
			return &shared.IdempotencyRecord{
				Key: k, UserID: u,
				Status:      "processing",
				RequestHash: "some-other-hash",
				ExpiresAt:   f.clock.Now().Add(24 * time.Hour),
			}, nil
		}

		_, err := f.cmd.Create(ctx, f.createRequest(), f.actor, &key)
		assert.ErrorIs(t, err, commands.ErrDuplicateRequest)
		assert.Empty(t, f.bookings.created)
	})

	t.Run("expired completed key runs as a fresh request", func(t *testing.T) {
		f := newBookingFixture(t)
		key := uuid.New()
		staleID := uuid.New()
		f.idem.getFn = func(k, u uuid.UUID) (*shared.IdempotencyRecord, error) {
			return &shared.IdempotencyRecord{
				Key: k, UserID: u,
				Status:          "completed",
				RequestHash:     "hash-from-an-old-payload",
				ResultBookingID: &staleID,
				ExpiresAt:       f.clock.Now().Add(-time.Hour),
			}, nil
		}

		result, err := f.cmd.Create(ctx, f.createRequest(), f.actor, &key)
		require.NoError(t, err)
		assert.False(t, result.IsReplayed)
		assert.NotEqual(t, staleID, result.BookingID)
		require.Len(t, f.bookings.created, 1)
	})
}

func confirmedSnapshot(userID, roomID uuid.UUID, start time.Time) *shared.BookingSnapshot {
	return &shared.BookingSnapshot{
		ID:        uuid.New(),
		UserID:    userID,
		RoomID:    roomID,
		StartTime: start,
		EndTime:   start.Add(2 * time.Hour),
		Status:    "confirmed",
	}
}

func TestBookingCommandsCancel(t *testing.T) {
	ctx := context.Background()

	t.Run("owner cancels with enough lead time", func(t *testing.T) {
		f := newBookingFixture(t)
		snap := confirmedSnapshot(f.actor.ID, f.roomID, f.clock.Now().Add(4*time.Hour))
		f.bookings.findByIDFn = func(uuid.UUID) (*shared.BookingSnapshot, error) { return snap, nil }

		require.NoError(t, f.cmd.Cancel(ctx, snap.ID, f.actor))
		require.Len(t, f.bookings.updated, 1)
		assert.Equal(t, booking.StatusCancelled, f.bookings.updated[0].Status())
	})

	t.Run("too close to start", func(t *testing.T) {
		f := newBookingFixture(t)
		snap := confirmedSnapshot(f.actor.ID, f.roomID, f.clock.Now().Add(time.Hour))
		f.bookings.findByIDFn = func(uuid.UUID) (*shared.BookingSnapshot, error) { return snap, nil }

		err := f.cmd.Cancel(ctx, snap.ID, f.actor)
		assert.ErrorIs(t, err, booking.ErrTooCloseToStart)
		assert.Empty(t, f.bookings.updated)
	})

	t.Run("another user's booking is forbidden", func(t *testing.T) {
		f := newBookingFixture(t)
		snap := confirmedSnapshot(uuid.New(), f.roomID, f.clock.Now().Add(4*time.Hour))
		f.bookings.findByIDFn = func(uuid.UUID) (*shared.BookingSnapshot, error) { return snap, nil }

		assert.ErrorIs(t, f.cmd.Cancel(ctx, snap.ID, f.actor), commands.ErrForbidden)
	})

	t.Run("admin cancels any booking", func(t *testing.T) {
		f := newBookingFixture(t)
		snap := confirmedSnapshot(uuid.New(), f.roomID, f.clock.Now().Add(4*time.Hour))
		f.bookings.findByIDFn = func(uuid.UUID) (*shared.BookingSnapshot, error) { return snap, nil }
		admin := shared.UserContext{ID: uuid.New(), Role: user.RoleAdmin}

		require.NoError(t, f.cmd.Cancel(ctx, snap.ID, admin))
	})

	t.Run("already cancelled booking", func(t *testing.T) {
		f := newBookingFixture(t)
		snap := confirmedSnapshot(f.actor.ID, f.roomID, f.clock.Now().Add(4*time.Hour))
		snap.Status = "cancelled"
		f.bookings.findByIDFn = func(uuid.UUID) (*shared.BookingSnapshot, error) { return snap, nil }

		assert.ErrorIs(t, f.cmd.Cancel(ctx, snap.ID, f.actor), booking.ErrNotConfirmed)
	})

	t.Run("missing booking", func(t *testing.T) {
		f := newBookingFixture(t)
		assert.ErrorIs(t, f.cmd.Cancel(ctx, uuid.New(), f.actor), commands.ErrBookingNotFound)
	})
}

func TestBookingCommandsUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("owner moves the window", func(t *testing.T) {
		f := newBookingFixture(t)
		snap := confirmedSnapshot(f.actor.ID, f.roomID, f.clock.Now().Add(3*time.Hour))
		f.bookings.findByIDFn = func(uuid.UUID) (*shared.BookingSnapshot, error) { return snap, nil }

		newStart := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
		newEnd := time.Date(2026, 3, 10, 16, 0, 0, 0, time.UTC)
		err := f.cmd.Update(ctx, snap.ID, commands.UpdateBookingRequest{StartTime: &newStart, EndTime: &newEnd}, f.actor)
		require.NoError(t, err)

		require.Len(t, f.bookings.updated, 1)
		assert.Equal(t, newStart, f.bookings.updated[0].Period().Start())
	})

	t.Run("revalidation excludes the booking itself", func(t *testing.T) {
		f := newBookingFixture(t)
		snap := confirmedSnapshot(f.actor.ID, f.roomID, f.clock.Now().Add(3*time.Hour))
		f.bookings.findByIDFn = func(uuid.UUID) (*shared.BookingSnapshot, error) { return snap, nil }

		var gotExclude *uuid.UUID
		f.bookings.hasOverlapFn = func(_ uuid.UUID, _ booking.Period, excludeID *uuid.UUID) (bool, error) {
			gotExclude = excludeID
			return false, nil
		}

		require.NoError(t, f.cmd.Update(ctx, snap.ID, commands.UpdateBookingRequest{}, f.actor))
		require.NotNil(t, gotExclude)
		assert.Equal(t, snap.ID, *gotExclude)
	})

	t.Run("started booking rejects changes", func(t *testing.T) {
		f := newBookingFixture(t)
		snap := confirmedSnapshot(f.actor.ID, f.roomID, f.clock.Now().Add(-time.Hour))
		f.bookings.findByIDFn = func(uuid.UUID) (*shared.BookingSnapshot, error) { return snap, nil }

		err := f.cmd.Update(ctx, snap.ID, commands.UpdateBookingRequest{}, f.actor)
		assert.ErrorIs(t, err, commands.ErrPastBooking)
	})

	t.Run("new window conflicting rejected", func(t *testing.T) {
		f := newBookingFixture(t)
		snap := confirmedSnapshot(f.actor.ID, f.roomID, f.clock.Now().Add(3*time.Hour))
		f.bookings.findByIDFn = func(uuid.UUID) (*shared.BookingSnapshot, error) { return snap, nil }
		f.bookings.hasOverlapFn = func(uuid.UUID, booking.Period, *uuid.UUID) (bool, error) { return true, nil }

		err := f.cmd.Update(ctx, snap.ID, commands.UpdateBookingRequest{}, f.actor)
		assert.ErrorIs(t, err, commands.ErrBookingConflict)
		assert.Empty(t, f.bookings.updated)
	})

	t.Run("non-owner without grant", func(t *testing.T) {
		f := newBookingFixture(t)
		snap := confirmedSnapshot(uuid.New(), f.roomID, f.clock.Now().Add(3*time.Hour))
		f.bookings.findByIDFn = func(uuid.UUID) (*shared.BookingSnapshot, error) { return snap, nil }

		err := f.cmd.Update(ctx, snap.ID, commands.UpdateBookingRequest{}, f.actor)
		assert.ErrorIs(t, err, commands.ErrForbidden)
	})
}
