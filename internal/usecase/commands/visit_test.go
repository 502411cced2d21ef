//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

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

type fakeUserRepo struct {
	addKarmaFn        func(userID uuid.UUID, delta int) error
	addDonatedTotalFn func(userID uuid.UUID, amount float64) error

	karmaGrants  map[uuid.UUID]int
	donatedTotal map[uuid.UUID]float64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		karmaGrants:  make(map[uuid.UUID]int),
		donatedTotal: make(map[uuid.UUID]float64),
	}
}

func (r *fakeUserRepo) Create(_ context.Context, _ *user.User) (uuid.UUID, error) {
	return uuid.Nil, nil
}

func (r *fakeUserRepo) FindAuthByEmail(_ context.Context, _ string) (*shared.AuthSnapshot, error) {
	return nil, infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
}

func (r *fakeUserRepo) AddKarma(_ context.Context, userID uuid.UUID, delta int) error {
	r.karmaGrants[userID] += delta
	if r.addKarmaFn != nil {
		return r.addKarmaFn(userID, delta)
	}
	return nil
}

func (r *fakeUserRepo) AddDonatedTotal(_ context.Context, userID uuid.UUID, amount float64) error {
	r.donatedTotal[userID] += amount
	if r.addDonatedTotalFn != nil {
		return r.addDonatedTotalFn(userID, amount)
	}
	return nil
}

type fakeVisitRepo struct {
	checkInFn        func(userID uuid.UUID, at time.Time) (uuid.UUID, error)
	findOpenByUserFn func(userID uuid.UUID) (*shared.VisitSnapshot, error)
	completeFn       func(id uuid.UUID, checkOut time.Time, durationMinutes int) error

	completedDurations []int
}

func (r *fakeVisitRepo) CheckIn(_ context.Context, userID uuid.UUID, at time.Time) (uuid.UUID, error) {
	if r.checkInFn != nil {
		return r.checkInFn(userID, at)
	}
	return uuid.New(), nil
}

func (r *fakeVisitRepo) FindByID(_ context.Context, _ uuid.UUID) (*shared.VisitSnapshot, error) {
	return nil, infra.WrapRepoErr("visit not found", nil, infra.KindNotFound)
}

func (r *fakeVisitRepo) FindOpenByUser(_ context.Context, userID uuid.UUID) (*shared.VisitSnapshot, error) {
	if r.findOpenByUserFn != nil {
		return r.findOpenByUserFn(userID)
	}
	return nil, infra.WrapRepoErr("open visit not found", nil, infra.KindNotFound)
}

func (r *fakeVisitRepo) Complete(_ context.Context, id uuid.UUID, checkOut time.Time, durationMinutes int) error {
	r.completedDurations = append(r.completedDurations, durationMinutes)
	if r.completeFn != nil {
		return r.completeFn(id, checkOut, durationMinutes)
	}
	return nil
}

type visitFixture struct {
	cmd    commands.VisitCommands
	visits *fakeVisitRepo
	users  *fakeUserRepo
	clock  *clock.MockClock
	actor  shared.UserContext
}

func newVisitFixture(t *testing.T) *visitFixture {
	t.Helper()
	f := &visitFixture{
		visits: &fakeVisitRepo{},
		users:  newFakeUserRepo(),
		clock:  clock.NewMockClock(time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)),
		actor:  shared.UserContext{ID: uuid.New(), Role: user.RoleUser},
	}
	uow := &fakeUow{tx: &fakeTx{visits: f.visits, users: f.users}}
	f.cmd = commands.NewVisitCommands(uow, permission.NewMatrix(), f.clock)
	return f
}

func TestVisitCommandsCheckIn(t *testing.T) {
	ctx := context.Background()

	t.Run("opens a visit when none exists", func(t *testing.T) {
		f := newVisitFixture(t)
		visitID := uuid.New()
		f.visits.checkInFn = func(userID uuid.UUID, at time.Time) (uuid.UUID, error) {
			assert.Equal(t, f.actor.ID, userID)
			assert.Equal(t, f.clock.Now(), at)
			return visitID, nil
		}

		id, err := f.cmd.CheckIn(ctx, f.actor)
		require.NoError(t, err)
		assert.Equal(t, visitID, id)
	})

	t.Run("second check-in without check-out rejected", func(t *testing.T) {
		f := newVisitFixture(t)
		f.visits.findOpenByUserFn = func(userID uuid.UUID) (*shared.VisitSnapshot, error) {
			return &shared.VisitSnapshot{ID: uuid.New(), UserID: userID, CheckIn: f.clock.Now().Add(-time.Hour)}, nil
		}

		_, err := f.cmd.CheckIn(ctx, f.actor)
		assert.ErrorIs(t, err, commands.ErrAlreadyCheckedIn)
	})
}

func TestVisitCommandsCheckOut(t *testing.T) {
	ctx := context.Background()

	t.Run("closes the open visit and grants karma", func(t *testing.T) {
		f := newVisitFixture(t)
		visitID := uuid.New()
		f.visits.findOpenByUserFn = func(userID uuid.UUID) (*shared.VisitSnapshot, error) {
			return &shared.VisitSnapshot{ID: visitID, UserID: userID, CheckIn: f.clock.Now().Add(-90 * time.Minute)}, nil
		}

		result, err := f.cmd.CheckOut(ctx, f.actor)
		require.NoError(t, err)
		assert.Equal(t, visitID, result.VisitID)
		assert.Equal(t, 90, result.DurationMinutes)
		assert.Equal(t, []int{90}, f.visits.completedDurations)
		assert.Equal(t, 1, f.users.karmaGrants[f.actor.ID])
	})

	t.Run("no open visit", func(t *testing.T) {
		f := newVisitFixture(t)

		_, err := f.cmd.CheckOut(ctx, f.actor)
		assert.ErrorIs(t, err, commands.ErrNoOpenVisit)
		assert.Zero(t, f.users.karmaGrants[f.actor.ID])
	})

	t.Run("clock skew never yields negative duration", func(t *testing.T) {
		f := newVisitFixture(t)
		f.visits.findOpenByUserFn = func(userID uuid.UUID) (*shared.VisitSnapshot, error) {
			return &shared.VisitSnapshot{ID: uuid.New(), UserID: userID, CheckIn: f.clock.Now().Add(5 * time.Minute)}, nil
		}

		result, err := f.cmd.CheckOut(ctx, f.actor)
		require.NoError(t, err)
		assert.Zero(t, result.DurationMinutes)
	})
}
