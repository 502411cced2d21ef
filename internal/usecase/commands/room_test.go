//go:build unit

package commands_test

import (
	"context"
	"testing"

	domroom "coworking-backend/internal/domain/room"
	"coworking-backend/internal/domain/user"
	"coworking-backend/internal/infra"
	"coworking-backend/internal/pkg/permission"
	"coworking-backend/internal/usecase/commands"
	"coworking-backend/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type roomFixture struct {
	cmd   commands.RoomCommands
	rooms *fakeRoomRepo
	admin shared.UserContext
}

func newRoomFixture(t *testing.T) *roomFixture {
	t.Helper()
	f := &roomFixture{
		rooms: &fakeRoomRepo{},
		admin: shared.UserContext{ID: uuid.New(), Role: user.RoleAdmin},
	}
	uow := &fakeUow{tx: &fakeTx{rooms: f.rooms}}
	f.cmd = commands.NewRoomCommands(uow, permission.NewMatrix())
	return f
}

func TestRoomCommandsCreate(t *testing.T) {
	ctx := context.Background()
	req := commands.CreateRoomRequest{Name: "Study Room A", Capacity: 6, Equipment: "whiteboard"}

	t.Run("admin creates a room", func(t *testing.T) {
		f := newRoomFixture(t)

		id, err := f.cmd.Create(ctx, req, f.admin)
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, id)
	})

	t.Run("regular user is forbidden", func(t *testing.T) {
		f := newRoomFixture(t)
		member := shared.UserContext{ID: uuid.New(), Role: user.RoleUser}

		_, err := f.cmd.Create(ctx, req, member)
		assert.ErrorIs(t, err, commands.ErrForbidden)
	})

	t.Run("domain validation surfaces", func(t *testing.T) {
		f := newRoomFixture(t)

		_, err := f.cmd.Create(ctx, commands.CreateRoomRequest{Name: "", Capacity: 6}, f.admin)
		assert.ErrorIs(t, err, domroom.ErrEmptyRoomName)
	})

	t.Run("duplicate name maps to ErrRoomNameTaken", func(t *testing.T) {
		f := newRoomFixture(t)
		f.rooms.createFn = func(*domroom.Room) (uuid.UUID, error) {
			return uuid.Nil, infra.WrapRepoErr("insert room", nil, infra.KindDuplicateKey)
		}

		_, err := f.cmd.Create(ctx, req, f.admin)
		assert.ErrorIs(t, err, commands.ErrRoomNameTaken)
	})
}

func TestRoomCommandsUpdate(t *testing.T) {
	ctx := context.Background()

	existing := func() *domroom.Room {
		r, _ := domroom.NewRoom("Study Room A", 6, "whiteboard", "second floor")
		return r
	}

	t.Run("merges only the provided fields", func(t *testing.T) {
		f := newRoomFixture(t)
		current := existing()
		f.rooms.findByIDFn = func(uuid.UUID) (*domroom.Room, error) { return current, nil }

		capacity := 12
		err := f.cmd.Update(ctx, current.ID(), commands.UpdateRoomRequest{Capacity: &capacity}, f.admin)
		require.NoError(t, err)

		require.Len(t, f.rooms.updated, 1)
		merged := f.rooms.updated[0]
		assert.Equal(t, current.ID(), merged.ID())
		assert.Equal(t, 12, merged.Capacity())
		assert.Equal(t, "Study Room A", merged.Name())
		assert.Equal(t, "whiteboard", merged.Equipment())
	})

	t.Run("unknown room", func(t *testing.T) {
		f := newRoomFixture(t)

		name := "Renamed"
		err := f.cmd.Update(ctx, uuid.New(), commands.UpdateRoomRequest{Name: &name}, f.admin)
		assert.ErrorIs(t, err, commands.ErrRoomNotFound)
	})

	t.Run("invalid merged capacity", func(t *testing.T) {
		f := newRoomFixture(t)
		current := existing()
		f.rooms.findByIDFn = func(uuid.UUID) (*domroom.Room, error) { return current, nil }

		capacity := 0
		err := f.cmd.Update(ctx, current.ID(), commands.UpdateRoomRequest{Capacity: &capacity}, f.admin)
		assert.ErrorIs(t, err, domroom.ErrInvalidCapacity)
		assert.Empty(t, f.rooms.updated)
	})
}

func TestRoomCommandsDeactivate(t *testing.T) {
	ctx := context.Background()

	t.Run("marks the room inactive", func(t *testing.T) {
		f := newRoomFixture(t)
		current, _ := domroom.NewRoom("Study Room A", 6, "", "")
		f.rooms.findByIDFn = func(uuid.UUID) (*domroom.Room, error) { return current, nil }

		require.NoError(t, f.cmd.Deactivate(ctx, current.ID(), f.admin))
		require.Len(t, f.rooms.updated, 1)
		assert.False(t, f.rooms.updated[0].IsActive())
	})

	t.Run("deactivating twice still succeeds", func(t *testing.T) {
		f := newRoomFixture(t)
		current, _ := domroom.NewRoom("Study Room A", 6, "", "")
		current.Deactivate()
		f.rooms.findByIDFn = func(uuid.UUID) (*domroom.Room, error) { return current, nil }

		require.NoError(t, f.cmd.Deactivate(ctx, current.ID(), f.admin))
	})

	t.Run("regular user is forbidden", func(t *testing.T) {
		f := newRoomFixture(t)
		member := shared.UserContext{ID: uuid.New(), Role: user.RoleUser}

		assert.ErrorIs(t, f.cmd.Deactivate(ctx, uuid.New(), member), commands.ErrForbidden)
	})
}
