//go:build unit

package permission_test

import (
	"testing"

	"coworking-backend/internal/domain/user"
	"coworking-backend/internal/pkg/permission"

	"github.com/stretchr/testify/assert"
)

func TestMatrixAllows(t *testing.T) {
	m := permission.NewMatrix()

	cases := []struct {
		name    string
		role    user.Role
		perm    permission.Permission
		allowed bool
	}{
		{"user views rooms", user.RoleUser, permission.ViewRooms, true},
		{"user creates bookings", user.RoleUser, permission.CreateBookings, true},
		{"user cannot create rooms", user.RoleUser, permission.CreateRooms, false},
		{"user cannot view all bookings", user.RoleUser, permission.ViewAllBookings, false},
		{"user cannot cancel others bookings", user.RoleUser, permission.CancelAllBookings, false},
		{"admin creates rooms", user.RoleAdmin, permission.CreateRooms, true},
		{"admin deactivates rooms", user.RoleAdmin, permission.DeactivateRooms, true},
		{"admin inherits user grants", user.RoleAdmin, permission.CheckIn, true},
		{"unknown role gets nothing", user.Role("ghost"), permission.ViewRooms, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.allowed, m.Allows(tc.role, tc.perm))
		})
	}
}

func TestMatrixAllowsOnOwned(t *testing.T) {
	m := permission.NewMatrix()

	t.Run("owner uses the own-scoped grant", func(t *testing.T) {
		assert.True(t, m.AllowsOnOwned(user.RoleUser, true, permission.CancelOwnBookings, permission.CancelAllBookings))
	})

	t.Run("non-owner needs the all-scoped grant", func(t *testing.T) {
		assert.False(t, m.AllowsOnOwned(user.RoleUser, false, permission.CancelOwnBookings, permission.CancelAllBookings))
		assert.True(t, m.AllowsOnOwned(user.RoleAdmin, false, permission.CancelOwnBookings, permission.CancelAllBookings))
	})

	t.Run("admin acting on own booking", func(t *testing.T) {
		assert.True(t, m.AllowsOnOwned(user.RoleAdmin, true, permission.EditOwnBookings, permission.EditAllBookings))
	})
}
