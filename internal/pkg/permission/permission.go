// Package permission holds the static role to permission mapping. The matrix
// is built once at startup and injected where needed; it is never mutated
// after construction.
package permission

import "coworking-backend/internal/domain/user"

type Permission string

const (
	ViewRooms       Permission = "rooms:view"
	CreateRooms     Permission = "rooms:create"
	EditRooms       Permission = "rooms:edit"
	DeactivateRooms Permission = "rooms:deactivate"

	CreateBookings    Permission = "bookings:create"
	ViewOwnBookings   Permission = "bookings:view_own"
	ViewAllBookings   Permission = "bookings:view_all"
	EditOwnBookings   Permission = "bookings:edit_own"
	EditAllBookings   Permission = "bookings:edit_all"
	CancelOwnBookings Permission = "bookings:cancel_own"
	CancelAllBookings Permission = "bookings:cancel_all"

	CheckIn       Permission = "visits:check_in"
	CheckOut      Permission = "visits:check_out"
	ViewOwnVisits Permission = "visits:view_own"

	CreateDonations  Permission = "donations:create"
	ViewOwnDonations Permission = "donations:view_own"
)

type Matrix struct {
	grants map[user.Role]map[Permission]struct{}
}

// NewMatrix builds the default role grants. Admin inherits everything a
// regular user can do plus the administrative permissions.
func NewMatrix() *Matrix {
	userPerms := []Permission{
		ViewRooms,
		CreateBookings,
		ViewOwnBookings,
		EditOwnBookings,
		CancelOwnBookings,
		CheckIn,
		CheckOut,
		ViewOwnVisits,
		CreateDonations,
		ViewOwnDonations,
	}

	adminPerms := append([]Permission{
		CreateRooms,
		EditRooms,
		DeactivateRooms,
		ViewAllBookings,
		EditAllBookings,
		CancelAllBookings,
	}, userPerms...)

	return &Matrix{
		grants: map[user.Role]map[Permission]struct{}{
			user.RoleUser:  toSet(userPerms),
			user.RoleAdmin: toSet(adminPerms),
		},
	}
}

func (m *Matrix) Allows(role user.Role, perm Permission) bool {
	set, ok := m.grants[role]
	if !ok {
		return false
	}
	_, ok = set[perm]
	return ok
}

// AllowsOnOwned resolves the own/all permission pair for resources with an
// owner: owners need the own-scoped grant, everyone else the all-scoped one.
func (m *Matrix) AllowsOnOwned(role user.Role, isOwner bool, own, all Permission) bool {
	if isOwner && m.Allows(role, own) {
		return true
	}
	return m.Allows(role, all)
}

func toSet(perms []Permission) map[Permission]struct{} {
	set := make(map[Permission]struct{}, len(perms))
	for _, p := range perms {
		set[p] = struct{}{}
	}
	return set
}
