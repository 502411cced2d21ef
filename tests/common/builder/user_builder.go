//go:build unit || e2e

package builder

import (
	"time"

	domuser "coworking-backend/internal/domain/user"
	"coworking-backend/internal/usecase/queries"
	"coworking-backend/internal/usecase/shared"

	"github.com/google/uuid"
)

type UserBuilder struct {
	ID             uuid.UUID
	Email          string
	HashedPassword string
	FullName       string
	Role           domuser.Role
	IsActive       bool
	Karma          int
	TotalDonated   float64
	CreatedAt      time.Time
}

func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		ID:             uuid.New(),
		Email:          "student@campus.edu",
		HashedPassword: "$2a$10$examplehashexamplehashexamplehashexampleha",
		FullName:       "Mika Tanaka",
		Role:           domuser.RoleUser,
		IsActive:       true,
		Karma:          0,
		TotalDonated:   0,
		CreatedAt:      time.Now().UTC().Truncate(time.Second),
	}
}

func (u *UserBuilder) With(mutate func(*UserBuilder)) *UserBuilder {
	mutate(u)
	return u
}

// Build methods
func (u *UserBuilder) BuildDomain() (*domuser.User, error) {
	email, err := domuser.NewEmail(u.Email)
	if err != nil {
		return nil, err
	}
	return domuser.ReconstructUser(
		u.ID, email, u.HashedPassword, u.FullName,
		u.Role, u.IsActive, u.Karma, u.TotalDonated, u.CreatedAt,
	), nil
}

func (u *UserBuilder) BuildAuthSnapshot() *shared.AuthSnapshot {
	return &shared.AuthSnapshot{
		ID:             u.ID,
		Email:          u.Email,
		HashedPassword: u.HashedPassword,
		FullName:       u.FullName,
		Role:           u.Role.String(),
		IsActive:       u.IsActive,
	}
}

func (u *UserBuilder) BuildView() *queries.UserView {
	return &queries.UserView{
		ID:           u.ID,
		Email:        u.Email,
		FullName:     u.FullName,
		Role:         u.Role.String(),
		IsActive:     u.IsActive,
		Karma:        int32(u.Karma),
		TotalDonated: u.TotalDonated,
		CreatedAt:    u.CreatedAt,
	}
}

func (u *UserBuilder) BuildUserContext() shared.UserContext {
	return shared.UserContext{ID: u.ID, Role: u.Role}
}
