package user

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidEmail    = errors.New("invalid email address")
	ErrInvalidRole     = errors.New("invalid role")
	ErrEmptyFullName   = errors.New("full name cannot be empty")
	ErrFullNameTooLong = errors.New("full name is too long (max 255 characters)")
)

const MaxFullNameLength = 255

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

type Email struct {
	value string
}

func NewEmail(value string) (Email, error) {
	value = strings.TrimSpace(strings.ToLower(value))
	if !emailPattern.MatchString(value) {
		return Email{}, ErrInvalidEmail
	}
	return Email{value: value}, nil
}

func (e Email) String() string {
	return e.value
}

type User struct {
	id             uuid.UUID
	email          Email
	hashedPassword string
	fullName       string
	role           Role
	isActive       bool
	karma          int
	totalDonated   float64
	createdAt      time.Time
}

func NewUser(email Email, hashedPassword, fullName string, role Role) (*User, error) {
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		return nil, ErrEmptyFullName
	}
	if len(fullName) > MaxFullNameLength {
		return nil, ErrFullNameTooLong
	}
	if !role.IsValid() {
		return nil, ErrInvalidRole
	}

	return &User{
		id:             uuid.New(),
		email:          email,
		hashedPassword: hashedPassword,
		fullName:       fullName,
		role:           role,
		isActive:       true,
	}, nil
}

func ReconstructUser(
	id uuid.UUID,
	email Email,
	hashedPassword, fullName string,
	role Role,
	isActive bool,
	karma int,
	totalDonated float64,
	createdAt time.Time,
) *User {
	return &User{
		id:             id,
		email:          email,
		hashedPassword: hashedPassword,
		fullName:       fullName,
		role:           role,
		isActive:       isActive,
		karma:          karma,
		totalDonated:   totalDonated,
		createdAt:      createdAt,
	}
}

func (u *User) IsAdmin() bool {
	return u.role == RoleAdmin
}

func (u *User) ID() uuid.UUID          { return u.id }
func (u *User) Email() Email           { return u.email }
func (u *User) HashedPassword() string { return u.hashedPassword }
func (u *User) FullName() string       { return u.fullName }
func (u *User) Role() Role             { return u.role }
func (u *User) IsActive() bool         { return u.isActive }
func (u *User) Karma() int             { return u.karma }
func (u *User) TotalDonated() float64  { return u.totalDonated }
func (u *User) CreatedAt() time.Time   { return u.createdAt }
