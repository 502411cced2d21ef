package room

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyRoomName   = errors.New("room name cannot be empty")
	ErrRoomNameTooLong = errors.New("room name is too long (max 255 characters)")
	ErrInvalidCapacity = errors.New("room capacity must be positive")
)

const MaxRoomNameLength = 255

// Room is never hard-deleted; deactivation keeps booking history
// referentially valid.
type Room struct {
	id          uuid.UUID
	name        string
	capacity    int
	equipment   string
	description string
	isActive    bool
	createdAt   time.Time
	updatedAt   time.Time
}

func NewRoom(name string, capacity int, equipment, description string) (*Room, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}

	return &Room{
		id:          uuid.New(),
		name:        strings.TrimSpace(name),
		capacity:    capacity,
		equipment:   strings.TrimSpace(equipment),
		description: strings.TrimSpace(description),
		isActive:    true,
	}, nil
}

func ReconstructRoom(
	id uuid.UUID,
	name string,
	capacity int,
	equipment, description string,
	isActive bool,
	createdAt, updatedAt time.Time,
) *Room {
	return &Room{
		id:          id,
		name:        name,
		capacity:    capacity,
		equipment:   equipment,
		description: description,
		isActive:    isActive,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// Deactivate is idempotent: deactivating an inactive room is a no-op success.
func (r *Room) Deactivate() {
	r.isActive = false
}

func validateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyRoomName
	}
	if len(name) > MaxRoomNameLength {
		return ErrRoomNameTooLong
	}
	return nil
}

func (r *Room) ID() uuid.UUID        { return r.id }
func (r *Room) Name() string         { return r.name }
func (r *Room) Capacity() int        { return r.capacity }
func (r *Room) Equipment() string    { return r.equipment }
func (r *Room) Description() string  { return r.description }
func (r *Room) IsActive() bool       { return r.isActive }
func (r *Room) CreatedAt() time.Time { return r.createdAt }
func (r *Room) UpdatedAt() time.Time { return r.updatedAt }
