//go:build unit || e2e

package builder

import (
	"time"

	domroom "coworking-backend/internal/domain/room"
	reqdto "coworking-backend/internal/handler/dto/request"
	"coworking-backend/internal/usecase/queries"

	"github.com/google/uuid"
)

type RoomBuilder struct {
	ID          uuid.UUID
	Name        string
	Capacity    int
	Equipment   string
	Description string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func NewRoomBuilder() *RoomBuilder {
	now := time.Now().UTC().Truncate(time.Second)
	return &RoomBuilder{
		ID:          uuid.New(),
		Name:        "Study Room A",
		Capacity:    6,
		Equipment:   "whiteboard, projector",
		Description: "Quiet room on the second floor",
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (r *RoomBuilder) With(mutate func(*RoomBuilder)) *RoomBuilder {
	mutate(r)
	return r
}

// Build methods
func (r *RoomBuilder) BuildDomain() (*domroom.Room, error) {
	return domroom.NewRoom(r.Name, r.Capacity, r.Equipment, r.Description)
}

func (r *RoomBuilder) BuildReconstructed() *domroom.Room {
	return domroom.ReconstructRoom(r.ID, r.Name, r.Capacity, r.Equipment, r.Description, r.IsActive, r.CreatedAt, r.UpdatedAt)
}

func (r *RoomBuilder) BuildView() *queries.RoomView {
	return &queries.RoomView{
		ID:          r.ID,
		Name:        r.Name,
		Capacity:    int32(r.Capacity),
		Equipment:   r.Equipment,
		Description: r.Description,
		IsActive:    r.IsActive,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func (r *RoomBuilder) BuildCreateRequestDTO() reqdto.CreateRoomRequest {
	return reqdto.CreateRoomRequest{
		Name:        r.Name,
		Capacity:    r.Capacity,
		Equipment:   r.Equipment,
		Description: r.Description,
	}
}
