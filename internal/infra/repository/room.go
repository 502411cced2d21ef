package repository

import (
	"context"
	"time"

	"coworking-backend/internal/domain/room"
	"coworking-backend/internal/infra"
	"coworking-backend/internal/infra/db"
	"coworking-backend/internal/pkg/pgconv"
	"coworking-backend/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type RoomRepository struct {
	db db.DBTX
}

func NewRoomRepository(dbtx db.DBTX) shared.RoomRepository {
	return &RoomRepository{db: dbtx}
}

func (r *RoomRepository) Create(ctx context.Context, rm *room.Room) (uuid.UUID, error) {
	const q = `
		INSERT INTO rooms (id, name, capacity, equipment, description, is_active)
		VALUES (@id, @name, @capacity, @equipment, @description, @is_active)
		RETURNING id`

	args := pgx.NamedArgs{
		"id":          rm.ID(),
		"name":        rm.Name(),
		"capacity":    rm.Capacity(),
		"equipment":   rm.Equipment(),
		"description": rm.Description(),
		"is_active":   rm.IsActive(),
	}

	var id uuid.UUID
	if err := r.db.QueryRow(ctx, q, args).Scan(&id); err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create room", err)
	}
	return id, nil
}

func (r *RoomRepository) Update(ctx context.Context, rm *room.Room) error {
	const q = `
		UPDATE rooms
		SET name        = @name,
		    capacity    = @capacity,
		    equipment   = @equipment,
		    description = @description,
		    is_active   = @is_active,
		    updated_at  = now()
		WHERE id = @id`

	args := pgx.NamedArgs{
		"id":          rm.ID(),
		"name":        rm.Name(),
		"capacity":    rm.Capacity(),
		"equipment":   rm.Equipment(),
		"description": rm.Description(),
		"is_active":   rm.IsActive(),
	}

	tag, err := r.db.Exec(ctx, q, args)
	if err != nil {
		return infra.WrapRepoErr("failed to update room", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("room not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *RoomRepository) FindByID(ctx context.Context, id uuid.UUID) (*room.Room, error) {
	const q = `
		SELECT id, name, capacity, equipment, description, is_active, created_at, updated_at
		FROM rooms
		WHERE id = @id`

	var (
		roomID                       uuid.UUID
		name, equipment, description string
		capacity                     int
		isActive                     bool
		createdAt, updatedAt         time.Time
	)
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}).Scan(
		&roomID, &name, &capacity, &equipment, &description, &isActive, &createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("room not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find room", err)
	}
	return room.ReconstructRoom(roomID, name, capacity, equipment, description, isActive, createdAt, updatedAt), nil
}
