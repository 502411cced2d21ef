package commands

import (
	"context"

	"coworking-backend/internal/domain/room"
	"coworking-backend/internal/infra"
	"coworking-backend/internal/pkg/errs"
	"coworking-backend/internal/pkg/patch"
	"coworking-backend/internal/pkg/permission"
	"coworking-backend/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrRoomNameTaken = errs.New("room name already exists")

type CreateRoomRequest struct {
	Name        string
	Capacity    int
	Equipment   string
	Description string
}

type UpdateRoomRequest struct {
	Name        *string
	Capacity    *int
	Equipment   *string
	Description *string
}

type RoomCommands interface {
	Create(ctx context.Context, req CreateRoomRequest, actor shared.UserContext) (uuid.UUID, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateRoomRequest, actor shared.UserContext) error
	Deactivate(ctx context.Context, id uuid.UUID, actor shared.UserContext) error
}

type roomCommandsImpl struct {
	uow   shared.UnitOfWork
	perms *permission.Matrix
}

func NewRoomCommands(uow shared.UnitOfWork, perms *permission.Matrix) RoomCommands {
	return &roomCommandsImpl{uow: uow, perms: perms}
}

func (c *roomCommandsImpl) Create(ctx context.Context, req CreateRoomRequest, actor shared.UserContext) (uuid.UUID, error) {
	if !c.perms.Allows(actor.Role, permission.CreateRooms) {
		return uuid.Nil, ErrForbidden
	}

	entity, err := room.NewRoom(req.Name, req.Capacity, req.Equipment, req.Description)
	if err != nil {
		return uuid.Nil, err
	}

	var id uuid.UUID
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		created, derr := tx.Rooms().Create(ctx, entity)
		if derr != nil {
			if infra.IsKind(derr, infra.KindDuplicateKey) {
				return ErrRoomNameTaken
			}
			return derr
		}
		id = created
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func (c *roomCommandsImpl) Update(ctx context.Context, id uuid.UUID, req UpdateRoomRequest, actor shared.UserContext) error {
	if !c.perms.Allows(actor.Role, permission.EditRooms) {
		return ErrForbidden
	}

	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		current, err := tx.Rooms().FindByID(ctx, id)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrRoomNotFound
			}
			return err
		}

		updated, err := room.NewRoom(
			patch.Coalesce(req.Name, current.Name()),
			patch.Coalesce(req.Capacity, current.Capacity()),
			patch.Coalesce(req.Equipment, current.Equipment()),
			patch.Coalesce(req.Description, current.Description()),
		)
		if err != nil {
			return err
		}
		merged := room.ReconstructRoom(
			current.ID(), updated.Name(), updated.Capacity(),
			updated.Equipment(), updated.Description(),
			current.IsActive(), current.CreatedAt(), current.UpdatedAt(),
		)
		if err := tx.Rooms().Update(ctx, merged); err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return ErrRoomNameTaken
			}
			return err
		}
		return nil
	})
}

// Deactivate is idempotent: already inactive rooms stay inactive. Existing
// confirmed bookings on the room are untouched.
func (c *roomCommandsImpl) Deactivate(ctx context.Context, id uuid.UUID, actor shared.UserContext) error {
	if !c.perms.Allows(actor.Role, permission.DeactivateRooms) {
		return ErrForbidden
	}

	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		current, err := tx.Rooms().FindByID(ctx, id)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrRoomNotFound
			}
			return err
		}
		current.Deactivate()
		return tx.Rooms().Update(ctx, current)
	})
}
