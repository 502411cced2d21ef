package commands

import (
	"context"

	"coworking-backend/internal/infra"
	"coworking-backend/internal/pkg/clock"
	"coworking-backend/internal/pkg/errs"
	"coworking-backend/internal/pkg/permission"
	"coworking-backend/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrAlreadyCheckedIn = errs.New("an open visit already exists")
	ErrNoOpenVisit      = errs.New("no open visit to check out")
)

const checkOutKarma = 1

type CheckOutResult struct {
	VisitID         uuid.UUID
	DurationMinutes int
}

type VisitCommands interface {
	CheckIn(ctx context.Context, actor shared.UserContext) (uuid.UUID, error)
	CheckOut(ctx context.Context, actor shared.UserContext) (*CheckOutResult, error)
}

type visitCommandsImpl struct {
	uow   shared.UnitOfWork
	perms *permission.Matrix
	clock clock.Clock
}

func NewVisitCommands(uow shared.UnitOfWork, perms *permission.Matrix, clk clock.Clock) VisitCommands {
	return &visitCommandsImpl{uow: uow, perms: perms, clock: clk}
}

func (c *visitCommandsImpl) CheckIn(ctx context.Context, actor shared.UserContext) (uuid.UUID, error) {
	if !c.perms.Allows(actor.Role, permission.CheckIn) {
		return uuid.Nil, ErrForbidden
	}

	var id uuid.UUID
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		open, err := tx.Visits().FindOpenByUser(ctx, actor.ID)
		if err != nil && !infra.IsKind(err, infra.KindNotFound) {
			return err
		}
		if open != nil {
			return ErrAlreadyCheckedIn
		}
		created, err := tx.Visits().CheckIn(ctx, actor.ID, c.clock.Now())
		if err != nil {
			return err
		}
		id = created
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// CheckOut closes the caller's open visit, records the stay duration and
// grants the visit karma in the same transaction.
func (c *visitCommandsImpl) CheckOut(ctx context.Context, actor shared.UserContext) (*CheckOutResult, error) {
	if !c.perms.Allows(actor.Role, permission.CheckOut) {
		return nil, ErrForbidden
	}

	result := &CheckOutResult{}
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		open, err := tx.Visits().FindOpenByUser(ctx, actor.ID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrNoOpenVisit
			}
			return err
		}

		now := c.clock.Now()
		minutes := int(now.Sub(open.CheckIn).Minutes())
		if minutes < 0 {
			minutes = 0
		}
		if err := tx.Visits().Complete(ctx, open.ID, now, minutes); err != nil {
			return err
		}
		if err := tx.Users().AddKarma(ctx, actor.ID, checkOutKarma); err != nil {
			return err
		}

		result.VisitID = open.ID
		result.DurationMinutes = minutes
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
