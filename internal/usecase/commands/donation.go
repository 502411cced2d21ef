package commands

import (
	"context"

	"coworking-backend/internal/pkg/clock"
	"coworking-backend/internal/pkg/errs"
	"coworking-backend/internal/pkg/permission"
	"coworking-backend/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrDonationTooSmall = errs.New("donation amount is below the minimum")

const (
	minDonationAmount = 10.0
	// One karma point per 50 donated, rounded down.
	karmaPerDonationUnit = 50.0
)

type CreateDonationRequest struct {
	Amount      float64
	Message     *string
	IsAnonymous bool
}

type DonationCommands interface {
	Create(ctx context.Context, req CreateDonationRequest, actor shared.UserContext) (uuid.UUID, error)
}

type donationCommandsImpl struct {
	uow   shared.UnitOfWork
	perms *permission.Matrix
	clock clock.Clock
}

func NewDonationCommands(uow shared.UnitOfWork, perms *permission.Matrix, clk clock.Clock) DonationCommands {
	return &donationCommandsImpl{uow: uow, perms: perms, clock: clk}
}

// Create records the donation and applies the karma grant and donated-total
// accrual atomically with it.
func (c *donationCommandsImpl) Create(ctx context.Context, req CreateDonationRequest, actor shared.UserContext) (uuid.UUID, error) {
	if !c.perms.Allows(actor.Role, permission.CreateDonations) {
		return uuid.Nil, ErrForbidden
	}
	if req.Amount < minDonationAmount {
		return uuid.Nil, ErrDonationTooSmall
	}

	var id uuid.UUID
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		created, derr := tx.Donations().Create(ctx, shared.CreateDonationParams{
			UserID:      actor.ID,
			Amount:      req.Amount,
			Message:     req.Message,
			IsAnonymous: req.IsAnonymous,
		}, c.clock.Now())
		if derr != nil {
			return derr
		}
		id = created

		karma := int(req.Amount / karmaPerDonationUnit)
		if karma > 0 {
			if derr := tx.Users().AddKarma(ctx, actor.ID, karma); derr != nil {
				return derr
			}
		}
		return tx.Users().AddDonatedTotal(ctx, actor.ID, req.Amount)
	})
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}
