package repository

import (
	"context"
	"time"

	"coworking-backend/internal/infra"
	"coworking-backend/internal/infra/db"
	"coworking-backend/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type DonationRepository struct {
	db db.DBTX
}

func NewDonationRepository(dbtx db.DBTX) shared.DonationRepository {
	return &DonationRepository{db: dbtx}
}

func (r *DonationRepository) Create(ctx context.Context, params shared.CreateDonationParams, at time.Time) (uuid.UUID, error) {
	const q = `
		INSERT INTO donations (user_id, amount, message, is_anonymous, created_at)
		VALUES (@user_id, @amount, @message, @is_anonymous, @created_at)
		RETURNING id`

	args := pgx.NamedArgs{
		"user_id":      params.UserID,
		"amount":       params.Amount,
		"message":      params.Message,
		"is_anonymous": params.IsAnonymous,
		"created_at":   at,
	}

	var id uuid.UUID
	if err := r.db.QueryRow(ctx, q, args).Scan(&id); err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create donation", err)
	}
	return id, nil
}
