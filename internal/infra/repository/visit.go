package repository

import (
	"context"
	"time"

	"coworking-backend/internal/infra"
	"coworking-backend/internal/infra/db"
	"coworking-backend/internal/pkg/pgconv"
	"coworking-backend/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type VisitRepository struct {
	db db.DBTX
}

func NewVisitRepository(dbtx db.DBTX) shared.VisitRepository {
	return &VisitRepository{db: dbtx}
}

func (r *VisitRepository) CheckIn(ctx context.Context, userID uuid.UUID, at time.Time) (uuid.UUID, error) {
	const q = `
		INSERT INTO visits (user_id, check_in)
		VALUES (@user_id, @check_in)
		RETURNING id`

	var id uuid.UUID
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"user_id": userID, "check_in": at}).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create visit", err)
	}
	return id, nil
}

func (r *VisitRepository) FindByID(ctx context.Context, id uuid.UUID) (*shared.VisitSnapshot, error) {
	const q = `
		SELECT id, user_id, check_in, check_out
		FROM visits
		WHERE id = @id`

	var snap shared.VisitSnapshot
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}).Scan(
		&snap.ID, &snap.UserID, &snap.CheckIn, &snap.CheckOut,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("visit not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find visit", err)
	}
	return &snap, nil
}

func (r *VisitRepository) FindOpenByUser(ctx context.Context, userID uuid.UUID) (*shared.VisitSnapshot, error) {
	const q = `
		SELECT id, user_id, check_in, check_out
		FROM visits
		WHERE user_id = @user_id AND check_out IS NULL`

	var snap shared.VisitSnapshot
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"user_id": userID}).Scan(
		&snap.ID, &snap.UserID, &snap.CheckIn, &snap.CheckOut,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("open visit not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find open visit", err)
	}
	return &snap, nil
}

func (r *VisitRepository) Complete(ctx context.Context, id uuid.UUID, checkOut time.Time, durationMinutes int) error {
	const q = `
		UPDATE visits
		SET check_out = @check_out,
		    duration_minutes = @duration_minutes
		WHERE id = @id AND check_out IS NULL`

	args := pgx.NamedArgs{
		"id":               id,
		"check_out":        checkOut,
		"duration_minutes": durationMinutes,
	}

	tag, err := r.db.Exec(ctx, q, args)
	if err != nil {
		return infra.WrapRepoErr("failed to complete visit", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("open visit not found", nil, infra.KindNotFound)
	}
	return nil
}
