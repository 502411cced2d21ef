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

type IdempotencyRepository struct {
	db db.DBTX
}

func NewIdempotencyRepository(dbtx db.DBTX) shared.IdempotencyRepository {
	return &IdempotencyRepository{db: dbtx}
}

// TryInsert claims the key for this user. Conflicting inserts are a no-op so
// a retry reads the state left by the first request, except that an expired
// record is reclaimed in place and the key starts a fresh cycle.
func (r *IdempotencyRepository) TryInsert(ctx context.Context, key, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) error {
	const q = `
		INSERT INTO idempotency_keys (key, user_id, endpoint, request_hash, status, expires_at)
		VALUES (@key, @user_id, @endpoint, @request_hash, 'processing', @expires_at)
		ON CONFLICT (key, user_id) DO UPDATE
		SET endpoint          = EXCLUDED.endpoint,
		    request_hash      = EXCLUDED.request_hash,
		    status            = 'processing',
		    result_booking_id = NULL,
		    expires_at        = EXCLUDED.expires_at
		WHERE idempotency_keys.expires_at <= now()`

	args := pgx.NamedArgs{
		"key":          key,
		"user_id":      userID,
		"endpoint":     endpoint,
		"request_hash": requestHash,
		"expires_at":   expiresAt,
	}

	if _, err := r.db.Exec(ctx, q, args); err != nil {
		return infra.WrapRepoErr("failed to claim idempotency key", err)
	}
	return nil
}

func (r *IdempotencyRepository) Get(ctx context.Context, key, userID uuid.UUID) (*shared.IdempotencyRecord, error) {
	const q = `
		SELECT key, user_id, status, request_hash, result_booking_id, expires_at
		FROM idempotency_keys
		WHERE key = @key AND user_id = @user_id`

	var record shared.IdempotencyRecord
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"key": key, "user_id": userID}).Scan(
		&record.Key, &record.UserID, &record.Status,
		&record.RequestHash, &record.ResultBookingID, &record.ExpiresAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("idempotency key not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get idempotency key", err)
	}
	return &record, nil
}

func (r *IdempotencyRepository) MarkCompleted(ctx context.Context, key, userID uuid.UUID, resultBookingID uuid.UUID) error {
	const q = `
		UPDATE idempotency_keys
		SET status = 'completed',
		    result_booking_id = @result_booking_id
		WHERE key = @key AND user_id = @user_id`

	args := pgx.NamedArgs{
		"key":               key,
		"user_id":           userID,
		"result_booking_id": resultBookingID,
	}

	tag, err := r.db.Exec(ctx, q, args)
	if err != nil {
		return infra.WrapRepoErr("failed to complete idempotency key", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("idempotency key not found", nil, infra.KindNotFound)
	}
	return nil
}
