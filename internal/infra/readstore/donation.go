package readstore

import (
	"context"

	"coworking-backend/internal/infra"
	"coworking-backend/internal/infra/db"
	"coworking-backend/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type DonationReadStore struct {
	db db.DBTX
}

func NewDonationReadStore(dbtx db.DBTX) *DonationReadStore {
	return &DonationReadStore{db: dbtx}
}

func (s *DonationReadStore) FindByUser(ctx context.Context, userID uuid.UUID) ([]*queries.DonationView, error) {
	const q = `
		SELECT d.id, d.user_id, u.full_name, d.amount::float8, d.message, d.is_anonymous, d.created_at
		FROM donations d
		JOIN users u ON u.id = d.user_id
		WHERE d.user_id = @user_id
		ORDER BY d.created_at DESC`

	return s.queryDonationViews(ctx, q, pgx.NamedArgs{"user_id": userID})
}

// FindRecent masks the donor name on anonymous donations.
func (s *DonationReadStore) FindRecent(ctx context.Context, limit int32) ([]*queries.DonationView, error) {
	const q = `
		SELECT d.id, d.user_id,
		       CASE WHEN d.is_anonymous THEN NULL ELSE u.full_name END,
		       d.amount::float8, d.message, d.is_anonymous, d.created_at
		FROM donations d
		JOIN users u ON u.id = d.user_id
		ORDER BY d.created_at DESC
		LIMIT @limit`

	return s.queryDonationViews(ctx, q, pgx.NamedArgs{"limit": limit})
}

func (s *DonationReadStore) queryDonationViews(ctx context.Context, q string, args pgx.NamedArgs) ([]*queries.DonationView, error) {
	rows, err := s.db.Query(ctx, q, args)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list donations", err)
	}
	defer rows.Close()

	var views []*queries.DonationView
	for rows.Next() {
		var view queries.DonationView
		err := rows.Scan(
			&view.ID, &view.UserID, &view.UserName,
			&view.Amount, &view.Message, &view.IsAnonymous, &view.DonatedAt,
		)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan donation", err)
		}
		views = append(views, &view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read donations", err)
	}
	return views, nil
}
