package readstore

import (
	"context"

	"coworking-backend/internal/infra"
	"coworking-backend/internal/infra/db"
	"coworking-backend/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type VisitReadStore struct {
	db db.DBTX
}

func NewVisitReadStore(dbtx db.DBTX) *VisitReadStore {
	return &VisitReadStore{db: dbtx}
}

func (s *VisitReadStore) FindByUser(ctx context.Context, userID uuid.UUID) ([]*queries.VisitView, error) {
	const q = `
		SELECT id, user_id, check_in, check_out, COALESCE(duration_minutes, 0)
		FROM visits
		WHERE user_id = @user_id
		ORDER BY check_in DESC`

	rows, err := s.db.Query(ctx, q, pgx.NamedArgs{"user_id": userID})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list visits", err)
	}
	defer rows.Close()

	var views []*queries.VisitView
	for rows.Next() {
		var view queries.VisitView
		err := rows.Scan(&view.ID, &view.UserID, &view.CheckIn, &view.CheckOut, &view.DurationMinutes)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan visit", err)
		}
		views = append(views, &view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read visits", err)
	}
	return views, nil
}
