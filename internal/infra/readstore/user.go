package readstore

import (
	"context"

	"coworking-backend/internal/infra"
	"coworking-backend/internal/infra/db"
	"coworking-backend/internal/pkg/pgconv"
	"coworking-backend/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type UserReadStore struct {
	db db.DBTX
}

func NewUserReadStore(dbtx db.DBTX) *UserReadStore {
	return &UserReadStore{db: dbtx}
}

func (s *UserReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.UserView, error) {
	const q = `
		SELECT id, email, full_name, role, is_active, karma, total_donated::float8, created_at
		FROM users
		WHERE id = @id`

	var view queries.UserView
	err := s.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}).Scan(
		&view.ID, &view.Email, &view.FullName, &view.Role,
		&view.IsActive, &view.Karma, &view.TotalDonated, &view.CreatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user", err)
	}
	return &view, nil
}
