package repository

import (
	"context"

	"coworking-backend/internal/domain/user"
	"coworking-backend/internal/infra"
	"coworking-backend/internal/infra/db"
	"coworking-backend/internal/pkg/pgconv"
	"coworking-backend/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type UserRepository struct {
	db db.DBTX
}

func NewUserRepository(dbtx db.DBTX) shared.UserRepository {
	return &UserRepository{db: dbtx}
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) (uuid.UUID, error) {
	const q = `
		INSERT INTO users (id, email, hashed_password, full_name, role, is_active)
		VALUES (@id, @email, @hashed_password, @full_name, @role, @is_active)
		RETURNING id`

	args := pgx.NamedArgs{
		"id":              u.ID(),
		"email":           u.Email().String(),
		"hashed_password": u.HashedPassword(),
		"full_name":       u.FullName(),
		"role":            u.Role().String(),
		"is_active":       u.IsActive(),
	}

	var id uuid.UUID
	if err := r.db.QueryRow(ctx, q, args).Scan(&id); err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create user", err)
	}
	return id, nil
}

func (r *UserRepository) FindAuthByEmail(ctx context.Context, email string) (*shared.AuthSnapshot, error) {
	const q = `
		SELECT id, email, hashed_password, full_name, role, is_active
		FROM users
		WHERE email = @email`

	var snap shared.AuthSnapshot
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"email": email}).Scan(
		&snap.ID, &snap.Email, &snap.HashedPassword,
		&snap.FullName, &snap.Role, &snap.IsActive,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by email", err)
	}
	return &snap, nil
}

func (r *UserRepository) AddKarma(ctx context.Context, userID uuid.UUID, delta int) error {
	const q = `UPDATE users SET karma = karma + @delta WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": userID, "delta": delta})
	if err != nil {
		return infra.WrapRepoErr("failed to add karma", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *UserRepository) AddDonatedTotal(ctx context.Context, userID uuid.UUID, amount float64) error {
	const q = `UPDATE users SET total_donated = total_donated + @amount WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": userID, "amount": amount})
	if err != nil {
		return infra.WrapRepoErr("failed to add donated total", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	return nil
}
