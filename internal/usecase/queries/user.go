package queries

import (
	"context"

	"coworking-backend/internal/infra"
	"coworking-backend/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrUserNotFound = errs.New("user not found")

type UserReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*UserView, error)
}

type VisitReadStore interface {
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*VisitView, error)
}

type DonationReadStore interface {
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*DonationView, error)
	FindRecent(ctx context.Context, limit int32) ([]*DonationView, error)
}

type UserQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*UserView, error)
	ListVisits(ctx context.Context, userID uuid.UUID) ([]*VisitView, error)
	ListDonations(ctx context.Context, userID uuid.UUID) ([]*DonationView, error)
	ListRecentDonations(ctx context.Context, limit int32) ([]*DonationView, error)
}

type userQueriesImpl struct {
	users     UserReadStore
	visits    VisitReadStore
	donations DonationReadStore
}

func NewUserQueries(users UserReadStore, visits VisitReadStore, donations DonationReadStore) UserQueries {
	return &userQueriesImpl{users: users, visits: visits, donations: donations}
}

func (q *userQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*UserView, error) {
	view, err := q.users.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, errs.Wrap(err, "failed to find user")
	}
	return view, nil
}

func (q *userQueriesImpl) ListVisits(ctx context.Context, userID uuid.UUID) ([]*VisitView, error) {
	visits, err := q.visits.FindByUser(ctx, userID)
	if err != nil {
		return nil, errs.Wrap(err, "failed to list visits")
	}
	return visits, nil
}

func (q *userQueriesImpl) ListDonations(ctx context.Context, userID uuid.UUID) ([]*DonationView, error) {
	donations, err := q.donations.FindByUser(ctx, userID)
	if err != nil {
		return nil, errs.Wrap(err, "failed to list donations")
	}
	return donations, nil
}

const defaultRecentDonations = 10

func (q *userQueriesImpl) ListRecentDonations(ctx context.Context, limit int32) ([]*DonationView, error) {
	if limit <= 0 {
		limit = defaultRecentDonations
	}
	donations, err := q.donations.FindRecent(ctx, limit)
	if err != nil {
		return nil, errs.Wrap(err, "failed to list recent donations")
	}
	return donations, nil
}
