package queries

import (
	"context"
	"time"

	"coworking-backend/internal/infra"
	"coworking-backend/internal/pkg/errs"
	"coworking-backend/internal/pkg/permission"
	"coworking-backend/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrBookingNotFound = errs.New("booking not found")
	ErrBookingHidden   = errs.New("not enough permissions to access this booking")
)

type BookingReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*BookingView, error)
	FindAll(ctx context.Context) ([]*BookingView, error)
	FindByRoom(ctx context.Context, roomID uuid.UUID, from, to *time.Time) ([]*BookingView, error)
}

type BookingQueries interface {
	GetByID(ctx context.Context, actor shared.UserContext, id uuid.UUID) (*BookingView, error)
	// GetByIDSystem bypasses the ownership gate; used for read-after-write
	// inside the command flow where the actor is already validated.
	GetByIDSystem(ctx context.Context, id uuid.UUID) (*BookingView, error)
	// List returns the actor's own bookings, or every booking for admins.
	List(ctx context.Context, actor shared.UserContext) ([]*BookingView, error)
	ListByRoom(ctx context.Context, roomID uuid.UUID, from, to *time.Time) ([]*BookingView, error)
}

type bookingQueriesImpl struct {
	store BookingReadStore
	rooms RoomReadStore
	perms *permission.Matrix
}

func NewBookingQueries(store BookingReadStore, rooms RoomReadStore, perms *permission.Matrix) BookingQueries {
	return &bookingQueriesImpl{store: store, rooms: rooms, perms: perms}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, actor shared.UserContext, id uuid.UUID) (*BookingView, error) {
	view, err := q.GetByIDSystem(ctx, id)
	if err != nil {
		return nil, err
	}

	isOwner := view.UserID == actor.ID
	if !q.perms.AllowsOnOwned(actor.Role, isOwner, permission.ViewOwnBookings, permission.ViewAllBookings) {
		return nil, ErrBookingHidden
	}
	return view, nil
}

func (q *bookingQueriesImpl) GetByIDSystem(ctx context.Context, id uuid.UUID) (*BookingView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, errs.Wrap(err, "failed to find booking")
	}
	return view, nil
}

func (q *bookingQueriesImpl) List(ctx context.Context, actor shared.UserContext) ([]*BookingView, error) {
	if q.perms.Allows(actor.Role, permission.ViewAllBookings) {
		views, err := q.store.FindAll(ctx)
		if err != nil {
			return nil, errs.Wrap(err, "failed to list bookings")
		}
		return views, nil
	}

	views, err := q.store.FindByUser(ctx, actor.ID)
	if err != nil {
		return nil, errs.Wrap(err, "failed to list user bookings")
	}
	return views, nil
}

func (q *bookingQueriesImpl) ListByRoom(ctx context.Context, roomID uuid.UUID, from, to *time.Time) ([]*BookingView, error) {
	if _, err := q.rooms.FindByID(ctx, roomID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, errs.Wrap(err, "failed to find room")
	}

	views, err := q.store.FindByRoom(ctx, roomID, from, to)
	if err != nil {
		return nil, errs.Wrap(err, "failed to list room bookings")
	}
	return views, nil
}
