package queries

import (
	"context"
	"time"

	"coworking-backend/internal/domain/booking"
	"coworking-backend/internal/infra"
	"coworking-backend/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrRoomNotFound = errs.New("room not found")

type RoomReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*RoomView, error)
	List(ctx context.Context, activeOnly bool) ([]*RoomView, error)
}

type BookingPeriodReadStore interface {
	// FindConfirmedPeriods returns the confirmed booking intervals for the
	// room that overlap [from, to).
	FindConfirmedPeriods(ctx context.Context, roomID uuid.UUID, from, to time.Time) ([]booking.Period, error)
}

type RoomQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*RoomView, error)
	List(ctx context.Context, activeOnly bool) ([]*RoomView, error)
	Availability(ctx context.Context, roomID uuid.UUID, date time.Time) (*AvailabilityView, error)
}

type roomQueriesImpl struct {
	rooms   RoomReadStore
	periods BookingPeriodReadStore
	policy  *booking.Policy
}

func NewRoomQueries(rooms RoomReadStore, periods BookingPeriodReadStore, policy *booking.Policy) RoomQueries {
	return &roomQueriesImpl{rooms: rooms, periods: periods, policy: policy}
}

func (q *roomQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*RoomView, error) {
	view, err := q.rooms.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, errs.Wrap(err, "failed to find room")
	}
	return view, nil
}

func (q *roomQueriesImpl) List(ctx context.Context, activeOnly bool) ([]*RoomView, error) {
	rooms, err := q.rooms.List(ctx, activeOnly)
	if err != nil {
		return nil, errs.Wrap(err, "failed to list rooms")
	}
	return rooms, nil
}

// Availability recomputes the free one-hour slots of the operating window on
// every call. No caching: bookings change between calls and a stale answer
// is worse than the recomputation.
func (q *roomQueriesImpl) Availability(ctx context.Context, roomID uuid.UUID, date time.Time) (*AvailabilityView, error) {
	roomView, err := q.GetByID(ctx, roomID)
	if err != nil {
		return nil, err
	}

	opening, closing := q.policy.OperatingWindowOn(date)
	busy, err := q.periods.FindConfirmedPeriods(ctx, roomID, opening, closing)
	if err != nil {
		return nil, errs.Wrap(err, "failed to load confirmed bookings")
	}

	slots := booking.AvailableSlots(q.policy, date, busy)
	view := &AvailabilityView{
		RoomID:   roomID,
		RoomName: roomView.Name,
		Date:     date.Format("2006-01-02"),
		Slots:    make([]SlotView, len(slots)),
	}
	for i, s := range slots {
		view.Slots[i] = SlotView{Start: s.Start, End: s.End}
	}
	return view, nil
}
