// Package readstore holds the read-side query implementations. Views are
// built straight from SQL rows; no domain entities are reconstructed here.
package readstore

import (
	"context"
	"time"

	"coworking-backend/internal/domain/booking"
	"coworking-backend/internal/infra"
	"coworking-backend/internal/infra/db"
	"coworking-backend/internal/pkg/pgconv"
	"coworking-backend/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type RoomReadStore struct {
	db db.DBTX
}

func NewRoomReadStore(dbtx db.DBTX) *RoomReadStore {
	return &RoomReadStore{db: dbtx}
}

func (s *RoomReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.RoomView, error) {
	const q = `
		SELECT id, name, capacity, equipment, description, is_active, created_at, updated_at
		FROM rooms
		WHERE id = @id`

	view, err := scanRoomView(s.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("room not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find room", err)
	}
	return view, nil
}

func (s *RoomReadStore) List(ctx context.Context, activeOnly bool) ([]*queries.RoomView, error) {
	const q = `
		SELECT id, name, capacity, equipment, description, is_active, created_at, updated_at
		FROM rooms
		WHERE (NOT @active_only OR is_active)
		ORDER BY name`

	rows, err := s.db.Query(ctx, q, pgx.NamedArgs{"active_only": activeOnly})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list rooms", err)
	}
	defer rows.Close()

	var views []*queries.RoomView
	for rows.Next() {
		view, err := scanRoomView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan room", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read rooms", err)
	}
	return views, nil
}

// FindConfirmedPeriods returns the confirmed intervals for the room that
// overlap [from, to), ordered by start time.
func (s *RoomReadStore) FindConfirmedPeriods(ctx context.Context, roomID uuid.UUID, from, to time.Time) ([]booking.Period, error) {
	const q = `
		SELECT start_time, end_time
		FROM bookings
		WHERE room_id = @room_id
		  AND status = 'confirmed'
		  AND start_time < @to
		  AND end_time > @from
		ORDER BY start_time`

	rows, err := s.db.Query(ctx, q, pgx.NamedArgs{"room_id": roomID, "from": from, "to": to})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load confirmed periods", err)
	}
	defer rows.Close()

	var periods []booking.Period
	for rows.Next() {
		var start, end time.Time
		if err := rows.Scan(&start, &end); err != nil {
			return nil, infra.WrapRepoErr("failed to scan period", err)
		}
		period, err := booking.NewPeriod(start, end)
		if err != nil {
			return nil, infra.WrapRepoErr("invalid stored period", err)
		}
		periods = append(periods, period)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read periods", err)
	}
	return periods, nil
}

func scanRoomView(row pgx.Row) (*queries.RoomView, error) {
	var view queries.RoomView
	err := row.Scan(
		&view.ID, &view.Name, &view.Capacity, &view.Equipment,
		&view.Description, &view.IsActive, &view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &view, nil
}
