package readstore

import (
	"context"
	"time"

	"coworking-backend/internal/infra"
	"coworking-backend/internal/infra/db"
	"coworking-backend/internal/pkg/pgconv"
	"coworking-backend/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const bookingViewColumns = `
	b.id, b.room_id, r.name AS room_name, b.user_id, u.full_name AS user_name,
	b.start_time, b.end_time, b.purpose, b.status, b.created_at, b.updated_at`

type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(dbtx db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: dbtx}
}

func (s *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	q := `
		SELECT ` + bookingViewColumns + `
		FROM bookings b
		JOIN rooms r ON r.id = b.room_id
		JOIN users u ON u.id = b.user_id
		WHERE b.id = @id`

	view, err := scanBookingView(s.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking", err)
	}
	return view, nil
}

func (s *BookingReadStore) FindByUser(ctx context.Context, userID uuid.UUID) ([]*queries.BookingView, error) {
	q := `
		SELECT ` + bookingViewColumns + `
		FROM bookings b
		JOIN rooms r ON r.id = b.room_id
		JOIN users u ON u.id = b.user_id
		WHERE b.user_id = @user_id
		ORDER BY b.start_time DESC`

	return s.queryBookingViews(ctx, q, pgx.NamedArgs{"user_id": userID})
}

func (s *BookingReadStore) FindAll(ctx context.Context) ([]*queries.BookingView, error) {
	q := `
		SELECT ` + bookingViewColumns + `
		FROM bookings b
		JOIN rooms r ON r.id = b.room_id
		JOIN users u ON u.id = b.user_id
		ORDER BY b.start_time DESC`

	return s.queryBookingViews(ctx, q, pgx.NamedArgs{})
}

func (s *BookingReadStore) FindByRoom(ctx context.Context, roomID uuid.UUID, from, to *time.Time) ([]*queries.BookingView, error) {
	q := `
		SELECT ` + bookingViewColumns + `
		FROM bookings b
		JOIN rooms r ON r.id = b.room_id
		JOIN users u ON u.id = b.user_id
		WHERE b.room_id = @room_id
		  AND (@from::timestamptz IS NULL OR b.end_time > @from)
		  AND (@to::timestamptz IS NULL OR b.start_time < @to)
		ORDER BY b.start_time`

	args := pgx.NamedArgs{
		"room_id": roomID,
		"from":    pgconv.TimePtrToPgtype(from),
		"to":      pgconv.TimePtrToPgtype(to),
	}
	return s.queryBookingViews(ctx, q, args)
}

func (s *BookingReadStore) queryBookingViews(ctx context.Context, q string, args pgx.NamedArgs) ([]*queries.BookingView, error) {
	rows, err := s.db.Query(ctx, q, args)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings", err)
	}
	defer rows.Close()

	var views []*queries.BookingView
	for rows.Next() {
		view, err := scanBookingView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read bookings", err)
	}
	return views, nil
}

func scanBookingView(row pgx.Row) (*queries.BookingView, error) {
	var view queries.BookingView
	err := row.Scan(
		&view.ID, &view.RoomID, &view.RoomName, &view.UserID, &view.UserName,
		&view.StartTime, &view.EndTime, &view.Purpose, &view.Status,
		&view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &view, nil
}
