//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"coworking-backend/internal/domain/user"
	"coworking-backend/internal/infra"
	"coworking-backend/internal/pkg/permission"
	"coworking-backend/internal/usecase/queries"
	"coworking-backend/internal/usecase/shared"
	"coworking-backend/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubBookingReadStore struct {
	byID    map[uuid.UUID]*queries.BookingView
	byUser  map[uuid.UUID][]*queries.BookingView
	all     []*queries.BookingView
	byRoom  []*queries.BookingView
	gotFrom *time.Time
	gotTo   *time.Time
}

func (s *stubBookingReadStore) FindByID(_ context.Context, id uuid.UUID) (*queries.BookingView, error) {
	if v, ok := s.byID[id]; ok {
		return v, nil
	}
	return nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
}

func (s *stubBookingReadStore) FindByUser(_ context.Context, userID uuid.UUID) ([]*queries.BookingView, error) {
	return s.byUser[userID], nil
}

func (s *stubBookingReadStore) FindAll(_ context.Context) ([]*queries.BookingView, error) {
	return s.all, nil
}

func (s *stubBookingReadStore) FindByRoom(_ context.Context, _ uuid.UUID, from, to *time.Time) ([]*queries.BookingView, error) {
	s.gotFrom, s.gotTo = from, to
	return s.byRoom, nil
}

func newBookingQueriesFixture(view *queries.BookingView) (queries.BookingQueries, *stubBookingReadStore) {
	store := &stubBookingReadStore{
		byID:   map[uuid.UUID]*queries.BookingView{view.ID: view},
		byUser: map[uuid.UUID][]*queries.BookingView{view.UserID: {view}},
		all:    []*queries.BookingView{view},
	}
	rooms := &stubRoomReadStore{
		findByIDFn: func(id uuid.UUID) (*queries.RoomView, error) {
			if id == view.RoomID {
				return builder.NewRoomBuilder().With(func(r *builder.RoomBuilder) { r.ID = view.RoomID }).BuildView(), nil
			}
			return nil, infra.WrapRepoErr("room not found", nil, infra.KindNotFound)
		},
	}
	return queries.NewBookingQueries(store, rooms, permission.NewMatrix()), store
}

func TestBookingQueriesGetByID(t *testing.T) {
	ctx := context.Background()
	view := builder.NewBookingBuilder().BuildView()
	q, _ := newBookingQueriesFixture(view)

	t.Run("owner sees the booking", func(t *testing.T) {
		actor := shared.UserContext{ID: view.UserID, Role: user.RoleUser}

		got, err := q.GetByID(ctx, actor, view.ID)
		require.NoError(t, err)
		assert.Equal(t, view.ID, got.ID)
	})

	t.Run("other users are blocked", func(t *testing.T) {
		actor := shared.UserContext{ID: uuid.New(), Role: user.RoleUser}

		_, err := q.GetByID(ctx, actor, view.ID)
		assert.ErrorIs(t, err, queries.ErrBookingHidden)
	})

	t.Run("admin sees any booking", func(t *testing.T) {
		actor := shared.UserContext{ID: uuid.New(), Role: user.RoleAdmin}

		got, err := q.GetByID(ctx, actor, view.ID)
		require.NoError(t, err)
		assert.Equal(t, view.ID, got.ID)
	})

	t.Run("unknown booking", func(t *testing.T) {
		actor := shared.UserContext{ID: view.UserID, Role: user.RoleUser}

		_, err := q.GetByID(ctx, actor, uuid.New())
		assert.ErrorIs(t, err, queries.ErrBookingNotFound)
	})
}

func TestBookingQueriesList(t *testing.T) {
	ctx := context.Background()
	view := builder.NewBookingBuilder().BuildView()
	q, store := newBookingQueriesFixture(view)

	other := builder.NewBookingBuilder().BuildView()
	store.all = append(store.all, other)

	t.Run("regular users get only their own bookings", func(t *testing.T) {
		actor := shared.UserContext{ID: view.UserID, Role: user.RoleUser}

		views, err := q.List(ctx, actor)
		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.Equal(t, view.ID, views[0].ID)
	})

	t.Run("admins get everything", func(t *testing.T) {
		actor := shared.UserContext{ID: uuid.New(), Role: user.RoleAdmin}

		views, err := q.List(ctx, actor)
		require.NoError(t, err)
		assert.Len(t, views, 2)
	})
}

func TestBookingQueriesListByRoom(t *testing.T) {
	ctx := context.Background()
	view := builder.NewBookingBuilder().BuildView()
	q, store := newBookingQueriesFixture(view)
	store.byRoom = []*queries.BookingView{view}

	t.Run("filters pass through to the store", func(t *testing.T) {
		from := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
		to := from.Add(24 * time.Hour)

		views, err := q.ListByRoom(ctx, view.RoomID, &from, &to)
		require.NoError(t, err)
		assert.Len(t, views, 1)
		require.NotNil(t, store.gotFrom)
		assert.Equal(t, from, *store.gotFrom)
		assert.Equal(t, to, *store.gotTo)
	})

	t.Run("unknown room", func(t *testing.T) {
		_, err := q.ListByRoom(ctx, uuid.New(), nil, nil)
		assert.ErrorIs(t, err, queries.ErrRoomNotFound)
	})
}
