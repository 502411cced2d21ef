package response

import (
	"time"

	"coworking-backend/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type RoomResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Capacity    int32     `json:"capacity"`
	Equipment   string    `json:"equipment"`
	Description string    `json:"description"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type SlotResponse struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type AvailabilityResponse struct {
	RoomID   uuid.UUID      `json:"room_id"`
	RoomName string         `json:"room_name"`
	Date     string         `json:"date"`
	Slots    []SlotResponse `json:"available_slots"`
}

func FromRoomView(view *queries.RoomView) *RoomResponse {
	var resp RoomResponse
	_ = copier.Copy(&resp, view)
	return &resp
}

func FromRoomViews(views []*queries.RoomView) []*RoomResponse {
	resps := make([]*RoomResponse, len(views))
	for i, v := range views {
		resps[i] = FromRoomView(v)
	}
	return resps
}

func FromAvailabilityView(view *queries.AvailabilityView) *AvailabilityResponse {
	resp := &AvailabilityResponse{
		RoomID:   view.RoomID,
		RoomName: view.RoomName,
		Date:     view.Date,
		Slots:    make([]SlotResponse, len(view.Slots)),
	}
	for i, s := range view.Slots {
		resp.Slots[i] = SlotResponse{Start: s.Start, End: s.End}
	}
	return resp
}
