package response

import (
	"time"

	"coworking-backend/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type UserResponse struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	FullName     string    `json:"full_name"`
	Role         string    `json:"role"`
	IsActive     bool      `json:"is_active"`
	Karma        int32     `json:"karma"`
	TotalDonated float64   `json:"total_donated"`
	CreatedAt    time.Time `json:"created_at"`
}

type VisitResponse struct {
	ID              uuid.UUID  `json:"id"`
	UserID          uuid.UUID  `json:"user_id"`
	CheckIn         time.Time  `json:"check_in"`
	CheckOut        *time.Time `json:"check_out,omitempty"`
	DurationMinutes int32      `json:"duration_minutes"`
}

type CheckOutResponse struct {
	VisitID         uuid.UUID `json:"visit_id"`
	DurationMinutes int       `json:"duration_minutes"`
}

type DonationResponse struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	UserName    *string   `json:"user_name,omitempty"`
	Amount      float64   `json:"amount"`
	Message     *string   `json:"message,omitempty"`
	IsAnonymous bool      `json:"is_anonymous"`
	DonatedAt   time.Time `json:"donated_at"`
}

func FromUserView(view *queries.UserView) *UserResponse {
	var resp UserResponse
	_ = copier.Copy(&resp, view)
	return &resp
}

func FromVisitViews(views []*queries.VisitView) []*VisitResponse {
	resps := make([]*VisitResponse, len(views))
	for i, v := range views {
		var resp VisitResponse
		_ = copier.Copy(&resp, v)
		resps[i] = &resp
	}
	return resps
}

func FromDonationViews(views []*queries.DonationView) []*DonationResponse {
	resps := make([]*DonationResponse, len(views))
	for i, v := range views {
		var resp DonationResponse
		_ = copier.Copy(&resp, v)
		resps[i] = &resp
	}
	return resps
}
