package request

type CreateDonationRequest struct {
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	Message     *string `json:"message,omitempty"`
	IsAnonymous bool    `json:"is_anonymous"`
}
