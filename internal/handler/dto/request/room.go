package request

type CreateRoomRequest struct {
	Name        string `json:"name" binding:"required"`
	Capacity    int    `json:"capacity" binding:"required,gt=0"`
	Equipment   string `json:"equipment"`
	Description string `json:"description"`
}

type UpdateRoomRequest struct {
	Name        *string `json:"name,omitempty"`
	Capacity    *int    `json:"capacity,omitempty"`
	Equipment   *string `json:"equipment,omitempty"`
	Description *string `json:"description,omitempty"`
}
