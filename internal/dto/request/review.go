package request

type CreateReviewRequest struct {
	BusID   int64  `json:"bus_id" validate:"required,min=1"`
	Phone   string `json:"phone" validate:"required,min=10,max=15"`
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment,omitempty" validate:"omitempty,max=500"`
}
