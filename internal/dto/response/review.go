package response

import (
	"time"

	"bus-ticketing/internal/data/entity"
)

type ReviewResponse struct {
	ID          int64     `json:"id"`
	BusID       int64     `json:"bus_id"`
	PassengerID int64     `json:"passenger_id"`
	Rating      int       `json:"rating"`
	Comment     string    `json:"comment,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func ReviewToResponse(review *entity.Review) ReviewResponse {
	return ReviewResponse{
		ID:          review.ID,
		BusID:       review.BusID,
		PassengerID: review.PassengerID,
		Rating:      review.Rating,
		Comment:     review.Comment,
		CreatedAt:   review.CreatedAt,
	}
}
