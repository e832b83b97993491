package wire

import (
	"bus-ticketing/internal/adaptor"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireReview(
	r chi.Router,
	reviewHandler *adaptor.ReviewHandler,
	log *zap.Logger,
) {
	// Review submission is verified against completed trips, not a login.
	r.Post("/api/reviews", reviewHandler.CreateReview)
}
