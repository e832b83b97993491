package wire

import (
	"bus-ticketing/internal/adaptor"
	"bus-ticketing/internal/data/repository"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBus(
	r chi.Router,
	busHandler *adaptor.BusHandler,
	reviewHandler *adaptor.ReviewHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// Public catalogue: search, list, detail, reviews.
	r.Route("/api/buses", func(r chi.Router) {
		r.Get("/", busHandler.ListBuses)
		r.Get("/search", busHandler.SearchBuses)
		r.Get("/{id}", busHandler.GetBus)
		r.Get("/{id}/reviews", reviewHandler.GetBusReviews)
	})
}
