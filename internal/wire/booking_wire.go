package wire

import (
	"bus-ticketing/internal/adaptor"
	"bus-ticketing/internal/data/entity"
	"bus-ticketing/internal/data/repository"
	"bus-ticketing/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// Occupancy view lives beside the bus catalogue.
	r.Get("/api/buses/{id}/seats", bookingHandler.GetOccupiedSeats)

	// Passengers book without an account; the ticket number is the receipt.
	r.Route("/api/bookings", func(r chi.Router) {
		r.Post("/", bookingHandler.ReserveSeat)
		r.Get("/", bookingHandler.GetBookingsByPhone)
		r.Get("/{id}", bookingHandler.GetBooking)
		r.Get("/{id}/ticket", bookingHandler.GetTicket)
		r.Put("/{id}/cancel", bookingHandler.CancelBooking)

		// Boarded/Completed transitions are staff actions.
		r.With(
			middleware.AuthSession(repo.Session, repo.User, log),
			middleware.RequireRole(string(entity.RoleConductor), log),
		).Patch("/{id}/status", bookingHandler.UpdateStatus)
	})
}
