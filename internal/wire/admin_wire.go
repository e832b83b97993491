package wire

import (
	"bus-ticketing/internal/adaptor"
	"bus-ticketing/internal/data/entity"
	"bus-ticketing/internal/data/repository"
	"bus-ticketing/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAdmin(
	r chi.Router,
	adminHandler *adaptor.AdminHandler,
	bookingHandler *adaptor.BookingHandler,
	busHandler *adaptor.BusHandler,
	authHandler *adaptor.AuthHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	r.Route("/api/admin", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.RequireRole(string(entity.RoleAdmin), log))

		r.Get("/dashboard", adminHandler.GetDashboardStats)
		r.Get("/reports/revenue", adminHandler.GetRevenueReport)

		r.Get("/bookings", bookingHandler.ListBookings)

		r.Post("/buses", busHandler.CreateBus)
		r.Get("/buses/{id}/bookings", bookingHandler.GetBookingsByBus)
		r.Put("/buses/{id}", busHandler.UpdateBus)
		r.Delete("/buses/{id}", busHandler.DeleteBus)

		r.Post("/conductors", authHandler.CreateConductor)
		r.Put("/conductors/{id}/bus", adminHandler.AssignConductorBus)

		r.Get("/incidents", adminHandler.ListIncidents)
		r.Put("/incidents/{id}/resolve", adminHandler.ResolveIncident)

		r.Get("/notifications", adminHandler.GetNotifications)
		r.Patch("/notifications/{id}/read", adminHandler.MarkNotificationRead)
	})
}
