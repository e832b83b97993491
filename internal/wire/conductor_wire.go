package wire

import (
	"bus-ticketing/internal/adaptor"
	"bus-ticketing/internal/data/entity"
	"bus-ticketing/internal/data/repository"
	"bus-ticketing/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireConductor(
	r chi.Router,
	conductorHandler *adaptor.ConductorHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	r.Route("/api/conductor", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.RequireRole(string(entity.RoleConductor), log))

		r.Get("/manifest", conductorHandler.GetManifest)
		r.Get("/dashboard", conductorHandler.GetDashboard)
		r.Post("/incidents", conductorHandler.ReportIncident)
	})
}
