package wire

import (
	"net/http"

	"bus-ticketing/internal/adaptor"
	"bus-ticketing/internal/data/repository"
	"bus-ticketing/internal/usecase"
	"bus-ticketing/pkg/database"
	"bus-ticketing/pkg/events"
	"bus-ticketing/pkg/middleware"
	"bus-ticketing/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type App struct {
	Router *chi.Mux
	Hub    *events.Hub
}

func Wiring(db database.PgxIface, config *utils.Config, logger *zap.Logger) *App {
	repo := repository.NewRepository(db, logger)
	hub := events.NewHub()
	service := usecase.NewService(repo, db, config, hub, logger)
	handler := adaptor.NewHandler(service, hub, logger)

	router := setupRouter(handler, repo, config, logger)

	return &App{
		Router: router,
		Hub:    hub,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(config.CORS.AllowedOrigins))

	wireAuth(r, handler.Auth, repo, logger)
	wireBus(r, handler.Bus, handler.Review, repo, logger)
	wireBooking(r, handler.Booking, repo, logger)
	wireConductor(r, handler.Conductor, repo, logger)
	wireAdmin(r, handler.Admin, handler.Booking, handler.Bus, handler.Auth, repo, logger)
	wireReview(r, handler.Review, logger)

	// Live seat updates
	r.Get("/api/events", handler.Events.Stream)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
