package adaptor

import (
	"bus-ticketing/internal/usecase"
	"bus-ticketing/pkg/events"

	"go.uber.org/zap"
)

type Handler struct {
	Auth      *AuthHandler
	Bus       *BusHandler
	Booking   *BookingHandler
	Conductor *ConductorHandler
	Admin     *AdminHandler
	Review    *ReviewHandler
	Events    *EventsHandler
}

func NewHandler(service *usecase.Service, hub *events.Hub, log *zap.Logger) *Handler {
	return &Handler{
		Auth:      NewAuthHandler(service.Auth, log),
		Bus:       NewBusHandler(service.Bus, log),
		Booking:   NewBookingHandler(service.Reservation, service.Booking, log),
		Conductor: NewConductorHandler(service.Conductor, log),
		Admin:     NewAdminHandler(service.Admin, log),
		Review:    NewReviewHandler(service.Review, log),
		Events:    NewEventsHandler(hub, log),
	}
}
