package usecase

import (
	"bus-ticketing/internal/data/repository"
	"bus-ticketing/pkg/database"
	"bus-ticketing/pkg/events"
	"bus-ticketing/pkg/mailer"
	"bus-ticketing/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth        AuthService
	Bus         BusService
	Reservation ReservationService
	Booking     BookingService
	Conductor   ConductorService
	Admin       AdminService
	Review      ReviewService
	Notifier    Notifier
}

func NewService(repo *repository.Repository, db database.PgxIface, config *utils.Config, hub *events.Hub, log *zap.Logger) *Service {
	notifier := NewNotifier(repo, mailer.NewMailer(config.Email, log), hub, log)

	return &Service{
		Auth:        NewAuthService(repo, db, config, log),
		Bus:         NewBusService(repo, db, log),
		Reservation: NewReservationService(repo, db, notifier, log),
		Booking:     NewBookingService(repo, log),
		Conductor:   NewConductorService(repo, notifier, log),
		Admin:       NewAdminService(repo, log),
		Review:      NewReviewService(repo, log),
		Notifier:    notifier,
	}
}
