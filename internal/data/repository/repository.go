package repository

import (
	"bus-ticketing/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User         UserRepository
	Session      SessionRepository
	Bus          BusRepository
	Route        RouteRepository
	Passenger    PassengerRepository
	Booking      BookingRepository
	Payment      PaymentRepository
	Review       ReviewRepository
	Conductor    ConductorRepository
	Incident     IncidentRepository
	Notification NotificationRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:         NewUserRepository(db, log),
		Session:      NewSessionRepository(db, log),
		Bus:          NewBusRepository(db, log),
		Route:        NewRouteRepository(db, log),
		Passenger:    NewPassengerRepository(db, log),
		Booking:      NewBookingRepository(db, log),
		Payment:      NewPaymentRepository(db, log),
		Review:       NewReviewRepository(db, log),
		Conductor:    NewConductorRepository(db, log),
		Incident:     NewIncidentRepository(db, log),
		Notification: NewNotificationRepository(db, log),
	}
}
