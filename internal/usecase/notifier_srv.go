package usecase

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"bus-ticketing/internal/data/entity"
	"bus-ticketing/internal/data/repository"
	"bus-ticketing/pkg/events"
	"bus-ticketing/pkg/mailer"

	"go.uber.org/zap"
)

// Notifier dispatches booking and incident notifications. Every method is
// fire-and-forget: it returns immediately and the actual delivery (email,
// notification row, event broadcast) happens on a background goroutine.
// Delivery failures are logged, never surfaced to the caller.
type Notifier interface {
	SeatBooked(booking *entity.Booking, passenger *entity.Passenger, bus *entity.Bus)
	StatusChanged(booking *entity.Booking, previous entity.BookingStatus)
	IncidentReported(incident *entity.IncidentReport, bus *entity.Bus)
}

type notifierService struct {
	repo   *repository.Repository
	mailer mailer.Mailer
	hub    *events.Hub
	log    *zap.Logger
}

func NewNotifier(repo *repository.Repository, m mailer.Mailer, hub *events.Hub, log *zap.Logger) Notifier {
	return &notifierService{
		repo:   repo,
		mailer: m,
		hub:    hub,
		log:    log.With(zap.String("service", "notifier")),
	}
}

func (s *notifierService) SeatBooked(booking *entity.Booking, passenger *entity.Passenger, bus *entity.Bus) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		s.hub.Publish(events.Event{
			Type:  events.EventSeatBooked,
			BusID: booking.BusID,
			Payload: map[string]any{
				"seat_number":   booking.SeatNumber,
				"ticket_number": booking.TicketNumber.String(),
			},
		})

		title := "Booking confirmed"
		message := fmt.Sprintf("Seat %d on %s (%s), %s to %s. Ticket %s.",
			booking.SeatNumber, bus.BusName, bus.BusNumber,
			booking.FromStopName, booking.ToStopName, booking.TicketNumber)

		s.record(ctx, "passenger", booking.PassengerID, title, message)

		if passenger.Email != nil {
			if err := s.mailer.Send(*passenger.Email, title, message); err != nil {
				s.log.Error("Failed to send booking email",
					zap.Error(err),
					zap.Int64("booking_id", booking.ID),
				)
			}
		}
	}()
}

func (s *notifierService) StatusChanged(booking *entity.Booking, previous entity.BookingStatus) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		s.hub.Publish(events.Event{
			Type:  eventTypeFor(booking.Status),
			BusID: booking.BusID,
			Payload: map[string]any{
				"seat_number": booking.SeatNumber,
				"status":      string(booking.Status),
			},
		})

		title := fmt.Sprintf("Booking %s", booking.Status)
		message := fmt.Sprintf("Ticket %s moved from %s to %s.",
			booking.TicketNumber, previous, booking.Status)

		s.record(ctx, "passenger", booking.PassengerID, title, message)
	}()
}

func (s *notifierService) IncidentReported(incident *entity.IncidentReport, bus *entity.Bus) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		s.hub.Publish(events.Event{
			Type:  events.EventIncidentReported,
			BusID: incident.BusID,
			Payload: map[string]any{
				"incident_type": incident.IncidentType,
			},
		})

		title := fmt.Sprintf("Incident on bus %s", bus.BusNumber)
		s.record(ctx, "admin", 0, title, incident.Description)
	}()
}

func (s *notifierService) record(ctx context.Context, userType string, userID int64, title, message string) {
	notification := &entity.Notification{
		BaseSimple: entity.BaseSimple{CreatedAt: time.Now()},
		UserType:   userType,
		UserID:     strconv.FormatInt(userID, 10),
		Title:      title,
		Message:    message,
	}

	if err := s.repo.Notification.Create(ctx, notification); err != nil {
		s.log.Error("Failed to record notification",
			zap.Error(err),
			zap.String("user_type", userType),
			zap.String("title", title),
		)
	}
}

func eventTypeFor(status entity.BookingStatus) string {
	switch status {
	case entity.BookingStatusBoarded:
		return events.EventPassengerBoarded
	case entity.BookingStatusCompleted:
		return events.EventTripCompleted
	case entity.BookingStatusCancelled:
		return events.EventSeatReleased
	}
	return events.EventSeatBooked
}
