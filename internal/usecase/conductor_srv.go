package usecase

import (
	"context"
	"fmt"
	"time"

	"bus-ticketing/internal/data/entity"
	"bus-ticketing/internal/data/repository"
	"bus-ticketing/internal/dto/request"
	"bus-ticketing/internal/dto/response"
	"bus-ticketing/pkg/utils"

	"go.uber.org/zap"
)

// ConductorService is the on-bus view: the passenger manifest for the
// assigned bus, boarding counts, and incident reporting.
type ConductorService interface {
	GetManifest(ctx context.Context, userID int64) ([]response.BookingResponse, error)
	GetDashboard(ctx context.Context, userID int64) (*response.ConductorDashboardResponse, error)
	ReportIncident(ctx context.Context, userID int64, req *request.CreateIncidentRequest) error
}

type conductorService struct {
	repo     *repository.Repository
	notifier Notifier
	log      *zap.Logger
}

func NewConductorService(repo *repository.Repository, notifier Notifier, log *zap.Logger) ConductorService {
	return &conductorService{
		repo:     repo,
		notifier: notifier,
		log:      log.With(zap.String("service", "conductor")),
	}
}

func (s *conductorService) GetManifest(ctx context.Context, userID int64) ([]response.BookingResponse, error) {
	conductor, bus, err := s.assignedBus(ctx, userID)
	if err != nil {
		return nil, err
	}

	bookings, err := s.repo.Booking.FindActiveByBusID(ctx, bus.ID)
	if err != nil {
		s.log.Error("Failed to load manifest",
			zap.Error(err),
			zap.Int64("bus_id", bus.ID),
			zap.Int64("conductor_id", conductor.ID),
		)
		return nil, fmt.Errorf("load manifest for bus %d: %w", bus.ID, err)
	}

	responses := make([]response.BookingResponse, len(bookings))
	for i, booking := range bookings {
		passenger, _ := s.repo.Passenger.FindByID(ctx, booking.PassengerID)
		responses[i] = response.BookingDetailToResponse(booking, bus, passenger)
	}
	return responses, nil
}

func (s *conductorService) GetDashboard(ctx context.Context, userID int64) (*response.ConductorDashboardResponse, error) {
	_, bus, err := s.assignedBus(ctx, userID)
	if err != nil {
		return nil, err
	}

	confirmed, err := s.repo.Booking.CountByBusAndStatus(ctx, bus.ID, []entity.BookingStatus{entity.BookingStatusConfirmed})
	if err != nil {
		return nil, fmt.Errorf("count confirmed for bus %d: %w", bus.ID, err)
	}

	boarded, err := s.repo.Booking.CountByBusAndStatus(ctx, bus.ID, []entity.BookingStatus{entity.BookingStatusBoarded})
	if err != nil {
		return nil, fmt.Errorf("count boarded for bus %d: %w", bus.ID, err)
	}

	return &response.ConductorDashboardResponse{
		BusID:          bus.ID,
		TotalSeats:     bus.TotalSeats,
		ConfirmedCount: confirmed,
		BoardedCount:   boarded,
		AvailableSeats: bus.TotalSeats - int(confirmed+boarded),
	}, nil
}

func (s *conductorService) ReportIncident(ctx context.Context, userID int64, req *request.CreateIncidentRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Report incident validation failed", zap.Any("errors", errs))
		return fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	conductor, bus, err := s.assignedBus(ctx, userID)
	if err != nil {
		return err
	}

	incident := &entity.IncidentReport{
		BaseSimple:   entity.BaseSimple{CreatedAt: time.Now()},
		BusID:        bus.ID,
		ConductorID:  conductor.ID,
		IncidentType: req.IncidentType,
		Description:  req.Description,
		Status:       entity.IncidentStatusReported,
	}

	if err := s.repo.Incident.Create(ctx, incident); err != nil {
		return fmt.Errorf("report incident: %w", err)
	}

	s.log.Info("Incident reported",
		zap.Int64("incident_id", incident.ID),
		zap.Int64("bus_id", bus.ID),
		zap.String("incident_type", req.IncidentType),
	)

	s.notifier.IncidentReported(incident, bus)
	return nil
}

func (s *conductorService) assignedBus(ctx context.Context, userID int64) (*entity.Conductor, *entity.Bus, error) {
	conductor, err := s.repo.Conductor.FindByUserID(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("find conductor for user %d: %w", userID, err)
	}
	if conductor == nil {
		return nil, nil, fmt.Errorf("user %d is not a conductor", userID)
	}

	bus, err := s.repo.Bus.FindByID(ctx, conductor.AssignedBusID)
	if err != nil {
		return nil, nil, fmt.Errorf("find bus %d: %w", conductor.AssignedBusID, err)
	}
	if bus == nil {
		return nil, nil, entity.ErrBusNotFound
	}

	return conductor, bus, nil
}
