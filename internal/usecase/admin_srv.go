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

type AdminService interface {
	GetDashboardStats(ctx context.Context) (*response.DashboardStatsResponse, error)
	GetRevenueReport(ctx context.Context, from, to time.Time) (*response.RevenueReportResponse, error)
	ListIncidents(ctx context.Context, req *request.PaginatedRequest) ([]*entity.IncidentReport, error)
	ResolveIncident(ctx context.Context, id int64) error
	AssignConductorBus(ctx context.Context, conductorID int64, req *request.AssignBusRequest) error
	GetNotifications(ctx context.Context, req *request.PaginatedRequest) ([]response.NotificationResponse, error)
	MarkNotificationRead(ctx context.Context, id int64) error
}

type adminService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewAdminService(repo *repository.Repository, log *zap.Logger) AdminService {
	return &adminService{
		repo: repo,
		log:  log.With(zap.String("service", "admin")),
	}
}

func (s *adminService) GetDashboardStats(ctx context.Context) (*response.DashboardStatsResponse, error) {
	totalBuses, err := s.repo.Bus.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count buses: %w", err)
	}

	activeBuses, err := s.repo.Bus.CountByStatus(ctx, entity.BusStatusActive)
	if err != nil {
		return nil, fmt.Errorf("count active buses: %w", err)
	}

	totalRoutes, err := s.repo.Route.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count routes: %w", err)
	}

	totalBookings, err := s.repo.Booking.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count bookings: %w", err)
	}

	startOfDay := time.Now().Truncate(24 * time.Hour)
	todayBookings, err := s.repo.Booking.CountSince(ctx, startOfDay)
	if err != nil {
		return nil, fmt.Errorf("count today bookings: %w", err)
	}

	totalPassengers, err := s.repo.Passenger.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count passengers: %w", err)
	}

	return &response.DashboardStatsResponse{
		TotalBuses:      totalBuses,
		ActiveBuses:     activeBuses,
		TotalRoutes:     totalRoutes,
		TotalBookings:   totalBookings,
		TodayBookings:   todayBookings,
		TotalPassengers: totalPassengers,
	}, nil
}

func (s *adminService) GetRevenueReport(ctx context.Context, from, to time.Time) (*response.RevenueReportResponse, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("report range end %s before start %s", to.Format(time.DateOnly), from.Format(time.DateOnly))
	}

	rows, err := s.repo.Booking.RevenueByDay(ctx, from, to)
	if err != nil {
		s.log.Error("Failed to build revenue report", zap.Error(err))
		return nil, fmt.Errorf("revenue report: %w", err)
	}

	report := &response.RevenueReportResponse{
		From:   from.Format(time.DateOnly),
		To:     to.Format(time.DateOnly),
		PerDay: make([]response.DailyRevenueResponse, len(rows)),
	}
	for i, row := range rows {
		report.PerDay[i] = response.DailyRevenueToResponse(row)
		report.Total += row.Revenue
	}

	s.log.Info("Revenue report generated",
		zap.String("from", report.From),
		zap.String("to", report.To),
		zap.Int64("total_revenue", report.Total),
	)
	return report, nil
}

func (s *adminService) ListIncidents(ctx context.Context, req *request.PaginatedRequest) ([]*entity.IncidentReport, error) {
	incidents, err := s.repo.Incident.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to list incidents", zap.Error(err))
		return nil, fmt.Errorf("list incidents: %w", err)
	}
	return incidents, nil
}

func (s *adminService) ResolveIncident(ctx context.Context, id int64) error {
	if err := s.repo.Incident.UpdateStatus(ctx, id, entity.IncidentStatusResolved); err != nil {
		return fmt.Errorf("resolve incident %d: %w", id, err)
	}

	s.log.Info("Incident resolved", zap.Int64("incident_id", id))
	return nil
}

func (s *adminService) AssignConductorBus(ctx context.Context, conductorID int64, req *request.AssignBusRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	bus, err := s.repo.Bus.FindByID(ctx, req.BusID)
	if err != nil {
		return fmt.Errorf("find bus %d: %w", req.BusID, err)
	}
	if bus == nil {
		return entity.ErrBusNotFound
	}

	if err := s.repo.Conductor.AssignBus(ctx, conductorID, req.BusID); err != nil {
		return fmt.Errorf("assign bus %d to conductor %d: %w", req.BusID, conductorID, err)
	}

	s.log.Info("Conductor reassigned",
		zap.Int64("conductor_id", conductorID),
		zap.Int64("bus_id", req.BusID),
	)
	return nil
}

func (s *adminService) GetNotifications(ctx context.Context, req *request.PaginatedRequest) ([]response.NotificationResponse, error) {
	// Admin notifications are shared: the notifier writes them under a
	// single well-known user ID.
	rows, err := s.repo.Notification.FindByUser(ctx, "admin", "0", req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to list notifications", zap.Error(err))
		return nil, fmt.Errorf("list notifications: %w", err)
	}

	responses := make([]response.NotificationResponse, len(rows))
	for i, n := range rows {
		responses[i] = response.NotificationToResponse(n)
	}
	return responses, nil
}

func (s *adminService) MarkNotificationRead(ctx context.Context, id int64) error {
	if err := s.repo.Notification.MarkRead(ctx, id); err != nil {
		return fmt.Errorf("mark notification %d read: %w", id, err)
	}
	return nil
}
