package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"bus-ticketing/internal/data/entity"
	"bus-ticketing/internal/data/repository"
	"bus-ticketing/internal/dto/request"
	"bus-ticketing/internal/dto/response"
	"bus-ticketing/pkg/database"
	"bus-ticketing/pkg/utils"

	"go.uber.org/zap"
)

type BusService interface {
	CreateBus(ctx context.Context, req *request.CreateBusRequest) (*response.BusResponse, error)
	GetBusByID(ctx context.Context, id int64) (*response.BusResponse, error)
	ListBuses(ctx context.Context) ([]response.BusResponse, error)
	SearchBuses(ctx context.Context, source, destination string) ([]response.BusResponse, error)
	UpdateBus(ctx context.Context, id int64, req *request.UpdateBusRequest) (*response.BusResponse, error)
	DeleteBus(ctx context.Context, id int64) error
}

type busService struct {
	repo *repository.Repository
	db   database.PgxIface
	log  *zap.Logger
}

func NewBusService(repo *repository.Repository, db database.PgxIface, log *zap.Logger) BusService {
	return &busService{
		repo: repo,
		db:   db,
		log:  log.With(zap.String("service", "bus")),
	}
}

func (s *busService) CreateBus(ctx context.Context, req *request.CreateBusRequest) (*response.BusResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create bus validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	now := time.Now()
	bus := &entity.Bus{
		Base:       entity.Base{CreatedAt: now, UpdatedAt: now},
		BusNumber:  req.BusNumber,
		BusName:    req.BusName,
		TotalSeats: req.TotalSeats,
		Type:       entity.BusType(req.Type),
		Status:     entity.BusStatusActive,
		Amenities:  strings.Join(req.Amenities, ","),
		SeatConfig: req.SeatConfig,
	}

	var route *entity.BusRoute
	var stops []*entity.Stop

	err := s.db.WithTx(ctx, func(ctx context.Context) error {
		if err := s.repo.Bus.Create(ctx, bus); err != nil {
			return err
		}

		if req.Route == nil {
			return nil
		}

		route = &entity.BusRoute{
			Base:        entity.Base{CreatedAt: now, UpdatedAt: now},
			BusID:       bus.ID,
			Source:      req.Route.Source,
			Destination: req.Route.Destination,
		}
		if err := s.repo.Route.Create(ctx, route); err != nil {
			return err
		}

		for i, input := range req.Route.Stops {
			stop := &entity.Stop{
				BaseSimple:  entity.BaseSimple{CreatedAt: now},
				RouteID:     route.ID,
				StopName:    input.StopName,
				StopOrder:   i + 1,
				ArrivalTime: input.ArrivalTime,
			}
			if err := s.repo.Route.CreateStop(ctx, stop); err != nil {
				return err
			}
			stops = append(stops, stop)
		}
		return nil
	})
	if err != nil {
		s.log.Error("Failed to create bus", zap.Error(err), zap.String("bus_number", req.BusNumber))
		return nil, fmt.Errorf("create bus: %w", err)
	}

	s.log.Info("Bus created",
		zap.Int64("bus_id", bus.ID),
		zap.String("bus_number", bus.BusNumber),
		zap.Int("total_seats", bus.TotalSeats),
	)

	resp := response.BusToResponse(bus)
	if route != nil {
		resp.Route = response.RouteToResponse(route, stops)
	}
	return &resp, nil
}

func (s *busService) GetBusByID(ctx context.Context, id int64) (*response.BusResponse, error) {
	bus, err := s.repo.Bus.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find bus %d: %w", id, err)
	}
	if bus == nil {
		return nil, entity.ErrBusNotFound
	}

	resp := s.buildBusResponse(ctx, bus)
	return &resp, nil
}

func (s *busService) ListBuses(ctx context.Context) ([]response.BusResponse, error) {
	buses, err := s.repo.Bus.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to list buses", zap.Error(err))
		return nil, fmt.Errorf("list buses: %w", err)
	}

	responses := make([]response.BusResponse, len(buses))
	for i, bus := range buses {
		responses[i] = s.buildBusResponse(ctx, bus)
	}
	return responses, nil
}

func (s *busService) SearchBuses(ctx context.Context, source, destination string) ([]response.BusResponse, error) {
	if source == "" || destination == "" {
		return nil, fmt.Errorf("source and destination are required")
	}

	buses, err := s.repo.Bus.Search(ctx, source, destination)
	if err != nil {
		s.log.Error("Failed to search buses",
			zap.Error(err),
			zap.String("source", source),
			zap.String("destination", destination),
		)
		return nil, fmt.Errorf("search buses: %w", err)
	}

	responses := make([]response.BusResponse, len(buses))
	for i, bus := range buses {
		responses[i] = s.buildBusResponse(ctx, bus)
	}

	s.log.Info("Bus search",
		zap.String("source", source),
		zap.String("destination", destination),
		zap.Int("results", len(buses)),
	)
	return responses, nil
}

func (s *busService) UpdateBus(ctx context.Context, id int64, req *request.UpdateBusRequest) (*response.BusResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	bus, err := s.repo.Bus.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find bus %d: %w", id, err)
	}
	if bus == nil {
		return nil, entity.ErrBusNotFound
	}

	if req.BusName != "" {
		bus.BusName = req.BusName
	}
	if req.Status != "" {
		bus.Status = entity.BusStatus(req.Status)
		if bus.Status == entity.BusStatusMaintenance {
			now := time.Now()
			bus.LastMaintenance = &now
		}
	}
	if req.Amenities != nil {
		bus.Amenities = strings.Join(req.Amenities, ",")
	}
	if req.SeatConfig != "" {
		bus.SeatConfig = req.SeatConfig
	}
	now := time.Now()
	bus.UpdatedAt = now

	err = s.db.WithTx(ctx, func(ctx context.Context) error {
		if err := s.repo.Bus.Update(ctx, bus); err != nil {
			return err
		}
		if req.Route == nil {
			return nil
		}
		return s.replaceRoute(ctx, bus.ID, req.Route, now)
	})
	if err != nil {
		s.log.Error("Failed to update bus", zap.Error(err), zap.Int64("bus_id", id))
		return nil, fmt.Errorf("update bus %d: %w", id, err)
	}

	s.log.Info("Bus updated", zap.Int64("bus_id", id), zap.String("status", string(bus.Status)))

	resp := s.buildBusResponse(ctx, bus)
	return &resp, nil
}

func (s *busService) DeleteBus(ctx context.Context, id int64) error {
	bus, err := s.repo.Bus.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("find bus %d: %w", id, err)
	}
	if bus == nil {
		return entity.ErrBusNotFound
	}

	active, err := s.repo.Booking.FindActiveByBusID(ctx, id)
	if err != nil {
		return fmt.Errorf("check active bookings for bus %d: %w", id, err)
	}
	if len(active) > 0 {
		return fmt.Errorf("bus %d has %d active bookings: %w", id, len(active), entity.ErrBusUnavailable)
	}

	if err := s.repo.Bus.Delete(ctx, id); err != nil {
		s.log.Error("Failed to delete bus", zap.Error(err), zap.Int64("bus_id", id))
		return fmt.Errorf("delete bus %d: %w", id, err)
	}

	s.log.Info("Bus deleted", zap.Int64("bus_id", id))
	return nil
}

// replaceRoute swaps the bus route wholesale. Deleting the old row
// cascades to its stops, so a partial stop list can never linger.
func (s *busService) replaceRoute(ctx context.Context, busID int64, input *request.RouteInput, now time.Time) error {
	existing, err := s.repo.Route.FindByBusID(ctx, busID)
	if err != nil {
		return err
	}
	for _, route := range existing {
		if err := s.repo.Route.Delete(ctx, route.ID); err != nil {
			return err
		}
	}

	route := &entity.BusRoute{
		Base:        entity.Base{CreatedAt: now, UpdatedAt: now},
		BusID:       busID,
		Source:      input.Source,
		Destination: input.Destination,
	}
	if err := s.repo.Route.Create(ctx, route); err != nil {
		return err
	}

	for i, stop := range input.Stops {
		err := s.repo.Route.CreateStop(ctx, &entity.Stop{
			BaseSimple:  entity.BaseSimple{CreatedAt: now},
			RouteID:     route.ID,
			StopName:    stop.StopName,
			StopOrder:   i + 1,
			ArrivalTime: stop.ArrivalTime,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *busService) buildBusResponse(ctx context.Context, bus *entity.Bus) response.BusResponse {
	resp := response.BusToResponse(bus)

	routes, err := s.repo.Route.FindByBusID(ctx, bus.ID)
	if err != nil || len(routes) == 0 {
		return resp
	}

	stops, _ := s.repo.Route.FindStopsByRouteID(ctx, routes[0].ID)
	resp.Route = response.RouteToResponse(routes[0], stops)
	return resp
}
