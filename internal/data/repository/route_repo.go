package repository

import (
	"context"
	"fmt"

	"bus-ticketing/internal/data/entity"
	"bus-ticketing/pkg/database"

	"go.uber.org/zap"
)

type RouteRepository interface {
	Create(ctx context.Context, route *entity.BusRoute) error
	FindByBusID(ctx context.Context, busID int64) ([]*entity.BusRoute, error)
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)

	// Stops
	CreateStop(ctx context.Context, stop *entity.Stop) error
	FindStopsByRouteID(ctx context.Context, routeID int64) ([]*entity.Stop, error)
}

type routeRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewRouteRepository(db database.PgxIface, log *zap.Logger) RouteRepository {
	return &routeRepository{
		db:  db,
		log: log.With(zap.String("repository", "route")),
	}
}

func (r *routeRepository) Create(ctx context.Context, route *entity.BusRoute) error {
	query := `
		INSERT INTO bus_routes (bus_id, source, destination, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		route.BusID,
		route.Source,
		route.Destination,
		route.CreatedAt,
		route.UpdatedAt,
	).Scan(&route.ID)

	if err != nil {
		r.log.Error("Failed to create route",
			zap.Error(err),
			zap.Int64("bus_id", route.BusID),
			zap.String("source", route.Source),
			zap.String("destination", route.Destination),
		)
		return fmt.Errorf("create route %s -> %s: %w", route.Source, route.Destination, err)
	}

	return nil
}

func (r *routeRepository) FindByBusID(ctx context.Context, busID int64) ([]*entity.BusRoute, error) {
	query := `SELECT id, bus_id, source, destination, created_at, updated_at FROM bus_routes WHERE bus_id = $1 ORDER BY id`

	rows, err := r.db.Query(ctx, query, busID)
	if err != nil {
		r.log.Error("Failed to find routes by bus ID", zap.Error(err), zap.Int64("bus_id", busID))
		return nil, fmt.Errorf("find routes for bus %d: %w", busID, err)
	}
	defer rows.Close()

	var routes []*entity.BusRoute
	for rows.Next() {
		var route entity.BusRoute
		err := rows.Scan(&route.ID, &route.BusID, &route.Source, &route.Destination, &route.CreatedAt, &route.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan route row: %w", err)
		}
		routes = append(routes, &route)
	}

	return routes, rows.Err()
}

func (r *routeRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM bus_routes WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete route", zap.Error(err), zap.Int64("route_id", id))
		return fmt.Errorf("delete route %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return entity.ErrRouteNotFound
	}

	return nil
}

func (r *routeRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM bus_routes`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count routes: %w", err)
	}
	return count, nil
}

func (r *routeRepository) CreateStop(ctx context.Context, stop *entity.Stop) error {
	query := `
		INSERT INTO stops (route_id, stop_name, stop_order, arrival_time, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		stop.RouteID,
		stop.StopName,
		stop.StopOrder,
		stop.ArrivalTime,
		stop.CreatedAt,
	).Scan(&stop.ID)

	if err != nil {
		r.log.Error("Failed to create stop",
			zap.Error(err),
			zap.Int64("route_id", stop.RouteID),
			zap.String("stop_name", stop.StopName),
		)
		return fmt.Errorf("create stop %s: %w", stop.StopName, err)
	}

	return nil
}

func (r *routeRepository) FindStopsByRouteID(ctx context.Context, routeID int64) ([]*entity.Stop, error) {
	query := `SELECT id, route_id, stop_name, stop_order, arrival_time, created_at FROM stops WHERE route_id = $1 ORDER BY stop_order`

	rows, err := r.db.Query(ctx, query, routeID)
	if err != nil {
		r.log.Error("Failed to find stops by route ID", zap.Error(err), zap.Int64("route_id", routeID))
		return nil, fmt.Errorf("find stops for route %d: %w", routeID, err)
	}
	defer rows.Close()

	var stops []*entity.Stop
	for rows.Next() {
		var stop entity.Stop
		err := rows.Scan(&stop.ID, &stop.RouteID, &stop.StopName, &stop.StopOrder, &stop.ArrivalTime, &stop.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan stop row: %w", err)
		}
		stops = append(stops, &stop)
	}

	return stops, rows.Err()
}
