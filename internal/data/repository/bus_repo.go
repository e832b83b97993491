package repository

import (
	"context"
	"fmt"

	"bus-ticketing/internal/data/entity"
	"bus-ticketing/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type BusRepository interface {
	Create(ctx context.Context, bus *entity.Bus) error
	FindByID(ctx context.Context, id int64) (*entity.Bus, error)
	FindAll(ctx context.Context) ([]*entity.Bus, error)
	Search(ctx context.Context, source, destination string) ([]*entity.Bus, error)
	Update(ctx context.Context, bus *entity.Bus) error
	UpdateRating(ctx context.Context, busID int64) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status entity.BusStatus) (int64, error)
}

type busRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBusRepository(db database.PgxIface, log *zap.Logger) BusRepository {
	return &busRepository{
		db:  db,
		log: log.With(zap.String("repository", "bus")),
	}
}

const busColumns = `id, bus_number, bus_name, total_seats, type, status, amenities, seat_config, last_maintenance, rating, created_at, updated_at`

func scanBus(row pgx.Row) (*entity.Bus, error) {
	var b entity.Bus
	err := row.Scan(
		&b.ID,
		&b.BusNumber,
		&b.BusName,
		&b.TotalSeats,
		&b.Type,
		&b.Status,
		&b.Amenities,
		&b.SeatConfig,
		&b.LastMaintenance,
		&b.Rating,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *busRepository) Create(ctx context.Context, bus *entity.Bus) error {
	query := `
		INSERT INTO buses (bus_number, bus_name, total_seats, type, status, amenities, seat_config, last_maintenance, rating, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		bus.BusNumber,
		bus.BusName,
		bus.TotalSeats,
		bus.Type,
		bus.Status,
		bus.Amenities,
		bus.SeatConfig,
		bus.LastMaintenance,
		bus.Rating,
		bus.CreatedAt,
		bus.UpdatedAt,
	).Scan(&bus.ID)

	if err != nil {
		r.log.Error("Failed to create bus", zap.Error(err), zap.String("bus_number", bus.BusNumber))
		return fmt.Errorf("create bus %s: %w", bus.BusNumber, err)
	}

	return nil
}

func (r *busRepository) FindByID(ctx context.Context, id int64) (*entity.Bus, error) {
	query := `SELECT ` + busColumns + ` FROM buses WHERE id = $1`

	bus, err := scanBus(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find bus by ID", zap.Error(err), zap.Int64("bus_id", id))
		return nil, fmt.Errorf("find bus by ID %d: %w", id, err)
	}

	return bus, nil
}

func (r *busRepository) FindAll(ctx context.Context) ([]*entity.Bus, error) {
	query := `SELECT ` + busColumns + ` FROM buses ORDER BY bus_number`
	return r.queryBuses(ctx, query)
}

// Search returns Active buses whose route stops include both the source
// and the destination.
func (r *busRepository) Search(ctx context.Context, source, destination string) ([]*entity.Bus, error) {
	query := `
		SELECT DISTINCT b.id, b.bus_number, b.bus_name, b.total_seats, b.type, b.status, b.amenities, b.seat_config, b.last_maintenance, b.rating, b.created_at, b.updated_at
		FROM buses b
		JOIN bus_routes r ON r.bus_id = b.id
		WHERE b.status = 'Active'
		  AND EXISTS (SELECT 1 FROM stops s WHERE s.route_id = r.id AND s.stop_name ILIKE '%' || $1 || '%')
		  AND EXISTS (SELECT 1 FROM stops s WHERE s.route_id = r.id AND s.stop_name ILIKE '%' || $2 || '%')
		ORDER BY b.bus_number
	`

	return r.queryBuses(ctx, query, source, destination)
}

func (r *busRepository) Update(ctx context.Context, bus *entity.Bus) error {
	query := `
		UPDATE buses
		SET bus_number = $2, bus_name = $3, total_seats = $4, type = $5, status = $6,
		    amenities = $7, seat_config = $8, last_maintenance = $9, updated_at = $10
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		bus.ID,
		bus.BusNumber,
		bus.BusName,
		bus.TotalSeats,
		bus.Type,
		bus.Status,
		bus.Amenities,
		bus.SeatConfig,
		bus.LastMaintenance,
		bus.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update bus", zap.Error(err), zap.Int64("bus_id", bus.ID))
		return fmt.Errorf("update bus %d: %w", bus.ID, err)
	}

	if result.RowsAffected() == 0 {
		return entity.ErrBusNotFound
	}

	return nil
}

// UpdateRating recomputes the bus rating from its reviews.
func (r *busRepository) UpdateRating(ctx context.Context, busID int64) error {
	query := `
		UPDATE buses
		SET rating = COALESCE((SELECT AVG(rating) FROM reviews WHERE bus_id = $1), 0),
		    updated_at = NOW()
		WHERE id = $1
	`

	if _, err := r.db.Exec(ctx, query, busID); err != nil {
		r.log.Error("Failed to update bus rating", zap.Error(err), zap.Int64("bus_id", busID))
		return fmt.Errorf("update rating for bus %d: %w", busID, err)
	}

	return nil
}

func (r *busRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM buses WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete bus", zap.Error(err), zap.Int64("bus_id", id))
		return fmt.Errorf("delete bus %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return entity.ErrBusNotFound
	}

	r.log.Info("Bus deleted", zap.Int64("bus_id", id))
	return nil
}

func (r *busRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM buses`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count buses: %w", err)
	}
	return count, nil
}

func (r *busRepository) CountByStatus(ctx context.Context, status entity.BusStatus) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM buses WHERE status = $1`, status).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count buses by status %s: %w", string(status), err)
	}
	return count, nil
}

func (r *busRepository) queryBuses(ctx context.Context, query string, args ...any) ([]*entity.Bus, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to query buses", zap.Error(err))
		return nil, fmt.Errorf("query buses: %w", err)
	}
	defer rows.Close()

	var buses []*entity.Bus
	for rows.Next() {
		bus, err := scanBus(rows)
		if err != nil {
			return nil, fmt.Errorf("scan bus row: %w", err)
		}
		buses = append(buses, bus)
	}

	return buses, rows.Err()
}
