package repository

import (
	"context"
	"fmt"

	"bus-ticketing/internal/data/entity"
	"bus-ticketing/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ConductorRepository interface {
	Create(ctx context.Context, conductor *entity.Conductor) error
	FindByUserID(ctx context.Context, userID int64) (*entity.Conductor, error)
	AssignBus(ctx context.Context, conductorID, busID int64) error
}

type conductorRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewConductorRepository(db database.PgxIface, log *zap.Logger) ConductorRepository {
	return &conductorRepository{
		db:  db,
		log: log.With(zap.String("repository", "conductor")),
	}
}

func (r *conductorRepository) Create(ctx context.Context, conductor *entity.Conductor) error {
	query := `
		INSERT INTO conductors (user_id, assigned_bus_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		conductor.UserID,
		conductor.AssignedBusID,
		conductor.CreatedAt,
		conductor.UpdatedAt,
	).Scan(&conductor.ID)

	if err != nil {
		r.log.Error("Failed to create conductor", zap.Error(err), zap.Int64("user_id", conductor.UserID))
		return fmt.Errorf("create conductor for user %d: %w", conductor.UserID, err)
	}

	return nil
}

func (r *conductorRepository) FindByUserID(ctx context.Context, userID int64) (*entity.Conductor, error) {
	query := `SELECT id, user_id, assigned_bus_id, created_at, updated_at FROM conductors WHERE user_id = $1`

	var c entity.Conductor
	err := r.db.QueryRow(ctx, query, userID).Scan(&c.ID, &c.UserID, &c.AssignedBusID, &c.CreatedAt, &c.UpdatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find conductor by user ID", zap.Error(err), zap.Int64("user_id", userID))
		return nil, fmt.Errorf("find conductor by user ID %d: %w", userID, err)
	}

	return &c, nil
}

func (r *conductorRepository) AssignBus(ctx context.Context, conductorID, busID int64) error {
	query := `UPDATE conductors SET assigned_bus_id = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, conductorID, busID)
	if err != nil {
		r.log.Error("Failed to assign bus",
			zap.Error(err),
			zap.Int64("conductor_id", conductorID),
			zap.Int64("bus_id", busID),
		)
		return fmt.Errorf("assign bus %d to conductor %d: %w", busID, conductorID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("conductor %d not found", conductorID)
	}

	return nil
}
