package repository

import (
	"context"
	"fmt"

	"bus-ticketing/internal/data/entity"
	"bus-ticketing/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type PassengerRepository interface {
	// FindOrCreate resolves a passenger by phone or email, creating the
	// record on first contact. Safe to repeat: phone is unique and the
	// insert is ON CONFLICT DO NOTHING followed by a re-read.
	FindOrCreate(ctx context.Context, passenger *entity.Passenger) (*entity.Passenger, error)
	FindByID(ctx context.Context, id int64) (*entity.Passenger, error)
	FindByPhone(ctx context.Context, phone string) (*entity.Passenger, error)
	Count(ctx context.Context) (int64, error)
}

type passengerRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPassengerRepository(db database.PgxIface, log *zap.Logger) PassengerRepository {
	return &passengerRepository{
		db:  db,
		log: log.With(zap.String("repository", "passenger")),
	}
}

const passengerColumns = `id, full_name, email, phone, created_at, updated_at`

func scanPassenger(row pgx.Row) (*entity.Passenger, error) {
	var p entity.Passenger
	err := row.Scan(&p.ID, &p.FullName, &p.Email, &p.Phone, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *passengerRepository) FindOrCreate(ctx context.Context, passenger *entity.Passenger) (*entity.Passenger, error) {
	existing, err := r.findByContact(ctx, passenger.Phone, passenger.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	insert := `
		INSERT INTO passengers (full_name, email, phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (phone) DO NOTHING
		RETURNING ` + passengerColumns + `
	`

	created, err := scanPassenger(r.db.QueryRow(ctx, insert,
		passenger.FullName,
		passenger.Email,
		passenger.Phone,
		passenger.CreatedAt,
		passenger.UpdatedAt,
	))
	if err == pgx.ErrNoRows {
		// Lost the insert race; the winner's row is what we want.
		return r.FindByPhone(ctx, passenger.Phone)
	}
	if err != nil {
		r.log.Error("Failed to create passenger", zap.Error(err), zap.String("phone", passenger.Phone))
		return nil, fmt.Errorf("create passenger %s: %w", passenger.Phone, err)
	}

	r.log.Info("Passenger created",
		zap.Int64("passenger_id", created.ID),
		zap.String("phone", created.Phone),
	)

	return created, nil
}

func (r *passengerRepository) findByContact(ctx context.Context, phone string, email *string) (*entity.Passenger, error) {
	query := `
		SELECT ` + passengerColumns + `
		FROM passengers
		WHERE phone = $1 OR ($2::text IS NOT NULL AND email = $2)
		LIMIT 1
	`

	passenger, err := scanPassenger(r.db.QueryRow(ctx, query, phone, email))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find passenger by contact", zap.Error(err), zap.String("phone", phone))
		return nil, fmt.Errorf("find passenger by contact %s: %w", phone, err)
	}

	return passenger, nil
}

func (r *passengerRepository) FindByID(ctx context.Context, id int64) (*entity.Passenger, error) {
	query := `SELECT ` + passengerColumns + ` FROM passengers WHERE id = $1`

	passenger, err := scanPassenger(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find passenger by ID", zap.Error(err), zap.Int64("passenger_id", id))
		return nil, fmt.Errorf("find passenger by ID %d: %w", id, err)
	}

	return passenger, nil
}

func (r *passengerRepository) FindByPhone(ctx context.Context, phone string) (*entity.Passenger, error) {
	query := `SELECT ` + passengerColumns + ` FROM passengers WHERE phone = $1`

	passenger, err := scanPassenger(r.db.QueryRow(ctx, query, phone))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find passenger by phone", zap.Error(err), zap.String("phone", phone))
		return nil, fmt.Errorf("find passenger by phone %s: %w", phone, err)
	}

	return passenger, nil
}

func (r *passengerRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM passengers`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count passengers: %w", err)
	}
	return count, nil
}
