package repository

import (
	"context"
	"fmt"

	"bus-ticketing/internal/data/entity"
	"bus-ticketing/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	FindByBusID(ctx context.Context, busID int64, limit, offset int) ([]*entity.Review, error)
	CountByBusID(ctx context.Context, busID int64) (int64, error)
	FindByPassengerAndBus(ctx context.Context, passengerID, busID int64) (*entity.Review, error)
}

type reviewRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReviewRepository(db database.PgxIface, log *zap.Logger) ReviewRepository {
	return &reviewRepository{
		db:  db,
		log: log.With(zap.String("repository", "review")),
	}
}

func (r *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	query := `
		INSERT INTO reviews (bus_id, passenger_id, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		review.BusID,
		review.PassengerID,
		review.Rating,
		review.Comment,
		review.CreatedAt,
	).Scan(&review.ID)

	if err != nil {
		r.log.Error("Failed to create review",
			zap.Error(err),
			zap.Int64("bus_id", review.BusID),
			zap.Int64("passenger_id", review.PassengerID),
		)
		return fmt.Errorf("create review for bus %d: %w", review.BusID, err)
	}

	return nil
}

func (r *reviewRepository) FindByBusID(ctx context.Context, busID int64, limit, offset int) ([]*entity.Review, error) {
	query := `
		SELECT id, bus_id, passenger_id, rating, comment, created_at
		FROM reviews
		WHERE bus_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, busID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find reviews by bus ID", zap.Error(err), zap.Int64("bus_id", busID))
		return nil, fmt.Errorf("find reviews for bus %d: %w", busID, err)
	}
	defer rows.Close()

	var reviews []*entity.Review
	for rows.Next() {
		var review entity.Review
		err := rows.Scan(&review.ID, &review.BusID, &review.PassengerID, &review.Rating, &review.Comment, &review.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan review row: %w", err)
		}
		reviews = append(reviews, &review)
	}

	return reviews, rows.Err()
}

func (r *reviewRepository) CountByBusID(ctx context.Context, busID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM reviews WHERE bus_id = $1`, busID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count reviews for bus %d: %w", busID, err)
	}
	return count, nil
}

func (r *reviewRepository) FindByPassengerAndBus(ctx context.Context, passengerID, busID int64) (*entity.Review, error) {
	query := `
		SELECT id, bus_id, passenger_id, rating, comment, created_at
		FROM reviews
		WHERE passenger_id = $1 AND bus_id = $2
	`

	var review entity.Review
	err := r.db.QueryRow(ctx, query, passengerID, busID).Scan(
		&review.ID,
		&review.BusID,
		&review.PassengerID,
		&review.Rating,
		&review.Comment,
		&review.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find review",
			zap.Error(err),
			zap.Int64("passenger_id", passengerID),
			zap.Int64("bus_id", busID),
		)
		return nil, fmt.Errorf("find review passenger %d bus %d: %w", passengerID, busID, err)
	}

	return &review, nil
}
