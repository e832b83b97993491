package repository

import (
	"context"
	"fmt"
	"time"

	"bus-ticketing/internal/data/entity"
	"bus-ticketing/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type BookingRepository interface {
	// InsertActive creates a Confirmed booking. The bookings table has a
	// partial unique index on (bus_id, seat_number) over active statuses;
	// a violation is returned as entity.ErrSeatAlreadyBooked.
	InsertActive(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id int64) (*entity.Booking, error)
	FindActive(ctx context.Context, busID int64, seatNumber int) (*entity.Booking, error)
	OccupiedSeats(ctx context.Context, busID int64) ([]int, error)

	// UpdateStatusFrom is a compare-and-swap: the row changes only if its
	// status still equals from. Returns false when no row matched.
	UpdateStatusFrom(ctx context.Context, id int64, from, to entity.BookingStatus) (bool, error)

	FindByPhone(ctx context.Context, phone string) ([]*entity.Booking, error)
	FindByBusID(ctx context.Context, busID int64) ([]*entity.Booking, error)
	FindActiveByBusID(ctx context.Context, busID int64) ([]*entity.Booking, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Booking, error)
	Count(ctx context.Context) (int64, error)
	CountSince(ctx context.Context, since time.Time) (int64, error)
	CountByBusAndStatus(ctx context.Context, busID int64, statuses []entity.BookingStatus) (int64, error)
	RevenueByDay(ctx context.Context, start, end time.Time) ([]*entity.DailyRevenue, error)
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `id, ticket_number, passenger_id, bus_id, from_stop_name, to_stop_name, seat_number, status, amount, created_at, updated_at`

func scanBooking(row pgx.Row) (*entity.Booking, error) {
	var b entity.Booking
	err := row.Scan(
		&b.ID,
		&b.TicketNumber,
		&b.PassengerID,
		&b.BusID,
		&b.FromStopName,
		&b.ToStopName,
		&b.SeatNumber,
		&b.Status,
		&b.Amount,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *bookingRepository) InsertActive(ctx context.Context, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (ticket_number, passenger_id, bus_id, from_stop_name, to_stop_name, seat_number, status, amount, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		booking.TicketNumber,
		booking.PassengerID,
		booking.BusID,
		booking.FromStopName,
		booking.ToStopName,
		booking.SeatNumber,
		booking.Status,
		booking.Amount,
		booking.CreatedAt,
		booking.UpdatedAt,
	).Scan(&booking.ID)

	if err != nil {
		if database.IsUniqueViolation(err) {
			return entity.ErrSeatAlreadyBooked
		}
		r.log.Error("Failed to insert booking",
			zap.Error(err),
			zap.Int64("bus_id", booking.BusID),
			zap.Int("seat_number", booking.SeatNumber),
		)
		return fmt.Errorf("insert booking bus %d seat %d: %w", booking.BusID, booking.SeatNumber, err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id int64) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID", zap.Error(err), zap.Int64("booking_id", id))
		return nil, fmt.Errorf("find booking by ID %d: %w", id, err)
	}

	return booking, nil
}

func (r *bookingRepository) FindActive(ctx context.Context, busID int64, seatNumber int) (*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE bus_id = $1 AND seat_number = $2 AND status IN ('Confirmed', 'Boarded')
	`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, busID, seatNumber))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find active booking",
			zap.Error(err),
			zap.Int64("bus_id", busID),
			zap.Int("seat_number", seatNumber),
		)
		return nil, fmt.Errorf("find active booking bus %d seat %d: %w", busID, seatNumber, err)
	}

	return booking, nil
}

func (r *bookingRepository) OccupiedSeats(ctx context.Context, busID int64) ([]int, error) {
	query := `
		SELECT seat_number
		FROM bookings
		WHERE bus_id = $1 AND status IN ('Confirmed', 'Boarded')
		ORDER BY seat_number
	`

	rows, err := r.db.Query(ctx, query, busID)
	if err != nil {
		r.log.Error("Failed to query occupied seats", zap.Error(err), zap.Int64("bus_id", busID))
		return nil, fmt.Errorf("occupied seats for bus %d: %w", busID, err)
	}
	defer rows.Close()

	var seats []int
	for rows.Next() {
		var seat int
		if err := rows.Scan(&seat); err != nil {
			return nil, fmt.Errorf("scan seat number: %w", err)
		}
		seats = append(seats, seat)
	}

	return seats, rows.Err()
}

func (r *bookingRepository) UpdateStatusFrom(ctx context.Context, id int64, from, to entity.BookingStatus) (bool, error) {
	query := `UPDATE bookings SET status = $3, updated_at = NOW() WHERE id = $1 AND status = $2`

	result, err := r.db.Exec(ctx, query, id, from, to)
	if err != nil {
		r.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.Int64("booking_id", id),
			zap.String("from", string(from)),
			zap.String("to", string(to)),
		)
		return false, fmt.Errorf("update booking %d status %s -> %s: %w", id, string(from), string(to), err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *bookingRepository) FindByPhone(ctx context.Context, phone string) ([]*entity.Booking, error) {
	query := `
		SELECT b.id, b.ticket_number, b.passenger_id, b.bus_id, b.from_stop_name, b.to_stop_name, b.seat_number, b.status, b.amount, b.created_at, b.updated_at
		FROM bookings b
		JOIN passengers p ON p.id = b.passenger_id
		WHERE p.phone = $1
		ORDER BY b.created_at DESC
	`

	return r.queryBookings(ctx, query, phone)
}

func (r *bookingRepository) FindByBusID(ctx context.Context, busID int64) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE bus_id = $1
		ORDER BY seat_number
	`

	return r.queryBookings(ctx, query, busID)
}

func (r *bookingRepository) FindActiveByBusID(ctx context.Context, busID int64) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE bus_id = $1 AND status IN ('Confirmed', 'Boarded')
		ORDER BY seat_number
	`

	return r.queryBookings(ctx, query, busID)
}

func (r *bookingRepository) List(ctx context.Context, limit, offset int) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	return r.queryBookings(ctx, query, limit, offset)
}

func (r *bookingRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM bookings`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count bookings: %w", err)
	}
	return count, nil
}

func (r *bookingRepository) CountSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM bookings WHERE created_at >= $1`, since).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count bookings since %s: %w", since.Format("2006-01-02"), err)
	}
	return count, nil
}

func (r *bookingRepository) CountByBusAndStatus(ctx context.Context, busID int64, statuses []entity.BookingStatus) (int64, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE bus_id = $1 AND status = ANY($2)`

	ss := make([]string, len(statuses))
	for i, status := range statuses {
		ss[i] = string(status)
	}

	var count int64
	if err := r.db.QueryRow(ctx, query, busID, ss).Scan(&count); err != nil {
		r.log.Error("Failed to count bookings by bus and status",
			zap.Error(err),
			zap.Int64("bus_id", busID),
			zap.Strings("statuses", ss),
		)
		return 0, fmt.Errorf("count bookings for bus %d: %w", busID, err)
	}

	return count, nil
}

func (r *bookingRepository) RevenueByDay(ctx context.Context, start, end time.Time) ([]*entity.DailyRevenue, error) {
	query := `
		SELECT b.created_at::date AS day,
		       COUNT(*) AS total_bookings,
		       COALESCE(SUM(b.amount), 0) AS revenue,
		       COUNT(*) FILTER (WHERE bus.type = 'AC') AS ac_bookings,
		       COUNT(*) FILTER (WHERE bus.type <> 'AC') AS non_ac_bookings
		FROM bookings b
		JOIN buses bus ON bus.id = b.bus_id
		WHERE b.created_at >= $1 AND b.created_at < $2 AND b.status <> 'Cancelled'
		GROUP BY day
		ORDER BY day
	`

	rows, err := r.db.Query(ctx, query, start, end)
	if err != nil {
		r.log.Error("Failed to query revenue by day", zap.Error(err))
		return nil, fmt.Errorf("revenue by day: %w", err)
	}
	defer rows.Close()

	var report []*entity.DailyRevenue
	for rows.Next() {
		var day entity.DailyRevenue
		err := rows.Scan(&day.Date, &day.TotalBookings, &day.Revenue, &day.ACBookings, &day.NonACBookings)
		if err != nil {
			return nil, fmt.Errorf("scan revenue row: %w", err)
		}
		report = append(report, &day)
	}

	return report, rows.Err()
}

func (r *bookingRepository) queryBookings(ctx context.Context, query string, args ...any) ([]*entity.Booking, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to query bookings", zap.Error(err))
		return nil, fmt.Errorf("query bookings: %w", err)
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}

	return bookings, rows.Err()
}
