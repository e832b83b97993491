package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bus-ticketing/internal/data/entity"
	"bus-ticketing/internal/data/repository"
	"bus-ticketing/internal/dto/request"
	"bus-ticketing/internal/dto/response"
	"bus-ticketing/pkg/database"
	"bus-ticketing/pkg/utils"

	"go.uber.org/zap"
)

// ReservationService owns the seat lifecycle: reserving, the status
// transitions, and the per-bus occupancy view. At most one active booking
// can exist per (bus, seat); the bookings table enforces this with a
// partial unique index and Reserve converts the violation into
// entity.ErrSeatAlreadyBooked.
type ReservationService interface {
	Reserve(ctx context.Context, req *request.ReserveSeatRequest) (*response.BookingResponse, error)
	SetStatus(ctx context.Context, bookingID int64, to entity.BookingStatus) (*response.BookingResponse, error)
	ListOccupiedSeats(ctx context.Context, busID int64) (*response.OccupiedSeatsResponse, error)
}

type reservationService struct {
	repo     *repository.Repository
	db       database.PgxIface
	notifier Notifier
	log      *zap.Logger
}

func NewReservationService(repo *repository.Repository, db database.PgxIface, notifier Notifier, log *zap.Logger) ReservationService {
	return &reservationService{
		repo:     repo,
		db:       db,
		notifier: notifier,
		log:      log.With(zap.String("service", "reservation")),
	}
}

func (s *reservationService) Reserve(ctx context.Context, req *request.ReserveSeatRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Reserve seat validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	var bus *entity.Bus
	err := database.Retry(ctx, s.log, func(ctx context.Context) error {
		var err error
		bus, err = s.repo.Bus.FindByID(ctx, req.BusID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("find bus %d: %w", req.BusID, err)
	}
	if bus == nil {
		return nil, entity.ErrBusNotFound
	}

	if bus.Status != entity.BusStatusActive {
		return nil, fmt.Errorf("bus %d is %s: %w", bus.ID, bus.Status, entity.ErrBusUnavailable)
	}

	if req.SeatNumber < 1 || req.SeatNumber > bus.TotalSeats {
		return nil, fmt.Errorf("seat %d outside 1..%d: %w", req.SeatNumber, bus.TotalSeats, entity.ErrInvalidSeat)
	}

	now := time.Now()
	booking := &entity.Booking{
		Base:         entity.Base{CreatedAt: now, UpdatedAt: now},
		TicketNumber: utils.GenerateTicketNumber(),
		BusID:        bus.ID,
		FromStopName: req.FromStop,
		ToStopName:   req.ToStop,
		SeatNumber:   req.SeatNumber,
		Status:       entity.BookingStatusConfirmed,
		Amount:       entity.FareFor(bus.Type),
	}

	method := req.PaymentMethod
	if method == "" {
		method = entity.PaymentMethodCash
	}

	var passenger *entity.Passenger
	err = s.db.WithTx(ctx, func(ctx context.Context) error {
		// A taken seat is the common failure, so check before touching the
		// passengers table. The partial unique index still decides races.
		existing, err := s.repo.Booking.FindActive(ctx, req.BusID, req.SeatNumber)
		if err != nil {
			return err
		}
		if existing != nil {
			return entity.ErrSeatAlreadyBooked
		}

		passenger, err = s.repo.Passenger.FindOrCreate(ctx, &entity.Passenger{
			Base:     entity.Base{CreatedAt: now, UpdatedAt: now},
			FullName: req.PassengerName,
			Email:    req.PassengerEmail,
			Phone:    req.PassengerPhone,
		})
		if err != nil {
			return err
		}

		booking.PassengerID = passenger.ID

		// Single attempt, no retry: the insert is the commit point, and
		// replaying it after an ambiguous failure could double-book.
		if err := s.repo.Booking.InsertActive(ctx, booking); err != nil {
			return err
		}

		return s.repo.Payment.Create(ctx, &entity.Payment{
			Base:      entity.Base{CreatedAt: now, UpdatedAt: now},
			BookingID: booking.ID,
			Amount:    booking.Amount,
			Method:    method,
			Status:    entity.PaymentStatusCompleted,
		})
	})
	if err != nil {
		if errors.Is(err, entity.ErrSeatAlreadyBooked) {
			s.log.Info("Seat already booked",
				zap.Int64("bus_id", req.BusID),
				zap.Int("seat_number", req.SeatNumber),
			)
			return nil, entity.ErrSeatAlreadyBooked
		}
		s.log.Error("Failed to reserve seat",
			zap.Error(err),
			zap.Int64("bus_id", req.BusID),
			zap.Int("seat_number", req.SeatNumber),
		)
		return nil, fmt.Errorf("reserve seat: %w", err)
	}

	s.log.Info("Seat reserved",
		zap.Int64("booking_id", booking.ID),
		zap.String("ticket_number", booking.TicketNumber.String()),
		zap.Int64("bus_id", bus.ID),
		zap.Int("seat_number", booking.SeatNumber),
		zap.Int64("passenger_id", passenger.ID),
	)

	s.notifier.SeatBooked(booking, passenger, bus)

	resp := response.BookingDetailToResponse(booking, bus, passenger)
	return &resp, nil
}

func (s *reservationService) SetStatus(ctx context.Context, bookingID int64, to entity.BookingStatus) (*response.BookingResponse, error) {
	if !entity.ValidBookingStatus(to) {
		return nil, fmt.Errorf("unknown status %q: %w", to, entity.ErrInvalidTransition)
	}

	var booking *entity.Booking
	err := database.Retry(ctx, s.log, func(ctx context.Context) error {
		var err error
		booking, err = s.repo.Booking.FindByID(ctx, bookingID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("find booking %d: %w", bookingID, err)
	}
	if booking == nil {
		return nil, entity.ErrBookingNotFound
	}

	from := booking.Status
	if !entity.CanTransition(from, to) {
		return nil, fmt.Errorf("cannot move booking %d from %s to %s: %w",
			bookingID, from, to, entity.ErrInvalidTransition)
	}

	var updated bool
	err = database.Retry(ctx, s.log, func(ctx context.Context) error {
		var err error
		updated, err = s.repo.Booking.UpdateStatusFrom(ctx, bookingID, from, to)
		return err
	})
	if err != nil {
		s.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.Int64("booking_id", bookingID),
			zap.String("to", string(to)),
		)
		return nil, fmt.Errorf("update booking %d status: %w", bookingID, err)
	}
	if !updated {
		// Lost a race: someone moved the booking first.
		return nil, fmt.Errorf("booking %d no longer %s: %w", bookingID, from, entity.ErrInvalidTransition)
	}

	booking.Status = to
	booking.UpdatedAt = time.Now()

	if to == entity.BookingStatusCancelled {
		s.refundPayment(ctx, bookingID)
	}

	s.log.Info("Booking status changed",
		zap.Int64("booking_id", bookingID),
		zap.String("from", string(from)),
		zap.String("to", string(to)),
	)

	s.notifier.StatusChanged(booking, from)

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

// refundPayment is best effort: a cancellation must not fail because the
// payment row could not be flipped. The row stays Completed and shows up in
// reconciliation if this loses.
func (s *reservationService) refundPayment(ctx context.Context, bookingID int64) {
	payment, err := s.repo.Payment.FindByBookingID(ctx, bookingID)
	if err != nil || payment == nil {
		if err != nil {
			s.log.Error("Failed to load payment for refund", zap.Error(err), zap.Int64("booking_id", bookingID))
		}
		return
	}
	if payment.Status != entity.PaymentStatusCompleted {
		return
	}

	if err := s.repo.Payment.UpdateStatus(ctx, payment.ID, entity.PaymentStatusRefunded, nil); err != nil {
		s.log.Error("Failed to mark payment refunded",
			zap.Error(err),
			zap.Int64("payment_id", payment.ID),
			zap.Int64("booking_id", bookingID),
		)
	}
}

func (s *reservationService) ListOccupiedSeats(ctx context.Context, busID int64) (*response.OccupiedSeatsResponse, error) {
	var bus *entity.Bus
	err := database.Retry(ctx, s.log, func(ctx context.Context) error {
		var err error
		bus, err = s.repo.Bus.FindByID(ctx, busID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("find bus %d: %w", busID, err)
	}
	if bus == nil {
		return nil, entity.ErrBusNotFound
	}

	var seats []int
	err = database.Retry(ctx, s.log, func(ctx context.Context) error {
		var err error
		seats, err = s.repo.Booking.OccupiedSeats(ctx, busID)
		return err
	})
	if err != nil {
		s.log.Error("Failed to list occupied seats", zap.Error(err), zap.Int64("bus_id", busID))
		return nil, fmt.Errorf("list occupied seats for bus %d: %w", busID, err)
	}

	if seats == nil {
		seats = []int{}
	}

	return &response.OccupiedSeatsResponse{
		BusID:         busID,
		TotalSeats:    bus.TotalSeats,
		OccupiedSeats: seats,
	}, nil
}
