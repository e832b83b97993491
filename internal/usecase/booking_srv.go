package usecase

import (
	"context"
	"encoding/base64"
	"fmt"

	"bus-ticketing/internal/data/entity"
	"bus-ticketing/internal/data/repository"
	"bus-ticketing/internal/dto/request"
	"bus-ticketing/internal/dto/response"

	qrcode "github.com/skip2/go-qrcode"
	"go.uber.org/zap"
)

// BookingService is the read side of bookings: lookups by id, phone and
// bus, plus the printable ticket. Writes go through ReservationService.
type BookingService interface {
	GetBookingByID(ctx context.Context, id int64) (*response.BookingResponse, error)
	GetBookingsByPhone(ctx context.Context, phone string) ([]response.BookingResponse, error)
	GetBookingsByBus(ctx context.Context, busID int64) ([]response.BookingResponse, error)
	ListBookings(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	GetTicket(ctx context.Context, bookingID int64) (*response.TicketResponse, error)
}

type bookingService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewBookingService(repo *repository.Repository, log *zap.Logger) BookingService {
	return &bookingService{
		repo: repo,
		log:  log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) GetBookingByID(ctx context.Context, id int64) (*response.BookingResponse, error) {
	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find booking %d: %w", id, err)
	}
	if booking == nil {
		return nil, entity.ErrBookingNotFound
	}

	resp := s.buildDetail(ctx, booking)
	return &resp, nil
}

func (s *bookingService) GetBookingsByPhone(ctx context.Context, phone string) ([]response.BookingResponse, error) {
	bookings, err := s.repo.Booking.FindByPhone(ctx, phone)
	if err != nil {
		s.log.Error("Failed to get bookings by phone", zap.Error(err))
		return nil, fmt.Errorf("get bookings by phone: %w", err)
	}

	responses := make([]response.BookingResponse, len(bookings))
	for i, booking := range bookings {
		responses[i] = s.buildDetail(ctx, booking)
	}
	return responses, nil
}

func (s *bookingService) GetBookingsByBus(ctx context.Context, busID int64) ([]response.BookingResponse, error) {
	bus, err := s.repo.Bus.FindByID(ctx, busID)
	if err != nil {
		return nil, fmt.Errorf("find bus %d: %w", busID, err)
	}
	if bus == nil {
		return nil, entity.ErrBusNotFound
	}

	bookings, err := s.repo.Booking.FindByBusID(ctx, busID)
	if err != nil {
		s.log.Error("Failed to get bookings by bus", zap.Error(err), zap.Int64("bus_id", busID))
		return nil, fmt.Errorf("get bookings for bus %d: %w", busID, err)
	}

	responses := make([]response.BookingResponse, len(bookings))
	for i, booking := range bookings {
		passenger, _ := s.repo.Passenger.FindByID(ctx, booking.PassengerID)
		responses[i] = response.BookingDetailToResponse(booking, bus, passenger)
	}
	return responses, nil
}

func (s *bookingService) ListBookings(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	bookings, err := s.repo.Booking.List(ctx, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to list bookings", zap.Error(err))
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	total, err := s.repo.Booking.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count bookings: %w", err)
	}

	responses := make([]response.BookingResponse, len(bookings))
	for i, booking := range bookings {
		responses[i] = s.buildDetail(ctx, booking)
	}

	return response.NewPaginatedResponse(responses, req.Page, req.PerPage, total), nil
}

func (s *bookingService) GetTicket(ctx context.Context, bookingID int64) (*response.TicketResponse, error) {
	booking, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("find booking %d: %w", bookingID, err)
	}
	if booking == nil {
		return nil, entity.ErrBookingNotFound
	}

	png, err := qrcode.Encode(booking.TicketNumber.String(), qrcode.Medium, 256)
	if err != nil {
		s.log.Error("Failed to encode ticket QR", zap.Error(err), zap.Int64("booking_id", bookingID))
		return nil, fmt.Errorf("encode ticket QR for booking %d: %w", bookingID, err)
	}

	return &response.TicketResponse{
		Booking: s.buildDetail(ctx, booking),
		QRCode:  base64.StdEncoding.EncodeToString(png),
	}, nil
}

func (s *bookingService) buildDetail(ctx context.Context, booking *entity.Booking) response.BookingResponse {
	bus, _ := s.repo.Bus.FindByID(ctx, booking.BusID)
	passenger, _ := s.repo.Passenger.FindByID(ctx, booking.PassengerID)
	return response.BookingDetailToResponse(booking, bus, passenger)
}
