package adaptor

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"bus-ticketing/internal/data/entity"
	"bus-ticketing/internal/dto/request"
	"bus-ticketing/internal/dto/response"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// stubReservation returns canned results so the handler's error-to-status
// mapping can be exercised without a database.
type stubReservation struct {
	reserveErr error
	statusErr  error
	seatsErr   error
}

func (s *stubReservation) Reserve(ctx context.Context, req *request.ReserveSeatRequest) (*response.BookingResponse, error) {
	if s.reserveErr != nil {
		return nil, s.reserveErr
	}
	return &response.BookingResponse{ID: 1, SeatNumber: req.SeatNumber, Status: entity.BookingStatusConfirmed}, nil
}

func (s *stubReservation) SetStatus(ctx context.Context, bookingID int64, to entity.BookingStatus) (*response.BookingResponse, error) {
	if s.statusErr != nil {
		return nil, s.statusErr
	}
	return &response.BookingResponse{ID: bookingID, Status: to}, nil
}

func (s *stubReservation) ListOccupiedSeats(ctx context.Context, busID int64) (*response.OccupiedSeatsResponse, error) {
	if s.seatsErr != nil {
		return nil, s.seatsErr
	}
	return &response.OccupiedSeatsResponse{BusID: busID, OccupiedSeats: []int{}}, nil
}

func newBookingRouter(stub *stubReservation) *chi.Mux {
	handler := NewBookingHandler(stub, nil, zap.NewNop())

	r := chi.NewRouter()
	r.Post("/api/bookings", handler.ReserveSeat)
	r.Put("/api/bookings/{id}/cancel", handler.CancelBooking)
	r.Get("/api/buses/{id}/seats", handler.GetOccupiedSeats)
	return r
}

const reserveBody = `{
	"bus_id": 1,
	"seat_number": 7,
	"passenger_name": "Asha Rao",
	"passenger_phone": "9876543210",
	"from_stop": "Central",
	"to_stop": "Airport"
}`

func TestReserveSeatStatusCodes(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"created", nil, http.StatusCreated},
		{"seat conflict", entity.ErrSeatAlreadyBooked, http.StatusConflict},
		{"invalid seat", entity.ErrInvalidSeat, http.StatusBadRequest},
		{"bus unavailable", entity.ErrBusUnavailable, http.StatusBadRequest},
		{"bus not found", entity.ErrBusNotFound, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newBookingRouter(&stubReservation{reserveErr: tt.err})

			req := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(reserveBody))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Fatalf("expected %d, got %d (body %s)", tt.want, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestReserveSeatRejectsBadJSON(t *testing.T) {
	router := newBookingRouter(&stubReservation{})

	req := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestCancelBookingStatusCodes(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"cancelled", nil, http.StatusOK},
		{"terminal booking", entity.ErrInvalidTransition, http.StatusBadRequest},
		{"unknown booking", entity.ErrBookingNotFound, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newBookingRouter(&stubReservation{statusErr: tt.err})

			req := httptest.NewRequest(http.MethodPut, "/api/bookings/12/cancel", nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Fatalf("expected %d, got %d (body %s)", tt.want, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestCancelBookingRejectsBadID(t *testing.T) {
	router := newBookingRouter(&stubReservation{})

	req := httptest.NewRequest(http.MethodPut, "/api/bookings/abc/cancel", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestGetOccupiedSeatsEnvelope(t *testing.T) {
	router := newBookingRouter(&stubReservation{})

	req := httptest.NewRequest(http.MethodGet, "/api/buses/1/seats", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var envelope struct {
		Status bool `json:"status"`
		Data   struct {
			BusID         int64 `json:"bus_id"`
			OccupiedSeats []int `json:"occupied_seats"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if !envelope.Status {
		t.Fatal("expected status true")
	}
	if envelope.Data.BusID != 1 {
		t.Fatalf("expected bus 1, got %d", envelope.Data.BusID)
	}
}

func TestGetOccupiedSeatsNotFound(t *testing.T) {
	router := newBookingRouter(&stubReservation{seatsErr: entity.ErrBusNotFound})

	req := httptest.NewRequest(http.MethodGet, "/api/buses/99/seats", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
