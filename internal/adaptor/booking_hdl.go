package adaptor

import (
	"encoding/json"
	"net/http"

	"bus-ticketing/internal/data/entity"
	"bus-ticketing/internal/dto/request"
	"bus-ticketing/internal/usecase"
	"bus-ticketing/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type BookingHandler struct {
	reservation usecase.ReservationService
	booking     usecase.BookingService
	log         *zap.Logger
}

func NewBookingHandler(reservation usecase.ReservationService, booking usecase.BookingService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		reservation: reservation,
		booking:     booking,
		log:         log.With(zap.String("handler", "booking")),
	}
}

// ReserveSeat handles POST /api/bookings (public)
func (h *BookingHandler) ReserveSeat(w http.ResponseWriter, r *http.Request) {
	var req request.ReserveSeatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	booking, err := h.reservation.Reserve(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "reserve seat")
		return
	}

	utils.ResponseCreated(w, "success", booking)
}

// UpdateStatus handles PATCH /api/bookings/{id}/status (protected)
func (h *BookingHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid booking ID", nil)
		return
	}

	var req request.UpdateBookingStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	booking, err := h.reservation.SetStatus(r.Context(), id, entity.BookingStatus(req.Status))
	if err != nil {
		handleServiceError(w, h.log, err, "update booking status")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// CancelBooking handles PUT /api/bookings/{id}/cancel (public)
func (h *BookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid booking ID", nil)
		return
	}

	booking, err := h.reservation.SetStatus(r.Context(), id, entity.BookingStatusCancelled)
	if err != nil {
		handleServiceError(w, h.log, err, "cancel booking")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// GetOccupiedSeats handles GET /api/buses/{id}/seats (public)
func (h *BookingHandler) GetOccupiedSeats(w http.ResponseWriter, r *http.Request) {
	busID, err := utils.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid bus ID", nil)
		return
	}

	seats, err := h.reservation.ListOccupiedSeats(r.Context(), busID)
	if err != nil {
		handleServiceError(w, h.log, err, "list occupied seats")
		return
	}

	utils.ResponseSuccess(w, "success", seats)
}

// GetBooking handles GET /api/bookings/{id} (public)
func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid booking ID", nil)
		return
	}

	booking, err := h.booking.GetBookingByID(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "get booking")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// GetBookingsByPhone handles GET /api/bookings?phone= (public)
func (h *BookingHandler) GetBookingsByPhone(w http.ResponseWriter, r *http.Request) {
	phone := r.URL.Query().Get("phone")
	if phone == "" {
		utils.ResponseBadRequest(w, "Phone is required", nil)
		return
	}

	bookings, err := h.booking.GetBookingsByPhone(r.Context(), phone)
	if err != nil {
		handleServiceError(w, h.log, err, "get bookings by phone")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}

// GetTicket handles GET /api/bookings/{id}/ticket (public)
func (h *BookingHandler) GetTicket(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid booking ID", nil)
		return
	}

	ticket, err := h.booking.GetTicket(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "get ticket")
		return
	}

	utils.ResponseSuccess(w, "success", ticket)
}

// GetBookingsByBus handles GET /api/admin/buses/{id}/bookings (admin only)
func (h *BookingHandler) GetBookingsByBus(w http.ResponseWriter, r *http.Request) {
	busID, err := utils.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid bus ID", nil)
		return
	}

	bookings, err := h.booking.GetBookingsByBus(r.Context(), busID)
	if err != nil {
		handleServiceError(w, h.log, err, "get bookings by bus")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}

// ListBookings handles GET /api/admin/bookings (admin only)
func (h *BookingHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	bookings, err := h.booking.ListBookings(r.Context(), req)
	if err != nil {
		handleServiceError(w, h.log, err, "list bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}
