package adaptor

import (
	"encoding/json"
	"net/http"

	"bus-ticketing/internal/dto/request"
	"bus-ticketing/internal/usecase"
	"bus-ticketing/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type BusHandler struct {
	service usecase.BusService
	log     *zap.Logger
}

func NewBusHandler(service usecase.BusService, log *zap.Logger) *BusHandler {
	return &BusHandler{
		service: service,
		log:     log.With(zap.String("handler", "bus")),
	}
}

// SearchBuses handles GET /api/buses/search?source=&destination= (public)
func (h *BusHandler) SearchBuses(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	source := query.Get("source")
	destination := query.Get("destination")

	if source == "" || destination == "" {
		utils.ResponseBadRequest(w, "source and destination are required", nil)
		return
	}

	buses, err := h.service.SearchBuses(r.Context(), source, destination)
	if err != nil {
		handleServiceError(w, h.log, err, "search buses")
		return
	}

	utils.ResponseSuccess(w, "success", buses)
}

// GetBus handles GET /api/buses/{id} (public)
func (h *BusHandler) GetBus(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid bus ID", nil)
		return
	}

	bus, err := h.service.GetBusByID(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "get bus")
		return
	}

	utils.ResponseSuccess(w, "success", bus)
}

// ListBuses handles GET /api/buses (public)
func (h *BusHandler) ListBuses(w http.ResponseWriter, r *http.Request) {
	buses, err := h.service.ListBuses(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "list buses")
		return
	}

	utils.ResponseSuccess(w, "success", buses)
}

// CreateBus handles POST /api/admin/buses (admin only)
func (h *BusHandler) CreateBus(w http.ResponseWriter, r *http.Request) {
	var req request.CreateBusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	bus, err := h.service.CreateBus(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create bus")
		return
	}

	utils.ResponseCreated(w, "success", bus)
}

// UpdateBus handles PUT /api/admin/buses/{id} (admin only)
func (h *BusHandler) UpdateBus(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid bus ID", nil)
		return
	}

	var req request.UpdateBusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	bus, err := h.service.UpdateBus(r.Context(), id, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update bus")
		return
	}

	utils.ResponseSuccess(w, "success", bus)
}

// DeleteBus handles DELETE /api/admin/buses/{id} (admin only)
func (h *BusHandler) DeleteBus(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid bus ID", nil)
		return
	}

	if err := h.service.DeleteBus(r.Context(), id); err != nil {
		handleServiceError(w, h.log, err, "delete bus")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}
