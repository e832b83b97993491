package adaptor

import (
	"encoding/json"
	"net/http"

	"bus-ticketing/internal/dto/request"
	"bus-ticketing/internal/usecase"
	"bus-ticketing/pkg/utils"

	"go.uber.org/zap"
)

type ConductorHandler struct {
	service usecase.ConductorService
	log     *zap.Logger
}

func NewConductorHandler(service usecase.ConductorService, log *zap.Logger) *ConductorHandler {
	return &ConductorHandler{
		service: service,
		log:     log.With(zap.String("handler", "conductor")),
	}
}

// GetManifest handles GET /api/conductor/manifest (conductor only)
func (h *ConductorHandler) GetManifest(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	manifest, err := h.service.GetManifest(r.Context(), userID)
	if err != nil {
		handleServiceError(w, h.log, err, "get manifest")
		return
	}

	utils.ResponseSuccess(w, "success", manifest)
}

// GetDashboard handles GET /api/conductor/dashboard (conductor only)
func (h *ConductorHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	dashboard, err := h.service.GetDashboard(r.Context(), userID)
	if err != nil {
		handleServiceError(w, h.log, err, "get conductor dashboard")
		return
	}

	utils.ResponseSuccess(w, "success", dashboard)
}

// ReportIncident handles POST /api/conductor/incidents (conductor only)
func (h *ConductorHandler) ReportIncident(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateIncidentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.service.ReportIncident(r.Context(), userID, &req); err != nil {
		handleServiceError(w, h.log, err, "report incident")
		return
	}

	utils.ResponseCreated(w, "success", nil)
}
