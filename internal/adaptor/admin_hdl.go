package adaptor

import (
	"encoding/json"
	"net/http"
	"time"

	"bus-ticketing/internal/dto/request"
	"bus-ticketing/internal/usecase"
	"bus-ticketing/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type AdminHandler struct {
	service usecase.AdminService
	log     *zap.Logger
}

func NewAdminHandler(service usecase.AdminService, log *zap.Logger) *AdminHandler {
	return &AdminHandler{
		service: service,
		log:     log.With(zap.String("handler", "admin")),
	}
}

// GetDashboardStats handles GET /api/admin/dashboard (admin only)
func (h *AdminHandler) GetDashboardStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.GetDashboardStats(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "get dashboard stats")
		return
	}

	utils.ResponseSuccess(w, "success", stats)
}

// GetRevenueReport handles GET /api/admin/reports/revenue?from=&to= (admin only)
func (h *AdminHandler) GetRevenueReport(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	to := time.Now()
	from := to.AddDate(0, 0, -30)

	if v := query.Get("from"); v != "" {
		parsed, err := time.Parse(time.DateOnly, v)
		if err != nil {
			utils.ResponseBadRequest(w, "Invalid from date, expected YYYY-MM-DD", nil)
			return
		}
		from = parsed
	}
	if v := query.Get("to"); v != "" {
		parsed, err := time.Parse(time.DateOnly, v)
		if err != nil {
			utils.ResponseBadRequest(w, "Invalid to date, expected YYYY-MM-DD", nil)
			return
		}
		to = parsed
	}

	report, err := h.service.GetRevenueReport(r.Context(), from, to)
	if err != nil {
		handleServiceError(w, h.log, err, "get revenue report")
		return
	}

	utils.ResponseSuccess(w, "success", report)
}

// ListIncidents handles GET /api/admin/incidents (admin only)
func (h *AdminHandler) ListIncidents(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	incidents, err := h.service.ListIncidents(r.Context(), req)
	if err != nil {
		handleServiceError(w, h.log, err, "list incidents")
		return
	}

	utils.ResponseSuccess(w, "success", incidents)
}

// AssignConductorBus handles PUT /api/admin/conductors/{id}/bus (admin only)
func (h *AdminHandler) AssignConductorBus(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid conductor ID", nil)
		return
	}

	var req request.AssignBusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.service.AssignConductorBus(r.Context(), id, &req); err != nil {
		handleServiceError(w, h.log, err, "assign conductor bus")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// GetNotifications handles GET /api/admin/notifications (admin only)
func (h *AdminHandler) GetNotifications(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	notifications, err := h.service.GetNotifications(r.Context(), req)
	if err != nil {
		handleServiceError(w, h.log, err, "list notifications")
		return
	}

	utils.ResponseSuccess(w, "success", notifications)
}

// MarkNotificationRead handles PATCH /api/admin/notifications/{id}/read (admin only)
func (h *AdminHandler) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid notification ID", nil)
		return
	}

	if err := h.service.MarkNotificationRead(r.Context(), id); err != nil {
		handleServiceError(w, h.log, err, "mark notification read")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// ResolveIncident handles PUT /api/admin/incidents/{id}/resolve (admin only)
func (h *AdminHandler) ResolveIncident(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid incident ID", nil)
		return
	}

	if err := h.service.ResolveIncident(r.Context(), id); err != nil {
		handleServiceError(w, h.log, err, "resolve incident")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}
