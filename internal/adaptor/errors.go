package adaptor

import (
	"errors"
	"net/http"
	"strings"

	"bus-ticketing/internal/data/entity"
	"bus-ticketing/pkg/utils"

	"go.uber.org/zap"
)

// handleServiceError maps domain errors to HTTP status codes. The seat
// conflict is a 409 so clients can distinguish "taken, pick another"
// from plain bad input.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	switch {
	case errors.Is(err, entity.ErrSeatAlreadyBooked):
		log.Info(operation+" conflict", zap.Error(err))
		utils.ResponseConflict(w, err.Error())

	case errors.Is(err, entity.ErrInvalidSeat),
		errors.Is(err, entity.ErrBusUnavailable),
		errors.Is(err, entity.ErrInvalidTransition):
		log.Warn(operation+" rejected", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, entity.ErrBusNotFound),
		errors.Is(err, entity.ErrBookingNotFound),
		errors.Is(err, entity.ErrPassengerNotFound),
		errors.Is(err, entity.ErrRouteNotFound):
		log.Warn(operation+" not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, entity.ErrInvalidCredentials):
		log.Warn(operation+" unauthorized", zap.Error(err))
		utils.ResponseUnauthorized(w, "Invalid email or password")

	case strings.Contains(err.Error(), "validation failed"):
		log.Warn(operation+" validation failed", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	default:
		log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
