package get_business_appointments

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/punkajrapr/timegrid/internal/api/handlers"
	"github.com/punkajrapr/timegrid/internal/api/middleware"
	"github.com/punkajrapr/timegrid/internal/service/appointments"
)

const (
	msgInvalidBusinessID = "invalid business ID"
	msgInvalidQuery      = "invalid query parameters"
	msgMissingUserID     = "missing user ID"
	msgBusinessNotFound  = "business not found"
	msgForbidden         = "access denied"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/businesses/{businessId}/appointments
// Query params: startDate, endDate, status, includeInactive (все опциональны)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	businessID, err := strconv.ParseInt(vars["businessId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /businesses/{businessId}/appointments - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /businesses/{businessId}/appointments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	req, err := ToServiceRequest(businessID, userID, r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /businesses/{businessId}/appointments - Invalid query parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.service.GetBusinessAppointments(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrBusinessNotFound):
			h.logger.Warn("GET /businesses/{businessId}/appointments - Business not found: business_id=%d", businessID)
			handlers.RespondNotFound(w, msgBusinessNotFound)

		case errors.Is(err, appointments.ErrAccessDenied):
			h.logger.Warn("GET /businesses/{businessId}/appointments - Access denied: business_id=%d, user_id=%d",
				businessID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /businesses/{businessId}/appointments - Invalid filter: business_id=%d", businessID)
			handlers.RespondBadRequest(w, msgInvalidQuery)

		default:
			h.logger.Error("GET /businesses/{businessId}/appointments - Failed to get appointments: business_id=%d, error=%v",
				businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /businesses/{businessId}/appointments - Appointments retrieved successfully: business_id=%d, count=%d",
		businessID, len(result.Appointments))
	handlers.RespondJSON(w, http.StatusOK, result)
}
