package get_user_appointments

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/punkajrapr/timegrid/internal/api/handlers"
	"github.com/punkajrapr/timegrid/internal/api/middleware"
	"github.com/punkajrapr/timegrid/internal/service/appointments"
	"github.com/punkajrapr/timegrid/internal/service/appointments/models"
)

const (
	msgInvalidUserID = "invalid user ID"
	msgMissingUserID = "missing user ID"
	msgForbidden     = "access denied"
	msgInvalidStatus = "invalid status filter"
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

// Handle GET /api/v1/users/{userId}/appointments
// Query params: status (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	targetUserID, err := strconv.ParseInt(vars["userId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /users/{userId}/appointments - Invalid user ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	authUserID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /users/{userId}/appointments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Пользователь может смотреть только свою историю
	if authUserID != targetUserID {
		h.logger.Warn("GET /users/{userId}/appointments - Access denied: auth_user=%d, target_user=%d",
			authUserID, targetUserID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	req := &models.GetUserAppointmentsRequest{UserID: targetUserID}

	if statusStr := r.URL.Query().Get("status"); statusStr != "" {
		req.Status = &statusStr
	}

	result, err := h.service.GetUserAppointments(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /users/{userId}/appointments - Invalid status filter: user_id=%d", targetUserID)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /users/{userId}/appointments - Failed to get appointments: user_id=%d, error=%v",
				targetUserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /users/{userId}/appointments - Appointments retrieved successfully: user_id=%d, count=%d",
		targetUserID, len(result.Appointments))
	handlers.RespondJSON(w, http.StatusOK, result)
}
