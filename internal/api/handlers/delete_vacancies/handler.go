package delete_vacancies

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/punkajrapr/timegrid/internal/api/handlers"
	"github.com/punkajrapr/timegrid/internal/api/middleware"
	"github.com/punkajrapr/timegrid/internal/service/vacancies"
)

const (
	msgInvalidBusinessID = "invalid business ID"
	msgMissingUserID     = "missing user ID"
	msgBusinessNotFound  = "business not found"
	msgSheetNotFound     = "vacancy sheet not found"
	msgForbidden         = "access denied"
)

type Handler struct {
	service VacancyService
	logger  Logger
}

func NewHandler(service VacancyService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/businesses/{businessId}/vacancies
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	businessID, err := strconv.ParseInt(vars["businessId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /businesses/{businessId}/vacancies - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /businesses/{businessId}/vacancies - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	if err := h.service.DeleteSheet(r.Context(), businessID, userID); err != nil {
		switch {
		case errors.Is(err, vacancies.ErrSheetNotFound):
			h.logger.Warn("DELETE /businesses/{businessId}/vacancies - Sheet not found: business_id=%d", businessID)
			handlers.RespondNotFound(w, msgSheetNotFound)

		case errors.Is(err, vacancies.ErrBusinessNotFound):
			h.logger.Warn("DELETE /businesses/{businessId}/vacancies - Business not found: business_id=%d", businessID)
			handlers.RespondNotFound(w, msgBusinessNotFound)

		case errors.Is(err, vacancies.ErrAccessDenied):
			h.logger.Warn("DELETE /businesses/{businessId}/vacancies - Access denied: business_id=%d, user_id=%d",
				businessID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("DELETE /businesses/{businessId}/vacancies - Failed to delete sheet: business_id=%d, error=%v",
				businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /businesses/{businessId}/vacancies - Sheet deleted successfully: business_id=%d, user_id=%d",
		businessID, userID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
