package update_vacancies

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/punkajrapr/timegrid/internal/api/handlers"
	"github.com/punkajrapr/timegrid/internal/api/middleware"
	"github.com/punkajrapr/timegrid/internal/service/vacancies"
	"github.com/punkajrapr/timegrid/internal/service/vacancies/models"
)

const (
	msgInvalidBusinessID  = "invalid business ID"
	msgInvalidRequestBody = "invalid request body"
	msgMissingUserID      = "missing user ID"
	msgBusinessNotFound   = "business not found"
	msgForbidden          = "access denied"
	msgRegistered         = "Availability registered successfully"
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

// Handle PUT /api/v1/businesses/{businessId}/vacancies
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	businessID, err := strconv.ParseInt(vars["businessId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /businesses/{businessId}/vacancies - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /businesses/{businessId}/vacancies - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateVacanciesRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /businesses/{businessId}/vacancies - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq := &models.UpdateSheetRequest{
		UserID:     userID,
		BusinessID: businessID,
		RawText:    req.Vacancies,
	}

	result, err := h.service.UpdateSheet(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, vacancies.ErrInvalidSheet):
			// Сообщение ошибки называет строку, на которой разбор
			// остановился
			h.logger.Warn("PUT /businesses/{businessId}/vacancies - Sheet rejected: business_id=%d, error=%v",
				businessID, err)
			handlers.RespondUnprocessableEntity(w, err.Error())

		case errors.Is(err, vacancies.ErrBusinessNotFound):
			h.logger.Warn("PUT /businesses/{businessId}/vacancies - Business not found: business_id=%d", businessID)
			handlers.RespondNotFound(w, msgBusinessNotFound)

		case errors.Is(err, vacancies.ErrAccessDenied):
			h.logger.Warn("PUT /businesses/{businessId}/vacancies - Access denied: business_id=%d, user_id=%d",
				businessID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, vacancies.ErrInvalidInput):
			h.logger.Warn("PUT /businesses/{businessId}/vacancies - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PUT /businesses/{businessId}/vacancies - Failed to update sheet: business_id=%d, error=%v",
				businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /businesses/{businessId}/vacancies - Sheet updated successfully: business_id=%d, user_id=%d",
		businessID, userID)
	handlers.RespondJSON(w, http.StatusOK, FromServiceResponse(result, msgRegistered))
}
