package create_appointment

import (
	"errors"
	"net/http"

	"github.com/punkajrapr/timegrid/internal/api/handlers"
	"github.com/punkajrapr/timegrid/internal/api/middleware"
	createAppointment "github.com/punkajrapr/timegrid/internal/usecase/create_appointment"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidDateOrTime  = "invalid date or time format, expected YYYY-MM-DD and HH:MM"
	msgMissingUserID      = "missing user ID"
	msgBusinessNotFound   = "business not found"
	msgServiceNotFound    = "service not found"
	msgSlotTaken          = "the selected time is no longer available"
	msgInvalidTimeSlot    = "the selected time is not within published availability"
	msgInvalidDate        = "invalid appointment date"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/booking
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /booking - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /booking - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /booking - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createAppointment.ErrSlotTaken):
			h.logger.Warn("POST /booking - Slot taken: user_id=%d, business_id=%d, time=%s",
				userID, req.BusinessID, req.StartTime)
			handlers.RespondError(w, http.StatusConflict, msgSlotTaken)

		case errors.Is(err, createAppointment.ErrBusinessNotFound):
			h.logger.Warn("POST /booking - Business not found: business_id=%d", req.BusinessID)
			handlers.RespondNotFound(w, msgBusinessNotFound)

		case errors.Is(err, createAppointment.ErrServiceNotFound):
			h.logger.Warn("POST /booking - Service not found: business_id=%d, service_id=%d",
				req.BusinessID, req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createAppointment.ErrInvalidTimeSlot):
			h.logger.Warn("POST /booking - Invalid time slot: user_id=%d, business_id=%d, time=%s",
				userID, req.BusinessID, req.StartTime)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, createAppointment.ErrInvalidDate):
			h.logger.Warn("POST /booking - Invalid date: user_id=%d, business_id=%d, date=%s",
				userID, req.BusinessID, req.Date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /booking - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /booking - Failed to create appointment: user_id=%d, business_id=%d, error=%v",
				userID, req.BusinessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /booking - Appointment created successfully: appointment_id=%d, user_id=%d, business_id=%d, code=%s",
		result.ID, userID, req.BusinessID, result.Code)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
