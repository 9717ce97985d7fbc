package get_available_times

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/punkajrapr/timegrid/internal/api/handlers"
	getAvailableTimes "github.com/punkajrapr/timegrid/internal/usecase/get_available_times"
)

const (
	msgInvalidBusinessID = "invalid business ID"
	msgInvalidServiceID  = "invalid service ID"
	msgInvalidDate       = "invalid date format, expected YYYY-MM-DD"
	msgBusinessNotFound  = "business not found"
	msgServiceNotFound   = "service not found"
)

type Handler struct {
	useCase GetAvailableTimesUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableTimesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/vacancies/{businessId}/{serviceId}/{date}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	businessID, err := strconv.ParseInt(vars["businessId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /vacancies/{businessId}/{serviceId}/{date} - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	serviceID, err := strconv.ParseInt(vars["serviceId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /vacancies/{businessId}/{serviceId}/{date} - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	// Формируем запрос к use case (с парсингом даты)
	useCaseReq, err := ToUseCaseRequest(businessID, serviceID, vars["date"])
	if err != nil {
		h.logger.Warn("GET /vacancies/{businessId}/{serviceId}/{date} - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableTimes.ErrBusinessNotFound):
			h.logger.Warn("GET /vacancies/{businessId}/{serviceId}/{date} - Business not found: business_id=%d", businessID)
			handlers.RespondNotFound(w, msgBusinessNotFound)

		case errors.Is(err, getAvailableTimes.ErrServiceNotFound):
			h.logger.Warn("GET /vacancies/{businessId}/{serviceId}/{date} - Service not found: business_id=%d, service_id=%d",
				businessID, serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailableTimes.ErrInvalidInput):
			h.logger.Warn("GET /vacancies/{businessId}/{serviceId}/{date} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /vacancies/{businessId}/{serviceId}/{date} - Failed to get times: business_id=%d, service_id=%d, error=%v",
				businessID, serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /vacancies/{businessId}/{serviceId}/{date} - Times retrieved successfully: business_id=%d, service_id=%d, times_count=%d",
		businessID, serviceID, len(result.Times))
	handlers.RespondJSON(w, http.StatusOK, response)
}
