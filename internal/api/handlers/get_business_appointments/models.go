package get_business_appointments

import (
	"net/url"
	"strconv"
	"time"

	"github.com/punkajrapr/timegrid/internal/domain"
	"github.com/punkajrapr/timegrid/internal/service/appointments/models"
)

// ToServiceRequest собирает запрос сервиса из query параметров
// Поддерживаются: startDate, endDate (YYYY-MM-DD), status, includeInactive
func ToServiceRequest(businessID, userID int64, query url.Values) (*models.GetBusinessAppointmentsRequest, error) {
	req := &models.GetBusinessAppointmentsRequest{
		UserID:     userID,
		BusinessID: businessID,
	}

	if startDateStr := query.Get("startDate"); startDateStr != "" {
		startDate, err := time.Parse(domain.DateFormat, startDateStr)
		if err != nil {
			return nil, err
		}
		req.StartDate = &startDate
	}

	if endDateStr := query.Get("endDate"); endDateStr != "" {
		endDate, err := time.Parse(domain.DateFormat, endDateStr)
		if err != nil {
			return nil, err
		}
		req.EndDate = &endDate
	}

	if statusStr := query.Get("status"); statusStr != "" {
		req.Status = &statusStr
	}

	if includeInactiveStr := query.Get("includeInactive"); includeInactiveStr != "" {
		includeInactive, err := strconv.ParseBool(includeInactiveStr)
		if err != nil {
			return nil, err
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
