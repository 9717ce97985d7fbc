package create_appointment

import (
	"fmt"
	"time"

	"github.com/punkajrapr/timegrid/internal/domain"
	createAppointment "github.com/punkajrapr/timegrid/internal/usecase/create_appointment"
	"github.com/punkajrapr/timegrid/pkg/types"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	BusinessID int64   `json:"businessId"`
	ServiceID  int64   `json:"serviceId"`
	Date       string  `json:"date"` // "2026-08-31"
	StartTime  string  `json:"time"` // "11:30"
	Comments   *string `json:"comments,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID              int64   `json:"id"`
	UserID          int64   `json:"userId"`
	BusinessID      int64   `json:"businessId"`
	ServiceID       int64   `json:"serviceId"`
	Date            string  `json:"date"`
	StartTime       string  `json:"startTime"`
	DurationMinutes int     `json:"durationMinutes"`
	Code            string  `json:"code"`
	Status          string  `json:"status"`
	ServiceName     string  `json:"serviceName"`
	Comments        *string `json:"comments,omitempty"`
	Message         string  `json:"message"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest(userID int64) (*createAppointment.Request, error) {
	// Парсим дату
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	// Парсим время
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createAppointment.Request{
		UserID:     userID,
		BusinessID: r.BusinessID,
		ServiceID:  r.ServiceID,
		Date:       date,
		StartTime:  startTime,
		Comments:   r.Comments,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:              resp.ID,
		UserID:          resp.UserID,
		BusinessID:      resp.BusinessID,
		ServiceID:       resp.ServiceID,
		Date:            resp.Date.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Code:            resp.Code,
		Status:          resp.Status,
		ServiceName:     resp.ServiceName,
		Comments:        resp.Comments,
		Message:         fmt.Sprintf("Please arrive at %s", resp.StartTime.Format12Hour()),
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
