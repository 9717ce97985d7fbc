package models

import (
	"errors"
	"time"

	"github.com/punkajrapr/timegrid/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid appointment status")
)

// Request модели

// CancelAppointmentRequest запрос на отмену записи
type CancelAppointmentRequest struct {
	UserID             int64  `json:"userId"`
	CancellationReason string `json:"cancellationReason"`
}

// UpdateStatusRequest запрос на обновление статуса записи
type UpdateStatusRequest struct {
	UserID int64  `json:"userId"`
	Status string `json:"status"`
}

// GetUserAppointmentsRequest запрос на получение записей пользователя
type GetUserAppointmentsRequest struct {
	UserID int64   `json:"userId"`
	Status *string `json:"status,omitempty"`
}

// GetBusinessAppointmentsRequest запрос на получение записей бизнеса
type GetBusinessAppointmentsRequest struct {
	UserID          int64      `json:"userId"`
	BusinessID      int64      `json:"businessId"`
	StartDate       *time.Time `json:"startDate,omitempty"`       // Начало периода (опционально)
	EndDate         *time.Time `json:"endDate,omitempty"`         // Конец периода (опционально)
	Status          *string    `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeInactive bool       `json:"includeInactive,omitempty"` // Включить отменённые записи
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetBusinessAppointmentsRequest) ToDomainFilter() (domain.BusinessAppointmentsFilter, error) {
	filter := domain.BusinessAppointmentsFilter{
		BusinessID:      r.BusinessID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
	}

	// Конвертируем статус если указан
	if r.Status != nil {
		status, err := ToDomainAppointmentStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID              int64  `json:"id"`
	UserID          int64  `json:"userId"`
	BusinessID      int64  `json:"businessId"`
	ServiceID       int64  `json:"serviceId"`
	Date            string `json:"date"`      // "2026-08-31"
	StartTime       string `json:"startTime"` // "11:30"
	DurationMinutes int    `json:"durationMinutes"`
	Code            string `json:"code"`
	Status          string `json:"status"`

	// Денормализованные данные
	ServiceName string  `json:"serviceName"`
	Comments    *string `json:"comments,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	resp := &AppointmentResponse{
		ID:                 a.ID,
		UserID:             a.UserID,
		BusinessID:         a.BusinessID,
		ServiceID:          a.ServiceID,
		Date:               a.Date.Format(domain.DateFormat),
		StartTime:          a.StartTime.String(),
		DurationMinutes:    a.DurationMinutes,
		Code:               a.Code,
		Status:             string(a.Status),
		ServiceName:        a.ServiceName,
		Comments:           a.Comments,
		CancellationReason: a.CancellationReason,
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}

	// Конвертируем CancelledAt в строку ISO 8601
	if a.CancelledAt != nil {
		cancelledStr := a.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(appointments []*domain.Appointment) *AppointmentListResponse {
	if appointments == nil {
		return &AppointmentListResponse{
			Appointments: []AppointmentResponse{},
		}
	}

	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, 0, len(appointments)),
	}

	for _, a := range appointments {
		if dto := FromDomainAppointment(a); dto != nil {
			resp.Appointments = append(resp.Appointments, *dto)
		}
	}

	return resp
}

// ToDomainAppointmentStatus конвертирует строку в domain статус
func ToDomainAppointmentStatus(s string) (domain.AppointmentStatus, error) {
	switch domain.AppointmentStatus(s) {
	case domain.StatusConfirmed,
		domain.StatusCompleted,
		domain.StatusCancelledByUser,
		domain.StatusCancelledByBusiness,
		domain.StatusNoShow:
		return domain.AppointmentStatus(s), nil
	default:
		return "", ErrInvalidStatus
	}
}
