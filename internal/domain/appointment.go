package domain

import (
	"time"

	"github.com/punkajrapr/timegrid/pkg/types"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusConfirmed           AppointmentStatus = "confirmed"
	StatusCompleted           AppointmentStatus = "completed"
	StatusCancelledByUser     AppointmentStatus = "cancelled_by_user"
	StatusCancelledByBusiness AppointmentStatus = "cancelled_by_business"
	StatusNoShow              AppointmentStatus = "no_show"
)

// Appointment represents a confirmed reservation of a time slot.
// Created only by a successful booking commit and never mutated afterwards,
// except for the cancellation status transition.
type Appointment struct {
	ID              int64
	BusinessID      int64
	ServiceID       int64
	UserID          int64
	Date            time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Code            string // уникальный человекочитаемый код подтверждения
	Comments        *string
	Status          AppointmentStatus

	// Denormalized data for history
	ServiceName string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive reports whether the appointment still blocks its time slot.
// Cancelled and no-show appointments free the slot: a missing or cancelled
// appointment is treated as "no longer blocking".
func (a *Appointment) IsActive() bool {
	return a.Status != StatusCancelledByUser &&
		a.Status != StatusCancelledByBusiness &&
		a.Status != StatusNoShow
}

// CanBeCancelled reports whether the appointment can still be cancelled
func (a *Appointment) CanBeCancelled() bool {
	return a.Status == StatusConfirmed
}

// IsCancelled reports whether the appointment has been cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == StatusCancelledByUser || a.Status == StatusCancelledByBusiness
}

// BusinessAppointmentsFilter фильтр для получения записей бизнеса
type BusinessAppointmentsFilter struct {
	BusinessID      int64              // Обязательный параметр
	StartDate       *time.Time         // Начало периода (опционально)
	EndDate         *time.Time         // Конец периода (опционально)
	Status          *AppointmentStatus // Фильтр по статусу (опционально)
	IncludeInactive bool               // Включать ли отменённые и no-show записи
}
