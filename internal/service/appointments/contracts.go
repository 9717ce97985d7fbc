package appointments

import (
	"context"

	"github.com/punkajrapr/timegrid/internal/domain"
	"github.com/punkajrapr/timegrid/internal/integrations/directoryservice"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	GetByUserID(ctx context.Context, userID int64, status *domain.AppointmentStatus) ([]*domain.Appointment, error)
	GetByBusinessWithFilter(ctx context.Context, filter domain.BusinessAppointmentsFilter) ([]*domain.Appointment, error)
	UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error
	Cancel(ctx context.Context, id int64, status domain.AppointmentStatus, reason string) error
}

// DirectoryServiceClient интерфейс клиента для DirectoryService
type DirectoryServiceClient interface {
	GetBusiness(ctx context.Context, businessID int64) (*directoryservice.Business, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
