package create_appointment

import (
	"context"
	"time"

	"github.com/punkajrapr/timegrid/internal/domain"
	"github.com/punkajrapr/timegrid/internal/infra/storage/vacancysheet"
	"github.com/punkajrapr/timegrid/internal/integrations/directoryservice"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error)
	GetByBusinessWithFilter(ctx context.Context, filter domain.BusinessAppointmentsFilter) ([]*domain.Appointment, error)
}

// VacancySheetRepository интерфейс репозитория листов доступности
type VacancySheetRepository interface {
	GetByBusinessID(ctx context.Context, businessID int64) (*vacancysheet.Record, error)
}

// DirectoryServiceClient интерфейс клиента для DirectoryService
type DirectoryServiceClient interface {
	GetBusiness(ctx context.Context, businessID int64) (*directoryservice.Business, error)
	GetService(ctx context.Context, businessID, serviceID int64) (*directoryservice.Service, error)
}

// SheetCache кэш разобранных листов доступности
type SheetCache interface {
	Get(businessID int64, updatedAt time.Time) (*domain.VacancySheet, bool)
	Put(businessID int64, sheet *domain.VacancySheet, updatedAt time.Time)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
