package vacancies

import (
	"context"
	"time"

	"github.com/punkajrapr/timegrid/internal/domain"
	"github.com/punkajrapr/timegrid/internal/infra/storage/vacancysheet"
	"github.com/punkajrapr/timegrid/internal/integrations/directoryservice"
)

// VacancySheetRepository интерфейс репозитория листов доступности
type VacancySheetRepository interface {
	GetByBusinessID(ctx context.Context, businessID int64) (*vacancysheet.Record, error)
	Upsert(ctx context.Context, businessID int64, rawText string) (*vacancysheet.Record, error)
	Delete(ctx context.Context, businessID int64) error
}

// DirectoryServiceClient интерфейс клиента для DirectoryService
type DirectoryServiceClient interface {
	GetBusiness(ctx context.Context, businessID int64) (*directoryservice.Business, error)
}

// SheetCache кэш разобранных листов доступности
type SheetCache interface {
	Put(businessID int64, sheet *domain.VacancySheet, updatedAt time.Time)
	Invalidate(businessID int64)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
