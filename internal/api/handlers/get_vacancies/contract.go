package get_vacancies

import (
	"context"

	"github.com/punkajrapr/timegrid/internal/service/vacancies/models"
)

type VacancyService interface {
	GetSheet(ctx context.Context, businessID int64, userID int64) (*models.SheetResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
