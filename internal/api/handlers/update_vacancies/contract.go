package update_vacancies

import (
	"context"

	"github.com/punkajrapr/timegrid/internal/service/vacancies/models"
)

type VacancyService interface {
	UpdateSheet(ctx context.Context, req *models.UpdateSheetRequest) (*models.SheetResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
