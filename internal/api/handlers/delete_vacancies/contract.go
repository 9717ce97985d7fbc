package delete_vacancies

import "context"

type VacancyService interface {
	DeleteSheet(ctx context.Context, businessID int64, userID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
