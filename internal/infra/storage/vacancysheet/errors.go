package vacancysheet

import "errors"

var (
	// ErrSheetNotFound возвращается, когда у бизнеса нет сохранённого листа
	ErrSheetNotFound = errors.New("vacancysheet.repository: sheet not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("vacancysheet.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("vacancysheet.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("vacancysheet.repository: failed to scan row")
)
