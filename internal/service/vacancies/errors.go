package vacancies

import "errors"

var (
	// ErrBusinessNotFound возвращается, когда бизнес не найден
	ErrBusinessNotFound = errors.New("business not found")

	// ErrSheetNotFound возвращается, когда у бизнеса нет сохранённого листа
	ErrSheetNotFound = errors.New("vacancy sheet not found")

	// ErrInvalidSheet возвращается, когда текст листа не проходит разбор
	// Лист отклоняется целиком: ни одна строка не применяется
	ErrInvalidSheet = errors.New("invalid vacancy sheet")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
