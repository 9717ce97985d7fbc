package get_available_times

import "errors"

var (
	// ErrBusinessNotFound возвращается, когда бизнес не найден
	ErrBusinessNotFound = errors.New("get_available_times: business not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("get_available_times: service not found")

	// ErrInvalidConfiguration возвращается при некорректных настройках бизнеса
	// (неположительный шаг сетки или длительность услуги)
	ErrInvalidConfiguration = errors.New("get_available_times: invalid business configuration")

	// ErrCorruptSheet возвращается, когда сохранённый лист не разбирается
	// Не должно происходить: лист валидируется при сохранении
	ErrCorruptSheet = errors.New("get_available_times: stored vacancy sheet is not parseable")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_times: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_times: internal error")
)
