package create_appointment

import "errors"

var (
	// ErrBusinessNotFound возвращается, когда бизнес не найден
	ErrBusinessNotFound = errors.New("create_appointment: business not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("create_appointment: service not found")

	// ErrInvalidConfiguration возвращается при некорректных настройках бизнеса
	ErrInvalidConfiguration = errors.New("create_appointment: invalid business configuration")

	// ErrInvalidDate возвращается при дате записи в прошлом
	ErrInvalidDate = errors.New("create_appointment: invalid appointment date")

	// ErrInvalidTimeSlot возвращается, когда запрошенное время не входит
	// в опубликованную сетку доступности на эту дату
	ErrInvalidTimeSlot = errors.New("create_appointment: time is not within published availability")

	// ErrSlotTaken возвращается, когда слот пересекается с существующей
	// активной записью
	ErrSlotTaken = errors.New("create_appointment: slot is already taken")

	// ErrCorruptSheet возвращается, когда сохранённый лист не разбирается
	ErrCorruptSheet = errors.New("create_appointment: stored vacancy sheet is not parseable")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
