package create_appointment

import (
	"time"

	"github.com/punkajrapr/timegrid/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	UserID     int64            // ID пользователя
	BusinessID int64            // ID бизнеса
	ServiceID  int64            // ID услуги
	Date       time.Time        // Дата записи (без времени)
	StartTime  types.TimeString // Время начала (например, "11:30")
	Comments   *string          // Комментарий клиента (опционально)
}

// Response модель ответа с созданной записью
type Response struct {
	ID              int64            // ID созданной записи
	UserID          int64            // ID пользователя
	BusinessID      int64            // ID бизнеса
	ServiceID       int64            // ID услуги
	Date            time.Time        // Дата записи
	StartTime       types.TimeString // Время начала
	DurationMinutes int              // Длительность в минутах
	Code            string           // Код подтверждения
	Status          string           // Статус записи

	// Денормализованные данные
	ServiceName string  // Название услуги
	Comments    *string // Комментарий

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
