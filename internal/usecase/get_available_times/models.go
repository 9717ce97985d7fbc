package get_available_times

import (
	"time"

	"github.com/punkajrapr/timegrid/pkg/types"
)

// Request модель запроса на получение доступных времён
type Request struct {
	BusinessID int64     // ID бизнеса
	ServiceID  int64     // ID услуги
	Date       time.Time // Дата, на которую запрашиваются слоты (без времени)
}

// Response модель ответа со списком доступных времён начала
type Response struct {
	BusinessID int64              // ID бизнеса
	ServiceID  int64              // ID услуги
	Date       time.Time          // Дата запроса
	Times      []types.TimeString // Доступные времена начала, по возрастанию
}
