package update_vacancies

import (
	"time"

	"github.com/punkajrapr/timegrid/internal/service/vacancies/models"
)

// UpdateVacanciesRequest HTTP request model
// Vacancies - текст листа доступности в том виде, в каком его ввёл
// владелец бизнеса
type UpdateVacanciesRequest struct {
	Vacancies string `json:"vacancies"`
}

// UpdateVacanciesResponse HTTP response model
type UpdateVacanciesResponse struct {
	Message   string `json:"message"`
	Vacancies string `json:"vacancies"` // Каноническая форма сохранённого листа
	UpdatedAt string `json:"updatedAt"`
}

// FromServiceResponse конвертирует ответ сервиса в HTTP response
func FromServiceResponse(resp *models.SheetResponse, message string) *UpdateVacanciesResponse {
	return &UpdateVacanciesResponse{
		Message:   message,
		Vacancies: resp.RawText,
		UpdatedAt: resp.UpdatedAt.Format(time.RFC3339),
	}
}
