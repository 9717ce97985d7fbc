package directoryservice

// Business модель бизнеса из DirectoryService
// Движок доступности читает отсюда настройки сетки слотов
type Business struct {
	ID                  int64  `json:"id"`
	Name                string `json:"name"`
	OwnerID             int64  `json:"owner_id"`
	TimeslotStepMinutes int    `json:"timeslot_step_minutes"` // шаг сетки слотов, напр. 30
	TimeFormat          string `json:"time_format"`           // только для отображения
	AdvancedVacancyMode bool   `json:"advanced_vacancy_mode"` // флаг UI редактора, движком не используется
}

// Service модель услуги из DirectoryService
// Slug служит ключом услуги в листе доступности
type Service struct {
	ID              int64  `json:"id"`
	BusinessID      int64  `json:"business_id"`
	Slug            string `json:"slug"`
	Name            string `json:"name"`
	DurationMinutes int    `json:"duration_minutes"`
}

// ErrorResponse модель ошибки от DirectoryService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
