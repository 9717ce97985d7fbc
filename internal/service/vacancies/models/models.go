package models

import "time"

// Request модели

// UpdateSheetRequest запрос на публикацию листа доступности
// Лист заменяет предыдущий целиком
type UpdateSheetRequest struct {
	UserID     int64  `json:"userId"`
	BusinessID int64  `json:"businessId"`
	RawText    string `json:"vacancies"`
}

// Response модели

// SheetResponse ответ с листом доступности бизнеса
// RawText приведён к канонической форме: повторная публикация
// этого текста даёт тот же лист
type SheetResponse struct {
	BusinessID int64     `json:"businessId"`
	RawText    string    `json:"vacancies"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
