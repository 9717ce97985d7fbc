package domain

// Business validation constants
const (
	MinTimeslotStepMinutes = 5
	MaxTimeslotStepMinutes = 480 // 8 hours
	MaxCommentsLength      = 500
	MinutesPerDay          = 24 * 60
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses список статусов записей, не блокирующих слоты
// Используется при фильтрации занятых интервалов
var InactiveStatuses = []AppointmentStatus{
	StatusCancelledByUser,
	StatusCancelledByBusiness,
	StatusNoShow,
}

// ActiveStatuses список статусов активных записей
var ActiveStatuses = []AppointmentStatus{
	StatusConfirmed,
	StatusCompleted,
}
