package get_available_times

import (
	"github.com/punkajrapr/timegrid/internal/domain"
)

// generateSlots строит сетку кандидатов по рабочим интервалам дня.
// Сетка начинается заново от начала каждого интервала; кандидат
// допустим, пока запись целиком помещается в интервал
func generateSlots(ranges []domain.TimeRange, stepMinutes, durationMinutes int) []domain.Slot {
	var slots []domain.Slot

	for _, r := range ranges {
		for start := r.StartMinute; start+durationMinutes <= r.EndMinute; start += stepMinutes {
			slots = append(slots, domain.Slot{StartMinute: start})
		}
	}

	return slots
}

// filterConflicts оставляет только слоты, не пересекающиеся ни с одной
// активной записью. Касание границ пересечением не считается
func filterConflicts(slots []domain.Slot, durationMinutes int, appointments []*domain.Appointment, logger Logger) []domain.Slot {
	available := make([]domain.Slot, 0, len(slots))

	for _, slot := range slots {
		if !conflictsWithAny(slot, durationMinutes, appointments, logger) {
			available = append(available, slot)
		}
	}

	return available
}

func conflictsWithAny(slot domain.Slot, durationMinutes int, appointments []*domain.Appointment, logger Logger) bool {
	for _, appointment := range appointments {
		if !appointment.IsActive() {
			continue
		}

		startMinute, err := appointment.StartTime.MinuteOfDay()
		if err != nil {
			logger.Warn("get_available_times: appointment %d has unparseable start time %q, skipping", appointment.ID, appointment.StartTime)
			continue
		}

		if domain.Overlaps(slot.StartMinute, durationMinutes, startMinute, appointment.DurationMinutes) {
			return true
		}
	}

	return false
}
