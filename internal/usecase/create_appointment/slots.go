package create_appointment

import (
	"github.com/punkajrapr/timegrid/internal/domain"
)

// isAdmissibleStart проверяет, что запрошенное время лежит на сетке
// кандидатов: совпадает с одним из стартов, порождаемых рабочими
// интервалами дня с шагом бизнеса, и запись целиком помещается в интервал
func isAdmissibleStart(ranges []domain.TimeRange, startMinute, stepMinutes, durationMinutes int) bool {
	for _, r := range ranges {
		for start := r.StartMinute; start+durationMinutes <= r.EndMinute; start += stepMinutes {
			if start == startMinute {
				return true
			}
			if start > startMinute {
				break
			}
		}
	}

	return false
}

// hasOverlappingAppointment проверяет пересечение запрошенного слота
// с активными записями. Касание границ пересечением не считается
func hasOverlappingAppointment(startMinute, durationMinutes int, appointments []*domain.Appointment, logger Logger) bool {
	for _, appointment := range appointments {
		if !appointment.IsActive() {
			continue
		}

		apptStart, err := appointment.StartTime.MinuteOfDay()
		if err != nil {
			logger.Warn("create_appointment: appointment %d has unparseable start time %q, skipping", appointment.ID, appointment.StartTime)
			continue
		}

		if domain.Overlaps(startMinute, durationMinutes, apptStart, appointment.DurationMinutes) {
			return true
		}
	}

	return false
}
