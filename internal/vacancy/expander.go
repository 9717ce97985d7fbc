package vacancy

import (
	"time"

	"github.com/punkajrapr/timegrid/internal/domain"
)

// Expand возвращает открытые интервалы для (услуга, дата):
// определяет день недели даты, выбирает выигравшее правило и отдаёт
// его диапазоны как есть. Пустой результат - легитимный "нет приёма",
// не ошибка. Функция детерминирована и не зависит от текущего времени.
func Expand(sheet *domain.VacancySheet, serviceKey string, date time.Time) []domain.TimeRange {
	weekday := date.Weekday()

	var best *domain.VacancyRule
	for i := range sheet.Rules {
		rule := &sheet.Rules[i]
		if !rule.Days.Has(weekday) {
			continue
		}
		if rule.ServiceKey != serviceKey && !rule.IsWildcard() {
			continue
		}
		if best == nil || betterRule(rule, best) {
			best = rule
		}
	}

	if best == nil {
		return nil
	}

	ranges := make([]domain.TimeRange, len(best.Ranges))
	copy(ranges, best.Ranges)
	return ranges
}

// betterRule сравнение правил-кандидатов для одной пары (услуга, день недели):
// выше приоритет - выигрывает; при равном приоритете конкретный ключ услуги
// бьёт wildcard. Вынесено в отдельную функцию, чтобы политика разрешения
// конфликтов тестировалась изолированно.
func betterRule(candidate, current *domain.VacancyRule) bool {
	if candidate.Priority != current.Priority {
		return candidate.Priority > current.Priority
	}
	return !candidate.IsWildcard() && current.IsWildcard()
}
