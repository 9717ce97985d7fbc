package vacancy

import (
	"fmt"
	"strings"
	"time"

	"github.com/punkajrapr/timegrid/internal/domain"
)

// canonicalDayOrder порядок дней в канонической форме листа
var canonicalDayOrder = []time.Weekday{
	time.Monday,
	time.Tuesday,
	time.Wednesday,
	time.Thursday,
	time.Friday,
	time.Saturday,
	time.Sunday,
}

var dayNames = map[time.Weekday]string{
	time.Monday:    "mon",
	time.Tuesday:   "tue",
	time.Wednesday: "wed",
	time.Thursday:  "thu",
	time.Friday:    "fri",
	time.Saturday:  "sat",
	time.Sunday:    "sun",
}

// Serialize выводит лист в канонической форме грамматики
// Повторный разбор канонической формы даёт идентичную структуру:
// Parse(Serialize(Parse(x))) == Parse(x)
func Serialize(sheet *domain.VacancySheet) string {
	var b strings.Builder

	for _, rule := range sheet.Rules {
		fmt.Fprintf(&b, "%s:%d\n", rule.ServiceKey, rule.Priority)
		b.WriteString(" " + formatDays(rule.Days) + "\n")
		for _, rng := range rule.Ranges {
			fmt.Fprintf(&b, "  %d-%d\n", rng.StartMinute/60, rng.EndMinute/60)
		}
	}

	return b.String()
}

func formatDays(days domain.WeekdaySet) string {
	var names []string
	for _, day := range canonicalDayOrder {
		if days.Has(day) {
			names = append(names, dayNames[day])
		}
	}
	return strings.Join(names, ", ")
}
