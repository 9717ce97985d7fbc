package vacancy

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/punkajrapr/timegrid/internal/domain"
)

// Разбор листа доступности. Грамматика с значимыми отступами, три уровня:
//
//	<serviceKey>:<priority>
//	 <day>, <day>, ...
//	  <startHour>-<endHour>
//
// Строка часов присоединяется к ближайшей предыдущей строке дней,
// строка дней - к ближайшей предыдущей строке услуги. Любая ошибка
// валидации отклоняет лист целиком.

// lineKind уровень строки по отступу
type lineKind int

const (
	kindService lineKind = iota // отступ 0: "serviceKey:priority"
	kindDays                    // отступ 1: "mon, tue, ..."
	kindHours                   // отступ 2: "9-18"
)

// token одна значимая строка листа
type token struct {
	kind lineKind
	text string
	line int
}

var dayTokens = map[string]time.Weekday{
	"mon": time.Monday,
	"tue": time.Tuesday,
	"wed": time.Wednesday,
	"thu": time.Thursday,
	"fri": time.Friday,
	"sat": time.Saturday,
	"sun": time.Sunday,
}

// Parse разбирает текст листа в доменную модель
// Возвращает *ParseError при любой ошибке: лист никогда не применяется частично
func Parse(raw string) (*domain.VacancySheet, error) {
	tokens, err := tokenize(raw)
	if err != nil {
		return nil, err
	}

	sheet, err := buildSheet(tokens)
	if err != nil {
		return nil, err
	}

	if err := validateSheet(sheet); err != nil {
		return nil, err
	}

	return sheet, nil
}

// tokenize классифицирует строки по отступу
func tokenize(raw string) ([]token, error) {
	var tokens []token

	for i, line := range strings.Split(raw, "\n") {
		lineNo := i + 1

		if strings.TrimSpace(line) == "" {
			continue
		}

		indent := 0
		for indent < len(line) && line[indent] == ' ' {
			indent++
		}

		var kind lineKind
		switch indent {
		case 0:
			kind = kindService
		case 1:
			kind = kindDays
		case 2:
			kind = kindHours
		default:
			return nil, newParseError(lineNo, "indentation deeper than two levels: %q", line)
		}

		tokens = append(tokens, token{kind: kind, text: strings.TrimSpace(line), line: lineNo})
	}

	return tokens, nil
}

// buildSheet собирает правила из токенов
// Стек контекста: услуга -> группа дней -> диапазоны часов
func buildSheet(tokens []token) (*domain.VacancySheet, error) {
	sheet := &domain.VacancySheet{}

	var (
		haveService bool
		serviceKey  string
		priority    int
		current     *domain.VacancyRule // правило, открытое последней строкой дней
		daysLine    int                 // строка, открывшая текущее правило
	)

	closeRule := func() error {
		if current == nil {
			return nil
		}
		if len(current.Ranges) == 0 {
			return newParseError(daysLine, "weekday group has no hour ranges")
		}
		sheet.Rules = append(sheet.Rules, *current)
		current = nil
		return nil
	}

	for _, tok := range tokens {
		switch tok.kind {
		case kindService:
			if err := closeRule(); err != nil {
				return nil, err
			}
			key, prio, err := parseServiceLine(tok)
			if err != nil {
				return nil, err
			}
			haveService, serviceKey, priority = true, key, prio

		case kindDays:
			if !haveService {
				return nil, newParseError(tok.line, "weekday group without a preceding service line")
			}
			if err := closeRule(); err != nil {
				return nil, err
			}
			days, err := parseDaysLine(tok)
			if err != nil {
				return nil, err
			}
			current = &domain.VacancyRule{
				ServiceKey: serviceKey,
				Priority:   priority,
				Days:       days,
			}
			daysLine = tok.line

		case kindHours:
			if current == nil {
				return nil, newParseError(tok.line, "hour range without a preceding weekday group")
			}
			rng, err := parseHoursLine(tok)
			if err != nil {
				return nil, err
			}
			current.Ranges = append(current.Ranges, rng)
		}
	}

	if err := closeRule(); err != nil {
		return nil, err
	}

	return sheet, nil
}

// parseServiceLine разбирает "serviceKey:priority"
func parseServiceLine(tok token) (string, int, error) {
	idx := strings.LastIndex(tok.text, ":")
	if idx <= 0 {
		return "", 0, newParseError(tok.line, "expected <serviceKey>:<priority>, got %q", tok.text)
	}

	key := strings.TrimSpace(tok.text[:idx])
	if strings.ContainsAny(key, " \t") {
		return "", 0, newParseError(tok.line, "service key must not contain whitespace: %q", key)
	}

	prio, err := strconv.Atoi(strings.TrimSpace(tok.text[idx+1:]))
	if err != nil {
		return "", 0, newParseError(tok.line, "priority must be an integer: %q", tok.text[idx+1:])
	}

	return key, prio, nil
}

// parseDaysLine разбирает "mon, tue, sat" - трёхбуквенные сокращения без учёта регистра
func parseDaysLine(tok token) (domain.WeekdaySet, error) {
	var days domain.WeekdaySet

	for _, part := range strings.Split(tok.text, ",") {
		name := strings.ToLower(strings.TrimSpace(part))
		day, ok := dayTokens[name]
		if !ok {
			return 0, newParseError(tok.line, "unknown day token %q", strings.TrimSpace(part))
		}
		days = days.Add(day)
	}

	if days.IsEmpty() {
		return 0, newParseError(tok.line, "weekday group is empty")
	}

	return days, nil
}

// parseHoursLine разбирает "9-18" - целые часы, границы по нулевой минуте
func parseHoursLine(tok token) (domain.TimeRange, error) {
	parts := strings.SplitN(tok.text, "-", 2)
	if len(parts) != 2 {
		return domain.TimeRange{}, newParseError(tok.line, "expected <startHour>-<endHour>, got %q", tok.text)
	}

	start, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return domain.TimeRange{}, newParseError(tok.line, "start hour must be an integer: %q", parts[0])
	}

	end, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return domain.TimeRange{}, newParseError(tok.line, "end hour must be an integer: %q", parts[1])
	}

	if start < 0 || end > 24 {
		return domain.TimeRange{}, newParseError(tok.line, "hours must lie within 0-24: %q", tok.text)
	}

	if start >= end {
		return domain.TimeRange{}, newParseError(tok.line, "hour range must increase: %q", tok.text)
	}

	return domain.TimeRange{StartMinute: start * 60, EndMinute: end * 60}, nil
}

// validateSheet проверяет инварианты собранного листа:
// непустой лист, отсортированные непересекающиеся диапазоны,
// уникальный приоритет для пары (услуга, день недели)
func validateSheet(sheet *domain.VacancySheet) error {
	if sheet.IsEmpty() {
		return newParseError(0, "sheet declares no availability")
	}

	for i := range sheet.Rules {
		sortRanges(sheet.Rules[i].Ranges)
		for j := 1; j < len(sheet.Rules[i].Ranges); j++ {
			prev, cur := sheet.Rules[i].Ranges[j-1], sheet.Rules[i].Ranges[j]
			if cur.StartMinute < prev.EndMinute {
				return newParseError(0, "overlapping hour ranges for service %q", sheet.Rules[i].ServiceKey)
			}
		}
	}

	// Дубликат приоритета: два правила одной услуги на общий день недели
	// с одинаковым приоритетом сделали бы выбор правила неоднозначным
	type slotKey struct {
		key      string
		day      time.Weekday
		priority int
	}
	seen := make(map[slotKey]bool)

	for _, rule := range sheet.Rules {
		for day := time.Sunday; day <= time.Saturday; day++ {
			if !rule.Days.Has(day) {
				continue
			}
			k := slotKey{key: rule.ServiceKey, day: day, priority: rule.Priority}
			if seen[k] {
				return newParseError(0, "duplicate priority %d for service %q on %s",
					rule.Priority, rule.ServiceKey, day)
			}
			seen[k] = true
		}
	}

	return nil
}

func sortRanges(ranges []domain.TimeRange) {
	sort.Slice(ranges, func(i, j int) bool {
		return ranges[i].StartMinute < ranges[j].StartMinute
	})
}
