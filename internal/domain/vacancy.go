package domain

import "time"

// WildcardServiceKey matches every service unless a more specific rule wins.
const WildcardServiceKey = "*"

// WeekdaySet is a set of weekdays a vacancy rule applies to
type WeekdaySet uint8

// Add returns the set with the given weekday included
func (s WeekdaySet) Add(d time.Weekday) WeekdaySet {
	return s | (1 << uint(d))
}

// Has reports whether the set contains the given weekday
func (s WeekdaySet) Has(d time.Weekday) bool {
	return s&(1<<uint(d)) != 0
}

// IsEmpty reports whether no weekday is set
func (s WeekdaySet) IsEmpty() bool {
	return s == 0
}

// TimeRange is a half-open [StartMinute, EndMinute) window within a day,
// in minutes since midnight.
type TimeRange struct {
	StartMinute int
	EndMinute   int
}

// VacancyRule is one recurring weekly availability declaration:
// for the given service key (or wildcard), on the given weekdays,
// the listed time ranges are open for booking.
// Invariant: Ranges are sorted ascending and non-overlapping,
// StartMinute < EndMinute for every range, Days is non-empty.
type VacancyRule struct {
	ServiceKey string
	Priority   int
	Days       WeekdaySet
	Ranges     []TimeRange
}

// IsWildcard reports whether the rule applies to every service
func (r *VacancyRule) IsWildcard() bool {
	return r.ServiceKey == WildcardServiceKey
}

// VacancySheet is the ordered set of vacancy rules owned by one business
type VacancySheet struct {
	Rules []VacancyRule
}

// IsEmpty reports whether the sheet declares no availability at all
func (s *VacancySheet) IsEmpty() bool {
	return len(s.Rules) == 0
}
