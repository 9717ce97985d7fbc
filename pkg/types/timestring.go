package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

// TimeString represents a time of day in "HH:MM" format (24-hour clock).
// Used for appointment start times and slot boundaries where only the
// minute-of-day matters and dates are tracked separately.
type TimeString string

var (
	// ErrInvalidTimeString возвращается при некорректном формате времени
	ErrInvalidTimeString = errors.New("invalid time string format, expected HH:MM")

	// ErrTimeOutOfRange возвращается, когда результат арифметики выходит за пределы суток
	ErrTimeOutOfRange = errors.New("time is out of day range")
)

const timeLayout = "15:04"

// NewTimeString creates a TimeString from a time.Time, keeping only HH:MM.
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(timeLayout))
}

// NewTimeStringFromString parses and validates an "HH:MM" string.
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// NewTimeStringFromMinutes builds a TimeString from minutes since midnight.
func NewTimeStringFromMinutes(minutes int) (TimeString, error) {
	if minutes < 0 || minutes >= 24*60 {
		return "", fmt.Errorf("%w: %d minutes", ErrTimeOutOfRange, minutes)
	}
	return TimeString(fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)), nil
}

// Validate checks that the value is a well-formed "HH:MM" time.
func (t TimeString) Validate() error {
	if _, err := time.Parse(timeLayout, string(t)); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTimeString, t)
	}
	return nil
}

// IsZero reports whether the value is empty.
func (t TimeString) IsZero() bool {
	return t == ""
}

// String returns the "HH:MM" representation.
func (t TimeString) String() string {
	return string(t)
}

// MinuteOfDay returns minutes elapsed since midnight.
// The value must be valid; call Validate first for untrusted input.
func (t TimeString) MinuteOfDay() (int, error) {
	parsed, err := time.Parse(timeLayout, string(t))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, t)
	}
	return parsed.Hour()*60 + parsed.Minute(), nil
}

// IsBefore reports whether t is strictly earlier than other.
func (t TimeString) IsBefore(other TimeString) bool {
	return string(t) < string(other)
}

// IsAfter reports whether t is strictly later than other.
func (t TimeString) IsAfter(other TimeString) bool {
	return string(t) > string(other)
}

// AddMinutes returns the time shifted forward by the given number of minutes.
// Crossing midnight is an error: availability windows never wrap a day.
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	current, err := t.MinuteOfDay()
	if err != nil {
		return "", err
	}
	total := current + minutes
	if total < 0 || total > 24*60 {
		return "", fmt.Errorf("%w: %s + %d minutes", ErrTimeOutOfRange, t, minutes)
	}
	if total == 24*60 {
		// Конец суток представляем как границу "24:00", а не как "00:00"
		return TimeString("24:00"), nil
	}
	return TimeString(fmt.Sprintf("%02d:%02d", total/60, total%60)), nil
}

// Format12Hour returns the time in "h:mm am/pm" form for user-facing messages.
func (t TimeString) Format12Hour() string {
	parsed, err := time.Parse(timeLayout, string(t))
	if err != nil {
		return string(t)
	}
	return parsed.Format("3:04 pm")
}

// Scan implements sql.Scanner. Postgres TIME columns arrive as
// "HH:MM:SS" strings (or time.Time from some drivers); seconds are dropped.
func (t *TimeString) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*t = ""
		return nil
	case time.Time:
		*t = NewTimeString(v)
		return nil
	case []byte:
		return t.scanString(string(v))
	case string:
		return t.scanString(v)
	default:
		return fmt.Errorf("%w: unsupported type %T", ErrInvalidTimeString, value)
	}
}

func (t *TimeString) scanString(s string) error {
	if len(s) >= 5 {
		s = s[:5]
	}
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return err
	}
	*t = ts
	return nil
}

// Value implements driver.Valuer.
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return string(t) + ":00", nil
}
