package get_available_times

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/punkajrapr/timegrid/internal/domain"
	"github.com/punkajrapr/timegrid/pkg/types"
)

func TestGenerateSlots_GridWithinSingleRange(t *testing.T) {
	// 9-18, шаг 30, услуга 240 минут: последний допустимый старт 14:00
	ranges := []domain.TimeRange{{StartMinute: 9 * 60, EndMinute: 18 * 60}}

	slots := generateSlots(ranges, 30, 240)
	require.Len(t, slots, 11)
	assert.Equal(t, 9*60, slots[0].StartMinute)
	assert.Equal(t, 14*60, slots[len(slots)-1].StartMinute)
}

func TestGenerateSlots_GridRestartsPerRange(t *testing.T) {
	// Шаг 45 от 9:00 дал бы 13:30 внутри второго интервала, но сетка
	// начинается заново от начала каждого интервала
	ranges := []domain.TimeRange{
		{StartMinute: 9 * 60, EndMinute: 11 * 60},
		{StartMinute: 13 * 60, EndMinute: 15 * 60},
	}

	slots := generateSlots(ranges, 45, 60)

	var starts []int
	for _, s := range slots {
		starts = append(starts, s.StartMinute)
	}
	assert.Equal(t, []int{540, 585, 780, 825}, starts)
}

func TestGenerateSlots_DurationMustFitRange(t *testing.T) {
	ranges := []domain.TimeRange{{StartMinute: 9 * 60, EndMinute: 10 * 60}}

	assert.Len(t, generateSlots(ranges, 30, 60), 1)
	assert.Empty(t, generateSlots(ranges, 30, 90))
}

func TestGenerateSlots_NoRanges(t *testing.T) {
	assert.Empty(t, generateSlots(nil, 30, 60))
}

func appt(start types.TimeString, duration int, status domain.AppointmentStatus) *domain.Appointment {
	return &domain.Appointment{
		ID:              1,
		StartTime:       start,
		DurationMinutes: duration,
		Status:          status,
	}
}

func TestFilterConflicts_RemovesOverlappingSlots(t *testing.T) {
	// Запись 11:30 на 240 минут занимает [690, 930). При длительности
	// услуги 240 каждый кандидат из 9-18 пересекается с ней
	appointments := []*domain.Appointment{appt("11:30", 240, domain.StatusConfirmed)}

	candidates := generateSlots([]domain.TimeRange{{StartMinute: 9 * 60, EndMinute: 18 * 60}}, 30, 240)
	require.Len(t, candidates, 11)

	available := filterConflicts(candidates, 240, appointments, noopLogger{})
	assert.Empty(t, available)
}

func TestFilterConflicts_ShortServiceKeepsSlotsAroundAppointment(t *testing.T) {
	// Запись [690, 750), услуга 30 минут: выпадают только старты 690 и 720
	appointments := []*domain.Appointment{appt("11:30", 60, domain.StatusConfirmed)}

	candidates := generateSlots([]domain.TimeRange{{StartMinute: 11 * 60, EndMinute: 13 * 60}}, 30, 30)
	available := filterConflicts(candidates, 30, appointments, noopLogger{})

	var starts []int
	for _, s := range available {
		starts = append(starts, s.StartMinute)
	}
	assert.Equal(t, []int{660, 750}, starts)
}

func TestFilterConflicts_TouchingBoundariesDoNotConflict(t *testing.T) {
	// Запись [600, 660): слот, заканчивающийся ровно в 600, и слот,
	// начинающийся ровно в 660, допустимы
	appointments := []*domain.Appointment{appt("10:00", 60, domain.StatusConfirmed)}

	candidates := []domain.Slot{
		{StartMinute: 540}, // [540, 600)
		{StartMinute: 570}, // [570, 630) - пересекается
		{StartMinute: 600}, // [600, 660) - пересекается
		{StartMinute: 660}, // [660, 720)
	}

	available := filterConflicts(candidates, 60, appointments, noopLogger{})
	require.Len(t, available, 2)
	assert.Equal(t, 540, available[0].StartMinute)
	assert.Equal(t, 660, available[1].StartMinute)
}

func TestFilterConflicts_IgnoresInactiveAppointments(t *testing.T) {
	appointments := []*domain.Appointment{
		appt("10:00", 60, domain.StatusCancelledByUser),
		appt("11:00", 60, domain.StatusNoShow),
	}

	candidates := []domain.Slot{{StartMinute: 600}, {StartMinute: 660}}

	available := filterConflicts(candidates, 60, appointments, noopLogger{})
	assert.Len(t, available, 2)
}

func TestFilterConflicts_SkipsUnparseableStartTime(t *testing.T) {
	appointments := []*domain.Appointment{appt("not-a-time", 60, domain.StatusConfirmed)}

	candidates := []domain.Slot{{StartMinute: 600}}

	available := filterConflicts(candidates, 60, appointments, noopLogger{})
	assert.Len(t, available, 1)
}
