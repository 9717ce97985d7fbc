package vacancy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/punkajrapr/timegrid/internal/domain"
)

// Фиксированные даты: 2026-09-07 - понедельник, 2026-09-08 - вторник
var (
	monday  = time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	tuesday = time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC)
)

func mustParse(t *testing.T, raw string) *domain.VacancySheet {
	t.Helper()
	sheet, err := Parse(raw)
	require.NoError(t, err)
	return sheet
}

func TestExpand_MatchesWeekday(t *testing.T) {
	sheet := mustParse(t, "haircut:10\n mon\n  9-18\n")

	ranges := Expand(sheet, "haircut", monday)
	require.Len(t, ranges, 1)
	assert.Equal(t, domain.TimeRange{StartMinute: 9 * 60, EndMinute: 18 * 60}, ranges[0])

	assert.Nil(t, Expand(sheet, "haircut", tuesday))
}

func TestExpand_WildcardCoversAnyService(t *testing.T) {
	sheet := mustParse(t, "*:5\n mon\n  10-14\n")

	ranges := Expand(sheet, "haircut", monday)
	require.Len(t, ranges, 1)
	assert.Equal(t, 10*60, ranges[0].StartMinute)
}

func TestExpand_UnknownServiceKeyGetsNoRanges(t *testing.T) {
	sheet := mustParse(t, "haircut:10\n mon\n  9-18\n")

	assert.Nil(t, Expand(sheet, "massage", monday))
}

func TestExpand_HigherPriorityWins(t *testing.T) {
	sheet := mustParse(t, "haircut:1\n mon\n  9-18\nhaircut:20\n mon\n  10-12\n")

	ranges := Expand(sheet, "haircut", monday)
	require.Len(t, ranges, 1)
	assert.Equal(t, domain.TimeRange{StartMinute: 10 * 60, EndMinute: 12 * 60}, ranges[0])
}

func TestExpand_SpecificBeatsWildcardAtEqualPriority(t *testing.T) {
	sheet := mustParse(t, "*:5\n mon\n  9-18\nhaircut:5\n mon\n  10-12\n")

	ranges := Expand(sheet, "haircut", monday)
	require.Len(t, ranges, 1)
	assert.Equal(t, 10*60, ranges[0].StartMinute)

	// Для других услуг действует wildcard
	other := Expand(sheet, "massage", monday)
	require.Len(t, other, 1)
	assert.Equal(t, 9*60, other[0].StartMinute)
}

func TestExpand_WildcardWithHigherPriorityBeatsSpecific(t *testing.T) {
	sheet := mustParse(t, "haircut:1\n mon\n  9-18\n*:10\n mon\n  13-15\n")

	ranges := Expand(sheet, "haircut", monday)
	require.Len(t, ranges, 1)
	assert.Equal(t, 13*60, ranges[0].StartMinute)
}

func TestExpand_ReturnsCopy(t *testing.T) {
	sheet := mustParse(t, "haircut:10\n mon\n  9-18\n")

	ranges := Expand(sheet, "haircut", monday)
	require.Len(t, ranges, 1)
	ranges[0].StartMinute = 0

	again := Expand(sheet, "haircut", monday)
	assert.Equal(t, 9*60, again[0].StartMinute)
}

func TestExpand_Deterministic(t *testing.T) {
	sheet := mustParse(t, "*:5\n mon, tue\n  9-12\n  13-18\n")

	first := Expand(sheet, "haircut", monday)
	second := Expand(sheet, "haircut", monday)
	assert.Equal(t, first, second)
}
