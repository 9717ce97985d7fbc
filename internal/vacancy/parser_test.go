package vacancy

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/punkajrapr/timegrid/internal/domain"
)

func TestParse_ValidSheet(t *testing.T) {
	raw := "haircut:10\n mon, tue\n  9-13\n  14-18\n*:5\n sat\n  10-14\n"

	sheet, err := Parse(raw)
	require.NoError(t, err)
	require.Len(t, sheet.Rules, 2)

	haircut := sheet.Rules[0]
	assert.Equal(t, "haircut", haircut.ServiceKey)
	assert.Equal(t, 10, haircut.Priority)
	assert.True(t, haircut.Days.Has(time.Monday))
	assert.True(t, haircut.Days.Has(time.Tuesday))
	assert.False(t, haircut.Days.Has(time.Wednesday))
	require.Len(t, haircut.Ranges, 2)
	assert.Equal(t, domain.TimeRange{StartMinute: 9 * 60, EndMinute: 13 * 60}, haircut.Ranges[0])
	assert.Equal(t, domain.TimeRange{StartMinute: 14 * 60, EndMinute: 18 * 60}, haircut.Ranges[1])

	wildcard := sheet.Rules[1]
	assert.True(t, wildcard.IsWildcard())
	assert.Equal(t, 5, wildcard.Priority)
	assert.True(t, wildcard.Days.Has(time.Saturday))
}

func TestParse_SkipsBlankLinesAndIgnoresDayCase(t *testing.T) {
	raw := "spa:1\n\n Mon, TUE\n  9-12\n\n"

	sheet, err := Parse(raw)
	require.NoError(t, err)
	require.Len(t, sheet.Rules, 1)
	assert.True(t, sheet.Rules[0].Days.Has(time.Monday))
	assert.True(t, sheet.Rules[0].Days.Has(time.Tuesday))
}

func TestParse_MultipleDayGroupsPerService(t *testing.T) {
	raw := "spa:1\n mon\n  9-12\n sat\n  10-11\n"

	sheet, err := Parse(raw)
	require.NoError(t, err)
	require.Len(t, sheet.Rules, 2)
	assert.Equal(t, "spa", sheet.Rules[0].ServiceKey)
	assert.Equal(t, "spa", sheet.Rules[1].ServiceKey)
	assert.True(t, sheet.Rules[0].Days.Has(time.Monday))
	assert.True(t, sheet.Rules[1].Days.Has(time.Saturday))
}

func TestParse_Errors(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		line int
	}{
		{"empty sheet", "", 0},
		{"only blank lines", "\n\n  \n", 0},
		{"indent too deep", "spa:1\n mon\n   9-12\n", 3},
		{"days without service", " mon\n  9-12\n", 1},
		{"hours without days", "spa:1\n  9-12\n", 2},
		{"day group without hours", "spa:1\n mon\n sat\n  9-12\n", 2},
		{"trailing day group without hours", "spa:1\n mon\n  9-12\n sat\n", 4},
		{"unknown day token", "spa:1\n monday\n  9-12\n", 2},
		{"missing priority", "spa\n mon\n  9-12\n", 1},
		{"non-numeric priority", "spa:high\n mon\n  9-12\n", 1},
		{"service key with whitespace", "day spa:1\n mon\n  9-12\n", 1},
		{"hour range not increasing", "spa:1\n mon\n  12-9\n", 3},
		{"hour range zero width", "spa:1\n mon\n  9-9\n", 3},
		{"hours past midnight", "spa:1\n mon\n  9-25\n", 3},
		{"negative start hour", "spa:1\n mon\n  -1-9\n", 3},
		{"overlapping ranges", "spa:1\n mon\n  9-12\n  11-14\n", 0},
		{"duplicate priority for same day", "spa:1\n mon\n  9-12\nspa:1\n mon, tue\n  13-14\n", 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sheet, err := Parse(tc.raw)
			require.Error(t, err)
			assert.Nil(t, sheet)

			var parseErr *ParseError
			require.True(t, errors.As(err, &parseErr))
			assert.Equal(t, tc.line, parseErr.Line)
		})
	}
}

func TestParse_SamePriorityOnDisjointDaysAllowed(t *testing.T) {
	raw := "spa:1\n mon\n  9-12\nspa:1\n tue\n  13-14\n"

	sheet, err := Parse(raw)
	require.NoError(t, err)
	assert.Len(t, sheet.Rules, 2)
}

func TestParse_SortsRangesWithinRule(t *testing.T) {
	raw := "spa:1\n mon\n  14-18\n  9-12\n"

	sheet, err := Parse(raw)
	require.NoError(t, err)
	require.Len(t, sheet.Rules, 1)
	require.Len(t, sheet.Rules[0].Ranges, 2)
	assert.Equal(t, 9*60, sheet.Rules[0].Ranges[0].StartMinute)
	assert.Equal(t, 14*60, sheet.Rules[0].Ranges[1].StartMinute)
}

func TestSerialize_RoundTrip(t *testing.T) {
	raw := "haircut:10\n tue, mon\n  14-18\n  9-13\n*:5\n sat, sun\n  10-14\n"

	sheet, err := Parse(raw)
	require.NoError(t, err)

	canonical := Serialize(sheet)
	reparsed, err := Parse(canonical)
	require.NoError(t, err)
	assert.Equal(t, sheet, reparsed)

	// Каноническая форма стабильна
	assert.Equal(t, canonical, Serialize(reparsed))
}

func TestSerialize_CanonicalDayOrder(t *testing.T) {
	raw := "spa:1\n sun, sat, mon\n  9-12\n"

	sheet, err := Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "spa:1\n mon, sat, sun\n  9-12\n", Serialize(sheet))
}
