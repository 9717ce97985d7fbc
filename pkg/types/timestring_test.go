package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	ts, err := NewTimeStringFromString("09:30")
	require.NoError(t, err)
	assert.Equal(t, "09:30", ts.String())

	for _, bad := range []string{"", "9:3", "25:00", "12:60", "noon", "12-30"} {
		_, err := NewTimeStringFromString(bad)
		assert.ErrorIs(t, err, ErrInvalidTimeString, "input %q", bad)
	}
}

func TestNewTimeStringFromMinutes(t *testing.T) {
	ts, err := NewTimeStringFromMinutes(0)
	require.NoError(t, err)
	assert.Equal(t, "00:00", ts.String())

	ts, err = NewTimeStringFromMinutes(690)
	require.NoError(t, err)
	assert.Equal(t, "11:30", ts.String())

	ts, err = NewTimeStringFromMinutes(23*60 + 59)
	require.NoError(t, err)
	assert.Equal(t, "23:59", ts.String())

	_, err = NewTimeStringFromMinutes(-1)
	assert.ErrorIs(t, err, ErrTimeOutOfRange)

	_, err = NewTimeStringFromMinutes(24 * 60)
	assert.ErrorIs(t, err, ErrTimeOutOfRange)
}

func TestMinuteOfDay(t *testing.T) {
	minutes, err := TimeString("11:30").MinuteOfDay()
	require.NoError(t, err)
	assert.Equal(t, 690, minutes)

	_, err = TimeString("garbage").MinuteOfDay()
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestAddMinutes(t *testing.T) {
	ts, err := TimeString("11:30").AddMinutes(240)
	require.NoError(t, err)
	assert.Equal(t, "15:30", ts.String())

	// Конец суток представим как граница
	ts, err = TimeString("23:00").AddMinutes(60)
	require.NoError(t, err)
	assert.Equal(t, "24:00", ts.String())

	_, err = TimeString("23:30").AddMinutes(60)
	assert.ErrorIs(t, err, ErrTimeOutOfRange)
}

func TestComparisons(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("14:00"))
	assert.False(t, TimeString("14:00").IsBefore("09:00"))
	assert.True(t, TimeString("14:00").IsAfter("09:00"))
	assert.False(t, TimeString("09:00").IsAfter("09:00"))
}

func TestFormat12Hour(t *testing.T) {
	assert.Equal(t, "11:30 am", TimeString("11:30").Format12Hour())
	assert.Equal(t, "2:05 pm", TimeString("14:05").Format12Hour())
	assert.Equal(t, "12:00 am", TimeString("00:00").Format12Hour())
}

func TestScan(t *testing.T) {
	var ts TimeString

	// Postgres TIME приходит как "HH:MM:SS"
	require.NoError(t, ts.Scan("11:30:00"))
	assert.Equal(t, "11:30", ts.String())

	require.NoError(t, ts.Scan([]byte("09:15:59")))
	assert.Equal(t, "09:15", ts.String())

	require.NoError(t, ts.Scan(time.Date(2026, 9, 7, 14, 45, 0, 0, time.UTC)))
	assert.Equal(t, "14:45", ts.String())

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))
}

func TestValue(t *testing.T) {
	v, err := TimeString("11:30").Value()
	require.NoError(t, err)
	assert.Equal(t, "11:30:00", v)

	v, err = TimeString("").Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	_, err = TimeString("garbage").Value()
	assert.Error(t, err)
}
