// internal/domain/daytime_test.go
package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDayTime(t *testing.T) {
	d, err := ParseDayTime("15:30")
	require.NoError(t, err)
	assert.Equal(t, DayTime{Hour: 15, Minute: 30}, d)
	assert.Equal(t, "15:30", d.String())

	_, err = ParseDayTime("25:00")
	assert.Error(t, err)
	_, err = ParseDayTime("half past three")
	assert.Error(t, err)
}

func TestDayTimeOn(t *testing.T) {
	d := DayTime{Hour: 17, Minute: 0}
	date := time.Date(2024, 3, 15, 9, 45, 12, 0, time.UTC)

	anchored := d.On(date, time.UTC)
	assert.Equal(t, time.Date(2024, 3, 15, 17, 0, 0, 0, time.UTC), anchored)
}

func TestDayTimeMinutesOfDay(t *testing.T) {
	assert.Equal(t, 900, DayTime{Hour: 15, Minute: 0}.MinutesOfDay())
	assert.Equal(t, 0, DayTime{}.MinutesOfDay())
}

func TestDayTimeScan(t *testing.T) {
	var d DayTime
	require.NoError(t, d.Scan("17:30:00"))
	assert.Equal(t, DayTime{Hour: 17, Minute: 30}, d)

	require.NoError(t, d.Scan([]byte("09:05:00")))
	assert.Equal(t, DayTime{Hour: 9, Minute: 5}, d)

	require.NoError(t, d.Scan(time.Date(2024, 1, 1, 21, 15, 0, 0, time.UTC)))
	assert.Equal(t, DayTime{Hour: 21, Minute: 15}, d)

	assert.Error(t, d.Scan(42))
}

func TestDayTimeValue(t *testing.T) {
	v, err := DayTime{Hour: 15, Minute: 0}.Value()
	require.NoError(t, err)
	assert.Equal(t, "15:00:00", v)
}
