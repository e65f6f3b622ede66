package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateOfKeepsLocalCalendarDay(t *testing.T) {
	loc := Location("America/Mexico_City")

	// 23:30 em CDMX já é o dia seguinte em UTC
	late := time.Date(2026, 3, 2, 23, 30, 0, 0, loc)

	day := DateOf(late)
	assert.Equal(t, "2026-03-02", FormatDate(day))
	assert.Equal(t, time.UTC, day.Location())
	assert.Equal(t, time.Monday, day.Weekday())
}

func TestLocationFallsBackToDefault(t *testing.T) {
	assert.Equal(t, DefaultTimezone, Location("Invalid/Zone").String())
	assert.Equal(t, DefaultTimezone, Location("").String())
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-10-16")
	require.NoError(t, err)
	assert.Equal(t, DateOf(d), d)

	_, err = ParseDate("16/10/2026")
	assert.Error(t, err)
}

func TestConfigureIgnoresInvalidZone(t *testing.T) {
	t.Cleanup(func() { Configure(DefaultTimezone) })

	Configure("Nowhere/Land")
	assert.Equal(t, DefaultTimezone, Business())

	Configure("America/Monterrey")
	assert.Equal(t, "America/Monterrey", Business())
}
