package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay(t *testing.T) {
	tod, err := ParseTimeOfDay("09:30")
	require.NoError(t, err)
	assert.Equal(t, 9, tod.Hour())
	assert.Equal(t, 30, tod.Minute())
	assert.Equal(t, "09:30", tod.String())

	tod, err = ParseTimeOfDay("16:00:00")
	require.NoError(t, err)
	assert.Equal(t, "16:00", tod.String())

	_, err = ParseTimeOfDay("24:00")
	assert.Error(t, err)

	_, err = ParseTimeOfDay("bogus")
	assert.Error(t, err)
}

func TestTimeOfDayJSON(t *testing.T) {
	tod := MustParseTimeOfDay("08:05")
	data, err := tod.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"08:05"`, string(data))

	var parsed TimeOfDay
	require.NoError(t, parsed.UnmarshalJSON([]byte(`"15:30"`)))
	assert.Equal(t, MustParseTimeOfDay("15:30"), parsed)

	assert.Error(t, parsed.UnmarshalJSON([]byte(`1530`)))
}

func TestCombine(t *testing.T) {
	loc, err := time.LoadLocation(DefaultTimezone)
	require.NoError(t, err)

	date := time.Date(2026, 12, 25, 0, 0, 0, 0, loc)
	at := Combine(date, MustParseTimeOfDay("10:00"), loc)

	assert.Equal(t, 2026, at.Year())
	assert.Equal(t, time.December, at.Month())
	assert.Equal(t, 25, at.Day())
	assert.Equal(t, 10, at.Hour())
	assert.Equal(t, 0, at.Minute())
	assert.Equal(t, loc, at.Location())
}

func TestWeekdayMondayBased(t *testing.T) {
	loc := time.UTC
	monday := time.Date(2026, 8, 24, 0, 0, 0, 0, loc)
	require.Equal(t, time.Monday, monday.Weekday())

	assert.Equal(t, 0, Weekday(monday))
	assert.Equal(t, 4, Weekday(monday.AddDate(0, 0, 4))) // Friday
	assert.Equal(t, 6, Weekday(monday.AddDate(0, 0, 6))) // Sunday
}

func TestSameDate(t *testing.T) {
	loc := time.UTC
	a := time.Date(2026, 1, 2, 23, 59, 0, 0, loc)
	b := time.Date(2026, 1, 2, 0, 1, 0, 0, loc)
	c := time.Date(2026, 1, 3, 0, 0, 0, 0, loc)

	assert.True(t, SameDate(a, b))
	assert.False(t, SameDate(a, c))
}

func TestFixedClock(t *testing.T) {
	at := time.Date(2026, 3, 1, 8, 0, 30, 0, time.UTC)
	c := Fixed{T: at}
	assert.Equal(t, at, c.Now())
	assert.Equal(t, time.UTC, c.Location())
}
