package slot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glowbook/salon-backend/internal/clock"
)

func TestBuildIntervals(t *testing.T) {
	intervals := BuildIntervals(
		clock.MustParseTimeOfDay("09:00"),
		clock.MustParseTimeOfDay("16:00"),
		30,
	)

	require.Len(t, intervals, 14)
	assert.Equal(t, clock.MustParseTimeOfDay("09:00"), intervals[0].Start)
	assert.Equal(t, clock.MustParseTimeOfDay("09:30"), intervals[0].End)
	assert.Equal(t, clock.MustParseTimeOfDay("15:30"), intervals[13].Start)
	assert.Equal(t, clock.MustParseTimeOfDay("16:00"), intervals[13].End)
}

func TestBuildIntervalsPartialTail(t *testing.T) {
	// 09:00-10:15 with 30-minute steps: the 10:00-10:30 slot does not
	// fit and is dropped.
	intervals := BuildIntervals(
		clock.MustParseTimeOfDay("09:00"),
		clock.MustParseTimeOfDay("10:15"),
		30,
	)

	require.Len(t, intervals, 2)
	assert.Equal(t, clock.MustParseTimeOfDay("10:00"), intervals[1].End)
}

func TestBuildIntervalsClippedAtMidnight(t *testing.T) {
	intervals := BuildIntervals(
		clock.MustParseTimeOfDay("23:00"),
		clock.EndOfDay,
		30,
	)

	require.Len(t, intervals, 1)
	assert.Equal(t, clock.MustParseTimeOfDay("23:00"), intervals[0].Start)
	assert.Equal(t, clock.MustParseTimeOfDay("23:30"), intervals[0].End)
}

func TestBuildIntervalsInvalidInput(t *testing.T) {
	assert.Nil(t, BuildIntervals(clock.MustParseTimeOfDay("10:00"), clock.MustParseTimeOfDay("09:00"), 30))
	assert.Nil(t, BuildIntervals(clock.MustParseTimeOfDay("09:00"), clock.MustParseTimeOfDay("10:00"), 0))
}

func TestSlotStartEndAt(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Minsk")
	require.NoError(t, err)

	s := &Slot{
		Date:  time.Date(2026, 12, 25, 0, 0, 0, 0, time.UTC),
		Start: clock.MustParseTimeOfDay("10:00"),
		End:   clock.MustParseTimeOfDay("10:20"),
	}

	start := s.StartAt(loc)
	assert.Equal(t, time.Date(2026, 12, 25, 10, 0, 0, 0, loc), start)
	assert.Equal(t, 20*time.Minute, s.EndAt(loc).Sub(start))
}
