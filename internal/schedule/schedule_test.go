package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	domain "github.com/oshokin/smart-alarm/internal/domain/alarm"
)

// mondayMorning is Monday 2025-03-03 09:00 UTC, the reference instant for tests.
var mondayMorning = time.Date(2025, time.March, 3, 9, 0, 0, 0, time.UTC)

// TestNextOccurrence_AllWeekdays verifies the core contract for every weekday:
// the result is strictly after now and matches the requested weekday and time.
func TestNextOccurrence_AllWeekdays(t *testing.T) {
	t.Parallel()

	tod := domain.TimeOfDay{Hour: 6, Minute: 45}

	for day := time.Sunday; day <= time.Saturday; day++ {
		got, err := NextOccurrence(tod, day, mondayMorning)
		require.NoError(t, err)

		require.True(t, got.After(mondayMorning), "occurrence for %s not in the future", day)
		require.Equal(t, day, got.Weekday())
		require.Equal(t, tod.Hour, got.Hour())
		require.Equal(t, tod.Minute, got.Minute())

		// Never more than a full week out.
		require.LessOrEqual(t, got.Sub(mondayMorning), RepeatInterval)
	}
}

// TestNextOccurrence_ExactBoundary verifies that an occurrence exactly at now
// does not count as a future trigger and lands a week later instead.
func TestNextOccurrence_ExactBoundary(t *testing.T) {
	t.Parallel()

	tod := domain.TimeOfDay{Hour: mondayMorning.Hour(), Minute: mondayMorning.Minute()}

	got, err := NextOccurrence(tod, mondayMorning.Weekday(), mondayMorning)
	require.NoError(t, err)
	require.Equal(t, mondayMorning.Add(RepeatInterval), got)
}

// TestNextOccurrence_SameDaySlotPassed verifies that a slot earlier today
// moves to next week while a later weekday stays within this week.
func TestNextOccurrence_SameDaySlotPassed(t *testing.T) {
	t.Parallel()

	// Alarm at Monday 08:00 for {Mon, Wed}, now is Monday 09:00.
	tod := domain.TimeOfDay{Hour: 8, Minute: 0}

	monday, err := NextOccurrence(tod, time.Monday, mondayMorning)
	require.NoError(t, err)
	require.Equal(t, time.Date(2025, time.March, 10, 8, 0, 0, 0, time.UTC), monday)

	wednesday, err := NextOccurrence(tod, time.Wednesday, mondayMorning)
	require.NoError(t, err)
	require.Equal(t, time.Date(2025, time.March, 5, 8, 0, 0, 0, time.UTC), wednesday)
}

// TestNextOccurrence_Deterministic verifies identical inputs yield identical outputs.
func TestNextOccurrence_Deterministic(t *testing.T) {
	t.Parallel()

	tod := domain.TimeOfDay{Hour: 22, Minute: 15}

	first, err := NextOccurrence(tod, time.Friday, mondayMorning)
	require.NoError(t, err)

	second, err := NextOccurrence(tod, time.Friday, mondayMorning)
	require.NoError(t, err)

	require.Equal(t, first, second)
}

// TestNextOccurrence_InvalidTime verifies out-of-range times are rejected.
func TestNextOccurrence_InvalidTime(t *testing.T) {
	t.Parallel()

	_, err := NextOccurrence(domain.TimeOfDay{Hour: 24, Minute: 0}, time.Monday, mondayMorning)
	require.Error(t, err)
}
