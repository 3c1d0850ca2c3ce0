package schedule

import (
	"errors"
	"fmt"
	"time"

	"github.com/teambition/rrule-go"

	domain "github.com/oshokin/smart-alarm/internal/domain/alarm"
)

// RepeatInterval is the fixed spacing between consecutive occurrences of one
// weekday slot. Delivery requests carry it so the collaborator self-repeats
// instead of being re-armed by the registry every week.
const RepeatInterval = 7 * 24 * time.Hour

// rruleDays maps standard weekdays to their rrule counterparts.
//
//nolint:gochecknoglobals // Static lookup table.
var rruleDays = map[time.Weekday]rrule.Weekday{
	time.Sunday:    rrule.SU,
	time.Monday:    rrule.MO,
	time.Tuesday:   rrule.TU,
	time.Wednesday: rrule.WE,
	time.Thursday:  rrule.TH,
	time.Friday:    rrule.FR,
	time.Saturday:  rrule.SA,
}

// errNoOccurrence is returned when the recurrence rule yields nothing,
// which an unbounded weekly rule never does.
var errNoOccurrence = errors.New("recurrence rule produced no occurrence")

// NextOccurrence computes the first instant strictly after now at which the
// given weekday and wall-clock time combination occurs, in now's location.
//
// The result always satisfies:
//   - result > now (an occurrence exactly at now counts as already passed),
//   - result.Weekday() == weekday,
//   - result's wall-clock time equals tod.
//
// The computation depends only on the arguments; identical inputs yield
// identical outputs.
func NextOccurrence(tod domain.TimeOfDay, weekday time.Weekday, now time.Time) (time.Time, error) {
	if err := tod.Validate(); err != nil {
		return time.Time{}, err
	}

	// Anchor the weekly rule one week in the past so the first candidate
	// enumerated is never ahead of now.
	start := time.Date(
		now.Year(), now.Month(), now.Day()-daysPerWeek,
		tod.Hour, tod.Minute, 0, 0,
		now.Location(),
	)

	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:      rrule.WEEKLY,
		Dtstart:   start,
		Byweekday: []rrule.Weekday{rruleDays[weekday]},
	})
	if err != nil {
		return time.Time{}, fmt.Errorf("build recurrence rule: %w", err)
	}

	next := rule.After(now, false)
	if next.IsZero() {
		return time.Time{}, errNoOccurrence
	}

	return next, nil
}

// daysPerWeek is the length of the recurrence period in days.
const daysPerWeek = 7
