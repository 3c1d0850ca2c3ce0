package alarm

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ID uniquely identifies an alarm for its whole lifetime.
// It joins the registry's list with the delivery handles issued for it.
type ID string

// NewID returns a fresh unique alarm identifier.
func NewID() ID {
	return ID(uuid.NewString())
}

// SoundRef is an opaque reference to an audio asset (a URI produced by the
// recording or file-picking service). The core never interprets it.
type SoundRef string

// TimeOfDay is a wall-clock time without a date or time zone.
// It is interpreted against the local time zone at schedule-computation time.
type TimeOfDay struct {
	// Hour of the day, 0-23.
	Hour int
	// Minute of the hour, 0-59.
	Minute int
}

// timeOfDayLayout is the storage and display format for TimeOfDay.
const timeOfDayLayout = "15:04"

var (
	// errInvalidTimeOfDay is returned when hour or minute is out of range.
	errInvalidTimeOfDay = errors.New("time of day out of range")
	// errInvalidWeekday is returned when a weekday code is not recognized.
	errInvalidWeekday = errors.New("unknown weekday")
)

// ParseTimeOfDay parses a "HH:MM" string into a TimeOfDay.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parsed, err := time.Parse(timeOfDayLayout, s)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("parse time of day %q: %w", s, err)
	}

	return TimeOfDay{
		Hour:   parsed.Hour(),
		Minute: parsed.Minute(),
	}, nil
}

// Validate checks that the time of day denotes a real wall-clock time.
func (t TimeOfDay) Validate() error {
	if t.Hour < 0 || t.Hour > 23 || t.Minute < 0 || t.Minute > 59 {
		return fmt.Errorf("%w: %02d:%02d", errInvalidTimeOfDay, t.Hour, t.Minute)
	}

	return nil
}

// String formats the time of day as "HH:MM".
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// weekdayCodes maps weekdays to their canonical three-letter storage codes.
//
//nolint:gochecknoglobals // Static lookup table.
var weekdayCodes = map[time.Weekday]string{
	time.Sunday:    "SUN",
	time.Monday:    "MON",
	time.Tuesday:   "TUE",
	time.Wednesday: "WED",
	time.Thursday:  "THU",
	time.Friday:    "FRI",
	time.Saturday:  "SAT",
}

// WeekdayCode returns the canonical three-letter code for a weekday.
func WeekdayCode(d time.Weekday) string {
	return weekdayCodes[d]
}

// ParseWeekday converts a three-letter weekday code (any case) to a weekday.
func ParseWeekday(s string) (time.Weekday, error) {
	for day, code := range weekdayCodes {
		if strings.EqualFold(s, code) {
			return day, nil
		}
	}

	return time.Sunday, fmt.Errorf("%w: %q", errInvalidWeekday, s)
}

// NormalizeDays sorts the weekday set and removes duplicates.
// Insertion order and repetition carry no meaning for an alarm.
func NormalizeDays(days []time.Weekday) []time.Weekday {
	normalized := slices.Clone(days)
	slices.Sort(normalized)

	return slices.Compact(normalized)
}

// Alarm is a user-defined recurring rule: a wall-clock time plus a set of
// weekdays, a sound to play and an enabled flag.
type Alarm struct {
	// ID is the stable unique identifier assigned at creation.
	ID ID
	// Time is the wall-clock trigger time, interpreted in local time.
	Time TimeOfDay
	// Days is the normalized set of weekdays the alarm fires on.
	Days []time.Weekday
	// Sound references the audio asset to play on delivery.
	Sound SoundRef
	// IsEnabled suspends delivery when false without deleting the definition.
	IsEnabled bool
}

// Clone returns a deep copy of the alarm to avoid leaking internal references.
func (a *Alarm) Clone() *Alarm {
	if a == nil {
		return nil
	}

	cloned := *a
	cloned.Days = slices.Clone(a.Days)

	return &cloned
}
