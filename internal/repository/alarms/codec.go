package alarms

import (
	"encoding/json"
	"fmt"
	"time"

	domain "github.com/oshokin/smart-alarm/internal/domain/alarm"
)

// StorageKey is the single fixed key the serialized alarm list lives under.
const StorageKey = "alarms"

// record is the storage representation of one alarm.
type record struct {
	// ID is the alarm's stable identifier.
	ID string `json:"id"`
	// Time is the wall-clock trigger time as "HH:MM".
	Time string `json:"time"`
	// Days holds three-letter weekday codes (SUN..SAT).
	Days []string `json:"days"`
	// SoundRef is the opaque audio asset reference.
	SoundRef string `json:"soundRef"`
	// Enabled mirrors the alarm's delivery state.
	Enabled bool `json:"enabled"`
}

// document is the full serialized payload stored under StorageKey.
type document struct {
	Alarms []record `json:"alarms"`
}

// encodeAlarms serializes the alarm list into its storage representation.
func encodeAlarms(list []*domain.Alarm) ([]byte, error) {
	doc := document{
		Alarms: make([]record, 0, len(list)),
	}

	for _, a := range list {
		days := make([]string, 0, len(a.Days))
		for _, day := range a.Days {
			days = append(days, domain.WeekdayCode(day))
		}

		doc.Alarms = append(doc.Alarms, record{
			ID:       string(a.ID),
			Time:     a.Time.String(),
			Days:     days,
			SoundRef: string(a.Sound),
			Enabled:  a.IsEnabled,
		})
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode alarms: %w", err)
	}

	return data, nil
}

// decodeAlarms parses the storage representation back into domain alarms.
func decodeAlarms(data []byte) ([]*domain.Alarm, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode alarms: %w", err)
	}

	list := make([]*domain.Alarm, 0, len(doc.Alarms))

	for _, rec := range doc.Alarms {
		tod, err := domain.ParseTimeOfDay(rec.Time)
		if err != nil {
			return nil, fmt.Errorf("alarm %s: %w", rec.ID, err)
		}

		days := make([]time.Weekday, 0, len(rec.Days))

		for _, code := range rec.Days {
			day, err := domain.ParseWeekday(code)
			if err != nil {
				return nil, fmt.Errorf("alarm %s: %w", rec.ID, err)
			}

			days = append(days, day)
		}

		list = append(list, &domain.Alarm{
			ID:        domain.ID(rec.ID),
			Time:      tod,
			Days:      domain.NormalizeDays(days),
			Sound:     domain.SoundRef(rec.SoundRef),
			IsEnabled: rec.Enabled,
		})
	}

	return list, nil
}
