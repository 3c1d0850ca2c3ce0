// Package alarm contains core domain types for the alarm scheduling logic.
//
// It defines the Alarm entity (time of day, weekday set, sound reference,
// enabled flag) along with the typed identifiers that cross collaborator
// boundaries, and Clone helpers to avoid leaking internal references.
package alarm
