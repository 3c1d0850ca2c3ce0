// Package registry implements the alarm registry: the single authority over
// the alarm list. It validates mutations, computes delivery schedules via
// the schedule package, tracks the handles issued by the delivery
// collaborator, and persists the list through the alarms repository.
//
// The command entry points used by the CLI binary live in command.go.
package registry
