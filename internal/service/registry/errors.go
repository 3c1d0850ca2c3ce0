package registry

import "errors"

var (
	// ErrSoundRequired rejects alarm creation without a sound reference.
	ErrSoundRequired = errors.New("sound reference must be provided")
	// ErrNoDaysSelected rejects alarm creation with an empty weekday set.
	// An alarm that can never fire is not worth persisting.
	ErrNoDaysSelected = errors.New("at least one weekday must be selected")
	// ErrAlarmNotFound is returned when the requested alarm id is not in the list.
	ErrAlarmNotFound = errors.New("alarm not found")
)

// PersistenceError reports a failed store write after a mutation. The
// in-memory change is kept; the caller decides whether to retry or warn the
// user about the divergence window.
type PersistenceError struct {
	// Err is the underlying store failure.
	Err error
}

// Error implements the error interface.
func (e *PersistenceError) Error() string {
	return "persist alarms: " + e.Err.Error()
}

// Unwrap exposes the underlying store failure.
func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// DeliveryError reports a failed notification schedule or cancel call.
type DeliveryError struct {
	// Op names the failed delivery operation ("schedule" or "cancel").
	Op string
	// Err is the underlying collaborator failure.
	Err error
}

// Error implements the error interface.
func (e *DeliveryError) Error() string {
	return e.Op + " notification: " + e.Err.Error()
}

// Unwrap exposes the underlying collaborator failure.
func (e *DeliveryError) Unwrap() error {
	return e.Err
}
