package delivery

import (
	"context"
	"time"

	domain "github.com/oshokin/smart-alarm/internal/domain/alarm"
)

// Handle is an opaque token identifying one scheduled notification.
// It is deliberately a distinct type from alarm identifiers and sound
// references so the two can never be mixed up at a collaborator boundary.
type Handle string

// Payload is the content delivered when a scheduled notification fires.
type Payload struct {
	// AlarmID identifies the alarm the notification belongs to.
	AlarmID domain.ID
	// Sound references the audio asset to play.
	Sound domain.SoundRef
	// Title is the human-readable notification text.
	Title string
}

// Trigger describes when a notification fires. Either At is set (absolute
// instant) or Delay is used (relative to scheduling time). Repeating
// triggers re-fire every Interval after the first delivery.
type Trigger struct {
	// At is the absolute trigger instant; zero means Delay applies.
	At time.Time
	// Delay is the relative trigger offset, used when At is zero.
	Delay time.Duration
	// Repeats re-arms the notification after each delivery.
	Repeats bool
	// Interval is the repeat period for repeating triggers.
	Interval time.Duration
}

// Scheduler is the notification delivery collaborator. Implementations own
// the actual delivery mechanism; the registry only issues and cancels
// schedule requests and tracks the returned handles.
type Scheduler interface {
	// Schedule arms one notification and returns its cancellation handle.
	Schedule(ctx context.Context, payload Payload, trigger Trigger) (Handle, error)
	// Cancel revokes a single scheduled notification by handle.
	Cancel(ctx context.Context, handle Handle) error
	// CancelAll revokes every outstanding notification. It is a blunt
	// fallback; selective cancellation by handle is the normal path.
	CancelAll(ctx context.Context) error
}
