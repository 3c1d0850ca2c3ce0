package timer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oshokin/smart-alarm/internal/delivery"
	"github.com/oshokin/smart-alarm/internal/logger"
)

// Handler consumes a notification when its trigger fires.
// The host installs exactly one handler at construction time.
type Handler func(ctx context.Context, payload delivery.Payload)

// Scheduler is an in-process delivery backend built on time.AfterFunc.
// Schedules live only as long as the process; a host that needs them to
// survive restarts must reconcile from persisted alarms on startup.
type Scheduler struct {
	// handler receives every fired notification.
	handler Handler
	// timers tracks the armed timer for each outstanding handle.
	timers map[delivery.Handle]*time.Timer
	// mu protects the timers map.
	mu sync.Mutex
}

// ErrUnknownHandle is returned when cancelling a handle that is not armed.
var ErrUnknownHandle = errors.New("unknown delivery handle")

// errHandlerRequired is returned when constructing a scheduler without a handler.
var errHandlerRequired = errors.New("delivery handler must be provided")

// New creates an in-process scheduler delivering through the given handler.
func New(handler Handler) (*Scheduler, error) {
	if handler == nil {
		return nil, errHandlerRequired
	}

	return &Scheduler{
		handler: handler,
		timers:  make(map[delivery.Handle]*time.Timer),
	}, nil
}

// Schedule arms one notification and returns its cancellation handle.
// Absolute triggers are converted to a delay at scheduling time; triggers in
// the past fire immediately.
func (s *Scheduler) Schedule(
	ctx context.Context,
	payload delivery.Payload,
	trigger delivery.Trigger,
) (delivery.Handle, error) {
	delay := trigger.Delay
	if !trigger.At.IsZero() {
		delay = time.Until(trigger.At)
	}

	if delay < 0 {
		delay = 0
	}

	if trigger.Repeats && trigger.Interval <= 0 {
		return "", fmt.Errorf("repeating trigger requires a positive interval, got %s", trigger.Interval)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	handle := delivery.Handle(uuid.NewString())
	s.timers[handle] = time.AfterFunc(delay, func() {
		s.fire(handle, payload, trigger)
	})

	logger.DebugKV(ctx, "Notification scheduled",
		"handle", handle, "alarm_id", payload.AlarmID, "delay", delay, "repeats", trigger.Repeats)

	return handle, nil
}

// Cancel revokes a single scheduled notification by handle.
func (s *Scheduler) Cancel(ctx context.Context, handle delivery.Handle) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	timer, ok := s.timers[handle]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownHandle, handle)
	}

	timer.Stop()
	delete(s.timers, handle)

	logger.DebugKV(ctx, "Notification cancelled", "handle", handle)

	return nil
}

// CancelAll revokes every outstanding notification.
func (s *Scheduler) CancelAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for handle, timer := range s.timers {
		timer.Stop()
		delete(s.timers, handle)
	}

	logger.Debug(ctx, "All notifications cancelled")

	return nil
}

// Outstanding reports the number of currently armed notifications.
func (s *Scheduler) Outstanding() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.timers)
}

// fire delivers the payload and re-arms repeating triggers under the same handle.
func (s *Scheduler) fire(handle delivery.Handle, payload delivery.Payload, trigger delivery.Trigger) {
	s.mu.Lock()

	if _, ok := s.timers[handle]; !ok {
		// Cancelled between expiry and delivery.
		s.mu.Unlock()

		return
	}

	if trigger.Repeats {
		s.timers[handle] = time.AfterFunc(trigger.Interval, func() {
			s.fire(handle, payload, trigger)
		})
	} else {
		delete(s.timers, handle)
	}

	s.mu.Unlock()

	s.handler(context.Background(), payload)
}
