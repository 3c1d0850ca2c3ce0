package registry

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/oshokin/smart-alarm/internal/delivery"
	domain "github.com/oshokin/smart-alarm/internal/domain/alarm"
	"github.com/oshokin/smart-alarm/internal/logger"
	repo "github.com/oshokin/smart-alarm/internal/repository/alarms"
	"github.com/oshokin/smart-alarm/internal/schedule"
)

// Registry is the single authority over the alarm list. It mediates every
// mutation, drives persistence, and keeps the delivery collaborator's
// schedules consistent with the list: a disabled alarm holds no handles, an
// enabled alarm holds exactly one handle per selected weekday.
type Registry struct {
	// repo persists the alarm list.
	repo repo.Repository
	// scheduler is the notification delivery collaborator.
	scheduler delivery.Scheduler
	// now supplies the current instant; injectable for tests.
	now func() time.Time
	// rearmOnLoad re-issues schedules for enabled alarms during Load.
	rearmOnLoad bool

	// mu guards the read-modify-persist sequence of every operation.
	mu sync.Mutex
	// alarms is the current in-memory list.
	alarms []*domain.Alarm
	// handles tracks the delivery handles issued per alarm.
	handles map[domain.ID][]delivery.Handle
}

// Option configures registry behaviour.
type Option func(*Registry)

// WithClock overrides the time source, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(r *Registry) {
		if now != nil {
			r.now = now
		}
	}
}

// WithRearmOnLoad controls whether Load re-issues delivery schedules for
// enabled alarms. Defaults to true; hosts whose delivery service persists
// schedules across restarts can switch it off.
func WithRearmOnLoad(rearm bool) Option {
	return func(r *Registry) {
		r.rearmOnLoad = rearm
	}
}

// New creates a registry over the provided repository and delivery collaborator.
func New(repository repo.Repository, scheduler delivery.Scheduler, opts ...Option) *Registry {
	r := &Registry{
		repo:        repository,
		scheduler:   scheduler,
		now:         time.Now,
		rearmOnLoad: true,
		handles:     make(map[domain.ID][]delivery.Handle),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Load reads the persisted alarm list and reconstructs the in-memory set.
// It fails soft: a missing or unreadable list yields an empty registry so
// startup is never blocked. Unless configured otherwise, delivery schedules
// for enabled alarms are re-issued; per-alarm re-arm failures are joined
// into the returned error while the rest of the list stays usable.
func (r *Registry) Load(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	list, err := r.repo.Load(ctx)

	switch {
	case err == nil:
	case errors.Is(err, repo.ErrNotFound):
		list = nil
	default:
		logger.WarnKV(ctx, "Starting with an empty alarm list", "error", err)

		list = nil
	}

	r.alarms = list
	r.handles = make(map[domain.ID][]delivery.Handle)

	if !r.rearmOnLoad {
		logger.InfoKV(ctx, "Alarm list loaded", "alarms", len(r.alarms), "rearm", false)

		return nil
	}

	var rearmErrs []error

	for _, a := range r.alarms {
		if !a.IsEnabled {
			continue
		}

		handles, err := r.scheduleAll(ctx, a)
		if err != nil {
			logger.ErrorKV(ctx, "Failed to re-arm alarm", "alarm_id", a.ID, "error", err)

			rearmErrs = append(rearmErrs, fmt.Errorf("re-arm alarm %s: %w", a.ID, err))

			continue
		}

		r.handles[a.ID] = handles
	}

	logger.InfoKV(ctx, "Alarm list loaded", "alarms", len(r.alarms), "rearm", true)

	return errors.Join(rearmErrs...)
}

// Create validates the definition, issues one delivery schedule per selected
// weekday, appends the alarm to the list and persists it. On a delivery
// failure the already-issued handles are rolled back and no alarm is added.
// On a persistence failure the alarm stays in memory and the error is
// surfaced so the caller can retry.
func (r *Registry) Create(
	ctx context.Context,
	tod domain.TimeOfDay,
	days []time.Weekday,
	sound domain.SoundRef,
) (*domain.Alarm, error) {
	if sound == "" {
		return nil, ErrSoundRequired
	}

	normalized := domain.NormalizeDays(days)
	if len(normalized) == 0 {
		return nil, ErrNoDaysSelected
	}

	if err := tod.Validate(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	a := &domain.Alarm{
		ID:        domain.NewID(),
		Time:      tod,
		Days:      normalized,
		Sound:     sound,
		IsEnabled: true,
	}

	handles, err := r.scheduleAll(ctx, a)
	if err != nil {
		return nil, err
	}

	r.alarms = append(r.alarms, a)
	r.handles[a.ID] = handles

	logger.InfoKV(ctx, "Alarm created",
		"alarm_id", a.ID, "time", a.Time.String(), "days", len(a.Days))

	if err := r.persist(ctx); err != nil {
		return a.Clone(), err
	}

	return a.Clone(), nil
}

// Toggle flips the enabled flag of the alarm with the given id.
//
// Enabling mirrors Create's scheduling step, including rollback: on a
// delivery failure the alarm stays disabled. Disabling cancels only that
// alarm's handles; a cancellation failure is surfaced but the local state
// change still proceeds, since a stray notification is less harmful than an
// unusable registry.
func (r *Registry) Toggle(ctx context.Context, id domain.ID) (*domain.Alarm, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a := r.find(id)
	if a == nil {
		return nil, fmt.Errorf("%w: %s", ErrAlarmNotFound, id)
	}

	if a.IsEnabled {
		cancelErr := r.cancelAll(ctx, id)

		a.IsEnabled = false

		logger.InfoKV(ctx, "Alarm disabled", "alarm_id", a.ID)

		if err := r.persist(ctx); err != nil {
			return a.Clone(), errors.Join(cancelErr, err)
		}

		return a.Clone(), cancelErr
	}

	handles, err := r.scheduleAll(ctx, a)
	if err != nil {
		return nil, err
	}

	a.IsEnabled = true
	r.handles[a.ID] = handles

	logger.InfoKV(ctx, "Alarm enabled", "alarm_id", a.ID)

	if err := r.persist(ctx); err != nil {
		return a.Clone(), err
	}

	return a.Clone(), nil
}

// Delete cancels the alarm's outstanding schedules, removes it from the list
// and persists. Cancellation failures are surfaced but never block removal.
func (r *Registry) Delete(ctx context.Context, id domain.ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.find(id) == nil {
		return fmt.Errorf("%w: %s", ErrAlarmNotFound, id)
	}

	cancelErr := r.cancelAll(ctx, id)

	kept := r.alarms[:0]

	for _, a := range r.alarms {
		if a.ID != id {
			kept = append(kept, a)
		}
	}

	r.alarms = kept

	logger.InfoKV(ctx, "Alarm deleted", "alarm_id", id)

	if err := r.persist(ctx); err != nil {
		return errors.Join(cancelErr, err)
	}

	return cancelErr
}

// List returns a snapshot of the current alarm list. Mutating the returned
// alarms does not affect registry state.
func (r *Registry) List(ctx context.Context) []*domain.Alarm {
	r.mu.Lock()
	defer r.mu.Unlock()

	logger.DebugKV(ctx, "Alarm list requested", "alarms", len(r.alarms))

	snapshot := make([]*domain.Alarm, 0, len(r.alarms))
	for _, a := range r.alarms {
		snapshot = append(snapshot, a.Clone())
	}

	return snapshot
}

// HandleCount reports the number of outstanding delivery handles for an alarm.
func (r *Registry) HandleCount(id domain.ID) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.handles[id])
}

// find returns the alarm with the given id, or nil. Callers hold r.mu.
func (r *Registry) find(id domain.ID) *domain.Alarm {
	for _, a := range r.alarms {
		if a.ID == id {
			return a
		}
	}

	return nil
}

// scheduleAll issues one delivery request per selected weekday and returns
// the handles. On any failure the already-issued handles are cancelled so no
// partial schedule set survives. Callers hold r.mu.
func (r *Registry) scheduleAll(ctx context.Context, a *domain.Alarm) ([]delivery.Handle, error) {
	now := r.now()
	payload := delivery.Payload{
		AlarmID: a.ID,
		Sound:   a.Sound,
		Title:   "Alarm " + a.Time.String(),
	}

	handles := make([]delivery.Handle, 0, len(a.Days))

	for _, day := range a.Days {
		next, err := schedule.NextOccurrence(a.Time, day, now)
		if err != nil {
			r.rollback(ctx, handles)

			return nil, &DeliveryError{Op: "schedule", Err: err}
		}

		handle, err := r.scheduler.Schedule(ctx, payload, delivery.Trigger{
			Delay:    next.Sub(now),
			Repeats:  true,
			Interval: schedule.RepeatInterval,
		})
		if err != nil {
			r.rollback(ctx, handles)

			return nil, &DeliveryError{Op: "schedule", Err: err}
		}

		handles = append(handles, handle)
	}

	return handles, nil
}

// rollback cancels partially issued handles after a failed scheduling step.
func (r *Registry) rollback(ctx context.Context, handles []delivery.Handle) {
	for _, handle := range handles {
		if err := r.scheduler.Cancel(ctx, handle); err != nil {
			logger.WarnKV(ctx, "Failed to roll back notification", "handle", handle, "error", err)
		}
	}
}

// cancelAll cancels every outstanding handle of one alarm and forgets them.
// The handles are dropped even when cancellation fails, since retrying a
// dead handle cannot succeed. Callers hold r.mu.
func (r *Registry) cancelAll(ctx context.Context, id domain.ID) error {
	var cancelErrs []error

	for _, handle := range r.handles[id] {
		if err := r.scheduler.Cancel(ctx, handle); err != nil {
			cancelErrs = append(cancelErrs, err)
		}
	}

	delete(r.handles, id)

	if err := errors.Join(cancelErrs...); err != nil {
		return &DeliveryError{Op: "cancel", Err: err}
	}

	return nil
}

// persist writes the full list to the repository. The in-memory mutation is
// kept on failure; the divergence is surfaced, not hidden. Callers hold r.mu.
func (r *Registry) persist(ctx context.Context) error {
	if err := r.repo.Save(ctx, r.alarms); err != nil {
		logger.ErrorKV(ctx, "Failed to persist alarm list", "error", err)

		return &PersistenceError{Err: err}
	}

	return nil
}
