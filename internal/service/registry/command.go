package registry

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/oshokin/smart-alarm/internal/config"
	"github.com/oshokin/smart-alarm/internal/delivery"
	"github.com/oshokin/smart-alarm/internal/delivery/timer"
	domain "github.com/oshokin/smart-alarm/internal/domain/alarm"
	"github.com/oshokin/smart-alarm/internal/logger"
	repository "github.com/oshokin/smart-alarm/internal/repository/alarms"
)

// Options controls the smart-alarm commands.
type Options struct {
	// ConfigPath specifies the path to the settings YAML file.
	ConfigPath string
}

// host bundles the wired-up collaborators behind one command invocation.
type host struct {
	// registry is the loaded alarm registry.
	registry *Registry
	// close releases backend resources (the sqlite handle, if used).
	close func() error
}

// newHost loads configuration, wires the storage backend and the in-process
// delivery scheduler, and reconstructs the registry from the persisted list.
func newHost(ctx context.Context, opts *Options) (*host, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	if level, ok := logger.ParseLogLevel(cfg.LogLevel); ok {
		logger.SetLevel(level)
	}

	var (
		repo      repository.Repository
		closeRepo = func() error { return nil }
	)

	switch cfg.StorageBackend {
	case config.BackendSQLite:
		sqliteRepo, err := repository.NewSQLiteRepository(ctx, cfg.DatabaseFile)
		if err != nil {
			return nil, fmt.Errorf("open storage: %w", err)
		}

		repo = sqliteRepo
		closeRepo = sqliteRepo.Close
	default:
		repo = repository.NewFileRepository(cfg.StateFile)
	}

	// The delivery handler is installed exactly once per process, here.
	// Actual audio playback belongs to the host's audio service; this host
	// announces the alarm in the log.
	scheduler, err := timer.New(func(ctx context.Context, payload delivery.Payload) {
		logger.InfoKV(ctx, "Alarm ringing",
			"alarm_id", payload.AlarmID, "sound", payload.Sound, "title", payload.Title)
	})
	if err != nil {
		_ = closeRepo()

		return nil, fmt.Errorf("initialise delivery: %w", err)
	}

	reg := New(repo, scheduler, WithRearmOnLoad(!cfg.DisableRearm))
	if err := reg.Load(ctx); err != nil {
		logger.WarnKV(ctx, "Some alarms could not be re-armed", "error", err)
	}

	return &host{
		registry: reg,
		close:    closeRepo,
	}, nil
}

// Run starts the long-lived alarm host: it re-arms persisted alarms and
// blocks until the context is cancelled, delivering notifications in-process.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "smart-alarm")

	h, err := newHost(ctx, opts)
	if err != nil {
		return err
	}

	defer func() {
		_ = h.close()
	}()

	alarms := h.registry.List(ctx)
	logger.InfoKV(ctx, "Alarm host running", "alarms", len(alarms))

	<-ctx.Done()

	logger.Info(ctx, "Alarm host stopped")

	return nil
}

// AddAlarm creates an alarm from CLI input: a "HH:MM" time, a comma-separated
// weekday list and a sound reference.
func AddAlarm(ctx context.Context, opts *Options, timeOfDay, days, soundRef string) error {
	ctx = logger.WithName(ctx, "smart-alarm")

	tod, err := domain.ParseTimeOfDay(timeOfDay)
	if err != nil {
		return err
	}

	parsedDays, err := parseDayList(days)
	if err != nil {
		return err
	}

	h, err := newHost(ctx, opts)
	if err != nil {
		return err
	}

	defer func() {
		_ = h.close()
	}()

	a, err := h.registry.Create(ctx, tod, parsedDays, domain.SoundRef(soundRef))
	if err != nil {
		return err
	}

	fmt.Printf("Created alarm %s at %s\n", a.ID, a.Time)

	return nil
}

// ListAlarms prints the current alarm list.
func ListAlarms(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "smart-alarm")

	h, err := newHost(ctx, opts)
	if err != nil {
		return err
	}

	defer func() {
		_ = h.close()
	}()

	alarms := h.registry.List(ctx)
	if len(alarms) == 0 {
		fmt.Println("No alarms configured.")

		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tDAYS\tENABLED\tSOUND")

	for _, a := range alarms {
		fmt.Fprintf(w, "%s\t%s\t%s\t%t\t%s\n",
			a.ID, a.Time, formatDayList(a.Days), a.IsEnabled, a.Sound)
	}

	return w.Flush()
}

// ToggleAlarm flips the enabled flag of the alarm with the given id.
func ToggleAlarm(ctx context.Context, opts *Options, id string) error {
	ctx = logger.WithName(ctx, "smart-alarm")

	h, err := newHost(ctx, opts)
	if err != nil {
		return err
	}

	defer func() {
		_ = h.close()
	}()

	a, err := h.registry.Toggle(ctx, domain.ID(id))
	if err != nil {
		return err
	}

	state := "disabled"
	if a.IsEnabled {
		state = "enabled"
	}

	fmt.Printf("Alarm %s is now %s\n", a.ID, state)

	return nil
}

// RemoveAlarm deletes the alarm with the given id.
func RemoveAlarm(ctx context.Context, opts *Options, id string) error {
	ctx = logger.WithName(ctx, "smart-alarm")

	h, err := newHost(ctx, opts)
	if err != nil {
		return err
	}

	defer func() {
		_ = h.close()
	}()

	if err := h.registry.Delete(ctx, domain.ID(id)); err != nil {
		return err
	}

	fmt.Printf("Removed alarm %s\n", id)

	return nil
}

// parseDayList parses comma-separated weekday codes ("mon,wed,fri").
func parseDayList(s string) ([]time.Weekday, error) {
	var days []time.Weekday

	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		day, err := domain.ParseWeekday(part)
		if err != nil {
			return nil, err
		}

		days = append(days, day)
	}

	return days, nil
}

// formatDayList renders a weekday set as comma-separated codes.
func formatDayList(days []time.Weekday) string {
	codes := make([]string, 0, len(days))
	for _, day := range days {
		codes = append(codes, domain.WeekdayCode(day))
	}

	return strings.Join(codes, ",")
}
