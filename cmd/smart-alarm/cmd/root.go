package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/smart-alarm/internal/config"
	"github.com/oshokin/smart-alarm/internal/service/registry"
	"github.com/oshokin/smart-alarm/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string

	// rootCmd represents the base command for managing recurring alarms.
	rootCmd = &cobra.Command{
		Use:   "smart-alarm",
		Short: "Manage recurring alarms with custom sounds.",
		Long: `Manage recurring alarms: a wall-clock time, a set of weekdays and a sound.

Alarms are persisted to a local store (JSON file or SQLite, see the settings
file) and delivered by an in-process scheduler while "smart-alarm run" is
active. On startup the host reconciles persisted alarms with live delivery
schedules by re-arming every enabled alarm.`,
	}

	// runCmd starts the long-lived alarm host.
	runCmd = &cobra.Command{
		Use:   "run",
		Short: "Run the alarm host until interrupted.",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			return registry.Run(ctx, options())
		},
	}

	// addCmd creates a new alarm.
	addCmd = &cobra.Command{
		Use:   "add",
		Short: "Create an alarm.",
		Long: `Create an enabled alarm from a wall-clock time, a comma-separated weekday
list (three-letter codes: sun,mon,tue,wed,thu,fri,sat) and a sound reference.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return registry.AddAlarm(context.Background(), options(), alarmTime, alarmDays, alarmSound)
		},
	}

	// listCmd prints the alarm list.
	listCmd = &cobra.Command{
		Use:   "list",
		Short: "List configured alarms.",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return registry.ListAlarms(context.Background(), options())
		},
	}

	// toggleCmd flips an alarm's enabled flag.
	toggleCmd = &cobra.Command{
		Use:   "toggle [alarm-id]",
		Short: "Enable or disable an alarm.",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return registry.ToggleAlarm(context.Background(), options(), args[0])
		},
	}

	// removeCmd deletes an alarm.
	removeCmd = &cobra.Command{
		Use:   "remove [alarm-id]",
		Short: "Delete an alarm.",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return registry.RemoveAlarm(context.Background(), options(), args[0])
		},
	}

	// add command flags.
	alarmTime  string
	alarmDays  string
	alarmSound string
)

// options assembles command options from global flags.
func options() *registry.Options {
	return &registry.Options{
		ConfigPath: configPath,
	}
}

// Execute runs the smart-alarm CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.PersistentFlags().
		StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")

	addCmd.Flags().StringVarP(&alarmTime, "time", "t", "", "wall-clock trigger time, HH:MM")
	addCmd.Flags().StringVarP(&alarmDays, "days", "d", "", "comma-separated weekday codes, e.g. mon,wed")
	addCmd.Flags().StringVarP(&alarmSound, "sound", "s", "", "sound asset reference (URI)")

	_ = addCmd.MarkFlagRequired("time")
	_ = addCmd.MarkFlagRequired("days")
	_ = addCmd.MarkFlagRequired("sound")

	rootCmd.AddCommand(runCmd, addCmd, listCmd, toggleCmd, removeCmd)
}
