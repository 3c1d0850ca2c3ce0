package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/oshokin/smart-alarm/internal/logger"
)

// Config holds host settings shared by the smart-alarm commands.
type Config struct {
	// StorageBackend selects where the alarm list is persisted: "file" or "sqlite".
	StorageBackend string `yaml:"storage_backend"`
	// StateFile is the path to the JSON document used by the file backend.
	StateFile string `yaml:"state_file"`
	// DatabaseFile is the path to the SQLite database used by the sqlite backend.
	DatabaseFile string `yaml:"database_file"`
	// LogLevel is the minimum level for log output (debug, info, warn, error, fatal).
	LogLevel string `yaml:"log_level"`
	// DisableRearm skips re-issuing delivery schedules for enabled alarms on
	// startup, for hosts whose delivery service persists schedules itself.
	DisableRearm bool `yaml:"disable_rearm"`
}

const (
	// DefaultConfigFilename is the default filename for host settings.
	DefaultConfigFilename = "smart-alarm-settings.yaml"

	// DefaultStateFilename is the default filename for the alarm list JSON.
	DefaultStateFilename = "smart-alarm-alarms.json"

	// DefaultDatabaseFilename is the default filename for the sqlite backend.
	DefaultDatabaseFilename = "smart-alarm-alarms.db"

	// DefaultFilePermissions is the default file permission for written files.
	DefaultFilePermissions = 0o600

	// BackendFile selects the JSON file storage backend.
	BackendFile = "file"

	// BackendSQLite selects the SQLite storage backend.
	BackendSQLite = "sqlite"
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errUnknownBackend is returned for an unsupported storage backend value.
	errUnknownBackend = errors.New("unknown storage backend")
	// errUnknownLogLevel is returned for an unparsable log level value.
	errUnknownLogLevel = errors.New("unknown log level")
)

// Default returns the configuration used when no settings file exists.
func Default() *Config {
	cfg := new(Config)
	// Validate never fails on an empty config; it only fills defaults.
	_ = Validate(cfg)

	return cfg
}

// Load reads configuration from the provided path and validates essential
// fields. A missing file yields the defaults rather than an error, so the
// CLI works without prior setup.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}

		return nil, fmt.Errorf("read settings: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the configuration to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	// Restrict permissions.
	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate checks the provided settings for supported values and fills defaults.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if cfg.StorageBackend == "" {
		cfg.StorageBackend = BackendFile
	}

	if cfg.StorageBackend != BackendFile && cfg.StorageBackend != BackendSQLite {
		return fmt.Errorf("%w: %q", errUnknownBackend, cfg.StorageBackend)
	}

	if cfg.StateFile == "" {
		cfg.StateFile = DefaultStateFilename
	}

	if cfg.DatabaseFile == "" {
		cfg.DatabaseFile = DefaultDatabaseFilename
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	if _, ok := logger.ParseLogLevel(cfg.LogLevel); !ok {
		return fmt.Errorf("%w: %q", errUnknownLogLevel, cfg.LogLevel)
	}

	return nil
}
