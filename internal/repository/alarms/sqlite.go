package alarms

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	// Register the pure-Go sqlite driver.
	_ "modernc.org/sqlite"

	domain "github.com/oshokin/smart-alarm/internal/domain/alarm"
)

// SQLiteRepository persists the alarm list in a key/value table of a SQLite
// database, keeping the same single-key document layout as FileRepository.
type SQLiteRepository struct {
	// db is the underlying database handle.
	db *sql.DB
}

// NewSQLiteRepository opens (and initializes if needed) a SQLite database at
// the provided path.
func NewSQLiteRepository(ctx context.Context, path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open alarms database: %w", err)
	}

	_, err = db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS settings (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)
	`)
	if err != nil {
		_ = db.Close()

		return nil, fmt.Errorf("initialise alarms database: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

// Load reads the alarm list from the database.
func (r *SQLiteRepository) Load(ctx context.Context) ([]*domain.Alarm, error) {
	var value string

	row := r.db.QueryRowContext(ctx, "SELECT value FROM settings WHERE key = ?", StorageKey)
	if err := row.Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("read alarms row: %w", err)
	}

	list, err := decodeAlarms([]byte(value))
	if err != nil {
		return nil, fmt.Errorf("decode alarms row: %w", err)
	}

	return list, nil
}

// Save writes the alarm list to the database, replacing the previous document.
func (r *SQLiteRepository) Save(ctx context.Context, list []*domain.Alarm) error {
	data, err := encodeAlarms(list)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, StorageKey, string(data))
	if err != nil {
		return fmt.Errorf("write alarms row: %w", err)
	}

	return nil
}

// Close releases the underlying database handle.
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}
