package alarms

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/oshokin/smart-alarm/internal/config"
	domain "github.com/oshokin/smart-alarm/internal/domain/alarm"
)

// Repository defines persistence operations for the alarm list.
type Repository interface {
	Load(ctx context.Context) ([]*domain.Alarm, error)
	Save(ctx context.Context, list []*domain.Alarm) error
}

// ErrNotFound is returned when no alarm list has been persisted yet.
var ErrNotFound = errors.New("alarm list not found")

// FileRepository persists the alarm list as a JSON document on disk.
type FileRepository struct {
	// path is the filesystem location of the JSON document.
	path string
	// mu protects concurrent access to the file.
	mu sync.Mutex
}

// NewFileRepository creates a repository that reads/writes JSON at the provided path.
func NewFileRepository(path string) *FileRepository {
	return &FileRepository{
		path: filepath.Clean(path),
	}
}

// Load reads the alarm list from disk.
func (r *FileRepository) Load(_ context.Context) ([]*domain.Alarm, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	contents, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("read alarms file: %w", err)
	}

	list, err := decodeAlarms(contents)
	if err != nil {
		return nil, fmt.Errorf("decode alarms file: %w", err)
	}

	return list, nil
}

// Save writes the alarm list to disk, replacing the previous document.
func (r *FileRepository) Save(_ context.Context, list []*domain.Alarm) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := encodeAlarms(list)
	if err != nil {
		return err
	}

	if err = os.WriteFile(r.path, data, config.DefaultFilePermissions); err != nil {
		return fmt.Errorf("write alarms file: %w", err)
	}

	return nil
}
