package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Collection keys. They match the keys the browser client used so a data
// directory exported from it reloads unchanged.
const (
	KeyTeams         = "webgestor_teams"
	KeyProjects      = "webgestor_projects"
	KeyTasks         = "webgestor_tasks"
	KeyComments      = "webgestor_comments"
	KeyNotifications = "webgestor_notifications"
	KeyActivity      = "webgestor_activity"
	KeyTeamMembers   = "webgestor_team_members"
)

// Storage is the key-value persistence contract of the domain layer: one key
// per entity collection, each holding a JSON-serialized array. Load returns
// (nil, nil) for an absent key. Save must be all-or-nothing.
type Storage interface {
	Load(key string) ([]byte, error)
	Save(key string, data []byte) error
}

// FileStorage keeps one JSON file per collection key under a data directory.
type FileStorage struct {
	dir string
}

func NewFileStorage(dir string) (*FileStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &FileStorage{dir: dir}, nil
}

func (fs *FileStorage) path(key string) string {
	return filepath.Join(fs.dir, key+".json")
}

func (fs *FileStorage) Load(key string) ([]byte, error) {
	data, err := os.ReadFile(fs.path(key))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read collection %s: %w", key, err)
	}
	return data, nil
}

// Save writes to a temp file and renames it into place so a crashed write
// never leaves a truncated collection behind.
func (fs *FileStorage) Save(key string, data []byte) error {
	tmp, err := os.CreateTemp(fs.dir, key+"-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", key, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write collection %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp file for %s: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), fs.path(key)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace collection %s: %w", key, err)
	}
	return nil
}

// MemoryStorage holds collections in a map. Used by tests and throwaway
// sessions.
type MemoryStorage struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{data: make(map[string][]byte)}
}

func (ms *MemoryStorage) Load(key string) ([]byte, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	data, ok := ms.data[key]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (ms *MemoryStorage) Save(key string, data []byte) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	stored := make([]byte, len(data))
	copy(stored, data)
	ms.data[key] = stored
	return nil
}
