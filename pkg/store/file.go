package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// FileStore is a file-based library store for CLI usage.
// Libraries are stored as JSON files in a config directory, one file
// per library, named by ID.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// NewFileStore creates a new file-based library store.
// If baseDir is empty, defaults to ~/.config/photogrid/libraries/
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		baseDir = filepath.Join(home, ".config", "photogrid", "libraries")
	}
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("create library dir: %w", err)
	}
	return &FileStore{baseDir: baseDir}, nil
}

func (s *FileStore) libraryPath(id uuid.UUID) string {
	return filepath.Join(s.baseDir, id.String()+".json")
}

func (s *FileStore) Get(ctx context.Context, id uuid.UUID) (*Library, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.readLibrary(s.libraryPath(id))
}

func (s *FileStore) GetByName(ctx context.Context, name string) (*Library, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, fmt.Errorf("read library dir: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		lib, err := s.readLibrary(filepath.Join(s.baseDir, entry.Name()))
		if err != nil {
			continue
		}
		if lib.Name == name {
			return lib, nil
		}
	}
	return nil, ErrNotFound
}

func (s *FileStore) Set(ctx context.Context, lib *Library) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	lib.UpdatedAt = time.Now().UTC()
	data, err := json.MarshalIndent(lib, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal library: %w", err)
	}

	path := s.libraryPath(lib.ID)
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write library file: %w", err)
	}
	return nil
}

func (s *FileStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.libraryPath(id)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove library file: %w", err)
	}
	return nil
}

func (s *FileStore) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, fmt.Errorf("read library dir: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		lib, err := s.readLibrary(filepath.Join(s.baseDir, entry.Name()))
		if err != nil {
			continue
		}
		names = append(names, lib.Name)
	}
	return names, nil
}

func (s *FileStore) Close(ctx context.Context) error { return nil }

// Path returns the base directory for library files.
func (s *FileStore) Path() string {
	return s.baseDir
}

func (s *FileStore) readLibrary(path string) (*Library, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read library file: %w", err)
	}

	var lib Library
	if err := json.Unmarshal(data, &lib); err != nil {
		return nil, fmt.Errorf("parse library: %w", err)
	}
	return &lib, nil
}

var _ Store = (*FileStore)(nil)
