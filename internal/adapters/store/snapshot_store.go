// Package store persists the configuration snapshot and records changes in
// the surrounding git repository.
package store

import (
	"fmt"
	"os"
	"path/filepath"

	"ratewatch/internal/config"

	"gopkg.in/yaml.v3"
)

// FileStore writes the snapshot back to the config file it was loaded from.
// The write goes through a temp file and rename so a crash mid-write never
// leaves a truncated snapshot behind.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Save(snap *config.Snapshot) error {
	data, err := yaml.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	tmp := s.path + ".tmp"
	if err = os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err = os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to replace snapshot: %w", err)
	}
	return nil
}

// Path returns the absolute snapshot location.
func (s *FileStore) Path() (string, error) {
	return filepath.Abs(s.path)
}
