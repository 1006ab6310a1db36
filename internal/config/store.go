package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Store persists the configuration record to a file at a fixed path.
type Store struct {
	path string
}

// NewStore creates a Store backed by the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads the persisted configuration. It returns (nil, nil) when
// no valid configuration is present: the file is missing, too short,
// or its validity marker does not match. Corrupt storage is therefore
// indistinguishable from "never configured", which routes the caller
// to provisioning.
func (s *Store) Load() (*Configuration, error) {
	buf, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	if len(buf) < RecordSize || buf[0] != markerValue {
		return nil, nil
	}
	return decode(buf), nil
}

// Save writes the configuration record, marker first. The record is
// written to a temporary file and renamed into place, which is as
// atomic with respect to power loss as the filesystem allows.
func (s *Store) Save(c *Configuration) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, encode(c), 0o600); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("rename %s: %w", tmp, err)
	}
	return nil
}
