package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sajad-git/election/logging"
)

type ElectionConfigStorage interface {
	Load() (*ElectionConfig, error)
	Save(config *ElectionConfig) error
}

// FileElectionConfigStorage persists the election configuration as one JSON
// document at Path.
type FileElectionConfigStorage struct {
	Path string
}

// DefaultElectionConfig is the document written on first run.
func DefaultElectionConfig() *ElectionConfig {
	return &ElectionConfig{
		Candidates:    []string{"امیرعلی نیکو مقدم", "طاها یزدانیان", "محمدمهدی لطفی"},
		CurrentFile:   "votes_log_semnan.xlsx",
		IsActive:      true,
		AdminPassword: "admin123",
	}
}

// Load reads the configuration document, bootstrapping the default one when
// none exists yet. An existing but unparsable document is ErrConfigCorrupt.
func (s *FileElectionConfigStorage) Load() (*ElectionConfig, error) {
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		config := DefaultElectionConfig()
		if err := s.Save(config); err != nil {
			logging.Log.Errorf("CONFIG: failed to bootstrap default config: %v", err)
			return nil, err
		}
		logging.Log.Infof("CONFIG: created default config at %s", s.Path)
		return config, nil
	}
	if err != nil {
		logging.Log.Errorf("CONFIG: failed to read %s: %v", s.Path, err)
		return nil, err
	}

	var config ElectionConfig
	if err := json.Unmarshal(data, &config); err != nil {
		logging.Log.Errorf("CONFIG: failed to parse %s: %v", s.Path, err)
		return nil, fmt.Errorf("%w: %v", ErrConfigCorrupt, err)
	}
	return &config, nil
}

// Save writes the whole document through a temp file and rename so a
// concurrent reader never observes a half-written config.
func (s *FileElectionConfigStorage) Save(config *ElectionConfig) error {
	data, err := json.Marshal(config)
	if err != nil {
		logging.Log.Errorf("CONFIG: failed to marshal config: %v", err)
		return err
	}

	dir := filepath.Dir(s.Path)
	tmp, err := os.CreateTemp(dir, ".config-*.json")
	if err != nil {
		logging.Log.Errorf("CONFIG: failed to create temp file in %s: %v", dir, err)
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		logging.Log.Errorf("CONFIG: failed to write temp file: %v", err)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), s.Path); err != nil {
		os.Remove(tmp.Name())
		logging.Log.Errorf("CONFIG: failed to replace %s: %v", s.Path, err)
		return err
	}
	return nil
}
