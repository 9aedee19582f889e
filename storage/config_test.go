package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sajad-git/election/logging"
)

func TestMain(m *testing.M) {
	logging.Log = logrus.New()
	os.Exit(m.Run())
}

func TestConfigBootstrap(t *testing.T) {
	s := &FileElectionConfigStorage{Path: filepath.Join(t.TempDir(), "config.json")}

	t.Run("Happy path - first load creates the default document", func(t *testing.T) {
		config, err := s.Load()
		require.NoError(t, err)

		assert.Equal(t, DefaultElectionConfig(), config, "First load should return the defaults")
		_, err = os.Stat(s.Path)
		assert.NoError(t, err, "Default document should be persisted")
	})

	t.Run("Happy path - second load does not overwrite an existing document", func(t *testing.T) {
		custom := &ElectionConfig{
			Candidates:    []string{"A", "B"},
			CurrentFile:   "other.xlsx",
			IsActive:      false,
			AdminPassword: "changed",
		}
		require.NoError(t, s.Save(custom))

		loaded, err := s.Load()
		require.NoError(t, err)
		assert.Equal(t, custom, loaded, "Load should return the saved document, not the defaults")
	})
}

func TestConfigCorrupt(t *testing.T) {
	s := &FileElectionConfigStorage{Path: filepath.Join(t.TempDir(), "config.json")}
	require.NoError(t, os.WriteFile(s.Path, []byte("{not json"), 0o644))

	_, err := s.Load()
	assert.ErrorIs(t, err, ErrConfigCorrupt, "A present but unparsable document should be ErrConfigCorrupt")
}

func TestConfigSave(t *testing.T) {
	dir := t.TempDir()
	s := &FileElectionConfigStorage{Path: filepath.Join(dir, "config.json")}

	custom := &ElectionConfig{
		Candidates:    []string{"امیرعلی نیکو مقدم", "طاها یزدانیان"},
		CurrentFile:   "votes_log_semnan.xlsx",
		IsActive:      true,
		AdminPassword: "admin123",
	}
	require.NoError(t, s.Save(custom))

	loaded, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, custom, loaded, "Save then load should round-trip the full document")

	// the temp file used for the scoped write must not linger
	leftovers, err := filepath.Glob(filepath.Join(dir, ".config-*"))
	require.NoError(t, err)
	assert.Empty(t, leftovers, "No temp files should remain after save")
}
