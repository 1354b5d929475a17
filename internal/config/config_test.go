package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arnodel/jsontable"
	"github.com/arnodel/jsontable/cell"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "jtab.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, jsontable.DefaultNotifyInterval, cfg.NotifyInterval)
	require.Equal(t, "auto", cfg.Color)
	require.Equal(t, cell.DefaultInference, cfg.Inference())
	require.Empty(t, cfg.Database.Driver)
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
notify_interval: 500
color: never
parse:
  dates: false
  uuids: true
  durations: true
database:
  driver: sqlite
  dsn: /tmp/data.db
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, &Config{
		NotifyInterval: 500,
		Color:          "never",
		Parse:          ParseConfig{UUIDs: true, Durations: true},
		Database:       DatabaseConfig{Driver: "sqlite", DSN: "/tmp/data.db"},
	}, cfg)
	require.Equal(t, cell.Inference{UUIDs: true, Durations: true}, cfg.Inference())
	require.Len(t, cfg.ReaderOptions(), 2)
}

func TestLoadKeepsDefaultsForMissingKeys(t *testing.T) {
	cfg, err := Load(writeConfig(t, "color: always\n"))
	require.NoError(t, err)
	require.Equal(t, "always", cfg.Color)
	require.Equal(t, jsontable.DefaultNotifyInterval, cfg.NotifyInterval)
	require.True(t, cfg.Parse.Dates)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("JTAB_DRIVER", "postgres")
	t.Setenv("JTAB_DSN", "postgres://localhost/db")
	cfg, err := Load(writeConfig(t, "database:\n  driver: sqlite\n  dsn: x.db\n"))
	require.NoError(t, err)
	require.Equal(t, DatabaseConfig{Driver: "postgres", DSN: "postgres://localhost/db"}, cfg.Database)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad yaml", "color: [always"},
		{"bad color", "color: sometimes"},
		{"bad driver", "database:\n  driver: oracle"},
		{"bad type", "notify_interval: lots"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
