package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/vtree/internal/errors"
)

func TestNew(t *testing.T) {
	cfg := New()

	assert.Equal(t, DefaultMaxUpdateCount, cfg.Scheduler.MaxUpdateCount)
	assert.Equal(t, DefaultAddress, cfg.Server.Address)
	assert.Equal(t, DefaultPath, cfg.Server.Path)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel())
	assert.NoError(t, cfg.Validate())
}

func TestLoadJSON(t *testing.T) {
	tmpDir := t.TempDir()

	_, err := Load(tmpDir)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, "C001"))

	configJSON := `{
  "scheduler": {"maxUpdateCount": 50, "sync": true},
  "errors": {"interactive": true},
  "log": {"level": "debug", "format": "json"},
  "server": {"address": ":9000", "writeTimeout": "2s"}
}
`
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ConfigFileName), []byte(configJSON), 0644))

	cfg, err := Load(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, 50, cfg.Scheduler.MaxUpdateCount)
	assert.True(t, cfg.Scheduler.Sync)
	assert.True(t, cfg.Errors.Interactive)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel())
	assert.Equal(t, ":9000", cfg.Server.Address)
	assert.Equal(t, DefaultPath, cfg.Server.Path)
	assert.Equal(t, 2*time.Second, cfg.WriteTimeout())
	assert.Equal(t, 60*time.Second, cfg.ReadTimeout())
	assert.Equal(t, filepath.Join(tmpDir, ConfigFileName), cfg.Path())
}

func TestLoadYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configYAML := `scheduler:
  maxUpdateCount: 7
metrics:
  enabled: true
  namespace: app
tracing:
  enabled: true
`
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, YAMLConfigFileName), []byte(configYAML), 0644))

	cfg, err := Load(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.Scheduler.MaxUpdateCount)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "app", cfg.Metrics.Namespace)
	assert.True(t, cfg.Tracing.Enabled)
	assert.Equal(t, DefaultTracerName, cfg.Tracing.TracerName)
}

func TestLoadFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name    string
		file    string
		content string
		code    string
	}{
		{"bad json", "a.json", `{"scheduler": `, "C002"},
		{"bad yaml", "b.yaml", "scheduler: [", "C002"},
		{"negative threshold", "c.json", `{"scheduler": {"maxUpdateCount": -1}}`, "C003"},
		{"bad level", "d.json", `{"log": {"level": "loud"}}`, "C003"},
		{"bad format", "e.json", `{"log": {"format": "xml"}}`, "C003"},
		{"bad path", "f.json", `{"server": {"path": "ws"}}`, "C003"},
		{"bad duration", "g.yml", "server:\n  readTimeout: soon\n", "C003"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(tmpDir, tt.file)
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			_, err := LoadFile(path)
			require.Error(t, err)
			assert.True(t, errors.HasCode(err, tt.code), "got %v", err)
		})
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()

	for _, name := range []string{"out.json", "out.yaml"} {
		t.Run(name, func(t *testing.T) {
			cfg := New()
			cfg.Scheduler.MaxUpdateCount = 12
			cfg.Server.H2C = true

			path := filepath.Join(tmpDir, name)
			require.NoError(t, cfg.SaveTo(path))
			assert.Equal(t, path, cfg.Path())

			loaded, err := LoadFile(path)
			require.NoError(t, err)
			assert.Equal(t, 12, loaded.Scheduler.MaxUpdateCount)
			assert.True(t, loaded.Server.H2C)
		})
	}
}
