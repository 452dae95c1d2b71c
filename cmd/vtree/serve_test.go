package main

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/vtree/internal/config"
)

func get(t *testing.T, h http.Handler, path string) (int, string) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	body, err := io.ReadAll(rec.Result().Body)
	require.NoError(t, err)
	return rec.Code, string(body)
}

func TestRouter(t *testing.T) {
	cfg := config.New()
	cfg.Metrics.Enabled = true
	h := newRouter(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))

	code, _ := get(t, h, "/healthz")
	assert.Equal(t, http.StatusNoContent, code)

	code, body := get(t, h, "/")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, `data-ws="/ws"`)
	assert.Contains(t, body, `class="count">0</span>`)
	assert.Contains(t, body, `<div data-vid="2" class="app">`)

	code, _ = get(t, h, "/metrics")
	assert.Equal(t, http.StatusOK, code)

	// Plain GET without upgrade headers is rejected by the upgrader.
	code, _ = get(t, h, "/ws")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestRouterWithoutMetrics(t *testing.T) {
	h := newRouter(config.New(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	code, _ := get(t, h, "/metrics")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, config.YAMLConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte("server:\n  address: \":9000\"\nlog:\n  format: json\n"), 0o644))

	for _, p := range []string{dir, path} {
		cfg, err := loadConfig(p)
		require.NoError(t, err, p)
		assert.Equal(t, ":9000", cfg.Server.Address)
		assert.Equal(t, "json", cfg.Log.Format)
		assert.Equal(t, config.DefaultPath, cfg.Server.Path)
	}

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("log:\n  format: xml\n"), 0o644))
	_, err := loadConfig(bad)
	assert.Error(t, err)
}
