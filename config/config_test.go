package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Default()
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "DATA", cfg.DataDir)
	assert.Equal(t, 100, cfg.Rows)
	assert.Equal(t, 26, cfg.Cols)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverlaysFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("addr: \":9090\"\nmax_rows: 5000\nlog_level: debug\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, 5000, cfg.MaxRows)
	assert.Equal(t, "debug", cfg.LogLevel)
	// untouched fields keep their defaults
	assert.Equal(t, "DATA", cfg.DataDir)
	assert.Equal(t, 100, cfg.HistoryLimit)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("addr: [unterminated"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}
