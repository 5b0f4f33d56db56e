package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_SaveAndLoad(t *testing.T) {
	tmpHome := t.TempDir()
	loader := &Loader{homeDir: tmpHome}

	cfg := &FileConfig{
		CC:          "clang",
		IncludeDirs: []string{"/usr/include", "/opt/include"},
		Measure:     []string{"time", "ru_minflt"},
		LogLevel:    "debug",
	}

	err := loader.Save(cfg)
	require.NoError(t, err)
	assert.FileExists(t, loader.ConfigPath())

	loaded, err := loader.Load()
	require.NoError(t, err)
	assert.Equal(t, cfg.CC, loaded.CC)
	assert.Equal(t, cfg.IncludeDirs, loaded.IncludeDirs)
	assert.Equal(t, cfg.Measure, loaded.Measure)
	assert.Equal(t, cfg.LogLevel, loaded.LogLevel)
}

func TestLoader_Load_NotExists(t *testing.T) {
	loader := &Loader{homeDir: t.TempDir()}

	cfg, err := loader.Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultFileConfig(), cfg)
}

func TestLoadPath_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cc: [unterminated"), 0o600))

	_, err := LoadPath(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config")
}

func TestLoadPath_FillsLogLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cc: gcc\n"), 0o600))

	cfg, err := LoadPath(path)
	require.NoError(t, err)
	assert.Equal(t, "gcc", cfg.CC)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestNewLoader_EnvOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvConfigDir, dir)

	loader := NewLoader()
	assert.Equal(t, filepath.Join(dir, DefaultDir, ConfigFile), loader.ConfigPath())
}
