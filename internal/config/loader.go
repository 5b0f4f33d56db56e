package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/napsta32/libhook/internal/safe"
)

const (
	// DefaultDir is the per-user directory holding libhook configuration.
	DefaultDir = ".libhook"
	// ConfigFile is the config file name inside DefaultDir.
	ConfigFile = "config.yaml"
	// EnvConfigDir overrides the configuration base directory when set.
	EnvConfigDir = "LIBHOOK_CONFIG"
)

// Loader handles loading and saving the configuration file.
type Loader struct {
	homeDir string
}

// NewLoader creates a config loader. The base directory is resolved in this
// order:
//  1. LIBHOOK_CONFIG environment variable.
//  2. User home directory.
//  3. /tmp/libhook-fallback (containerized environments without a home dir).
//
// In the fallback case no config file exists, so Load returns defaults.
func NewLoader() *Loader {
	if baseDir := os.Getenv(EnvConfigDir); baseDir != "" {
		return &Loader{homeDir: baseDir}
	}

	homeDir, err := os.UserHomeDir()
	if err == nil {
		return &Loader{homeDir: homeDir}
	}

	return &Loader{homeDir: "/tmp/libhook-fallback"}
}

// ConfigPath returns the path to the config file.
func (l *Loader) ConfigPath() string {
	return filepath.Join(l.homeDir, DefaultDir, ConfigFile)
}

// Load loads the configuration file. A missing file is not an error: the
// built-in defaults are returned.
func (l *Loader) Load() (*FileConfig, error) {
	return LoadPath(l.ConfigPath())
}

// LoadPath loads a specific configuration file, falling back to defaults
// when it does not exist.
func LoadPath(path string) (*FileConfig, error) {
	cfg := DefaultFileConfig()

	data, err := safe.ReadFile(path, nil)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config %q: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %q: %w", path, err)
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultFileConfig().LogLevel
	}
	return cfg, nil
}

// Save writes the configuration file, creating the directory as needed.
func (l *Loader) Save(cfg *FileConfig) error {
	path := l.ConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
