package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"gopkg.in/yaml.v3"
)

const (
	appName    = "architect"
	configFile = "config.yaml"

	// PathEnvVar overrides the config file location.
	PathEnvVar = "ARCHITECT_CONFIG"
)

var (
	// Global config instance (loaded lazily)
	globalConfig     *Config
	globalConfigOnce sync.Once
	globalConfigErr  error

	// Mutex for thread-safe file operations
	fileMutex sync.Mutex
)

// ErrConfigExists is returned by CreateDefaultConfig when a file is already present.
var ErrConfigExists = errors.New("config file already exists")

// GetConfigDir returns the OS-appropriate configuration directory for the application.
//   - Linux: $XDG_CONFIG_HOME/architect or $HOME/.config/architect
//   - macOS: $HOME/.config/architect
//   - Windows: %LOCALAPPDATA%\architect
func GetConfigDir() (string, error) {
	return userDir("XDG_CONFIG_HOME", ".config")
}

// GetStateDir returns the directory for persisted blueprints and logs.
//   - Linux/macOS: $XDG_STATE_HOME/architect or $HOME/.local/state/architect
//   - Windows: %LOCALAPPDATA%\architect\state
func GetStateDir() (string, error) {
	if runtime.GOOS == "windows" {
		dir, err := userDir("", "")
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, "state"), nil
	}
	return userDir("XDG_STATE_HOME", filepath.Join(".local", "state"))
}

func userDir(xdgEnv, homeRel string) (string, error) {
	if runtime.GOOS == "windows" {
		localAppData := os.Getenv("LOCALAPPDATA")
		if localAppData != "" {
			return filepath.Join(localAppData, appName), nil
		}
		userProfile := os.Getenv("USERPROFILE")
		if userProfile == "" {
			return "", fmt.Errorf("cannot determine user profile directory (LOCALAPPDATA and USERPROFILE not set)")
		}
		return filepath.Join(userProfile, "AppData", "Local", appName), nil
	}

	if xdgEnv != "" {
		if base := os.Getenv(xdgEnv); base != "" {
			return filepath.Join(base, appName), nil
		}
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(homeDir, homeRel, appName), nil
}

// GetConfigPath returns the full path to the configuration file.
func GetConfigPath() (string, error) {
	if p := os.Getenv(PathEnvVar); p != "" {
		return p, nil
	}
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, configFile), nil
}

// StoragePath returns the configured storage path, or the backend's default
// file in the state directory.
func (c *Config) StoragePath() (string, error) {
	if c.Storage.Path != "" {
		return c.Storage.Path, nil
	}
	dir, err := GetStateDir()
	if err != nil {
		return "", err
	}
	if c.Storage.Backend == BackendSQLite {
		return filepath.Join(dir, "architect.db"), nil
	}
	return filepath.Join(dir, "deployments.json"), nil
}

// LogPath returns the file the interactive application logs to.
func LogPath() (string, error) {
	dir, err := GetStateDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "architect.log"), nil
}

// Load loads the configuration from disk once per process.
// If the file doesn't exist, defaults are returned.
func Load() (*Config, error) {
	globalConfigOnce.Do(func() {
		path, err := GetConfigPath()
		if err != nil {
			globalConfigErr = fmt.Errorf("failed to get config path: %w", err)
			return
		}
		globalConfig, globalConfigErr = LoadFrom(path)
	})
	return globalConfig, globalConfigErr
}

// LoadFrom reads and validates the file at path. Fields missing from the
// file keep their default values.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the configuration to the default location.
func (c *Config) Save() error {
	path, err := GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}
	return c.SaveTo(path)
}

// SaveTo writes the configuration atomically to path.
func (c *Config) SaveTo(path string) error {
	fileMutex.Lock()
	defer fileMutex.Unlock()

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte(`# Asset Architect configuration
#
# The Gemini API key is never stored here. engine.api_key_env names the
# environment variable to read it from (GEMINI_API_KEY is tried as a fallback).
#
# Location: ` + path + `

`)
	data = append(header, data...)

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write temporary config file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to save config file: %w", err)
	}
	return nil
}

// CreateDefaultConfig writes a default config file to path unless one exists
// and force is false.
func CreateDefaultConfig(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w: %s", ErrConfigExists, path)
		}
	}
	return Default().SaveTo(path)
}
