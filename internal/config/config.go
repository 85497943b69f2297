// ABOUTME: Betta configuration management with backend selection.
// ABOUTME: JSON settings on disk overlaid by BETTA_* environment variables.

package config

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kelseyhightower/envconfig"

	"github.com/harperreed/betta/internal/charm"
	"github.com/harperreed/betta/internal/guest"
	"github.com/harperreed/betta/internal/storage"
)

// EnvPrefix is the prefix for environment overrides, e.g. BETTA_BACKEND.
const EnvPrefix = "BETTA"

// Backend names.
const (
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendCharm    = "charm"
)

// Config stores betta tool configuration and user preferences.
type Config struct {
	// Backend selects the account backend: "sqlite" (default), "postgres" or "charm".
	Backend string `json:"backend,omitempty"`

	// DataDir is the root directory for local data. SQLite puts betta.db
	// here and guest storage lives in its guest/ folder.
	// Supports ~ expansion for home directory. Defaults to ~/.local/share/betta.
	DataDir string `json:"data_dir,omitempty" split_words:"true"`

	// DSN is the Postgres connection string for the postgres backend.
	DSN string `json:"dsn,omitempty"`

	// GuestMode keeps all data on this device even when signed in.
	GuestMode bool `json:"guest_mode,omitempty" split_words:"true"`

	// Theme is the display preference.
	Theme Theme `json:"theme,omitempty"`

	// LogLevel is a zerolog level name. Defaults to warn.
	LogLevel string `json:"log_level,omitempty" split_words:"true"`

	// Backup configures export uploads.
	Backup BackupConfig `json:"backup,omitempty"`
}

// BackupConfig selects where `betta export --upload` writes.
type BackupConfig struct {
	Driver    string `json:"driver,omitempty"` // "s3" or "fs"
	Bucket    string `json:"bucket,omitempty"`
	Region    string `json:"region,omitempty"`
	Endpoint  string `json:"endpoint,omitempty"`
	PathStyle bool   `json:"path_style,omitempty" split_words:"true"`
	Dir       string `json:"dir,omitempty"`
}

// Theme is the display theme preference.
type Theme string

const (
	ThemeSystem Theme = "system"
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
)

// Decode implements the envconfig.Decoder interface.
func (t *Theme) Decode(value string) error {
	theme, err := ParseTheme(value)
	if err != nil {
		return err
	}
	*t = theme
	return nil
}

// ParseTheme validates a theme name.
func ParseTheme(value string) (Theme, error) {
	switch Theme(strings.ToLower(strings.TrimSpace(value))) {
	case ThemeSystem, "":
		return ThemeSystem, nil
	case ThemeLight:
		return ThemeLight, nil
	case ThemeDark:
		return ThemeDark, nil
	default:
		return "", fmt.Errorf("unknown theme %q (use light, dark or system)", value)
	}
}

// GetTheme returns the configured theme, defaulting to "system".
func (c *Config) GetTheme() Theme {
	if c.Theme == "" {
		return ThemeSystem
	}
	return c.Theme
}

// GetBackend returns the configured backend, defaulting to "sqlite".
func (c *Config) GetBackend() string {
	if c.Backend == "" {
		return BackendSQLite
	}
	return c.Backend
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetGuestDir returns the directory of the device-local guest store.
func (c *Config) GetGuestDir() string {
	return filepath.Join(c.GetDataDir(), "guest")
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// OpenAccountStorage opens the backend used when a user is signed in.
func (c *Config) OpenAccountStorage(ctx context.Context) (storage.AccountStore, error) {
	switch backend := c.GetBackend(); backend {
	case BackendSQLite:
		db, err := storage.Open(filepath.Join(c.GetDataDir(), "betta.db"))
		if err != nil {
			return nil, err
		}
		return db, nil
	case BackendPostgres:
		db, err := storage.OpenPostgres(ctx, c.DSN)
		if err != nil {
			return nil, err
		}
		return db, nil
	case BackendCharm:
		client, err := charm.InitClient()
		if err != nil {
			return nil, err
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unknown backend: %q", backend)
	}
}

// OpenGuestStorage opens the device-local store.
func (c *Config) OpenGuestStorage() (*guest.Store, error) {
	return guest.Open(c.GetGuestDir())
}

// GetConfigDir returns the betta config directory.
func GetConfigDir() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "betta")
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	return filepath.Join(GetConfigDir(), "config.json")
}

// Load reads config from disk and applies environment overrides.
func Load() (*Config, error) {
	cfg, err := LoadFile()
	if err != nil {
		return nil, err
	}
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}
	return cfg, nil
}

// LoadFile reads config from disk without environment overrides.
// Use it when the result will be saved back.
func LoadFile() (*Config, error) {
	path := GetConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
