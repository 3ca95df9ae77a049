package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/google/uuid"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Backend BackendConfig `mapstructure:"backend"`
	UI      UIConfig      `mapstructure:"ui"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// BackendConfig holds Game Hub backend configuration
type BackendConfig struct {
	URL      string `mapstructure:"url"`       // Backend base URL, e.g. http://127.0.0.1:5000
	ClientID string `mapstructure:"client_id"` // Persistent subscriber identifier
}

// UIConfig holds UI configuration
type UIConfig struct {
	DefaultView string `mapstructure:"default_view"` // "grid" or "list"
	GridColumns int    `mapstructure:"grid_columns"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Backend: BackendConfig{
			URL: "http://127.0.0.1:5000",
		},
		UI: UIConfig{
			DefaultView: "grid",
			GridColumns: 4,
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
	}
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "GameHub", "gamehub.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "gamehub", "gamehub.log")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "GameHub")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "gamehub")
	}
}

// DefaultCachePath returns the local snapshot cache directory
func DefaultCachePath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "GameHub", "cache")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "gamehub", "cache")
	}
}

// LoadConfig loads configuration from file and environment
func LoadConfig() (*Config, error) {
	cfg := DefaultConfig()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(defaultConfigPath())
	viper.AddConfigPath(".")

	// Environment variable overrides
	viper.SetEnvPrefix("GAMEHUB")
	viper.AutomaticEnv()

	// Read config file if it exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the current configuration to file
func SaveConfig(cfg *Config) error {
	configPath := defaultConfigPath()

	if err := os.MkdirAll(configPath, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Set fields individually to ensure correct key names (snake_case)
	viper.Set("backend.url", cfg.Backend.URL)
	viper.Set("backend.client_id", cfg.Backend.ClientID)
	viper.Set("ui.default_view", cfg.UI.DefaultView)
	viper.Set("ui.grid_columns", cfg.UI.GridColumns)
	viper.Set("logging.file", cfg.Logging.File)
	viper.Set("logging.level", cfg.Logging.Level)

	configFile := filepath.Join(configPath, "config.yaml")
	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// IsConfigured returns true if the backend URL is set
func (c *Config) IsConfigured() bool {
	return c.Backend.URL != ""
}

// EnsureClientID generates and persists a subscriber identifier the
// first time the client runs.
func (c *Config) EnsureClientID() error {
	if c.Backend.ClientID != "" {
		return nil
	}
	c.Backend.ClientID = uuid.NewString()
	return SaveConfig(c)
}

// ClearCache removes the local snapshot cache
func ClearCache() error {
	if err := os.RemoveAll(DefaultCachePath()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	return nil
}
