package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	// Backend API settings
	API APIConfig `yaml:"api"`

	// Log settings
	Log LogConfig `yaml:"log"`

	// Shop settings
	Shop ShopConfig `yaml:"shop"`
}

type APIConfig struct {
	BaseURL        string `yaml:"base_url"`        // Backend base URL including the /api prefix
	TimeoutSeconds int    `yaml:"timeout_seconds"` // Per-request timeout
}

type LogConfig struct {
	Path  string `yaml:"path"`  // Log file path; the TUI owns stdout
	Level string `yaml:"level"` // logrus level name (debug, info, warn, error)
}

type ShopConfig struct {
	Name              string `yaml:"name"`                // Shown in the TUI header
	LowStockThreshold int    `yaml:"low_stock_threshold"` // Parts at or below this are flagged
	RecentLimit       int    `yaml:"recent_limit"`        // Maintenances shown on the dashboard
}

// DefaultConfigPath returns ~/.config/taller/config.yaml
func DefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home dir unavailable
		return filepath.Join(".", ".config", "taller", "config.yaml")
	}
	return filepath.Join(homeDir, ".config", "taller", "config.yaml")
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}

	return &Config{
		API: APIConfig{
			BaseURL:        "http://localhost:8000/api/v1",
			TimeoutSeconds: 30,
		},
		Log: LogConfig{
			Path:  filepath.Join(homeDir, ".config", "taller", "taller.log"),
			Level: "info",
		},
		Shop: ShopConfig{
			Name:              "Taller",
			LowStockThreshold: 5,
			RecentLimit:       5,
		},
	}
}

// Load loads config from the given path, or returns defaults if file doesn't
// exist. A .env file in the working directory and TALLER_* variables override
// the file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

// LoadDefault loads from the default config path
func LoadDefault() (*Config, error) {
	return Load(DefaultConfigPath())
}

// applyEnv layers environment overrides on top of the file values. Errors
// from a missing .env are ignored; the file is optional.
func (c *Config) applyEnv() {
	_ = godotenv.Load()

	if url := os.Getenv("TALLER_API_URL"); url != "" {
		c.API.BaseURL = url
	}
	if raw := os.Getenv("TALLER_API_TIMEOUT"); raw != "" {
		if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
			c.API.TimeoutSeconds = secs
		}
	}
	if level := os.Getenv("TALLER_LOG_LEVEL"); level != "" {
		c.Log.Level = level
	}
}

// Save writes the config to the given path
func (c *Config) Save(path string) error {
	// Create parent directories if they don't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
