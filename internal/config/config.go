package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Default config file path.
const DefaultConfigPath = "~/.config/fogreport/config.yaml"

// Config holds all fogreport configuration.
type Config struct {
	API     APIConfig     `yaml:"api"`
	Report  ReportConfig  `yaml:"report"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// APIConfig describes the remote FogBugz endpoint and credentials.
type APIConfig struct {
	Endpoint       string `yaml:"endpoint"`
	Email          string `yaml:"email"`
	Password       string `yaml:"password"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// ReportConfig controls how the aggregation passes behave.
type ReportConfig struct {
	// IntervalPerson is the ixPerson value sent with listIntervals.
	// The remote treats 1 as the whole-team scope.
	IntervalPerson int `yaml:"interval_person"`
	// CountUnassigned attributes elapsed-on-resolution hours of bugs
	// resolved by person 0 to "nobody" instead of dropping them.
	CountUnassigned bool `yaml:"count_unassigned"`
	// Prefetch fetches every bug up front instead of on demand.
	Prefetch bool `yaml:"prefetch"`
}

// OutputConfig controls report shape and destination.
type OutputConfig struct {
	Path     string `yaml:"path"`
	Detailed bool   `yaml:"detailed"`
	Workbook bool   `yaml:"workbook"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load reads a YAML config file at path and merges it with defaults.
// Returns an error if the file cannot be read or contains invalid YAML.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return cfg, nil
}

// expandPath replaces a leading ~ with the user's home directory.
func expandPath(path string) (string, error) {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		return filepath.Join(home, path[1:]), nil
	}
	return path, nil
}

// LoadOrCreate loads the config from the default path. If the file does
// not exist, it creates the directory structure and writes defaults.
func LoadOrCreate() (*Config, error) {
	path, err := expandPath(DefaultConfigPath)
	if err != nil {
		return nil, err
	}
	return LoadOrCreateAt(path)
}

// LoadOrCreateAt loads the config from the given path. If the file does
// not exist, it creates the directory structure and writes defaults.
func LoadOrCreateAt(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := DefaultConfig()

		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating config directory: %w", err)
		}

		data, err := yaml.Marshal(cfg)
		if err != nil {
			return nil, fmt.Errorf("marshaling default config: %w", err)
		}

		if err := os.WriteFile(path, data, 0600); err != nil {
			return nil, fmt.Errorf("writing default config: %w", err)
		}

		return cfg, nil
	}

	return Load(path)
}

// ApplyEnv overlays environment variables onto cfg. A .env file in the
// working directory is honored when present. Environment values win over
// file values; CLI flags are applied later and win over both.
func ApplyEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("FOGBUGZ_ENDPOINT"); v != "" {
		cfg.API.Endpoint = v
	}
	if v := os.Getenv("FOGBUGZ_EMAIL"); v != "" {
		cfg.API.Email = v
	}
	if v := os.Getenv("FOGBUGZ_PASSWORD"); v != "" {
		cfg.API.Password = v
	}
}
