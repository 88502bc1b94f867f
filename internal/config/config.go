// Package config loads CLI configuration from a YAML file, the environment
// and defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. TWOPHASE_SOLVER_MAX_LENGTH.
const EnvPrefix = "TWOPHASE"

// Config is the resolved configuration.
type Config struct {
	Solver  SolverConfig  `mapstructure:"solver"`
	Storage StorageConfig `mapstructure:"storage"`
	Log     LogConfig     `mapstructure:"log"`
}

type SolverConfig struct {
	MaxLength int           `mapstructure:"max_length"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

type StorageConfig struct {
	DBPath      string `mapstructure:"db_path"`
	CacheTables bool   `mapstructure:"cache_tables"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Dir returns the per-user directory holding the config file and database.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".twophase"), nil
}

func setDefaults(v *viper.Viper, dir string) {
	v.SetDefault("solver.max_length", 23)
	v.SetDefault("solver.timeout", 30*time.Second)
	v.SetDefault("storage.db_path", filepath.Join(dir, "twophase.db"))
	v.SetDefault("storage.cache_tables", true)
	v.SetDefault("log.level", "info")
}

// Load reads configuration. With an empty path, config.yaml is searched in
// the working directory and then in Dir; a missing file is not an error.
// An explicit path must exist.
func Load(path string) (*Config, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}

	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	setDefaults(v, dir)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Solver.MaxLength < 0 {
		return fmt.Errorf("solver.max_length must not be negative, got %d", c.Solver.MaxLength)
	}
	if c.Solver.Timeout < 0 {
		return fmt.Errorf("solver.timeout must not be negative, got %s", c.Solver.Timeout)
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log.level %q", c.Log.Level)
	}
	return nil
}
