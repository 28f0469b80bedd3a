// Package config loads mesoplan settings from YAML with MESOPLAN_*
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/alexanderramin/mesoplan/internal/domain"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Database  DatabaseConfig  `yaml:"database"`
	Templates TemplatesConfig `yaml:"templates"`
	Log       LogConfig       `yaml:"log"`
	Defaults  DefaultsConfig  `yaml:"defaults"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

type TemplatesConfig struct {
	// Dir holds custom progression templates (*.json) layered over the built-ins.
	Dir string `yaml:"dir"`
}

type LogConfig struct {
	Level    string `yaml:"level"`
	UseCases bool   `yaml:"use_cases"`
}

type DefaultsConfig struct {
	Weeks           int    `yaml:"weeks"`
	Strategy        string `yaml:"strategy"`
	DeloadFrequency int    `yaml:"deload_frequency"`
}

// Default returns the settings used when no config file exists.
func Default() *Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	base := filepath.Join(home, ".mesoplan")
	return &Config{
		Database:  DatabaseConfig{Path: filepath.Join(base, "mesoplan.db")},
		Templates: TemplatesConfig{Dir: filepath.Join(base, "templates")},
		Log:       LogConfig{Level: "warn"},
		Defaults: DefaultsConfig{
			Weeks:           4,
			Strategy:        "strength",
			DeloadFrequency: domain.DefaultDeloadFrequency,
		},
	}
}

// DefaultPath is the config file read when MESOPLAN_CONFIG is unset.
func DefaultPath() string {
	if v := os.Getenv("MESOPLAN_CONFIG"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "mesoplan.yaml"
	}
	return filepath.Join(home, ".mesoplan", "config.yaml")
}

// Load reads the YAML file at path over Default(), then applies environment
// overrides:
//
//	MESOPLAN_DB, MESOPLAN_TEMPLATES, MESOPLAN_LOG_LEVEL,
//	MESOPLAN_LOG_USE_CASES, MESOPLAN_DEFAULT_WEEKS, MESOPLAN_DEFAULT_STRATEGY
//
// A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("reading config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("MESOPLAN_DB"); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv("MESOPLAN_TEMPLATES"); v != "" {
		cfg.Templates.Dir = v
	}
	if v := os.Getenv("MESOPLAN_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("MESOPLAN_LOG_USE_CASES"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("MESOPLAN_LOG_USE_CASES: %w", err)
		}
		cfg.Log.UseCases = b
	}
	if v := os.Getenv("MESOPLAN_DEFAULT_WEEKS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("MESOPLAN_DEFAULT_WEEKS: %w", err)
		}
		cfg.Defaults.Weeks = n
	}
	if v := os.Getenv("MESOPLAN_DEFAULT_STRATEGY"); v != "" {
		cfg.Defaults.Strategy = v
	}
	return nil
}

func (c *Config) validate() error {
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}
	if c.Defaults.Weeks < 1 {
		return fmt.Errorf("defaults.weeks must be at least 1 (got %d)", c.Defaults.Weeks)
	}
	if c.Defaults.DeloadFrequency < 1 {
		return fmt.Errorf("defaults.deload_frequency must be at least 1 (got %d)", c.Defaults.DeloadFrequency)
	}
	if _, ok := domain.StrategyPreset(c.Defaults.Strategy); !ok {
		return fmt.Errorf("defaults.strategy: unknown preset %q (want one of %s)",
			c.Defaults.Strategy, strings.Join(domain.StrategyPresetNames(), ", "))
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// SlogLevel maps log.level onto a slog level.
func (c *Config) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, fmt.Errorf("log.level: unknown level %q", c.Log.Level)
	}
	return lvl, nil
}
