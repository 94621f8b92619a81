// Package config provides YAML-based configuration loading for punchclock.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level punchclock configuration, loaded from config.yaml.
type Config struct {
	ProjectsDir     string            `yaml:"projects_dir"`
	DBPath          string            `yaml:"db_path"`
	IdleTimeoutMins int               `yaml:"idle_timeout_minutes"`
	WorkDayStart    string            `yaml:"work_day_start"`
	WorkDayEnd      string            `yaml:"work_day_end"`
	WorkspaceID     string            `yaml:"workspace_id"`
	ProjectMapping  map[string]string `yaml:"project_mapping"`
	OtherProjectID  string            `yaml:"other_project_id"`
}

// Load reads a YAML config file from path and returns a validated Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse unmarshals YAML bytes into a validated Config.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// DefaultPath returns the standard config location under the user's home.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "punchclock.yaml"
	}
	return filepath.Join(home, ".punchclock", "config.yaml")
}

// IdleTimeout returns the idle threshold as a duration.
func (c *Config) IdleTimeout() time.Duration {
	return time.Duration(c.IdleTimeoutMins) * time.Minute
}

// applyDefaults fills in derived and default values.
func (c *Config) applyDefaults() {
	home, _ := os.UserHomeDir()
	if c.ProjectsDir == "" && home != "" {
		c.ProjectsDir = filepath.Join(home, ".claude", "projects")
	}
	if c.DBPath == "" && home != "" {
		c.DBPath = filepath.Join(home, ".punchclock", "punchclock.db")
	}
	if c.IdleTimeoutMins == 0 {
		c.IdleTimeoutMins = 15
	}
	if c.WorkDayStart == "" {
		c.WorkDayStart = "09:00"
	}
	if c.WorkDayEnd == "" {
		c.WorkDayEnd = "17:00"
	}
}

// validate checks that all required fields are present and consistent.
func (c *Config) validate() error {
	var errs []string
	if c.IdleTimeoutMins < 0 {
		errs = append(errs, "idle_timeout_minutes must not be negative")
	}
	start, startErr := parseClock(c.WorkDayStart)
	if startErr != nil {
		errs = append(errs, fmt.Sprintf("work_day_start: %v", startErr))
	}
	end, endErr := parseClock(c.WorkDayEnd)
	if endErr != nil {
		errs = append(errs, fmt.Sprintf("work_day_end: %v", endErr))
	}
	if startErr == nil && endErr == nil && end <= start {
		errs = append(errs, "work_day_end must be after work_day_start")
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// parseClock parses an HH:MM string into minutes since midnight.
func parseClock(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("%q is not a valid HH:MM time", s)
	}
	return t.Hour()*60 + t.Minute(), nil
}
