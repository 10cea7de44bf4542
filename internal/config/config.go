// Package config resolves where day logs live and how the tracker reads the
// clock. Values come from built-in defaults, then an optional YAML file,
// then environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	appName        = "worktimer"
	configFileName = "config.yaml"
	defaultDirName = ".work_timer"

	defaultDailyTarget = 8 * time.Hour
)

// Config holds runtime settings.
type Config struct {
	// Dir is the directory holding one log file per day.
	Dir string
	// Location is the time zone used for both the day and the time of day.
	Location *time.Location
	// LogEvents enables structured logging of use-case events.
	LogEvents bool
	// LogFile receives structured logs instead of stderr when set.
	LogFile string
	// DailyTarget is the amount of work the progress bar measures against.
	DailyTarget time.Duration
}

type yamlConfig struct {
	Dir       string `yaml:"dir,omitempty"`
	Timezone  string `yaml:"timezone,omitempty"`
	LogEvents *bool  `yaml:"log_events,omitempty"`
	LogFile   string `yaml:"log_file,omitempty"`
	Target    string `yaml:"daily_target,omitempty"`
}

// Default returns the configuration used when nothing is overridden:
// logs under ~/.work_timer, UTC clock, logging off, an 8h target.
func Default() (Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("finding home directory: %w", err)
	}
	return Config{
		Dir:         filepath.Join(home, defaultDirName),
		Location:    time.UTC,
		DailyTarget: defaultDailyTarget,
	}, nil
}

// Load reads the config file (if any) and environment overrides on top of
// the defaults.
func Load() (Config, error) {
	cfg, err := Default()
	if err != nil {
		return cfg, err
	}

	path, err := Path()
	if err != nil {
		return cfg, err
	}
	if err := applyFile(&cfg, path); err != nil {
		return cfg, err
	}
	if err := applyEnv(&cfg, os.Getenv); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Path returns the location of the optional YAML config file.
func Path() (string, error) {
	if v := os.Getenv("WORKTIMER_CONFIG"); v != "" {
		return v, nil
	}
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, configFileName), nil
}

func applyFile(cfg *Config, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config file: %w", err)
	}

	var fileData yamlConfig
	if err := yaml.Unmarshal(raw, &fileData); err != nil {
		return fmt.Errorf("parse config yaml: %w", err)
	}

	if fileData.Dir != "" {
		cfg.Dir = expandHome(fileData.Dir)
	}
	if fileData.Timezone != "" {
		loc, err := loadLocation(fileData.Timezone)
		if err != nil {
			return err
		}
		cfg.Location = loc
	}
	if fileData.LogEvents != nil {
		cfg.LogEvents = *fileData.LogEvents
	}
	if fileData.LogFile != "" {
		cfg.LogFile = expandHome(fileData.LogFile)
	}
	if fileData.Target != "" {
		target, err := parseTarget(fileData.Target)
		if err != nil {
			return err
		}
		cfg.DailyTarget = target
	}
	return nil
}

func applyEnv(cfg *Config, getenv func(string) string) error {
	if v := getenv("WORKTIMER_DIR"); v != "" {
		cfg.Dir = expandHome(v)
	}
	if v := getenv("WORKTIMER_TZ"); v != "" {
		loc, err := loadLocation(v)
		if err != nil {
			return err
		}
		cfg.Location = loc
	}
	if v := getenv("WORKTIMER_LOG"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid WORKTIMER_LOG %q: %w", v, err)
		}
		cfg.LogEvents = enabled
	}
	if v := getenv("WORKTIMER_DAILY_TARGET"); v != "" {
		target, err := parseTarget(v)
		if err != nil {
			return err
		}
		cfg.DailyTarget = target
	}
	return nil
}

func parseTarget(s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid daily target %q: %w", s, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("daily target must be positive, got %s", s)
	}
	return d, nil
}

func loadLocation(name string) (*time.Location, error) {
	if strings.EqualFold(name, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("unknown timezone %q: %w", name, err)
	}
	return loc, nil
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
