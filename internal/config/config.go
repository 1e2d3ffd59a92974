// Package config loads riseup settings: built-in defaults, then the YAML
// file, then RISEUP_* environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/riseup/internal/challenge"
)

// Config holds every user-tunable setting.
type Config struct {
	DBPath     string          `yaml:"db_path"`
	LogLevel   string          `yaml:"log_level"`
	AlarmTitle string          `yaml:"alarm_title"`
	Challenge  ChallengeConfig `yaml:"challenge"`
	Rhythm     RhythmConfig    `yaml:"rhythm"`
	Watch      WatchConfig     `yaml:"watch"`
}

// ChallengeConfig sets defaults for new alarms and practice runs.
type ChallengeConfig struct {
	Kind             challenge.Kind `yaml:"kind"`
	Difficulty       int            `yaml:"difficulty"`
	RecentCodeWindow int            `yaml:"recent_code_window"`
}

// RhythmConfig tunes the rhythm challenge.
type RhythmConfig struct {
	RequiredStreak int `yaml:"required_streak"`
}

// WatchConfig tunes the watch loop.
type WatchConfig struct {
	PollInterval time.Duration `yaml:"poll_interval"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		LogLevel:   "warn",
		AlarmTitle: "Time to rise",
		Challenge: ChallengeConfig{
			Kind:             challenge.KindMath,
			Difficulty:       challenge.DefaultDifficulty,
			RecentCodeWindow: 5,
		},
		Rhythm: RhythmConfig{
			RequiredStreak: 5,
		},
		Watch: WatchConfig{
			PollInterval: 15 * time.Second,
		},
	}
}

// DefaultPath resolves the config file path:
// 1. RISEUP_CONFIG environment variable
// 2. $XDG_CONFIG_HOME/riseup/config.yaml
// 3. ~/.config/riseup/config.yaml
func DefaultPath() (string, error) {
	if p := os.Getenv("RISEUP_CONFIG"); p != "" {
		return p, nil
	}
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "riseup", "config.yaml"), nil
}

// Load reads the YAML file at path over the defaults. A missing file
// yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path as YAML, creating the directory.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// ApplyEnv overrides fields from RISEUP_* environment variables.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("RISEUP_DB"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("RISEUP_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("RISEUP_TITLE"); v != "" {
		c.AlarmTitle = v
	}
	if v := os.Getenv("RISEUP_CHALLENGE"); v != "" {
		k, err := challenge.ParseKind(v)
		if err != nil {
			return fmt.Errorf("RISEUP_CHALLENGE: %w", err)
		}
		c.Challenge.Kind = k
	}
	if v := os.Getenv("RISEUP_DIFFICULTY"); v != "" {
		d, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("RISEUP_DIFFICULTY: %w", err)
		}
		c.Challenge.Difficulty = d
	}
	return nil
}

// Validate checks that all values are in range.
func (c *Config) Validate() error {
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	if _, err := challenge.ParseKind(string(c.Challenge.Kind)); err != nil {
		return err
	}
	if c.Challenge.Difficulty < challenge.MinDifficulty || c.Challenge.Difficulty > challenge.MaxDifficulty {
		return fmt.Errorf("challenge.difficulty must be %d-%d, got %d",
			challenge.MinDifficulty, challenge.MaxDifficulty, c.Challenge.Difficulty)
	}
	if c.Challenge.RecentCodeWindow < 0 {
		return fmt.Errorf("challenge.recent_code_window must be >= 0, got %d", c.Challenge.RecentCodeWindow)
	}
	if c.Rhythm.RequiredStreak < 1 {
		return fmt.Errorf("rhythm.required_streak must be >= 1, got %d", c.Rhythm.RequiredStreak)
	}
	if c.Watch.PollInterval < time.Second || c.Watch.PollInterval > time.Minute {
		return fmt.Errorf("watch.poll_interval must be between 1s and 1m, got %s", c.Watch.PollInterval)
	}
	return nil
}

// ParseLogLevel maps a level name to a slog.Level.
func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", s)
	}
}
