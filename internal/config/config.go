package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config keeps runtime settings for the tracker.
type Config struct {
	TelegramToken string `yaml:"telegram_token"`
	DatabaseURL   string `yaml:"database_url"`
	Timezone      string `yaml:"timezone"`
	ReminderTime  string `yaml:"reminder_time"`
	LookbackDays  int    `yaml:"lookback_days"`
	DailyTarget   int    `yaml:"daily_target"`
}

// Load reads configuration from an optional YAML file (CONFIG_FILE)
// with environment variables taking precedence, and applies defaults.
func Load() (Config, error) {
	var cfg Config

	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config file: %w", err)
		}
	}

	applyEnv(&cfg)

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "habit_tracker.db"
	}
	if cfg.Timezone == "" {
		cfg.Timezone = "Europe/Amsterdam"
	}
	if cfg.ReminderTime == "" {
		cfg.ReminderTime = "08:00"
	}
	if cfg.LookbackDays <= 0 {
		cfg.LookbackDays = 365
	}
	if cfg.DailyTarget == 0 {
		cfg.DailyTarget = 1
	}

	if cfg.TelegramToken == "" {
		return cfg, fmt.Errorf("TELEGRAM_TOKEN is required")
	}
	if cfg.DailyTarget < 1 || cfg.DailyTarget > 100 {
		return cfg, fmt.Errorf("daily target must be between 1 and 100, got %d", cfg.DailyTarget)
	}
	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		return cfg, fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
	}

	return cfg, nil
}

// Location resolves the configured timezone. Load already validated it.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv("TELEGRAM_TOKEN")); v != "" {
		cfg.TelegramToken = v
	}
	if v := strings.TrimSpace(os.Getenv("DATABASE_URL")); v != "" {
		cfg.DatabaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv("TIMEZONE")); v != "" {
		cfg.Timezone = v
	}
	if v := strings.TrimSpace(os.Getenv("REMINDER_TIME")); v != "" {
		cfg.ReminderTime = v
	}
	if v := strings.TrimSpace(os.Getenv("STREAK_LOOKBACK_DAYS")); v != "" {
		if days, err := strconv.Atoi(v); err == nil && days > 0 {
			cfg.LookbackDays = days
		}
	}
	if v := strings.TrimSpace(os.Getenv("DEFAULT_DAILY_TARGET")); v != "" {
		if target, err := strconv.Atoi(v); err == nil {
			cfg.DailyTarget = target
		}
	}
}
