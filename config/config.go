// Package config loads settings for the biorhythms server from an optional
// YAML file with environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const ENV_PREFIX = "BIORHYTHMS"

// Store backends
const (
	STORE_REDIS  = "redis"
	STORE_BADGER = "badger"
	STORE_MEMORY = "memory"
)

type Config struct {
	Server  ServerConfig  `mapstructure:"server"  yaml:"server"`
	Store   StoreConfig   `mapstructure:"store"   yaml:"store"`
	Chart   ChartConfig   `mapstructure:"chart"   yaml:"chart"`
	Cache   CacheConfig   `mapstructure:"cache"   yaml:"cache"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

type ServerConfig struct {
	Addr               string `mapstructure:"addr"                 yaml:"addr"`
	ShutdownTimeoutSec int    `mapstructure:"shutdown_timeout_sec" yaml:"shutdown_timeout_sec"`
}

type StoreConfig struct {
	Backend string       `mapstructure:"backend" yaml:"backend"` // "redis", "badger", "memory"
	Redis   RedisConfig  `mapstructure:"redis"   yaml:"redis"`
	Badger  BadgerConfig `mapstructure:"badger"  yaml:"badger"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"     yaml:"addr"`
	Password string `mapstructure:"password" yaml:"password"`
	DB       int    `mapstructure:"db"       yaml:"db"`
}

type BadgerConfig struct {
	Path string `mapstructure:"path" yaml:"path"` // empty keeps data in memory
}

type ChartConfig struct {
	Span   int `mapstructure:"span"   yaml:"span"`
	Width  int `mapstructure:"width"  yaml:"width"`
	Height int `mapstructure:"height" yaml:"height"`
	// MaxSpan and MaxSize bound request parameters.
	MaxSpan      int     `mapstructure:"max_span"       yaml:"max_span"`
	MaxSize      int     `mapstructure:"max_size"       yaml:"max_size"`
	LabelFontPts float64 `mapstructure:"label_font_pts" yaml:"label_font_pts"`
}

type CacheConfig struct {
	MaxEntries           int `mapstructure:"max_entries"            yaml:"max_entries"`
	PurgeIntervalMinutes int `mapstructure:"purge_interval_minutes" yaml:"purge_interval_minutes"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format" yaml:"format"` // "text" or "json"
}

// Load reads the configuration from file and environment variables.
// Config file search order:
//  1. ./config/config.yaml
//  2. ~/.biorhythms/config.yaml
//  3. /etc/biorhythms/config.yaml
//
// Environment variables override file values, e.g. BIORHYTHMS_STORE_BACKEND.
func Load() (*Config, error) {
	v := newViper()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(filepath.Join(homeDir(), ".biorhythms"))
	v.AddConfigPath("/etc/biorhythms")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}
	return unmarshal(v)
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}
	return unmarshal(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(ENV_PREFIX)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func unmarshal(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.shutdown_timeout_sec", 5)

	v.SetDefault("store.backend", STORE_BADGER)
	v.SetDefault("store.redis.addr", "redis:6379")
	v.SetDefault("store.redis.password", "")
	v.SetDefault("store.redis.db", 0)
	v.SetDefault("store.badger.path", filepath.Join(homeDir(), ".biorhythms", "data"))

	v.SetDefault("chart.span", 15)
	v.SetDefault("chart.width", 800)
	v.SetDefault("chart.height", 360)
	v.SetDefault("chart.max_span", 366)
	v.SetDefault("chart.max_size", 4096)
	v.SetDefault("chart.label_font_pts", 14)

	v.SetDefault("cache.max_entries", 256)
	v.SetDefault("cache.purge_interval_minutes", 60)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// Validate checks values that would make the server misbehave.
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case STORE_REDIS, STORE_BADGER, STORE_MEMORY:
	default:
		return fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}
	if c.Chart.Span < 0 || c.Chart.Span > c.Chart.MaxSpan {
		return fmt.Errorf("chart.span must be within [0, %d], got %d", c.Chart.MaxSpan, c.Chart.Span)
	}
	if c.Chart.Width <= 0 || c.Chart.Height <= 0 {
		return fmt.Errorf("chart size must be positive, got %dx%d", c.Chart.Width, c.Chart.Height)
	}
	if c.Cache.PurgeIntervalMinutes <= 0 {
		return fmt.Errorf("cache.purge_interval_minutes must be positive, got %d", c.Cache.PurgeIntervalMinutes)
	}
	return nil
}

func homeDir() string {
	if h, err := os.UserHomeDir(); err == nil {
		return h
	}
	return "."
}
