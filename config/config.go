package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pricelens/backend/internal/domain"
	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Sources   SourcesConfig   `mapstructure:"sources"`
	Cache     CacheConfig     `mapstructure:"cache"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Log       LogConfig       `mapstructure:"log"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// SourcesConfig holds the platform adapters to query
type SourcesConfig struct {
	Timeout   time.Duration    `mapstructure:"timeout"`
	Platforms []PlatformConfig `mapstructure:"platforms"`
}

// PlatformConfig describes one platform search endpoint
type PlatformConfig struct {
	Name    string `mapstructure:"name"`
	BaseURL string `mapstructure:"base_url"`
	Enabled bool   `mapstructure:"enabled"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	Type       string        `mapstructure:"type"` // only "memory" for now
	TTL        time.Duration `mapstructure:"ttl"`
	MaxEntries int           `mapstructure:"max_entries"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP     int     `mapstructure:"per_ip"`     // requests per minute per client
	PerSource float64 `mapstructure:"per_source"` // requests per second per platform
}

// LogConfig controls zap output
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "console" or "json"
}

// EnabledPlatforms returns the platforms with an endpoint switched on
func (c *Config) EnabledPlatforms() []PlatformConfig {
	var enabled []PlatformConfig
	for _, p := range c.Sources.Platforms {
		if p.Enabled {
			enabled = append(enabled, p)
		}
	}
	return enabled
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, eris.Wrap(err, "error reading .env file")
	}

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/pricelens/")

	v.SetEnvPrefix("PRICELENS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Config file is optional; env vars and defaults are enough to run
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, eris.Wrap(err, "error reading config file")
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, eris.Wrap(err, "unable to decode config")
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"chrome-extension://*"})

	// Source defaults
	v.SetDefault("sources.timeout", "8s")
	v.SetDefault("sources.platforms", []map[string]interface{}{})

	// Cache defaults
	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.ttl", "10m")
	v.SetDefault("cache.max_entries", 1000)

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 100)
	v.SetDefault("ratelimit.per_source", 5.0)

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Server.Port == "" {
		return fmt.Errorf("server port is required (set PRICELENS_SERVER_PORT)")
	}

	if config.Cache.Type != "memory" {
		return fmt.Errorf("cache type must be 'memory', got: %s", config.Cache.Type)
	}

	if config.Cache.TTL <= 0 {
		return fmt.Errorf("cache TTL must be positive, got: %s", config.Cache.TTL)
	}

	if config.Sources.Timeout <= 0 {
		return fmt.Errorf("source timeout must be positive, got: %s", config.Sources.Timeout)
	}

	if config.RateLimit.PerIP < 0 || config.RateLimit.PerSource < 0 {
		return fmt.Errorf("rate limits must not be negative")
	}

	if config.Log.Format != "console" && config.Log.Format != "json" {
		return fmt.Errorf("log format must be 'console' or 'json', got: %s", config.Log.Format)
	}

	seen := make(map[string]bool)
	for _, p := range config.Sources.Platforms {
		if !domain.IsKnownPlatform(p.Name) {
			return fmt.Errorf("unknown platform: %q", p.Name)
		}
		if seen[p.Name] {
			return fmt.Errorf("platform %q configured twice", p.Name)
		}
		seen[p.Name] = true
		if p.Enabled && p.BaseURL == "" {
			return fmt.Errorf("platform %q is enabled but has no base_url", p.Name)
		}
	}

	return nil
}

// loadEnvFile loads KEY=value pairs from ./.env into the process environment.
// Variables that are already set keep their values. A missing file is not an error.
func loadEnvFile() error {
	if _, err := os.Stat(".env"); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil {
		return err
	}

	for _, key := range v.AllKeys() {
		name := strings.ToUpper(key)
		if _, exists := os.LookupEnv(name); exists {
			continue
		}
		if err := os.Setenv(name, v.GetString(key)); err != nil {
			return err
		}
	}
	return nil
}

// InitLogger builds the global zap logger from the log configuration
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
