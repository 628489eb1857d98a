package astar

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel"
	"gopkg.in/yaml.v3"
)

// Config is the file/env representation of search options.
type Config struct {
	Search        SearchConfig        `yaml:"search"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// SearchConfig mirrors the search limits of Options.
type SearchConfig struct {
	Timeout       time.Duration `yaml:"timeout" validate:"gte=0"`
	MaxExpansions int           `yaml:"max_expansions" validate:"gte=0"`
	ClosedSet     bool          `yaml:"closed_set"`
}

type ObservabilityConfig struct {
	LogLevel       string `yaml:"log_level" validate:"oneof=debug info warn error"`
	TracingEnabled bool   `yaml:"tracing_enabled"`
	MetricsEnabled bool   `yaml:"metrics_enabled"`
}

var configValidate = validator.New()

// DefaultConfig returns the configuration matching DefaultOptions.
func DefaultConfig() Config {
	return Config{
		Search: SearchConfig{
			Timeout: DefaultTimeout,
		},
		Observability: ObservabilityConfig{
			LogLevel:       "info",
			TracingEnabled: false,
			MetricsEnabled: false,
		},
	}
}

// LoadConfig loads configuration with priority: env > file > defaults.
// An empty path or a missing file leaves the defaults in place.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()

	if path != "" {
		if err := loadConfigFile(path, &config); err != nil {
			return config, fmt.Errorf("load config file: %w", err)
		}
	}

	if err := loadConfigFromEnv(&config); err != nil {
		return config, fmt.Errorf("load config env: %w", err)
	}

	if err := config.Validate(); err != nil {
		return config, err
	}
	return config, nil
}

func loadConfigFile(path string, config *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := yaml.Unmarshal(data, config); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func loadConfigFromEnv(config *Config) error {
	if v := os.Getenv("ASTAR_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("ASTAR_TIMEOUT: %w", err)
		}
		config.Search.Timeout = d
	}
	if v := os.Getenv("ASTAR_MAX_EXPANSIONS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("ASTAR_MAX_EXPANSIONS: %w", err)
		}
		config.Search.MaxExpansions = n
	}
	if v := os.Getenv("ASTAR_CLOSED_SET"); v != "" {
		config.Search.ClosedSet = v == "true" || v == "1"
	}
	if v := os.Getenv("ASTAR_LOG_LEVEL"); v != "" {
		config.Observability.LogLevel = strings.ToLower(v)
	}
	if v := os.Getenv("ASTAR_TRACING_ENABLED"); v != "" {
		config.Observability.TracingEnabled = v == "true" || v == "1"
	}
	if v := os.Getenv("ASTAR_METRICS_ENABLED"); v != "" {
		config.Observability.MetricsEnabled = v == "true" || v == "1"
	}
	return nil
}

// Validate checks that the configuration is valid.
func (c Config) Validate() error {
	if err := configValidate.Struct(c); err != nil {
		return newError(KindInvalidConfig, "invalid configuration", err)
	}
	return nil
}

// Level maps the configured level name to a slog.Level.
func (c ObservabilityConfig) Level() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Options converts the configuration into search options.
// metrics is only attached when metrics are enabled.
func (c Config) Options(logger *slog.Logger, metrics *Metrics) []Option {
	options := []Option{
		WithTimeout(c.Search.Timeout),
		WithMaxExpansions(c.Search.MaxExpansions),
	}
	if c.Search.ClosedSet {
		options = append(options, WithClosedSet())
	}
	if logger != nil {
		options = append(options, WithLogger(logger))
	}
	if c.Observability.TracingEnabled {
		options = append(options, WithTracer(otel.Tracer(TracerName)))
	}
	if c.Observability.MetricsEnabled && metrics != nil {
		options = append(options, WithMetrics(metrics))
	}
	return options
}
