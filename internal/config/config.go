// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"

	"recordbook/pkg/recordstore"
)

const (
	DefaultEnvPrefix = "RECORDBOOK"

	DefaultDataDir  = "."
	DefaultLogLevel = "info"

	DefaultMetricInterval = 30 * time.Second
)

// Config holds the settings shared by every recordbook program.
type Config struct {
	DataDir      string    `mapstructure:"data_dir"`
	LogLevel     string    `mapstructure:"log_level"`
	StrictLoad   bool      `mapstructure:"strict_load"`
	InPlaceEdits bool      `mapstructure:"in_place_edits"`
	Telemetry    Telemetry `mapstructure:"telemetry"`
}

// Telemetry configures trace and metric export. An empty Endpoint disables it.
type Telemetry struct {
	Endpoint       string        `mapstructure:"endpoint"`
	Insecure       bool          `mapstructure:"insecure"`
	ServiceName    string        `mapstructure:"service_name"`
	SampleRate     float64       `mapstructure:"sample_rate"`
	MetricInterval time.Duration `mapstructure:"metric_interval"`
}

// NewViper returns a viper instance with defaults and environment bindings
// for serviceName. Flags may be bound to it before Load is called.
func NewViper(serviceName string) *viper.Viper {
	v := viper.NewWithOptions(
		viper.KeyDelimiter("."),
		viper.EnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_")),
	)

	v.SetEnvPrefix(DefaultEnvPrefix)
	v.AutomaticEnv()

	_ = v.BindEnv("data_dir")
	v.SetDefault("data_dir", DefaultDataDir)

	_ = v.BindEnv("log_level")
	v.SetDefault("log_level", DefaultLogLevel)

	_ = v.BindEnv("strict_load")
	v.SetDefault("strict_load", false)

	_ = v.BindEnv("in_place_edits")
	v.SetDefault("in_place_edits", false)

	// Trace export
	_ = v.BindEnv("telemetry.endpoint")
	v.SetDefault("telemetry.endpoint", "")

	_ = v.BindEnv("telemetry.insecure")
	v.SetDefault("telemetry.insecure", true)

	_ = v.BindEnv("telemetry.service_name")
	v.SetDefault("telemetry.service_name", serviceName)

	_ = v.BindEnv("telemetry.sample_rate")
	v.SetDefault("telemetry.sample_rate", 1.0)

	_ = v.BindEnv("telemetry.metric_interval")
	v.SetDefault("telemetry.metric_interval", DefaultMetricInterval)

	return v
}

// Load reads the optional config file and decodes every setting.
func Load(v *viper.Viper, file string) (*Config, error) {
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", file, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the decoded settings.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.DataDir) == "" {
		return errors.New("data_dir must not be empty")
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	if c.Telemetry.SampleRate < 0 || c.Telemetry.SampleRate > 1 {
		return fmt.Errorf("telemetry.sample_rate must be within [0, 1], got %v", c.Telemetry.SampleRate)
	}
	if c.Telemetry.MetricInterval <= 0 {
		return fmt.Errorf("telemetry.metric_interval must be positive, got %v", c.Telemetry.MetricInterval)
	}
	return nil
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return level, fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	return level, nil
}

// StoreOptions translates the persistence settings into store options.
func (c *Config) StoreOptions() []recordstore.Option {
	var opts []recordstore.Option
	if c.StrictLoad {
		opts = append(opts, recordstore.WithStrictLoad())
	}
	if c.InPlaceEdits {
		opts = append(opts, recordstore.WithInPlaceUpdates())
	}
	return opts
}
