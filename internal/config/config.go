// Package config resolves unionfind settings from flags, environment and an
// optional .unionfind.yaml through viper.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Output formats accepted by the format key.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// ErrInvalidFormat indicates the format key holds an unsupported value.
var ErrInvalidFormat = errors.New("invalid output format")

// Config holds all runtime configuration for a unionfind invocation.
// Values are populated from .unionfind.yaml, UNIONFIND_* env vars, and CLI flags.
type Config struct {
	Format        string        `mapstructure:"format"`
	Telemetry     string        `mapstructure:"telemetry"`
	Verbose       bool          `mapstructure:"verbose"`
	WatchDebounce time.Duration `mapstructure:"watch_debounce"`
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags.
func Load() (Config, error) {
	viper.SetDefault("format", FormatText)
	viper.SetDefault("telemetry", "")
	viper.SetDefault("verbose", false)
	viper.SetDefault("watch_debounce", 100*time.Millisecond)

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	switch cfg.Format {
	case FormatText, FormatJSON:
	default:
		return Config{}, fmt.Errorf("%w: %q (want %q or %q)", ErrInvalidFormat, cfg.Format, FormatText, FormatJSON)
	}
	return cfg, nil
}
