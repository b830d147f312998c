// Filename: internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/strobelight/pagemotor/internal/motor"
)

// Config holds the entire application configuration.
type Config struct {
	Logger  LoggerConfig  `mapstructure:"logger" yaml:"logger"`
	Engine  EngineConfig  `mapstructure:"engine" yaml:"engine"`
	Browser BrowserConfig `mapstructure:"browser" yaml:"browser"`
}

// LoggerConfig configures the process logger.
type LoggerConfig struct {
	Level       string `mapstructure:"level" yaml:"level"`
	Format      string `mapstructure:"format" yaml:"format"`
	ServiceName string `mapstructure:"service_name" yaml:"service_name"`
	AddSource   bool   `mapstructure:"add_source" yaml:"add_source"`

	// File output, rotated by lumberjack. Empty disables it.
	LogFile    string `mapstructure:"log_file" yaml:"log_file"`
	MaxSize    int    `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge     int    `mapstructure:"max_age" yaml:"max_age"`
	Compress   bool   `mapstructure:"compress" yaml:"compress"`
}

// EngineConfig mirrors the motor knobs in file-friendly units.
type EngineConfig struct {
	LayoutShiftThreshold float64       `mapstructure:"layout_shift_threshold" yaml:"layout_shift_threshold"`
	SpiralSearchAttempts int           `mapstructure:"spiral_search_attempts" yaml:"spiral_search_attempts"`
	MaxRetries           int           `mapstructure:"max_retries" yaml:"max_retries"`
	BaseDelay            time.Duration `mapstructure:"base_delay" yaml:"base_delay"`
	PollInterval         time.Duration `mapstructure:"poll_interval" yaml:"poll_interval"`
	StabilityTimeout     time.Duration `mapstructure:"stability_timeout" yaml:"stability_timeout"`
}

// Motor converts the file shape into the engine's immutable config.
// Zero-valued fields fall through to the engine defaults.
func (e EngineConfig) Motor() motor.Config {
	return motor.Config{
		LayoutShiftThreshold: e.LayoutShiftThreshold,
		SpiralSearchAttempts: e.SpiralSearchAttempts,
		MaxRetries:           e.MaxRetries,
		BaseDelay:            e.BaseDelay,
		PollInterval:         e.PollInterval,
		StabilityTimeout:     e.StabilityTimeout,
	}
}

// BrowserConfig configures the chromedp session adapter.
type BrowserConfig struct {
	Headless          bool          `mapstructure:"headless" yaml:"headless"`
	UserAgent         string        `mapstructure:"user_agent" yaml:"user_agent"`
	WindowWidth       int           `mapstructure:"window_width" yaml:"window_width"`
	WindowHeight      int           `mapstructure:"window_height" yaml:"window_height"`
	NavigationTimeout time.Duration `mapstructure:"navigation_timeout" yaml:"navigation_timeout"`

	// ProbeRate caps CDP roundtrips per second so polling loops cannot
	// flood the devtools socket. Zero disables the limiter.
	ProbeRate float64 `mapstructure:"probe_rate" yaml:"probe_rate"`
}

// setDefaults registers every knob so a missing config file still
// yields a fully usable configuration.
func setDefaults(v *viper.Viper) {
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.service_name", "pagemotor")
	v.SetDefault("logger.max_size", 50)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 14)

	d := motor.DefaultConfig()
	v.SetDefault("engine.layout_shift_threshold", d.LayoutShiftThreshold)
	v.SetDefault("engine.spiral_search_attempts", d.SpiralSearchAttempts)
	v.SetDefault("engine.max_retries", d.MaxRetries)
	v.SetDefault("engine.base_delay", d.BaseDelay)
	v.SetDefault("engine.poll_interval", d.PollInterval)
	v.SetDefault("engine.stability_timeout", d.StabilityTimeout)

	v.SetDefault("browser.headless", true)
	v.SetDefault("browser.window_width", 1366)
	v.SetDefault("browser.window_height", 900)
	v.SetDefault("browser.navigation_timeout", 90*time.Second)
	v.SetDefault("browser.probe_rate", 40.0)
}

// Load reads configuration from the given file (or ./config.yaml when
// empty), layered under PAGEMOTOR_* environment overrides. A missing
// file is not an error; defaults carry the day.
func Load(v *viper.Viper, cfgFile string) (*Config, error) {
	setDefaults(v)

	if cfgFile != "" {
		path, err := homedir.Expand(cfgFile)
		if err != nil {
			return nil, fmt.Errorf("expanding config path: %w", err)
		}
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("PAGEMOTOR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// The implicit ./config.yaml may be absent; an unreadable or
		// malformed file is always fatal.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	return &cfg, nil
}
