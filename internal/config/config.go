// File: internal/config/config.go
package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// Defaults carried over from the original randtype tool.
const (
	DefaultMaxMs      = 18
	DefaultMultiplier = 20000

	// LineMax bounds a single read, terminator included. A read therefore
	// yields at most LineMax-1 payload bytes.
	LineMax = 2048

	// MaxCharSetLen bounds the no-wait and wait sets.
	MaxCharSetLen = 136
	// MaxMarkerLen bounds the dump marker.
	MaxMarkerLen = 63
)

// ErrUsage marks configuration errors that should produce usage text and the
// usage exit status.
var ErrUsage = errors.New("invalid usage")

// Direction selects how a dump marker splits a line.
type Direction string

const (
	// DirectionNone means no dump marker is configured.
	DirectionNone Direction = ""
	// DirectionLeft prints the text before the marker instantly and types the rest.
	DirectionLeft Direction = "left"
	// DirectionRight types the text before the marker and prints the rest instantly.
	DirectionRight Direction = "right"
)

// Config holds the entire application configuration. It is built once at
// startup and treated as read-only afterwards.
type Config struct {
	Logger  LoggerConfig   `mapstructure:"logger" yaml:"logger"`
	Typing  TypingConfig   `mapstructure:"typing" yaml:"typing"`
	Dump    DumpConfig     `mapstructure:"dump" yaml:"dump"`
	Replace []Substitution `mapstructure:"replace" yaml:"replace"`
	Input   InputConfig    `mapstructure:"input" yaml:"input"`
	Stats   StatsConfig    `mapstructure:"stats" yaml:"stats"`
	// QuitAfterSeconds terminates the run after the given number of seconds. Zero disables it.
	QuitAfterSeconds uint `mapstructure:"quit_after" yaml:"quit_after"`
}

// LoggerConfig holds all the configuration for the logger.
type LoggerConfig struct {
	Level       string      `mapstructure:"level" yaml:"level"`
	Format      string      `mapstructure:"format" yaml:"format"`
	AddSource   bool        `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string      `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string      `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int         `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int         `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int         `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool        `mapstructure:"compress" yaml:"compress"`
	Colors      ColorConfig `mapstructure:"colors" yaml:"colors"`
}

// ColorConfig defines the color codes for different log levels.
type ColorConfig struct {
	Debug  string `mapstructure:"debug" yaml:"debug"`
	Info   string `mapstructure:"info" yaml:"info"`
	Warn   string `mapstructure:"warn" yaml:"warn"`
	Error  string `mapstructure:"error" yaml:"error"`
	DPanic string `mapstructure:"dpanic" yaml:"dpanic"`
	Panic  string `mapstructure:"panic" yaml:"panic"`
	Fatal  string `mapstructure:"fatal" yaml:"fatal"`
}

// TimingConfig is a (maximum, multiplier) pair. A delay drawn from it is
// between 1 and ceil(MaxMs) units of Multiplier microseconds.
type TimingConfig struct {
	MaxMs      float64 `mapstructure:"max_ms" yaml:"max_ms"`
	Multiplier uint    `mapstructure:"multiplier" yaml:"multiplier"`
}

// TypingConfig configures the character level simulation.
type TypingConfig struct {
	General TimingConfig `mapstructure:"general" yaml:"general"`
	Delayed TimingConfig `mapstructure:"delayed" yaml:"delayed"`
	NoWait  string       `mapstructure:"no_wait" yaml:"no_wait"`
	Wait    string       `mapstructure:"wait" yaml:"wait"`
	// Mistakes is the number of mistake draws per character. Zero disables mistakes.
	Mistakes uint `mapstructure:"mistakes" yaml:"mistakes"`
	// LineMode applies the general delay per line and skips all character level logic.
	LineMode bool `mapstructure:"line_mode" yaml:"line_mode"`
	// MaxCPS caps emitted characters per second. Zero disables the cap.
	MaxCPS float64 `mapstructure:"max_cps" yaml:"max_cps"`
}

// DumpConfig describes the dump marker.
type DumpConfig struct {
	Marker    string    `mapstructure:"marker" yaml:"marker"`
	Direction Direction `mapstructure:"direction" yaml:"direction"`
	Kill      bool      `mapstructure:"kill" yaml:"kill"`
}

// Enabled reports whether a dump marker is configured.
func (d DumpConfig) Enabled() bool {
	return d.Marker != "" && d.Direction != DirectionNone
}

// Substitution is a single find/replace pair applied to every line.
type Substitution struct {
	Find    string `mapstructure:"find" yaml:"find"`
	Replace string `mapstructure:"replace" yaml:"replace"`
}

// InputConfig controls how sources are opened.
type InputConfig struct {
	// Decompress enables transparent gzip, zlib and brotli decoding.
	Decompress bool `mapstructure:"decompress" yaml:"decompress"`
	// Follow keeps typing lines appended to regular files after EOF.
	Follow bool `mapstructure:"follow" yaml:"follow"`
}

// StatsConfig configures the end of run session report.
type StatsConfig struct {
	File   string `mapstructure:"file" yaml:"file"`
	Format string `mapstructure:"format" yaml:"format"`
}

// NewDefaultConfig creates a new configuration struct populated with default values.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return &cfg
}

// SetDefaults initializes default values for various configuration parameters.
func SetDefaults(v *viper.Viper) {
	// -- Logger --
	// stdout carries the typed text, so logs stay quiet unless asked for.
	v.SetDefault("logger.level", "warn")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "randtype")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 10)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 7)
	v.SetDefault("logger.compress", true)
	v.SetDefault("logger.colors.debug", "cyan")
	v.SetDefault("logger.colors.info", "green")
	v.SetDefault("logger.colors.warn", "yellow")
	v.SetDefault("logger.colors.error", "red")

	// -- Typing --
	v.SetDefault("typing.general.max_ms", DefaultMaxMs)
	v.SetDefault("typing.general.multiplier", DefaultMultiplier)
	v.SetDefault("typing.delayed.max_ms", DefaultMaxMs)
	v.SetDefault("typing.delayed.multiplier", DefaultMultiplier)
	v.SetDefault("typing.no_wait", "")
	v.SetDefault("typing.wait", "")
	v.SetDefault("typing.mistakes", 0)
	v.SetDefault("typing.line_mode", false)
	v.SetDefault("typing.max_cps", 0)

	// -- Dump --
	v.SetDefault("dump.marker", "")
	v.SetDefault("dump.direction", string(DirectionNone))
	v.SetDefault("dump.kill", false)

	// -- Input --
	v.SetDefault("input.decompress", true)
	v.SetDefault("input.follow", false)

	// -- Stats --
	v.SetDefault("stats.file", "")
	v.SetDefault("stats.format", "json")

	v.SetDefault("quit_after", 0)
}

// NewConfigFromViper creates a new configuration instance from a viper object.
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// normalize applies the bounds and fallbacks of the original tool.
func (c *Config) normalize() {
	if c.Typing.General.Multiplier == 0 {
		c.Typing.General.Multiplier = DefaultMultiplier
	}
	if c.Typing.Delayed.Multiplier == 0 {
		c.Typing.Delayed.Multiplier = DefaultMultiplier
	}
	c.Typing.NoWait = truncate(c.Typing.NoWait, MaxCharSetLen)
	c.Typing.Wait = truncate(c.Typing.Wait, MaxCharSetLen)
	c.Dump.Marker = truncate(c.Dump.Marker, MaxMarkerLen)
}

// Validate checks the configuration for required fields and sane values.
func (c *Config) Validate() error {
	if c.Typing.General.MaxMs < 0 {
		return fmt.Errorf("%w: typing.general.max_ms must not be negative", ErrUsage)
	}
	if c.Typing.Delayed.MaxMs < 0 {
		return fmt.Errorf("%w: typing.delayed.max_ms must not be negative", ErrUsage)
	}
	if c.Typing.MaxCPS < 0 {
		return fmt.Errorf("%w: typing.max_cps must not be negative", ErrUsage)
	}
	switch c.Dump.Direction {
	case DirectionNone, DirectionLeft, DirectionRight:
	default:
		return fmt.Errorf("%w: dump.direction must be %q or %q", ErrUsage, DirectionLeft, DirectionRight)
	}
	if c.Dump.Direction != DirectionNone && c.Dump.Marker == "" {
		return fmt.Errorf("%w: dump.marker is required when dump.direction is set", ErrUsage)
	}
	for i, sub := range c.Replace {
		if sub.Find == "" {
			return fmt.Errorf("%w: replace[%d].find must not be empty", ErrUsage, i)
		}
	}
	switch c.Stats.Format {
	case "", "json", "text":
	default:
		return fmt.Errorf("%w: stats.format must be json or text", ErrUsage)
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
