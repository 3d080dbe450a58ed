// Package config provides configuration types and defaults for printpos.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/zjrosen/printpositions/internal/log"
	"github.com/zjrosen/printpositions/printpos"
)

// Validation errors returned (wrapped) by Validate.
var (
	ErrInvalidWidth = errors.New("invalid width")
	ErrInvalidFill  = errors.New("invalid fill")
	ErrInvalidAlign = errors.New("invalid align")
	ErrInvalidLevel = errors.New("invalid log level")
)

// Config holds all configuration options for printpos.
type Config struct {
	Debug    bool         `mapstructure:"debug" yaml:"debug"`
	LogPath  string       `mapstructure:"log_path" yaml:"log_path"`
	LogLevel string       `mapstructure:"log_level" yaml:"log_level"`
	Layout   LayoutConfig `mapstructure:"layout" yaml:"layout"`
}

// LayoutConfig holds the defaults for the pad and truncate commands.
type LayoutConfig struct {
	Width         int    `mapstructure:"width" yaml:"width"`
	Fill          string `mapstructure:"fill" yaml:"fill"`
	Align         string `mapstructure:"align" yaml:"align"`                     // "left" (default), "right" or "center"
	Ellipsis      string `mapstructure:"ellipsis" yaml:"ellipsis"`               // appended by truncate when text is cut
	EastAsianWide bool   `mapstructure:"east_asian_wide" yaml:"east_asian_wide"` // ambiguous-width characters take two cells
}

// Options returns the printpos options implied by the layout settings.
func (l LayoutConfig) Options() []printpos.Option {
	return []printpos.Option{printpos.WithEastAsianWidth(l.EastAsianWide)}
}

// Alignment returns the parsed Align value, falling back to left alignment.
func (l LayoutConfig) Alignment() printpos.Align {
	a, err := printpos.ParseAlign(l.Align)
	if err != nil {
		return printpos.AlignLeft
	}
	return a
}

// Defaults returns a Config populated with default values.
func Defaults() Config {
	return Config{
		Debug:    false,
		LogPath:  "debug.log",
		LogLevel: "debug",
		Layout: LayoutConfig{
			Width:    20,
			Fill:     " ",
			Align:    "left",
			Ellipsis: "…",
		},
	}
}

// Validate checks the configuration for values the commands cannot use.
func (c Config) Validate() error {
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidLevel, err)
	}
	return ValidateLayout(c.Layout)
}

// ValidateLayout checks layout settings.
func ValidateLayout(l LayoutConfig) error {
	if l.Width < 0 {
		return fmt.Errorf("%w: %d must not be negative", ErrInvalidWidth, l.Width)
	}
	if n := printpos.Count(l.Fill); n != 1 {
		return fmt.Errorf("%w: %q must be exactly one print position, got %d", ErrInvalidFill, l.Fill, n)
	}
	if w := printpos.Width(l.Fill, l.Options()...); w < 1 {
		return fmt.Errorf("%w: %q has no visible width", ErrInvalidFill, l.Fill)
	}
	if _, err := printpos.ParseAlign(l.Align); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidAlign, err)
	}
	return nil
}

// DefaultConfigTemplate returns the commented YAML written by WriteDefaultConfig.
func DefaultConfigTemplate() string {
	return `# printpos configuration

# Write debug logs to log_path (also enabled by --debug or PRINTPOS_DEBUG=1)
debug: false
log_path: debug.log
log_level: debug          # debug, info, warn or error

# Defaults for the pad and truncate commands
layout:
  width: 20               # target width in terminal cells
  fill: " "               # one print position used to pad
  align: left             # left, right or center
  ellipsis: "…"           # appended when truncate cuts text
  east_asian_wide: false  # treat ambiguous-width characters as two cells
`
}

// WriteDefaultConfig creates a config file with default settings at the given path.
// Creates parent directories if they don't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
