// Package config provides configuration loading from a YAML file and
// environment variables. Environment variables take precedence for dev flexibility.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the full application configuration, assembled from YAML + env.
type Config struct {
	Assets  AssetsConfig  `yaml:"assets"`
	Window  WindowConfig  `yaml:"window"`
	Gesture GestureConfig `yaml:"gesture"`
	Deck    DeckConfig    `yaml:"deck"`
}

// AssetsConfig points at the background and thumb images.
type AssetsConfig struct {
	Background string `yaml:"background,omitempty"`
	Thumb      string `yaml:"thumb,omitempty"`
	Height     int    `yaml:"height"` // used when rasterising SVG files
}

// WindowConfig holds desktop window settings.
type WindowConfig struct {
	Title string  `yaml:"title"`
	Scale float64 `yaml:"scale"`
}

// GestureConfig holds the host's tap classification budget.
type GestureConfig struct {
	TapSlop    int      `yaml:"tap_slop"`
	TapTimeout Duration `yaml:"tap_timeout"`
	LongPress  Duration `yaml:"long_press"`
}

// DeckConfig holds Stream Deck touch strip settings.
type DeckConfig struct {
	Brightness int `yaml:"brightness"`
	StripX     int `yaml:"strip_x"`
	StripWidth int `yaml:"strip_width"`
}

// Duration is a time.Duration written as a Go duration string in YAML.
type Duration time.Duration

// UnmarshalYAML parses strings like "300ms".
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*d = Duration(v)
	return nil
}

// MarshalYAML writes the duration as a string.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Assets: AssetsConfig{Height: 56},
		Window: WindowConfig{Title: "slideswitch", Scale: 2},
		Gesture: GestureConfig{
			TapSlop:    8,
			TapTimeout: Duration(300 * time.Millisecond),
			LongPress:  Duration(500 * time.Millisecond),
		},
		Deck: DeckConfig{Brightness: 80, StripX: 0, StripWidth: 400},
	}
}

// DefaultConfigDir returns the default config directory path.
func DefaultConfigDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "slideswitch")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	if p := os.Getenv("SLIDESWITCH_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(DefaultConfigDir(), "config.yaml")
}

// Load assembles configuration from the default config path plus
// environment variables.
func Load() (*Config, error) {
	return LoadFile(DefaultConfigPath())
}

// LoadFile assembles configuration from the given YAML file plus environment
// variables. A missing file is not an error; defaults are used instead.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	// 1. YAML file over defaults
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	// 2. Environment variables override everything
	if v := os.Getenv("SLIDESWITCH_BACKGROUND"); v != "" {
		cfg.Assets.Background = v
	}
	if v := os.Getenv("SLIDESWITCH_THUMB"); v != "" {
		cfg.Assets.Thumb = v
	}
	if v := os.Getenv("SLIDESWITCH_SCALE"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("SLIDESWITCH_SCALE: %w", err)
		}
		cfg.Window.Scale = f
	}
	if v := os.Getenv("SLIDESWITCH_BRIGHTNESS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("SLIDESWITCH_BRIGHTNESS: %w", err)
		}
		cfg.Deck.Brightness = n
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if (c.Assets.Background == "") != (c.Assets.Thumb == "") {
		return errors.New("assets: background and thumb must be set together")
	}
	if c.Assets.Height <= 0 {
		return fmt.Errorf("assets.height must be positive, got %d", c.Assets.Height)
	}
	if c.Window.Scale <= 0 {
		return fmt.Errorf("window.scale must be positive, got %g", c.Window.Scale)
	}
	if c.Gesture.TapSlop < 0 {
		return fmt.Errorf("gesture.tap_slop must not be negative, got %d", c.Gesture.TapSlop)
	}
	if c.Gesture.TapTimeout <= 0 || c.Gesture.LongPress <= 0 {
		return errors.New("gesture: tap_timeout and long_press must be positive")
	}
	if c.Deck.Brightness < 0 || c.Deck.Brightness > 100 {
		return fmt.Errorf("deck.brightness must be 0-100, got %d", c.Deck.Brightness)
	}
	if c.Deck.StripX < 0 || c.Deck.StripWidth <= 0 {
		return fmt.Errorf("deck: invalid strip region x=%d width=%d", c.Deck.StripX, c.Deck.StripWidth)
	}
	return nil
}

// WriteConfigFile writes cfg to the YAML file at path.
func WriteConfigFile(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	return os.WriteFile(path, data, 0o644)
}
