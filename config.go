package aeony

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Config configures an Engine.
type Config struct {
	Window  WindowConfig  `toml:"window" yaml:"window"`
	View    ViewConfig    `toml:"view" yaml:"view"`
	Loop    LoopConfig    `toml:"loop" yaml:"loop"`
	Logging LoggingConfig `toml:"logging" yaml:"logging"`
}

// WindowConfig sets up the OS window and the tick rate.
type WindowConfig struct {
	Title     string `toml:"title" yaml:"title"`
	Width     int    `toml:"width" yaml:"width"`
	Height    int    `toml:"height" yaml:"height"`
	Resizable bool   `toml:"resizable" yaml:"resizable"`
	TPS       int    `toml:"tps" yaml:"tps"` // ticks per second

	ScreenshotDir string `toml:"screenshot_dir" yaml:"screenshot_dir"`
}

// ViewConfig sets the design resolution and how it is scaled to the window.
type ViewConfig struct {
	DesignWidth  int     `toml:"design_width" yaml:"design_width"`
	DesignHeight int     `toml:"design_height" yaml:"design_height"`
	ScaleMode    string  `toml:"scale_mode" yaml:"scale_mode"` // fit_view, fit_width, fit_height, no_scale, stretch
	AnchorX      float64 `toml:"anchor_x" yaml:"anchor_x"`     // 0 = left, 0.5 = center, 1 = right
	AnchorY      float64 `toml:"anchor_y" yaml:"anchor_y"`
}

// LoopConfig bounds the per-frame update.
type LoopConfig struct {
	MaxDelta float64 `toml:"max_delta" yaml:"max_delta"` // seconds; longer frames are clamped
}

// LoggingConfig selects the log level and format, and scene debug stats.
type LoggingConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"` // "json" or "console"
	Debug  bool   `toml:"debug" yaml:"debug"`   // per-draw scene stats
}

// DefaultConfig returns the configuration used when no file overrides it.
func DefaultConfig() Config {
	return *defaults()
}

// LoadConfig reads a TOML or YAML file (chosen by extension) on top of the
// defaults and validates the result.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := defaults()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		return nil, fmt.Errorf("load config %s: unsupported extension %q", path, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports every invalid field.
func (c *Config) Validate() error {
	var errs []error
	if c.View.DesignWidth <= 0 || c.View.DesignHeight <= 0 {
		errs = append(errs, fmt.Errorf("view design size %dx%d: %w",
			c.View.DesignWidth, c.View.DesignHeight, ErrInvalidDesignSize))
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d: %w",
			c.Window.Width, c.Window.Height, ErrZeroWindowSize))
	}
	if _, err := ScaleModeByName(c.View.ScaleMode); err != nil {
		errs = append(errs, err)
	}
	if c.Window.TPS <= 0 {
		errs = append(errs, fmt.Errorf("window tps %d must be positive", c.Window.TPS))
	}
	if c.Loop.MaxDelta <= 0 {
		errs = append(errs, fmt.Errorf("loop max_delta %g must be positive", c.Loop.MaxDelta))
	}
	return errors.Join(errs...)
}

func defaults() *Config {
	return &Config{
		Window: WindowConfig{
			Title:     "aeony",
			Width:     800,
			Height:    600,
			Resizable: true,
			TPS:       60,

			ScreenshotDir: "screenshots",
		},
		View: ViewConfig{
			DesignWidth:  800,
			DesignHeight: 600,
			ScaleMode:    "fit_view",
			AnchorX:      0.5,
			AnchorY:      0.5,
		},
		Loop: LoopConfig{
			MaxDelta: 0.033, // 30 FPS
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
