// Package config handles configuration file loading and parsing.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/jmylchreest/osd/internal/osd"
)

// Config is the configuration for osd.
// Loaded from ~/.config/osd/osd.toml
type Config struct {
	Panel PanelConfig `toml:"panel"`
	Audio AudioConfig `toml:"audio"`
}

// PanelConfig contains the panel geometry. It is read once at startup.
type PanelConfig struct {
	Width        int    `toml:"width"`         // Panel width in pixels
	Height       int    `toml:"height"`        // Panel height in pixels
	CornerRadius int    `toml:"corner_radius"` // Background corner radius
	Padding      int    `toml:"padding"`       // Inner padding around gauge and caption
	Margin       int    `toml:"margin"`        // Distance from the screen's right and bottom edges
	FontSize     int    `toml:"font_size"`     // Caption font size
	FontFamily   string `toml:"font_family"`   // Caption font family
	Bars         int    `toml:"bars"`          // Gauge resolution
	LineWidth    int    `toml:"line_width"`    // Gauge bar thickness
	IconSize     int    `toml:"icon_size"`     // Longest icon side in pixels
}

// AudioConfig contains the optional sound played when the overlay appears.
type AudioConfig struct {
	Enabled bool   `toml:"enabled"`
	Volume  int    `toml:"volume"` // 0-100
	Sound   string `toml:"sound"`  // WAV, OGG or MP3 file
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	g := osd.DefaultGeometry()
	return &Config{
		Panel: PanelConfig{
			Width:        g.Width,
			Height:       g.Height,
			CornerRadius: g.CornerRadius,
			Padding:      g.Padding,
			Margin:       g.ScreenMargin,
			FontSize:     g.FontSize,
			FontFamily:   g.FontFamily,
			Bars:         g.Bars,
			LineWidth:    g.LineWidth,
			IconSize:     g.IconSize,
		},
		Audio: AudioConfig{
			Enabled: false,
			Volume:  80,
		},
	}
}

// ConfigPath returns the path to the config file.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func ConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "osd", "osd.toml")
}

// LoadConfig loads configuration from the specified path.
// If path is empty, uses the default config path.
// Returns default config if file doesn't exist.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults, then overlay with file contents
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the specified path.
// Creates parent directories if needed.
func (c *Config) Save(path string) error {
	if path == "" {
		path = ConfigPath()
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Write atomically via temp file
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return os.Rename(tmpPath, path)
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	p := c.Panel

	if p.Width < 50 || p.Width > 2000 {
		return fmt.Errorf("width must be between 50 and 2000, got %d", p.Width)
	}
	if p.Height < 50 || p.Height > 2000 {
		return fmt.Errorf("height must be between 50 and 2000, got %d", p.Height)
	}
	if p.CornerRadius < 0 || 2*p.CornerRadius > min(p.Width, p.Height) {
		return fmt.Errorf("corner_radius must be between 0 and half the panel size, got %d", p.CornerRadius)
	}
	if p.Padding < 0 || 3*p.Padding >= p.Height {
		return fmt.Errorf("padding must be non-negative and leave room for the gauge, got %d", p.Padding)
	}
	if p.Margin < 0 {
		return fmt.Errorf("margin must not be negative, got %d", p.Margin)
	}
	if p.FontSize < 1 || p.FontSize > 500 {
		return fmt.Errorf("font_size must be between 1 and 500, got %d", p.FontSize)
	}
	if strings.TrimSpace(p.FontFamily) == "" {
		return errors.New("font_family must not be empty")
	}
	if p.Bars < 1 || p.Bars > 360 {
		return fmt.Errorf("bars must be between 1 and 360, got %d", p.Bars)
	}
	if p.LineWidth < 1 || p.LineWidth > 100 {
		return fmt.Errorf("line_width must be between 1 and 100, got %d", p.LineWidth)
	}
	if p.IconSize < 1 || p.IconSize > 512 {
		return fmt.Errorf("icon_size must be between 1 and 512, got %d", p.IconSize)
	}

	if c.Audio.Volume < 0 || c.Audio.Volume > 100 {
		return fmt.Errorf("volume must be between 0 and 100, got %d", c.Audio.Volume)
	}

	return nil
}

// Geometry returns the panel geometry used to build an overlay.
func (p PanelConfig) Geometry() osd.Geometry {
	return osd.Geometry{
		Width:        p.Width,
		Height:       p.Height,
		CornerRadius: p.CornerRadius,
		Padding:      p.Padding,
		ScreenMargin: p.Margin,
		FontSize:     p.FontSize,
		FontFamily:   p.FontFamily,
		Bars:         p.Bars,
		LineWidth:    p.LineWidth,
		IconSize:     p.IconSize,
	}
}

// SoundPath returns the configured sound file with ~ expanded.
// Returns "" when audio is disabled.
func (a AudioConfig) SoundPath() string {
	if !a.Enabled {
		return ""
	}
	return expandPath(a.Sound)
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
