package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/osd/internal/osd"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 200, cfg.Panel.Width)
	assert.Equal(t, 200, cfg.Panel.Height)
	assert.Equal(t, 8, cfg.Panel.CornerRadius)
	assert.Equal(t, 24, cfg.Panel.Padding)
	assert.Equal(t, 64, cfg.Panel.Margin)
	assert.Equal(t, 42, cfg.Panel.FontSize)
	assert.Equal(t, "sans-serif", cfg.Panel.FontFamily)
	assert.Equal(t, 16, cfg.Panel.Bars)
	assert.Equal(t, 5, cfg.Panel.LineWidth)
	assert.Equal(t, 48, cfg.Panel.IconSize)
	assert.False(t, cfg.Audio.Enabled)
	assert.Equal(t, 80, cfg.Audio.Volume)
	assert.NoError(t, cfg.Validate())
}

func TestPanelConfig_Geometry(t *testing.T) {
	assert.Equal(t, osd.DefaultGeometry(), DefaultConfig().Panel.Geometry())
}

func TestLoadConfig_DefaultsWhenNoFile(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/osd.toml")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig_ParsesTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "osd.toml")

	content := `
[panel]
width = 240
height = 220
corner_radius = 12
margin = 32
font_family = "Inter"
bars = 20

[audio]
enabled = true
volume = 40
sound = "/usr/share/sounds/freedesktop/stereo/audio-volume-change.oga"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 240, cfg.Panel.Width)
	assert.Equal(t, 220, cfg.Panel.Height)
	assert.Equal(t, 12, cfg.Panel.CornerRadius)
	assert.Equal(t, 32, cfg.Panel.Margin)
	assert.Equal(t, "Inter", cfg.Panel.FontFamily)
	assert.Equal(t, 20, cfg.Panel.Bars)
	assert.True(t, cfg.Audio.Enabled)
	assert.Equal(t, 40, cfg.Audio.Volume)

	// Unchanged fields keep their defaults
	assert.Equal(t, 24, cfg.Panel.Padding)
	assert.Equal(t, 42, cfg.Panel.FontSize)
	assert.Equal(t, 5, cfg.Panel.LineWidth)
}

func TestLoadConfig_InvalidTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "osd.toml")
	require.NoError(t, os.WriteFile(path, []byte(`this is not valid toml [`), 0644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "osd.toml")
	require.NoError(t, os.WriteFile(path, []byte("[panel]\nbars = 0\n"), 0644))

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bars")
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{"defaults", func(c *Config) {}, ""},
		{"too narrow", func(c *Config) { c.Panel.Width = 10 }, "width"},
		{"too tall", func(c *Config) { c.Panel.Height = 5000 }, "height"},
		{"radius too large", func(c *Config) { c.Panel.CornerRadius = 101 }, "corner_radius"},
		{"negative radius", func(c *Config) { c.Panel.CornerRadius = -1 }, "corner_radius"},
		{"padding eats gauge", func(c *Config) { c.Panel.Padding = 70 }, "padding"},
		{"negative margin", func(c *Config) { c.Panel.Margin = -4 }, "margin"},
		{"zero font", func(c *Config) { c.Panel.FontSize = 0 }, "font_size"},
		{"blank font family", func(c *Config) { c.Panel.FontFamily = "  " }, "font_family"},
		{"too many bars", func(c *Config) { c.Panel.Bars = 361 }, "bars"},
		{"zero line width", func(c *Config) { c.Panel.LineWidth = 0 }, "line_width"},
		{"huge icon", func(c *Config) { c.Panel.IconSize = 1024 }, "icon_size"},
		{"volume too high", func(c *Config) { c.Audio.Volume = 101 }, "volume"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfig_Save(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "subdir", "osd.toml")

	cfg := DefaultConfig()
	cfg.Panel.Bars = 24
	cfg.Audio.Sound = "~/sounds/pop.wav"

	require.NoError(t, cfg.Save(path))

	_, err := os.Stat(path)
	require.NoError(t, err)
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file must be renamed away")

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 24, loaded.Panel.Bars)
	assert.Equal(t, "~/sounds/pop.wav", loaded.Audio.Sound)
}

func TestConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	assert.Equal(t, "/custom/config/osd/osd.toml", ConfigPath())
}

func TestConfigPathDefault(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")
	assert.Contains(t, ConfigPath(), filepath.Join("osd", "osd.toml"))
}

func TestAudioConfig_SoundPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	a := AudioConfig{Enabled: true, Sound: "~/sounds/pop.wav"}
	assert.Equal(t, filepath.Join(home, "sounds", "pop.wav"), a.SoundPath())

	a.Sound = "/abs/pop.wav"
	assert.Equal(t, "/abs/pop.wav", a.SoundPath())

	a.Enabled = false
	assert.Empty(t, a.SoundPath())
}
