package main

import (
	"bytes"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/osd/internal/config"
	"github.com/jmylchreest/osd/internal/display"
	"github.com/jmylchreest/osd/internal/model"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	var out, logs bytes.Buffer
	cmd := newRootCmd(&out, &logs)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), logs.String(), err
}

func TestRoot_UnknownArgument(t *testing.T) {
	_, _, err := execute(t, "-v", "40", "stray")
	require.Error(t, err)
	assert.Equal(t, "unknown argument: stray", err.Error())
}

func TestRoot_NoContentPrintsUsage(t *testing.T) {
	out, _, err := execute(t)
	require.NoError(t, err)
	assert.Contains(t, out, "Usage:")
	assert.Contains(t, out, "--value")
}

func TestRoot_Version(t *testing.T) {
	out, _, err := execute(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, version)
}

func TestRoot_MissingFlagValue(t *testing.T) {
	_, _, err := execute(t, "-t")
	assert.Error(t, err)
}

func TestRoot_Snapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "osd.png")

	_, logs, err := execute(t, "-v", "50", "-t", "Volume", "-i", "no-such-icon", "--snapshot", path, "--debug")
	require.NoError(t, err)
	assert.Contains(t, logs, "overlay_id=")
	assert.Contains(t, logs, "snapshot written")

	f, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 200, img.Bounds().Dx())
	assert.Equal(t, 200, img.Bounds().Dy())
}

func TestRoot_SnapshotInvalidConfig(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "osd.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("[panel]\nbars = 0\n"), 0644))

	_, _, err := execute(t, "-v", "50", "--config", cfgPath, "--snapshot", filepath.Join(t.TempDir(), "x.png"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
}

func TestRoot_WriteConfig(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.toml")
	dst := filepath.Join(dir, "out", "osd.toml")
	require.NoError(t, os.WriteFile(src, []byte("[panel]\nbars = 24\n"), 0644))

	out, _, err := execute(t, "--config", src, "--write-config", dst)
	require.NoError(t, err)
	assert.Contains(t, out, "config written to "+dst)

	cfg, err := config.LoadConfig(dst)
	require.NoError(t, err)
	assert.Equal(t, 24, cfg.Panel.Bars)
}

func TestRoot_WriteConfigDefaultPath(t *testing.T) {
	home := t.TempDir()

	var out, logs bytes.Buffer
	t.Setenv("XDG_CONFIG_HOME", home)
	cmd := newRootCmd(&out, &logs)
	cmd.SetArgs([]string{"--write-config", ""})
	require.NoError(t, cmd.Execute())

	cfg, err := config.LoadConfig(filepath.Join(home, "osd", "osd.toml"))
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), cfg)
}

func TestRoot_WriteConfigInvalidSource(t *testing.T) {
	src := filepath.Join(t.TempDir(), "osd.toml")
	require.NoError(t, os.WriteFile(src, []byte("[panel]\nbars = 0\n"), 0644))

	_, _, err := execute(t, "--config", src, "--write-config", filepath.Join(t.TempDir(), "out.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
}

func TestExitError(t *testing.T) {
	assert.NoError(t, exitError(0, nil))

	err := exitError(1, nil)
	require.Error(t, err)
	assert.Equal(t, "application exited with status 1", err.Error())

	noDisplay := &display.DisplayError{Message: "no display available"}
	err = exitError(0, noDisplay)
	require.Error(t, err)
	var de *display.DisplayError
	assert.True(t, errors.As(err, &de))

	err = exitError(0, errors.New("failed to create overlay"))
	assert.EqualError(t, err, "failed to create overlay")
}

func TestContentFromFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want model.Content
	}{
		{
			name: "none",
			args: nil,
			want: model.Content{},
		},
		{
			name: "all",
			args: []string{"-v", "40", "--text", "Volume", "-i", "audio-volume-medium"},
			want: model.Content{
				Percentage: model.Some("40"),
				Caption:    model.Some("Volume"),
				Icon:       model.Some("audio-volume-medium"),
			},
		},
		{
			name: "empty value is present",
			args: []string{"-t", ""},
			want: model.Content{Caption: model.Some("")},
		},
		{
			name: "next token is consumed",
			args: []string{"-v", "-t"},
			want: model.Content{Percentage: model.Some("-t")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			cmd := newRootCmd(&out, &out)
			require.NoError(t, cmd.ParseFlags(tt.args))
			assert.Equal(t, tt.want, contentFromFlags(cmd))
		})
	}
}

func TestSetupLogger(t *testing.T) {
	var buf bytes.Buffer

	logger := setupLogger(&buf, false)
	logger.Debug("hidden")
	logger.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "overlay_id=")

	buf.Reset()
	logger = setupLogger(&buf, true)
	logger.Debug("visible")
	assert.Contains(t, buf.String(), "visible")
}
