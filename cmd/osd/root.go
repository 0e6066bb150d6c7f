package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/oklog/ulid/v2"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/osd/internal/config"
	"github.com/jmylchreest/osd/internal/model"
)

// Build-time variables (set via ldflags)
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

type options struct {
	value      string
	text       string
	icon       string
	configPath string
	snapshot   string
	writeTo    string
	debug      bool
}

// newRootCmd builds the osd command. Output is written to out and logs to logOut.
func newRootCmd(out, logOut io.Writer) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "osd [-v value] [-t text] [-i icon]",
		Short: "Transient on-screen display",
		Long: `osd shows a small translucent panel in the bottom-right corner of the
primary monitor with a circular gauge, a caption and an icon. The panel
stays for one second, fades out and exits.

The icon is looked up in the icon theme first and then loaded as a file.`,
		Example: `  osd -v 40 -t "Volume" -i audio-volume-medium
  osd -t "Muted" -i audio-volume-muted
  osd -v 75 -i ~/icons/brightness.png --snapshot preview.png
  osd --write-config ""`,
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildTime),
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("unknown argument: %s", args[0])
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := setupLogger(logOut, opts.debug)

			if cmd.Flags().Changed("write-config") {
				return writeConfig(cmd.OutOrStdout(), opts.configPath, opts.writeTo, logger)
			}

			content := contentFromFlags(cmd)
			if content.IsEmpty() {
				return cmd.Usage()
			}

			cfg, err := config.LoadConfig(opts.configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			logger.Debug("starting osd",
				"version", version,
				"percentage", content.Percentage.String(),
				"caption", content.Caption.String(),
				"icon", content.Icon.String(),
			)

			if opts.snapshot != "" {
				return runSnapshot(cfg, content, opts.snapshot, logger)
			}
			return runOverlay(cfg, content, logger)
		},
	}
	cmd.SetOut(out)
	cmd.SetErr(out)

	flags := cmd.Flags()
	flags.StringVarP(&opts.value, "value", "v", "", "Gauge value in percent (0-100)")
	flags.StringVarP(&opts.text, "text", "t", "", "Caption text")
	flags.StringVarP(&opts.icon, "icon", "i", "", "Icon theme name or image file path")
	flags.StringVar(&opts.configPath, "config", "",
		"Path to config file (default: ~/.config/osd/osd.toml)")
	flags.StringVar(&opts.snapshot, "snapshot", "",
		"Render one frame to a PNG file instead of showing a window")
	flags.StringVar(&opts.writeTo, "write-config", "",
		"Write the effective config to a file and exit (\"\" for the default path)")
	flags.BoolVar(&opts.debug, "debug", false, "Enable debug logging")

	return cmd
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}

// writeConfig saves the config loaded from src to dst. Empty paths mean
// the default config path.
func writeConfig(out io.Writer, src, dst string, logger *slog.Logger) error {
	cfg, err := config.LoadConfig(src)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if dst == "" {
		dst = config.ConfigPath()
	}
	if err := cfg.Save(dst); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	logger.Debug("config written", "path", dst)
	_, _ = fmt.Fprintf(out, "config written to %s\n", dst)
	return nil
}

// contentFromFlags maps each content flag that was given, even with an
// empty value, to a present channel.
func contentFromFlags(cmd *cobra.Command) model.Content {
	channel := func(name string) model.Channel {
		if !cmd.Flags().Changed(name) {
			return model.None()
		}
		value, _ := cmd.Flags().GetString(name)
		return model.Some(value)
	}
	return model.Content{
		Percentage: channel("value"),
		Caption:    channel("text"),
		Icon:       channel("icon"),
	}
}

// setupLogger configures the global slog logger. Every record carries the
// run's overlay_id.
func setupLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	})
	logger := slog.New(handler).With("overlay_id", ulid.Make().String())
	slog.SetDefault(logger)
	return logger
}
