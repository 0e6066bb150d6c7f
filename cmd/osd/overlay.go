package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/diamondburned/gotk4-adwaita/pkg/adw"
	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gio/v2"

	"github.com/jmylchreest/osd/internal/audio"
	"github.com/jmylchreest/osd/internal/config"
	"github.com/jmylchreest/osd/internal/display"
	"github.com/jmylchreest/osd/internal/model"
	"github.com/jmylchreest/osd/internal/osd"
	"github.com/jmylchreest/osd/internal/theme"
)

const appID = "io.github.jmylchreest.osd"

// runOverlay shows the overlay and blocks until it has been destroyed.
func runOverlay(cfg *config.Config, content model.Content, logger *slog.Logger) error {
	geom := cfg.Panel.Geometry()

	// Every invocation shows its own overlay.
	app := adw.NewApplication(appID, gio.ApplicationNonUnique)

	var (
		player  *audio.Player
		runErr  error
		started bool
	)

	app.ConnectActivate(func() {
		if started {
			return
		}
		started = true

		gdkDisplay := gdk.DisplayGetDefault()
		if gdkDisplay == nil {
			runErr = &display.DisplayError{Message: "no display available"}
			app.Quit()
			return
		}

		caps := display.Probe(gdkDisplay)
		logger.Debug("display probed", "capabilities", caps.String())

		styles := theme.NewLoader(logger)
		styles.Load(theme.StylePath())
		styles.Apply(gdkDisplay)

		renderer := osd.NewRenderer(geom, content, display.NewIcons(gdkDisplay), logger)

		var ctrl *osd.Controller
		overlay, err := display.NewOverlay(&app.Application, gdkDisplay, geom, caps, func(cv osd.Canvas) {
			renderer.Draw(cv, ctrl.Frame())
		}, logger)
		if err != nil {
			runErr = fmt.Errorf("failed to create overlay: %w", err)
			app.Quit()
			return
		}

		ctrl = osd.NewController(overlay, display.Scheduler{}, caps, logger)
		ctrl.OnDestroyed(func() {
			logger.Debug("overlay finished")
		})

		overlay.Present()
		ctrl.Start()

		if path := cfg.Audio.SoundPath(); path != "" {
			player = audio.NewPlayer(logger)
			player.SetVolume(float64(cfg.Audio.Volume) / 100)
			player.PlayAsync(path)
		}
	})

	// GApplication must not see osd's own flags.
	status := app.Run(os.Args[:1])

	if player != nil {
		// The overlay may be gone before the sound is.
		ctx, cancel := context.WithTimeout(context.Background(), audio.DrainTimeout)
		if err := player.Wait(ctx); err != nil {
			logger.Warn("sound cut short", "error", err)
		}
		cancel()
		player.Close()
	}

	return exitError(status, runErr)
}

// exitError folds the application status and any activation failure into
// the command's error.
func exitError(status int, runErr error) error {
	if runErr != nil {
		return runErr
	}
	if status != 0 {
		return fmt.Errorf("application exited with status %d", status)
	}
	return nil
}
