package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/jmylchreest/osd/internal/config"
	"github.com/jmylchreest/osd/internal/model"
	"github.com/jmylchreest/osd/internal/osd"
	"github.com/jmylchreest/osd/internal/raster"
)

// runSnapshot renders a single fully opaque frame to a PNG file.
func runSnapshot(cfg *config.Config, content model.Content, path string, logger *slog.Logger) error {
	geom := cfg.Panel.Geometry()

	cv, err := raster.NewCanvas(geom.Width, geom.Height)
	if err != nil {
		return fmt.Errorf("failed to create canvas: %w", err)
	}

	icons := raster.NewIconSource(logger)
	icons.SVGSize = geom.IconSize

	osd.NewRenderer(geom, content, icons, logger).Draw(cv, osd.Frame{Opacity: 1})

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create snapshot: %w", err)
	}
	if err := cv.WritePNG(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}

	logger.Debug("snapshot written", "path", path)
	return nil
}
