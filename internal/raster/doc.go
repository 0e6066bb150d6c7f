// Package raster renders overlay frames without a display server.
// Canvas implements the panel drawing operations on top of rasterx and
// x/image; IconSource resolves theme icons and image files from disk.
// It backs the --snapshot mode.
package raster
