package raster

import (
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	// Register decoders for standard formats.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/jmylchreest/osd/internal/osd"
)

// Image is a decoded icon.
type Image struct {
	src image.Image
}

// Size returns the image dimensions in pixels.
func (i *Image) Size() (int, int) {
	b := i.src.Bounds()
	return b.Dx(), b.Dy()
}

// IconSource resolves icons from freedesktop icon theme directories on disk.
type IconSource struct {
	logger *slog.Logger

	// Dirs are icon base directories, searched in order.
	Dirs []string
	// Themes are theme names tried in order within each base directory.
	Themes []string
	// SVGSize is the pixel size SVG files are rasterized at when loaded by path.
	SVGSize int
}

var _ osd.IconSource = (*IconSource)(nil)

// imageExts marks references that name a decodable file rather than a
// theme icon.
var imageExts = map[string]bool{
	".png": true, ".svg": true, ".jpg": true, ".jpeg": true,
	".gif": true, ".bmp": true, ".webp": true,
}

// isIconName reports whether ref is looked up in the icon theme.
func isIconName(ref string) bool {
	return ref != "" &&
		!strings.ContainsRune(ref, filepath.Separator) &&
		!imageExts[strings.ToLower(filepath.Ext(ref))]
}

// NewIconSource creates an icon source over the XDG icon directories.
func NewIconSource(logger *slog.Logger) *IconSource {
	if logger == nil {
		logger = slog.Default()
	}
	return &IconSource{
		logger:  logger,
		Dirs:    IconDirs(),
		Themes:  []string{"hicolor", "Adwaita"},
		SVGSize: 48,
	}
}

// IconDirs returns the icon base directories in lookup order:
// $XDG_DATA_HOME/icons, ~/.icons, each of $XDG_DATA_DIRS/icons, then
// /usr/share/pixmaps.
func IconDirs() []string {
	var dirs []string

	dataHome := os.Getenv("XDG_DATA_HOME")
	home, _ := os.UserHomeDir()
	if dataHome == "" && home != "" {
		dataHome = filepath.Join(home, ".local", "share")
	}
	if dataHome != "" {
		dirs = append(dirs, filepath.Join(dataHome, "icons"))
	}
	if home != "" {
		dirs = append(dirs, filepath.Join(home, ".icons"))
	}

	dataDirs := os.Getenv("XDG_DATA_DIRS")
	if dataDirs == "" {
		dataDirs = "/usr/local/share:/usr/share"
	}
	for _, d := range strings.Split(dataDirs, ":") {
		if d != "" {
			dirs = append(dirs, filepath.Join(d, "icons"))
		}
	}

	return append(dirs, "/usr/share/pixmaps")
}

// LookupIcon finds a themed icon by name, preferring an exact size match,
// then scalable SVG, then any size.
func (s *IconSource) LookupIcon(name string, size int) (osd.Icon, error) {
	if !isIconName(name) {
		return nil, fmt.Errorf("%w: %q is not an icon name", osd.ErrIconNotFound, name)
	}

	for _, path := range s.candidates(name, size) {
		icon, err := s.load(path, size)
		if err != nil {
			s.logger.Debug("skipping unreadable theme icon", "path", path, "error", err)
			continue
		}
		return icon, nil
	}
	return nil, fmt.Errorf("%w: %q in themes %v", osd.ErrIconNotFound, name, s.Themes)
}

// candidates lists existing files that could provide the named icon.
func (s *IconSource) candidates(name string, size int) []string {
	sizeDir := strconv.Itoa(size) + "x" + strconv.Itoa(size)
	var patterns []string
	for _, dir := range s.Dirs {
		for _, theme := range s.Themes {
			base := filepath.Join(dir, theme)
			patterns = append(patterns,
				filepath.Join(base, sizeDir, "*", name+".png"),
				filepath.Join(base, "scalable", "*", name+".svg"),
				filepath.Join(base, "*", "*", name+".png"),
				filepath.Join(base, "*", "*", name+".svg"),
			)
		}
		patterns = append(patterns,
			filepath.Join(dir, name+".png"),
			filepath.Join(dir, name+".svg"),
		)
	}

	var found []string
	seen := make(map[string]bool)
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			continue
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				found = append(found, m)
			}
		}
	}
	return found
}

// LoadIconFile decodes an image file. SVG files are rasterized at SVGSize.
func (s *IconSource) LoadIconFile(path string) (osd.Icon, error) {
	return s.load(path, s.SVGSize)
}

func (s *IconSource) load(path string, svgSize int) (*Image, error) {
	if strings.EqualFold(filepath.Ext(path), ".svg") {
		return loadSVG(path, svgSize)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open icon: %w", err)
	}
	defer func() { _ = f.Close() }()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode icon %s: %w", path, err)
	}
	return &Image{src: img}, nil
}

// loadSVG rasterizes an SVG so its longest side is size pixels.
func loadSVG(path string, size int) (*Image, error) {
	icon, err := oksvg.ReadIcon(path, oksvg.WarnErrorMode)
	if err != nil {
		return nil, fmt.Errorf("failed to parse svg %s: %w", path, err)
	}
	if size <= 0 {
		size = 48
	}

	w, h := size, size
	if vb := icon.ViewBox; vb.W > 0 && vb.H > 0 {
		if vb.W >= vb.H {
			h = max(1, int(float64(size)*vb.H/vb.W+0.5))
		} else {
			w = max(1, int(float64(size)*vb.W/vb.H+0.5))
		}
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	icon.SetTarget(0, 0, float64(w), float64(h))
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	raster := rasterx.NewDasher(w, h, scanner)
	icon.Draw(raster, 1.0)

	return &Image{src: img}, nil
}
