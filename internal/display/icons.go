package display

import (
	"fmt"

	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gdkpixbuf/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/jmylchreest/osd/internal/osd"
)

type pixbufIcon struct {
	pixbuf *gdkpixbuf.Pixbuf
}

func (p *pixbufIcon) Size() (int, int) {
	return p.pixbuf.Width(), p.pixbuf.Height()
}

// Icons resolves icons through the display's GTK icon theme and loads
// files with gdk-pixbuf.
type Icons struct {
	theme *gtk.IconTheme
}

var _ osd.IconSource = (*Icons)(nil)

// NewIcons creates an icon source for display.
func NewIcons(display *gdk.Display) *Icons {
	var theme *gtk.IconTheme
	if display != nil {
		theme = gtk.IconThemeGetForDisplay(display)
	}
	return &Icons{theme: theme}
}

// LookupIcon loads the themed icon name at size pixels.
func (i *Icons) LookupIcon(name string, size int) (osd.Icon, error) {
	if i.theme == nil {
		return nil, fmt.Errorf("%w: no icon theme", osd.ErrIconNotFound)
	}
	// LookupIcon always returns a paintable, substituting image-missing.
	if !i.theme.HasIcon(name) {
		return nil, fmt.Errorf("%w: %q not in theme %q", osd.ErrIconNotFound, name, i.theme.ThemeName())
	}

	paintable := i.theme.LookupIcon(name, nil, size, 1, gtk.TextDirNone, 0)
	file := paintable.File()
	if file == nil {
		return nil, fmt.Errorf("%w: %q has no backing file", osd.ErrIconNotFound, name)
	}
	path := file.Path()
	if path == "" {
		return nil, fmt.Errorf("%w: %q is not a local file", osd.ErrIconNotFound, name)
	}

	pixbuf, err := gdkpixbuf.NewPixbufFromFileAtSize(path, size, size)
	if err != nil {
		return nil, fmt.Errorf("failed to load themed icon %s: %w", path, err)
	}
	return &pixbufIcon{pixbuf: pixbuf}, nil
}

// LoadIconFile loads an image file at its natural size.
func (i *Icons) LoadIconFile(path string) (osd.Icon, error) {
	pixbuf, err := gdkpixbuf.NewPixbufFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load icon file: %w", err)
	}
	return &pixbufIcon{pixbuf: pixbuf}, nil
}
