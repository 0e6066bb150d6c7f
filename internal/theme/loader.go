package theme

import (
	"log/slog"

	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
)

// Loader loads the overlay stylesheet into a GTK CSS provider.
type Loader struct {
	logger   *slog.Logger
	provider *gtk.CSSProvider
}

// NewLoader creates a new stylesheet loader.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		logger:   logger,
		provider: gtk.NewCSSProvider(),
	}
}

// Load resolves the stylesheet at path (see Resolve) into the provider.
// Failures fall back to the bundled stylesheet.
func (l *Loader) Load(path string) {
	t, err := Resolve(path)
	if err != nil {
		l.logger.Warn("failed to load user stylesheet, using bundled", "path", path, "error", err)
		t = NewDefaultTheme()
	}

	l.provider.LoadFromString(t.CSS)
	if t.IsDefault {
		l.logger.Debug("loaded bundled stylesheet", "name", t.Name)
	} else {
		l.logger.Debug("loaded user stylesheet", "name", t.Name, "path", t.Path)
	}
}

// Apply installs the provider on a display.
// This should be called after the GTK application is initialized.
func (l *Loader) Apply(display *gdk.Display) {
	if display == nil {
		display = gdk.DisplayGetDefault()
	}
	if display == nil {
		l.logger.Warn("no display available, cannot apply stylesheet")
		return
	}

	gtk.StyleContextAddProviderForDisplay(
		display,
		l.provider,
		gtk.STYLE_PROVIDER_PRIORITY_APPLICATION,
	)
}
