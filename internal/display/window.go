package display

import (
	"log/slog"

	"github.com/diamondburned/gotk4/pkg/cairo"
	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/jmylchreest/osd/internal/osd"
	"github.com/jmylchreest/osd/internal/theme"
)

// Title is the overlay window title.
const Title = "OSD"

// DrawFunc paints one frame onto a canvas.
type DrawFunc func(cv osd.Canvas)

// Overlay is the undecorated, input-transparent window that hosts the panel.
type Overlay struct {
	window *gtk.Window
	area   *gtk.DrawingArea
	logger *slog.Logger

	destroyed bool
}

var _ osd.Window = (*Overlay)(nil)

// NewOverlay creates the overlay window for app on display. It is placed
// and styled but not shown until Present.
func NewOverlay(app *gtk.Application, display *gdk.Display, geom osd.Geometry, caps osd.Capabilities, draw DrawFunc, logger *slog.Logger) (*Overlay, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if display == nil {
		return nil, &DisplayError{Message: "no display available"}
	}

	o := &Overlay{logger: logger}

	o.window = gtk.NewWindow()
	o.window.SetApplication(app)
	o.window.SetTitle(Title)
	o.window.SetDecorated(false)
	o.window.SetResizable(false)
	o.window.SetDefaultSize(geom.Width, geom.Height)
	o.window.SetSizeRequest(geom.Width, geom.Height)

	// No clicks, no focus.
	o.window.SetCanTarget(false)
	o.window.SetCanFocus(false)
	o.window.SetFocusable(false)

	o.window.AddCSSClass(theme.ClassWindow)
	if caps.SupportsCompositing() {
		o.window.AddCSSClass(theme.ClassTranslucent)
	}

	o.area = gtk.NewDrawingArea()
	o.area.SetContentWidth(geom.Width)
	o.area.SetContentHeight(geom.Height)
	o.area.SetCanTarget(false)
	o.area.SetDrawFunc(func(_ *gtk.DrawingArea, cr *cairo.Context, _, _ int) {
		draw(NewCanvas(cr))
	})
	o.window.SetChild(o.area)

	placeWindow(o.window, display, geom, logger)

	o.window.ConnectDestroy(func() {
		o.destroyed = true
	})

	logger.Debug("overlay window created", "capabilities", caps.String())
	return o, nil
}

// Present shows the window.
func (o *Overlay) Present() {
	o.window.Present()
}

// QueueDraw schedules a redraw of the panel.
func (o *Overlay) QueueDraw() {
	if o.destroyed {
		return
	}
	o.area.QueueDraw()
}

// Destroy closes the window. The application quits once no windows remain.
func (o *Overlay) Destroy() {
	if o.destroyed {
		return
	}
	o.destroyed = true
	o.window.Destroy()
}

// DisplayError represents a display-related error.
type DisplayError struct {
	Message string
	Cause   error
}

func (e *DisplayError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *DisplayError) Unwrap() error {
	return e.Cause
}
