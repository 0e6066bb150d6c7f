package display

import (
	"github.com/diamondburned/gotk4/pkg/gdk/v4"

	"github.com/jmylchreest/osd/internal/osd"
)

// Probe reports whether the display can show a translucent window.
// A nil display reports no capabilities.
func Probe(display *gdk.Display) osd.Capabilities {
	if display == nil {
		return osd.Capabilities{}
	}
	return osd.Capabilities{
		RGBA:       display.IsRGBA(),
		Composited: display.IsComposited(),
	}
}
