package osd

// Capabilities describes what the display server offers for window
// transparency. It is gathered once at startup.
type Capabilities struct {
	RGBA       bool // an alpha-capable surface format is available
	Composited bool // the display server composites windows
}

// SupportsCompositing reports whether translucent backgrounds will be
// honored. Both an RGBA format and an active compositor are required.
func (c Capabilities) SupportsCompositing() bool {
	return c.RGBA && c.Composited
}

// String returns a short description for logging.
func (c Capabilities) String() string {
	switch {
	case c.SupportsCompositing():
		return "composited"
	case c.RGBA:
		return "rgba-uncomposited"
	case c.Composited:
		return "composited-opaque"
	default:
		return "opaque"
	}
}
