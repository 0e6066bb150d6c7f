package osd

import "errors"

// Errors reported by canvases and icon sources.
var (
	ErrNoExtents    = errors.New("text extents unavailable")
	ErrIconNotFound = errors.New("icon not found")
)

// Operator selects how drawing composites with existing pixels.
type Operator int

const (
	// OperatorOver blends the source over the destination.
	OperatorOver Operator = iota
	// OperatorSource replaces the destination with the source.
	OperatorSource
)

// LineCap selects how stroke ends are drawn.
type LineCap int

const (
	LineCapButt LineCap = iota
	LineCapRound
)

// TextExtents is the ink box of a string in user units.
type TextExtents struct {
	Width  float64
	Height float64
}

// Icon is a decoded image owned by the canvas backend that loaded it.
type Icon interface {
	Size() (width, height int)
}

// IconSource resolves icon references for a canvas backend.
type IconSource interface {
	// LookupIcon resolves a themed icon by name at the requested pixel size.
	LookupIcon(name string, size int) (Icon, error)
	// LoadIconFile decodes an image file.
	LoadIconFile(path string) (Icon, error)
}

// Canvas is the drawing surface the panel renderer paints on. Path and
// state methods mirror cairo; the methods that touch pixels report errors
// so the renderer can skip a single element.
type Canvas interface {
	IdentityMatrix()
	Translate(tx, ty float64)
	Rotate(angle float64)
	Scale(sx, sy float64)

	NewSubPath()
	Arc(xc, yc, radius, angle1, angle2 float64)
	ClosePath()
	MoveTo(x, y float64)
	LineTo(x, y float64)

	SetSourceRGBA(r, g, b, a float64)
	SetOperator(op Operator)
	SetLineWidth(width float64)
	SetLineCap(lineCap LineCap)
	SetFont(family string, size float64)

	Fill() error
	Stroke() error
	TextExtents(text string) (TextExtents, error)
	ShowText(text string) error
	// PaintIcon paints icon with its top-left corner at the user-space origin.
	PaintIcon(icon Icon, alpha float64) error
}
