package display

import (
	"fmt"

	"github.com/diamondburned/gotk4/pkg/cairo"
	"github.com/diamondburned/gotk4/pkg/gdk/v4"

	"github.com/jmylchreest/osd/internal/osd"
)

// Canvas adapts a cairo context to osd.Canvas. It is only valid for the
// duration of the draw callback that produced the context.
type Canvas struct {
	cr *cairo.Context
}

var _ osd.Canvas = (*Canvas)(nil)

// NewCanvas wraps cr.
func NewCanvas(cr *cairo.Context) *Canvas {
	return &Canvas{cr: cr}
}

func (c *Canvas) IdentityMatrix() {
	c.cr.IdentityMatrix()
}

func (c *Canvas) Translate(tx, ty float64) {
	c.cr.Translate(tx, ty)
}

func (c *Canvas) Rotate(angle float64) {
	c.cr.Rotate(angle)
}

func (c *Canvas) Scale(sx, sy float64) {
	c.cr.Scale(sx, sy)
}

func (c *Canvas) NewSubPath() {
	c.cr.NewSubPath()
}

func (c *Canvas) ClosePath() {
	c.cr.ClosePath()
}

func (c *Canvas) MoveTo(x, y float64) {
	c.cr.MoveTo(x, y)
}

func (c *Canvas) LineTo(x, y float64) {
	c.cr.LineTo(x, y)
}

func (c *Canvas) SetLineWidth(width float64) {
	c.cr.SetLineWidth(width)
}

func (c *Canvas) Arc(xc, yc, radius, angle1, angle2 float64) {
	c.cr.Arc(xc, yc, radius, angle1, angle2)
}

func (c *Canvas) SetSourceRGBA(r, g, b, a float64) {
	c.cr.SetSourceRGBA(r, g, b, a)
}

func (c *Canvas) SetOperator(op osd.Operator) {
	switch op {
	case osd.OperatorSource:
		c.cr.SetOperator(cairo.OperatorSource)
	default:
		c.cr.SetOperator(cairo.OperatorOver)
	}
}

func (c *Canvas) SetLineCap(lineCap osd.LineCap) {
	switch lineCap {
	case osd.LineCapRound:
		c.cr.SetLineCap(cairo.LineCapRound)
	default:
		c.cr.SetLineCap(cairo.LineCapButt)
	}
}

// SetFont selects the toy-API face. Cairo falls back to its default
// face when family is unknown.
func (c *Canvas) SetFont(family string, size float64) {
	c.cr.SelectFontFace(family, cairo.FontSlantNormal, cairo.FontWeightNormal)
	c.cr.SetFontSize(size)
}

func (c *Canvas) Fill() error {
	c.cr.Fill()
	return c.status("fill")
}

func (c *Canvas) Stroke() error {
	c.cr.Stroke()
	return c.status("stroke")
}

func (c *Canvas) TextExtents(text string) (osd.TextExtents, error) {
	ext := c.cr.TextExtents(text)
	if err := c.status("text extents"); err != nil {
		return osd.TextExtents{}, fmt.Errorf("%w: %w", osd.ErrNoExtents, err)
	}
	return osd.TextExtents{Width: ext.Width, Height: ext.Height}, nil
}

func (c *Canvas) ShowText(text string) error {
	c.cr.ShowText(text)
	return c.status("show text")
}

// PaintIcon paints a pixbuf icon loaded by Icons.
func (c *Canvas) PaintIcon(icon osd.Icon, alpha float64) error {
	pi, ok := icon.(*pixbufIcon)
	if !ok || pi == nil || pi.pixbuf == nil {
		return fmt.Errorf("unsupported icon type %T", icon)
	}
	gdk.CairoSetSourcePixbuf(c.cr, pi.pixbuf, 0, 0)
	c.cr.PaintWithAlpha(alpha)
	return c.status("paint icon")
}

// status reports the context's sticky error state after op.
func (c *Canvas) status(op string) error {
	if st := c.cr.Status(); st != cairo.StatusSuccess {
		return fmt.Errorf("cairo %s: status %v", op, st)
	}
	return nil
}
