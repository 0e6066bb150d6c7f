package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/math/fixed"

	"github.com/jmylchreest/osd/internal/osd"
)

// arcSegments is the number of line segments per quarter circle.
const arcSegments = 16

type point struct{ x, y float64 }

type subpath struct {
	points []point
	closed bool
}

// Canvas is an osd.Canvas that rasterizes into an RGBA image.
// Paths are flattened to device space as they are built.
type Canvas struct {
	img    *image.RGBA
	matrix f64.Aff3

	paths   []subpath
	current *point

	color     color.NRGBA
	operator  osd.Operator
	lineWidth float64
	lineCap   osd.LineCap

	font  *opentype.Font
	faces map[float64]font.Face
	face  font.Face
}

var _ osd.Canvas = (*Canvas)(nil)

// NewCanvas creates a transparent canvas of the given size. Text is set in
// the bundled Go Regular face whatever family is requested.
func NewCanvas(width, height int) (*Canvas, error) {
	ft, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}

	c := &Canvas{
		img:       image.NewRGBA(image.Rect(0, 0, width, height)),
		font:      ft,
		faces:     make(map[float64]font.Face),
		color:     color.NRGBA{A: 255},
		lineWidth: 2,
	}
	c.IdentityMatrix()
	return c, nil
}

// Image returns the rendered pixels.
func (c *Canvas) Image() *image.RGBA {
	return c.img
}

// WritePNG encodes the canvas as PNG.
func (c *Canvas) WritePNG(w io.Writer) error {
	return png.Encode(w, c.img)
}

// IdentityMatrix resets the user-to-device transform.
func (c *Canvas) IdentityMatrix() {
	c.matrix = f64.Aff3{1, 0, 0, 0, 1, 0}
}

// Translate moves the user-space origin.
func (c *Canvas) Translate(tx, ty float64) {
	m := &c.matrix
	m[2] += m[0]*tx + m[1]*ty
	m[5] += m[3]*tx + m[4]*ty
}

// Rotate turns user space clockwise by angle radians (y points down).
func (c *Canvas) Rotate(angle float64) {
	sin, cos := math.Sincos(angle)
	m := &c.matrix
	a, b, d, e := m[0], m[1], m[3], m[4]
	m[0] = a*cos + b*sin
	m[1] = -a*sin + b*cos
	m[3] = d*cos + e*sin
	m[4] = -d*sin + e*cos
}

// Scale scales user space.
func (c *Canvas) Scale(sx, sy float64) {
	m := &c.matrix
	m[0] *= sx
	m[3] *= sx
	m[1] *= sy
	m[4] *= sy
}

func (c *Canvas) toDevice(x, y float64) point {
	m := c.matrix
	return point{m[0]*x + m[1]*y + m[2], m[3]*x + m[4]*y + m[5]}
}

// deviceScale approximates how much the current transform magnifies lengths.
func (c *Canvas) deviceScale() float64 {
	m := c.matrix
	return math.Sqrt(math.Abs(m[0]*m[4] - m[1]*m[3]))
}

// NewSubPath ends the current subpath without setting a current point.
func (c *Canvas) NewSubPath() {
	c.current = nil
}

// MoveTo begins a new subpath at (x, y).
func (c *Canvas) MoveTo(x, y float64) {
	p := c.toDevice(x, y)
	c.paths = append(c.paths, subpath{points: []point{p}})
	c.current = &p
}

// LineTo adds a straight segment. Without a current point it acts as MoveTo.
func (c *Canvas) LineTo(x, y float64) {
	if c.current == nil {
		c.MoveTo(x, y)
		return
	}
	c.lineToDevice(c.toDevice(x, y))
}

func (c *Canvas) lineToDevice(p point) {
	if c.current == nil || len(c.paths) == 0 {
		c.paths = append(c.paths, subpath{points: []point{p}})
	} else {
		last := &c.paths[len(c.paths)-1]
		last.points = append(last.points, p)
	}
	c.current = &p
}

// Arc adds a clockwise circular arc, joined to the current point by a line.
func (c *Canvas) Arc(xc, yc, radius, angle1, angle2 float64) {
	for angle2 < angle1 {
		angle2 += 2 * math.Pi
	}
	steps := max(1, int(math.Ceil((angle2-angle1)/(math.Pi/2)*arcSegments)))
	for i := 0; i <= steps; i++ {
		a := angle1 + (angle2-angle1)*float64(i)/float64(steps)
		c.lineToDevice(c.toDevice(xc+radius*math.Cos(a), yc+radius*math.Sin(a)))
	}
}

// ClosePath closes the current subpath.
func (c *Canvas) ClosePath() {
	if len(c.paths) == 0 {
		return
	}
	last := &c.paths[len(c.paths)-1]
	last.closed = true
	start := last.points[0]
	c.current = &start
}

// SetSourceRGBA sets the paint color. Components are in [0, 1].
func (c *Canvas) SetSourceRGBA(r, g, b, a float64) {
	c.color = color.NRGBA{R: unit8(r), G: unit8(g), B: unit8(b), A: unit8(a)}
}

// SetOperator sets the compositing operator.
func (c *Canvas) SetOperator(op osd.Operator) {
	c.operator = op
}

// SetLineWidth sets the stroke width in user units.
func (c *Canvas) SetLineWidth(width float64) {
	c.lineWidth = width
}

// SetLineCap sets the stroke end style.
func (c *Canvas) SetLineCap(lineCap osd.LineCap) {
	c.lineCap = lineCap
}

// SetFont selects the text size. The family is ignored.
func (c *Canvas) SetFont(_ string, size float64) {
	if face, ok := c.faces[size]; ok {
		c.face = face
		return
	}
	face, err := opentype.NewFace(c.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		c.face = nil
		return
	}
	c.faces[size] = face
	c.face = face
}

// Fill fills the current path and clears it.
func (c *Canvas) Fill() error {
	defer c.clearPath()
	if len(c.paths) == 0 {
		return nil
	}

	bounds := c.img.Bounds()
	mask := image.NewAlpha(bounds)
	scanner := rasterx.NewScannerGV(bounds.Dx(), bounds.Dy(), mask, bounds)
	filler := rasterx.NewFiller(bounds.Dx(), bounds.Dy(), scanner)
	filler.SetColor(color.Opaque)

	for _, sp := range c.paths {
		if len(sp.points) < 2 {
			continue
		}
		filler.Start(fixedPoint(sp.points[0]))
		for _, p := range sp.points[1:] {
			filler.Line(fixedPoint(p))
		}
		filler.Stop(true)
	}
	filler.Draw()

	c.composite(mask)
	return nil
}

// Stroke strokes the current path and clears it.
func (c *Canvas) Stroke() error {
	defer c.clearPath()
	if c.lineWidth <= 0 {
		return fmt.Errorf("invalid line width %v", c.lineWidth)
	}
	if len(c.paths) == 0 {
		return nil
	}

	bounds := c.img.Bounds()
	mask := image.NewAlpha(bounds)
	scanner := rasterx.NewScannerGV(bounds.Dx(), bounds.Dy(), mask, bounds)
	stroker := rasterx.NewStroker(bounds.Dx(), bounds.Dy(), scanner)
	stroker.SetColor(color.Opaque)

	capFn := rasterx.ButtCap
	if c.lineCap == osd.LineCapRound {
		capFn = rasterx.RoundCap
	}
	width := fixed.Int26_6(c.lineWidth * c.deviceScale() * 64)
	stroker.SetStroke(width, 4*64, capFn, capFn, rasterx.RoundGap, rasterx.Round)

	for _, sp := range c.paths {
		if len(sp.points) < 2 {
			continue
		}
		stroker.Start(fixedPoint(sp.points[0]))
		for _, p := range sp.points[1:] {
			stroker.Line(fixedPoint(p))
		}
		stroker.Stop(sp.closed)
	}
	stroker.Draw()

	c.composite(mask)
	return nil
}

// composite paints the current color through mask with the current operator.
// Source replaces pixels inside the mask and leaves the rest untouched.
func (c *Canvas) composite(mask *image.Alpha) {
	if c.operator != osd.OperatorSource {
		draw.DrawMask(c.img, c.img.Bounds(), image.NewUniform(c.color), image.Point{}, mask, image.Point{}, draw.Over)
		return
	}

	src := color.RGBAModel.Convert(c.color).(color.RGBA)
	b := c.img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			ma := uint32(mask.AlphaAt(x, y).A)
			if ma == 0 {
				continue
			}
			dst := c.img.RGBAAt(x, y)
			c.img.SetRGBA(x, y, color.RGBA{
				R: lerp8(dst.R, src.R, ma),
				G: lerp8(dst.G, src.G, ma),
				B: lerp8(dst.B, src.B, ma),
				A: lerp8(dst.A, src.A, ma),
			})
		}
	}
}

func lerp8(dst, src uint8, t uint32) uint8 {
	return uint8((uint32(src)*t + uint32(dst)*(255-t) + 127) / 255)
}

func (c *Canvas) clearPath() {
	c.paths = nil
	c.current = nil
}

// TextExtents measures the ink box of text in the current face.
func (c *Canvas) TextExtents(text string) (osd.TextExtents, error) {
	if c.face == nil {
		return osd.TextExtents{}, osd.ErrNoExtents
	}
	bounds, _ := font.BoundString(c.face, text)
	return osd.TextExtents{
		Width:  fixedToFloat(bounds.Max.X - bounds.Min.X),
		Height: fixedToFloat(bounds.Max.Y - bounds.Min.Y),
	}, nil
}

// ShowText draws text with its baseline origin at the current point.
// Rotation and scale of the current transform do not apply to glyphs.
func (c *Canvas) ShowText(text string) error {
	if c.face == nil {
		return fmt.Errorf("no font face selected")
	}
	if c.current == nil {
		return fmt.Errorf("no current point")
	}

	d := &font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(c.color),
		Face: c.face,
		Dot:  fixedPoint(*c.current),
	}
	d.DrawString(text)

	p := point{fixedToFloat(d.Dot.X), fixedToFloat(d.Dot.Y)}
	c.paths = nil
	c.current = &p
	return nil
}

// PaintIcon paints an icon loaded by IconSource at the user-space origin.
func (c *Canvas) PaintIcon(icon osd.Icon, alpha float64) error {
	img, ok := icon.(*Image)
	if !ok || img == nil || img.src == nil {
		return fmt.Errorf("unsupported icon type %T", icon)
	}

	op := draw.Over
	if c.operator == osd.OperatorSource {
		op = draw.Src
	}
	opts := &draw.Options{
		SrcMask: image.NewUniform(color.Alpha16{A: uint16(math.Round(clamp01(alpha) * 0xffff))}),
	}

	b := img.src.Bounds()
	m := c.matrix
	// Anchor the image's top-left at the origin whatever its bounds origin.
	m[2] -= m[0]*float64(b.Min.X) + m[1]*float64(b.Min.Y)
	m[5] -= m[3]*float64(b.Min.X) + m[4]*float64(b.Min.Y)
	draw.CatmullRom.Transform(c.img, m, img.src, b, op, opts)
	return nil
}

func fixedPoint(p point) fixed.Point26_6 {
	return fixed.Point26_6{
		X: fixed.Int26_6(math.Round(p.x * 64)),
		Y: fixed.Int26_6(math.Round(p.y * 64)),
	}
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

func clamp01(v float64) float64 {
	return math.Min(math.Max(v, 0), 1)
}

func unit8(v float64) uint8 {
	return uint8(math.Round(clamp01(v) * 255))
}
