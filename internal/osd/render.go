package osd

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/jmylchreest/osd/internal/model"
)

const deg = math.Pi / 180

// Frame is the state the renderer needs for one redraw.
type Frame struct {
	Opacity float64
}

// Renderer paints the panel: background, caption, gauge and icon.
// Each element is drawn independently; a failing element is logged and
// left out of the frame while the others still render.
type Renderer struct {
	geom    Geometry
	content model.Content
	icons   IconSource
	logger  *slog.Logger

	icon Icon // resolved on first successful load
}

// NewRenderer creates a renderer for content. icons may be nil, in which
// case the icon channel is never drawn.
func NewRenderer(geom Geometry, content model.Content, icons IconSource, logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{
		geom:    geom,
		content: content,
		icons:   icons,
		logger:  logger,
	}
}

// Draw renders one frame onto cv.
func (r *Renderer) Draw(cv Canvas, frame Frame) {
	opacity := clampUnit(frame.Opacity)

	r.report("background", r.drawBackground(cv, opacity))

	textHeight := DefaultTextHeight
	if caption, ok := r.content.Caption.Get(); ok {
		var err error
		textHeight, err = r.drawCaption(cv, caption, opacity)
		r.report("caption", err)
	}

	if _, ok := r.content.Percentage.Get(); ok {
		if value, ok := r.content.Value(); ok {
			r.report("gauge", r.drawGauge(cv, value, textHeight, opacity))
		} else {
			r.logger.Debug("percentage is not an integer, gauge skipped", "value", r.content.Percentage.String())
		}
	}

	if ref, ok := r.content.Icon.Get(); ok {
		r.report("icon", r.drawIcon(cv, ref, textHeight, opacity))
	}

	cv.IdentityMatrix()
}

func (r *Renderer) report(step string, err error) {
	if err == nil {
		return
	}
	if errors.Is(err, ErrIconNotFound) {
		r.logger.Debug("icon unavailable", "error", err)
		return
	}
	r.logger.Warn("draw step failed", "step", step, "error", err)
}

// drawBackground fills the rounded panel. The Source operator makes the
// panel alpha exact regardless of what was on the surface before.
func (r *Renderer) drawBackground(cv Canvas, opacity float64) error {
	w := float64(r.geom.Width)
	h := float64(r.geom.Height)
	rad := float64(r.geom.CornerRadius)

	cv.IdentityMatrix()
	cv.NewSubPath()
	cv.Arc(w-rad, rad, rad, -90*deg, 0)
	cv.Arc(w-rad, h-rad, rad, 0, 90*deg)
	cv.Arc(rad, h-rad, rad, 90*deg, 180*deg)
	cv.Arc(rad, rad, rad, 180*deg, 270*deg)
	cv.ClosePath()

	cv.SetSourceRGBA(0.1, 0.1, 0.1, BackgroundOpacity*opacity)
	cv.SetOperator(OperatorSource)
	err := cv.Fill()
	cv.SetOperator(OperatorOver)
	if err != nil {
		return fmt.Errorf("fill background: %w", err)
	}
	return nil
}

// drawCaption centers text above the bottom padding and returns its
// measured height, or DefaultTextHeight when it could not be measured.
func (r *Renderer) drawCaption(cv Canvas, text string, opacity float64) (float64, error) {
	cv.IdentityMatrix()
	cv.SetSourceRGBA(1, 1, 1, TextOpacity*MuteOpacity*opacity)
	cv.SetFont(r.geom.FontFamily, float64(r.geom.FontSize))

	ext, err := cv.TextExtents(text)
	if err != nil {
		return DefaultTextHeight, fmt.Errorf("measure caption: %w", err)
	}

	cv.MoveTo(float64(r.geom.Width)/2-ext.Width/2, float64(r.geom.Height-r.geom.Padding))
	if err := cv.ShowText(text); err != nil {
		return ext.Height, fmt.Errorf("show caption: %w", err)
	}
	return ext.Height, nil
}

// drawGauge strokes one radial bar per filled step, starting at the bottom
// of the ring and proceeding clockwise.
func (r *Renderer) drawGauge(cv Canvas, value int, textHeight, opacity float64) error {
	bars := model.BarCount(r.geom.Bars, value)
	if bars == 0 {
		return nil
	}

	space := float64(r.geom.Height-3*r.geom.Padding) - textHeight
	outer := space / 2
	inner := outer / 1.5
	cx := float64(r.geom.Width) / 2
	cy := float64(r.geom.Padding) + space/2
	step := 2 * math.Pi / float64(r.geom.Bars)

	cv.SetSourceRGBA(1, 1, 1, TextOpacity*MuteOpacity*opacity)
	cv.SetLineWidth(float64(r.geom.LineWidth))
	cv.SetLineCap(LineCapRound)

	for i := range bars {
		cv.IdentityMatrix()
		cv.Translate(cx, cy)
		cv.Rotate(math.Pi + float64(i)*step)
		cv.MoveTo(0, -inner)
		cv.LineTo(0, -outer)
		if err := cv.Stroke(); err != nil {
			return fmt.Errorf("stroke bar %d of %d: %w", i+1, bars, err)
		}
	}
	return nil
}

// drawIcon paints the icon scaled so its longest side is IconSize, centered
// horizontally and lifted above the caption.
func (r *Renderer) drawIcon(cv Canvas, ref string, textHeight, opacity float64) error {
	icon, err := r.resolveIcon(ref)
	if err != nil {
		return err
	}

	iw, ih := icon.Size()
	if iw <= 0 || ih <= 0 {
		return fmt.Errorf("icon %q has no pixels", ref)
	}
	scale := float64(r.geom.IconSize) / float64(max(iw, ih))

	cv.IdentityMatrix()
	cv.Translate(float64(r.geom.Width)/2, float64(r.geom.Height)/2)
	cv.Translate(0, -textHeight+float64(r.geom.CornerRadius)/2)
	cv.Scale(scale, scale)
	cv.Translate(-float64(iw)/2, -float64(ih)/2)
	if err := cv.PaintIcon(icon, opacity); err != nil {
		return fmt.Errorf("paint icon: %w", err)
	}
	return nil
}

// resolveIcon tries the icon theme first, then treats ref as a file path.
func (r *Renderer) resolveIcon(ref string) (Icon, error) {
	if r.icon != nil {
		return r.icon, nil
	}
	if r.icons == nil {
		return nil, fmt.Errorf("%w: no icon source for %q", ErrIconNotFound, ref)
	}

	icon, lookupErr := r.icons.LookupIcon(ref, r.geom.IconSize)
	if lookupErr != nil {
		var loadErr error
		icon, loadErr = r.icons.LoadIconFile(ref)
		if loadErr != nil {
			return nil, fmt.Errorf("%w: %q: %w", ErrIconNotFound, ref, errors.Join(lookupErr, loadErr))
		}
	}
	r.icon = icon
	return icon, nil
}

func clampUnit(v float64) float64 {
	return math.Min(math.Max(v, 0), 1)
}
