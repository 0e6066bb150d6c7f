package osd

import "time"

// Fixed visual constants of the panel.
const (
	BackgroundOpacity = 0.85
	TextOpacity       = 0.8
	MuteOpacity       = 1.0

	// DefaultTextHeight is the caption height assumed when no caption is drawn.
	DefaultTextHeight = 10.0
)

// Lifecycle timing. These are not configurable.
const (
	HideDelay    = 1000 * time.Millisecond
	FadeInterval = 30 * time.Millisecond
	FadeStep     = 0.05
)

// Geometry holds the panel dimensions. It is fixed when an overlay is built.
type Geometry struct {
	Width        int
	Height       int
	CornerRadius int
	Padding      int
	ScreenMargin int
	FontSize     int
	FontFamily   string
	Bars         int
	LineWidth    int
	IconSize     int
}

// DefaultGeometry returns the stock 200x200 panel.
func DefaultGeometry() Geometry {
	return Geometry{
		Width:        200,
		Height:       200,
		CornerRadius: 8,
		Padding:      24,
		ScreenMargin: 64,
		FontSize:     42,
		FontFamily:   "sans-serif",
		Bars:         16,
		LineWidth:    5,
		IconSize:     48,
	}
}
