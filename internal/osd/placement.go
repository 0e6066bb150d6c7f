package osd

// Rect is a monitor area in global screen coordinates.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Point is a window origin in global screen coordinates.
type Point struct {
	X, Y int
}

// Place returns the top-left corner of a panel anchored to the bottom-right
// of monitor, inset by margin on both axes.
func Place(monitor Rect, panelWidth, panelHeight, margin int) Point {
	return Point{
		X: monitor.X + monitor.Width - panelWidth - margin,
		Y: monitor.Y + monitor.Height - panelHeight - margin,
	}
}

// Insets converts a window origin into distances from the monitor's right
// and bottom edges, for backends that position by edge anchoring.
func Insets(monitor Rect, pos Point, panelWidth, panelHeight int) (right, bottom int) {
	right = monitor.X + monitor.Width - (pos.X + panelWidth)
	bottom = monitor.Y + monitor.Height - (pos.Y + panelHeight)
	return right, bottom
}
