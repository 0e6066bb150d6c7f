package display

import (
	"log/slog"
	"unsafe"

	layershell "github.com/diamondburned/gotk4-layer-shell/pkg/gtk4layershell"
	"github.com/diamondburned/gotk4/pkg/core/glib"
	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/jmylchreest/osd/internal/osd"
)

// Namespace identifies the overlay surface to the compositor.
const Namespace = "osd"

// getPrimaryMonitor returns the primary monitor or first available.
func getPrimaryMonitor(display *gdk.Display) *gdk.Monitor {
	if display == nil {
		return nil
	}
	monitors := display.Monitors()
	if monitors == nil || monitors.NItems() == 0 {
		return nil
	}

	// GTK4 has no primary monitor; the first one stands in for it.
	obj := monitors.Item(0)
	if obj == nil {
		return nil
	}

	return wrapMonitor(obj)
}

// wrapMonitor wraps a coreglib.Object as a gdk.Monitor.
// This is necessary because gotk4 doesn't expose the wrapMonitor function.
func wrapMonitor(obj *glib.Object) *gdk.Monitor {
	if obj == nil {
		return nil
	}
	// gdk.Monitor embeds a *coreglib.Object; this mirrors gotk4's own wrapper.
	type monitor struct {
		_ [0]func()
		*glib.Object
	}
	m := &monitor{Object: obj}
	return (*gdk.Monitor)(unsafe.Pointer(m))
}

// monitorRect returns the monitor geometry in logical pixels.
func monitorRect(monitor *gdk.Monitor) osd.Rect {
	g := monitor.Geometry()
	return osd.Rect{X: g.X(), Y: g.Y(), Width: g.Width(), Height: g.Height()}
}

// placeWindow puts window in the bottom-right corner of the primary monitor.
// With layer-shell the position is expressed as edge margins; without it
// the window is left to the window manager.
func placeWindow(window *gtk.Window, display *gdk.Display, geom osd.Geometry, logger *slog.Logger) {
	monitor := getPrimaryMonitor(display)
	if monitor == nil {
		logger.Warn("no monitor available, placement left to the compositor")
		return
	}

	rect := monitorRect(monitor)
	pos := osd.Place(rect, geom.Width, geom.Height, geom.ScreenMargin)

	if !layershell.IsSupported() {
		logger.Debug("layer-shell unsupported, window placed by the window manager",
			"x", pos.X, "y", pos.Y)
		return
	}

	right, bottom := osd.Insets(rect, pos, geom.Width, geom.Height)

	layershell.InitForWindow(window)
	layershell.SetLayer(window, layershell.LayerShellLayerOverlay)
	layershell.SetExclusiveZone(window, 0) // Don't reserve space
	layershell.SetKeyboardMode(window, layershell.LayerShellKeyboardModeNone)
	layershell.SetNamespace(window, Namespace)
	layershell.SetMonitor(window, monitor)

	layershell.SetAnchor(window, layershell.LayerShellEdgeTop, false)
	layershell.SetAnchor(window, layershell.LayerShellEdgeLeft, false)
	layershell.SetAnchor(window, layershell.LayerShellEdgeBottom, true)
	layershell.SetAnchor(window, layershell.LayerShellEdgeRight, true)
	layershell.SetMargin(window, layershell.LayerShellEdgeBottom, bottom)
	layershell.SetMargin(window, layershell.LayerShellEdgeRight, right)

	logger.Debug("overlay placed", "x", pos.X, "y", pos.Y, "monitor", rect)
}
