// Package display is the GTK4 backend for the overlay. It creates the
// undecorated layer-shell window, adapts cairo to osd.Canvas, resolves icons
// through the GTK icon theme and drives timers from the GLib main loop.
package display
