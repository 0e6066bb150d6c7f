package display

import (
	"time"

	"github.com/diamondburned/gotk4/pkg/core/glib"

	"github.com/jmylchreest/osd/internal/osd"
)

// Scheduler runs timers on the GLib main loop.
type Scheduler struct{}

var _ osd.Scheduler = Scheduler{}

// TimeoutAdd calls f every d until it returns false.
func (Scheduler) TimeoutAdd(d time.Duration, f func() bool) osd.TimerID {
	return osd.TimerID(glib.TimeoutAdd(uint(d.Milliseconds()), f))
}

// Remove cancels a pending timer.
func (Scheduler) Remove(id osd.TimerID) {
	glib.SourceRemove(glib.SourceHandle(id))
}
