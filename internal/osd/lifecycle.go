package osd

import (
	"log/slog"
	"sync"
	"time"
)

// State is the lifecycle phase of an overlay.
type State int

const (
	StateVisible State = iota
	StateFading
	StateDestroyed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateVisible:
		return "visible"
	case StateFading:
		return "fading"
	case StateDestroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}

// TimerID identifies a scheduled timer. Zero means no timer.
type TimerID uint

// Scheduler runs callbacks on the UI thread. fn is invoked every interval
// for as long as it returns true.
type Scheduler interface {
	TimeoutAdd(interval time.Duration, fn func() bool) TimerID
	Remove(id TimerID)
}

// Window is the native overlay window as seen by the controller.
type Window interface {
	QueueDraw()
	Destroy()
}

// Controller drives an overlay from appearance to destruction with a
// one-shot hide timer and a recurring fade timer.
//
// With compositing the overlay stays opaque for HideDelay and then fades
// by FadeStep every FadeInterval. Without compositing it is destroyed as
// soon as the hide timer fires.
type Controller struct {
	mu     sync.RWMutex
	logger *slog.Logger

	sched  Scheduler
	window Window

	supportsCompositing bool // fixed at construction
	state               State
	fadeSteps           int // opacity is 1 - fadeSteps*FadeStep

	hideTimer TimerID
	fadeTimer TimerID

	onDestroyed func()
}

// NewController creates a controller in the visible state. Call Start to
// schedule its timers.
func NewController(window Window, sched Scheduler, caps Capabilities, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		logger:              logger,
		sched:               sched,
		window:              window,
		supportsCompositing: caps.SupportsCompositing(),
		state:               StateVisible,
	}
}

// OnDestroyed sets a callback run once, after the window is destroyed.
func (c *Controller) OnDestroyed(cb func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onDestroyed = cb
}

// Start schedules the hide and fade timers. It has no effect after the
// first call.
func (c *Controller) Start() {
	c.mu.Lock()
	if c.hideTimer != 0 || c.fadeTimer != 0 || c.state != StateVisible {
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()

	hide := c.sched.TimeoutAdd(HideDelay, func() bool {
		c.onHideTimeout()
		return false
	})
	fade := c.sched.TimeoutAdd(FadeInterval, c.onFadeTick)

	c.mu.Lock()
	// A scheduler may fire synchronously; only record handles still live.
	if c.state == StateVisible {
		c.hideTimer = hide
	}
	if c.state != StateDestroyed {
		c.fadeTimer = fade
	}
	c.mu.Unlock()

	c.logger.Debug("overlay lifecycle started",
		"compositing", c.supportsCompositing,
		"hide_after", HideDelay,
		"fade_interval", FadeInterval,
	)
}

// State returns the current lifecycle phase.
func (c *Controller) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Opacity returns the current panel opacity in [0, 1].
func (c *Controller) Opacity() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.opacityLocked()
}

// Frame returns the snapshot the renderer draws from.
func (c *Controller) Frame() Frame {
	return Frame{Opacity: c.Opacity()}
}

func (c *Controller) opacityLocked() float64 {
	o := 1 - float64(c.fadeSteps)*FadeStep
	if o < 0 {
		return 0
	}
	return o
}

// onHideTimeout ends the fully opaque phase. The timer is one-shot, so its
// handle is only forgotten, never removed.
func (c *Controller) onHideTimeout() {
	c.mu.Lock()
	c.hideTimer = 0
	if c.state != StateVisible {
		c.mu.Unlock()
		return
	}

	if c.supportsCompositing {
		c.state = StateFading
		c.mu.Unlock()
		c.logger.Debug("overlay fading")
		return
	}

	fade := c.fadeTimer
	c.fadeTimer = 0
	c.mu.Unlock()

	if fade != 0 {
		c.sched.Remove(fade)
	}
	c.destroy("hide timeout without compositing")
}

// onFadeTick lowers the opacity once fading has begun. It returns false
// when the timer should stop.
func (c *Controller) onFadeTick() bool {
	c.mu.Lock()
	switch c.state {
	case StateVisible:
		c.mu.Unlock()
		return true
	case StateDestroyed:
		c.fadeTimer = 0
		c.mu.Unlock()
		return false
	}

	c.fadeSteps++
	if 1-float64(c.fadeSteps)*FadeStep >= 0 {
		c.mu.Unlock()
		c.window.QueueDraw()
		return true
	}

	// Returning false stops this timer, so the handle is dropped unremoved.
	c.fadeTimer = 0
	hide := c.hideTimer
	c.hideTimer = 0
	c.mu.Unlock()

	if hide != 0 {
		c.sched.Remove(hide)
	}
	c.destroy("fade complete")
	return false
}

// destroy enters the terminal state and releases the window exactly once.
// All timer handles must already be cleared.
func (c *Controller) destroy(reason string) {
	c.mu.Lock()
	if c.state == StateDestroyed {
		c.mu.Unlock()
		return
	}
	c.state = StateDestroyed
	cb := c.onDestroyed
	c.mu.Unlock()

	c.window.Destroy()
	c.logger.Debug("overlay destroyed", "reason", reason)

	if cb != nil {
		cb()
	}
}
