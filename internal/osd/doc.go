// Package osd implements the on-screen display overlay independent of any
// toolkit: panel placement, the compositing decision, the panel renderer
// and the show/fade/destroy lifecycle. Toolkit backends supply a Canvas,
// an IconSource, a Scheduler and a Window.
package osd
