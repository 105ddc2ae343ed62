package window

import (
	"image"
	"time"

	"github.com/phinze/slideswitch/internal/toggle"
)

// Target receives the pointer stream produced by a Tracker.
// *toggle.Switch satisfies it.
type Target interface {
	OnPointer(ev toggle.PointerEvent)
	OnClick()
}

// Tracker turns sampled pointer state into switch pointer events. It is fed
// once per frame and keeps the gesture bookkeeping the host needs to decide
// whether a release also counts as a click.
type Tracker struct {
	target Target

	origin image.Point // widget top-left in screen pixels
	scale  float64     // screen pixels per widget pixel
	size   image.Point // widget size in widget pixels

	tapSlop    int
	tapTimeout time.Duration
	now        func() time.Time

	buttonDown bool // button state at the previous sample

	tracking  bool
	start     image.Point
	startTime time.Time
	lastX     float64
	escaped   bool // travelled beyond tapSlop at some point
}

// NewTracker creates a tracker for a widget of the given size drawn at origin
// with the given scale.
func NewTracker(target Target, origin, size image.Point, scale float64, tapSlop int, tapTimeout time.Duration) *Tracker {
	return &Tracker{
		target:     target,
		origin:     origin,
		scale:      scale,
		size:       size,
		tapSlop:    tapSlop,
		tapTimeout: tapTimeout,
		now:        time.Now,
	}
}

// Tracking reports whether a gesture is in progress.
func (t *Tracker) Tracking() bool {
	return t.tracking
}

// local converts a screen position into widget coordinates.
func (t *Tracker) local(x, y int) (float64, float64) {
	return float64(x-t.origin.X) / t.scale, float64(y-t.origin.Y) / t.scale
}

// Sample feeds the pointer state for one frame.
func (t *Tracker) Sample(x, y int, pressed, focused bool) {
	justPressed := pressed && !t.buttonDown
	t.buttonDown = pressed

	lx, ly := t.local(x, y)

	if !t.tracking {
		// Only a press that starts on the widget begins a gesture.
		if justPressed && focused && lx >= 0 && ly >= 0 && lx < float64(t.size.X) && ly < float64(t.size.Y) {
			t.tracking = true
			t.escaped = false
			t.start = image.Pt(x, y)
			t.startTime = t.now()
			t.lastX = lx
			t.target.OnPointer(toggle.Down(lx))
		}
		return
	}

	if !focused {
		t.tracking = false
		t.target.OnPointer(toggle.Cancel())
		return
	}

	t.noteTravel(x, y)

	if !pressed {
		t.tracking = false
		// Motion in the release frame still moves the thumb before it snaps.
		if lx != t.lastX {
			t.lastX = lx
			t.target.OnPointer(toggle.Move(lx))
		}
		t.target.OnPointer(toggle.Up(lx))
		if !t.escaped && t.now().Sub(t.startTime) < t.tapTimeout {
			t.target.OnClick()
		}
		return
	}

	if lx != t.lastX {
		t.lastX = lx
		t.target.OnPointer(toggle.Move(lx))
	}
}

// noteTravel records whether the pointer has left the tap slop, measured in
// widget pixels from the press position.
func (t *Tracker) noteTravel(x, y int) {
	dx := float64(x-t.start.X) / t.scale
	dy := float64(y-t.start.Y) / t.scale
	slop := float64(t.tapSlop)
	if dx*dx+dy*dy > slop*slop {
		t.escaped = true
	}
}
