package toggle

import (
	"fmt"
	"image"
	"math"

	"golang.org/x/image/draw"
)

// Options configures the host-facing hooks of a Switch.
type Options struct {
	// Repaint is called after every handled event. The host should schedule
	// a Draw; the switch never waits for it.
	Repaint func()

	// OnChange is called when the committed on/off state changes.
	OnChange func(on bool)

	// SynthesizeClick makes the switch perform a tap itself when a gesture is
	// released without horizontal motion. Use it on hosts that do not deliver
	// click notifications; hosts that do should leave it off and call OnClick.
	SynthesizeClick bool
}

// Switch is a sliding on/off toggle composed from a background and a thumb
// image. It is not safe for concurrent use; hosts deliver events from a single
// goroutine or serialize them.
type Switch struct {
	background image.Image
	thumb      image.Image
	geom       Geometry
	opts       Options
	sampler    draw.Interpolator

	on           bool
	offset       int
	startX       float64
	tapCandidate bool
	phase        Phase
}

// New creates a switch from its two assets. It starts off, with the thumb at
// the left edge.
func New(background, thumb image.Image, opts Options) (*Switch, error) {
	if background == nil {
		return nil, fmt.Errorf("background: %w", ErrAssetMissing)
	}
	if thumb == nil {
		return nil, fmt.Errorf("thumb: %w", ErrAssetMissing)
	}

	geom, err := NewGeometry(background.Bounds().Size(), thumb.Bounds().Size())
	if err != nil {
		return nil, err
	}

	return &Switch{
		background: background,
		thumb:      thumb,
		geom:       geom,
		opts:       opts,
		sampler:    draw.ApproxBiLinear,
	}, nil
}

// Geometry returns the switch's geometry.
func (s *Switch) Geometry() Geometry {
	return s.geom
}

// MeasuredSize returns the intrinsic size of the widget.
func (s *Switch) MeasuredSize() image.Point {
	return s.geom.MeasuredSize()
}

// IsOn reports the committed state.
func (s *Switch) IsOn() bool {
	return s.on
}

// Offset returns the thumb's current left edge in pixels.
func (s *Switch) Offset() int {
	return s.offset
}

// Phase returns the current gesture phase.
func (s *Switch) Phase() Phase {
	return s.phase
}

// TapCandidate reports whether the current or last gesture still qualifies
// as a tap.
func (s *Switch) TapCandidate() bool {
	return s.tapCandidate
}

// OnPointer feeds a pointer event into the state machine.
func (s *Switch) OnPointer(ev PointerEvent) {
	switch ev.Kind {
	case PointerDown:
		s.startX = ev.X
		s.tapCandidate = true
		s.phase = Pressed

	case PointerMove:
		if s.phase == Idle {
			return
		}
		delta := ev.X - s.startX
		if math.Abs(delta) > 0 {
			s.tapCandidate = false
			s.phase = Dragging
		}
		s.offset = s.geom.Clamp(s.offset + int(math.Round(delta)))
		s.startX = ev.X

	case PointerUp, PointerCancel:
		if s.phase == Idle {
			return
		}
		s.phase = Idle
		s.snap()
		if s.opts.SynthesizeClick && s.tapCandidate {
			s.toggle()
		}

	default:
		return
	}

	s.repaint()
}

// OnClick handles a click notification from the host. It only toggles when
// the gesture that produced it had no horizontal motion.
func (s *Switch) OnClick() {
	if !s.tapCandidate {
		return
	}
	s.toggle()
	s.repaint()
}

// snap commits the thumb to the nearer endpoint. The midpoint goes to off.
func (s *Switch) snap() {
	if s.offset > s.geom.MaxOffset()/2 {
		s.offset = s.geom.MaxOffset()
		s.setOn(true)
	} else {
		s.offset = 0
		s.setOn(false)
	}
}

func (s *Switch) toggle() {
	s.setOn(!s.on)
	if s.on {
		s.offset = s.geom.MaxOffset()
	} else {
		s.offset = 0
	}
}

func (s *Switch) setOn(on bool) {
	if s.on == on {
		return
	}
	s.on = on
	if s.opts.OnChange != nil {
		s.opts.OnChange(on)
	}
}

func (s *Switch) repaint() {
	if s.opts.Repaint != nil {
		s.opts.Repaint()
	}
}
