package toggle

import (
	"image"
	"image/color"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solid(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// newTestSwitch returns a 200px background with an 80px thumb (maxOffset 120)
// and a counter of repaint requests.
func newTestSwitch(t *testing.T, opts Options) (*Switch, *int) {
	t.Helper()
	repaints := 0
	opts.Repaint = func() { repaints++ }
	s, err := New(solid(200, 60, color.RGBA{40, 40, 40, 255}), solid(80, 60, color.RGBA{240, 240, 240, 255}), opts)
	require.NoError(t, err)
	return s, &repaints
}

func feed(s *Switch, events ...PointerEvent) {
	for _, ev := range events {
		s.OnPointer(ev)
	}
}

func assertRest(t *testing.T, s *Switch) {
	t.Helper()
	assert.Equal(t, Idle, s.Phase())
	if s.IsOn() {
		assert.Equal(t, s.Geometry().MaxOffset(), s.Offset())
	} else {
		assert.Equal(t, 0, s.Offset())
	}
}

func TestNewErrors(t *testing.T) {
	bg := solid(200, 60, color.Black)
	thumb := solid(80, 60, color.White)

	_, err := New(nil, thumb, Options{})
	assert.ErrorIs(t, err, ErrAssetMissing)

	_, err = New(bg, nil, Options{})
	assert.ErrorIs(t, err, ErrAssetMissing)

	_, err = New(image.NewRGBA(image.Rectangle{}), thumb, Options{})
	assert.ErrorIs(t, err, ErrAssetMissing)

	_, err = New(thumb, bg, Options{})
	assert.ErrorIs(t, err, ErrDimensionInvalid)
}

func TestInitialState(t *testing.T) {
	s, repaints := newTestSwitch(t, Options{})
	assert.False(t, s.IsOn())
	assert.Equal(t, 0, s.Offset())
	assert.Equal(t, Idle, s.Phase())
	assert.False(t, s.TapCandidate())
	assert.Equal(t, image.Pt(200, 60), s.MeasuredSize())
	assert.Equal(t, 0, *repaints)

	// A click before any gesture has nothing to confirm it as a tap.
	s.OnClick()
	assert.False(t, s.IsOn())
	assert.Equal(t, 0, *repaints)
}

func TestScenarios(t *testing.T) {
	tests := []struct {
		name       string
		startOn    bool
		events     []PointerEvent
		click      bool
		wantOn     bool
		wantOffset int
	}{
		{
			name:       "pure tap turns on",
			events:     []PointerEvent{Down(10), Up(10)},
			click:      true,
			wantOn:     true,
			wantOffset: 120,
		},
		{
			name:       "drag past midpoint",
			events:     []PointerEvent{Down(5), Move(80), Up(80)},
			click:      true,
			wantOn:     true,
			wantOffset: 120,
		},
		{
			name:       "drag short of midpoint",
			events:     []PointerEvent{Down(5), Move(55), Up(55)},
			wantOn:     false,
			wantOffset: 0,
		},
		{
			name:       "drag exactly to midpoint",
			events:     []PointerEvent{Down(0), Move(60), Up(60)},
			wantOn:     false,
			wantOffset: 0,
		},
		{
			name:       "overshoot clamps",
			events:     []PointerEvent{Down(0), Move(500), Up(500)},
			wantOn:     true,
			wantOffset: 120,
		},
		{
			name:       "tap while on",
			startOn:    true,
			events:     []PointerEvent{Down(150), Up(150)},
			click:      true,
			wantOn:     false,
			wantOffset: 0,
		},
		{
			name:       "drag left from on",
			startOn:    true,
			events:     []PointerEvent{Down(150), Move(100), Move(40), Up(40)},
			click:      true,
			wantOn:     false,
			wantOffset: 0,
		},
		{
			name:       "cancel mid drag snaps",
			events:     []PointerEvent{Down(0), Move(90), Cancel()},
			wantOn:     true,
			wantOffset: 120,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestSwitch(t, Options{})
			if tt.startOn {
				feed(s, Down(0), Up(0))
				s.OnClick()
				require.True(t, s.IsOn())
			}

			feed(s, tt.events...)
			if tt.click {
				s.OnClick()
			}

			assert.Equal(t, tt.wantOn, s.IsOn())
			assert.Equal(t, tt.wantOffset, s.Offset())
			assertRest(t, s)
		})
	}
}

func TestMoveUpdatesOffsetIncrementally(t *testing.T) {
	s, _ := newTestSwitch(t, Options{})

	s.OnPointer(Down(5))
	assert.Equal(t, Pressed, s.Phase())
	assert.True(t, s.TapCandidate())

	s.OnPointer(Move(80))
	assert.Equal(t, Dragging, s.Phase())
	assert.Equal(t, 75, s.Offset())
	assert.False(t, s.TapCandidate())

	s.OnPointer(Move(70))
	assert.Equal(t, 65, s.Offset())

	s.OnPointer(Move(-100))
	assert.Equal(t, 0, s.Offset())

	// Leaving the clamp range and coming back is measured from the last x.
	s.OnPointer(Move(-90))
	assert.Equal(t, 10, s.Offset())
}

func TestZeroDeltaMoveKeepsTap(t *testing.T) {
	s, _ := newTestSwitch(t, Options{})

	feed(s, Down(30), Move(30), Move(30))
	assert.Equal(t, Pressed, s.Phase())
	assert.True(t, s.TapCandidate())

	s.OnPointer(Up(30))
	s.OnClick()
	assert.True(t, s.IsOn())
}

func TestSubPixelMoveDisqualifiesTap(t *testing.T) {
	s, _ := newTestSwitch(t, Options{})

	feed(s, Down(30), Move(30.2))
	assert.Equal(t, Dragging, s.Phase())
	assert.Equal(t, 0, s.Offset())

	feed(s, Up(30.2))
	s.OnClick()
	assert.False(t, s.IsOn())
	assert.Equal(t, 0, s.Offset())
}

func TestDeltaRounding(t *testing.T) {
	s, _ := newTestSwitch(t, Options{})

	// Each delta rounds on its own: 0.6 -> 1, 0.6 -> 1, 0.4 -> 0.
	feed(s, Down(0), Move(0.6), Move(1.2), Move(1.6))
	assert.Equal(t, 2, s.Offset())
}

func TestEventsOutsideGestureIgnored(t *testing.T) {
	s, repaints := newTestSwitch(t, Options{})

	feed(s, Move(100), Up(100), Cancel())
	assert.Equal(t, 0, s.Offset())
	assert.False(t, s.IsOn())
	assert.Equal(t, 0, *repaints)

	s.OnPointer(PointerEvent{Kind: PointerKind(99), X: 50})
	assert.Equal(t, 0, *repaints)
}

func TestUnknownKindDuringGesture(t *testing.T) {
	s, repaints := newTestSwitch(t, Options{})

	feed(s, Down(10), Move(40))
	before := *repaints
	s.OnPointer(PointerEvent{Kind: PointerKind(42), X: 200})
	assert.Equal(t, before, *repaints)
	assert.Equal(t, 30, s.Offset())
	assert.Equal(t, Dragging, s.Phase())
}

func TestRepaintOncePerEvent(t *testing.T) {
	s, repaints := newTestSwitch(t, Options{})

	feed(s, Down(0))
	assert.Equal(t, 1, *repaints)
	feed(s, Move(0))
	assert.Equal(t, 2, *repaints)
	feed(s, Move(20))
	assert.Equal(t, 3, *repaints)
	feed(s, Up(20))
	assert.Equal(t, 4, *repaints)
	s.OnClick()
	assert.Equal(t, 4, *repaints, "click after drag is suppressed")
}

func TestTapCandidateSurvivesUp(t *testing.T) {
	s, _ := newTestSwitch(t, Options{})

	feed(s, Down(10), Up(10))
	assert.True(t, s.TapCandidate())
	s.OnClick()
	assert.True(t, s.IsOn())

	// A second click for the same gesture flips again; the host only sends
	// one per gesture.
	s.OnClick()
	assert.False(t, s.IsOn())
}

func TestOnChange(t *testing.T) {
	var changes []bool
	s, _ := newTestSwitch(t, Options{OnChange: func(on bool) { changes = append(changes, on) }})

	feed(s, Down(10), Up(10))
	s.OnClick()
	feed(s, Down(150), Move(160), Up(160)) // stays on
	feed(s, Down(150), Move(50), Up(50))   // drag off

	assert.Equal(t, []bool{true, false}, changes)
}

func TestSynthesizeClick(t *testing.T) {
	s, repaints := newTestSwitch(t, Options{SynthesizeClick: true})

	feed(s, Down(10), Up(10))
	assert.True(t, s.IsOn())
	assert.Equal(t, 120, s.Offset())
	assert.Equal(t, 2, *repaints)

	feed(s, Down(150), Move(170), Up(170))
	assert.True(t, s.IsOn(), "drag that stays right does not toggle")

	feed(s, Down(150), Up(150))
	assert.False(t, s.IsOn())
	assert.Equal(t, 0, s.Offset())
}

func TestRandomGesturesHoldInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	s, _ := newTestSwitch(t, Options{})
	maxOffset := s.Geometry().MaxOffset()

	for gesture := 0; gesture < 500; gesture++ {
		x := rng.Float64()*300 - 50
		start := s.Offset()
		s.OnPointer(Down(x))

		moved := false
		want := start
		for i := rng.Intn(6); i > 0; i-- {
			next := x + rng.Float64()*160 - 80
			if rng.Intn(4) == 0 {
				next = x
			}
			if next != x {
				moved = true
			}
			want = s.Geometry().Clamp(want + int(math.Round(next-x)))
			x = next
			s.OnPointer(Move(x))

			off := s.Offset()
			require.GreaterOrEqual(t, off, 0)
			require.LessOrEqual(t, off, maxOffset)
			require.Equal(t, want, off)
		}

		s.OnPointer(Up(x))
		wasOn := s.IsOn()
		s.OnClick()
		if moved {
			require.Equal(t, wasOn, s.IsOn(), "click after drag must not toggle")
		} else {
			require.NotEqual(t, wasOn, s.IsOn())
		}
		assertRest(t, s)
	}
}
