package window

import (
	"fmt"
	"image"
	"testing"
	"time"

	"github.com/phinze/slideswitch/internal/toggle"
	"github.com/stretchr/testify/assert"
)

// recorder logs what a tracker delivers.
type recorder struct {
	log []string
}

func (r *recorder) OnPointer(ev toggle.PointerEvent) {
	r.log = append(r.log, fmt.Sprintf("%s %g", ev.Kind, ev.X))
}

func (r *recorder) OnClick() {
	r.log = append(r.log, "click")
}

type sample struct {
	x, y    int
	pressed bool
	focused bool
	advance time.Duration
}

func press(x, y int) sample   { return sample{x: x, y: y, pressed: true, focused: true} }
func release(x, y int) sample { return sample{x: x, y: y, focused: true} }

// newTestTracker places a 100x50 widget at (10,10) drawn at scale 2.
func newTestTracker() (*Tracker, *recorder, *time.Time) {
	rec := &recorder{}
	tr := NewTracker(rec, image.Pt(10, 10), image.Pt(100, 50), 2, 8, 300*time.Millisecond)
	clock := time.Unix(0, 0)
	tr.now = func() time.Time { return clock }
	return tr, rec, &clock
}

func TestTracker(t *testing.T) {
	tests := []struct {
		name    string
		samples []sample
		want    []string
	}{
		{
			name:    "tap",
			samples: []sample{press(30, 30), release(30, 30)},
			want:    []string{"down 10", "up 10", "click"},
		},
		{
			name:    "drag",
			samples: []sample{press(30, 30), press(70, 30), release(70, 30)},
			want:    []string{"down 10", "move 30", "up 30"},
		},
		{
			name:    "wobble within slop still clicks",
			samples: []sample{press(30, 30), press(36, 34), release(36, 34)},
			want:    []string{"down 10", "move 13", "up 13", "click"},
		},
		{
			name:    "leaving slop and returning is not a click",
			samples: []sample{press(30, 30), press(90, 30), press(30, 30), release(30, 30)},
			want:    []string{"down 10", "move 40", "move 10", "up 10"},
		},
		{
			name:    "motion in the release frame moves first",
			samples: []sample{press(30, 30), press(90, 30), release(40, 30)},
			want:    []string{"down 10", "move 40", "move 15", "up 15"},
		},
		{
			name:    "drag released without an intermediate frame",
			samples: []sample{press(30, 30), release(70, 30)},
			want:    []string{"down 10", "move 30", "up 30"},
		},
		{
			name: "slow press is not a click",
			samples: []sample{
				press(30, 30),
				{x: 30, y: 30, focused: true, advance: 400 * time.Millisecond},
			},
			want: []string{"down 10", "up 10"},
		},
		{
			name:    "holding still sends no moves",
			samples: []sample{press(30, 30), press(30, 30), press(30, 40), release(30, 40)},
			want:    []string{"down 10", "up 10", "click"},
		},
		{
			name:    "press outside the widget is ignored",
			samples: []sample{press(5, 5), press(30, 30), release(30, 30)},
			want:    nil,
		},
		{
			name:    "press below the widget is ignored",
			samples: []sample{press(30, 110), release(30, 110)},
			want:    nil,
		},
		{
			name:    "release outside still ends the gesture",
			samples: []sample{press(200, 30), press(400, 30), release(400, 200)},
			want:    []string{"down 95", "move 195", "up 195"},
		},
		{
			name: "focus loss cancels",
			samples: []sample{
				press(30, 30),
				press(50, 30),
				{x: 50, y: 30, pressed: true, focused: false},
				release(50, 30),
			},
			want: []string{"down 10", "move 20", "cancel 0"},
		},
		{
			name:    "press while unfocused is ignored",
			samples: []sample{{x: 30, y: 30, pressed: true}, release(30, 30)},
			want:    nil,
		},
		{
			name:    "two taps",
			samples: []sample{press(30, 30), release(30, 30), press(40, 30), release(40, 30)},
			want:    []string{"down 10", "up 10", "click", "down 15", "up 15", "click"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, rec, clock := newTestTracker()
			for _, s := range tt.samples {
				*clock = clock.Add(s.advance)
				tr.Sample(s.x, s.y, s.pressed, s.focused)
			}
			assert.Equal(t, tt.want, rec.log)
			assert.False(t, tr.Tracking())
		})
	}
}

func TestTrackerTracking(t *testing.T) {
	tr, _, _ := newTestTracker()
	assert.False(t, tr.Tracking())
	tr.Sample(30, 30, true, true)
	assert.True(t, tr.Tracking())
	tr.Sample(30, 30, false, true)
	assert.False(t, tr.Tracking())
}
