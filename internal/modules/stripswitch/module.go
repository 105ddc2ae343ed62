// Package stripswitch hosts a sliding switch on a region of the Stream Deck
// touch strip.
package stripswitch

import (
	"context"
	"fmt"
	"image"
	"log"
	"sync"

	"github.com/phinze/slideswitch/internal/assets"
	"github.com/phinze/slideswitch/internal/module"
	"github.com/phinze/slideswitch/internal/toggle"
)

// padding is the gap between the region's left edge and the switch.
const padding = 12

// Module implements the touch strip switch module.
type Module struct {
	module.BaseModule

	assets   assets.Pair
	onChange func(on bool)

	mu     sync.Mutex
	sw     *toggle.Switch
	region image.Rectangle // strip region allocated by the coordinator
	bounds image.Rectangle // where the switch sits, in strip coordinates
}

// New creates a switch module from an asset pair. onChange, if set, is
// called with the new state whenever the switch commits a change. It runs
// while the module is locked and must not call back into the module.
func New(pair assets.Pair, onChange func(on bool)) *Module {
	return &Module{
		BaseModule: module.NewBaseModule("switch"),
		assets:     pair,
		onChange:   onChange,
	}
}

// Init builds the switch and places it inside the allocated strip region.
func (m *Module) Init(ctx context.Context, res module.Resources) error {
	if err := m.BaseModule.Init(ctx, res); err != nil {
		return err
	}
	if !res.HasStrip() {
		return fmt.Errorf("switch: no strip region allocated")
	}

	sw, err := toggle.New(m.assets.Background, m.assets.Thumb, toggle.Options{
		Repaint:  res.RequestRepaint,
		OnChange: m.onChange,
	})
	if err != nil {
		return fmt.Errorf("switch: %w", err)
	}

	size := sw.MeasuredSize()
	if size.X+padding > res.StripRect.Dx() || size.Y > res.StripRect.Dy() {
		return fmt.Errorf("switch: %dx%d does not fit strip region %v", size.X, size.Y, res.StripRect)
	}

	origin := image.Pt(
		res.StripRect.Min.X+padding,
		res.StripRect.Min.Y+(res.StripRect.Dy()-size.Y)/2,
	)

	m.mu.Lock()
	m.sw = sw
	m.region = res.StripRect
	m.bounds = image.Rectangle{Min: origin, Max: origin.Add(size)}
	m.mu.Unlock()

	log.Printf("Switch module initialized (%dx%d at %v, max offset %d)", size.X, size.Y, origin, sw.Geometry().MaxOffset())
	return nil
}

// IsOn reports the committed state of the switch.
func (m *Module) IsOn() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sw != nil && m.sw.IsOn()
}

// HandleStripTouch translates strip gestures into the switch's pointer
// events. The hardware only reports finished gestures, so each one is
// replayed as a complete press/release sequence.
func (m *Module) HandleStripTouch(event module.TouchStripEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.sw == nil || !event.Point.In(m.bounds) {
		return nil
	}

	x := float64(event.Point.X - m.bounds.Min.X)
	switch event.Type {
	case module.TouchTap:
		m.sw.OnPointer(toggle.Down(x))
		m.sw.OnPointer(toggle.Up(x))
		m.sw.OnClick()

	case module.TouchLongTap:
		// A long press is not a click.
		m.sw.OnPointer(toggle.Down(x))
		m.sw.OnPointer(toggle.Up(x))

	case module.TouchSwipe:
		endX := float64(event.SwipeEnd.X - m.bounds.Min.X)
		m.sw.OnPointer(toggle.Down(x))
		m.sw.OnPointer(toggle.Move(endX))
		m.sw.OnPointer(toggle.Up(endX))
	}
	return nil
}
