package module

import "image"

// Resources defines the strip region allocated to a module and how it asks
// for a redraw.
type Resources struct {
	// StripRect is the region of the touch strip allocated to this module.
	// A zero rect means no strip region is allocated.
	StripRect image.Rectangle

	// Repaint asks the coordinator to render the strip again. It never blocks.
	Repaint func()
}

// HasStrip returns true if this module has a touch strip region allocated.
func (r Resources) HasStrip() bool {
	return !r.StripRect.Empty()
}

// OwnsPoint returns true if p falls inside the module's strip region.
func (r Resources) OwnsPoint(p image.Point) bool {
	return p.In(r.StripRect)
}

// RequestRepaint calls Repaint if one is wired.
func (r Resources) RequestRepaint() {
	if r.Repaint != nil {
		r.Repaint()
	}
}
