// Package device defines the abstraction layer for Stream Deck touch strip
// hardware. Both the real hardware adapter and the emulator implement it.
package device

import (
	"errors"
	"image"
)

// ErrNoTouchStrip is returned when a device has no touch strip to host the switch.
var ErrNoTouchStrip = errors.New("device: no touch strip")

// Device is the interface that abstracts a Stream Deck with a touch strip.
type Device interface {
	// Lifecycle
	Open() error
	Close() error
	IsOpen() bool

	// Device info
	GetModelName() string
	GetTouchStripSupported() bool
	GetTouchStripImageRectangle() (image.Rectangle, error)

	// Display
	SetBrightness(perc byte) error
	SetTouchStripImage(img image.Image) error

	// Event handlers
	AddTouchStripTouchHandler(fn TouchStripTouchHandler) error
	AddTouchStripSwipeHandler(fn TouchStripSwipeHandler) error

	// Event loop
	Listen(errCh chan error) error
}

// TouchStripTouchType represents the type of touch on the strip.
type TouchStripTouchType byte

// Touch strip touch types
const (
	TOUCH_STRIP_TOUCH_TYPE_SHORT TouchStripTouchType = iota + 1
	TOUCH_STRIP_TOUCH_TYPE_LONG
)

// Handler types
type (
	// TouchStripTouchHandler is called when the touch strip is touched.
	TouchStripTouchHandler func(d Device, t TouchStripTouchType, p image.Point) error

	// TouchStripSwipeHandler is called when the touch strip is swiped.
	TouchStripSwipeHandler func(d Device, origin, destination image.Point) error
)

// StripRect returns the device's touch strip rectangle, or ErrNoTouchStrip.
func StripRect(d Device) (image.Rectangle, error) {
	if !d.GetTouchStripSupported() {
		return image.Rectangle{}, ErrNoTouchStrip
	}
	rect, err := d.GetTouchStripImageRectangle()
	if err != nil {
		return image.Rectangle{}, err
	}
	if rect.Empty() {
		return image.Rectangle{}, ErrNoTouchStrip
	}
	return rect, nil
}
