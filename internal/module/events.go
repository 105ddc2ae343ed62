package module

import (
	"fmt"
	"image"

	"github.com/phinze/slideswitch/internal/device"
)

// TouchStripEventType indicates the type of touch strip interaction.
type TouchStripEventType uint8

const (
	// TouchTap indicates a short tap on the touch strip.
	TouchTap TouchStripEventType = iota + 1
	// TouchLongTap indicates a long press on the touch strip.
	TouchLongTap
	// TouchSwipe indicates a swipe gesture on the touch strip.
	TouchSwipe
)

func (t TouchStripEventType) String() string {
	switch t {
	case TouchTap:
		return "tap"
	case TouchLongTap:
		return "long-tap"
	case TouchSwipe:
		return "swipe"
	default:
		return fmt.Sprintf("TouchStripEventType(%d)", uint8(t))
	}
}

// TouchStripEvent represents an interaction with the touch strip.
type TouchStripEvent struct {
	// Type indicates what kind of touch interaction occurred.
	Type TouchStripEventType

	// Point is the location of a tap or long tap.
	// For swipes, this is the same as SwipeStart.
	Point image.Point

	// SwipeStart is the starting point of a swipe gesture.
	// Only meaningful for TouchSwipe events.
	SwipeStart image.Point

	// SwipeEnd is the ending point of a swipe gesture.
	// Only meaningful for TouchSwipe events.
	SwipeEnd image.Point
}

// TouchStripEventFromDeviceTap creates a TouchStripEvent from a device tap.
func TouchStripEventFromDeviceTap(touchType device.TouchStripTouchType, point image.Point) TouchStripEvent {
	eventType := TouchTap
	if touchType == device.TOUCH_STRIP_TOUCH_TYPE_LONG {
		eventType = TouchLongTap
	}
	return TouchStripEvent{
		Type:  eventType,
		Point: point,
	}
}

// TouchStripEventFromSwipe creates a TouchStripEvent from a swipe gesture.
func TouchStripEventFromSwipe(origin, destination image.Point) TouchStripEvent {
	return TouchStripEvent{
		Type:       TouchSwipe,
		Point:      origin,
		SwipeStart: origin,
		SwipeEnd:   destination,
	}
}
