package toggle

import "fmt"

// PointerKind indicates the type of pointer event.
type PointerKind uint8

const (
	// PointerDown indicates the pointer went down on the widget.
	PointerDown PointerKind = iota + 1
	// PointerMove indicates the pointer moved while down.
	PointerMove
	// PointerUp indicates the pointer was released.
	PointerUp
	// PointerCancel indicates the host lost the pointer stream. It is handled
	// as a release at the last known position.
	PointerCancel
)

func (k PointerKind) String() string {
	switch k {
	case PointerDown:
		return "down"
	case PointerMove:
		return "move"
	case PointerUp:
		return "up"
	case PointerCancel:
		return "cancel"
	default:
		return fmt.Sprintf("PointerKind(%d)", uint8(k))
	}
}

// PointerEvent is a single pointer sample delivered by the host.
type PointerEvent struct {
	// Kind indicates what happened to the pointer.
	Kind PointerKind

	// X is the pointer position relative to the widget's left edge.
	// It may be fractional; only the x-axis is consumed.
	X float64
}

// Down returns a PointerDown event at x.
func Down(x float64) PointerEvent { return PointerEvent{Kind: PointerDown, X: x} }

// Move returns a PointerMove event at x.
func Move(x float64) PointerEvent { return PointerEvent{Kind: PointerMove, X: x} }

// Up returns a PointerUp event at x.
func Up(x float64) PointerEvent { return PointerEvent{Kind: PointerUp, X: x} }

// Cancel returns a PointerCancel event.
func Cancel() PointerEvent { return PointerEvent{Kind: PointerCancel} }

// Phase is the gesture phase of the switch.
type Phase uint8

const (
	// Idle means no gesture is in progress and the thumb rests at an endpoint.
	Idle Phase = iota
	// Pressed means the pointer is down and has not moved horizontally.
	Pressed
	// Dragging means the pointer is down and has moved horizontally.
	Dragging
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Pressed:
		return "pressed"
	case Dragging:
		return "dragging"
	default:
		return fmt.Sprintf("Phase(%d)", uint8(p))
	}
}
