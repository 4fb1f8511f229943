// Package input defines the abstract input surface consumed by interactive controllers:
// pointer, wheel, keyboard and context-menu events, listener registration, and pointer capture.
package input

// EventKind identifies the type of an input event.
type EventKind int

const (
	EventPointerDown EventKind = iota
	EventPointerMove
	EventPointerUp
	EventPointerCancel
	EventWheel
	EventKeyDown
	EventContextMenu
)

// String returns a readable name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventPointerDown:
		return "pointerdown"
	case EventPointerMove:
		return "pointermove"
	case EventPointerUp:
		return "pointerup"
	case EventPointerCancel:
		return "pointercancel"
	case EventWheel:
		return "wheel"
	case EventKeyDown:
		return "keydown"
	case EventContextMenu:
		return "contextmenu"
	default:
		return "unknown"
	}
}

// PointerType identifies the device that produced a pointer event.
type PointerType int

const (
	PointerMouse PointerType = iota
	PointerPen
	PointerTouch
)

// Mouse button indices, matching the DOM/GLFW convention.
const (
	ButtonLeft   = 0
	ButtonMiddle = 1
	ButtonRight  = 2
)

// Modifiers is a bit set of modifier keys held during an event.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModCtrl
	ModAlt
	ModMeta
)

// Has reports whether all bits of m2 are set in m.
func (m Modifiers) Has(m2 Modifiers) bool {
	return m&m2 == m2
}

// Event is a single input event delivered by a Surface.
// Fields not relevant to the event's Kind are left at their zero values.
type Event struct {
	// Kind is the event type.
	Kind EventKind

	// PointerID identifies the pointer for pointer events.
	PointerID int
	// PointerType is the device class of the pointer.
	PointerType PointerType
	// X and Y are the pointer position in surface pixels (origin top-left, y down).
	X, Y float64
	// Button is the mouse button index for pointer-down events.
	Button int
	// Modifiers holds the modifier keys pressed when the event was produced.
	Modifiers Modifiers

	// DeltaY is the wheel delta; positive scrolls away from the user (zoom out).
	DeltaY float64

	// KeyCode is the virtual key code for key events (see common key codes).
	KeyCode int

	defaultPrevented bool
}

// PreventDefault marks the event as handled so the surface skips its default behavior.
func (e *Event) PreventDefault() {
	e.defaultPrevented = true
}

// DefaultPrevented reports whether PreventDefault was called.
func (e *Event) DefaultPrevented() bool {
	return e.defaultPrevented
}
