package input

import "github.com/Carmen-Shannon/oxy-pitch/common"

// Handler receives events from a Surface.
type Handler func(e *Event)

// Surface is an interactive element that produces input events.
// Controllers borrow a Surface; they never own or close it.
type Surface interface {
	// AddListener registers a handler for one event kind.
	//
	// Parameters:
	//   - kind: the event kind to listen for
	//   - h: the handler to invoke
	//
	// Returns:
	//   - common.ListenerID: id used to detach the handler
	AddListener(kind EventKind, h Handler) common.ListenerID

	// RemoveListener detaches a handler previously registered for kind.
	//
	// Parameters:
	//   - kind: the event kind the handler was registered for
	//   - id: the id returned by AddListener
	RemoveListener(kind EventKind, id common.ListenerID)

	// SetPointerCapture routes subsequent events of the pointer to this surface
	// even when the pointer leaves its bounds.
	//
	// Parameters:
	//   - pointerID: the pointer to capture
	SetPointerCapture(pointerID int)

	// ReleasePointerCapture ends a capture started by SetPointerCapture.
	//
	// Parameters:
	//   - pointerID: the pointer to release
	ReleasePointerCapture(pointerID int)

	// ClientWidth returns the surface width in pixels.
	ClientWidth() int

	// ClientHeight returns the surface height in pixels.
	ClientHeight() int
}

// Listeners is a per-kind listener table that Surface implementations embed
// to provide AddListener, RemoveListener and Dispatch.
type Listeners struct {
	sets map[EventKind]*common.ListenerSet[*Event]
}

// AddListener registers h for kind.
func (l *Listeners) AddListener(kind EventKind, h Handler) common.ListenerID {
	if h == nil {
		return 0
	}
	if l.sets == nil {
		l.sets = make(map[EventKind]*common.ListenerSet[*Event])
	}
	set, ok := l.sets[kind]
	if !ok {
		set = &common.ListenerSet[*Event]{}
		l.sets[kind] = set
	}
	return set.Add(h)
}

// RemoveListener detaches the handler with id from kind.
func (l *Listeners) RemoveListener(kind EventKind, id common.ListenerID) {
	if set, ok := l.sets[kind]; ok {
		set.Remove(id)
	}
}

// ListenerCount returns the number of handlers registered for kind.
func (l *Listeners) ListenerCount(kind EventKind) int {
	if set, ok := l.sets[kind]; ok {
		return set.Len()
	}
	return 0
}

// Dispatch delivers e to every handler registered for e.Kind.
//
// Parameters:
//   - e: the event to deliver
//
// Returns:
//   - bool: true if any handler called PreventDefault
func (l *Listeners) Dispatch(e *Event) bool {
	if set, ok := l.sets[e.Kind]; ok {
		set.Emit(e)
	}
	return e.DefaultPrevented()
}
