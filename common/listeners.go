package common

import "sort"

// ListenerID identifies a registered listener so it can be detached later.
// IDs are never reused within one ListenerSet; the zero value is never issued.
type ListenerID uint64

// ListenerSet is an ordered registry of callbacks receiving values of type T.
// Listeners are invoked in registration order. It is not safe for concurrent use;
// owners dispatch from a single event-loop thread.
type ListenerSet[T any] struct {
	next      ListenerID
	listeners map[ListenerID]func(T)
}

// Add registers fn and returns its id.
//
// Parameters:
//   - fn: the callback to register (nil is ignored and returns 0)
//
// Returns:
//   - ListenerID: the id to pass to Remove
func (s *ListenerSet[T]) Add(fn func(T)) ListenerID {
	if fn == nil {
		return 0
	}
	if s.listeners == nil {
		s.listeners = make(map[ListenerID]func(T))
	}
	s.next++
	s.listeners[s.next] = fn
	return s.next
}

// Remove detaches the listener with the given id.
//
// Parameters:
//   - id: the id returned by Add
//
// Returns:
//   - bool: true if a listener was removed, false if the id was unknown
func (s *ListenerSet[T]) Remove(id ListenerID) bool {
	if _, ok := s.listeners[id]; !ok {
		return false
	}
	delete(s.listeners, id)
	return true
}

// Len returns the number of registered listeners.
func (s *ListenerSet[T]) Len() int {
	return len(s.listeners)
}

// Emit invokes every registered listener with v in registration order.
// Listeners added or removed during Emit take effect on the next Emit.
//
// Parameters:
//   - v: the value delivered to each listener
func (s *ListenerSet[T]) Emit(v T) {
	if len(s.listeners) == 0 {
		return
	}
	ids := make([]ListenerID, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	fns := make([]func(T), len(ids))
	for i, id := range ids {
		fns[i] = s.listeners[id]
	}
	for _, fn := range fns {
		fn(v)
	}
}
