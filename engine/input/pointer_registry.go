package input

import "github.com/go-gl/mathgl/mgl64"

// PointerRegistry tracks the active pointers of a surface in the order they went down,
// together with the last known screen position of each.
type PointerRegistry struct {
	order     []int
	positions map[int]mgl64.Vec2
}

// NewPointerRegistry creates an empty registry.
func NewPointerRegistry() *PointerRegistry {
	return &PointerRegistry{
		positions: make(map[int]mgl64.Vec2),
	}
}

// Add registers a pointer as active. Adding an already active pointer is a no-op.
func (r *PointerRegistry) Add(id int) {
	if r.Has(id) {
		return
	}
	r.order = append(r.order, id)
}

// Has reports whether the pointer is active.
func (r *PointerRegistry) Has(id int) bool {
	for _, p := range r.order {
		if p == id {
			return true
		}
	}
	return false
}

// Remove forgets the pointer and its position.
//
// Returns:
//   - bool: true if the pointer was active
func (r *PointerRegistry) Remove(id int) bool {
	delete(r.positions, id)
	for i, p := range r.order {
		if p == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			return true
		}
	}
	return false
}

// Track records the latest position of a pointer.
func (r *PointerRegistry) Track(id int, x, y float64) {
	r.positions[id] = mgl64.Vec2{x, y}
}

// Clear removes every pointer.
func (r *PointerRegistry) Clear() {
	r.order = r.order[:0]
	clear(r.positions)
}

// Len returns the number of active pointers.
func (r *PointerRegistry) Len() int {
	return len(r.order)
}

// IDs returns the active pointer ids in press order.
func (r *PointerRegistry) IDs() []int {
	out := make([]int, len(r.order))
	copy(out, r.order)
	return out
}

// Position returns the last tracked position of a pointer.
func (r *PointerRegistry) Position(id int) (mgl64.Vec2, bool) {
	p, ok := r.positions[id]
	return p, ok
}

// At returns the position of the i-th active pointer in press order.
func (r *PointerRegistry) At(i int) mgl64.Vec2 {
	if i < 0 || i >= len(r.order) {
		return mgl64.Vec2{}
	}
	return r.positions[r.order[i]]
}

// Other returns the position of the first active pointer that is not id.
func (r *PointerRegistry) Other(id int) (mgl64.Vec2, bool) {
	for _, p := range r.order {
		if p != id {
			pos, ok := r.positions[p]
			return pos, ok
		}
	}
	return mgl64.Vec2{}, false
}

// Center returns the lone pointer's position when one pointer is active,
// or the midpoint of the first two pointers otherwise.
func (r *PointerRegistry) Center() mgl64.Vec2 {
	switch len(r.order) {
	case 0:
		return mgl64.Vec2{}
	case 1:
		return r.At(0)
	default:
		return r.At(0).Add(r.At(1)).Mul(0.5)
	}
}

// Spread returns the Euclidean distance between the first two pointers,
// or 0 when fewer than two are active.
func (r *PointerRegistry) Spread() float64 {
	if len(r.order) < 2 {
		return 0
	}
	return r.At(0).Sub(r.At(1)).Len()
}
