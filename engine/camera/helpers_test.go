package camera

import (
	"io"
	"log/slog"
	"testing"

	"github.com/Carmen-Shannon/oxy-pitch/engine/input"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tolerance = 1e-9

type fakeSurface struct {
	input.Listeners
	width, height int
	captured      map[int]bool
}

func newFakeSurface() *fakeSurface {
	return &fakeSurface{width: 800, height: 600, captured: make(map[int]bool)}
}

func (s *fakeSurface) SetPointerCapture(id int)     { s.captured[id] = true }
func (s *fakeSurface) ReleasePointerCapture(id int) { delete(s.captured, id) }
func (s *fakeSurface) ClientWidth() int             { return s.width }
func (s *fakeSurface) ClientHeight() int            { return s.height }

func (s *fakeSurface) mouse(kind input.EventKind, button int, x, y float64) *input.Event {
	e := &input.Event{Kind: kind, PointerID: 1, PointerType: input.PointerMouse, Button: button, X: x, Y: y}
	s.Dispatch(e)
	return e
}

func (s *fakeSurface) touch(kind input.EventKind, id int, x, y float64) *input.Event {
	e := &input.Event{Kind: kind, PointerID: id, PointerType: input.PointerTouch, X: x, Y: y}
	s.Dispatch(e)
	return e
}

func (s *fakeSurface) wheel(deltaY float64) *input.Event {
	e := &input.Event{Kind: input.EventWheel, DeltaY: deltaY}
	s.Dispatch(e)
	return e
}

// plainCamera hides the projection kind of the wrapped camera.
type plainCamera struct {
	Camera
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestController builds a controller around a perspective camera at (0, 0, 10)
// looking at the origin.
func newTestController(t *testing.T, options ...OrbitControllerOption) (*orbitControllerImpl, *fakeSurface) {
	t.Helper()
	cam := NewPerspectiveCamera(WithPosition(0, 0, 10), WithAspect(800.0/600.0))
	surface := newFakeSurface()
	options = append([]OrbitControllerOption{WithLogger(quietLogger())}, options...)
	ctrl, err := NewOrbitController(cam, surface, options...)
	require.NoError(t, err)
	return ctrl.(*orbitControllerImpl), surface
}

func assertVecNear(t *testing.T, want, got mgl64.Vec3, delta float64) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], delta, "component %d of %v", i, got)
	}
}
