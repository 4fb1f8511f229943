package camera

import (
	"errors"

	"github.com/Carmen-Shannon/oxy-pitch/common"
	"github.com/Carmen-Shannon/oxy-pitch/engine/input"
	"github.com/go-gl/mathgl/mgl64"
)

var (
	// ErrNilCamera is returned when a controller is constructed without a camera.
	ErrNilCamera = errors.New("orbit controller requires a camera")
	// ErrNilSurface is returned when a controller is constructed without an input surface.
	ErrNilSurface = errors.New("orbit controller requires an input surface")
)

// GestureState is the gesture currently driving an OrbitController.
type GestureState int

const (
	StateNone GestureState = iota
	StateRotate
	StateDolly
	StatePan
	StateTouchRotate
	StateTouchPan
	StateTouchDollyPan
	StateTouchDollyRotate
)

func (s GestureState) String() string {
	switch s {
	case StateNone:
		return "none"
	case StateRotate:
		return "rotate"
	case StateDolly:
		return "dolly"
	case StatePan:
		return "pan"
	case StateTouchRotate:
		return "touch_rotate"
	case StateTouchPan:
		return "touch_pan"
	case StateTouchDollyPan:
		return "touch_dolly_pan"
	case StateTouchDollyRotate:
		return "touch_dolly_rotate"
	default:
		return "unknown"
	}
}

// ControlEventType identifies a controller notification.
type ControlEventType int

const (
	// ControlEventStart fires when a gesture begins.
	ControlEventStart ControlEventType = iota
	// ControlEventChange fires when the camera pose moved.
	ControlEventChange
	// ControlEventEnd fires when the last pointer lifts, whether or not a gesture
	// started, and after each wheel step.
	ControlEventEnd
)

func (t ControlEventType) String() string {
	switch t {
	case ControlEventStart:
		return "start"
	case ControlEventChange:
		return "change"
	case ControlEventEnd:
		return "end"
	default:
		return "unknown"
	}
}

// ControlEvent is delivered to controller listeners.
type ControlEvent struct {
	Type  ControlEventType
	State GestureState
}

// OrbitController orbits, dollies and pans a Camera around a target point in response
// to pointer, wheel and keyboard input from an input.Surface.
//
// The controller keeps the camera position as spherical coordinates around the target in a
// frame where the camera's up vector is vertical. Input accumulates pending deltas that
// Update applies, with optional damping, and turns back into a camera pose.
//
// An OrbitController is not safe for concurrent use. Input handling and Update must run on
// one event-loop thread.
type OrbitController interface {
	// HandleEvent is the single input entry point. Surface listeners registered by the
	// controller forward here; owners may also feed events directly.
	//
	// Parameters:
	//   - e: the input event
	HandleEvent(e *input.Event)

	// Update applies pending motion to the camera. Call it once per frame when damping or
	// auto-rotation is enabled; gestures also call it after each input step.
	//
	// Returns:
	//   - bool: true if the camera pose or zoom changed since the previous change
	Update() bool

	// SaveState records the current target, camera position and zoom for Reset.
	SaveState()

	// Reset restores the state saved by SaveState (or the construction-time state),
	// emits a change event and returns the gesture state to StateNone.
	Reset()

	// Dispose detaches every listener the controller registered. Safe to call more than once.
	Dispose()

	// ListenToKeyEvents attaches arrow-key panning to a surface, typically the window.
	// A previously attached key surface is detached first.
	//
	// Parameters:
	//   - s: the surface delivering key events
	ListenToKeyEvents(s input.Surface)

	// StopListenToKeyEvents detaches the key surface attached by ListenToKeyEvents.
	StopListenToKeyEvents()

	// PolarAngle returns the current vertical orbit angle in radians.
	//
	// Returns:
	//   - float64: polar angle measured from the up axis
	PolarAngle() float64

	// AzimuthalAngle returns the current horizontal orbit angle in radians.
	//
	// Returns:
	//   - float64: azimuth around the up axis
	AzimuthalAngle() float64

	// Distance returns the distance from the camera to the target.
	//
	// Returns:
	//   - float64: camera-to-target distance
	Distance() float64

	// Target returns the orbit target.
	//
	// Returns:
	//   - mgl64.Vec3: world-space target
	Target() mgl64.Vec3

	// SetTarget moves the orbit target. The camera follows on the next Update.
	//
	// Parameters:
	//   - x, y, z: world-space coordinates
	SetTarget(x, y, z float64)

	// State returns the active gesture.
	//
	// Returns:
	//   - GestureState: the current state
	State() GestureState

	// Config returns the live option set. Changes take effect on the next gesture or Update.
	//
	// Returns:
	//   - *OrbitConfig: the controller's configuration
	Config() *OrbitConfig

	// Camera returns the controlled camera.
	//
	// Returns:
	//   - Camera: the camera
	Camera() Camera

	// AddEventListener subscribes to start, change or end notifications.
	//
	// Parameters:
	//   - t: the notification type
	//   - fn: the callback
	//
	// Returns:
	//   - common.ListenerID: id used with RemoveEventListener
	AddEventListener(t ControlEventType, fn func(ControlEvent)) common.ListenerID

	// RemoveEventListener unsubscribes a listener.
	//
	// Parameters:
	//   - t: the notification type the listener was added for
	//   - id: the id returned by AddEventListener
	RemoveEventListener(t ControlEventType, id common.ListenerID)
}
