package camera

import (
	"log/slog"

	"github.com/Carmen-Shannon/oxy-pitch/common"
	"github.com/Carmen-Shannon/oxy-pitch/engine/input"
	"github.com/go-gl/mathgl/mgl64"
)

// changeEpsilon is the squared-displacement and orientation threshold below which
// an update is not reported as a change.
const changeEpsilon = 0.000001

// orbitControllerImpl is the single implementation of OrbitController.
type orbitControllerImpl struct {
	camera  Camera
	surface input.Surface
	logger  *slog.Logger

	cfg OrbitConfig

	target mgl64.Vec3

	// saved by SaveState, restored by Reset
	target0   mgl64.Vec3
	position0 mgl64.Vec3
	zoom0     float64

	state   GestureState
	started bool

	spherical      spherical
	sphericalDelta spherical
	scale          float64
	panOffset      mgl64.Vec3
	zoomChanged    bool

	// rotation into and out of the frame where the camera's up vector is +Y
	quat        mgl64.Quat
	quatInverse mgl64.Quat

	lastPosition   mgl64.Vec3
	lastQuaternion mgl64.Quat

	rotateStart mgl64.Vec2
	panStart    mgl64.Vec2
	dollyStart  mgl64.Vec2
	spreadStart float64

	proj         projection
	projResolved bool

	pointers *input.PointerRegistry

	surfaceListeners map[input.EventKind]common.ListenerID
	dragListeners    map[input.EventKind]common.ListenerID
	keySurface       input.Surface
	keyListener      common.ListenerID
	disposed         bool

	events notifier
}

var _ OrbitController = &orbitControllerImpl{}

// NewOrbitController creates a controller for cam that listens to surface.
// The controller registers its pointer, wheel and context-menu listeners immediately and
// performs an initial Update so the camera faces the target.
//
// Parameters:
//   - cam: the camera to drive
//   - surface: the input surface; borrowed, never closed by the controller
//   - options: functional options to configure the controller
//
// Returns:
//   - OrbitController: the newly created controller
//   - error: ErrNilCamera or ErrNilSurface when a collaborator is missing
func NewOrbitController(cam Camera, surface input.Surface, options ...OrbitControllerOption) (OrbitController, error) {
	if cam == nil {
		return nil, ErrNilCamera
	}
	if surface == nil {
		return nil, ErrNilSurface
	}

	oc := &orbitControllerImpl{
		camera:           cam,
		surface:          surface,
		logger:           slog.Default(),
		cfg:              DefaultOrbitConfig(),
		scale:            1,
		lastQuaternion:   mgl64.QuatIdent(),
		pointers:         input.NewPointerRegistry(),
		surfaceListeners: make(map[input.EventKind]common.ListenerID),
		dragListeners:    make(map[input.EventKind]common.ListenerID),
	}

	for _, option := range options {
		option(oc)
	}

	oc.quat = mgl64.QuatBetweenVectors(cam.Up().Normalize(), mgl64.Vec3{0, 1, 0})
	oc.quatInverse = oc.quat.Inverse()

	oc.SaveState()

	for _, kind := range []input.EventKind{
		input.EventContextMenu,
		input.EventPointerDown,
		input.EventPointerCancel,
		input.EventWheel,
	} {
		oc.surfaceListeners[kind] = surface.AddListener(kind, oc.HandleEvent)
	}

	oc.Update()
	return oc, nil
}

func (oc *orbitControllerImpl) HandleEvent(e *input.Event) {
	switch e.Kind {
	case input.EventPointerDown:
		oc.onPointerDown(e)
	case input.EventPointerMove:
		oc.onPointerMove(e)
	case input.EventPointerUp, input.EventPointerCancel:
		oc.onPointerUp(e)
	case input.EventWheel:
		oc.onMouseWheel(e)
	case input.EventKeyDown:
		oc.onKeyDown(e)
	case input.EventContextMenu:
		if oc.cfg.Enabled {
			e.PreventDefault()
		}
	}
}

func (oc *orbitControllerImpl) SaveState() {
	oc.target0 = oc.target
	oc.position0 = oc.camera.Position()
	oc.zoom0 = oc.camera.Zoom()
}

func (oc *orbitControllerImpl) Reset() {
	oc.target = oc.target0
	oc.camera.SetPosition(oc.position0)
	oc.camera.SetZoom(oc.zoom0)
	oc.camera.UpdateProjection()
	oc.events.emit(ControlEventChange, oc.state)

	oc.Update()

	oc.state = StateNone
}

func (oc *orbitControllerImpl) Dispose() {
	if oc.disposed {
		return
	}
	oc.disposed = true

	for kind, id := range oc.surfaceListeners {
		oc.surface.RemoveListener(kind, id)
	}
	clear(oc.surfaceListeners)

	if len(oc.dragListeners) > 0 {
		for _, id := range oc.pointers.IDs() {
			oc.surface.ReleasePointerCapture(id)
		}
		oc.detachDragListeners()
	}

	oc.StopListenToKeyEvents()
}

func (oc *orbitControllerImpl) ListenToKeyEvents(s input.Surface) {
	if s == nil || oc.disposed {
		return
	}
	oc.StopListenToKeyEvents()
	oc.keySurface = s
	oc.keyListener = s.AddListener(input.EventKeyDown, oc.HandleEvent)
}

func (oc *orbitControllerImpl) StopListenToKeyEvents() {
	if oc.keySurface == nil {
		return
	}
	oc.keySurface.RemoveListener(input.EventKeyDown, oc.keyListener)
	oc.keySurface = nil
	oc.keyListener = 0
}

func (oc *orbitControllerImpl) PolarAngle() float64 {
	return oc.spherical.phi
}

func (oc *orbitControllerImpl) AzimuthalAngle() float64 {
	return oc.spherical.theta
}

func (oc *orbitControllerImpl) Distance() float64 {
	return oc.camera.Position().Sub(oc.target).Len()
}

func (oc *orbitControllerImpl) Target() mgl64.Vec3 {
	return oc.target
}

func (oc *orbitControllerImpl) SetTarget(x, y, z float64) {
	oc.target = mgl64.Vec3{x, y, z}
}

func (oc *orbitControllerImpl) State() GestureState {
	return oc.state
}

func (oc *orbitControllerImpl) Config() *OrbitConfig {
	return &oc.cfg
}

func (oc *orbitControllerImpl) Camera() Camera {
	return oc.camera
}

func (oc *orbitControllerImpl) AddEventListener(t ControlEventType, fn func(ControlEvent)) common.ListenerID {
	return oc.events.add(t, fn)
}

func (oc *orbitControllerImpl) RemoveEventListener(t ControlEventType, id common.ListenerID) {
	oc.events.remove(t, id)
}

// attachDragListeners starts routing move and up events while at least one pointer is down.
func (oc *orbitControllerImpl) attachDragListeners() {
	if len(oc.dragListeners) > 0 {
		return
	}
	oc.dragListeners[input.EventPointerMove] = oc.surface.AddListener(input.EventPointerMove, oc.HandleEvent)
	oc.dragListeners[input.EventPointerUp] = oc.surface.AddListener(input.EventPointerUp, oc.HandleEvent)
}

func (oc *orbitControllerImpl) detachDragListeners() {
	for kind, id := range oc.dragListeners {
		oc.surface.RemoveListener(kind, id)
	}
	clear(oc.dragListeners)
}
