package camera

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-pitch/common"
	"github.com/Carmen-Shannon/oxy-pitch/engine/input"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrbitController_RequiresCollaborators(t *testing.T) {
	_, err := NewOrbitController(nil, newFakeSurface())
	assert.ErrorIs(t, err, ErrNilCamera)

	_, err = NewOrbitController(NewPerspectiveCamera(), nil)
	assert.ErrorIs(t, err, ErrNilSurface)
}

func TestNewOrbitController_RegistersSurfaceListeners(t *testing.T) {
	_, surface := newTestController(t)

	for _, kind := range []input.EventKind{
		input.EventContextMenu,
		input.EventPointerDown,
		input.EventPointerCancel,
		input.EventWheel,
	} {
		assert.Equal(t, 1, surface.ListenerCount(kind), kind.String())
	}
	assert.Zero(t, surface.ListenerCount(input.EventPointerMove))
	assert.Zero(t, surface.ListenerCount(input.EventPointerUp))
}

func TestUpdate_HalfTurnMovesCameraBehindTarget(t *testing.T) {
	oc, _ := newTestController(t)

	oc.rotateLeft(-math.Pi)
	assert.True(t, oc.Update())

	assertVecNear(t, mgl64.Vec3{0, 0, -10}, oc.camera.Position(), 1e-9)
	assert.InDelta(t, 10.0, oc.Distance(), tolerance)
}

func TestUpdate_AtRestReportsNoChange(t *testing.T) {
	oc, _ := newTestController(t)

	changes := 0
	oc.AddEventListener(ControlEventChange, func(ControlEvent) { changes++ })

	assert.False(t, oc.Update())
	assert.False(t, oc.Update())
	assert.Zero(t, changes)
}

func TestUpdate_ClampsPolarAngle(t *testing.T) {
	oc, _ := newTestController(t, WithPolarBounds(math.Pi/4, math.Pi/2))

	for _, angle := range []float64{1, -2, 0.3, 5, -5} {
		oc.rotateUp(angle)
		oc.Update()

		assert.GreaterOrEqual(t, oc.PolarAngle(), math.Pi/4-tolerance)
		assert.LessOrEqual(t, oc.PolarAngle(), math.Pi/2+tolerance)
	}
}

func TestUpdate_PolarAngleStaysOffThePoles(t *testing.T) {
	oc, _ := newTestController(t)

	oc.rotateUp(10)
	oc.Update()
	assert.InDelta(t, poleEpsilon, oc.PolarAngle(), 1e-12)

	oc.rotateUp(-10)
	oc.Update()
	assert.InDelta(t, math.Pi-poleEpsilon, oc.PolarAngle(), 1e-12)
}

func TestUpdate_ClampsDistance(t *testing.T) {
	oc, _ := newTestController(t, WithDistanceBounds(5, 12))

	oc.dollyIn(0.1)
	oc.Update()
	assert.InDelta(t, 5.0, oc.Distance(), 1e-9)

	oc.dollyOut(0.1)
	oc.Update()
	assert.InDelta(t, 12.0, oc.Distance(), 1e-9)
}

func TestClampAzimuth(t *testing.T) {
	deg := math.Pi / 180
	cases := []struct {
		name     string
		min, max float64
		theta    float64
		want     float64
	}{
		{"unbounded", math.Inf(-1), math.Inf(1), 3, 3},
		{"one infinite bound", -1, math.Inf(1), -2, -2},
		{"inside interval", -170 * deg, 170 * deg, 10 * deg, 10 * deg},
		{"above interval", -170 * deg, 170 * deg, 175 * deg, 170 * deg},
		{"below interval", -170 * deg, 170 * deg, -175 * deg, -170 * deg},
		{"bounds normalized", 200 * deg, 250 * deg, -120 * deg, -120 * deg},
		{"normalized bounds clamp", 200 * deg, 250 * deg, 0, -110 * deg},
		// min 170, max -170 allows [170, 180] and [-180, -170]; the midpoint tie-break
		// only moves angles inside the excluded arc, so 175 is kept rather than snapped to 170
		{"wraparound 170 to -170 keeps 175 under tie-break", 170 * deg, -170 * deg, 175 * deg, 175 * deg},
		{"wrap keeps allowed arc negative", 170 * deg, -170 * deg, -175 * deg, -175 * deg},
		{"wrap snaps above midpoint", 170 * deg, -170 * deg, 10 * deg, 170 * deg},
		{"wrap snaps below midpoint", 170 * deg, -170 * deg, -10 * deg, -170 * deg},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, clampAzimuth(tc.theta, tc.min, tc.max), 1e-12)
		})
	}
}

func TestUpdate_AzimuthNeverInsideExcludedArc(t *testing.T) {
	deg := math.Pi / 180
	oc, _ := newTestController(t, WithAzimuthBounds(170*deg, -170*deg))

	// starting at theta 0, inside the excluded arc
	oc.Update()
	theta := oc.AzimuthalAngle()
	assert.True(t, theta >= 170*deg-tolerance || theta <= -170*deg+tolerance, "theta %v", theta)

	for i := 0; i < 20; i++ {
		oc.rotateLeft(0.05)
		oc.Update()
		theta = oc.AzimuthalAngle()
		assert.True(t, theta >= 170*deg-1e-6 || theta <= -170*deg+1e-6, "theta %v", theta)
	}
}

func TestUpdate_DampingDecaysDeltas(t *testing.T) {
	oc, _ := newTestController(t, WithDamping(0.1))

	oc.rotateLeft(1)
	oc.Update()
	assert.InDelta(t, -0.9, oc.sphericalDelta.theta, tolerance)
	assert.InDelta(t, -0.1, oc.AzimuthalAngle(), 1e-9)

	oc.Update()
	assert.InDelta(t, -0.81, oc.sphericalDelta.theta, tolerance)
}

func TestUpdate_WithoutDampingZeroesDeltas(t *testing.T) {
	oc, _ := newTestController(t)

	oc.rotateLeft(0.5)
	oc.rotateUp(0.25)
	oc.panOffset = mgl64.Vec3{1, 0, 0}
	oc.Update()

	assert.Equal(t, spherical{}, oc.sphericalDelta)
	assert.Equal(t, mgl64.Vec3{}, oc.panOffset)
	assert.Equal(t, 1.0, oc.scale)
	assertVecNear(t, mgl64.Vec3{1, 0, 0}, oc.Target(), tolerance)
}

func TestUpdate_AutoRotateOnlyWhileIdle(t *testing.T) {
	oc, surface := newTestController(t, WithAutoRotate(2))

	// construction already applied one step
	oc.Update()
	step := twoPi / 60 / 60 * 2
	assert.InDelta(t, -2*step, oc.AzimuthalAngle(), 1e-9)

	surface.mouse(input.EventPointerDown, input.ButtonLeft, 0, 0)
	before := oc.AzimuthalAngle()
	oc.Update()
	assert.InDelta(t, before, oc.AzimuthalAngle(), 1e-9)
}

func TestSaveStateAndReset(t *testing.T) {
	oc, surface := newTestController(t)

	oc.SetTarget(1, 2, 3)
	oc.rotateLeft(1)
	oc.Update()
	oc.SaveState()
	saved := oc.camera.Position()

	oc.rotateLeft(1)
	oc.dollyIn(0.5)
	oc.SetTarget(0, 0, 0)
	oc.Update()
	surface.mouse(input.EventPointerDown, input.ButtonLeft, 0, 0)
	require.Equal(t, StateRotate, oc.State())

	changes := 0
	oc.AddEventListener(ControlEventChange, func(ControlEvent) { changes++ })
	oc.Reset()

	assertVecNear(t, mgl64.Vec3{1, 2, 3}, oc.Target(), tolerance)
	assertVecNear(t, saved, oc.camera.Position(), 1e-9)
	assert.Equal(t, StateNone, oc.State())
	assert.GreaterOrEqual(t, changes, 1)
}

func TestMouseDrag_RotatesByHeightNormalizedAngle(t *testing.T) {
	oc, surface := newTestController(t)

	surface.mouse(input.EventPointerDown, input.ButtonLeft, 400, 300)
	// a drag of half the surface height is half a turn
	surface.mouse(input.EventPointerMove, input.ButtonLeft, 700, 300)

	assertVecNear(t, mgl64.Vec3{0, 0, -10}, oc.camera.Position(), 1e-9)
}

func TestMouseDrag_EmitsStartChangeEnd(t *testing.T) {
	oc, surface := newTestController(t)

	var got []ControlEventType
	record := func(e ControlEvent) { got = append(got, e.Type) }
	oc.AddEventListener(ControlEventStart, record)
	oc.AddEventListener(ControlEventChange, record)
	oc.AddEventListener(ControlEventEnd, record)

	surface.mouse(input.EventPointerDown, input.ButtonLeft, 100, 100)
	assert.True(t, surface.captured[1])
	assert.Equal(t, 1, surface.ListenerCount(input.EventPointerMove))

	surface.mouse(input.EventPointerMove, input.ButtonLeft, 110, 100)
	surface.mouse(input.EventPointerUp, input.ButtonLeft, 110, 100)

	assert.Equal(t, []ControlEventType{ControlEventStart, ControlEventChange, ControlEventEnd}, got)
	assert.False(t, surface.captured[1])
	assert.Zero(t, surface.ListenerCount(input.EventPointerMove))
	assert.Equal(t, StateNone, oc.State())
}

func TestMouseDown_ModifierSwapsRotateAndPan(t *testing.T) {
	oc, surface := newTestController(t)

	surface.Dispatch(&input.Event{
		Kind: input.EventPointerDown, PointerID: 1, PointerType: input.PointerMouse,
		Button: input.ButtonLeft, Modifiers: input.ModShift,
	})
	assert.Equal(t, StatePan, oc.State())
	surface.mouse(input.EventPointerUp, input.ButtonLeft, 0, 0)

	surface.Dispatch(&input.Event{
		Kind: input.EventPointerDown, PointerID: 1, PointerType: input.PointerMouse,
		Button: input.ButtonRight, Modifiers: input.ModCtrl,
	})
	assert.Equal(t, StateRotate, oc.State())
}

func TestMouseDown_DisabledGestureStillEndsOnRelease(t *testing.T) {
	oc, surface := newTestController(t)
	oc.Config().EnableRotate = false

	starts := 0
	oc.AddEventListener(ControlEventStart, func(ControlEvent) { starts++ })

	surface.mouse(input.EventPointerDown, input.ButtonLeft, 0, 0)
	assert.Equal(t, StateNone, oc.State())
	assert.Zero(t, starts)

	var ends []GestureState
	oc.AddEventListener(ControlEventEnd, func(e ControlEvent) { ends = append(ends, e.State) })
	surface.mouse(input.EventPointerUp, input.ButtonLeft, 0, 0)
	assert.Equal(t, []GestureState{StateNone}, ends)
	assert.Empty(t, surface.captured)
}

func TestMouseDrag_PanMovesTargetAndCamera(t *testing.T) {
	oc, surface := newTestController(t)

	surface.mouse(input.EventPointerDown, input.ButtonRight, 400, 300)
	surface.mouse(input.EventPointerMove, input.ButtonRight, 400, 360)

	// dragging down moves the view up: target follows the camera's +Y
	assert.Greater(t, oc.Target().Y(), 0.0)
	assert.InDelta(t, 10.0, oc.Distance(), 1e-9)
	assert.InDelta(t, oc.Target().Y(), oc.camera.Position().Y(), 1e-9)
}

func TestMouseDrag_DollyByVerticalMotion(t *testing.T) {
	oc, surface := newTestController(t)

	surface.mouse(input.EventPointerDown, input.ButtonMiddle, 0, 100)
	surface.mouse(input.EventPointerMove, input.ButtonMiddle, 0, 110)
	assert.InDelta(t, 10/0.95, oc.Distance(), 1e-9)

	surface.mouse(input.EventPointerMove, input.ButtonMiddle, 0, 90)
	assert.InDelta(t, 10.0, oc.Distance(), 1e-9)
}

func TestWheel_DollyInAndOutAreInverse(t *testing.T) {
	oc, surface := newTestController(t)

	var got []ControlEventType
	record := func(e ControlEvent) { got = append(got, e.Type) }
	oc.AddEventListener(ControlEventStart, record)
	oc.AddEventListener(ControlEventEnd, record)

	e := surface.wheel(-1)
	assert.True(t, e.DefaultPrevented())
	assert.InDelta(t, 9.5, oc.Distance(), 1e-9)

	surface.wheel(1)
	assert.InDelta(t, 10.0, oc.Distance(), 1e-9)

	assert.Equal(t, []ControlEventType{ControlEventStart, ControlEventEnd, ControlEventStart, ControlEventEnd}, got)
}

func TestWheel_IgnoredDuringDrag(t *testing.T) {
	oc, surface := newTestController(t)

	surface.mouse(input.EventPointerDown, input.ButtonLeft, 0, 0)
	e := surface.wheel(-1)

	assert.False(t, e.DefaultPrevented())
	assert.InDelta(t, 10.0, oc.Distance(), 1e-9)
}

func TestWheel_OrthographicZoomIsClamped(t *testing.T) {
	cam := NewOrthographicCamera(WithPosition(0, 0, 10))
	surface := newFakeSurface()
	ctrl, err := NewOrbitController(cam, surface, WithZoomBounds(0.5, 2), WithLogger(quietLogger()))
	require.NoError(t, err)

	for i := 0; i < 30; i++ {
		surface.wheel(-1)
	}
	assert.InDelta(t, 2.0, cam.Zoom(), tolerance)
	assert.InDelta(t, 10.0, ctrl.Distance(), 1e-9, "fixed-width cameras zoom without moving")

	for i := 0; i < 60; i++ {
		surface.wheel(1)
	}
	assert.InDelta(t, 0.5, cam.Zoom(), tolerance)
}

func TestUnsupportedCamera_DisablesPanAndZoom(t *testing.T) {
	cam := plainCamera{NewPerspectiveCamera(WithPosition(0, 0, 10))}
	surface := newFakeSurface()
	ctrl, err := NewOrbitController(cam, surface, WithLogger(quietLogger()))
	require.NoError(t, err)

	surface.wheel(-1)
	assert.False(t, ctrl.Config().EnableZoom)
	assert.InDelta(t, 10.0, ctrl.Distance(), 1e-9)

	surface.mouse(input.EventPointerDown, input.ButtonRight, 0, 0)
	surface.mouse(input.EventPointerMove, input.ButtonRight, 50, 50)
	assert.False(t, ctrl.Config().EnablePan)
	assertVecNear(t, mgl64.Vec3{}, ctrl.Target(), tolerance)

	surface.mouse(input.EventPointerUp, input.ButtonRight, 50, 50)
	surface.mouse(input.EventPointerDown, input.ButtonLeft, 400, 300)
	surface.mouse(input.EventPointerMove, input.ButtonLeft, 700, 300)
	assertVecNear(t, mgl64.Vec3{0, 0, -10}, cam.Position(), 1e-9)
}

func TestTouch_PinchDolliesBySpreadRatio(t *testing.T) {
	oc, surface := newTestController(t)
	oc.Config().EnablePan = false

	surface.touch(input.EventPointerDown, 1, 100, 100)
	assert.Equal(t, StateTouchRotate, oc.State())
	surface.touch(input.EventPointerDown, 2, 200, 100)
	assert.Equal(t, StateTouchDollyPan, oc.State())

	surface.touch(input.EventPointerMove, 2, 150, 100)
	assert.InDelta(t, 20.0, oc.Distance(), 1e-9)
}

func TestTouch_PartialLiftReseedsWithoutRestart(t *testing.T) {
	oc, surface := newTestController(t)

	starts, ends := 0, 0
	oc.AddEventListener(ControlEventStart, func(ControlEvent) { starts++ })
	oc.AddEventListener(ControlEventEnd, func(ControlEvent) { ends++ })

	surface.touch(input.EventPointerDown, 1, 100, 100)
	surface.touch(input.EventPointerDown, 2, 200, 100)
	surface.touch(input.EventPointerUp, 2, 200, 100)

	assert.Equal(t, StateTouchRotate, oc.State())
	assert.Equal(t, 1, starts)
	assert.Zero(t, ends)

	// no jump: the rotate anchor is the remaining finger
	surface.touch(input.EventPointerMove, 1, 100, 100)
	assertVecNear(t, mgl64.Vec3{0, 0, 10}, oc.camera.Position(), 1e-9)

	surface.touch(input.EventPointerCancel, 1, 100, 100)
	assert.Equal(t, StateNone, oc.State())
	assert.Equal(t, 1, ends)
	assert.Empty(t, surface.captured)
}

func TestPointerUp_UnknownPointerIsIgnored(t *testing.T) {
	oc, surface := newTestController(t)

	surface.touch(input.EventPointerDown, 1, 0, 0)
	surface.touch(input.EventPointerUp, 42, 0, 0)

	assert.Equal(t, StateTouchRotate, oc.State())
	assert.Equal(t, 1, oc.pointers.Len())
}

func TestKeyDown_PansWhenListening(t *testing.T) {
	oc, surface := newTestController(t)

	e := &input.Event{Kind: input.EventKeyDown, KeyCode: common.KeyArrowUp}
	surface.Dispatch(e)
	assert.False(t, e.DefaultPrevented(), "keys are ignored until ListenToKeyEvents")

	oc.ListenToKeyEvents(surface)
	surface.Dispatch(e)
	assert.True(t, e.DefaultPrevented())
	assert.Greater(t, oc.Target().Y(), 0.0)

	other := &input.Event{Kind: input.EventKeyDown, KeyCode: common.KeyO}
	surface.Dispatch(other)
	assert.False(t, other.DefaultPrevented())

	oc.StopListenToKeyEvents()
	assert.Zero(t, surface.ListenerCount(input.EventKeyDown))
}

func TestContextMenu_PreventedWhileEnabled(t *testing.T) {
	oc, surface := newTestController(t)

	e := &input.Event{Kind: input.EventContextMenu}
	assert.True(t, surface.Dispatch(e))

	oc.Config().Enabled = false
	e = &input.Event{Kind: input.EventContextMenu}
	assert.False(t, surface.Dispatch(e))
}

func TestDispose_DetachesEverything(t *testing.T) {
	oc, surface := newTestController(t)
	oc.ListenToKeyEvents(surface)

	surface.mouse(input.EventPointerDown, input.ButtonLeft, 0, 0)
	require.True(t, surface.captured[1])

	oc.Dispose()
	oc.Dispose()

	for kind := input.EventPointerDown; kind <= input.EventContextMenu; kind++ {
		assert.Zero(t, surface.ListenerCount(kind), kind.String())
	}
	assert.Empty(t, surface.captured)

	before := oc.camera.Position()
	surface.mouse(input.EventPointerMove, input.ButtonLeft, 300, 0)
	assert.Equal(t, before, oc.camera.Position())
}

func TestMouseDrag_PanDistanceByCameraKind(t *testing.T) {
	cases := []struct {
		name        string
		camera      func() Camera
		screenSpace bool
		drag        mgl64.Vec2
		want        func(cam Camera) mgl64.Vec3
	}{
		{
			name:        "perspective screen space follows camera up",
			camera:      func() Camera { return NewPerspectiveCamera(WithPosition(0, 10, 10), WithAspect(800.0/600.0)) },
			screenSpace: true,
			drag:        mgl64.Vec2{0, 60},
			want: func(cam Camera) mgl64.Vec3 {
				d := 2 * 60 * cam.Position().Len() * math.Tan(cam.(FovCamera).Fov()/2) / 600
				return mgl64.Vec3{0, 1, -1}.Normalize().Mul(d)
			},
		},
		{
			name:        "perspective horizon relative stays on the ground plane",
			camera:      func() Camera { return NewPerspectiveCamera(WithPosition(0, 10, 10), WithAspect(800.0/600.0)) },
			screenSpace: false,
			drag:        mgl64.Vec2{0, 60},
			want: func(cam Camera) mgl64.Vec3 {
				d := 2 * 60 * cam.Position().Len() * math.Tan(cam.(FovCamera).Fov()/2) / 600
				return mgl64.Vec3{0, 0, -d}
			},
		},
		{
			name: "fixed width scales by extents over zoom and surface size",
			camera: func() Camera {
				return NewOrthographicCamera(WithPosition(0, 0, 10), WithExtents(-4, 4, 3, -3), WithZoom(2))
			},
			screenSpace: true,
			drag:        mgl64.Vec2{80, 60},
			// 80 * 8 / 2 / 800 left, 60 * 6 / 2 / 600 up
			want: func(Camera) mgl64.Vec3 { return mgl64.Vec3{-0.4, 0.3, 0} },
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cam := tc.camera()
			surface := newFakeSurface()
			ctrl, err := NewOrbitController(cam, surface, WithLogger(quietLogger()))
			require.NoError(t, err)
			ctrl.Config().ScreenSpacePanning = tc.screenSpace
			want := tc.want(cam)

			surface.mouse(input.EventPointerDown, input.ButtonRight, 400, 300)
			surface.mouse(input.EventPointerMove, input.ButtonRight, 400+tc.drag.X(), 300+tc.drag.Y())

			assertVecNear(t, want, ctrl.Target(), 1e-9)
		})
	}
}

func TestTouch_TwoFingerModes(t *testing.T) {
	cases := []struct {
		name        string
		mode        TouchAction
		wantState   GestureState
		wantAzimuth float64
		targetMoves bool
	}{
		{"dolly pan", TouchDollyPan, StateTouchDollyPan, 0, true},
		{"dolly rotate", TouchDollyRotate, StateTouchDollyRotate, twoPi * 25 / 600, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			oc, surface := newTestController(t)
			oc.Config().Touches.Two = tc.mode

			surface.touch(input.EventPointerDown, 1, 100, 100)
			surface.touch(input.EventPointerDown, 2, 200, 100)
			require.Equal(t, tc.wantState, oc.State())

			// spread halves and the center moves 25px left
			surface.touch(input.EventPointerMove, 2, 150, 100)

			assert.InDelta(t, 20.0, oc.Distance(), 1e-9)
			assert.InDelta(t, tc.wantAzimuth, oc.AzimuthalAngle(), 1e-9)
			if tc.targetMoves {
				assert.Greater(t, oc.Target().Len(), 0.0)
			} else {
				assertVecNear(t, mgl64.Vec3{}, oc.Target(), tolerance)
			}
		})
	}
}

func TestUpdate_DampingDecaysPanOffset(t *testing.T) {
	oc, _ := newTestController(t, WithDamping(0.1))

	oc.panOffset = mgl64.Vec3{1, 0, 0}
	oc.Update()
	assert.InDelta(t, 0.1, oc.Target().X(), tolerance)
	assert.InDelta(t, 0.9, oc.panOffset.X(), tolerance)

	oc.Update()
	assert.InDelta(t, 0.19, oc.Target().X(), tolerance)
	assert.InDelta(t, 0.81, oc.panOffset.X(), tolerance)
}

func TestUpdate_ZoomOnlyChangeIsReported(t *testing.T) {
	cam := NewOrthographicCamera(WithPosition(0, 0, 10))
	ctrl, err := NewOrbitController(cam, newFakeSurface(), WithLogger(quietLogger()))
	require.NoError(t, err)
	oc := ctrl.(*orbitControllerImpl)

	changes := 0
	oc.AddEventListener(ControlEventChange, func(ControlEvent) { changes++ })
	position := cam.Position()

	oc.dollyIn(oc.zoomScale())
	assert.True(t, oc.Update())
	assert.Equal(t, 1, changes)
	assertVecNear(t, position, cam.Position(), tolerance)

	assert.False(t, oc.Update())
	assert.Equal(t, 1, changes)
}
