package camera

import (
	"math"

	"github.com/Carmen-Shannon/oxy-pitch/engine/input"
	"github.com/go-gl/mathgl/mgl64"
)

// panModifiers swap the rotate and pan mouse bindings while held.
const panModifiers = input.ModCtrl | input.ModMeta | input.ModShift

// --- pointer tracking ---

func (oc *orbitControllerImpl) onPointerDown(e *input.Event) {
	if !oc.cfg.Enabled || oc.pointers.Has(e.PointerID) {
		return
	}

	if oc.pointers.Len() == 0 {
		oc.attachDragListeners()
	}
	oc.surface.SetPointerCapture(e.PointerID)

	oc.pointers.Add(e.PointerID)
	oc.pointers.Track(e.PointerID, e.X, e.Y)

	if e.PointerType == input.PointerTouch {
		oc.selectTouchGesture(false)
	} else {
		oc.onMouseDown(e)
	}
}

func (oc *orbitControllerImpl) onPointerMove(e *input.Event) {
	if !oc.cfg.Enabled || !oc.pointers.Has(e.PointerID) {
		return
	}
	oc.pointers.Track(e.PointerID, e.X, e.Y)

	if e.PointerType == input.PointerTouch {
		oc.onTouchMove()
	} else {
		oc.onMouseMove(e)
	}
}

func (oc *orbitControllerImpl) onPointerUp(e *input.Event) {
	if !oc.pointers.Remove(e.PointerID) {
		return
	}
	oc.surface.ReleasePointerCapture(e.PointerID)

	if oc.pointers.Len() == 0 {
		oc.detachDragListeners()
		oc.endGesture()
		return
	}

	if e.PointerType == input.PointerTouch && oc.state >= StateTouchRotate {
		oc.selectTouchGesture(true)
	}
}

// beginGesture enters state and emits start once per pointer session.
func (oc *orbitControllerImpl) beginGesture(state GestureState) {
	oc.state = state
	if !oc.started {
		oc.started = true
		oc.events.emit(ControlEventStart, state)
	}
}

// endGesture returns to StateNone and emits end on every last release, including
// sessions whose gesture was rejected at pointer-down and never emitted start.
func (oc *orbitControllerImpl) endGesture() {
	last := oc.state
	oc.state = StateNone
	oc.started = false
	oc.events.emit(ControlEventEnd, last)
}

// --- mouse ---

func (oc *orbitControllerImpl) onMouseDown(e *input.Event) {
	var action MouseAction
	switch e.Button {
	case input.ButtonLeft:
		action = oc.cfg.MouseButtons.Left
	case input.ButtonMiddle:
		action = oc.cfg.MouseButtons.Middle
	case input.ButtonRight:
		action = oc.cfg.MouseButtons.Right
	default:
		action = MouseNone
	}

	swap := e.Modifiers&panModifiers != 0
	pos := mgl64.Vec2{e.X, e.Y}

	switch action {
	case MouseDolly:
		if !oc.cfg.EnableZoom {
			return
		}
		oc.dollyStart = pos
		oc.beginGesture(StateDolly)

	case MouseRotate:
		if swap {
			if !oc.cfg.EnablePan {
				return
			}
			oc.panStart = pos
			oc.beginGesture(StatePan)
		} else {
			if !oc.cfg.EnableRotate {
				return
			}
			oc.rotateStart = pos
			oc.beginGesture(StateRotate)
		}

	case MousePan:
		if swap {
			if !oc.cfg.EnableRotate {
				return
			}
			oc.rotateStart = pos
			oc.beginGesture(StateRotate)
		} else {
			if !oc.cfg.EnablePan {
				return
			}
			oc.panStart = pos
			oc.beginGesture(StatePan)
		}

	default:
		oc.state = StateNone
	}
}

func (oc *orbitControllerImpl) onMouseMove(e *input.Event) {
	pos := mgl64.Vec2{e.X, e.Y}

	switch oc.state {
	case StateRotate:
		if !oc.cfg.EnableRotate {
			return
		}
		delta := pos.Sub(oc.rotateStart).Mul(oc.cfg.RotateSpeed)
		oc.rotateByPixels(delta)
		oc.rotateStart = pos
		oc.Update()

	case StateDolly:
		if !oc.cfg.EnableZoom {
			return
		}
		dy := pos.Y() - oc.dollyStart.Y()
		if dy > 0 {
			oc.dollyOut(oc.zoomScale())
		} else if dy < 0 {
			oc.dollyIn(oc.zoomScale())
		}
		oc.dollyStart = pos
		oc.Update()

	case StatePan:
		if !oc.cfg.EnablePan {
			return
		}
		delta := pos.Sub(oc.panStart).Mul(oc.cfg.PanSpeed)
		oc.pan(delta.X(), delta.Y())
		oc.panStart = pos
		oc.Update()
	}
}

// rotateByPixels turns a pixel delta into pending orbit angles.
// Both axes are normalized by the surface height so a full-height drag is one turn.
func (oc *orbitControllerImpl) rotateByPixels(delta mgl64.Vec2) {
	height := float64(oc.surface.ClientHeight())
	if height <= 0 {
		return
	}
	oc.rotateLeft(twoPi * delta.X() / height)
	oc.rotateUp(twoPi * delta.Y() / height)
}

// --- wheel and keys ---

func (oc *orbitControllerImpl) onMouseWheel(e *input.Event) {
	if !oc.cfg.Enabled || !oc.cfg.EnableZoom || oc.state != StateNone {
		return
	}
	e.PreventDefault()

	oc.events.emit(ControlEventStart, StateNone)

	if e.DeltaY < 0 {
		oc.dollyIn(oc.zoomScale())
	} else if e.DeltaY > 0 {
		oc.dollyOut(oc.zoomScale())
	}
	oc.Update()

	oc.events.emit(ControlEventEnd, StateNone)
}

func (oc *orbitControllerImpl) onKeyDown(e *input.Event) {
	if !oc.cfg.Enabled || !oc.cfg.EnablePan {
		return
	}

	k := oc.cfg.KeyPanSpeed
	needsUpdate := true
	switch e.KeyCode {
	case oc.cfg.Keys.Up:
		oc.pan(0, k)
	case oc.cfg.Keys.Bottom:
		oc.pan(0, -k)
	case oc.cfg.Keys.Left:
		oc.pan(k, 0)
	case oc.cfg.Keys.Right:
		oc.pan(-k, 0)
	default:
		needsUpdate = false
	}

	if needsUpdate {
		e.PreventDefault()
		oc.Update()
	}
}

// --- touch ---

// selectTouchGesture picks the gesture for the current pointer count and seeds its start
// positions. With reseed set, a rejected selection drops to StateNone instead of keeping
// the previous gesture.
func (oc *orbitControllerImpl) selectTouchGesture(reseed bool) {
	reject := func() {
		if reseed {
			oc.state = StateNone
		}
	}

	switch oc.pointers.Len() {
	case 1:
		switch oc.cfg.Touches.One {
		case TouchRotate:
			if !oc.cfg.EnableRotate {
				reject()
				return
			}
			oc.rotateStart = oc.pointers.Center()
			oc.beginGesture(StateTouchRotate)
		case TouchPan:
			if !oc.cfg.EnablePan {
				reject()
				return
			}
			oc.panStart = oc.pointers.Center()
			oc.beginGesture(StateTouchPan)
		default:
			oc.state = StateNone
		}

	case 2:
		switch oc.cfg.Touches.Two {
		case TouchDollyPan:
			if !oc.cfg.EnableZoom && !oc.cfg.EnablePan {
				reject()
				return
			}
			if oc.cfg.EnableZoom {
				oc.spreadStart = oc.pointers.Spread()
			}
			if oc.cfg.EnablePan {
				oc.panStart = oc.pointers.Center()
			}
			oc.beginGesture(StateTouchDollyPan)
		case TouchDollyRotate:
			if !oc.cfg.EnableZoom && !oc.cfg.EnableRotate {
				reject()
				return
			}
			if oc.cfg.EnableZoom {
				oc.spreadStart = oc.pointers.Spread()
			}
			if oc.cfg.EnableRotate {
				oc.rotateStart = oc.pointers.Center()
			}
			oc.beginGesture(StateTouchDollyRotate)
		default:
			oc.state = StateNone
		}

	default:
		oc.state = StateNone
	}
}

func (oc *orbitControllerImpl) onTouchMove() {
	switch oc.state {
	case StateTouchRotate:
		if !oc.cfg.EnableRotate {
			return
		}
		oc.touchMoveRotate()
		oc.Update()

	case StateTouchPan:
		if !oc.cfg.EnablePan {
			return
		}
		oc.touchMovePan()
		oc.Update()

	case StateTouchDollyPan:
		if !oc.cfg.EnableZoom && !oc.cfg.EnablePan {
			return
		}
		if oc.cfg.EnableZoom {
			oc.touchMoveDolly()
		}
		if oc.cfg.EnablePan {
			oc.touchMovePan()
		}
		oc.Update()

	case StateTouchDollyRotate:
		if !oc.cfg.EnableZoom && !oc.cfg.EnableRotate {
			return
		}
		if oc.cfg.EnableZoom {
			oc.touchMoveDolly()
		}
		if oc.cfg.EnableRotate {
			oc.touchMoveRotate()
		}
		oc.Update()
	}
}

func (oc *orbitControllerImpl) touchMoveRotate() {
	end := oc.pointers.Center()
	delta := end.Sub(oc.rotateStart).Mul(oc.cfg.RotateSpeed)
	oc.rotateByPixels(delta)
	oc.rotateStart = end
}

func (oc *orbitControllerImpl) touchMovePan() {
	end := oc.pointers.Center()
	delta := end.Sub(oc.panStart).Mul(oc.cfg.PanSpeed)
	oc.pan(delta.X(), delta.Y())
	oc.panStart = end
}

// touchMoveDolly dollies by the ratio of the current to the previous pointer spread.
func (oc *orbitControllerImpl) touchMoveDolly() {
	if oc.pointers.Len() < 2 {
		return
	}
	spread := oc.pointers.Spread()
	if oc.spreadStart > 0 && spread > 0 {
		oc.dollyOut(math.Pow(spread/oc.spreadStart, oc.cfg.ZoomSpeed))
	}
	oc.spreadStart = spread
}
