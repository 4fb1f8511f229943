package window

import "github.com/Carmen-Shannon/oxy-pitch/engine/input"

// The handlers below translate platform callbacks into input events. They run on the
// window thread from inside PollEvents.

func (w *engineWindow) inside(x, y float64) bool {
	return x >= 0 && y >= 0 && x < float64(w.width) && y < float64(w.height)
}

func (w *engineWindow) pointerEvent(kind input.EventKind, button int, mods input.Modifiers) *input.Event {
	return &input.Event{
		Kind:        kind,
		PointerID:   MousePointerID,
		PointerType: input.PointerMouse,
		X:           w.cursorX,
		Y:           w.cursorY,
		Button:      button,
		Modifiers:   mods,
	}
}

// mouseButton reports the first pressed button as pointer-down and the release of the last
// held button as pointer-up. Chorded presses in between only update the held set.
func (w *engineWindow) mouseButton(button int, pressed bool, mods input.Modifiers) {
	if button < 0 || button > 7 {
		return
	}
	bit := uint8(1) << button

	if pressed {
		first := w.pressed == 0
		w.pressed |= bit
		if first {
			w.Dispatch(w.pointerEvent(input.EventPointerDown, button, mods))
		}
		if button == input.ButtonRight {
			w.Dispatch(w.pointerEvent(input.EventContextMenu, button, mods))
		}
		return
	}

	if w.pressed&bit == 0 {
		return
	}
	w.pressed &^= bit
	if w.pressed == 0 {
		w.Dispatch(w.pointerEvent(input.EventPointerUp, button, mods))
	}
}

// cursorMoved reports movement inside the window, or anywhere while the mouse is captured.
func (w *engineWindow) cursorMoved(x, y float64) {
	w.cursorX, w.cursorY = x, y
	if !w.inside(x, y) && !w.captured[MousePointerID] {
		return
	}
	w.Dispatch(w.pointerEvent(input.EventPointerMove, -1, 0))
}

// scrolled reports a wheel event. Platform scroll offsets are positive toward the user,
// so the sign is flipped.
func (w *engineWindow) scrolled(yoff float64) {
	if yoff == 0 || !w.inside(w.cursorX, w.cursorY) {
		return
	}
	w.Dispatch(&input.Event{
		Kind:        input.EventWheel,
		PointerID:   MousePointerID,
		PointerType: input.PointerMouse,
		X:           w.cursorX,
		Y:           w.cursorY,
		DeltaY:      -yoff,
	})
}

func (w *engineWindow) keyDown(key int, mods input.Modifiers) {
	w.Dispatch(&input.Event{Kind: input.EventKeyDown, KeyCode: key, Modifiers: mods})
}

// focusLost cancels an in-progress drag.
func (w *engineWindow) focusLost() {
	if w.pressed == 0 {
		return
	}
	w.pressed = 0
	w.Dispatch(w.pointerEvent(input.EventPointerCancel, -1, 0))
}

func (w *engineWindow) resized(width, height int) {
	w.width = width
	w.height = height
	if w.onResize != nil {
		w.onResize(width, height)
	}
}
