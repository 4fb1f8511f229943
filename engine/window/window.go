package window

import (
	"fmt"
	"runtime"

	"github.com/Carmen-Shannon/oxy-pitch/engine/input"
	"github.com/cogentcore/webgpu/wgpu"
)

// Window provides platform windowing and delivers its input as an input.Surface.
// Wraps platform-specific window implementations with a common interface.
//
// The mouse is reported as a single pointer (MousePointerID) whose pointer-down carries the
// first pressed button. Scroll is reported as wheel events using the browser sign convention:
// a positive DeltaY scrolls away from the user.
type Window interface {
	input.Surface

	// SetUpdateCallback sets the function called each message loop iteration.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetUpdateCallback(callback func())

	// SetResizeCallback sets the function called when the framebuffer is resized.
	//
	// Parameters:
	//   - callback: function receiving new width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// SurfaceDescriptor returns a wgpu.SurfaceDescriptor suitable for creating a WebGPU surface.
	// The descriptor is platform-appropriate (Windows HWND, X11 Xlib, Wayland, macOS Metal, etc.)
	// and is created by the wgpuglfw bridge from the underlying GLFW window.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the platform-specific surface descriptor, or nil if window is not initialized
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// IsRunning returns true if the window is still active.
	//
	// Returns:
	//   - bool: true if window is running, false if closed
	IsRunning() bool

	// Close closes the window and releases platform resources.
	//
	// Returns:
	//   - error: error if close operation fails
	Close() error

	// RequestClose asks the message loop to exit after the current iteration.
	// The window stays open until Close is called.
	RequestClose()

	// ProcessMessages runs the window message loop on the calling thread.
	// Blocks until the window is closed. Calls the update callback each iteration.
	ProcessMessages()

	// PointerCaptured reports whether a pointer is currently captured.
	//
	// Parameters:
	//   - pointerID: the pointer to check
	//
	// Returns:
	//   - bool: true while captured
	PointerCaptured(pointerID int) bool
}

// MousePointerID is the pointer id reported for the mouse.
const MousePointerID = 1

// engineWindow is the implementation of the Window interface.
// Holds window configuration, GLFW state, listeners and pointer state.
type engineWindow struct {
	input.Listeners

	title string

	// Size limits in pixels; Unbounded disables a limit.
	maxWidth  int
	maxHeight int
	minWidth  int
	minHeight int

	// width and height are the framebuffer size in pixels.
	width  int
	height int

	// internalWindow holds the platform-specific window data (glfwWindow).
	internalWindow any

	onUpdate func()
	onResize func(width, height int)

	// pressed is the bit set of held mouse buttons.
	pressed uint8
	// cursorX and cursorY are the last cursor position in pixels.
	cursorX, cursorY float64
	captured         map[int]bool
}

var _ Window = &engineWindow{}

func newEngineWindow(options []WindowBuilderOption) *engineWindow {
	w := &engineWindow{
		title:     "Oxy Pitch",
		maxWidth:  Unbounded,
		maxHeight: Unbounded,
		minWidth:  320,
		minHeight: 240,
		width:     1280,
		height:    720,
		captured:  make(map[int]bool),
	}
	for _, opt := range options {
		opt(w)
	}
	return w
}

// NewWindow creates and shows a new Window with the specified options.
// Applies default values first, then each option in order.
// Must be called from the thread that will run ProcessMessages.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the configured window
//   - error: error if the platform window could not be created
func NewWindow(options ...WindowBuilderOption) (Window, error) {
	w := newEngineWindow(options)
	if err := newPlatformWindow(w); err != nil {
		return nil, fmt.Errorf("failed to create platform window: %w", err)
	}
	return w, nil
}

func (w *engineWindow) SetUpdateCallback(callback func()) {
	w.onUpdate = callback
}

func (w *engineWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformGetSurfaceDescriptor(w)
}

func (w *engineWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *engineWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *engineWindow) RequestClose() {
	platformRequestClose(w)
}

func (w *engineWindow) ProcessMessages() {
	for w.IsRunning() {
		if succ := platformProcessMessages(w); !succ {
			break
		}

		if w.onUpdate != nil {
			w.onUpdate()
		}

		runtime.Gosched()
	}
}

func (w *engineWindow) ClientWidth() int {
	return w.width
}

func (w *engineWindow) ClientHeight() int {
	return w.height
}

func (w *engineWindow) SetPointerCapture(pointerID int) {
	w.captured[pointerID] = true
}

func (w *engineWindow) ReleasePointerCapture(pointerID int) {
	delete(w.captured, pointerID)
}

func (w *engineWindow) PointerCaptured(pointerID int) bool {
	return w.captured[pointerID]
}
