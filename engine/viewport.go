package engine

import (
	"github.com/Carmen-Shannon/oxy-pitch/engine/camera"
	"github.com/Carmen-Shannon/oxy-pitch/engine/renderer"
)

// Viewport pairs a camera with the renderer that draws through it.
// Frames are only drawn after Invalidate, so an idle camera costs no GPU work.
type Viewport struct {
	camera   camera.Camera
	renderer renderer.Renderer
	dirty    bool
}

// NewViewport creates a viewport that draws on its first frame.
//
// Parameters:
//   - cam: the camera supplying the view-projection
//   - r: the renderer presenting frames (may be nil for headless use)
//
// Returns:
//   - *Viewport: the new viewport
func NewViewport(cam camera.Camera, r renderer.Renderer) *Viewport {
	return &Viewport{camera: cam, renderer: r, dirty: true}
}

// Camera returns the viewport camera.
func (v *Viewport) Camera() camera.Camera {
	return v.camera
}

// Renderer returns the viewport renderer.
func (v *Viewport) Renderer() renderer.Renderer {
	return v.renderer
}

// Invalidate schedules a redraw on the next frame.
func (v *Viewport) Invalidate() {
	v.dirty = true
}

// Dirty reports whether a redraw is pending.
func (v *Viewport) Dirty() bool {
	return v.dirty
}

// Resize updates the camera aspect and the renderer surface, then schedules a redraw.
// Zero sizes (minimized windows) leave the aspect untouched.
//
// Parameters:
//   - width, height: the new surface size in pixels
//
// Returns:
//   - error: an error from the renderer
func (v *Viewport) Resize(width, height int) error {
	if width > 0 && height > 0 && v.camera != nil {
		v.camera.SetAspect(float64(width) / float64(height))
	}
	v.dirty = true
	if v.renderer == nil {
		return nil
	}
	return v.renderer.Resize(width, height)
}

// Draw redraws if invalidated.
//
// Returns:
//   - bool: true if a frame was drawn
//   - error: an error from the renderer; the viewport stays dirty and retries next frame
func (v *Viewport) Draw() (bool, error) {
	if !v.dirty {
		return false, nil
	}
	if v.renderer != nil {
		if v.camera != nil {
			v.renderer.SetViewProjection(v.camera.ViewProjectionMatrix())
		}
		if err := v.renderer.Redraw(); err != nil {
			return false, err
		}
	}
	v.dirty = false
	return true, nil
}
