package camera

import (
	"fmt"
	"math"
)

// projection converts gestures into motion for one camera kind.
type projection interface {
	// panDistances converts a pixel delta into world distances along the camera's
	// left and up axes.
	panDistances(oc *orbitControllerImpl, deltaX, deltaY float64) (left, up float64)
	dollyIn(oc *orbitControllerImpl, dollyScale float64)
	dollyOut(oc *orbitControllerImpl, dollyScale float64)
}

// perspectiveProjection dollies by scaling the orbit radius on the next update.
type perspectiveProjection struct {
	cam FovCamera
}

// orthographicProjection zooms the camera immediately; the radius is untouched.
type orthographicProjection struct {
	cam FixedWidthCamera
}

// projection resolves the camera kind once and caches the result.
// It returns nil for cameras that are neither FovCamera nor FixedWidthCamera.
func (oc *orbitControllerImpl) projection() projection {
	if !oc.projResolved {
		switch c := oc.camera.(type) {
		case FovCamera:
			oc.proj = perspectiveProjection{cam: c}
		case FixedWidthCamera:
			oc.proj = orthographicProjection{cam: c}
		}
		oc.projResolved = true
	}
	return oc.proj
}

func cameraTypeName(c Camera) string {
	return fmt.Sprintf("%T", c)
}

func (p perspectiveProjection) panDistances(oc *orbitControllerImpl, deltaX, deltaY float64) (float64, float64) {
	height := float64(oc.surface.ClientHeight())
	if height <= 0 {
		return 0, 0
	}
	targetDistance := p.cam.Position().Sub(oc.target).Len()

	// half of the fov is center to top of screen
	targetDistance *= math.Tan(p.cam.Fov() / 2)

	// height only, so the aspect ratio does not distort speed
	return 2 * deltaX * targetDistance / height, 2 * deltaY * targetDistance / height
}

func (p perspectiveProjection) dollyIn(oc *orbitControllerImpl, dollyScale float64) {
	oc.scale *= dollyScale
}

func (p perspectiveProjection) dollyOut(oc *orbitControllerImpl, dollyScale float64) {
	oc.scale /= dollyScale
}

func (p orthographicProjection) panDistances(oc *orbitControllerImpl, deltaX, deltaY float64) (float64, float64) {
	width := float64(oc.surface.ClientWidth())
	height := float64(oc.surface.ClientHeight())
	if width <= 0 || height <= 0 {
		return 0, 0
	}
	left, right, top, bottom := p.cam.Extents()
	zoom := p.cam.Zoom()
	return deltaX * (right - left) / zoom / width, deltaY * (top - bottom) / zoom / height
}

func (p orthographicProjection) dollyIn(oc *orbitControllerImpl, dollyScale float64) {
	p.setZoom(oc, p.cam.Zoom()/dollyScale)
}

func (p orthographicProjection) dollyOut(oc *orbitControllerImpl, dollyScale float64) {
	p.setZoom(oc, p.cam.Zoom()*dollyScale)
}

func (p orthographicProjection) setZoom(oc *orbitControllerImpl, zoom float64) {
	p.cam.SetZoom(math.Max(oc.cfg.MinZoom, math.Min(oc.cfg.MaxZoom, zoom)))
	p.cam.UpdateProjection()
	oc.zoomChanged = true
}
