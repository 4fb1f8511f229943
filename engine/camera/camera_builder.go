package camera

import "github.com/go-gl/mathgl/mgl64"

// CameraBuilderOption is a functional option for configuring a camera of either kind.
// Options that do not apply to a kind (e.g. WithFov on an orthographic camera) are stored but unused.
type CameraBuilderOption func(*cameraImpl)

// WithPosition sets the camera's initial world-space position.
//
// Parameters:
//   - x, y, z: world-space coordinates
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's position
func WithPosition(x, y, z float64) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.position = mgl64.Vec3{x, y, z}
	}
}

// WithUp sets the camera's up vector. The orbit axis of a controller follows this vector.
//
// Parameters:
//   - x, y, z: up vector components
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's up vector
func WithUp(x, y, z float64) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.up = mgl64.Vec3{x, y, z}
	}
}

// WithLookAt orients the camera toward a point once all other options are applied.
//
// Parameters:
//   - x, y, z: world-space point to face
//
// Returns:
//   - CameraBuilderOption: a function that sets the initial look-at point
func WithLookAt(x, y, z float64) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.lookAt = &mgl64.Vec3{x, y, z}
	}
}

// WithFov sets the vertical field of view in radians (perspective cameras).
//
// Parameters:
//   - fov: field of view in radians
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's field of view
func WithFov(fov float64) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.fov = fov
	}
}

// WithAspect sets the aspect ratio (width / height).
//
// Parameters:
//   - aspect: the aspect ratio to set
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's aspect ratio
func WithAspect(aspect float64) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.aspect = aspect
	}
}

// WithNear sets the near clipping plane distance.
//
// Parameters:
//   - near: near plane distance
//
// Returns:
//   - CameraBuilderOption: a function that sets the near plane
func WithNear(near float64) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.near = near
	}
}

// WithFar sets the far clipping plane distance.
//
// Parameters:
//   - far: far plane distance
//
// Returns:
//   - CameraBuilderOption: functional option to set the far plane
func WithFar(far float64) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.far = far
	}
}

// WithZoom sets the initial zoom factor.
//
// Parameters:
//   - zoom: zoom factor (1 = unzoomed)
//
// Returns:
//   - CameraBuilderOption: functional option to set the zoom
func WithZoom(zoom float64) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.zoom = zoom
	}
}

// WithExtents sets the view-volume bounds (orthographic cameras).
//
// Parameters:
//   - left, right, top, bottom: the frustum planes in view space
//
// Returns:
//   - CameraBuilderOption: functional option to set the extents
func WithExtents(left, right, top, bottom float64) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.left, c.right, c.top, c.bottom = left, right, top, bottom
	}
}
