package camera

import (
	"math"
	"sync"

	"github.com/go-gl/mathgl/mgl64"
)

// Camera defines the camera collaborator driven by an OrbitController.
// A camera holds a world-space pose (position + orientation), an up vector used as the
// orbit axis, a zoom factor and projection parameters. It looks down its local -Z axis.
type Camera interface {
	// Position returns the camera's world-space position.
	//
	// Returns:
	//   - mgl64.Vec3: world-space camera position
	Position() mgl64.Vec3

	// SetPosition sets the camera's world-space position without changing its orientation.
	//
	// Parameters:
	//   - p: world-space position
	SetPosition(p mgl64.Vec3)

	// Up returns the camera's up vector.
	//
	// Returns:
	//   - mgl64.Vec3: up vector (not necessarily normalized)
	Up() mgl64.Vec3

	// SetUp sets the camera's up vector.
	//
	// Parameters:
	//   - up: up vector
	SetUp(up mgl64.Vec3)

	// Orientation returns the camera's world-space rotation.
	//
	// Returns:
	//   - mgl64.Quat: unit quaternion rotating local axes into world space
	Orientation() mgl64.Quat

	// LookAt rotates the camera so its -Z axis points at target, keeping Up as the vertical reference.
	//
	// Parameters:
	//   - target: world-space point to face
	LookAt(target mgl64.Vec3)

	// Zoom returns the camera's zoom factor (1 = unzoomed).
	//
	// Returns:
	//   - float64: the zoom factor
	Zoom() float64

	// SetZoom sets the zoom factor. Call UpdateProjection afterwards to refresh matrices.
	//
	// Parameters:
	//   - zoom: the new zoom factor
	SetZoom(zoom float64)

	// Aspect returns the aspect ratio (width / height).
	//
	// Returns:
	//   - float64: the aspect ratio
	Aspect() float64

	// SetAspect sets the aspect ratio and recomputes the projection.
	//
	// Parameters:
	//   - aspect: width / height
	SetAspect(aspect float64)

	// UpdateProjection recomputes the projection matrix from the current projection parameters.
	UpdateProjection()

	// ViewMatrix returns the world-to-view matrix.
	//
	// Returns:
	//   - mgl64.Mat4: the view matrix
	ViewMatrix() mgl64.Mat4

	// ProjectionMatrix returns the current projection matrix.
	//
	// Returns:
	//   - mgl64.Mat4: the projection matrix
	ProjectionMatrix() mgl64.Mat4

	// ViewProjectionMatrix returns ProjectionMatrix * ViewMatrix.
	//
	// Returns:
	//   - mgl64.Mat4: the combined matrix
	ViewProjectionMatrix() mgl64.Mat4
}

// FovCamera is a perspective camera defined by a vertical field of view.
type FovCamera interface {
	Camera

	// Fov returns the vertical field of view in radians.
	//
	// Returns:
	//   - float64: field of view in radians
	Fov() float64

	// SetFov sets the vertical field of view in radians and recomputes the projection.
	//
	// Parameters:
	//   - fov: field of view in radians
	SetFov(fov float64)
}

// FixedWidthCamera is an orthographic camera defined by its view-volume extents.
type FixedWidthCamera interface {
	Camera

	// Extents returns the unzoomed view-volume bounds in view space.
	//
	// Returns:
	//   - left, right, top, bottom: the frustum planes
	Extents() (left, right, top, bottom float64)

	// SetExtents sets the unzoomed view-volume bounds and recomputes the projection.
	//
	// Parameters:
	//   - left, right, top, bottom: the frustum planes
	SetExtents(left, right, top, bottom float64)
}

// cameraImpl holds the state shared by both camera kinds.
// The project function is supplied by the kind and builds the projection matrix.
type cameraImpl struct {
	mu *sync.Mutex

	position    mgl64.Vec3
	up          mgl64.Vec3
	orientation mgl64.Quat
	zoom        float64

	fov    float64
	aspect float64
	near   float64
	far    float64

	left, right, top, bottom float64

	lookAt *mgl64.Vec3

	projectionMatrix mgl64.Mat4
	project          func(c *cameraImpl) mgl64.Mat4
}

type perspectiveCamera struct {
	*cameraImpl
}

type orthographicCamera struct {
	*cameraImpl
}

var (
	_ FovCamera        = perspectiveCamera{}
	_ FixedWidthCamera = orthographicCamera{}
)

func newCameraImpl(project func(c *cameraImpl) mgl64.Mat4, options []CameraBuilderOption) *cameraImpl {
	c := &cameraImpl{
		mu:          &sync.Mutex{},
		up:          mgl64.Vec3{0, 1, 0},
		orientation: mgl64.QuatIdent(),
		zoom:        1,
		fov:         50.0 * (math.Pi / 180.0),
		aspect:      1,
		near:        0.1,
		far:         2000,
		left:        -1,
		right:       1,
		top:         1,
		bottom:      -1,
		project:     project,
	}
	for _, option := range options {
		option(c)
	}
	if c.lookAt != nil {
		c.orientation = lookRotation(c.position, *c.lookAt, c.up)
		c.lookAt = nil
	}
	c.projectionMatrix = c.project(c)
	return c
}

// NewPerspectiveCamera creates a field-of-view camera.
// Defaults: 50° vertical FOV, aspect 1, near 0.1, far 2000, positioned at the origin looking down -Z.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - FovCamera: the newly created camera
func NewPerspectiveCamera(options ...CameraBuilderOption) FovCamera {
	return perspectiveCamera{newCameraImpl(perspectiveProjectionMatrix, options)}
}

// NewOrthographicCamera creates a fixed-width camera.
// Defaults: extents [-1, 1] on both axes, near 0.1, far 2000.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - FixedWidthCamera: the newly created camera
func NewOrthographicCamera(options ...CameraBuilderOption) FixedWidthCamera {
	return orthographicCamera{newCameraImpl(orthographicProjectionMatrix, options)}
}

// perspectiveProjectionMatrix narrows the field of view by the zoom factor.
func perspectiveProjectionMatrix(c *cameraImpl) mgl64.Mat4 {
	fovy := 2 * math.Atan(math.Tan(c.fov/2)/c.zoom)
	return mgl64.Perspective(fovy, c.aspect, c.near, c.far)
}

// orthographicProjectionMatrix shrinks the extents around their center by the zoom factor.
func orthographicProjectionMatrix(c *cameraImpl) mgl64.Mat4 {
	dx := (c.right - c.left) / (2 * c.zoom)
	dy := (c.top - c.bottom) / (2 * c.zoom)
	cx := (c.right + c.left) / 2
	cy := (c.top + c.bottom) / 2
	return mgl64.Ortho(cx-dx, cx+dx, cy-dy, cy+dy, c.near, c.far)
}

// lookRotation builds the rotation that points the local -Z axis from eye toward target.
// When up is parallel to the view direction the direction is nudged to keep the basis valid.
func lookRotation(eye, target, up mgl64.Vec3) mgl64.Quat {
	z := eye.Sub(target)
	if z.LenSqr() == 0 {
		z = mgl64.Vec3{0, 0, 1}
	}
	z = z.Normalize()

	x := up.Cross(z)
	if x.LenSqr() == 0 {
		if math.Abs(up.Z()) == 1 {
			z[0] += 0.0001
		} else {
			z[2] += 0.0001
		}
		z = z.Normalize()
		x = up.Cross(z)
	}
	x = x.Normalize()
	y := z.Cross(x)

	return mgl64.Mat4ToQuat(mgl64.Mat3FromCols(x, y, z).Mat4()).Normalize()
}

func (c *cameraImpl) Position() mgl64.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position
}

func (c *cameraImpl) SetPosition(p mgl64.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.position = p
}

func (c *cameraImpl) Up() mgl64.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.up
}

func (c *cameraImpl) SetUp(up mgl64.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.up = up
}

func (c *cameraImpl) Orientation() mgl64.Quat {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.orientation
}

func (c *cameraImpl) LookAt(target mgl64.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.orientation = lookRotation(c.position, target, c.up)
}

func (c *cameraImpl) Zoom() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.zoom
}

func (c *cameraImpl) SetZoom(zoom float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.zoom = zoom
}

func (c *cameraImpl) Aspect() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aspect
}

func (c *cameraImpl) SetAspect(aspect float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.aspect = aspect
	c.projectionMatrix = c.project(c)
}

func (c *cameraImpl) UpdateProjection() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.projectionMatrix = c.project(c)
}

func (c *cameraImpl) ViewMatrix() mgl64.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMatrix()
}

func (c *cameraImpl) ProjectionMatrix() mgl64.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix
}

func (c *cameraImpl) ViewProjectionMatrix() mgl64.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix.Mul4(c.viewMatrix())
}

// viewMatrix inverts the camera's world transform. Caller must hold the mutex.
func (c *cameraImpl) viewMatrix() mgl64.Mat4 {
	return c.orientation.Inverse().Mat4().Mul4(mgl64.Translate3D(-c.position[0], -c.position[1], -c.position[2]))
}

func (c perspectiveCamera) Fov() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fov
}

func (c perspectiveCamera) SetFov(fov float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fov = fov
	c.projectionMatrix = c.project(c.cameraImpl)
}

func (c orthographicCamera) Extents() (left, right, top, bottom float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.left, c.right, c.top, c.bottom
}

func (c orthographicCamera) SetExtents(left, right, top, bottom float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.left, c.right, c.top, c.bottom = left, right, top, bottom
	c.projectionMatrix = c.project(c.cameraImpl)
}
