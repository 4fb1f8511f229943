package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func TestLookAt_FacesTarget(t *testing.T) {
	cases := []struct {
		name     string
		position mgl64.Vec3
	}{
		{"from +Z", mgl64.Vec3{0, 0, 10}},
		{"from +X", mgl64.Vec3{10, 0, 0}},
		{"from above", mgl64.Vec3{0, 10, 0}},
		{"diagonal", mgl64.Vec3{3, -4, 5}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cam := NewPerspectiveCamera(WithPosition(tc.position[0], tc.position[1], tc.position[2]))
			cam.LookAt(mgl64.Vec3{})

			forward := cam.Orientation().Rotate(mgl64.Vec3{0, 0, -1})
			assertVecNear(t, tc.position.Mul(-1).Normalize(), forward, 1e-3)
		})
	}
}

func TestViewMatrix_MovesTargetInFront(t *testing.T) {
	cam := NewPerspectiveCamera(WithPosition(0, 0, 10), WithLookAt(0, 0, 0))

	v := cam.ViewMatrix().Mul4x1(mgl64.Vec4{0, 0, 0, 1})
	assertVecNear(t, mgl64.Vec3{0, 0, -10}, v.Vec3(), 1e-9)
}

func TestPerspectiveProjection_ZoomNarrowsFov(t *testing.T) {
	cam := NewPerspectiveCamera(WithFov(math.Pi / 2))
	assert.InDelta(t, 1.0, cam.ProjectionMatrix().At(1, 1), 1e-9)

	cam.SetZoom(2)
	cam.UpdateProjection()
	assert.InDelta(t, 2.0, cam.ProjectionMatrix().At(1, 1), 1e-9)
}

func TestOrthographicProjection_ZoomShrinksExtents(t *testing.T) {
	cam := NewOrthographicCamera(WithExtents(-1, 1, 1, -1))
	assert.InDelta(t, 1.0, cam.ProjectionMatrix().At(0, 0), 1e-9)

	cam.SetZoom(2)
	assert.InDelta(t, 1.0, cam.ProjectionMatrix().At(0, 0), 1e-9, "projection waits for UpdateProjection")

	cam.UpdateProjection()
	assert.InDelta(t, 2.0, cam.ProjectionMatrix().At(0, 0), 1e-9)

	l, r, top, b := cam.Extents()
	assert.Equal(t, []float64{-1, 1, 1, -1}, []float64{l, r, top, b})
}
