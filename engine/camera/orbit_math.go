package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const twoPi = 2 * math.Pi

// poleEpsilon keeps the polar angle off the exact poles where the azimuth is undefined.
const poleEpsilon = 0.000001

// spherical is a point relative to the orbit target: radius, polar angle phi measured
// from +Y, and azimuth theta measured from +Z toward +X.
type spherical struct {
	radius float64
	phi    float64
	theta  float64
}

func sphericalFromVec3(v mgl64.Vec3) spherical {
	r := v.Len()
	if r == 0 {
		return spherical{}
	}
	return spherical{
		radius: r,
		theta:  math.Atan2(v.X(), v.Z()),
		phi:    math.Acos(mgl64.Clamp(v.Y()/r, -1, 1)),
	}
}

func (s spherical) vec3() mgl64.Vec3 {
	sinPhiRadius := math.Sin(s.phi) * s.radius
	return mgl64.Vec3{
		sinPhiRadius * math.Sin(s.theta),
		math.Cos(s.phi) * s.radius,
		sinPhiRadius * math.Cos(s.theta),
	}
}

// makeSafe nudges phi off the poles.
func (s *spherical) makeSafe() {
	s.phi = math.Max(poleEpsilon, math.Min(math.Pi-poleEpsilon, s.phi))
}

// clampAzimuth restricts theta to [min, max]. Infinite bounds leave theta untouched.
// Finite bounds are first brought into (-π, π]; when min > max the allowed interval wraps
// through ±π and theta snaps to the bound on its side of the interval midpoint.
func clampAzimuth(theta, min, max float64) float64 {
	if math.IsInf(min, 0) || math.IsInf(max, 0) || math.IsNaN(min) || math.IsNaN(max) {
		return theta
	}

	if min < -math.Pi {
		min += twoPi
	} else if min > math.Pi {
		min -= twoPi
	}
	if max < -math.Pi {
		max += twoPi
	} else if max > math.Pi {
		max -= twoPi
	}

	if min <= max {
		return math.Max(min, math.Min(max, theta))
	}
	if theta > (min+max)/2 {
		return math.Max(min, theta)
	}
	return math.Min(max, theta)
}

func (oc *orbitControllerImpl) autoRotationAngle() float64 {
	return twoPi / 60 / 60 * oc.cfg.AutoRotateSpeed
}

func (oc *orbitControllerImpl) zoomScale() float64 {
	return math.Pow(0.95, oc.cfg.ZoomSpeed)
}

func (oc *orbitControllerImpl) rotateLeft(angle float64) {
	oc.sphericalDelta.theta -= angle
}

func (oc *orbitControllerImpl) rotateUp(angle float64) {
	oc.sphericalDelta.phi -= angle
}

// panLeft moves the pending pan along the camera's local -X axis.
func (oc *orbitControllerImpl) panLeft(distance float64, orientation mgl64.Quat) {
	v := orientation.Rotate(mgl64.Vec3{1, 0, 0}).Mul(-distance)
	oc.panOffset = oc.panOffset.Add(v)
}

// panUp moves the pending pan along the camera's local +Y axis, or along the
// horizon-relative direction up × right when screen-space panning is off.
func (oc *orbitControllerImpl) panUp(distance float64, orientation mgl64.Quat) {
	var v mgl64.Vec3
	if oc.cfg.ScreenSpacePanning {
		v = orientation.Rotate(mgl64.Vec3{0, 1, 0})
	} else {
		right := orientation.Rotate(mgl64.Vec3{1, 0, 0})
		v = oc.camera.Up().Cross(right)
	}
	oc.panOffset = oc.panOffset.Add(v.Mul(distance))
}

// pan converts a pixel delta (right and down positive) into a pending world-space pan.
func (oc *orbitControllerImpl) pan(deltaX, deltaY float64) {
	p := oc.projection()
	if p == nil {
		oc.logger.Warn("orbit controller encountered an unknown camera type, pan disabled",
			"capability", "pan", "camera", cameraTypeName(oc.camera))
		oc.cfg.EnablePan = false
		return
	}
	left, up := p.panDistances(oc, deltaX, deltaY)
	orientation := oc.camera.Orientation()
	oc.panLeft(left, orientation)
	oc.panUp(up, orientation)
}

func (oc *orbitControllerImpl) dollyOut(dollyScale float64) {
	p := oc.projection()
	if p == nil {
		oc.warnZoomUnsupported()
		return
	}
	p.dollyOut(oc, dollyScale)
}

func (oc *orbitControllerImpl) dollyIn(dollyScale float64) {
	p := oc.projection()
	if p == nil {
		oc.warnZoomUnsupported()
		return
	}
	p.dollyIn(oc, dollyScale)
}

func (oc *orbitControllerImpl) warnZoomUnsupported() {
	oc.logger.Warn("orbit controller encountered an unknown camera type, dolly/zoom disabled",
		"capability", "zoom", "camera", cameraTypeName(oc.camera))
	oc.cfg.EnableZoom = false
}

func (oc *orbitControllerImpl) Update() bool {
	position := oc.camera.Position()

	offset := oc.quat.Rotate(position.Sub(oc.target))
	oc.spherical = sphericalFromVec3(offset)

	if oc.cfg.AutoRotate && oc.state == StateNone {
		oc.rotateLeft(oc.autoRotationAngle())
	}

	if oc.cfg.EnableDamping {
		oc.spherical.theta += oc.sphericalDelta.theta * oc.cfg.DampingFactor
		oc.spherical.phi += oc.sphericalDelta.phi * oc.cfg.DampingFactor
	} else {
		oc.spherical.theta += oc.sphericalDelta.theta
		oc.spherical.phi += oc.sphericalDelta.phi
	}

	oc.spherical.theta = clampAzimuth(oc.spherical.theta, oc.cfg.MinAzimuthAngle, oc.cfg.MaxAzimuthAngle)

	oc.spherical.phi = math.Max(oc.cfg.MinPolarAngle, math.Min(oc.cfg.MaxPolarAngle, oc.spherical.phi))
	oc.spherical.makeSafe()

	oc.spherical.radius *= oc.scale
	oc.spherical.radius = math.Max(oc.cfg.MinDistance, math.Min(oc.cfg.MaxDistance, oc.spherical.radius))

	if oc.cfg.EnableDamping {
		oc.target = oc.target.Add(oc.panOffset.Mul(oc.cfg.DampingFactor))
	} else {
		oc.target = oc.target.Add(oc.panOffset)
	}

	offset = oc.quatInverse.Rotate(oc.spherical.vec3())
	oc.camera.SetPosition(oc.target.Add(offset))
	oc.camera.LookAt(oc.target)

	if oc.cfg.EnableDamping {
		oc.sphericalDelta.theta *= 1 - oc.cfg.DampingFactor
		oc.sphericalDelta.phi *= 1 - oc.cfg.DampingFactor
		oc.panOffset = oc.panOffset.Mul(1 - oc.cfg.DampingFactor)
	} else {
		oc.sphericalDelta = spherical{}
		oc.panOffset = mgl64.Vec3{}
	}

	oc.scale = 1

	// min(displacement, rotation in radians)^2 > eps, using cos(x/2) ≈ 1 - x²/8
	newPosition := oc.camera.Position()
	newQuaternion := oc.camera.Orientation()
	if oc.zoomChanged ||
		oc.lastPosition.Sub(newPosition).LenSqr() > changeEpsilon ||
		8*(1-oc.lastQuaternion.Dot(newQuaternion)) > changeEpsilon {

		oc.events.emit(ControlEventChange, oc.state)

		oc.lastPosition = newPosition
		oc.lastQuaternion = newQuaternion
		oc.zoomChanged = false
		return true
	}

	return false
}
