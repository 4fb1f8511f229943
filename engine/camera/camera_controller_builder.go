package camera

import (
	"log/slog"

	"github.com/go-gl/mathgl/mgl64"
)

// OrbitControllerOption is a functional option for configuring an OrbitController.
type OrbitControllerOption func(*orbitControllerImpl)

// WithOrbitConfig replaces the whole option set.
//
// Parameters:
//   - cfg: the configuration to use
//
// Returns:
//   - OrbitControllerOption: functional option to set the configuration
func WithOrbitConfig(cfg OrbitConfig) OrbitControllerOption {
	return func(oc *orbitControllerImpl) {
		oc.cfg = cfg
	}
}

// WithTarget sets the initial orbit target.
//
// Parameters:
//   - x, y, z: world-space coordinates of the target
//
// Returns:
//   - OrbitControllerOption: functional option to set the target position
func WithTarget(x, y, z float64) OrbitControllerOption {
	return func(oc *orbitControllerImpl) {
		oc.target = mgl64.Vec3{x, y, z}
	}
}

// WithDistanceBounds sets the minimum and maximum dolly distance.
//
// Parameters:
//   - min: minimum distance from the target
//   - max: maximum distance from the target
//
// Returns:
//   - OrbitControllerOption: functional option to set distance bounds
func WithDistanceBounds(min, max float64) OrbitControllerOption {
	return func(oc *orbitControllerImpl) {
		oc.cfg.MinDistance = min
		oc.cfg.MaxDistance = max
	}
}

// WithZoomBounds sets the minimum and maximum zoom of a fixed-width camera.
//
// Parameters:
//   - min: minimum zoom factor
//   - max: maximum zoom factor
//
// Returns:
//   - OrbitControllerOption: functional option to set zoom bounds
func WithZoomBounds(min, max float64) OrbitControllerOption {
	return func(oc *orbitControllerImpl) {
		oc.cfg.MinZoom = min
		oc.cfg.MaxZoom = max
	}
}

// WithPolarBounds sets the vertical orbit limits.
//
// Parameters:
//   - min: minimum polar angle in radians (0 looks straight down the up axis)
//   - max: maximum polar angle in radians (at most π)
//
// Returns:
//   - OrbitControllerOption: functional option to set polar bounds
func WithPolarBounds(min, max float64) OrbitControllerOption {
	return func(oc *orbitControllerImpl) {
		oc.cfg.MinPolarAngle = min
		oc.cfg.MaxPolarAngle = max
	}
}

// WithAzimuthBounds sets the horizontal orbit limits.
//
// Parameters:
//   - min: minimum azimuth in radians
//   - max: maximum azimuth in radians
//
// Returns:
//   - OrbitControllerOption: functional option to set azimuth bounds
func WithAzimuthBounds(min, max float64) OrbitControllerOption {
	return func(oc *orbitControllerImpl) {
		oc.cfg.MinAzimuthAngle = min
		oc.cfg.MaxAzimuthAngle = max
	}
}

// WithDamping enables inertia with the given per-update damping factor.
//
// Parameters:
//   - factor: fraction of the pending motion applied per update, in (0, 1]
//
// Returns:
//   - OrbitControllerOption: functional option to enable damping
func WithDamping(factor float64) OrbitControllerOption {
	return func(oc *orbitControllerImpl) {
		oc.cfg.EnableDamping = true
		oc.cfg.DampingFactor = factor
	}
}

// WithAutoRotate enables automatic orbiting while no gesture is active.
//
// Parameters:
//   - speed: 2 orbits once every 30 seconds at 60 updates per second
//
// Returns:
//   - OrbitControllerOption: functional option to enable auto-rotation
func WithAutoRotate(speed float64) OrbitControllerOption {
	return func(oc *orbitControllerImpl) {
		oc.cfg.AutoRotate = true
		oc.cfg.AutoRotateSpeed = speed
	}
}

// WithSpeeds sets the rotate, pan and zoom speed multipliers.
//
// Parameters:
//   - rotate: rotate speed multiplier
//   - pan: pan speed multiplier
//   - zoom: zoom speed exponent
//
// Returns:
//   - OrbitControllerOption: functional option to set speeds
func WithSpeeds(rotate, pan, zoom float64) OrbitControllerOption {
	return func(oc *orbitControllerImpl) {
		oc.cfg.RotateSpeed = rotate
		oc.cfg.PanSpeed = pan
		oc.cfg.ZoomSpeed = zoom
	}
}

// WithLogger sets the logger used for warnings.
//
// Parameters:
//   - logger: the logger (nil keeps slog.Default())
//
// Returns:
//   - OrbitControllerOption: functional option to set the logger
func WithLogger(logger *slog.Logger) OrbitControllerOption {
	return func(oc *orbitControllerImpl) {
		if logger != nil {
			oc.logger = logger
		}
	}
}
