package camera

import (
	"fmt"
	"math"

	"github.com/Carmen-Shannon/oxy-pitch/common"
)

// MouseAction is the gesture bound to a mouse button.
type MouseAction int

const (
	MouseNone MouseAction = iota
	MouseRotate
	MouseDolly
	MousePan
)

var mouseActionNames = map[MouseAction]string{
	MouseNone:   "none",
	MouseRotate: "rotate",
	MouseDolly:  "dolly",
	MousePan:    "pan",
}

func (a MouseAction) String() string {
	if s, ok := mouseActionNames[a]; ok {
		return s
	}
	return fmt.Sprintf("MouseAction(%d)", int(a))
}

// MarshalText encodes the action by name for config files.
func (a MouseAction) MarshalText() ([]byte, error) {
	s, ok := mouseActionNames[a]
	if !ok {
		return nil, fmt.Errorf("unknown mouse action %d", int(a))
	}
	return []byte(s), nil
}

// UnmarshalText decodes an action name.
func (a *MouseAction) UnmarshalText(text []byte) error {
	for k, v := range mouseActionNames {
		if v == string(text) {
			*a = k
			return nil
		}
	}
	return fmt.Errorf("unknown mouse action %q", string(text))
}

// TouchAction is the gesture bound to a touch-pointer count.
type TouchAction int

const (
	TouchNone TouchAction = iota
	TouchRotate
	TouchPan
	TouchDollyPan
	TouchDollyRotate
)

var touchActionNames = map[TouchAction]string{
	TouchNone:        "none",
	TouchRotate:      "rotate",
	TouchPan:         "pan",
	TouchDollyPan:    "dolly_pan",
	TouchDollyRotate: "dolly_rotate",
}

func (a TouchAction) String() string {
	if s, ok := touchActionNames[a]; ok {
		return s
	}
	return fmt.Sprintf("TouchAction(%d)", int(a))
}

// MarshalText encodes the action by name for config files.
func (a TouchAction) MarshalText() ([]byte, error) {
	s, ok := touchActionNames[a]
	if !ok {
		return nil, fmt.Errorf("unknown touch action %d", int(a))
	}
	return []byte(s), nil
}

// UnmarshalText decodes an action name.
func (a *TouchAction) UnmarshalText(text []byte) error {
	for k, v := range touchActionNames {
		if v == string(text) {
			*a = k
			return nil
		}
	}
	return fmt.Errorf("unknown touch action %q", string(text))
}

// MouseBindings maps mouse buttons to gestures.
type MouseBindings struct {
	Left   MouseAction `toml:"left" yaml:"left"`
	Middle MouseAction `toml:"middle" yaml:"middle"`
	Right  MouseAction `toml:"right" yaml:"right"`
}

// TouchBindings maps touch-pointer counts to gestures.
type TouchBindings struct {
	One TouchAction `toml:"one" yaml:"one"`
	Two TouchAction `toml:"two" yaml:"two"`
}

// KeyBindings holds the key codes that pan the camera.
type KeyBindings struct {
	Left   int `toml:"left" yaml:"left"`
	Up     int `toml:"up" yaml:"up"`
	Right  int `toml:"right" yaml:"right"`
	Bottom int `toml:"bottom" yaml:"bottom"`
}

// OrbitConfig is the option set of an OrbitController.
// Angles are in radians. The controller reads it at gesture start and on every update,
// so it may be changed between frames through OrbitController.Config.
type OrbitConfig struct {
	// Enabled gates all input handling.
	Enabled bool `toml:"enabled" yaml:"enabled"`

	// MinDistance and MaxDistance bound the dolly radius (field-of-view cameras).
	MinDistance float64 `toml:"min_distance" yaml:"min_distance"`
	MaxDistance float64 `toml:"max_distance" yaml:"max_distance"`

	// MinZoom and MaxZoom bound the zoom factor (fixed-width cameras).
	MinZoom float64 `toml:"min_zoom" yaml:"min_zoom"`
	MaxZoom float64 `toml:"max_zoom" yaml:"max_zoom"`

	// MinPolarAngle and MaxPolarAngle bound the vertical orbit, within [0, π].
	MinPolarAngle float64 `toml:"min_polar_angle" yaml:"min_polar_angle"`
	MaxPolarAngle float64 `toml:"max_polar_angle" yaml:"max_polar_angle"`

	// MinAzimuthAngle and MaxAzimuthAngle bound the horizontal orbit. When both are finite
	// they must lie within [-2π, 2π] with max - min < 2π; min > max after normalization
	// describes an interval wrapping through ±π.
	MinAzimuthAngle float64 `toml:"min_azimuth_angle" yaml:"min_azimuth_angle"`
	MaxAzimuthAngle float64 `toml:"max_azimuth_angle" yaml:"max_azimuth_angle"`

	EnableDamping bool    `toml:"enable_damping" yaml:"enable_damping"`
	DampingFactor float64 `toml:"damping_factor" yaml:"damping_factor"`

	EnableZoom bool    `toml:"enable_zoom" yaml:"enable_zoom"`
	ZoomSpeed  float64 `toml:"zoom_speed" yaml:"zoom_speed"`

	EnableRotate bool    `toml:"enable_rotate" yaml:"enable_rotate"`
	RotateSpeed  float64 `toml:"rotate_speed" yaml:"rotate_speed"`

	EnablePan bool    `toml:"enable_pan" yaml:"enable_pan"`
	PanSpeed  float64 `toml:"pan_speed" yaml:"pan_speed"`
	// ScreenSpacePanning pans along the camera's up vector; when false vertical
	// pans move parallel to the plane orthogonal to the camera's up vector.
	ScreenSpacePanning bool `toml:"screen_space_panning" yaml:"screen_space_panning"`
	// KeyPanSpeed is the distance in pixels moved per arrow key press.
	KeyPanSpeed float64 `toml:"key_pan_speed" yaml:"key_pan_speed"`

	AutoRotate bool `toml:"auto_rotate" yaml:"auto_rotate"`
	// AutoRotateSpeed of 2 completes one orbit every 30 seconds at 60 updates per second.
	AutoRotateSpeed float64 `toml:"auto_rotate_speed" yaml:"auto_rotate_speed"`

	Keys         KeyBindings   `toml:"keys" yaml:"keys"`
	MouseButtons MouseBindings `toml:"mouse_buttons" yaml:"mouse_buttons"`
	Touches      TouchBindings `toml:"touches" yaml:"touches"`
}

// DefaultOrbitConfig returns the default controller options: everything enabled except
// damping and auto-rotation, unbounded distance/zoom/azimuth, full polar range,
// left=rotate middle=dolly right=pan, one finger rotates, two fingers dolly and pan.
//
// Returns:
//   - OrbitConfig: the default configuration
func DefaultOrbitConfig() OrbitConfig {
	return OrbitConfig{
		Enabled: true,

		MinDistance: 0,
		MaxDistance: math.Inf(1),

		MinZoom: 0,
		MaxZoom: math.Inf(1),

		MinPolarAngle: 0,
		MaxPolarAngle: math.Pi,

		MinAzimuthAngle: math.Inf(-1),
		MaxAzimuthAngle: math.Inf(1),

		EnableDamping: false,
		DampingFactor: 0.05,

		EnableZoom: true,
		ZoomSpeed:  1.0,

		EnableRotate: true,
		RotateSpeed:  1.0,

		EnablePan:          true,
		PanSpeed:           1.0,
		ScreenSpacePanning: true,
		KeyPanSpeed:        7.0,

		AutoRotate:      false,
		AutoRotateSpeed: 2.0,

		Keys: KeyBindings{
			Left:   common.KeyArrowLeft,
			Up:     common.KeyArrowUp,
			Right:  common.KeyArrowRight,
			Bottom: common.KeyArrowDown,
		},
		MouseButtons: MouseBindings{
			Left:   MouseRotate,
			Middle: MouseDolly,
			Right:  MousePan,
		},
		Touches: TouchBindings{
			One: TouchRotate,
			Two: TouchDollyPan,
		},
	}
}
