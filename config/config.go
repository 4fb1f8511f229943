package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Carmen-Shannon/oxy-pitch/engine/camera"
	"github.com/Carmen-Shannon/oxy-pitch/engine/match"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for config files that are neither TOML nor YAML.
var ErrUnsupportedFormat = errors.New("unsupported config format")

// Format is a config file encoding.
type Format int

const (
	FormatTOML Format = iota
	FormatYAML
)

// WindowSection configures the viewer window.
type WindowSection struct {
	Title     string `toml:"title" yaml:"title"`
	Width     int    `toml:"width" yaml:"width"`
	Height    int    `toml:"height" yaml:"height"`
	MinWidth  int    `toml:"min_width" yaml:"min_width"`
	MinHeight int    `toml:"min_height" yaml:"min_height"`
}

// CameraSection configures the viewer camera. Fov is in degrees.
type CameraSection struct {
	Fov      float64    `toml:"fov" yaml:"fov"`
	Near     float64    `toml:"near" yaml:"near"`
	Far      float64    `toml:"far" yaml:"far"`
	Position [3]float64 `toml:"position" yaml:"position"`
	Target   [3]float64 `toml:"target" yaml:"target"`
	// FollowBall keeps the camera FollowDistance behind the ball along the pitch.
	FollowBall     bool    `toml:"follow_ball" yaml:"follow_ball"`
	FollowDistance float64 `toml:"follow_distance" yaml:"follow_distance"`
}

// MatchSection configures the ball run.
type MatchSection struct {
	Increment     float64       `toml:"increment" yaml:"increment"`
	StartRoute    match.RouteID `toml:"start_route" yaml:"start_route"`
	SearchWorkers int           `toml:"search_workers" yaml:"search_workers"`
}

// File is the full viewer configuration.
type File struct {
	Window   WindowSection      `toml:"window" yaml:"window"`
	Camera   CameraSection      `toml:"camera" yaml:"camera"`
	Controls camera.OrbitConfig `toml:"controls" yaml:"controls"`
	Match    MatchSection       `toml:"match" yaml:"match"`
}

// Default returns the built-in configuration. Files are decoded on top of it, so any key a
// file omits keeps its default.
//
// Returns:
//   - File: the default configuration
func Default() File {
	return File{
		Window: WindowSection{
			Title:     "Oxy Pitch",
			Width:     1280,
			Height:    720,
			MinWidth:  320,
			MinHeight: 240,
		},
		Camera: CameraSection{
			Fov:            75,
			Near:           0.1,
			Far:            1000,
			Position:       [3]float64{0, 0, 196},
			Target:         [3]float64{0, 1, 80},
			FollowBall:     true,
			FollowDistance: 30,
		},
		Controls: camera.DefaultOrbitConfig(),
		Match: MatchSection{
			Increment:     match.DefaultIncrement,
			StartRoute:    match.RouteCenterForward,
			SearchWorkers: 4,
		},
	}
}

// FormatOf picks the encoding from a file extension.
//
// Parameters:
//   - path: the config file path
//
// Returns:
//   - Format: the detected format
//   - error: ErrUnsupportedFormat for any other extension
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Load reads a TOML or YAML config file over the defaults.
//
// Parameters:
//   - path: the file to read, format chosen by extension
//
// Returns:
//   - File: the merged configuration
//   - error: error if the file cannot be read or decoded
func Load(path string) (File, error) {
	format, err := FormatOf(path)
	if err != nil {
		return File{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("failed to read config: %w", err)
	}
	f, err := Decode(data, format)
	if err != nil {
		return File{}, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return f, nil
}

// Decode parses config data over the defaults.
//
// Parameters:
//   - data: the encoded config
//   - format: the encoding of data
//
// Returns:
//   - File: the merged configuration
//   - error: error if data is malformed
func Decode(data []byte, format Format) (File, error) {
	f := Default()
	switch format {
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&f); err != nil {
			return File{}, fmt.Errorf("failed to decode toml: %w", err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
			return File{}, fmt.Errorf("failed to decode yaml: %w", err)
		}
	default:
		return File{}, ErrUnsupportedFormat
	}
	if f.Window.Title == "" {
		f.Window.Title = Default().Window.Title
	}
	return f, nil
}

// Encode writes the configuration in the given format.
//
// Parameters:
//   - f: the configuration
//   - format: the encoding to produce
//
// Returns:
//   - []byte: the encoded file
//   - error: error if encoding fails
func Encode(f File, format Format) ([]byte, error) {
	switch format {
	case FormatTOML:
		return toml.Marshal(f)
	case FormatYAML:
		return yaml.Marshal(f)
	default:
		return nil, ErrUnsupportedFormat
	}
}

// CameraOptions converts the camera section into perspective camera options.
//
// Parameters:
//   - aspect: the initial viewport aspect ratio
//
// Returns:
//   - []camera.CameraBuilderOption: options for camera.NewPerspectiveCamera
func (c CameraSection) CameraOptions(aspect float64) []camera.CameraBuilderOption {
	return []camera.CameraBuilderOption{
		camera.WithPosition(c.Position[0], c.Position[1], c.Position[2]),
		camera.WithLookAt(c.Target[0], c.Target[1], c.Target[2]),
		camera.WithFov(mgl64.DegToRad(c.Fov)),
		camera.WithAspect(aspect),
		camera.WithNear(c.Near),
		camera.WithFar(c.Far),
	}
}

// MatchOptions converts the match section into match options.
//
// Returns:
//   - []match.MatchOption: options for match.NewMatch
func (m MatchSection) MatchOptions() []match.MatchOption {
	return []match.MatchOption{
		match.WithIncrement(m.Increment),
		match.WithStartRoute(m.StartRoute),
		match.WithSearchWorkers(m.SearchWorkers),
	}
}
