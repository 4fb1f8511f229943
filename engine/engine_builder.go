package engine

import (
	"log/slog"
	"time"

	"github.com/Carmen-Shannon/oxy-pitch/engine/profiler"
	"github.com/Carmen-Shannon/oxy-pitch/engine/window"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithProfilerInterval sets how often profiling statistics are logged.
//
// Parameters:
//   - interval: time between reports
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfilerInterval(interval time.Duration) EngineBuilderOption {
	return func(e *engine) {
		e.profiler = profiler.NewProfiler(e.logger, interval)
	}
}

// WithTickRate sets the engine tick rate in ticks per second.
// Values <= 0 will be treated as the default (60Hz); values above 1000 are capped.
//
// Parameters:
//   - fps: target ticks per second (default 60)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTickRate(fps float64) EngineBuilderOption {
	return func(e *engine) {
		e.engineTickRate = tickDuration(fps)
	}
}

// WithWindow sets the window whose message loop drives the engine.
//
// Parameters:
//   - w: a pre-configured Window instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithViewport registers a viewport at the given z-index key during engine construction.
//
// Parameters:
//   - key: the z-index determining draw order (lower draws first)
//   - v: the Viewport to register
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithViewport(key int, v *Viewport) EngineBuilderOption {
	return func(e *engine) {
		e.viewports[key] = v
	}
}

// WithRenderFrameLimit sets an optional frame rate cap in frames per second.
// Pass 0 to uncap the loop (default).
//
// Parameters:
//   - fps: maximum frames per second (0 = uncapped)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderFrameLimit(fps float64) EngineBuilderOption {
	return func(e *engine) {
		if fps <= 0 {
			e.renderFrameLimit = 0
			return
		}
		e.renderFrameLimit = time.Duration(float64(time.Second) / fps)
	}
}

// WithLogger sets the logger for engine warnings and profiler reports.
// Apply it before WithProfilerInterval.
//
// Parameters:
//   - logger: the logger to use
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithLogger(logger *slog.Logger) EngineBuilderOption {
	return func(e *engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}
