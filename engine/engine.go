package engine

import (
	"errors"
	"log/slog"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-pitch/engine/profiler"
	"github.com/Carmen-Shannon/oxy-pitch/engine/window"
)

// ErrNoWindow is returned by Run when the engine was built without a window.
var ErrNoWindow = errors.New("engine has no window")

// maxFrameDelta bounds the time a single frame may feed into the tick accumulator,
// so a stalled frame does not trigger a burst of catch-up ticks.
const maxFrameDelta = 250 * time.Millisecond

// maxTickRate caps the fixed tick rate so one frame runs a bounded number of ticks.
const maxTickRate = 1000

// engine implements the Engine interface.
// Everything runs on the window thread: input callbacks fire from inside the window's
// message pump, then ticks and draws run from the window's update callback.
type engine struct {
	running  bool
	quitOnce sync.Once

	window window.Window
	logger *slog.Logger

	profiler         *profiler.Profiler
	profilingEnabled bool

	engineTickRate time.Duration
	tickCallback   func(deltaTime float32)
	renderCallback func(deltaTime float32)

	viewports map[int]*Viewport

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped

	lastFrame   time.Time
	accumulator time.Duration
}

// Engine is the main entry point for the engine.
// It runs a fixed-step tick loop and on-demand viewport redraws on the window's thread.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetTickRate sets the engine tick rate in ticks per second.
	//
	// Parameters:
	//   - fps: target ticks per second (defaults to 60 if <= 0, capped at 1000)
	SetTickRate(fps float64)

	// SetTickCallback registers the function called each engine tick.
	// Use this for game logic and per-frame controller updates.
	//
	// Parameters:
	//   - callback: function to call at the configured tick rate, receiving the fixed tick length in seconds
	SetTickCallback(callback func(deltaTime float32))

	// SetRenderCallback registers the function called once per frame before viewports draw.
	//
	// Parameters:
	//   - callback: function to call each frame, receiving the frame delta time in seconds
	SetRenderCallback(callback func(deltaTime float32))

	// SetRenderFrameLimit sets an optional frame rate cap in frames per second.
	// Pass 0 to uncap the loop (default).
	//
	// Parameters:
	//   - fps: maximum frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// AddViewport registers a viewport at the given z-index key.
	// Viewports are drawn in ascending key order.
	//
	// Parameters:
	//   - key: the z-index determining draw order (lower draws first)
	//   - v: the Viewport to register
	AddViewport(key int, v *Viewport)

	// RemoveViewport removes the viewport at the given z-index key.
	//
	// Parameters:
	//   - key: the z-index of the viewport to remove
	RemoveViewport(key int)

	// Viewport retrieves the viewport registered at the given z-index key.
	//
	// Parameters:
	//   - key: the z-index of the viewport to retrieve
	//
	// Returns:
	//   - *Viewport: the viewport at the key, or nil if not found
	Viewport(key int) *Viewport

	// Run pumps window messages on the calling thread until the window closes or Quit is called.
	//
	// Returns:
	//   - error: ErrNoWindow if the engine has no window
	Run() error

	// Quit stops the loop after the current frame.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

// NewEngine creates a new Engine instance with the provided options.
//
// Parameters:
//   - options: functional options for engine configuration (window, profiling, tick rate, etc.)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		viewports:      make(map[int]*Viewport),
		logger:         slog.Default(),
		engineTickRate: time.Second / 60,
	}

	for _, opt := range options {
		opt(e)
	}

	if e.profiler == nil {
		e.profiler = profiler.NewProfiler(e.logger, time.Second)
	}

	if e.window != nil {
		e.window.SetResizeCallback(e.resize)
	}

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Run() error {
	if e.window == nil {
		return ErrNoWindow
	}
	e.running = true
	e.lastFrame = time.Now()
	e.window.SetUpdateCallback(func() {
		e.frame(time.Now())
	})
	e.window.ProcessMessages()
	e.running = false
	return nil
}

func (e *engine) Quit() {
	e.quitOnce.Do(func() {
		e.running = false
		if e.window != nil {
			e.window.RequestClose()
		}
	})
}

// frame advances the fixed-step accumulator, runs due ticks, then draws invalidated viewports.
func (e *engine) frame(now time.Time) {
	dt := now.Sub(e.lastFrame)
	e.lastFrame = now
	if dt < 0 {
		dt = 0
	}
	if dt > maxFrameDelta {
		dt = maxFrameDelta
	}

	e.accumulator += dt
	step := float32(e.engineTickRate.Seconds())
	for e.accumulator >= e.engineTickRate {
		e.accumulator -= e.engineTickRate
		if e.tickCallback != nil {
			e.tickCallback(step)
		}
	}

	if e.renderCallback != nil {
		e.renderCallback(float32(dt.Seconds()))
	}

	e.drawViewports()

	if e.profilingEnabled && e.profiler != nil {
		e.profiler.Tick()
	}

	if e.renderFrameLimit > 0 {
		if remaining := e.renderFrameLimit - time.Since(now); remaining > 0 {
			time.Sleep(remaining)
		}
	}
}

func (e *engine) sortedViewportKeys() []int {
	keys := make([]int, 0, len(e.viewports))
	for k := range e.viewports {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

func (e *engine) drawViewports() {
	for _, k := range e.sortedViewportKeys() {
		if _, err := e.viewports[k].Draw(); err != nil {
			e.logger.Warn("viewport draw failed", "viewport", k, "error", err)
		}
	}
}

func (e *engine) resize(width, height int) {
	for _, k := range e.sortedViewportKeys() {
		if err := e.viewports[k].Resize(width, height); err != nil {
			e.logger.Warn("viewport resize failed", "viewport", k, "width", width, "height", height, "error", err)
		}
	}
}

func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

func (e *engine) SetTickRate(fps float64) {
	e.engineTickRate = tickDuration(fps)
}

func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.tickCallback = callback
}

func (e *engine) SetRenderCallback(callback func(deltaTime float32)) {
	e.renderCallback = callback
}

func (e *engine) SetRenderFrameLimit(fps float64) {
	if fps <= 0 {
		e.renderFrameLimit = 0
		return
	}
	e.renderFrameLimit = time.Duration(float64(time.Second) / fps)
}

func (e *engine) AddViewport(key int, v *Viewport) {
	e.viewports[key] = v
}

func (e *engine) RemoveViewport(key int) {
	delete(e.viewports, key)
}

func (e *engine) Viewport(key int) *Viewport {
	return e.viewports[key]
}

func tickDuration(fps float64) time.Duration {
	if fps <= 0 || math.IsNaN(fps) {
		fps = 60
	}
	if fps > maxTickRate {
		fps = maxTickRate
	}
	return time.Duration(float64(time.Second) / fps)
}
