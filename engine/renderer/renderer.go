package renderer

import (
	"fmt"
	"sync"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl64"
)

// SurfaceSource provides the platform surface the renderer presents to.
type SurfaceSource interface {
	// SurfaceDescriptor returns the platform-specific surface descriptor.
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// ClientWidth returns the drawable width in pixels.
	ClientWidth() int

	// ClientHeight returns the drawable height in pixels.
	ClientHeight() int
}

// Renderer draws a line-list scene through a camera's view-projection matrix.
//
// Frames are drawn on demand: callers upload lines and a view-projection, then call Redraw
// whenever the scene or the camera changed. The Renderer must be used from the thread that
// created it.
type Renderer interface {
	// Resize configures the underlying surface for a new size.
	// This should be called when re-sizing the window.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	//
	// Returns:
	//   - error: an error if surface resources could not be recreated
	Resize(width, height int) error

	// SetClearColor sets the background color.
	//
	// Parameters:
	//   - c: the clear color
	SetClearColor(c Color)

	// SetLines replaces the drawn line segments. Vertices are consumed in pairs.
	//
	// Parameters:
	//   - vertices: line-list vertices
	//
	// Returns:
	//   - error: an error if the vertex buffer could not be created
	SetLines(vertices []LineVertex) error

	// SetViewProjection sets the clip-from-world matrix used by the next Redraw.
	//
	// Parameters:
	//   - m: projection * view in OpenGL clip convention
	SetViewProjection(m mgl64.Mat4)

	// Redraw clears the surface, draws the current lines and presents the frame.
	//
	// Returns:
	//   - error: an error if the frame could not be drawn
	Redraw() error

	// Frames returns the number of frames presented.
	//
	// Returns:
	//   - uint64: presented frame count
	Frames() uint64

	// Release frees GPU resources. The Renderer must not be used afterwards.
	Release()
}

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	backendType RendererBackendType
	backend     RendererBackend

	frames uint64

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	presentMode          PresentMode
	msaa                 MSAASampleCount
	clearColor           Color
}

var _ Renderer = &renderer{}

// NewRenderer creates a Renderer for the given surface and configures it to the surface's size.
//
// Parameters:
//   - backendType: the GPU backend to use
//   - source: the window providing the surface
//   - options: functional options to configure the renderer
//
// Returns:
//   - Renderer: the newly created renderer
//   - error: an error if the GPU device or surface could not be initialized
func NewRenderer(backendType RendererBackendType, source SurfaceSource, options ...RendererBuilderOption) (Renderer, error) {
	r := &renderer{
		mu:          &sync.Mutex{},
		backendType: backendType,
		presentMode: PresentModeVSync,
		msaa:        MSAA4x,
		clearColor:  Color{R: 0.1, G: 0.1, B: 0.1, A: 1.0},
	}

	// Apply options first so config flags (e.g. forceFallbackAdapter) are
	// available before the backend requests a GPU adapter.
	for _, opt := range options {
		opt(r)
	}

	switch backendType {
	case BackendTypeWGPU:
		fallthrough
	default:
		backend, err := newWGPURendererBackend(source.SurfaceDescriptor(), r.forceFallbackAdapter, r.msaa)
		if err != nil {
			return nil, fmt.Errorf("failed to create wgpu backend: %w", err)
		}
		r.backend = backend
	}

	r.backend.SetPresentMode(r.presentMode)
	r.backend.SetClearColor(r.clearColor)
	r.backend.WriteView(NewViewUniform(mgl64.Ident4()).Marshal())

	if err := r.backend.ConfigureSurface(source.ClientWidth(), source.ClientHeight()); err != nil {
		r.backend.Release()
		return nil, fmt.Errorf("failed to configure surface: %w", err)
	}
	return r, nil
}

func (r *renderer) Resize(width, height int) error {
	return r.backend.ConfigureSurface(width, height)
}

func (r *renderer) SetClearColor(c Color) {
	r.backend.SetClearColor(c)
}

func (r *renderer) SetLines(vertices []LineVertex) error {
	return r.backend.UploadLines(MarshalLines(vertices), len(vertices)/2*2)
}

func (r *renderer) SetViewProjection(m mgl64.Mat4) {
	r.backend.WriteView(NewViewUniform(m).Marshal())
}

func (r *renderer) Redraw() error {
	if err := r.backend.DrawFrame(); err != nil {
		return err
	}
	r.mu.Lock()
	r.frames++
	r.mu.Unlock()
	return nil
}

func (r *renderer) Frames() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frames
}

func (r *renderer) Release() {
	r.backend.Release()
}
