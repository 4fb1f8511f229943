package renderer

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/cogentcore/webgpu/wgpu"
)

// errFrameInFlight is returned when a frame is started before the previous one was presented.
var errFrameInFlight = errors.New("previous frame surface not yet presented")

type wgpuRendererBackendImpl struct {
	mu     *sync.Mutex
	device *wgpu.Device
	queue  *wgpu.Queue

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	surface  *wgpu.Surface

	surfaceFormat   *wgpu.TextureFormat
	msaaTexture     *wgpu.Texture
	msaaTextureView *wgpu.TextureView

	presentMode wgpu.PresentMode // defaults to PresentModeFifo (VSync)
	sampleCount MSAASampleCount
	clearColor  wgpu.Color

	// configured is false until the surface has a non-zero size.
	configured bool

	pipeline   *wgpu.RenderPipeline
	viewBuffer *wgpu.Buffer
	bindGroup  *wgpu.BindGroup

	lineBuffer      *wgpu.Buffer
	lineBufferSize  uint64
	lineVertexCount uint32

	frameSurface *wgpu.Texture
}

type wgpuRendererBackend interface {
	// ConfigureSurface is a wrapper for boilerplate logic required when calling Configure on a surface.
	// This is required when the surface size changes, such as when the window is resized.
	// A zero-sized surface (minimized window) is skipped and frames are dropped until the next resize.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	//
	// Returns:
	//   - error: an error if the pipeline or multisample target could not be created
	ConfigureSurface(width, height int) error

	// SetPresentMode sets the surface present mode. Takes effect on the next ConfigureSurface.
	//
	// Parameters:
	//   - mode: the PresentMode to use
	SetPresentMode(mode PresentMode)

	// SetClearColor sets the color the frame is cleared to.
	//
	// Parameters:
	//   - c: the clear color
	SetClearColor(c Color)

	// UploadLines replaces the line-list vertex buffer contents, growing the buffer if needed.
	//
	// Parameters:
	//   - data: marshaled LineVertex data
	//   - count: number of vertices in data
	//
	// Returns:
	//   - error: an error if the buffer could not be created
	UploadLines(data []byte, count int) error

	// WriteView writes the marshaled ViewUniform.
	//
	// Parameters:
	//   - data: ViewUniformSize bytes
	WriteView(data []byte)

	// DrawFrame clears the next surface texture, draws the uploaded lines, submits and presents.
	//
	// Returns:
	//   - error: an error if the frame could not be acquired or encoded
	DrawFrame() error

	// Release frees every GPU object owned by the backend.
	Release()
}

var _ RendererBackend = &wgpuRendererBackendImpl{}

func newWGPURendererBackend(surfaceDescriptor *wgpu.SurfaceDescriptor, forceFallbackAdapter bool, sampleCount MSAASampleCount) (wgpuRendererBackend, error) {
	runtime.LockOSThread()
	w := &wgpuRendererBackendImpl{
		mu:          &sync.Mutex{},
		instance:    wgpu.CreateInstance(nil),
		presentMode: wgpu.PresentModeFifo,
		sampleCount: sampleCount,
		clearColor:  wgpu.Color{R: 0.1, G: 0.1, B: 0.1, A: 1.0},
	}
	w.surface = w.instance.CreateSurface(surfaceDescriptor)

	a, err := w.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: forceFallbackAdapter,
		CompatibleSurface:    w.surface,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to request adapter: %w", err)
	}
	w.adapter = a

	d, err := a.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Main Device",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to request device: %w", err)
	}
	w.device = d
	w.queue = d.GetQueue()

	viewBuffer, err := d.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "View Uniform Buffer",
		Size:  ViewUniformSize,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create view buffer: %w", err)
	}
	w.viewBuffer = viewBuffer

	return w, nil
}

func (b *wgpuRendererBackendImpl) ConfigureSurface(width, height int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if width <= 0 || height <= 0 {
		b.configured = false
		return nil
	}

	capabilities := b.surface.GetCapabilities(b.adapter)
	if b.surfaceFormat == nil {
		b.surfaceFormat = &capabilities.Formats[0]
	}

	b.surface.Configure(b.adapter, b.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      *b.surfaceFormat,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: b.presentMode,
		AlphaMode:   capabilities.AlphaModes[0],
	})

	if b.pipeline == nil {
		if err := b.createLinePipeline(); err != nil {
			return err
		}
	}

	if b.msaaTextureView != nil {
		b.msaaTextureView.Release()
		b.msaaTexture.Release()
		b.msaaTextureView, b.msaaTexture = nil, nil
	}
	if b.sampleCount > 1 {
		// The render pass draws into the MSAA texture and resolves into the swapchain view.
		msaaTexture, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
			Label: "MSAA Texture",
			Size: wgpu.Extent3D{
				Width:              uint32(width),
				Height:             uint32(height),
				DepthOrArrayLayers: 1,
			},
			MipLevelCount: 1,
			SampleCount:   uint32(b.sampleCount),
			Dimension:     wgpu.TextureDimension2D,
			Format:        *b.surfaceFormat,
			Usage:         wgpu.TextureUsageRenderAttachment,
		})
		if err != nil {
			return fmt.Errorf("failed to create MSAA texture: %w", err)
		}
		view, err := msaaTexture.CreateView(nil)
		if err != nil {
			msaaTexture.Release()
			return fmt.Errorf("failed to create MSAA view: %w", err)
		}
		b.msaaTexture, b.msaaTextureView = msaaTexture, view
	}

	b.configured = true
	return nil
}

// createLinePipeline builds the line-list pipeline and its view bind group. Caller must hold the mutex.
func (b *wgpuRendererBackendImpl) createLinePipeline() error {
	module, err := b.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: "Line Shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: LineShaderSource,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create line shader: %w", err)
	}
	defer module.Release()

	bindGroupLayout, err := b.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "View Bind Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: ViewUniformSize,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create view bind group layout: %w", err)
	}

	pipelineLayout, err := b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "Line Pipeline Layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{bindGroupLayout},
	})
	if err != nil {
		return fmt.Errorf("failed to create line pipeline layout: %w", err)
	}

	created, err := b.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "Line Render Pipeline",
		Layout: pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: "vs_main",
			Buffers: []wgpu.VertexBufferLayout{
				{
					ArrayStride: LineVertexSize,
					StepMode:    wgpu.VertexStepModeVertex,
					Attributes: []wgpu.VertexAttribute{
						{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
						{Format: wgpu.VertexFormatFloat32x4, Offset: 12, ShaderLocation: 1},
					},
				},
			},
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{
				{
					Format:    *b.surfaceFormat,
					WriteMask: wgpu.ColorWriteMaskAll,
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyLineList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		Multisample: wgpu.MultisampleState{
			Count: uint32(b.sampleCount),
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create line pipeline: %w", err)
	}

	bindGroup, err := b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "View Bind Group",
		Layout: bindGroupLayout,
		Entries: []wgpu.BindGroupEntry{
			{
				Binding: 0,
				Buffer:  b.viewBuffer,
				Offset:  0,
				Size:    wgpu.WholeSize,
			},
		},
	})
	if err != nil {
		created.Release()
		return fmt.Errorf("failed to create view bind group: %w", err)
	}

	b.pipeline = created
	b.bindGroup = bindGroup
	return nil
}

func (b *wgpuRendererBackendImpl) SetPresentMode(mode PresentMode) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch mode {
	case PresentModeUncapped:
		b.presentMode = wgpu.PresentModeImmediate
	case PresentModeVSync:
		fallthrough
	default:
		b.presentMode = wgpu.PresentModeFifo
	}
}

func (b *wgpuRendererBackendImpl) SetClearColor(c Color) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.clearColor = wgpu.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}

func (b *wgpuRendererBackendImpl) UploadLines(data []byte, count int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	size := uint64(len(data))
	if size > b.lineBufferSize {
		if b.lineBuffer != nil {
			b.lineBuffer.Release()
			b.lineBuffer, b.lineBufferSize = nil, 0
		}
		buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: "Line Vertex Buffer",
			Size:  size,
			Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			b.lineVertexCount = 0
			return fmt.Errorf("failed to create line buffer: %w", err)
		}
		b.lineBuffer, b.lineBufferSize = buf, size
	}
	if size > 0 {
		b.queue.WriteBuffer(b.lineBuffer, 0, data)
	}
	b.lineVertexCount = uint32(count)
	return nil
}

func (b *wgpuRendererBackendImpl) WriteView(data []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.queue.WriteBuffer(b.viewBuffer, 0, data)
}

func (b *wgpuRendererBackendImpl) DrawFrame() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.configured {
		return nil
	}
	if b.frameSurface != nil {
		return errFrameInFlight
	}

	surfaceTexture, err := b.surface.GetCurrentTexture()
	if err != nil {
		return fmt.Errorf("failed to acquire surface texture: %w", err)
	}
	b.frameSurface = surfaceTexture
	defer func() {
		surfaceTexture.Release()
		b.frameSurface = nil
	}()

	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		return fmt.Errorf("failed to create surface view: %w", err)
	}
	defer view.Release()

	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		return fmt.Errorf("failed to create command encoder: %w", err)
	}
	defer encoder.Release()

	attachment := wgpu.RenderPassColorAttachment{
		View:       view,
		LoadOp:     wgpu.LoadOpClear,
		StoreOp:    wgpu.StoreOpStore,
		ClearValue: b.clearColor,
	}
	if b.msaaTextureView != nil {
		attachment.View = b.msaaTextureView
		attachment.ResolveTarget = view
		attachment.StoreOp = wgpu.StoreOpDiscard
	}

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{attachment},
	})
	if b.lineVertexCount > 0 {
		pass.SetPipeline(b.pipeline)
		pass.SetBindGroup(0, b.bindGroup, nil)
		pass.SetVertexBuffer(0, b.lineBuffer, 0, wgpu.WholeSize)
		pass.Draw(b.lineVertexCount, 1, 0, 0)
	}
	pass.End()
	pass.Release()

	commandBuffer, err := encoder.Finish(nil)
	if err != nil {
		return fmt.Errorf("failed to finish command encoder: %w", err)
	}
	defer commandBuffer.Release()

	b.queue.Submit(commandBuffer)
	b.surface.Present()
	return nil
}

func (b *wgpuRendererBackendImpl) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.lineBuffer != nil {
		b.lineBuffer.Release()
		b.lineBuffer = nil
	}
	if b.msaaTextureView != nil {
		b.msaaTextureView.Release()
		b.msaaTexture.Release()
		b.msaaTextureView, b.msaaTexture = nil, nil
	}
	if b.bindGroup != nil {
		b.bindGroup.Release()
		b.bindGroup = nil
	}
	if b.pipeline != nil {
		b.pipeline.Release()
		b.pipeline = nil
	}
	if b.viewBuffer != nil {
		b.viewBuffer.Release()
		b.viewBuffer = nil
	}
	b.queue.Release()
	b.device.Release()
	b.adapter.Release()
	b.surface.Release()
	b.instance.Release()
	b.configured = false
}
