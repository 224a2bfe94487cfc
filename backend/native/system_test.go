package native

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"

	"github.com/gogpu/gfx/backend"
	"github.com/gogpu/gfx/render"
)

// =============================================================================
// Test helpers
// =============================================================================

// countingDevice wraps the noop device and counts destroy calls.
type countingDevice struct {
	*noop.Device

	buffersDestroyed  int
	texturesDestroyed int
	viewsDestroyed    int
}

func (d *countingDevice) DestroyBuffer(b hal.Buffer) {
	d.buffersDestroyed++
	d.Device.DestroyBuffer(b)
}

func (d *countingDevice) DestroyTexture(t hal.Texture) {
	d.texturesDestroyed++
	d.Device.DestroyTexture(t)
}

func (d *countingDevice) DestroyTextureView(v hal.TextureView) {
	d.viewsDestroyed++
	d.Device.DestroyTextureView(v)
}

func newTestSystem(t *testing.T, opts ...Option) *System {
	t.Helper()
	s, err := Open(gputypes.BackendEmpty, opts...)
	if err != nil {
		t.Fatalf("Open(BackendEmpty) error = %v", err)
	}
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
	})
	return s
}

func newCountingSystem(t *testing.T) (*System, *countingDevice) {
	t.Helper()
	dev := &countingDevice{Device: &noop.Device{}}
	s, err := New(dev, &noop.Queue{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return s, dev
}

// alienBuffer is a render.Buffer not created by this package.
type alienBuffer struct{}

func (alienBuffer) ResourceType() render.ResourceType { return render.ResourceTypeBuffer }
func (alienBuffer) BufferType() render.BufferType     { return render.BufferTypeVertex }

const vertexWGSL = `
@vertex
fn main(@builtin(vertex_index) i: u32) -> @builtin(position) vec4<f32> {
    return vec4<f32>(0.0, 0.0, 0.0, 1.0);
}
`

// spirvStub is a SPIR-V header; the noop device accepts any module.
var spirvStub = []uint32{0x07230203, 0x00010000, 0, 1, 0}

// =============================================================================
// System creation
// =============================================================================

func TestOpenNoop(t *testing.T) {
	s := newTestSystem(t)

	if got := s.RendererID(); got != render.RendererNull {
		t.Errorf("RendererID() = %v, want %v", got, render.RendererNull)
	}
	info := s.RendererInfo()
	if info.DeviceName != "Noop Adapter" {
		t.Errorf("DeviceName = %q, want %q", info.DeviceName, "Noop Adapter")
	}
	if info.ShadingLanguageName != "WGSL" {
		t.Errorf("ShadingLanguageName = %q, want WGSL", info.ShadingLanguageName)
	}
	caps := s.RenderingCaps()
	if !caps.Features.Has(render.WebGPUFeatures) {
		t.Errorf("Features = %v, want WebGPU feature set", caps.Features)
	}
	if caps.Limits.MaxTextureDimension2D != gputypes.DefaultLimits().MaxTextureDimension2D {
		t.Errorf("MaxTextureDimension2D = %d", caps.Limits.MaxTextureDimension2D)
	}
	if s.CommandQueue() == nil {
		t.Error("CommandQueue() = nil")
	}
}

func TestOpenOptions(t *testing.T) {
	s := newTestSystem(t,
		WithFeatures(render.FeatureRenderTargets),
		WithRendererID(render.RendererVulkan),
	)
	if got := s.RenderingCaps().Features; got != render.FeatureRenderTargets {
		t.Errorf("Features = %v, want %v", got, render.FeatureRenderTargets)
	}
	if got := s.RendererID(); got != render.RendererVulkan {
		t.Errorf("RendererID() = %v, want %v", got, render.RendererVulkan)
	}
}

func TestOpenUnregisteredBackend(t *testing.T) {
	_, err := Open(gputypes.Backend(200))
	if !errors.Is(err, ErrNoAdapter) {
		t.Errorf("Open(unknown) error = %v, want ErrNoAdapter", err)
	}
}

func TestNewNilDevice(t *testing.T) {
	if _, err := New(nil, &noop.Queue{}); !errors.Is(err, ErrNilDevice) {
		t.Errorf("New(nil device) error = %v, want ErrNilDevice", err)
	}
	if _, err := New(&noop.Device{}, nil); !errors.Is(err, ErrNilDevice) {
		t.Errorf("New(nil queue) error = %v, want ErrNilDevice", err)
	}
}

// =============================================================================
// Buffers
// =============================================================================

func TestBufferRoundTrip(t *testing.T) {
	s := newTestSystem(t)
	data := []byte{1, 2, 3, 4, 5, 6, 7, 8}

	buf, err := s.CreateBuffer(&render.BufferDescriptor{
		Type:  render.BufferTypeStorage,
		Size:  16,
		Usage: gputypes.BufferUsageMapRead,
	}, data)
	if err != nil {
		t.Fatalf("CreateBuffer() error = %v", err)
	}
	if err := s.WriteBuffer(buf, []byte{9, 9}, 14); err != nil {
		t.Fatalf("WriteBuffer() error = %v", err)
	}

	mapped, err := s.MapBuffer(buf, render.CPUAccessReadOnly)
	if err != nil {
		t.Fatalf("MapBuffer() error = %v", err)
	}
	if len(mapped) != 16 {
		t.Fatalf("len(mapped) = %d, want 16", len(mapped))
	}
	if !bytes.Equal(mapped[:8], data) {
		t.Errorf("mapped[:8] = %v, want %v", mapped[:8], data)
	}
	if mapped[14] != 9 || mapped[15] != 9 {
		t.Errorf("mapped[14:] = %v, want [9 9]", mapped[14:])
	}

	if _, err := s.MapBuffer(buf, render.CPUAccessReadOnly); !errors.Is(err, ErrMapState) {
		t.Errorf("second MapBuffer() error = %v, want ErrMapState", err)
	}
	if err := s.UnmapBuffer(buf); err != nil {
		t.Errorf("UnmapBuffer() error = %v", err)
	}
	if err := s.UnmapBuffer(buf); !errors.Is(err, ErrMapState) {
		t.Errorf("second UnmapBuffer() error = %v, want ErrMapState", err)
	}
}

func TestBufferBounds(t *testing.T) {
	s := newTestSystem(t)
	buf, err := s.CreateBuffer(&render.BufferDescriptor{Type: render.BufferTypeVertex, Size: 8}, nil)
	if err != nil {
		t.Fatalf("CreateBuffer() error = %v", err)
	}

	tests := []struct {
		name   string
		size   int
		offset uint64
	}{
		{"past end", 4, 6},
		{"too large", 9, 0},
		{"offset overflow", 1, ^uint64(0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.WriteBuffer(buf, make([]byte, tt.size), tt.offset)
			if !errors.Is(err, ErrOutOfBounds) {
				t.Errorf("WriteBuffer() error = %v, want ErrOutOfBounds", err)
			}
		})
	}

	if _, err := s.CreateBuffer(&render.BufferDescriptor{Size: 2}, []byte{1, 2, 3}); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("CreateBuffer(oversized data) error = %v, want ErrOutOfBounds", err)
	}
	empty, err := s.CreateBuffer(&render.BufferDescriptor{Type: render.BufferTypeStorage}, nil)
	if err != nil {
		t.Fatalf("CreateBuffer(empty) error = %v", err)
	}
	if _, err := s.MapBuffer(empty, render.CPUAccessWriteOnly); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("MapBuffer(empty) error = %v, want ErrOutOfBounds", err)
	}
}

func TestBufferRelease(t *testing.T) {
	s, dev := newCountingSystem(t)
	buf, err := s.CreateBuffer(&render.BufferDescriptor{Type: render.BufferTypeIndex, Size: 4}, nil)
	if err != nil {
		t.Fatalf("CreateBuffer() error = %v", err)
	}
	arr, err := s.CreateBufferArray([]render.Buffer{buf})
	if err != nil {
		t.Fatalf("CreateBufferArray() error = %v", err)
	}
	if arr.BufferType() != render.BufferTypeIndex {
		t.Errorf("BufferArray.BufferType() = %v, want index", arr.BufferType())
	}

	if err := s.ReleaseBuffer(buf); err != nil {
		t.Fatalf("ReleaseBuffer() error = %v", err)
	}
	if dev.buffersDestroyed != 1 {
		t.Errorf("buffers destroyed = %d, want 1", dev.buffersDestroyed)
	}
	if err := s.ReleaseBuffer(buf); !errors.Is(err, ErrReleased) {
		t.Errorf("second ReleaseBuffer() error = %v, want ErrReleased", err)
	}
	if err := s.WriteBuffer(buf, []byte{1}, 0); !errors.Is(err, ErrReleased) {
		t.Errorf("WriteBuffer(released) error = %v, want ErrReleased", err)
	}
	if err := s.ReleaseBufferArray(arr); err != nil {
		t.Errorf("ReleaseBufferArray() error = %v", err)
	}
	if _, err := s.CreateBufferArray(nil); !errors.Is(err, render.ErrInvalidDescriptor) {
		t.Errorf("CreateBufferArray(nil) error = %v, want ErrInvalidDescriptor", err)
	}
	if err := s.ReleaseBuffer(alienBuffer{}); !errors.Is(err, ErrForeignResource) {
		t.Errorf("ReleaseBuffer(foreign) error = %v, want ErrForeignResource", err)
	}
}

// =============================================================================
// Textures and samplers
// =============================================================================

func TestTextureLifecycle(t *testing.T) {
	s, dev := newCountingSystem(t)
	desc := &render.TextureDescriptor{
		Type:      render.Texture2D,
		Format:    gputypes.TextureFormatRGBA8Unorm,
		Width:     4,
		Height:    4,
		MipLevels: 1,
	}
	src := &render.SrcImageDescriptor{
		Format:   render.ImageFormatRGBA,
		DataType: render.DataTypeUInt8,
		Data:     make([]byte, 4*4*4),
	}
	tex, err := s.CreateTexture(desc, src)
	if err != nil {
		t.Fatalf("CreateTexture() error = %v", err)
	}
	if tex.TextureType() != render.Texture2D {
		t.Errorf("TextureType() = %v, want 2D", tex.TextureType())
	}

	dst := &render.DstImageDescriptor{
		Format:   render.ImageFormatRGBA,
		DataType: render.DataTypeUInt8,
		Data:     make([]byte, 4*4*4),
	}
	if err := s.ReadTexture(tex, 0, dst); err != nil {
		t.Fatalf("ReadTexture() error = %v", err)
	}
	if dev.buffersDestroyed != 1 {
		t.Errorf("readback buffers destroyed = %d, want 1", dev.buffersDestroyed)
	}

	dst.Data = dst.Data[:10]
	if err := s.ReadTexture(tex, 0, dst); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("ReadTexture(short storage) error = %v, want ErrOutOfBounds", err)
	}
	if err := s.ReadTexture(tex, 3, dst); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("ReadTexture(mip 3) error = %v, want ErrOutOfBounds", err)
	}
	region := &render.TextureRegion{Extent: gputypes.Extent3D{Width: 4, Height: 4, DepthOrArrayLayers: 1}}
	short := &render.SrcImageDescriptor{Format: render.ImageFormatRGBA, DataType: render.DataTypeUInt8, Data: make([]byte, 8)}
	if err := s.WriteTexture(tex, region, short); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("WriteTexture(short data) error = %v, want ErrOutOfBounds", err)
	}
	if err := s.GenerateMips(tex); !errors.Is(err, render.ErrNotSupported) {
		t.Errorf("GenerateMips() error = %v, want ErrNotSupported", err)
	}

	if err := s.ReleaseTexture(tex); err != nil {
		t.Fatalf("ReleaseTexture() error = %v", err)
	}
	if dev.texturesDestroyed != 1 || dev.viewsDestroyed != 1 {
		t.Errorf("destroyed textures/views = %d/%d, want 1/1", dev.texturesDestroyed, dev.viewsDestroyed)
	}
	if err := s.ReleaseTexture(tex); !errors.Is(err, ErrReleased) {
		t.Errorf("second ReleaseTexture() error = %v, want ErrReleased", err)
	}
}

func TestTextureLayout(t *testing.T) {
	tests := []struct {
		name    string
		desc    render.TextureDescriptor
		dim     gputypes.TextureDimension
		view    gputypes.TextureViewDimension
		layers  uint32
		extentZ uint32
	}{
		{"1D", render.TextureDescriptor{Type: render.Texture1D, Width: 8}, gputypes.TextureDimension1D, gputypes.TextureViewDimension1D, 1, 1},
		{"1D array", render.TextureDescriptor{Type: render.Texture1DArray, Width: 8, Layers: 3}, gputypes.TextureDimension2D, gputypes.TextureViewDimension2DArray, 3, 3},
		{"3D", render.TextureDescriptor{Type: render.Texture3D, Width: 8, Height: 8, Depth: 5}, gputypes.TextureDimension3D, gputypes.TextureViewDimension3D, 1, 5},
		{"cube", render.TextureDescriptor{Type: render.TextureCube, Width: 8, Height: 8}, gputypes.TextureDimension2D, gputypes.TextureViewDimensionCube, 6, 6},
		{"cube array", render.TextureDescriptor{Type: render.TextureCubeArray, Width: 8, Height: 8, Layers: 2}, gputypes.TextureDimension2D, gputypes.TextureViewDimensionCubeArray, 12, 12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := textureDimension(tt.desc.Type); got != tt.dim {
				t.Errorf("textureDimension() = %v, want %v", got, tt.dim)
			}
			if got := viewDimension(tt.desc.Type); got != tt.view {
				t.Errorf("viewDimension() = %v, want %v", got, tt.view)
			}
			if got := physicalLayers(&tt.desc); got != tt.layers {
				t.Errorf("physicalLayers() = %d, want %d", got, tt.layers)
			}
			if got := textureExtent(&tt.desc).DepthOrArrayLayers; got != tt.extentZ {
				t.Errorf("extent depth = %d, want %d", got, tt.extentZ)
			}
		})
	}
}

func TestSampler(t *testing.T) {
	s := newTestSystem(t)
	desc := gputypes.DefaultSamplerDescriptor()
	desc.MipmapFilter = gputypes.MipmapFilterModeLinear
	sm, err := s.CreateSampler(&desc)
	if err != nil {
		t.Fatalf("CreateSampler() error = %v", err)
	}
	arr, err := s.CreateSamplerArray([]render.Sampler{sm, sm})
	if err != nil {
		t.Fatalf("CreateSamplerArray() error = %v", err)
	}
	if err := s.ReleaseSamplerArray(arr); err != nil {
		t.Errorf("ReleaseSamplerArray() error = %v", err)
	}
	if err := s.ReleaseSampler(sm); err != nil {
		t.Errorf("ReleaseSampler() error = %v", err)
	}
	if got := mipmapFilter(gputypes.MipmapFilterModeLinear); got != gputypes.FilterModeLinear {
		t.Errorf("mipmapFilter(linear) = %v, want linear", got)
	}
}

// =============================================================================
// Shaders and pipelines
// =============================================================================

func TestShaderCompile(t *testing.T) {
	s := newTestSystem(t)

	sh, err := s.CreateShader(&render.ShaderDescriptor{Type: render.ShaderTypeVertex, Source: vertexWGSL})
	if err != nil {
		t.Fatalf("CreateShader(WGSL) error = %v", err)
	}
	if got := sh.(*shader).entry; got != defaultEntryPoint {
		t.Errorf("entry point = %q, want %q", got, defaultEntryPoint)
	}

	_, err = s.CreateShader(&render.ShaderDescriptor{Type: render.ShaderTypeVertex, Source: "fn {"})
	if !errors.Is(err, ErrShaderCompile) {
		t.Errorf("CreateShader(invalid WGSL) error = %v, want ErrShaderCompile", err)
	}
	_, err = s.CreateShader(&render.ShaderDescriptor{Type: render.ShaderTypeGeometry, SPIRV: spirvStub})
	if !errors.Is(err, render.ErrNotSupported) {
		t.Errorf("CreateShader(geometry) error = %v, want ErrNotSupported", err)
	}
}

func TestPipelines(t *testing.T) {
	s := newTestSystem(t)

	vs, _ := s.CreateShader(&render.ShaderDescriptor{Type: render.ShaderTypeVertex, SPIRV: spirvStub, EntryPoint: "vs_main"})
	fs, _ := s.CreateShader(&render.ShaderDescriptor{Type: render.ShaderTypeFragment, SPIRV: spirvStub})
	cs, _ := s.CreateShader(&render.ShaderDescriptor{Type: render.ShaderTypeCompute, SPIRV: spirvStub})

	var vf render.VertexFormat
	vf.AppendAttribute(gputypes.VertexFormatFloat32x2, 0)
	prog, err := s.CreateShaderProgram(&render.ShaderProgramDescriptor{Vertex: vs, Fragment: fs, VertexFormats: []render.VertexFormat{vf}})
	if err != nil {
		t.Fatalf("CreateShaderProgram() error = %v", err)
	}
	layout, err := s.CreatePipelineLayout(&render.PipelineLayoutDescriptor{Bindings: []render.BindingDescriptor{
		{Type: render.BindingConstantBuffer, Stages: gputypes.ShaderStageVertex, Slot: 0},
	}})
	if err != nil {
		t.Fatalf("CreatePipelineLayout() error = %v", err)
	}

	gp, err := s.CreateGraphicsPipeline(&render.GraphicsPipelineDescriptor{
		ShaderProgram:  prog,
		PipelineLayout: layout,
		Depth:          render.DepthDescriptor{TestEnabled: true, WriteEnabled: true, Compare: gputypes.CompareFunctionLess},
	})
	if err != nil {
		t.Fatalf("CreateGraphicsPipeline() error = %v", err)
	}
	if err := s.ReleaseGraphicsPipeline(gp); err != nil {
		t.Errorf("ReleaseGraphicsPipeline() error = %v", err)
	}

	_, err = s.CreateGraphicsPipeline(&render.GraphicsPipelineDescriptor{
		ShaderProgram:     prog,
		PrimitiveTopology: render.TopologyTriangleFan,
	})
	if !errors.Is(err, render.ErrNotSupported) {
		t.Errorf("CreateGraphicsPipeline(triangle fan) error = %v, want ErrNotSupported", err)
	}

	if _, err := s.CreateComputePipeline(&render.ComputePipelineDescriptor{ShaderProgram: prog}); !errors.Is(err, render.ErrInvalidDescriptor) {
		t.Errorf("CreateComputePipeline(graphics program) error = %v, want ErrInvalidDescriptor", err)
	}
	cprog, err := s.CreateShaderProgram(&render.ShaderProgramDescriptor{Compute: cs})
	if err != nil {
		t.Fatalf("CreateShaderProgram(compute) error = %v", err)
	}
	cp, err := s.CreateComputePipeline(&render.ComputePipelineDescriptor{ShaderProgram: cprog})
	if err != nil {
		t.Fatalf("CreateComputePipeline() error = %v", err)
	}
	if err := s.ReleaseComputePipeline(cp); err != nil {
		t.Errorf("ReleaseComputePipeline() error = %v", err)
	}
	if err := s.ReleaseShaderProgram(prog); err != nil {
		t.Errorf("ReleaseShaderProgram() error = %v", err)
	}
	if _, err := s.CreateGraphicsPipeline(&render.GraphicsPipelineDescriptor{ShaderProgram: prog}); !errors.Is(err, ErrReleased) {
		t.Errorf("CreateGraphicsPipeline(released program) error = %v, want ErrReleased", err)
	}
}

func TestResourceHeap(t *testing.T) {
	s := newTestSystem(t)
	layout, err := s.CreatePipelineLayout(&render.PipelineLayoutDescriptor{Bindings: []render.BindingDescriptor{
		{Type: render.BindingConstantBuffer, Stages: gputypes.ShaderStageVertex, Slot: 0},
		{Type: render.BindingSampler, Stages: gputypes.ShaderStageFragment, Slot: 1},
	}})
	if err != nil {
		t.Fatalf("CreatePipelineLayout() error = %v", err)
	}
	buf, _ := s.CreateBuffer(&render.BufferDescriptor{Type: render.BufferTypeConstant, Size: 64}, nil)
	desc := gputypes.DefaultSamplerDescriptor()
	sm, _ := s.CreateSampler(&desc)

	heap, err := s.CreateResourceHeap(&render.ResourceHeapDescriptor{
		PipelineLayout: layout,
		ResourceViews:  []render.Resource{buf, sm},
	})
	if err != nil {
		t.Fatalf("CreateResourceHeap() error = %v", err)
	}
	if err := s.ReleaseResourceHeap(heap); err != nil {
		t.Errorf("ReleaseResourceHeap() error = %v", err)
	}

	_, err = s.CreateResourceHeap(&render.ResourceHeapDescriptor{
		PipelineLayout: layout,
		ResourceViews:  []render.Resource{buf},
	})
	if !errors.Is(err, render.ErrInvalidDescriptor) {
		t.Errorf("CreateResourceHeap(short views) error = %v, want ErrInvalidDescriptor", err)
	}
	_, err = s.CreateResourceHeap(&render.ResourceHeapDescriptor{
		PipelineLayout: layout,
		ResourceViews:  []render.Resource{buf, nil},
	})
	if !errors.Is(err, render.ErrInvalidDescriptor) {
		t.Errorf("CreateResourceHeap(nil view) error = %v, want ErrInvalidDescriptor", err)
	}
}

// =============================================================================
// Render targets, command buffers and the queue
// =============================================================================

func TestRenderTarget(t *testing.T) {
	s, dev := newCountingSystem(t)
	color, err := s.CreateTexture(&render.TextureDescriptor{
		Type:      render.Texture2D,
		Usage:     gputypes.TextureUsageRenderAttachment,
		Width:     32,
		Height:    32,
		MipLevels: 1,
	}, nil)
	if err != nil {
		t.Fatalf("CreateTexture() error = %v", err)
	}
	rt, err := s.CreateRenderTarget(&render.RenderTargetDescriptor{
		Width:  32,
		Height: 32,
		Attachments: []render.AttachmentDescriptor{
			{Type: render.AttachmentColor, Texture: color},
			{Type: render.AttachmentDepth},
		},
	})
	if err != nil {
		t.Fatalf("CreateRenderTarget() error = %v", err)
	}
	target := rt.(*renderTarget)
	if len(target.colorViews) != 1 || target.depthView == nil {
		t.Fatalf("target has %d color views, depth %v", len(target.colorViews), target.depthView != nil)
	}
	if target.depthFormat != gputypes.TextureFormatDepth32Float {
		t.Errorf("depth format = %v, want Depth32Float", target.depthFormat)
	}

	views, textures := dev.viewsDestroyed, dev.texturesDestroyed
	if err := s.ReleaseRenderTarget(rt); err != nil {
		t.Fatalf("ReleaseRenderTarget() error = %v", err)
	}
	// one view of the user texture, one owned depth texture with its view
	if dev.viewsDestroyed-views != 2 || dev.texturesDestroyed-textures != 1 {
		t.Errorf("destroyed views/textures = %d/%d, want 2/1",
			dev.viewsDestroyed-views, dev.texturesDestroyed-textures)
	}

	ctx, err := s.CreateRenderContext(&render.RenderContextDescriptor{Width: 16, Height: 16})
	if err != nil {
		t.Fatalf("CreateRenderContext() error = %v", err)
	}
	if ctx.ResourceType() != render.ResourceTypeRenderContext {
		t.Errorf("ResourceType() = %v, want render context", ctx.ResourceType())
	}
	if err := s.ReleaseRenderTarget(ctx); !errors.Is(err, ErrForeignResource) {
		t.Errorf("ReleaseRenderTarget(context) error = %v, want ErrForeignResource", err)
	}
	if err := s.ReleaseRenderContext(ctx); err != nil {
		t.Errorf("ReleaseRenderContext() error = %v", err)
	}
}

func newDrawState(t *testing.T, s *System) (render.RenderContext, render.GraphicsPipeline, render.Buffer) {
	t.Helper()
	ctx, err := s.CreateRenderContext(&render.RenderContextDescriptor{Width: 16, Height: 16})
	if err != nil {
		t.Fatalf("CreateRenderContext() error = %v", err)
	}
	vs, _ := s.CreateShader(&render.ShaderDescriptor{Type: render.ShaderTypeVertex, SPIRV: spirvStub})
	prog, _ := s.CreateShaderProgram(&render.ShaderProgramDescriptor{Vertex: vs})
	gp, err := s.CreateGraphicsPipeline(&render.GraphicsPipelineDescriptor{ShaderProgram: prog, RenderTarget: ctx})
	if err != nil {
		t.Fatalf("CreateGraphicsPipeline() error = %v", err)
	}
	vb, err := s.CreateBuffer(&render.BufferDescriptor{Type: render.BufferTypeVertex, Size: 48}, nil)
	if err != nil {
		t.Fatalf("CreateBuffer() error = %v", err)
	}
	return ctx, gp, vb
}

func TestCommandBufferSubmit(t *testing.T) {
	s := newTestSystem(t)
	ctx, gp, vb := newDrawState(t, s)

	cb, err := s.CreateCommandBuffer()
	if err != nil {
		t.Fatalf("CreateCommandBuffer() error = %v", err)
	}
	q := s.CommandQueue()
	if err := q.Submit(cb); !errors.Is(err, ErrInvalidCommand) {
		t.Errorf("Submit(unrecorded) error = %v, want ErrInvalidCommand", err)
	}

	for frame := 0; frame < 2; frame++ {
		cb.Begin()
		cb.SetClearColor(gputypes.Color{R: 0.1, G: 0.2, B: 0.3, A: 1})
		cb.SetViewport(render.Viewport{Width: 16, Height: 16, MaxDepth: 1})
		cb.SetGraphicsPipeline(gp)
		cb.SetVertexBuffer(vb)
		cb.BeginRenderPass(ctx)
		cb.Draw(3, 0)
		cb.DrawInstanced(3, 0, 2)
		cb.EndRenderPass()
		cb.End()
		if err := q.Submit(cb); err != nil {
			t.Fatalf("frame %d: Submit() error = %v", frame, err)
		}
	}

	f, _ := s.CreateFence()
	if err := q.SubmitFence(f); err != nil {
		t.Fatalf("SubmitFence() error = %v", err)
	}
	ok, err := q.WaitFence(f, time.Second)
	if err != nil || !ok {
		t.Errorf("WaitFence() = %v, %v, want true, nil", ok, err)
	}
	if err := s.ReleaseFence(f); err != nil {
		t.Errorf("ReleaseFence() error = %v", err)
	}
	if _, err := q.WaitFence(f, 0); !errors.Is(err, ErrReleased) {
		t.Errorf("WaitFence(released) error = %v, want ErrReleased", err)
	}
	if err := s.ReleaseCommandBuffer(cb); err != nil {
		t.Errorf("ReleaseCommandBuffer() error = %v", err)
	}
}

func TestCommandBufferErrors(t *testing.T) {
	tests := []struct {
		name   string
		record func(cb render.CommandBuffer, ctx render.RenderContext)
		want   error
	}{
		{
			name: "draw outside render pass",
			record: func(cb render.CommandBuffer, _ render.RenderContext) {
				cb.Draw(3, 0)
			},
			want: ErrInvalidCommand,
		},
		{
			name: "dispatch without compute pipeline",
			record: func(cb render.CommandBuffer, _ render.RenderContext) {
				cb.Dispatch(1, 1, 1)
			},
			want: ErrInvalidCommand,
		},
		{
			name: "end render pass without begin",
			record: func(cb render.CommandBuffer, _ render.RenderContext) {
				cb.EndRenderPass()
			},
			want: ErrInvalidCommand,
		},
		{
			name: "foreign vertex buffer",
			record: func(cb render.CommandBuffer, ctx render.RenderContext) {
				cb.BeginRenderPass(ctx)
				cb.SetVertexBuffer(alienBuffer{})
				cb.EndRenderPass()
			},
			want: ErrForeignResource,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSystem(t)
			ctx, _, _ := newDrawState(t, s)
			cb, _ := s.CreateCommandBuffer()
			cb.Begin()
			tt.record(cb, ctx)
			cb.End()
			if err := s.CommandQueue().Submit(cb); !errors.Is(err, tt.want) {
				t.Errorf("Submit() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestSubmitWhileRecording(t *testing.T) {
	s := newTestSystem(t)
	cb, _ := s.CreateCommandBuffer()
	cb.Begin()
	if err := s.CommandQueue().Submit(cb); !errors.Is(err, ErrInvalidCommand) {
		t.Errorf("Submit(recording) error = %v, want ErrInvalidCommand", err)
	}
	if err := s.ReleaseCommandBuffer(cb); err != nil {
		t.Errorf("ReleaseCommandBuffer(recording) error = %v", err)
	}
}

func TestQueries(t *testing.T) {
	s := newTestSystem(t)
	// the noop device has no timestamp support
	if _, err := s.CreateQuery(&render.QueryDescriptor{Type: render.QueryTimeElapsed}); !errors.Is(err, hal.ErrTimestampsNotSupported) {
		t.Errorf("CreateQuery(time elapsed) error = %v, want ErrTimestampsNotSupported", err)
	}
	if _, err := s.CreateQuery(&render.QueryDescriptor{Type: render.QueryPipelineStatistics}); !errors.Is(err, render.ErrNotSupported) {
		t.Errorf("CreateQuery(pipeline statistics) error = %v, want ErrNotSupported", err)
	}
}

func TestWaitFenceDefaultTimeout(t *testing.T) {
	s := newTestSystem(t)
	s.SetConfiguration(render.Configuration{DefaultFenceTimeout: time.Millisecond})
	f, _ := s.CreateFence()
	f.(*fence).target = 1 << 40
	ok, err := s.CommandQueue().WaitFence(f, 0)
	if err != nil || ok {
		t.Errorf("WaitFence(unreached) = %v, %v, want false, nil", ok, err)
	}
}

func TestRegisteredBackends(t *testing.T) {
	for _, name := range []string{backend.Vulkan, backend.Metal, backend.DX12, backend.GL, backend.Noop} {
		if !backend.IsRegistered(name) {
			t.Errorf("backend %q not registered", name)
		}
	}

	sys, err := backend.Open(backend.Noop)
	if err != nil {
		t.Fatalf("backend.Open(noop) error = %v", err)
	}
	s, ok := sys.(*System)
	if !ok {
		t.Fatalf("backend.Open(noop) returned %T, want *System", sys)
	}
	if err := s.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}
