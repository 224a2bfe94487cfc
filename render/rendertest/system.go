// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package rendertest provides an in-memory render.System for tests.
//
// The System records every call it receives, keeps CPU-side storage for
// buffers, and returns its own handle types. Passing it a handle it did not
// create fails with ErrForeignHandle, which makes it suitable for checking
// that wrappers unwrap their handles before forwarding.
package rendertest

import (
	"errors"
	"fmt"
	"time"

	"github.com/gogpu/gfx/render"
)

// ErrForeignHandle is returned when a handle was not created by the System.
var ErrForeignHandle = errors.New("rendertest: handle not created by this system")

// Call is one recorded method invocation.
type Call struct {
	Method string
	Args   []any
}

// System is a recording render.System.
type System struct {
	// ID is returned by RendererID.
	ID render.RendererID

	// Info is returned by RendererInfo.
	Info render.RendererInfo

	// Caps is returned by RenderingCaps.
	Caps render.RenderingCaps

	// ContextCaps, when non-nil, replaces Caps after a successful
	// CreateRenderContext.
	ContextCaps *render.RenderingCaps

	// Config holds the last SetConfiguration value.
	Config render.Configuration

	// Errs makes the named method fail with the given error.
	Errs map[string]error

	// Calls are all recorded calls in order.
	Calls []Call

	queue *Queue
	live  int
}

// New returns a System that reports every feature and default limits.
func New() *System {
	s := &System{
		ID:   render.RendererNull,
		Info: render.RendererInfo{RendererName: "Null", DeviceName: "rendertest"},
		Caps: render.RenderingCaps{
			Features: render.AllFeatures,
			Limits:   render.DefaultLimits(),
		},
	}
	s.queue = &Queue{sys: s}
	return s
}

// Count returns how often method was called.
func (s *System) Count(method string) int {
	n := 0
	for _, c := range s.Calls {
		if c.Method == method {
			n++
		}
	}
	return n
}

// Last returns the most recent call of method.
func (s *System) Last(method string) (Call, bool) {
	for i := len(s.Calls) - 1; i >= 0; i-- {
		if s.Calls[i].Method == method {
			return s.Calls[i], true
		}
	}
	return Call{}, false
}

// Live returns the number of created and not yet released resources.
func (s *System) Live() int { return s.live }

func (s *System) record(method string, args ...any) error {
	s.Calls = append(s.Calls, Call{Method: method, Args: args})
	if err := s.Errs[method]; err != nil {
		return err
	}
	return nil
}

func (s *System) created() { s.live++ }

func (s *System) released(r *resource) error {
	if r.Released {
		return fmt.Errorf("rendertest: double release of %s", r.kind)
	}
	r.Released = true
	s.live--
	return nil
}

func foreign(want render.ResourceType, got any) error {
	return fmt.Errorf("%w: want %s, got %T", ErrForeignHandle, want, got)
}

// resource is the common part of every rendertest handle.
type resource struct {
	kind     render.ResourceType
	Released bool
}

func (r *resource) ResourceType() render.ResourceType { return r.kind }

// RendererID implements render.System.
func (s *System) RendererID() render.RendererID { return s.ID }

// RendererInfo implements render.System.
func (s *System) RendererInfo() render.RendererInfo { return s.Info }

// RenderingCaps implements render.System.
func (s *System) RenderingCaps() render.RenderingCaps {
	_ = s.record("RenderingCaps")
	return s.Caps
}

// SetConfiguration implements render.System.
func (s *System) SetConfiguration(cfg render.Configuration) {
	_ = s.record("SetConfiguration", cfg)
	s.Config = cfg
}

// CommandQueue implements render.System.
func (s *System) CommandQueue() render.CommandQueue { return s.queue }

// RenderContext is a rendertest render context.
type RenderContext struct {
	resource
	Desc render.RenderContextDescriptor
}

// CreateRenderContext implements render.System.
func (s *System) CreateRenderContext(desc *render.RenderContextDescriptor) (render.RenderContext, error) {
	if err := s.record("CreateRenderContext", desc); err != nil {
		return nil, err
	}
	if s.ContextCaps != nil {
		s.Caps = *s.ContextCaps
	}
	s.created()
	return &RenderContext{resource: resource{kind: render.ResourceTypeRenderContext}, Desc: *desc}, nil
}

// ReleaseRenderContext implements render.System.
func (s *System) ReleaseRenderContext(ctx render.RenderContext) error {
	if err := s.record("ReleaseRenderContext", ctx); err != nil {
		return err
	}
	c, ok := ctx.(*RenderContext)
	if !ok {
		return foreign(render.ResourceTypeRenderContext, ctx)
	}
	return s.released(&c.resource)
}

// Buffer is a rendertest buffer with CPU storage.
type Buffer struct {
	resource
	Desc   render.BufferDescriptor
	Data   []byte
	Mapped bool
}

// BufferType implements render.Buffer.
func (b *Buffer) BufferType() render.BufferType { return b.Desc.Type }

// CreateBuffer implements render.System.
func (s *System) CreateBuffer(desc *render.BufferDescriptor, initialData []byte) (render.Buffer, error) {
	if err := s.record("CreateBuffer", desc, initialData); err != nil {
		return nil, err
	}
	b := &Buffer{resource: resource{kind: render.ResourceTypeBuffer}, Desc: *desc}
	if desc.Size <= 1<<24 {
		b.Data = make([]byte, desc.Size)
		copy(b.Data, initialData)
	}
	s.created()
	return b, nil
}

// ReleaseBuffer implements render.System.
func (s *System) ReleaseBuffer(buf render.Buffer) error {
	if err := s.record("ReleaseBuffer", buf); err != nil {
		return err
	}
	b, ok := buf.(*Buffer)
	if !ok {
		return foreign(render.ResourceTypeBuffer, buf)
	}
	return s.released(&b.resource)
}

// BufferArray is a rendertest buffer array.
type BufferArray struct {
	resource
	Buffers []*Buffer
}

// BufferType implements render.BufferArray.
func (a *BufferArray) BufferType() render.BufferType {
	if len(a.Buffers) == 0 {
		return 0
	}
	return a.Buffers[0].Desc.Type
}

// CreateBufferArray implements render.System.
func (s *System) CreateBufferArray(buffers []render.Buffer) (render.BufferArray, error) {
	if err := s.record("CreateBufferArray", buffers); err != nil {
		return nil, err
	}
	arr := &BufferArray{resource: resource{kind: render.ResourceTypeBufferArray}}
	for _, buf := range buffers {
		b, ok := buf.(*Buffer)
		if !ok {
			return nil, foreign(render.ResourceTypeBuffer, buf)
		}
		arr.Buffers = append(arr.Buffers, b)
	}
	s.created()
	return arr, nil
}

// ReleaseBufferArray implements render.System.
func (s *System) ReleaseBufferArray(arr render.BufferArray) error {
	if err := s.record("ReleaseBufferArray", arr); err != nil {
		return err
	}
	a, ok := arr.(*BufferArray)
	if !ok {
		return foreign(render.ResourceTypeBufferArray, arr)
	}
	return s.released(&a.resource)
}

// WriteBuffer implements render.System. Writes that do not fit are
// recorded but not copied.
func (s *System) WriteBuffer(buf render.Buffer, data []byte, offset uint64) error {
	if err := s.record("WriteBuffer", buf, data, offset); err != nil {
		return err
	}
	b, ok := buf.(*Buffer)
	if !ok {
		return foreign(render.ResourceTypeBuffer, buf)
	}
	if offset <= uint64(len(b.Data)) && uint64(len(data)) <= uint64(len(b.Data))-offset {
		copy(b.Data[offset:], data)
	}
	return nil
}

// MapBuffer implements render.System.
func (s *System) MapBuffer(buf render.Buffer, access render.CPUAccess) ([]byte, error) {
	if err := s.record("MapBuffer", buf, access); err != nil {
		return nil, err
	}
	b, ok := buf.(*Buffer)
	if !ok {
		return nil, foreign(render.ResourceTypeBuffer, buf)
	}
	b.Mapped = true
	return b.Data, nil
}

// UnmapBuffer implements render.System.
func (s *System) UnmapBuffer(buf render.Buffer) error {
	if err := s.record("UnmapBuffer", buf); err != nil {
		return err
	}
	b, ok := buf.(*Buffer)
	if !ok {
		return foreign(render.ResourceTypeBuffer, buf)
	}
	b.Mapped = false
	return nil
}

// Texture is a rendertest texture.
type Texture struct {
	resource
	Desc render.TextureDescriptor
}

// TextureType implements render.Texture.
func (t *Texture) TextureType() render.TextureType { return t.Desc.Type }

// CreateTexture implements render.System.
func (s *System) CreateTexture(desc *render.TextureDescriptor, image *render.SrcImageDescriptor) (render.Texture, error) {
	if err := s.record("CreateTexture", desc, image); err != nil {
		return nil, err
	}
	s.created()
	return &Texture{resource: resource{kind: render.ResourceTypeTexture}, Desc: *desc}, nil
}

// ReleaseTexture implements render.System.
func (s *System) ReleaseTexture(tex render.Texture) error {
	if err := s.record("ReleaseTexture", tex); err != nil {
		return err
	}
	t, ok := tex.(*Texture)
	if !ok {
		return foreign(render.ResourceTypeTexture, tex)
	}
	return s.released(&t.resource)
}

// TextureArray is a rendertest texture array.
type TextureArray struct {
	resource
	Textures []*Texture
}

// CreateTextureArray implements render.System.
func (s *System) CreateTextureArray(textures []render.Texture) (render.TextureArray, error) {
	if err := s.record("CreateTextureArray", textures); err != nil {
		return nil, err
	}
	arr := &TextureArray{resource: resource{kind: render.ResourceTypeTextureArray}}
	for _, tex := range textures {
		t, ok := tex.(*Texture)
		if !ok {
			return nil, foreign(render.ResourceTypeTexture, tex)
		}
		arr.Textures = append(arr.Textures, t)
	}
	s.created()
	return arr, nil
}

// ReleaseTextureArray implements render.System.
func (s *System) ReleaseTextureArray(arr render.TextureArray) error {
	if err := s.record("ReleaseTextureArray", arr); err != nil {
		return err
	}
	a, ok := arr.(*TextureArray)
	if !ok {
		return foreign(render.ResourceTypeTextureArray, arr)
	}
	return s.released(&a.resource)
}

// WriteTexture implements render.System.
func (s *System) WriteTexture(tex render.Texture, region *render.TextureRegion, image *render.SrcImageDescriptor) error {
	if err := s.record("WriteTexture", tex, region, image); err != nil {
		return err
	}
	if _, ok := tex.(*Texture); !ok {
		return foreign(render.ResourceTypeTexture, tex)
	}
	return nil
}

// ReadTexture implements render.System. It fills the destination with zeros.
func (s *System) ReadTexture(tex render.Texture, mipLevel uint32, image *render.DstImageDescriptor) error {
	if err := s.record("ReadTexture", tex, mipLevel, image); err != nil {
		return err
	}
	if _, ok := tex.(*Texture); !ok {
		return foreign(render.ResourceTypeTexture, tex)
	}
	clear(image.Data)
	return nil
}

// GenerateMips implements render.System.
func (s *System) GenerateMips(tex render.Texture) error {
	if err := s.record("GenerateMips", tex); err != nil {
		return err
	}
	if _, ok := tex.(*Texture); !ok {
		return foreign(render.ResourceTypeTexture, tex)
	}
	return nil
}

// GenerateMipRange implements render.System.
func (s *System) GenerateMipRange(tex render.Texture, baseMipLevel, numMipLevels, baseArrayLayer, numArrayLayers uint32) error {
	if err := s.record("GenerateMipRange", tex, baseMipLevel, numMipLevels, baseArrayLayer, numArrayLayers); err != nil {
		return err
	}
	if _, ok := tex.(*Texture); !ok {
		return foreign(render.ResourceTypeTexture, tex)
	}
	return nil
}

// Sampler is a rendertest sampler.
type Sampler struct {
	resource
	Desc render.SamplerDescriptor
}

// CreateSampler implements render.System.
func (s *System) CreateSampler(desc *render.SamplerDescriptor) (render.Sampler, error) {
	if err := s.record("CreateSampler", desc); err != nil {
		return nil, err
	}
	s.created()
	return &Sampler{resource: resource{kind: render.ResourceTypeSampler}, Desc: *desc}, nil
}

// ReleaseSampler implements render.System.
func (s *System) ReleaseSampler(smp render.Sampler) error {
	if err := s.record("ReleaseSampler", smp); err != nil {
		return err
	}
	x, ok := smp.(*Sampler)
	if !ok {
		return foreign(render.ResourceTypeSampler, smp)
	}
	return s.released(&x.resource)
}

// SamplerArray is a rendertest sampler array.
type SamplerArray struct {
	resource
	Samplers []*Sampler
}

// CreateSamplerArray implements render.System.
func (s *System) CreateSamplerArray(samplers []render.Sampler) (render.SamplerArray, error) {
	if err := s.record("CreateSamplerArray", samplers); err != nil {
		return nil, err
	}
	arr := &SamplerArray{resource: resource{kind: render.ResourceTypeSamplerArray}}
	for _, smp := range samplers {
		x, ok := smp.(*Sampler)
		if !ok {
			return nil, foreign(render.ResourceTypeSampler, smp)
		}
		arr.Samplers = append(arr.Samplers, x)
	}
	s.created()
	return arr, nil
}

// ReleaseSamplerArray implements render.System.
func (s *System) ReleaseSamplerArray(arr render.SamplerArray) error {
	if err := s.record("ReleaseSamplerArray", arr); err != nil {
		return err
	}
	a, ok := arr.(*SamplerArray)
	if !ok {
		return foreign(render.ResourceTypeSamplerArray, arr)
	}
	return s.released(&a.resource)
}

// ResourceHeap is a rendertest resource heap.
type ResourceHeap struct {
	resource
	Layout *PipelineLayout
	Views  []render.Resource
}

// CreateResourceHeap implements render.System.
func (s *System) CreateResourceHeap(desc *render.ResourceHeapDescriptor) (render.ResourceHeap, error) {
	if err := s.record("CreateResourceHeap", desc); err != nil {
		return nil, err
	}
	layout, ok := desc.PipelineLayout.(*PipelineLayout)
	if !ok {
		return nil, foreign(render.ResourceTypePipelineLayout, desc.PipelineLayout)
	}
	for _, v := range desc.ResourceViews {
		switch v.(type) {
		case nil, *Buffer, *Texture, *Sampler:
		default:
			return nil, foreign(render.ResourceTypeUndefined, v)
		}
	}
	s.created()
	return &ResourceHeap{
		resource: resource{kind: render.ResourceTypeResourceHeap},
		Layout:   layout,
		Views:    append([]render.Resource(nil), desc.ResourceViews...),
	}, nil
}

// ReleaseResourceHeap implements render.System.
func (s *System) ReleaseResourceHeap(heap render.ResourceHeap) error {
	if err := s.record("ReleaseResourceHeap", heap); err != nil {
		return err
	}
	h, ok := heap.(*ResourceHeap)
	if !ok {
		return foreign(render.ResourceTypeResourceHeap, heap)
	}
	return s.released(&h.resource)
}

// RenderTarget is a rendertest render target.
type RenderTarget struct {
	resource
	Desc render.RenderTargetDescriptor
}

// CreateRenderTarget implements render.System.
func (s *System) CreateRenderTarget(desc *render.RenderTargetDescriptor) (render.RenderTarget, error) {
	if err := s.record("CreateRenderTarget", desc); err != nil {
		return nil, err
	}
	for _, a := range desc.Attachments {
		if a.Texture == nil {
			continue
		}
		if _, ok := a.Texture.(*Texture); !ok {
			return nil, foreign(render.ResourceTypeTexture, a.Texture)
		}
	}
	s.created()
	return &RenderTarget{resource: resource{kind: render.ResourceTypeRenderTarget}, Desc: *desc}, nil
}

// ReleaseRenderTarget implements render.System.
func (s *System) ReleaseRenderTarget(rt render.RenderTarget) error {
	if err := s.record("ReleaseRenderTarget", rt); err != nil {
		return err
	}
	r, ok := rt.(*RenderTarget)
	if !ok {
		return foreign(render.ResourceTypeRenderTarget, rt)
	}
	return s.released(&r.resource)
}

// Shader is a rendertest shader.
type Shader struct {
	resource
	Desc render.ShaderDescriptor
}

// ShaderType implements render.Shader.
func (sh *Shader) ShaderType() render.ShaderType { return sh.Desc.Type }

// CreateShader implements render.System.
func (s *System) CreateShader(desc *render.ShaderDescriptor) (render.Shader, error) {
	if err := s.record("CreateShader", desc); err != nil {
		return nil, err
	}
	s.created()
	return &Shader{resource: resource{kind: render.ResourceTypeShader}, Desc: *desc}, nil
}

// ReleaseShader implements render.System.
func (s *System) ReleaseShader(sh render.Shader) error {
	if err := s.record("ReleaseShader", sh); err != nil {
		return err
	}
	x, ok := sh.(*Shader)
	if !ok {
		return foreign(render.ResourceTypeShader, sh)
	}
	return s.released(&x.resource)
}

// ShaderProgram is a rendertest shader program.
type ShaderProgram struct {
	resource
	Desc render.ShaderProgramDescriptor
}

// CreateShaderProgram implements render.System.
func (s *System) CreateShaderProgram(desc *render.ShaderProgramDescriptor) (render.ShaderProgram, error) {
	if err := s.record("CreateShaderProgram", desc); err != nil {
		return nil, err
	}
	for _, slot := range desc.Stages() {
		if _, ok := slot.Shader.(*Shader); !ok {
			return nil, foreign(render.ResourceTypeShader, slot.Shader)
		}
	}
	s.created()
	return &ShaderProgram{resource: resource{kind: render.ResourceTypeShaderProgram}, Desc: *desc}, nil
}

// ReleaseShaderProgram implements render.System.
func (s *System) ReleaseShaderProgram(p render.ShaderProgram) error {
	if err := s.record("ReleaseShaderProgram", p); err != nil {
		return err
	}
	x, ok := p.(*ShaderProgram)
	if !ok {
		return foreign(render.ResourceTypeShaderProgram, p)
	}
	return s.released(&x.resource)
}

// PipelineLayout is a rendertest pipeline layout.
type PipelineLayout struct {
	resource
	Desc render.PipelineLayoutDescriptor
}

// CreatePipelineLayout implements render.System.
func (s *System) CreatePipelineLayout(desc *render.PipelineLayoutDescriptor) (render.PipelineLayout, error) {
	if err := s.record("CreatePipelineLayout", desc); err != nil {
		return nil, err
	}
	s.created()
	return &PipelineLayout{resource: resource{kind: render.ResourceTypePipelineLayout}, Desc: *desc}, nil
}

// ReleasePipelineLayout implements render.System.
func (s *System) ReleasePipelineLayout(layout render.PipelineLayout) error {
	if err := s.record("ReleasePipelineLayout", layout); err != nil {
		return err
	}
	x, ok := layout.(*PipelineLayout)
	if !ok {
		return foreign(render.ResourceTypePipelineLayout, layout)
	}
	return s.released(&x.resource)
}

// GraphicsPipeline is a rendertest graphics pipeline.
type GraphicsPipeline struct {
	resource
	Desc render.GraphicsPipelineDescriptor
}

// CreateGraphicsPipeline implements render.System.
func (s *System) CreateGraphicsPipeline(desc *render.GraphicsPipelineDescriptor) (render.GraphicsPipeline, error) {
	if err := s.record("CreateGraphicsPipeline", desc); err != nil {
		return nil, err
	}
	if _, ok := desc.ShaderProgram.(*ShaderProgram); !ok {
		return nil, foreign(render.ResourceTypeShaderProgram, desc.ShaderProgram)
	}
	s.created()
	return &GraphicsPipeline{resource: resource{kind: render.ResourceTypeGraphicsPipeline}, Desc: *desc}, nil
}

// ReleaseGraphicsPipeline implements render.System.
func (s *System) ReleaseGraphicsPipeline(p render.GraphicsPipeline) error {
	if err := s.record("ReleaseGraphicsPipeline", p); err != nil {
		return err
	}
	x, ok := p.(*GraphicsPipeline)
	if !ok {
		return foreign(render.ResourceTypeGraphicsPipeline, p)
	}
	return s.released(&x.resource)
}

// ComputePipeline is a rendertest compute pipeline.
type ComputePipeline struct {
	resource
	Desc render.ComputePipelineDescriptor
}

// CreateComputePipeline implements render.System.
func (s *System) CreateComputePipeline(desc *render.ComputePipelineDescriptor) (render.ComputePipeline, error) {
	if err := s.record("CreateComputePipeline", desc); err != nil {
		return nil, err
	}
	if _, ok := desc.ShaderProgram.(*ShaderProgram); !ok {
		return nil, foreign(render.ResourceTypeShaderProgram, desc.ShaderProgram)
	}
	s.created()
	return &ComputePipeline{resource: resource{kind: render.ResourceTypeComputePipeline}, Desc: *desc}, nil
}

// ReleaseComputePipeline implements render.System.
func (s *System) ReleaseComputePipeline(p render.ComputePipeline) error {
	if err := s.record("ReleaseComputePipeline", p); err != nil {
		return err
	}
	x, ok := p.(*ComputePipeline)
	if !ok {
		return foreign(render.ResourceTypeComputePipeline, p)
	}
	return s.released(&x.resource)
}

// Query is a rendertest query.
type Query struct {
	resource
	Desc render.QueryDescriptor
}

// QueryType implements render.Query.
func (q *Query) QueryType() render.QueryType { return q.Desc.Type }

// CreateQuery implements render.System.
func (s *System) CreateQuery(desc *render.QueryDescriptor) (render.Query, error) {
	if err := s.record("CreateQuery", desc); err != nil {
		return nil, err
	}
	s.created()
	return &Query{resource: resource{kind: render.ResourceTypeQuery}, Desc: *desc}, nil
}

// ReleaseQuery implements render.System.
func (s *System) ReleaseQuery(q render.Query) error {
	if err := s.record("ReleaseQuery", q); err != nil {
		return err
	}
	x, ok := q.(*Query)
	if !ok {
		return foreign(render.ResourceTypeQuery, q)
	}
	return s.released(&x.resource)
}

// Fence is a rendertest fence. It is signaled by SubmitFence.
type Fence struct {
	resource
	Signaled bool
}

// CreateFence implements render.System.
func (s *System) CreateFence() (render.Fence, error) {
	if err := s.record("CreateFence"); err != nil {
		return nil, err
	}
	s.created()
	return &Fence{resource: resource{kind: render.ResourceTypeFence}}, nil
}

// ReleaseFence implements render.System.
func (s *System) ReleaseFence(f render.Fence) error {
	if err := s.record("ReleaseFence", f); err != nil {
		return err
	}
	x, ok := f.(*Fence)
	if !ok {
		return foreign(render.ResourceTypeFence, f)
	}
	return s.released(&x.resource)
}

// CreateCommandBuffer implements render.System.
func (s *System) CreateCommandBuffer() (render.CommandBuffer, error) {
	if err := s.record("CreateCommandBuffer"); err != nil {
		return nil, err
	}
	s.created()
	return &CommandBuffer{resource: resource{kind: render.ResourceTypeCommandBuffer}}, nil
}

// ReleaseCommandBuffer implements render.System.
func (s *System) ReleaseCommandBuffer(cb render.CommandBuffer) error {
	if err := s.record("ReleaseCommandBuffer", cb); err != nil {
		return err
	}
	x, ok := cb.(*CommandBuffer)
	if !ok {
		return foreign(render.ResourceTypeCommandBuffer, cb)
	}
	return s.released(&x.resource)
}

// Queue is the rendertest command queue.
type Queue struct {
	sys *System

	// Submitted are the command buffers in submission order.
	Submitted []*CommandBuffer
}

// Submit implements render.CommandQueue.
func (q *Queue) Submit(cb render.CommandBuffer) error {
	if err := q.sys.record("Submit", cb); err != nil {
		return err
	}
	x, ok := cb.(*CommandBuffer)
	if !ok {
		return foreign(render.ResourceTypeCommandBuffer, cb)
	}
	q.Submitted = append(q.Submitted, x)
	return nil
}

// SubmitFence implements render.CommandQueue.
func (q *Queue) SubmitFence(f render.Fence) error {
	if err := q.sys.record("SubmitFence", f); err != nil {
		return err
	}
	x, ok := f.(*Fence)
	if !ok {
		return foreign(render.ResourceTypeFence, f)
	}
	x.Signaled = true
	return nil
}

// WaitFence implements render.CommandQueue.
func (q *Queue) WaitFence(f render.Fence, timeout time.Duration) (bool, error) {
	if err := q.sys.record("WaitFence", f, timeout); err != nil {
		return false, err
	}
	x, ok := f.(*Fence)
	if !ok {
		return false, foreign(render.ResourceTypeFence, f)
	}
	return x.Signaled, nil
}

// WaitIdle implements render.CommandQueue.
func (q *Queue) WaitIdle() error {
	return q.sys.record("WaitIdle")
}
