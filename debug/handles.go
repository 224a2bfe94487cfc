// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package debug

import "github.com/gogpu/gfx/render"

// ref ties a debug handle to its owning render system and table slot.
type ref struct {
	owner *RenderSystem
	h     handle
}

// Buffer is the debug handle of a buffer.
type Buffer struct {
	ref
	typ render.BufferType
}

// ResourceType implements render.Resource.
func (*Buffer) ResourceType() render.ResourceType { return render.ResourceTypeBuffer }

// BufferType implements render.Buffer.
func (b *Buffer) BufferType() render.BufferType { return b.typ }

type bufferEntry struct {
	native      render.Buffer
	desc        render.BufferDescriptor
	initialized bool
	mapped      bool
}

// formatSize is the byte size of one element, or zero when unknown.
func (e *bufferEntry) formatSize() uint64 {
	switch e.desc.Type {
	case render.BufferTypeVertex:
		return uint64(e.desc.VertexFormat.Stride)
	case render.BufferTypeIndex:
		return uint64(e.desc.IndexFormat.Size())
	default:
		return 0
	}
}

// elements is the number of whole elements in the buffer, or zero when the
// element size is unknown.
func (e *bufferEntry) elements() uint64 {
	if fs := e.formatSize(); fs > 0 {
		return e.desc.Size / fs
	}
	return 0
}

// BufferArray is the debug handle of a buffer array.
type BufferArray struct {
	ref
	typ render.BufferType
}

// ResourceType implements render.Resource.
func (*BufferArray) ResourceType() render.ResourceType { return render.ResourceTypeBufferArray }

// BufferType implements render.BufferArray.
func (a *BufferArray) BufferType() render.BufferType { return a.typ }

type bufferArrayEntry struct {
	native  render.BufferArray
	buffers []*Buffer
}

// Texture is the debug handle of a texture.
type Texture struct {
	ref
	typ render.TextureType
}

// ResourceType implements render.Resource.
func (*Texture) ResourceType() render.ResourceType { return render.ResourceTypeTexture }

// TextureType implements render.Texture.
func (t *Texture) TextureType() render.TextureType { return t.typ }

type textureEntry struct {
	native render.Texture
	desc   render.TextureDescriptor
}

func (e *textureEntry) mipLevels() uint32 { return e.desc.MipLevelCount() }

func (e *textureEntry) layers() uint32 { return e.desc.ArrayLayerCount() }

// TextureArray is the debug handle of a texture array.
type TextureArray struct{ ref }

// ResourceType implements render.Resource.
func (*TextureArray) ResourceType() render.ResourceType { return render.ResourceTypeTextureArray }

type textureArrayEntry struct {
	native   render.TextureArray
	textures []*Texture
}

// Sampler is the debug handle of a sampler.
type Sampler struct{ ref }

// ResourceType implements render.Resource.
func (*Sampler) ResourceType() render.ResourceType { return render.ResourceTypeSampler }

type samplerEntry struct {
	native render.Sampler
	desc   render.SamplerDescriptor
}

// SamplerArray is the debug handle of a sampler array.
type SamplerArray struct{ ref }

// ResourceType implements render.Resource.
func (*SamplerArray) ResourceType() render.ResourceType { return render.ResourceTypeSamplerArray }

type samplerArrayEntry struct {
	native   render.SamplerArray
	samplers []*Sampler
}

// ResourceHeap is the debug handle of a resource heap.
type ResourceHeap struct{ ref }

// ResourceType implements render.Resource.
func (*ResourceHeap) ResourceType() render.ResourceType { return render.ResourceTypeResourceHeap }

type resourceHeapEntry struct {
	native render.ResourceHeap
	layout *PipelineLayout
	views  []render.Resource
}

// RenderTarget is the debug handle of a render target.
type RenderTarget struct{ ref }

// ResourceType implements render.Resource.
func (*RenderTarget) ResourceType() render.ResourceType { return render.ResourceTypeRenderTarget }

type renderTargetEntry struct {
	native render.RenderTarget
	desc   render.RenderTargetDescriptor
}

// RenderContext is the debug handle of a render context.
type RenderContext struct{ ref }

// ResourceType implements render.Resource.
func (*RenderContext) ResourceType() render.ResourceType { return render.ResourceTypeRenderContext }

type renderContextEntry struct {
	native render.RenderContext
	desc   render.RenderContextDescriptor
}

// Shader is the debug handle of a shader.
type Shader struct {
	ref
	typ render.ShaderType
}

// ResourceType implements render.Resource.
func (*Shader) ResourceType() render.ResourceType { return render.ResourceTypeShader }

// ShaderType implements render.Shader.
func (s *Shader) ShaderType() render.ShaderType { return s.typ }

type shaderEntry struct {
	native render.Shader
	desc   render.ShaderDescriptor
}

// ShaderProgram is the debug handle of a shader program.
type ShaderProgram struct{ ref }

// ResourceType implements render.Resource.
func (*ShaderProgram) ResourceType() render.ResourceType { return render.ResourceTypeShaderProgram }

type shaderProgramEntry struct {
	native render.ShaderProgram
	stages []render.ShaderType
}

func (e *shaderProgramEntry) has(t render.ShaderType) bool {
	for _, s := range e.stages {
		if s == t {
			return true
		}
	}
	return false
}

// PipelineLayout is the debug handle of a pipeline layout.
type PipelineLayout struct{ ref }

// ResourceType implements render.Resource.
func (*PipelineLayout) ResourceType() render.ResourceType { return render.ResourceTypePipelineLayout }

type pipelineLayoutEntry struct {
	native render.PipelineLayout
	desc   render.PipelineLayoutDescriptor
}

// GraphicsPipeline is the debug handle of a graphics pipeline.
type GraphicsPipeline struct{ ref }

// ResourceType implements render.Resource.
func (*GraphicsPipeline) ResourceType() render.ResourceType {
	return render.ResourceTypeGraphicsPipeline
}

type graphicsPipelineEntry struct {
	native   render.GraphicsPipeline
	topology render.PrimitiveTopology
}

// ComputePipeline is the debug handle of a compute pipeline.
type ComputePipeline struct{ ref }

// ResourceType implements render.Resource.
func (*ComputePipeline) ResourceType() render.ResourceType {
	return render.ResourceTypeComputePipeline
}

type computePipelineEntry struct {
	native render.ComputePipeline
}

// Query is the debug handle of a query.
type Query struct {
	ref
	typ render.QueryType
}

// ResourceType implements render.Resource.
func (*Query) ResourceType() render.ResourceType { return render.ResourceTypeQuery }

// QueryType implements render.Query.
func (q *Query) QueryType() render.QueryType { return q.typ }

type queryEntry struct {
	native render.Query
	active bool
}

// Fence is the debug handle of a fence.
type Fence struct{ ref }

// ResourceType implements render.Resource.
func (*Fence) ResourceType() render.ResourceType { return render.ResourceTypeFence }

type fenceEntry struct {
	native render.Fence
}

// Interface compliance checks.
var (
	_ render.Buffer           = (*Buffer)(nil)
	_ render.BufferArray      = (*BufferArray)(nil)
	_ render.Texture          = (*Texture)(nil)
	_ render.TextureArray     = (*TextureArray)(nil)
	_ render.Sampler          = (*Sampler)(nil)
	_ render.SamplerArray     = (*SamplerArray)(nil)
	_ render.ResourceHeap     = (*ResourceHeap)(nil)
	_ render.RenderTarget     = (*RenderTarget)(nil)
	_ render.RenderContext    = (*RenderContext)(nil)
	_ render.Shader           = (*Shader)(nil)
	_ render.ShaderProgram    = (*ShaderProgram)(nil)
	_ render.PipelineLayout   = (*PipelineLayout)(nil)
	_ render.GraphicsPipeline = (*GraphicsPipeline)(nil)
	_ render.ComputePipeline  = (*ComputePipeline)(nil)
	_ render.Query            = (*Query)(nil)
	_ render.Fence            = (*Fence)(nil)
	_ render.CommandBuffer    = (*CommandBuffer)(nil)
)
