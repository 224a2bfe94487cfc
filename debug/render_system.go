// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package debug

import (
	"fmt"
	"log/slog"

	"github.com/gogpu/gfx"
	"github.com/gogpu/gfx/render"
)

// slogger returns the shared gfx logger.
func slogger() *slog.Logger { return gfx.LoggerFor("debug") }

// Option configures a RenderSystem during creation.
type Option func(*options)

type options struct {
	debugger Debugger
	profiler Profiler
}

// WithDebugger sets the debugger that receives validation reports.
// Without a debugger no validation rules run.
func WithDebugger(d Debugger) Option {
	return func(o *options) {
		o.debugger = d
	}
}

// WithProfiler sets the profiler that counts successful operations.
func WithProfiler(p Profiler) Option {
	return func(o *options) {
		o.profiler = p
	}
}

// RenderSystem is a validating render.System that forwards every call to a
// wrapped render.System.
//
// RenderSystem is not safe for concurrent use, matching the single-writer
// contract of render.System.
type RenderSystem struct {
	instance render.System
	sink     sink

	id   render.RendererID
	info render.RendererInfo
	caps render.RenderingCaps

	queue *CommandQueue

	contexts          table[renderContextEntry]
	commandBuffers    table[commandBufferEntry]
	buffers           table[bufferEntry]
	bufferArrays      table[bufferArrayEntry]
	textures          table[textureEntry]
	textureArrays     table[textureArrayEntry]
	samplers          table[samplerEntry]
	samplerArrays     table[samplerArrayEntry]
	resourceHeaps     table[resourceHeapEntry]
	renderTargets     table[renderTargetEntry]
	shaders           table[shaderEntry]
	shaderPrograms    table[shaderProgramEntry]
	pipelineLayouts   table[pipelineLayoutEntry]
	graphicsPipelines table[graphicsPipelineEntry]
	computePipelines  table[computePipelineEntry]
	queries           table[queryEntry]
	fences            table[fenceEntry]
}

var _ render.System = (*RenderSystem)(nil)

// New wraps instance in a debug render system. The capability snapshot is
// taken immediately and refreshed after every CreateRenderContext.
func New(instance render.System, opts ...Option) *RenderSystem {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	r := &RenderSystem{
		instance: instance,
		sink:     sink{debugger: o.debugger, profiler: o.profiler},
	}
	r.queue = &CommandQueue{owner: r, native: instance.CommandQueue()}
	r.updateCaps()
	slogger().Debug("render system wrapped",
		"renderer", r.id.String(),
		"validation", r.sink.validating())
	return r
}

func (r *RenderSystem) updateCaps() {
	r.id = r.instance.RendererID()
	r.info = r.instance.RendererInfo()
	r.caps = r.instance.RenderingCaps()
}

// Instance returns the wrapped render system.
func (r *RenderSystem) Instance() render.System { return r.instance }

// Live returns the number of live handles of a resource type.
func (r *RenderSystem) Live(kind render.ResourceType) int {
	switch kind {
	case render.ResourceTypeRenderContext:
		return r.contexts.len()
	case render.ResourceTypeCommandBuffer:
		return r.commandBuffers.len()
	case render.ResourceTypeBuffer:
		return r.buffers.len()
	case render.ResourceTypeBufferArray:
		return r.bufferArrays.len()
	case render.ResourceTypeTexture:
		return r.textures.len()
	case render.ResourceTypeTextureArray:
		return r.textureArrays.len()
	case render.ResourceTypeSampler:
		return r.samplers.len()
	case render.ResourceTypeSamplerArray:
		return r.samplerArrays.len()
	case render.ResourceTypeResourceHeap:
		return r.resourceHeaps.len()
	case render.ResourceTypeRenderTarget:
		return r.renderTargets.len()
	case render.ResourceTypeShader:
		return r.shaders.len()
	case render.ResourceTypeShaderProgram:
		return r.shaderPrograms.len()
	case render.ResourceTypePipelineLayout:
		return r.pipelineLayouts.len()
	case render.ResourceTypeGraphicsPipeline:
		return r.graphicsPipelines.len()
	case render.ResourceTypeComputePipeline:
		return r.computePipelines.len()
	case render.ResourceTypeQuery:
		return r.queries.len()
	case render.ResourceTypeFence:
		return r.fences.len()
	default:
		return 0
	}
}

// RendererID implements render.System.
func (r *RenderSystem) RendererID() render.RendererID { return r.id }

// RendererInfo implements render.System.
func (r *RenderSystem) RendererInfo() render.RendererInfo { return r.info }

// RenderingCaps implements render.System. It returns the snapshot taken at
// creation or after the last CreateRenderContext.
func (r *RenderSystem) RenderingCaps() render.RenderingCaps { return r.caps }

// SetConfiguration implements render.System.
func (r *RenderSystem) SetConfiguration(cfg render.Configuration) {
	r.instance.SetConfiguration(cfg)
}

// CommandQueue implements render.System.
func (r *RenderSystem) CommandQueue() render.CommandQueue { return r.queue }

// === Handle translation ===

// invalid reports and returns the error for a handle that is nil or not a
// debug handle of the expected kind.
func (r *RenderSystem) invalid(op Op, kind render.ResourceType, null bool, v any) error {
	if null {
		r.sink.post(op, InvalidArgument, "null pointer passed to %s", kind)
		slogger().Warn("null handle", "op", op.String(), "kind", kind.String())
		return fmt.Errorf("%s: null %s: %w", op, kind, ErrInvalidHandle)
	}
	r.sink.post(op, InvalidArgument, "%s of type %T was not created by the debug layer", kind, v)
	slogger().Warn("foreign handle", "op", op.String(), "kind", kind.String(), "type", fmt.Sprintf("%T", v))
	return fmt.Errorf("%s: %s of type %T: %w", op, kind, v, ErrInvalidHandle)
}

// nilArgument reports and returns the error for a missing descriptor or argument.
func (r *RenderSystem) nilArgument(op Op, what string) error {
	r.sink.post(op, InvalidArgument, "%s must not be null", what)
	return fmt.Errorf("%s: %s: %w", op, what, ErrNilArgument)
}

// entryOf resolves a debug handle to its shadow entry.
func entryOf[E any](r *RenderSystem, op Op, kind render.ResourceType, t *table[E], rf *ref) (*E, error) {
	if rf.owner != r {
		r.sink.post(op, InvalidArgument, "%s was created by another render system", kind)
		return nil, fmt.Errorf("%s: %s from another render system: %w", op, kind, ErrInvalidHandle)
	}
	e, ok := t.get(rf.h)
	if !ok {
		r.sink.post(op, InvalidArgument, "use of released %s", kind)
		slogger().Warn("released handle", "op", op.String(), "kind", kind.String())
		return nil, fmt.Errorf("%s: %s: %w", op, kind, ErrReleased)
	}
	return e, nil
}

func (r *RenderSystem) buffer(op Op, v render.Buffer) (*Buffer, *bufferEntry, error) {
	d, ok := v.(*Buffer)
	if !ok || d == nil {
		return nil, nil, r.invalid(op, render.ResourceTypeBuffer, v == nil || ok, v)
	}
	e, err := entryOf(r, op, render.ResourceTypeBuffer, &r.buffers, &d.ref)
	return d, e, err
}

func (r *RenderSystem) bufferArray(op Op, v render.BufferArray) (*BufferArray, *bufferArrayEntry, error) {
	d, ok := v.(*BufferArray)
	if !ok || d == nil {
		return nil, nil, r.invalid(op, render.ResourceTypeBufferArray, v == nil || ok, v)
	}
	e, err := entryOf(r, op, render.ResourceTypeBufferArray, &r.bufferArrays, &d.ref)
	return d, e, err
}

func (r *RenderSystem) texture(op Op, v render.Texture) (*Texture, *textureEntry, error) {
	d, ok := v.(*Texture)
	if !ok || d == nil {
		return nil, nil, r.invalid(op, render.ResourceTypeTexture, v == nil || ok, v)
	}
	e, err := entryOf(r, op, render.ResourceTypeTexture, &r.textures, &d.ref)
	return d, e, err
}

func (r *RenderSystem) textureArray(op Op, v render.TextureArray) (*TextureArray, *textureArrayEntry, error) {
	d, ok := v.(*TextureArray)
	if !ok || d == nil {
		return nil, nil, r.invalid(op, render.ResourceTypeTextureArray, v == nil || ok, v)
	}
	e, err := entryOf(r, op, render.ResourceTypeTextureArray, &r.textureArrays, &d.ref)
	return d, e, err
}

func (r *RenderSystem) sampler(op Op, v render.Sampler) (*Sampler, *samplerEntry, error) {
	d, ok := v.(*Sampler)
	if !ok || d == nil {
		return nil, nil, r.invalid(op, render.ResourceTypeSampler, v == nil || ok, v)
	}
	e, err := entryOf(r, op, render.ResourceTypeSampler, &r.samplers, &d.ref)
	return d, e, err
}

func (r *RenderSystem) samplerArray(op Op, v render.SamplerArray) (*SamplerArray, *samplerArrayEntry, error) {
	d, ok := v.(*SamplerArray)
	if !ok || d == nil {
		return nil, nil, r.invalid(op, render.ResourceTypeSamplerArray, v == nil || ok, v)
	}
	e, err := entryOf(r, op, render.ResourceTypeSamplerArray, &r.samplerArrays, &d.ref)
	return d, e, err
}

func (r *RenderSystem) resourceHeap(op Op, v render.ResourceHeap) (*ResourceHeap, *resourceHeapEntry, error) {
	d, ok := v.(*ResourceHeap)
	if !ok || d == nil {
		return nil, nil, r.invalid(op, render.ResourceTypeResourceHeap, v == nil || ok, v)
	}
	e, err := entryOf(r, op, render.ResourceTypeResourceHeap, &r.resourceHeaps, &d.ref)
	return d, e, err
}

func (r *RenderSystem) renderTarget(op Op, v render.RenderTarget) (*RenderTarget, *renderTargetEntry, error) {
	d, ok := v.(*RenderTarget)
	if !ok || d == nil {
		return nil, nil, r.invalid(op, render.ResourceTypeRenderTarget, v == nil || ok, v)
	}
	e, err := entryOf(r, op, render.ResourceTypeRenderTarget, &r.renderTargets, &d.ref)
	return d, e, err
}

func (r *RenderSystem) renderContext(op Op, v render.RenderContext) (*RenderContext, *renderContextEntry, error) {
	d, ok := v.(*RenderContext)
	if !ok || d == nil {
		return nil, nil, r.invalid(op, render.ResourceTypeRenderContext, v == nil || ok, v)
	}
	e, err := entryOf(r, op, render.ResourceTypeRenderContext, &r.contexts, &d.ref)
	return d, e, err
}

func (r *RenderSystem) shader(op Op, v render.Shader) (*Shader, *shaderEntry, error) {
	d, ok := v.(*Shader)
	if !ok || d == nil {
		return nil, nil, r.invalid(op, render.ResourceTypeShader, v == nil || ok, v)
	}
	e, err := entryOf(r, op, render.ResourceTypeShader, &r.shaders, &d.ref)
	return d, e, err
}

func (r *RenderSystem) shaderProgram(op Op, v render.ShaderProgram) (*ShaderProgram, *shaderProgramEntry, error) {
	d, ok := v.(*ShaderProgram)
	if !ok || d == nil {
		return nil, nil, r.invalid(op, render.ResourceTypeShaderProgram, v == nil || ok, v)
	}
	e, err := entryOf(r, op, render.ResourceTypeShaderProgram, &r.shaderPrograms, &d.ref)
	return d, e, err
}

func (r *RenderSystem) pipelineLayout(op Op, v render.PipelineLayout) (*PipelineLayout, *pipelineLayoutEntry, error) {
	d, ok := v.(*PipelineLayout)
	if !ok || d == nil {
		return nil, nil, r.invalid(op, render.ResourceTypePipelineLayout, v == nil || ok, v)
	}
	e, err := entryOf(r, op, render.ResourceTypePipelineLayout, &r.pipelineLayouts, &d.ref)
	return d, e, err
}

func (r *RenderSystem) graphicsPipeline(op Op, v render.GraphicsPipeline) (*GraphicsPipeline, *graphicsPipelineEntry, error) {
	d, ok := v.(*GraphicsPipeline)
	if !ok || d == nil {
		return nil, nil, r.invalid(op, render.ResourceTypeGraphicsPipeline, v == nil || ok, v)
	}
	e, err := entryOf(r, op, render.ResourceTypeGraphicsPipeline, &r.graphicsPipelines, &d.ref)
	return d, e, err
}

func (r *RenderSystem) computePipeline(op Op, v render.ComputePipeline) (*ComputePipeline, *computePipelineEntry, error) {
	d, ok := v.(*ComputePipeline)
	if !ok || d == nil {
		return nil, nil, r.invalid(op, render.ResourceTypeComputePipeline, v == nil || ok, v)
	}
	e, err := entryOf(r, op, render.ResourceTypeComputePipeline, &r.computePipelines, &d.ref)
	return d, e, err
}

func (r *RenderSystem) query(op Op, v render.Query) (*Query, *queryEntry, error) {
	d, ok := v.(*Query)
	if !ok || d == nil {
		return nil, nil, r.invalid(op, render.ResourceTypeQuery, v == nil || ok, v)
	}
	e, err := entryOf(r, op, render.ResourceTypeQuery, &r.queries, &d.ref)
	return d, e, err
}

func (r *RenderSystem) fence(op Op, v render.Fence) (*Fence, *fenceEntry, error) {
	d, ok := v.(*Fence)
	if !ok || d == nil {
		return nil, nil, r.invalid(op, render.ResourceTypeFence, v == nil || ok, v)
	}
	e, err := entryOf(r, op, render.ResourceTypeFence, &r.fences, &d.ref)
	return d, e, err
}

func (r *RenderSystem) commandBuffer(op Op, v render.CommandBuffer) (*CommandBuffer, *commandBufferEntry, error) {
	d, ok := v.(*CommandBuffer)
	if !ok || d == nil {
		return nil, nil, r.invalid(op, render.ResourceTypeCommandBuffer, v == nil || ok, v)
	}
	e, err := entryOf(r, op, render.ResourceTypeCommandBuffer, &r.commandBuffers, &d.ref)
	return d, e, err
}
