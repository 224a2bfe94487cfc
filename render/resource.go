// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import "fmt"

// ResourceType tags the kind of object behind a handle.
type ResourceType uint8

const (
	// ResourceTypeUndefined is the zero value.
	ResourceTypeUndefined ResourceType = iota
	ResourceTypeBuffer
	ResourceTypeBufferArray
	ResourceTypeTexture
	ResourceTypeTextureArray
	ResourceTypeSampler
	ResourceTypeSamplerArray
	ResourceTypeResourceHeap
	ResourceTypeRenderTarget
	ResourceTypeRenderContext
	ResourceTypeShader
	ResourceTypeShaderProgram
	ResourceTypePipelineLayout
	ResourceTypeGraphicsPipeline
	ResourceTypeComputePipeline
	ResourceTypeQuery
	ResourceTypeFence
	ResourceTypeCommandBuffer
)

var resourceTypeNames = [...]string{
	ResourceTypeUndefined:        "undefined",
	ResourceTypeBuffer:           "buffer",
	ResourceTypeBufferArray:      "buffer array",
	ResourceTypeTexture:          "texture",
	ResourceTypeTextureArray:     "texture array",
	ResourceTypeSampler:          "sampler",
	ResourceTypeSamplerArray:     "sampler array",
	ResourceTypeResourceHeap:     "resource heap",
	ResourceTypeRenderTarget:     "render target",
	ResourceTypeRenderContext:    "render context",
	ResourceTypeShader:           "shader",
	ResourceTypeShaderProgram:    "shader program",
	ResourceTypePipelineLayout:   "pipeline layout",
	ResourceTypeGraphicsPipeline: "graphics pipeline",
	ResourceTypeComputePipeline:  "compute pipeline",
	ResourceTypeQuery:            "query",
	ResourceTypeFence:            "fence",
	ResourceTypeCommandBuffer:    "command buffer",
}

// String returns the lower-case resource name used in diagnostics.
func (t ResourceType) String() string {
	if int(t) < len(resourceTypeNames) {
		return resourceTypeNames[t]
	}
	return fmt.Sprintf("ResourceType(%d)", t)
}

// Resource is implemented by every handle a System returns.
type Resource interface {
	// ResourceType returns the kind of the handle.
	ResourceType() ResourceType
}

// Buffer is a GPU buffer.
type Buffer interface {
	Resource

	// BufferType returns the type the buffer was created with.
	BufferType() BufferType
}

// BufferArray groups buffers of one type for a single binding call.
type BufferArray interface {
	Resource

	// BufferType returns the common type of the contained buffers.
	BufferType() BufferType
}

// Texture is a GPU texture.
type Texture interface {
	Resource

	// TextureType returns the type the texture was created with.
	TextureType() TextureType
}

// TextureArray groups textures for a single binding call.
type TextureArray interface {
	Resource
}

// Sampler is a texture sampler state object.
type Sampler interface {
	Resource
}

// SamplerArray groups samplers for a single binding call.
type SamplerArray interface {
	Resource
}

// ResourceHeap binds a set of resources against a pipeline layout.
type ResourceHeap interface {
	Resource
}

// RenderTarget is a destination for render passes.
type RenderTarget interface {
	Resource
}

// RenderContext is the default render target of a device, usually backed
// by a swap chain or an offscreen color texture.
type RenderContext interface {
	RenderTarget
}

// Shader is a single compiled shader stage.
type Shader interface {
	Resource

	// ShaderType returns the stage of the shader.
	ShaderType() ShaderType
}

// ShaderProgram links shader stages for a pipeline.
type ShaderProgram interface {
	Resource
}

// PipelineLayout describes the resource bindings of a pipeline.
type PipelineLayout interface {
	Resource
}

// GraphicsPipeline is a complete graphics pipeline state object.
type GraphicsPipeline interface {
	Resource
}

// ComputePipeline is a compute pipeline state object.
type ComputePipeline interface {
	Resource
}

// Query is a GPU query object.
type Query interface {
	Resource

	// QueryType returns the type the query was created with.
	QueryType() QueryType
}

// Fence is a CPU/GPU synchronization object.
type Fence interface {
	Resource
}
