// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

// System creates and releases GPU resources and moves data between CPU and GPU.
//
// A System is not safe for concurrent use. Handles returned by a System may
// only be passed back to the same System, and only until they are released.
type System interface {
	// RendererID identifies the native API.
	RendererID() RendererID

	// RendererInfo describes the renderer and device.
	RendererInfo() RendererInfo

	// RenderingCaps returns the capability snapshot.
	RenderingCaps() RenderingCaps

	// SetConfiguration updates runtime settings.
	SetConfiguration(cfg Configuration)

	CreateRenderContext(desc *RenderContextDescriptor) (RenderContext, error)
	ReleaseRenderContext(ctx RenderContext) error

	// CommandQueue returns the single command queue of the system.
	CommandQueue() CommandQueue

	CreateCommandBuffer() (CommandBuffer, error)
	ReleaseCommandBuffer(cb CommandBuffer) error

	// CreateBuffer creates a buffer. initialData may be nil; otherwise it is
	// copied into the start of the buffer.
	CreateBuffer(desc *BufferDescriptor, initialData []byte) (Buffer, error)
	CreateBufferArray(buffers []Buffer) (BufferArray, error)
	ReleaseBuffer(buf Buffer) error
	ReleaseBufferArray(arr BufferArray) error

	// WriteBuffer copies data into the buffer at offset.
	WriteBuffer(buf Buffer, data []byte, offset uint64) error

	// MapBuffer maps the whole buffer into CPU memory. The returned slice is
	// valid until UnmapBuffer.
	MapBuffer(buf Buffer, access CPUAccess) ([]byte, error)
	UnmapBuffer(buf Buffer) error

	// CreateTexture creates a texture. image may be nil; otherwise it
	// initializes MIP level 0.
	CreateTexture(desc *TextureDescriptor, image *SrcImageDescriptor) (Texture, error)
	CreateTextureArray(textures []Texture) (TextureArray, error)
	ReleaseTexture(tex Texture) error
	ReleaseTextureArray(arr TextureArray) error

	// WriteTexture uploads image data into a region of the texture.
	WriteTexture(tex Texture, region *TextureRegion, image *SrcImageDescriptor) error

	// ReadTexture reads a whole MIP level back into image.Data.
	ReadTexture(tex Texture, mipLevel uint32, image *DstImageDescriptor) error

	// GenerateMips regenerates every MIP level from level 0.
	GenerateMips(tex Texture) error

	// GenerateMipRange regenerates MIP levels [baseMipLevel+1, baseMipLevel+numMipLevels)
	// of the array layers [baseArrayLayer, baseArrayLayer+numArrayLayers).
	GenerateMipRange(tex Texture, baseMipLevel, numMipLevels, baseArrayLayer, numArrayLayers uint32) error

	CreateSampler(desc *SamplerDescriptor) (Sampler, error)
	CreateSamplerArray(samplers []Sampler) (SamplerArray, error)
	ReleaseSampler(s Sampler) error
	ReleaseSamplerArray(arr SamplerArray) error

	CreateResourceHeap(desc *ResourceHeapDescriptor) (ResourceHeap, error)
	ReleaseResourceHeap(heap ResourceHeap) error

	CreateRenderTarget(desc *RenderTargetDescriptor) (RenderTarget, error)
	ReleaseRenderTarget(rt RenderTarget) error

	CreateShader(desc *ShaderDescriptor) (Shader, error)
	CreateShaderProgram(desc *ShaderProgramDescriptor) (ShaderProgram, error)
	ReleaseShader(s Shader) error
	ReleaseShaderProgram(p ShaderProgram) error

	CreatePipelineLayout(desc *PipelineLayoutDescriptor) (PipelineLayout, error)
	ReleasePipelineLayout(layout PipelineLayout) error

	CreateGraphicsPipeline(desc *GraphicsPipelineDescriptor) (GraphicsPipeline, error)
	CreateComputePipeline(desc *ComputePipelineDescriptor) (ComputePipeline, error)
	ReleaseGraphicsPipeline(p GraphicsPipeline) error
	ReleaseComputePipeline(p ComputePipeline) error

	CreateQuery(desc *QueryDescriptor) (Query, error)
	ReleaseQuery(q Query) error

	CreateFence() (Fence, error)
	ReleaseFence(f Fence) error
}
