// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"time"

	"github.com/gogpu/gputypes"
)

// Viewport is the viewport transform of a render pass.
type Viewport struct {
	X, Y, Width, Height float32
	MinDepth, MaxDepth  float32
}

// Scissor is the scissor rectangle of a render pass.
type Scissor struct {
	X, Y          uint32
	Width, Height uint32
}

// CommandBuffer records GPU commands.
//
// Recording methods have no error result. Implementations that fail while
// recording report the failure when the buffer is submitted.
type CommandBuffer interface {
	Resource

	// Begin starts recording. End finishes recording.
	Begin()
	End()

	SetViewport(v Viewport)
	SetScissor(s Scissor)

	// SetClearColor sets the color render passes clear their color
	// attachments to.
	SetClearColor(c gputypes.Color)

	SetVertexBuffer(buf Buffer)
	SetVertexBufferArray(arr BufferArray)
	SetIndexBuffer(buf Buffer)
	SetResourceHeap(heap ResourceHeap)

	// BeginRenderPass starts a render pass on a render target or render context.
	BeginRenderPass(target RenderTarget)
	EndRenderPass()

	SetGraphicsPipeline(p GraphicsPipeline)
	SetComputePipeline(p ComputePipeline)

	BeginQuery(q Query)
	EndQuery(q Query)

	Draw(numVertices, firstVertex uint32)
	DrawIndexed(numIndices, firstIndex uint32)
	DrawInstanced(numVertices, firstVertex, numInstances uint32)
	DrawIndexedInstanced(numIndices, numInstances, firstIndex uint32)

	Dispatch(groupsX, groupsY, groupsZ uint32)
}

// CommandQueue submits command buffers and synchronizes with the GPU.
type CommandQueue interface {
	// Submit submits a recorded command buffer.
	Submit(cb CommandBuffer) error

	// SubmitFence signals the fence when all previously submitted work completes.
	SubmitFence(f Fence) error

	// WaitFence blocks until the fence is signaled or the timeout elapses.
	// It reports whether the fence was signaled.
	WaitFence(f Fence, timeout time.Duration) (bool, error)

	// WaitIdle blocks until the GPU is idle.
	WaitIdle() error
}
