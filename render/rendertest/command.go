// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rendertest

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/gfx/render"
)

// CommandBuffer is a rendertest command buffer. It records every command
// and keeps the first foreign handle error in Err.
type CommandBuffer struct {
	resource

	// Commands are the recorded commands in order.
	Commands []Call

	// Err is set when a command received a handle the System did not create.
	Err error
}

func (cb *CommandBuffer) cmd(name string, args ...any) {
	cb.Commands = append(cb.Commands, Call{Method: name, Args: args})
}

func (cb *CommandBuffer) check(want render.ResourceType, ok bool, got any) {
	if !ok && cb.Err == nil {
		cb.Err = foreign(want, got)
	}
}

// Count returns how often a command was recorded.
func (cb *CommandBuffer) Count(name string) int {
	n := 0
	for _, c := range cb.Commands {
		if c.Method == name {
			n++
		}
	}
	return n
}

// Begin implements render.CommandBuffer.
func (cb *CommandBuffer) Begin() { cb.cmd("Begin") }

// End implements render.CommandBuffer.
func (cb *CommandBuffer) End() { cb.cmd("End") }

// SetViewport implements render.CommandBuffer.
func (cb *CommandBuffer) SetViewport(v render.Viewport) { cb.cmd("SetViewport", v) }

// SetScissor implements render.CommandBuffer.
func (cb *CommandBuffer) SetScissor(s render.Scissor) { cb.cmd("SetScissor", s) }

// SetClearColor implements render.CommandBuffer.
func (cb *CommandBuffer) SetClearColor(c gputypes.Color) { cb.cmd("SetClearColor", c) }

// SetVertexBuffer implements render.CommandBuffer.
func (cb *CommandBuffer) SetVertexBuffer(buf render.Buffer) {
	_, ok := buf.(*Buffer)
	cb.check(render.ResourceTypeBuffer, ok, buf)
	cb.cmd("SetVertexBuffer", buf)
}

// SetVertexBufferArray implements render.CommandBuffer.
func (cb *CommandBuffer) SetVertexBufferArray(arr render.BufferArray) {
	_, ok := arr.(*BufferArray)
	cb.check(render.ResourceTypeBufferArray, ok, arr)
	cb.cmd("SetVertexBufferArray", arr)
}

// SetIndexBuffer implements render.CommandBuffer.
func (cb *CommandBuffer) SetIndexBuffer(buf render.Buffer) {
	_, ok := buf.(*Buffer)
	cb.check(render.ResourceTypeBuffer, ok, buf)
	cb.cmd("SetIndexBuffer", buf)
}

// SetResourceHeap implements render.CommandBuffer.
func (cb *CommandBuffer) SetResourceHeap(heap render.ResourceHeap) {
	_, ok := heap.(*ResourceHeap)
	cb.check(render.ResourceTypeResourceHeap, ok, heap)
	cb.cmd("SetResourceHeap", heap)
}

// BeginRenderPass implements render.CommandBuffer.
func (cb *CommandBuffer) BeginRenderPass(target render.RenderTarget) {
	switch target.(type) {
	case *RenderTarget, *RenderContext:
	default:
		cb.check(render.ResourceTypeRenderTarget, false, target)
	}
	cb.cmd("BeginRenderPass", target)
}

// EndRenderPass implements render.CommandBuffer.
func (cb *CommandBuffer) EndRenderPass() { cb.cmd("EndRenderPass") }

// SetGraphicsPipeline implements render.CommandBuffer.
func (cb *CommandBuffer) SetGraphicsPipeline(p render.GraphicsPipeline) {
	_, ok := p.(*GraphicsPipeline)
	cb.check(render.ResourceTypeGraphicsPipeline, ok, p)
	cb.cmd("SetGraphicsPipeline", p)
}

// SetComputePipeline implements render.CommandBuffer.
func (cb *CommandBuffer) SetComputePipeline(p render.ComputePipeline) {
	_, ok := p.(*ComputePipeline)
	cb.check(render.ResourceTypeComputePipeline, ok, p)
	cb.cmd("SetComputePipeline", p)
}

// BeginQuery implements render.CommandBuffer.
func (cb *CommandBuffer) BeginQuery(q render.Query) {
	_, ok := q.(*Query)
	cb.check(render.ResourceTypeQuery, ok, q)
	cb.cmd("BeginQuery", q)
}

// EndQuery implements render.CommandBuffer.
func (cb *CommandBuffer) EndQuery(q render.Query) {
	_, ok := q.(*Query)
	cb.check(render.ResourceTypeQuery, ok, q)
	cb.cmd("EndQuery", q)
}

// Draw implements render.CommandBuffer.
func (cb *CommandBuffer) Draw(numVertices, firstVertex uint32) {
	cb.cmd("Draw", numVertices, firstVertex)
}

// DrawIndexed implements render.CommandBuffer.
func (cb *CommandBuffer) DrawIndexed(numIndices, firstIndex uint32) {
	cb.cmd("DrawIndexed", numIndices, firstIndex)
}

// DrawInstanced implements render.CommandBuffer.
func (cb *CommandBuffer) DrawInstanced(numVertices, firstVertex, numInstances uint32) {
	cb.cmd("DrawInstanced", numVertices, firstVertex, numInstances)
}

// DrawIndexedInstanced implements render.CommandBuffer.
func (cb *CommandBuffer) DrawIndexedInstanced(numIndices, numInstances, firstIndex uint32) {
	cb.cmd("DrawIndexedInstanced", numIndices, numInstances, firstIndex)
}

// Dispatch implements render.CommandBuffer.
func (cb *CommandBuffer) Dispatch(groupsX, groupsY, groupsZ uint32) {
	cb.cmd("Dispatch", groupsX, groupsY, groupsZ)
}
