// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package debug

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/gfx/render"
)

// CommandBuffer is the debug handle of a command buffer.
//
// Recording methods have no error result. A command whose handle arguments
// cannot be translated is reported and not forwarded.
type CommandBuffer struct{ ref }

// ResourceType implements render.Resource.
func (*CommandBuffer) ResourceType() render.ResourceType { return render.ResourceTypeCommandBuffer }

// commandBufferEntry is the recording state of a command buffer. Bound
// objects are kept as handles and resolved on use, so a binding that was
// released in the meantime is detected.
type commandBufferEntry struct {
	native render.CommandBuffer

	recording    bool
	recorded     bool
	inRenderPass bool

	graphicsPipeline *GraphicsPipeline
	computePipeline  *ComputePipeline
	vertexBuffer     *Buffer
	vertexArray      *BufferArray
	indexBuffer      *Buffer
}

// CreateCommandBuffer implements render.System.
func (r *RenderSystem) CreateCommandBuffer() (render.CommandBuffer, error) {
	const op = OpCreateCommandBuffer
	native, err := r.instance.CreateCommandBuffer()
	if err != nil {
		return nil, err
	}
	h := r.commandBuffers.insert(commandBufferEntry{native: native})
	r.sink.count(op)
	return &CommandBuffer{ref: ref{owner: r, h: h}}, nil
}

// ReleaseCommandBuffer implements render.System.
func (r *RenderSystem) ReleaseCommandBuffer(cb render.CommandBuffer) error {
	const op = OpReleaseCommandBuffer
	d, e, err := r.commandBuffer(op, cb)
	if err != nil {
		return err
	}
	if r.sink.validating() && e.recording {
		r.sink.post(op, ImproperState, "releasing command buffer that is still recording")
	}
	if err := r.instance.ReleaseCommandBuffer(e.native); err != nil {
		return err
	}
	r.commandBuffers.remove(d.h)
	r.sink.count(op)
	return nil
}

// state returns the shadow entry, or nil after reporting a released buffer.
func (c *CommandBuffer) state(op Op) *commandBufferEntry {
	e, err := entryOf(c.owner, op, render.ResourceTypeCommandBuffer, &c.owner.commandBuffers, &c.ref)
	if err != nil {
		return nil
	}
	return e
}

func (c *CommandBuffer) requireRecording(op Op, e *commandBufferEntry) {
	if !e.recording {
		c.owner.sink.post(op, InvalidState, "command must be recorded between Begin and End")
	}
}

// Begin implements render.CommandBuffer.
func (c *CommandBuffer) Begin() {
	const op = OpBegin
	r := c.owner
	e := c.state(op)
	if e == nil {
		return
	}
	if r.sink.validating() && e.recording {
		r.sink.post(op, InvalidState, "command buffer is already recording")
	}
	e.native.Begin()
	*e = commandBufferEntry{native: e.native, recording: true}
	r.sink.count(op)
}

// End implements render.CommandBuffer.
func (c *CommandBuffer) End() {
	const op = OpEnd
	r := c.owner
	e := c.state(op)
	if e == nil {
		return
	}
	if r.sink.validating() {
		if !e.recording {
			r.sink.post(op, InvalidState, "cannot end command buffer that is not recording")
		}
		if e.inRenderPass {
			r.sink.post(op, InvalidState, "render pass must be ended before the command buffer is ended")
		}
	}
	e.native.End()
	e.recording, e.inRenderPass = false, false
	e.recorded = true
	r.sink.count(op)
}

// SetViewport implements render.CommandBuffer.
func (c *CommandBuffer) SetViewport(v render.Viewport) {
	const op = OpSetViewport
	r := c.owner
	e := c.state(op)
	if e == nil {
		return
	}
	if r.sink.validating() {
		c.requireRecording(op, e)
		if v.Width <= 0 || v.Height <= 0 {
			r.sink.post(op, InvalidArgument, "viewport size must be greater than zero (%gx%g specified)", v.Width, v.Height)
		}
		if v.MinDepth < 0 || v.MaxDepth > 1 || v.MinDepth > v.MaxDepth {
			r.sink.post(op, InvalidArgument, "viewport depth range [%g, %g] out of bounds", v.MinDepth, v.MaxDepth)
		}
	}
	e.native.SetViewport(v)
	r.sink.count(op)
}

// SetScissor implements render.CommandBuffer.
func (c *CommandBuffer) SetScissor(s render.Scissor) {
	const op = OpSetScissor
	r := c.owner
	e := c.state(op)
	if e == nil {
		return
	}
	if r.sink.validating() {
		c.requireRecording(op, e)
		if s.Width == 0 || s.Height == 0 {
			r.sink.post(op, PointlessOperation, "scissor rectangle is empty")
		}
	}
	e.native.SetScissor(s)
	r.sink.count(op)
}

// SetClearColor implements render.CommandBuffer.
func (c *CommandBuffer) SetClearColor(color gputypes.Color) {
	const op = OpSetClearColor
	r := c.owner
	e := c.state(op)
	if e == nil {
		return
	}
	if r.sink.validating() {
		c.requireRecording(op, e)
	}
	e.native.SetClearColor(color)
	r.sink.count(op)
}

// SetVertexBuffer implements render.CommandBuffer.
func (c *CommandBuffer) SetVertexBuffer(buf render.Buffer) {
	const op = OpSetVertexBuffer
	r := c.owner
	e := c.state(op)
	if e == nil {
		return
	}
	d, be, err := r.buffer(op, buf)
	if err != nil {
		return
	}
	if r.sink.validating() {
		c.requireRecording(op, e)
		if be.desc.Type != render.BufferTypeVertex {
			r.sink.post(op, InvalidArgument, "cannot bind %s buffer as vertex buffer", be.desc.Type)
		}
		if !be.initialized {
			r.sink.post(op, ImproperState, "vertex buffer bound before it was initialized")
		}
	}
	e.native.SetVertexBuffer(be.native)
	e.vertexBuffer, e.vertexArray = d, nil
	r.sink.count(op)
}

// SetVertexBufferArray implements render.CommandBuffer.
func (c *CommandBuffer) SetVertexBufferArray(arr render.BufferArray) {
	const op = OpSetVertexBufferArray
	r := c.owner
	e := c.state(op)
	if e == nil {
		return
	}
	d, ae, err := r.bufferArray(op, arr)
	if err != nil {
		return
	}
	if r.sink.validating() {
		c.requireRecording(op, e)
		if d.typ != render.BufferTypeVertex {
			r.sink.post(op, InvalidArgument, "cannot bind %s buffer array as vertex buffers", d.typ)
		}
		for i, b := range ae.buffers {
			be, ok := r.buffers.get(b.h)
			switch {
			case !ok:
				r.sink.post(op, InvalidState, "vertex buffer %d of buffer array was released", i)
			case !be.initialized:
				r.sink.post(op, ImproperState, "vertex buffer %d of buffer array bound before it was initialized", i)
			}
		}
	}
	e.native.SetVertexBufferArray(ae.native)
	e.vertexBuffer, e.vertexArray = nil, d
	r.sink.count(op)
}

// SetIndexBuffer implements render.CommandBuffer.
func (c *CommandBuffer) SetIndexBuffer(buf render.Buffer) {
	const op = OpSetIndexBuffer
	r := c.owner
	e := c.state(op)
	if e == nil {
		return
	}
	d, be, err := r.buffer(op, buf)
	if err != nil {
		return
	}
	if r.sink.validating() {
		c.requireRecording(op, e)
		if be.desc.Type != render.BufferTypeIndex {
			r.sink.post(op, InvalidArgument, "cannot bind %s buffer as index buffer", be.desc.Type)
		}
		if !be.initialized {
			r.sink.post(op, ImproperState, "index buffer bound before it was initialized")
		}
	}
	e.native.SetIndexBuffer(be.native)
	e.indexBuffer = d
	r.sink.count(op)
}

// SetResourceHeap implements render.CommandBuffer.
func (c *CommandBuffer) SetResourceHeap(heap render.ResourceHeap) {
	const op = OpSetResourceHeap
	r := c.owner
	e := c.state(op)
	if e == nil {
		return
	}
	_, he, err := r.resourceHeap(op, heap)
	if err != nil {
		return
	}
	if r.sink.validating() {
		c.requireRecording(op, e)
	}
	e.native.SetResourceHeap(he.native)
	r.sink.count(op)
}

// BeginRenderPass implements render.CommandBuffer. The target may be a
// render target or a render context.
func (c *CommandBuffer) BeginRenderPass(target render.RenderTarget) {
	const op = OpBeginRenderPass
	r := c.owner
	e := c.state(op)
	if e == nil {
		return
	}
	t, err := r.anyTarget(op, target)
	if err != nil {
		return
	}
	if r.sink.validating() {
		c.requireRecording(op, e)
		if e.inRenderPass {
			r.sink.post(op, InvalidState, "render pass already begun (nested render passes are not allowed)")
		}
	}
	e.native.BeginRenderPass(t.native)
	e.inRenderPass = true
	r.sink.count(op)
}

// EndRenderPass implements render.CommandBuffer.
func (c *CommandBuffer) EndRenderPass() {
	const op = OpEndRenderPass
	r := c.owner
	e := c.state(op)
	if e == nil {
		return
	}
	if r.sink.validating() {
		c.requireRecording(op, e)
		if !e.inRenderPass {
			r.sink.post(op, InvalidState, "cannot end render pass that was not begun")
		}
	}
	e.native.EndRenderPass()
	e.inRenderPass = false
	r.sink.count(op)
}

// SetGraphicsPipeline implements render.CommandBuffer.
func (c *CommandBuffer) SetGraphicsPipeline(p render.GraphicsPipeline) {
	const op = OpSetGraphicsPipeline
	r := c.owner
	e := c.state(op)
	if e == nil {
		return
	}
	d, pe, err := r.graphicsPipeline(op, p)
	if err != nil {
		return
	}
	if r.sink.validating() {
		c.requireRecording(op, e)
	}
	e.native.SetGraphicsPipeline(pe.native)
	e.graphicsPipeline = d
	r.sink.count(op)
}

// SetComputePipeline implements render.CommandBuffer.
func (c *CommandBuffer) SetComputePipeline(p render.ComputePipeline) {
	const op = OpSetComputePipeline
	r := c.owner
	e := c.state(op)
	if e == nil {
		return
	}
	d, pe, err := r.computePipeline(op, p)
	if err != nil {
		return
	}
	if r.sink.validating() {
		c.requireRecording(op, e)
	}
	e.native.SetComputePipeline(pe.native)
	e.computePipeline = d
	r.sink.count(op)
}

// BeginQuery implements render.CommandBuffer.
func (c *CommandBuffer) BeginQuery(q render.Query) {
	const op = OpBeginQuery
	r := c.owner
	e := c.state(op)
	if e == nil {
		return
	}
	d, qe, err := r.query(op, q)
	if err != nil {
		return
	}
	if r.sink.validating() {
		c.requireRecording(op, e)
		if qe.active {
			r.sink.post(op, InvalidState, "cannot begin %s query that is already active", d.typ)
		}
	}
	e.native.BeginQuery(qe.native)
	qe.active = true
	r.sink.count(op)
}

// EndQuery implements render.CommandBuffer.
func (c *CommandBuffer) EndQuery(q render.Query) {
	const op = OpEndQuery
	r := c.owner
	e := c.state(op)
	if e == nil {
		return
	}
	d, qe, err := r.query(op, q)
	if err != nil {
		return
	}
	if r.sink.validating() {
		c.requireRecording(op, e)
		if !qe.active {
			r.sink.post(op, InvalidState, "cannot end %s query that was not begun", d.typ)
		}
	}
	e.native.EndQuery(qe.native)
	qe.active = false
	r.sink.count(op)
}

// Draw implements render.CommandBuffer.
func (c *CommandBuffer) Draw(numVertices, firstVertex uint32) {
	const op = OpDraw
	r := c.owner
	e := c.state(op)
	if e == nil {
		return
	}
	if r.sink.validating() {
		c.validateDraw(op, e, false)
		c.validateVertexRange(op, e, firstVertex, numVertices)
	}
	e.native.Draw(numVertices, firstVertex)
	r.sink.count(op)
}

// DrawIndexed implements render.CommandBuffer.
func (c *CommandBuffer) DrawIndexed(numIndices, firstIndex uint32) {
	const op = OpDrawIndexed
	r := c.owner
	e := c.state(op)
	if e == nil {
		return
	}
	if r.sink.validating() {
		c.validateDraw(op, e, true)
		c.validateIndexRange(op, e, firstIndex, numIndices)
	}
	e.native.DrawIndexed(numIndices, firstIndex)
	r.sink.count(op)
}

// DrawInstanced implements render.CommandBuffer.
func (c *CommandBuffer) DrawInstanced(numVertices, firstVertex, numInstances uint32) {
	const op = OpDrawInstanced
	r := c.owner
	e := c.state(op)
	if e == nil {
		return
	}
	if r.sink.validating() {
		c.validateDraw(op, e, false)
		c.validateVertexRange(op, e, firstVertex, numVertices)
		c.validateInstancing(op, numInstances)
	}
	e.native.DrawInstanced(numVertices, firstVertex, numInstances)
	r.sink.count(op)
}

// DrawIndexedInstanced implements render.CommandBuffer.
func (c *CommandBuffer) DrawIndexedInstanced(numIndices, numInstances, firstIndex uint32) {
	const op = OpDrawIndexedInstanced
	r := c.owner
	e := c.state(op)
	if e == nil {
		return
	}
	if r.sink.validating() {
		c.validateDraw(op, e, true)
		c.validateIndexRange(op, e, firstIndex, numIndices)
		c.validateInstancing(op, numInstances)
	}
	e.native.DrawIndexedInstanced(numIndices, numInstances, firstIndex)
	r.sink.count(op)
}

// Dispatch implements render.CommandBuffer.
func (c *CommandBuffer) Dispatch(groupsX, groupsY, groupsZ uint32) {
	const op = OpDispatch
	r := c.owner
	e := c.state(op)
	if e == nil {
		return
	}
	if r.sink.validating() {
		c.validateDispatch(op, e, groupsX, groupsY, groupsZ)
	}
	e.native.Dispatch(groupsX, groupsY, groupsZ)
	r.sink.count(op)
}
