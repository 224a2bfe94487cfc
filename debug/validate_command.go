// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package debug

import "github.com/gogpu/gfx/render"

func (c *CommandBuffer) validateDraw(op Op, e *commandBufferEntry, indexed bool) {
	r := c.owner
	c.requireRecording(op, e)
	if !e.inRenderPass {
		r.sink.post(op, InvalidState, "draw command outside of a render pass")
	}
	switch {
	case e.graphicsPipeline == nil:
		r.sink.post(op, InvalidState, "no graphics pipeline bound")
	case !r.graphicsPipelines.has(e.graphicsPipeline.h):
		r.sink.post(op, InvalidState, "bound graphics pipeline was released")
	}
	if e.vertexBuffer == nil && e.vertexArray == nil {
		r.sink.post(op, InvalidState, "no vertex buffer bound")
	}
	if indexed && e.indexBuffer == nil {
		r.sink.post(op, InvalidState, "no index buffer bound")
	}
}

func (c *CommandBuffer) validateVertexRange(op Op, e *commandBufferEntry, first, count uint32) {
	r := c.owner
	if count == 0 {
		r.sink.post(op, PointlessOperation, "draw command with zero vertices")
		return
	}
	if e.vertexBuffer == nil {
		return
	}
	be, ok := r.buffers.get(e.vertexBuffer.h)
	if !ok {
		r.sink.post(op, InvalidState, "bound vertex buffer was released")
		return
	}
	if n := be.elements(); n > 0 {
		if end := uint64(first) + uint64(count); end > n {
			r.sink.post(op, InvalidArgument, "vertex index out of bounds (%d specified but limit is %d)", end, n)
		}
	}
}

func (c *CommandBuffer) validateIndexRange(op Op, e *commandBufferEntry, first, count uint32) {
	r := c.owner
	if count == 0 {
		r.sink.post(op, PointlessOperation, "draw command with zero indices")
		return
	}
	if e.indexBuffer == nil {
		return
	}
	be, ok := r.buffers.get(e.indexBuffer.h)
	if !ok {
		r.sink.post(op, InvalidState, "bound index buffer was released")
		return
	}
	if n := be.elements(); n > 0 {
		if end := uint64(first) + uint64(count); end > n {
			r.sink.post(op, InvalidArgument, "index out of bounds (%d specified but limit is %d)", end, n)
		}
	}
}

func (c *CommandBuffer) validateInstancing(op Op, numInstances uint32) {
	r := c.owner
	r.requireFeature(op, render.FeatureInstancing)
	if numInstances == 0 {
		r.sink.post(op, PointlessOperation, "draw command with zero instances")
	}
}

func (c *CommandBuffer) validateDispatch(op Op, e *commandBufferEntry, x, y, z uint32) {
	r := c.owner
	c.requireRecording(op, e)
	if e.inRenderPass {
		r.sink.post(op, InvalidState, "dispatch command inside a render pass")
	}
	switch {
	case e.computePipeline == nil:
		r.sink.post(op, InvalidState, "no compute pipeline bound")
	case !r.computePipelines.has(e.computePipeline.h):
		r.sink.post(op, InvalidState, "bound compute pipeline was released")
	}
	limit := r.caps.Limits.MaxComputeWorkgroupsPerDimension
	for _, n := range [...]uint32{x, y, z} {
		if n > limit {
			r.sink.post(op, InvalidArgument, "number of thread groups exceeded limit (%d specified but limit is %d)", n, limit)
		}
	}
	if x == 0 || y == 0 || z == 0 {
		r.sink.post(op, PointlessOperation, "dispatch command with zero thread groups")
	}
}
