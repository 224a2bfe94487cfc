package native

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/gfx/render"
)

// commandBuffer records into a HAL command encoder.
//
// Render and compute passes are opened lazily, and state set outside a pass
// is replayed when the next pass begins. The first recording error sticks
// and is returned by Submit.
type commandBuffer struct {
	s       *System
	encoder hal.CommandEncoder
	cmd     hal.CommandBuffer

	// submission is the index of the latest submission of cmd.
	submission uint64

	recording bool
	err       error

	clear    gputypes.Color
	viewport *render.Viewport
	scissor  *render.Scissor
	graphics *graphicsPipeline
	compute  *computePipeline
	vertex   []*buffer
	index    *buffer
	heap     *resourceHeap

	pass      hal.RenderPassEncoder
	cpass     hal.ComputePassEncoder
	timestamp *query

	released bool
}

func (c *commandBuffer) ResourceType() render.ResourceType { return render.ResourceTypeCommandBuffer }

// CreateCommandBuffer implements render.System.
func (s *System) CreateCommandBuffer() (render.CommandBuffer, error) {
	enc, err := s.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "gfx command buffer"})
	if err != nil {
		return nil, fmt.Errorf("native: create command encoder: %w", err)
	}
	return &commandBuffer{s: s, encoder: enc}, nil
}

// ReleaseCommandBuffer implements render.System.
func (s *System) ReleaseCommandBuffer(rc render.CommandBuffer) error {
	c, err := s.commandBuffer(rc)
	if err != nil {
		return err
	}
	if c.recording {
		c.encoder.DiscardEncoding()
		c.recording = false
	}
	c.free()
	c.encoder.Destroy()
	c.released = true
	return nil
}

func (s *System) commandBuffer(rc render.CommandBuffer) (*commandBuffer, error) {
	c, ok := rc.(*commandBuffer)
	if !ok || c == nil {
		return nil, foreign("command buffer", rc)
	}
	if c.released {
		return nil, ErrReleased
	}
	return c, nil
}

// fail records the first error of the current recording.
func (c *commandBuffer) fail(err error) {
	if c.err == nil {
		c.err = err
		logger().Debug("command recording failed", "err", err)
	}
}

// free returns the recorded HAL command buffer once the GPU is done with it.
func (c *commandBuffer) free() {
	if c.cmd == nil {
		return
	}
	if c.submission > c.s.queue.PollCompleted() {
		_ = c.s.device.WaitIdle()
	}
	c.s.device.FreeCommandBuffer(c.cmd)
	c.cmd = nil
	c.submission = 0
}

func (c *commandBuffer) Begin() {
	if c.released {
		return
	}
	if c.recording {
		c.fail(fmt.Errorf("%w: Begin while recording", ErrInvalidCommand))
		return
	}
	c.free()
	*c = commandBuffer{s: c.s, encoder: c.encoder}
	if err := c.encoder.BeginEncoding("gfx command buffer"); err != nil {
		c.fail(fmt.Errorf("native: begin encoding: %w", err))
		return
	}
	c.recording = true
}

func (c *commandBuffer) End() {
	if !c.recording {
		c.fail(fmt.Errorf("%w: End without Begin", ErrInvalidCommand))
		return
	}
	c.endPasses()
	c.recording = false
	cmd, err := c.encoder.EndEncoding()
	if err != nil {
		c.fail(fmt.Errorf("native: end encoding: %w", err))
		return
	}
	c.cmd = cmd
}

func (c *commandBuffer) endPasses() {
	if c.pass != nil {
		c.pass.End()
		c.pass = nil
	}
	if c.cpass != nil {
		c.cpass.End()
		c.cpass = nil
	}
}

func (c *commandBuffer) SetViewport(v render.Viewport) {
	c.viewport = &v
	if c.pass != nil {
		c.pass.SetViewport(v.X, v.Y, v.Width, v.Height, v.MinDepth, v.MaxDepth)
	}
}

func (c *commandBuffer) SetScissor(sc render.Scissor) {
	c.scissor = &sc
	if c.pass != nil {
		c.pass.SetScissorRect(sc.X, sc.Y, sc.Width, sc.Height)
	}
}

func (c *commandBuffer) SetClearColor(col gputypes.Color) { c.clear = col }

func (c *commandBuffer) SetVertexBuffer(rb render.Buffer) {
	b, err := c.s.buffer(rb)
	if err != nil {
		c.fail(err)
		return
	}
	c.vertex = []*buffer{b}
	c.applyVertexBuffers()
}

func (c *commandBuffer) SetVertexBufferArray(ra render.BufferArray) {
	arr, ok := ra.(*bufferArray)
	if !ok || arr == nil {
		c.fail(foreign("buffer array", ra))
		return
	}
	if arr.released {
		c.fail(ErrReleased)
		return
	}
	c.vertex = arr.buffers
	c.applyVertexBuffers()
}

func (c *commandBuffer) applyVertexBuffers() {
	if c.pass == nil {
		return
	}
	for slot, b := range c.vertex {
		c.pass.SetVertexBuffer(uint32(slot), b.raw, 0)
	}
}

func indexFormat(b *buffer) gputypes.IndexFormat {
	if b.desc.IndexFormat == gputypes.IndexFormatUint16 {
		return gputypes.IndexFormatUint16
	}
	return gputypes.IndexFormatUint32
}

func (c *commandBuffer) SetIndexBuffer(rb render.Buffer) {
	b, err := c.s.buffer(rb)
	if err != nil {
		c.fail(err)
		return
	}
	c.index = b
	if c.pass != nil {
		c.pass.SetIndexBuffer(b.raw, indexFormat(b), 0)
	}
}

func (c *commandBuffer) SetResourceHeap(rh render.ResourceHeap) {
	h, err := c.s.resourceHeap(rh)
	if err != nil {
		c.fail(err)
		return
	}
	c.heap = h
	switch {
	case c.pass != nil:
		c.pass.SetBindGroup(0, h.raw, nil)
	case c.cpass != nil:
		c.cpass.SetBindGroup(0, h.raw, nil)
	}
}

func (c *commandBuffer) BeginRenderPass(target render.RenderTarget) {
	if !c.recording {
		c.fail(fmt.Errorf("%w: render pass outside of recording", ErrInvalidCommand))
		return
	}
	rt, err := c.s.renderTarget(target, render.ResourceTypeUndefined)
	if err != nil {
		c.fail(err)
		return
	}
	c.endPasses()

	desc := &hal.RenderPassDescriptor{Label: "gfx render pass"}
	for _, v := range rt.colorViews {
		desc.ColorAttachments = append(desc.ColorAttachments, hal.RenderPassColorAttachment{
			View:       v,
			LoadOp:     gputypes.LoadOpClear,
			StoreOp:    gputypes.StoreOpStore,
			ClearValue: c.clear,
		})
	}
	if rt.depthView != nil {
		desc.DepthStencilAttachment = &hal.RenderPassDepthStencilAttachment{
			View:            rt.depthView,
			DepthLoadOp:     gputypes.LoadOpClear,
			DepthStoreOp:    gputypes.StoreOpStore,
			DepthClearValue: 1,
		}
	}
	if q := c.timestamp; q != nil {
		begin, end := uint32(0), uint32(1)
		desc.TimestampWrites = &hal.RenderPassTimestampWrites{
			QuerySet:                  q.set,
			BeginningOfPassWriteIndex: &begin,
			EndOfPassWriteIndex:       &end,
		}
		c.timestamp = nil
	}
	c.pass = c.encoder.BeginRenderPass(desc)

	if v := c.viewport; v != nil {
		c.pass.SetViewport(v.X, v.Y, v.Width, v.Height, v.MinDepth, v.MaxDepth)
	}
	if sc := c.scissor; sc != nil {
		c.pass.SetScissorRect(sc.X, sc.Y, sc.Width, sc.Height)
	}
	if c.graphics != nil {
		c.pass.SetPipeline(c.graphics.raw)
	}
	c.applyVertexBuffers()
	if c.index != nil {
		c.pass.SetIndexBuffer(c.index.raw, indexFormat(c.index), 0)
	}
	if c.heap != nil {
		c.pass.SetBindGroup(0, c.heap.raw, nil)
	}
}

func (c *commandBuffer) EndRenderPass() {
	if c.pass == nil {
		c.fail(fmt.Errorf("%w: EndRenderPass without render pass", ErrInvalidCommand))
		return
	}
	c.pass.End()
	c.pass = nil
}

func (c *commandBuffer) SetGraphicsPipeline(rp render.GraphicsPipeline) {
	p, err := c.s.graphicsPipeline(rp)
	if err != nil {
		c.fail(err)
		return
	}
	c.graphics = p
	if c.pass != nil {
		c.pass.SetPipeline(p.raw)
	}
}

func (c *commandBuffer) SetComputePipeline(rp render.ComputePipeline) {
	p, err := c.s.computePipeline(rp)
	if err != nil {
		c.fail(err)
		return
	}
	if c.pass != nil {
		c.fail(fmt.Errorf("%w: compute pipeline inside render pass", ErrInvalidCommand))
		return
	}
	if !c.recording {
		c.fail(fmt.Errorf("%w: compute pipeline outside of recording", ErrInvalidCommand))
		return
	}
	c.compute = p
	if c.cpass == nil {
		c.cpass = c.encoder.BeginComputePass(&hal.ComputePassDescriptor{Label: "gfx compute pass"})
		if c.heap != nil {
			c.cpass.SetBindGroup(0, c.heap.raw, nil)
		}
	}
	c.cpass.SetPipeline(p.raw)
}

// BeginQuery arms a timestamp query for the next render pass. Occlusion
// queries need per-draw query indices, which the HAL encoder lacks.
func (c *commandBuffer) BeginQuery(rq render.Query) {
	q, err := c.s.query(rq)
	if err != nil {
		c.fail(err)
		return
	}
	if q.typ != render.QueryTimeElapsed {
		c.fail(fmt.Errorf("native: %s queries in command buffers: %w", q.typ, render.ErrNotSupported))
		return
	}
	c.timestamp = q
}

func (c *commandBuffer) EndQuery(rq render.Query) {
	if _, err := c.s.query(rq); err != nil {
		c.fail(err)
		return
	}
	c.timestamp = nil
}

func (c *commandBuffer) renderPass(cmd string) hal.RenderPassEncoder {
	if c.pass == nil {
		c.fail(fmt.Errorf("%w: %s outside of render pass", ErrInvalidCommand, cmd))
	}
	return c.pass
}

func (c *commandBuffer) Draw(numVertices, firstVertex uint32) {
	if p := c.renderPass("Draw"); p != nil {
		p.Draw(numVertices, 1, firstVertex, 0)
	}
}

func (c *commandBuffer) DrawIndexed(numIndices, firstIndex uint32) {
	if p := c.renderPass("DrawIndexed"); p != nil {
		p.DrawIndexed(numIndices, 1, firstIndex, 0, 0)
	}
}

func (c *commandBuffer) DrawInstanced(numVertices, firstVertex, numInstances uint32) {
	if p := c.renderPass("DrawInstanced"); p != nil {
		p.Draw(numVertices, numInstances, firstVertex, 0)
	}
}

func (c *commandBuffer) DrawIndexedInstanced(numIndices, numInstances, firstIndex uint32) {
	if p := c.renderPass("DrawIndexedInstanced"); p != nil {
		p.DrawIndexed(numIndices, numInstances, firstIndex, 0, 0)
	}
}

func (c *commandBuffer) Dispatch(groupsX, groupsY, groupsZ uint32) {
	if c.cpass == nil {
		c.fail(fmt.Errorf("%w: Dispatch without compute pipeline", ErrInvalidCommand))
		return
	}
	c.cpass.Dispatch(groupsX, groupsY, groupsZ)
}

// submitOnce records a one-off command buffer, submits it and waits for
// the device to become idle.
func (s *System) submitOnce(label string, record func(hal.CommandEncoder)) error {
	enc, err := s.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: label})
	if err != nil {
		return fmt.Errorf("native: create command encoder: %w", err)
	}
	defer enc.Destroy()
	if err := enc.BeginEncoding(label); err != nil {
		return fmt.Errorf("native: begin encoding: %w", err)
	}
	record(enc)
	cmd, err := enc.EndEncoding()
	if err != nil {
		return fmt.Errorf("native: end encoding: %w", err)
	}
	defer s.device.FreeCommandBuffer(cmd)
	idx, err := s.queue.Submit([]hal.CommandBuffer{cmd})
	if err != nil {
		return fmt.Errorf("native: submit: %w", err)
	}
	s.lastSubmission = idx
	return s.device.WaitIdle()
}

