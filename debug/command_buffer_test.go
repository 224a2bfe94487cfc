// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package debug

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/gfx/render"
	"github.com/gogpu/gfx/render/rendertest"
)

// drawFixture holds the objects a typical frame binds.
type drawFixture struct {
	r        *RenderSystem
	rec      *Recorder
	ctx      render.RenderContext
	vertices render.Buffer
	indices  render.Buffer
	pipeline render.GraphicsPipeline
	cb       render.CommandBuffer
}

func newDrawFixture(t *testing.T) *drawFixture {
	t.Helper()
	r, _, rec := newTestSystem(t)
	f := &drawFixture{r: r, rec: rec}

	var err error
	if f.ctx, err = r.CreateRenderContext(&render.RenderContextDescriptor{Width: 320, Height: 240}); err != nil {
		t.Fatalf("CreateRenderContext: %v", err)
	}
	// 8 vertices of 8 bytes.
	if f.vertices, err = r.CreateBuffer(vertexBufferDesc(64), make([]byte, 64)); err != nil {
		t.Fatalf("CreateBuffer: %v", err)
	}
	// 6 indices of 2 bytes.
	if f.indices, err = r.CreateBuffer(&render.BufferDescriptor{
		Type: render.BufferTypeIndex, Size: 12, IndexFormat: gputypes.IndexFormatUint16,
	}, make([]byte, 12)); err != nil {
		t.Fatalf("CreateBuffer: %v", err)
	}
	if f.pipeline, err = r.CreateGraphicsPipeline(&render.GraphicsPipelineDescriptor{
		ShaderProgram: mustGraphicsProgram(t, r),
		RenderTarget:  f.ctx,
	}); err != nil {
		t.Fatalf("CreateGraphicsPipeline: %v", err)
	}
	if f.cb, err = r.CreateCommandBuffer(); err != nil {
		t.Fatalf("CreateCommandBuffer: %v", err)
	}
	rec.Reset()
	return f
}

// native returns the rendertest command buffer behind cb.
func (f *drawFixture) native(t *testing.T) *rendertest.CommandBuffer {
	t.Helper()
	e, ok := f.r.commandBuffers.get(f.cb.(*CommandBuffer).h)
	if !ok {
		t.Fatal("command buffer not tracked")
	}
	return e.native.(*rendertest.CommandBuffer)
}

// bind begins recording and a render pass with all draw state bound.
func (f *drawFixture) bind() {
	f.cb.Begin()
	f.cb.SetVertexBuffer(f.vertices)
	f.cb.SetIndexBuffer(f.indices)
	f.cb.BeginRenderPass(f.ctx)
	f.cb.SetGraphicsPipeline(f.pipeline)
}

func TestCommandBufferValidFrame(t *testing.T) {
	f := newDrawFixture(t)
	f.bind()
	f.cb.SetViewport(render.Viewport{Width: 320, Height: 240, MaxDepth: 1})
	f.cb.Draw(8, 0)
	f.cb.DrawIndexed(6, 0)
	f.cb.DrawInstanced(3, 0, 2)
	f.cb.EndRenderPass()
	f.cb.End()
	if err := f.r.CommandQueue().Submit(f.cb); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if n := len(f.rec.Reports()); n != 0 {
		t.Errorf("valid frame produced %d reports: %v", n, f.rec.Reports())
	}
	nc := f.native(t)
	if nc.Err != nil {
		t.Errorf("native command buffer received foreign handle: %v", nc.Err)
	}
	for _, name := range []string{"Begin", "BeginRenderPass", "Draw", "DrawIndexed", "DrawInstanced", "End"} {
		if nc.Count(name) != 1 {
			t.Errorf("native %s count = %d, want 1", name, nc.Count(name))
		}
	}
}

func TestDrawValidation(t *testing.T) {
	tests := []struct {
		name     string
		record   func(f *drawFixture)
		category Category
		want     string
	}{
		{"outside recording", func(f *drawFixture) {
			f.cb.Draw(3, 0)
		}, InvalidState, "command must be recorded between Begin and End"},
		{"outside render pass", func(f *drawFixture) {
			f.cb.Begin()
			f.cb.SetVertexBuffer(f.vertices)
			f.cb.SetGraphicsPipeline(f.pipeline)
			f.cb.Draw(3, 0)
		}, InvalidState, "draw command outside of a render pass"},
		{"no pipeline", func(f *drawFixture) {
			f.cb.Begin()
			f.cb.SetVertexBuffer(f.vertices)
			f.cb.BeginRenderPass(f.ctx)
			f.cb.Draw(3, 0)
		}, InvalidState, "no graphics pipeline bound"},
		{"no vertex buffer", func(f *drawFixture) {
			f.cb.Begin()
			f.cb.BeginRenderPass(f.ctx)
			f.cb.SetGraphicsPipeline(f.pipeline)
			f.cb.Draw(3, 0)
		}, InvalidState, "no vertex buffer bound"},
		{"vertex range", func(f *drawFixture) {
			f.bind()
			f.cb.Draw(4, 6)
		}, InvalidArgument, "vertex index out of bounds (10 specified but limit is 8)"},
		{"index range", func(f *drawFixture) {
			f.bind()
			f.cb.DrawIndexed(6, 1)
		}, InvalidArgument, "index out of bounds (7 specified but limit is 6)"},
		{"zero vertices", func(f *drawFixture) {
			f.bind()
			f.cb.Draw(0, 0)
		}, PointlessOperation, "draw command with zero vertices"},
		{"zero instances", func(f *drawFixture) {
			f.bind()
			f.cb.DrawInstanced(3, 0, 0)
		}, PointlessOperation, "draw command with zero instances"},
		{"released pipeline", func(f *drawFixture) {
			f.bind()
			_ = f.r.ReleaseGraphicsPipeline(f.pipeline)
			f.cb.Draw(3, 0)
		}, InvalidState, "bound graphics pipeline was released"},
		{"released vertex buffer", func(f *drawFixture) {
			f.bind()
			_ = f.r.ReleaseBuffer(f.vertices)
			f.cb.Draw(3, 0)
		}, InvalidState, "bound vertex buffer was released"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newDrawFixture(t)
			tt.record(f)
			if !f.rec.Contains(tt.category, tt.want) {
				t.Errorf("missing report %q, got %v", tt.want, f.rec.Reports())
			}
			// Validation never suppresses a draw.
			nc := f.native(t)
			if nc.Count("Draw")+nc.Count("DrawIndexed")+nc.Count("DrawInstanced") != 1 {
				t.Errorf("draw was not forwarded: %v", nc.Commands)
			}
		})
	}
}

func TestDrawInstancedFeatureGating(t *testing.T) {
	f := newDrawFixture(t)
	f.r.caps.Features &^= render.FeatureInstancing
	f.bind()
	f.cb.DrawIndexedInstanced(6, 2, 0)
	if !f.rec.Contains(UnsupportedFeature, "instancing not supported") {
		t.Errorf("missing report, got %v", f.rec.Reports())
	}
}

func TestCommandBufferStateErrors(t *testing.T) {
	tests := []struct {
		name     string
		record   func(f *drawFixture)
		category Category
		want     string
	}{
		{"double begin", func(f *drawFixture) {
			f.cb.Begin()
			f.cb.Begin()
		}, InvalidState, "command buffer is already recording"},
		{"end without begin", func(f *drawFixture) {
			f.cb.End()
		}, InvalidState, "cannot end command buffer that is not recording"},
		{"end inside render pass", func(f *drawFixture) {
			f.cb.Begin()
			f.cb.BeginRenderPass(f.ctx)
			f.cb.End()
		}, InvalidState, "render pass must be ended before the command buffer is ended"},
		{"nested render pass", func(f *drawFixture) {
			f.cb.Begin()
			f.cb.BeginRenderPass(f.ctx)
			f.cb.BeginRenderPass(f.ctx)
		}, InvalidState, "nested render passes are not allowed"},
		{"end pass not begun", func(f *drawFixture) {
			f.cb.Begin()
			f.cb.EndRenderPass()
		}, InvalidState, "cannot end render pass that was not begun"},
		{"empty viewport", func(f *drawFixture) {
			f.cb.Begin()
			f.cb.SetViewport(render.Viewport{Width: 0, Height: 10, MaxDepth: 1})
		}, InvalidArgument, "viewport size must be greater than zero (0x10 specified)"},
		{"viewport depth", func(f *drawFixture) {
			f.cb.Begin()
			f.cb.SetViewport(render.Viewport{Width: 10, Height: 10, MinDepth: 0.5, MaxDepth: 2})
		}, InvalidArgument, "viewport depth range [0.5, 2] out of bounds"},
		{"empty scissor", func(f *drawFixture) {
			f.cb.Begin()
			f.cb.SetScissor(render.Scissor{Width: 10})
		}, PointlessOperation, "scissor rectangle is empty"},
		{"index as vertex", func(f *drawFixture) {
			f.cb.Begin()
			f.cb.SetVertexBuffer(f.indices)
		}, InvalidArgument, "cannot bind index buffer as vertex buffer"},
		{"vertex as index", func(f *drawFixture) {
			f.cb.Begin()
			f.cb.SetIndexBuffer(f.vertices)
		}, InvalidArgument, "cannot bind vertex buffer as index buffer"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newDrawFixture(t)
			tt.record(f)
			if !f.rec.Contains(tt.category, tt.want) {
				t.Errorf("missing report %q, got %v", tt.want, f.rec.Reports())
			}
		})
	}
}

func TestUninitializedVertexBuffer(t *testing.T) {
	f := newDrawFixture(t)
	buf := mustBuffer(t, f.r, vertexBufferDesc(64))
	f.cb.Begin()
	f.cb.SetVertexBuffer(buf)
	if !f.rec.Contains(ImproperState, "vertex buffer bound before it was initialized") {
		t.Errorf("missing report, got %v", f.rec.Reports())
	}

	f.rec.Reset()
	if err := f.r.WriteBuffer(buf, make([]byte, 64), 0); err != nil {
		t.Fatalf("WriteBuffer: %v", err)
	}
	f.cb.SetVertexBuffer(buf)
	if len(f.rec.Reports()) != 0 {
		t.Errorf("initialized buffer reported: %v", f.rec.Reports())
	}
}

func TestReleasedBufferArrayMember(t *testing.T) {
	f := newDrawFixture(t)
	second, err := f.r.CreateBuffer(vertexBufferDesc(64), make([]byte, 64))
	if err != nil {
		t.Fatalf("CreateBuffer: %v", err)
	}
	arr, err := f.r.CreateBufferArray([]render.Buffer{f.vertices, second})
	if err != nil {
		t.Fatalf("CreateBufferArray: %v", err)
	}

	f.rec.Reset()
	if err := f.r.ReleaseBuffer(second); err != nil {
		t.Fatalf("ReleaseBuffer: %v", err)
	}
	if !f.rec.Contains(ImproperState, "releasing buffer that is still a member of a buffer array") {
		t.Errorf("missing release report, got %v", f.rec.Reports())
	}

	f.rec.Reset()
	f.cb.Begin()
	f.cb.SetVertexBufferArray(arr)
	if !f.rec.Contains(InvalidState, "vertex buffer 1 of buffer array was released") {
		t.Errorf("missing bind report, got %v", f.rec.Reports())
	}
	if f.rec.Contains(InvalidState, "vertex buffer 0 of buffer array") {
		t.Errorf("live member reported, got %v", f.rec.Reports())
	}

	f.rec.Reset()
	if err := f.r.ReleaseBufferArray(arr); err != nil {
		t.Fatalf("ReleaseBufferArray: %v", err)
	}
	if err := f.r.ReleaseBuffer(f.vertices); err != nil {
		t.Fatalf("ReleaseBuffer: %v", err)
	}
	if f.rec.Contains(ImproperState, "still a member of a buffer array") {
		t.Errorf("released array still tracked membership, got %v", f.rec.Reports())
	}
}

func TestForeignHandleNotForwarded(t *testing.T) {
	f := newDrawFixture(t)
	foreign := &rendertest.Buffer{}
	f.cb.Begin()
	f.cb.SetVertexBuffer(foreign)

	if !f.rec.Contains(InvalidArgument, "was not created by the debug layer") {
		t.Errorf("missing report, got %v", f.rec.Reports())
	}
	if n := f.native(t).Count("SetVertexBuffer"); n != 0 {
		t.Errorf("foreign handle forwarded %d times", n)
	}
}

func TestDispatchValidation(t *testing.T) {
	f := newDrawFixture(t)
	cp, err := f.r.CreateComputePipeline(&render.ComputePipelineDescriptor{ShaderProgram: mustComputeProgram(t, f.r)})
	if err != nil {
		t.Fatalf("CreateComputePipeline: %v", err)
	}

	f.cb.Begin()
	f.cb.Dispatch(1, 1, 1)
	if !f.rec.Contains(InvalidState, "no compute pipeline bound") {
		t.Errorf("missing pipeline report, got %v", f.rec.Reports())
	}

	f.rec.Reset()
	f.cb.SetComputePipeline(cp)
	f.cb.Dispatch(70000, 1, 0)
	for _, want := range []struct {
		c   Category
		msg string
	}{
		{InvalidArgument, "number of thread groups exceeded limit (70000 specified but limit is 65535)"},
		{PointlessOperation, "dispatch command with zero thread groups"},
	} {
		if !f.rec.Contains(want.c, want.msg) {
			t.Errorf("missing report %q, got %v", want.msg, f.rec.Reports())
		}
	}

	f.rec.Reset()
	f.cb.BeginRenderPass(f.ctx)
	f.cb.Dispatch(1, 1, 1)
	if !f.rec.Contains(InvalidState, "dispatch command inside a render pass") {
		t.Errorf("missing render pass report, got %v", f.rec.Reports())
	}
	if n := f.native(t).Count("Dispatch"); n != 3 {
		t.Errorf("native Dispatch count = %d, want 3", n)
	}
}

func TestQueryState(t *testing.T) {
	f := newDrawFixture(t)
	q, err := f.r.CreateQuery(&render.QueryDescriptor{Type: render.QuerySamplesPassed})
	if err != nil {
		t.Fatalf("CreateQuery: %v", err)
	}
	f.cb.Begin()
	f.cb.EndQuery(q)
	if !f.rec.Contains(InvalidState, "cannot end samples passed query that was not begun") {
		t.Errorf("missing end report, got %v", f.rec.Reports())
	}

	f.rec.Reset()
	f.cb.BeginQuery(q)
	f.cb.BeginQuery(q)
	if !f.rec.Contains(InvalidState, "cannot begin samples passed query that is already active") {
		t.Errorf("missing begin report, got %v", f.rec.Reports())
	}

	f.rec.Reset()
	if err := f.r.ReleaseQuery(q); err != nil {
		t.Fatalf("ReleaseQuery: %v", err)
	}
	if !f.rec.Contains(ImproperState, "releasing samples passed query that is still active") {
		t.Errorf("missing release report, got %v", f.rec.Reports())
	}
}

func TestSubmitValidation(t *testing.T) {
	f := newDrawFixture(t)
	q := f.r.CommandQueue()

	if err := q.Submit(f.cb); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if !f.rec.Contains(PointlessOperation, "submitting command buffer that was never recorded") {
		t.Errorf("missing never recorded report, got %v", f.rec.Reports())
	}

	f.rec.Reset()
	f.cb.Begin()
	if err := q.Submit(f.cb); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if !f.rec.Contains(InvalidState, "cannot submit command buffer that is still recording") {
		t.Errorf("missing recording report, got %v", f.rec.Reports())
	}

	f.rec.Reset()
	if err := f.r.ReleaseCommandBuffer(f.cb); err != nil {
		t.Fatalf("ReleaseCommandBuffer: %v", err)
	}
	if !f.rec.Contains(ImproperState, "releasing command buffer that is still recording") {
		t.Errorf("missing release report, got %v", f.rec.Reports())
	}

	// Recording on a released command buffer is reported and dropped.
	f.rec.Reset()
	f.cb.Begin()
	if !f.rec.Contains(InvalidArgument, "use of released command buffer") {
		t.Errorf("missing released report, got %v", f.rec.Reports())
	}
	if err := q.Submit(f.cb); !errors.Is(err, ErrReleased) {
		t.Errorf("Submit() after release = %v, want ErrReleased", err)
	}
}
