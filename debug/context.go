// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package debug

import "github.com/gogpu/gfx/render"

// CreateRenderContext implements render.System. The capability snapshot is
// refreshed afterwards, since backends may only know their device limits
// once a context exists.
func (r *RenderSystem) CreateRenderContext(desc *render.RenderContextDescriptor) (render.RenderContext, error) {
	const op = OpCreateRenderContext
	if desc == nil {
		return nil, r.nilArgument(op, "render context descriptor")
	}
	if r.sink.validating() {
		if desc.Width == 0 || desc.Height == 0 {
			r.sink.post(op, InvalidArgument, "render context resolution must not be empty")
		}
		if limit := r.caps.Limits.MaxSamples; desc.Samples > limit {
			r.sink.post(op, InvalidArgument,
				"number of samples exceeded limit (%d specified but limit is %d)", desc.Samples, limit)
		}
	}

	native, err := r.instance.CreateRenderContext(desc)
	if err != nil {
		return nil, err
	}
	h := r.contexts.insert(renderContextEntry{native: native, desc: *desc})
	r.updateCaps()
	r.sink.count(op)
	slogger().Info("render context created",
		"renderer", r.id.String(), "width", desc.Width, "height", desc.Height)
	return &RenderContext{ref: ref{owner: r, h: h}}, nil
}

// ReleaseRenderContext implements render.System.
func (r *RenderSystem) ReleaseRenderContext(ctx render.RenderContext) error {
	const op = OpReleaseRenderContext
	d, e, err := r.renderContext(op, ctx)
	if err != nil {
		return err
	}
	if err := r.instance.ReleaseRenderContext(e.native); err != nil {
		return err
	}
	r.contexts.remove(d.h)
	r.sink.count(op)
	return nil
}
