// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package debug

import "github.com/gogpu/gfx/render"

// CreateFence implements render.System.
func (r *RenderSystem) CreateFence() (render.Fence, error) {
	const op = OpCreateFence
	native, err := r.instance.CreateFence()
	if err != nil {
		return nil, err
	}
	h := r.fences.insert(fenceEntry{native: native})
	r.sink.count(op)
	return &Fence{ref: ref{owner: r, h: h}}, nil
}

// ReleaseFence implements render.System.
func (r *RenderSystem) ReleaseFence(f render.Fence) error {
	const op = OpReleaseFence
	d, e, err := r.fence(op, f)
	if err != nil {
		return err
	}
	if err := r.instance.ReleaseFence(e.native); err != nil {
		return err
	}
	r.fences.remove(d.h)
	r.sink.count(op)
	return nil
}
