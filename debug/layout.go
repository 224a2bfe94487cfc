// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package debug

import (
	"slices"

	"github.com/gogpu/gfx/render"
)

// CreatePipelineLayout implements render.System.
func (r *RenderSystem) CreatePipelineLayout(desc *render.PipelineLayoutDescriptor) (render.PipelineLayout, error) {
	const op = OpCreatePipelineLayout
	if desc == nil {
		return nil, r.nilArgument(op, "pipeline layout descriptor")
	}
	if r.sink.validating() {
		r.validatePipelineLayoutDesc(op, desc)
	}

	native, err := r.instance.CreatePipelineLayout(desc)
	if err != nil {
		return nil, err
	}
	e := pipelineLayoutEntry{native: native, desc: *desc}
	e.desc.Bindings = slices.Clone(desc.Bindings)
	h := r.pipelineLayouts.insert(e)
	r.sink.count(op)
	return &PipelineLayout{ref: ref{owner: r, h: h}}, nil
}

func (r *RenderSystem) validatePipelineLayoutDesc(op Op, desc *render.PipelineLayoutDescriptor) {
	if limit := r.caps.Limits.MaxBindingsPerBindGroup; uint64(len(desc.Bindings)) > uint64(limit) {
		r.sink.post(op, InvalidArgument,
			"too many bindings in pipeline layout (%d specified but limit is %d)", len(desc.Bindings), limit)
	}
	slots := make(map[uint32]int, len(desc.Bindings))
	for i, b := range desc.Bindings {
		switch b.Type {
		case render.BindingConstantBuffer:
			r.requireFeature(op, render.FeatureConstantBuffers)
		case render.BindingStorageBuffer:
			r.requireFeature(op, render.FeatureStorageBuffers)
		case render.BindingSampler:
			r.requireFeature(op, render.FeatureSamplers)
		case render.BindingTexture:
		default:
			r.sink.post(op, InvalidArgument, "binding %d has invalid binding type (%d)", i, b.Type)
		}
		if j, dup := slots[b.Slot]; dup {
			r.sink.post(op, InvalidArgument, "duplicate binding slot %d (bindings %d and %d)", b.Slot, j, i)
		} else {
			slots[b.Slot] = i
		}
		if b.Stages == 0 {
			r.sink.post(op, ImproperArgument, "binding %d (slot %d) is not visible to any shader stage", i, b.Slot)
		}
	}
}

// ReleasePipelineLayout implements render.System.
func (r *RenderSystem) ReleasePipelineLayout(layout render.PipelineLayout) error {
	const op = OpReleasePipelineLayout
	d, e, err := r.pipelineLayout(op, layout)
	if err != nil {
		return err
	}
	if err := r.instance.ReleasePipelineLayout(e.native); err != nil {
		return err
	}
	r.pipelineLayouts.remove(d.h)
	r.sink.count(op)
	return nil
}
