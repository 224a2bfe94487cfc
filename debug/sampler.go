// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package debug

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/gfx/render"
)

// CreateSampler implements render.System.
func (r *RenderSystem) CreateSampler(desc *render.SamplerDescriptor) (render.Sampler, error) {
	const op = OpCreateSampler
	if desc == nil {
		return nil, r.nilArgument(op, "sampler descriptor")
	}
	if r.sink.validating() {
		r.validateSamplerDesc(op, desc)
	}

	native, err := r.instance.CreateSampler(desc)
	if err != nil {
		return nil, err
	}
	h := r.samplers.insert(samplerEntry{native: native, desc: *desc})
	r.sink.count(op)
	return &Sampler{ref: ref{owner: r, h: h}}, nil
}

func (r *RenderSystem) validateSamplerDesc(op Op, desc *render.SamplerDescriptor) {
	r.requireFeature(op, render.FeatureSamplers)
	if desc.MaxAnisotropy > render.MaxAnisotropy {
		r.sink.post(op, InvalidArgument,
			"anisotropy exceeded limit (%d specified but limit is %d)", desc.MaxAnisotropy, render.MaxAnisotropy)
	}
	if desc.MaxAnisotropy > 1 &&
		(desc.MinFilter != gputypes.FilterModeLinear ||
			desc.MagFilter != gputypes.FilterModeLinear ||
			desc.MipmapFilter != gputypes.MipmapFilterModeLinear) {
		r.sink.post(op, VaryingBehavior, "anisotropic filtering with non-linear filters")
	}
	if desc.LodMinClamp < 0 {
		r.sink.post(op, InvalidArgument, "minimum LOD must not be negative (%g specified)", desc.LodMinClamp)
	}
	if desc.LodMinClamp > desc.LodMaxClamp {
		r.sink.post(op, InvalidArgument,
			"minimum LOD is greater than maximum LOD (%g and %g specified)", desc.LodMinClamp, desc.LodMaxClamp)
	}
}

// CreateSamplerArray implements render.System.
func (r *RenderSystem) CreateSamplerArray(samplers []render.Sampler) (render.SamplerArray, error) {
	const op = OpCreateSamplerArray
	if len(samplers) == 0 {
		return nil, r.nilArgument(op, "sampler array")
	}
	natives := make([]render.Sampler, len(samplers))
	members := make([]*Sampler, len(samplers))
	for i, s := range samplers {
		d, e, err := r.sampler(op, s)
		if err != nil {
			return nil, err
		}
		natives[i] = e.native
		members[i] = d
	}

	native, err := r.instance.CreateSamplerArray(natives)
	if err != nil {
		return nil, err
	}
	h := r.samplerArrays.insert(samplerArrayEntry{native: native, samplers: members})
	r.sink.count(op)
	return &SamplerArray{ref: ref{owner: r, h: h}}, nil
}

// ReleaseSampler implements render.System.
func (r *RenderSystem) ReleaseSampler(s render.Sampler) error {
	const op = OpReleaseSampler
	d, e, err := r.sampler(op, s)
	if err != nil {
		return err
	}
	if err := r.instance.ReleaseSampler(e.native); err != nil {
		return err
	}
	r.samplers.remove(d.h)
	r.sink.count(op)
	return nil
}

// ReleaseSamplerArray implements render.System.
func (r *RenderSystem) ReleaseSamplerArray(arr render.SamplerArray) error {
	const op = OpReleaseSamplerArray
	d, e, err := r.samplerArray(op, arr)
	if err != nil {
		return err
	}
	if err := r.instance.ReleaseSamplerArray(e.native); err != nil {
		return err
	}
	r.samplerArrays.remove(d.h)
	r.sink.count(op)
	return nil
}
