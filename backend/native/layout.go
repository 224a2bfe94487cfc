package native

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/gfx/render"
)

// pipelineLayout holds a single bind group layout and the pipeline layout
// built from it. Every binding lives in bind group 0.
type pipelineLayout struct {
	group    hal.BindGroupLayout
	raw      hal.PipelineLayout
	bindings []render.BindingDescriptor
	released bool
}

func (l *pipelineLayout) ResourceType() render.ResourceType { return render.ResourceTypePipelineLayout }

type resourceHeap struct {
	raw      hal.BindGroup
	released bool
}

func (h *resourceHeap) ResourceType() render.ResourceType { return render.ResourceTypeResourceHeap }

func layoutEntry(b render.BindingDescriptor) gputypes.BindGroupLayoutEntry {
	e := gputypes.BindGroupLayoutEntry{Binding: b.Slot, Visibility: b.Stages}
	switch b.Type {
	case render.BindingConstantBuffer:
		e.Buffer = &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform}
	case render.BindingStorageBuffer:
		e.Buffer = &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeStorage}
	case render.BindingTexture:
		e.Texture = &gputypes.TextureBindingLayout{
			SampleType:    gputypes.TextureSampleTypeFloat,
			ViewDimension: gputypes.TextureViewDimension2D,
		}
	case render.BindingSampler:
		e.Sampler = &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering}
	}
	return e
}

// CreatePipelineLayout implements render.System.
func (s *System) CreatePipelineLayout(desc *render.PipelineLayoutDescriptor) (render.PipelineLayout, error) {
	if desc == nil {
		return nil, fmt.Errorf("native: CreatePipelineLayout: %w", render.ErrInvalidDescriptor)
	}
	entries := make([]gputypes.BindGroupLayoutEntry, len(desc.Bindings))
	for i, b := range desc.Bindings {
		entries[i] = layoutEntry(b)
	}
	group, err := s.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label:   desc.Label,
		Entries: entries,
	})
	if err != nil {
		return nil, fmt.Errorf("native: create bind group layout %q: %w", desc.Label, err)
	}
	raw, err := s.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            desc.Label,
		BindGroupLayouts: []hal.BindGroupLayout{group},
	})
	if err != nil {
		s.device.DestroyBindGroupLayout(group)
		return nil, fmt.Errorf("native: create pipeline layout %q: %w", desc.Label, err)
	}
	return &pipelineLayout{
		group:    group,
		raw:      raw,
		bindings: append([]render.BindingDescriptor(nil), desc.Bindings...),
	}, nil
}

// ReleasePipelineLayout implements render.System.
func (s *System) ReleasePipelineLayout(rl render.PipelineLayout) error {
	l, err := s.pipelineLayout(rl)
	if err != nil {
		return err
	}
	s.device.DestroyPipelineLayout(l.raw)
	s.device.DestroyBindGroupLayout(l.group)
	l.released = true
	return nil
}

// CreateResourceHeap implements render.System.
func (s *System) CreateResourceHeap(desc *render.ResourceHeapDescriptor) (render.ResourceHeap, error) {
	if desc == nil {
		return nil, fmt.Errorf("native: CreateResourceHeap: %w", render.ErrInvalidDescriptor)
	}
	l, err := s.pipelineLayout(desc.PipelineLayout)
	if err != nil {
		return nil, err
	}
	if len(desc.ResourceViews) != len(l.bindings) {
		return nil, fmt.Errorf("native: %d resource views for %d bindings: %w",
			len(desc.ResourceViews), len(l.bindings), render.ErrInvalidDescriptor)
	}
	entries := make([]gputypes.BindGroupEntry, len(desc.ResourceViews))
	for i, v := range desc.ResourceViews {
		res, err := s.bindingResource(v)
		if err != nil {
			return nil, fmt.Errorf("native: resource view %d: %w", i, err)
		}
		entries[i] = gputypes.BindGroupEntry{Binding: l.bindings[i].Slot, Resource: res}
	}
	raw, err := s.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:   desc.Label,
		Layout:  l.group,
		Entries: entries,
	})
	if err != nil {
		return nil, fmt.Errorf("native: create bind group %q: %w", desc.Label, err)
	}
	return &resourceHeap{raw: raw}, nil
}

func (s *System) bindingResource(v render.Resource) (gputypes.BindingResource, error) {
	switch r := v.(type) {
	case *buffer:
		if r.released {
			return nil, ErrReleased
		}
		return gputypes.BufferBinding{Buffer: r.raw.NativeHandle(), Size: r.desc.Size}, nil
	case *texture:
		if r.released {
			return nil, ErrReleased
		}
		return gputypes.TextureViewBinding{TextureView: r.view.NativeHandle()}, nil
	case *sampler:
		if r.released {
			return nil, ErrReleased
		}
		return gputypes.SamplerBinding{Sampler: r.raw.NativeHandle()}, nil
	case nil:
		return nil, render.ErrInvalidDescriptor
	default:
		return nil, foreign("resource view", v)
	}
}

// ReleaseResourceHeap implements render.System.
func (s *System) ReleaseResourceHeap(rh render.ResourceHeap) error {
	h, err := s.resourceHeap(rh)
	if err != nil {
		return err
	}
	s.device.DestroyBindGroup(h.raw)
	h.released = true
	return nil
}

func (s *System) pipelineLayout(rl render.PipelineLayout) (*pipelineLayout, error) {
	l, ok := rl.(*pipelineLayout)
	if !ok || l == nil {
		return nil, foreign("pipeline layout", rl)
	}
	if l.released {
		return nil, ErrReleased
	}
	return l, nil
}

func (s *System) resourceHeap(rh render.ResourceHeap) (*resourceHeap, error) {
	h, ok := rh.(*resourceHeap)
	if !ok || h == nil {
		return nil, foreign("resource heap", rh)
	}
	if h.released {
		return nil, ErrReleased
	}
	return h, nil
}
