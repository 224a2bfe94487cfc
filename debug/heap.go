// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package debug

import (
	"fmt"

	"github.com/gogpu/gfx/render"
)

// CreateResourceHeap implements render.System.
func (r *RenderSystem) CreateResourceHeap(desc *render.ResourceHeapDescriptor) (render.ResourceHeap, error) {
	const op = OpCreateResourceHeap
	if desc == nil {
		return nil, r.nilArgument(op, "resource heap descriptor")
	}
	layout, le, err := r.pipelineLayout(op, desc.PipelineLayout)
	if err != nil {
		return nil, err
	}

	natives := make([]render.Resource, len(desc.ResourceViews))
	for i, v := range desc.ResourceViews {
		n, err := r.resourceView(op, i, v)
		if err != nil {
			return nil, err
		}
		natives[i] = n
	}
	if r.sink.validating() {
		r.validateResourceViews(op, le, desc.ResourceViews)
	}

	nd := *desc
	nd.PipelineLayout = le.native
	nd.ResourceViews = natives
	native, err := r.instance.CreateResourceHeap(&nd)
	if err != nil {
		return nil, err
	}
	h := r.resourceHeaps.insert(resourceHeapEntry{
		native: native,
		layout: layout,
		views:  append([]render.Resource(nil), desc.ResourceViews...),
	})
	r.sink.count(op)
	return &ResourceHeap{ref: ref{owner: r, h: h}}, nil
}

// resourceView translates one resource heap view to its native resource.
// Nil views and views of other kinds are reported and left nil.
func (r *RenderSystem) resourceView(op Op, i int, v render.Resource) (render.Resource, error) {
	switch v := v.(type) {
	case nil:
		r.sink.post(op, InvalidArgument, "null pointer passed to resource view %d", i)
		return nil, nil
	case *Buffer:
		_, e, err := r.buffer(op, v)
		if err != nil {
			return nil, err
		}
		return e.native, nil
	case *Texture:
		_, e, err := r.texture(op, v)
		if err != nil {
			return nil, err
		}
		return e.native, nil
	case *Sampler:
		_, e, err := r.sampler(op, v)
		if err != nil {
			return nil, err
		}
		return e.native, nil
	default:
		r.sink.post(op, InvalidArgument, "invalid resource type for resource view %d: %s (%T)", i, v.ResourceType(), v)
		slogger().Warn("untranslatable resource view", "op", op.String(), "index", i, "type", fmt.Sprintf("%T", v))
		return nil, nil
	}
}

func (r *RenderSystem) validateResourceViews(op Op, layout *pipelineLayoutEntry, views []render.Resource) {
	bindings := layout.desc.Bindings
	if len(views) != len(bindings) {
		r.sink.post(op, InvalidArgument,
			"mismatch between number of resource views (%d) and pipeline layout bindings (%d)", len(views), len(bindings))
	}
	for i := range min(len(views), len(bindings)) {
		b := bindings[i]
		switch v := views[i].(type) {
		case *Buffer:
			var want render.BufferType
			switch b.Type {
			case render.BindingConstantBuffer:
				want = render.BufferTypeConstant
			case render.BindingStorageBuffer:
				want = render.BufferTypeStorage
			}
			if want == 0 {
				r.sink.post(op, InvalidArgument,
					"resource view %d: %s binding (slot %d) cannot take a buffer", i, b.Type, b.Slot)
			} else if v.typ != want {
				r.sink.post(op, InvalidArgument,
					"resource view %d: %s binding (slot %d) requires %s buffer but %s buffer was specified",
					i, b.Type, b.Slot, want, v.typ)
			}
		case *Texture:
			if b.Type != render.BindingTexture {
				r.sink.post(op, InvalidArgument,
					"resource view %d: %s binding (slot %d) cannot take a texture", i, b.Type, b.Slot)
			}
		case *Sampler:
			if b.Type != render.BindingSampler {
				r.sink.post(op, InvalidArgument,
					"resource view %d: %s binding (slot %d) cannot take a sampler", i, b.Type, b.Slot)
			}
		}
	}
}

// ReleaseResourceHeap implements render.System.
func (r *RenderSystem) ReleaseResourceHeap(heap render.ResourceHeap) error {
	const op = OpReleaseResourceHeap
	d, e, err := r.resourceHeap(op, heap)
	if err != nil {
		return err
	}
	if err := r.instance.ReleaseResourceHeap(e.native); err != nil {
		return err
	}
	r.resourceHeaps.remove(d.h)
	r.sink.count(op)
	return nil
}
