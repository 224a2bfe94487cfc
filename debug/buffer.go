// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package debug

import (
	"slices"

	"github.com/gogpu/gfx/render"
)

// CreateBuffer implements render.System.
func (r *RenderSystem) CreateBuffer(desc *render.BufferDescriptor, initialData []byte) (render.Buffer, error) {
	const op = OpCreateBuffer
	if desc == nil {
		return nil, r.nilArgument(op, "buffer descriptor")
	}
	if r.sink.validating() {
		r.validateBufferDesc(op, desc, initialData)
	}

	native, err := r.instance.CreateBuffer(desc, initialData)
	if err != nil {
		return nil, err
	}

	e := bufferEntry{
		native:      native,
		desc:        *desc,
		initialized: initialData != nil,
	}
	e.desc.VertexFormat.Attributes = slices.Clone(desc.VertexFormat.Attributes)
	h := r.buffers.insert(e)
	r.sink.count(op)
	slogger().Debug("buffer created", "type", desc.Type.String(), "size", desc.Size)
	return &Buffer{ref: ref{owner: r, h: h}, typ: desc.Type}, nil
}

// CreateBufferArray implements render.System.
func (r *RenderSystem) CreateBufferArray(buffers []render.Buffer) (render.BufferArray, error) {
	const op = OpCreateBufferArray
	if len(buffers) == 0 {
		return nil, r.nilArgument(op, "buffer array")
	}

	natives := make([]render.Buffer, len(buffers))
	members := make([]*Buffer, len(buffers))
	for i, b := range buffers {
		d, e, err := r.buffer(op, b)
		if err != nil {
			return nil, err
		}
		natives[i] = e.native
		members[i] = d
	}
	typ := members[0].typ
	if r.sink.validating() {
		for _, d := range members[1:] {
			if d.typ != typ {
				r.sink.post(op, InvalidArgument,
					"cannot create buffer array with type mismatch (%s and %s buffers)", typ, d.typ)
				break
			}
		}
	}

	native, err := r.instance.CreateBufferArray(natives)
	if err != nil {
		return nil, err
	}
	h := r.bufferArrays.insert(bufferArrayEntry{native: native, buffers: members})
	r.sink.count(op)
	return &BufferArray{ref: ref{owner: r, h: h}, typ: typ}, nil
}

// ReleaseBuffer implements render.System.
func (r *RenderSystem) ReleaseBuffer(buf render.Buffer) error {
	const op = OpReleaseBuffer
	d, e, err := r.buffer(op, buf)
	if err != nil {
		return err
	}
	if r.sink.validating() {
		if e.mapped {
			r.sink.post(op, ImproperState, "releasing buffer that is still mapped to CPU local memory")
		}
		member := func(ae *bufferArrayEntry) bool {
			return slices.ContainsFunc(ae.buffers, func(b *Buffer) bool { return b.h == d.h })
		}
		if _, ok := r.bufferArrays.find(member); ok {
			r.sink.post(op, ImproperState, "releasing buffer that is still a member of a buffer array")
		}
	}
	if err := r.instance.ReleaseBuffer(e.native); err != nil {
		return err
	}
	r.buffers.remove(d.h)
	r.sink.count(op)
	slogger().Debug("buffer released", "type", d.typ.String())
	return nil
}

// ReleaseBufferArray implements render.System.
func (r *RenderSystem) ReleaseBufferArray(arr render.BufferArray) error {
	const op = OpReleaseBufferArray
	d, e, err := r.bufferArray(op, arr)
	if err != nil {
		return err
	}
	if err := r.instance.ReleaseBufferArray(e.native); err != nil {
		return err
	}
	r.bufferArrays.remove(d.h)
	r.sink.count(op)
	return nil
}

// WriteBuffer implements render.System. Out-of-range writes are reported
// and still forwarded.
func (r *RenderSystem) WriteBuffer(buf render.Buffer, data []byte, offset uint64) error {
	const op = OpWriteBuffer
	_, e, err := r.buffer(op, buf)
	if err != nil {
		return err
	}
	if r.sink.validating() {
		if data == nil {
			r.sink.post(op, InvalidArgument, "illegal null pointer argument for 'data' parameter")
		}
		r.validateBufferBoundary(op, e.desc.Size, uint64(len(data)), offset)
	}

	if err := r.instance.WriteBuffer(e.native, data, offset); err != nil {
		return err
	}
	if offset == 0 {
		e.initialized = true
	}
	r.sink.count(op)
	return nil
}

// MapBuffer implements render.System.
func (r *RenderSystem) MapBuffer(buf render.Buffer, access render.CPUAccess) ([]byte, error) {
	const op = OpMapBuffer
	_, e, err := r.buffer(op, buf)
	if err != nil {
		return nil, err
	}
	if r.sink.validating() {
		r.validateBufferMapping(op, e, access)
		if e.mapped {
			r.sink.post(op, InvalidState, "cannot map buffer that has already been mapped to CPU local memory")
		}
	}

	data, err := r.instance.MapBuffer(e.native, access)
	if err != nil {
		return nil, err
	}
	e.mapped = true
	if access.Writes() {
		e.initialized = true
	}
	r.sink.count(op)
	return data, nil
}

// UnmapBuffer implements render.System.
func (r *RenderSystem) UnmapBuffer(buf render.Buffer) error {
	const op = OpUnmapBuffer
	_, e, err := r.buffer(op, buf)
	if err != nil {
		return err
	}
	if r.sink.validating() && !e.mapped {
		r.sink.post(op, InvalidState, "cannot unmap buffer that was not previously mapped to CPU local memory")
	}

	if err := r.instance.UnmapBuffer(e.native); err != nil {
		return err
	}
	e.mapped = false
	r.sink.count(op)
	return nil
}
