// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package debug

import (
	"math/bits"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/gfx/render"
)

// requireFeature reports an UnsupportedFeature error when the capability
// snapshot lacks f. It reports whether the feature is present.
func (r *RenderSystem) requireFeature(op Op, f render.Features) bool {
	if r.caps.Features.Has(f) {
		return true
	}
	r.sink.post(op, UnsupportedFeature, "%s not supported", f)
	return false
}

func (r *RenderSystem) validateBufferDesc(op Op, desc *render.BufferDescriptor, initialData []byte) {
	limits := &r.caps.Limits

	if desc.Size == 0 {
		r.sink.post(op, InvalidArgument, "buffer size must not be zero")
	}
	if desc.Size > limits.MaxBufferSize {
		r.sink.post(op, InvalidArgument,
			"buffer size exceeded limit (%d specified but limit is %d)", desc.Size, limits.MaxBufferSize)
	}
	if initialData != nil && uint64(len(initialData)) > desc.Size {
		r.sink.post(op, InvalidArgument,
			"initial data size exceeds buffer size (%d specified but limit is %d)", len(initialData), desc.Size)
	}

	switch desc.Type {
	case render.BufferTypeVertex:
		if stride := uint64(desc.VertexFormat.Stride); stride > 0 && desc.Size%stride != 0 {
			r.sink.post(op, ImproperArgument,
				"improper vertex buffer size with vertex format of %d bytes", stride)
		}

	case render.BufferTypeIndex:
		if size := uint64(desc.IndexFormat.Size()); size > 0 && desc.Size%size != 0 {
			r.sink.post(op, ImproperArgument,
				"improper index buffer size with index format of %d bytes", size)
		}

	case render.BufferTypeConstant:
		r.requireFeature(op, render.FeatureConstantBuffers)
		if desc.Size > limits.MaxUniformBufferBindingSize {
			r.sink.post(op, InvalidArgument,
				"constant buffer size exceeded limit (%d specified but limit is %d)",
				desc.Size, limits.MaxUniformBufferBindingSize)
		}
		if desc.Size%render.ConstantBufferAlignment != 0 {
			r.sink.post(op, ImproperArgument,
				"constant buffer size is out of pack alignment (alignment is %d bytes)",
				render.ConstantBufferAlignment)
		}

	case render.BufferTypeStorage:
		r.requireFeature(op, render.FeatureStorageBuffers)

	case render.BufferTypeStreamOutput:
		r.requireFeature(op, render.FeatureStreamOutputs)

	default:
		r.sink.post(op, InvalidArgument, "invalid buffer type: %s", desc.Type)
	}
}

// validateBufferBoundary checks that [offset, offset+dataSize) lies inside
// a buffer of bufferSize bytes.
func (r *RenderSystem) validateBufferBoundary(op Op, bufferSize, dataSize, offset uint64) {
	end, carry := bits.Add64(dataSize, offset, 0)
	if carry != 0 || end > bufferSize {
		r.sink.post(op, InvalidArgument, "buffer size and offset out of bounds")
	}
}

func (r *RenderSystem) validateBufferMapping(op Op, e *bufferEntry, access render.CPUAccess) {
	switch access {
	case render.CPUAccessReadOnly, render.CPUAccessWriteOnly, render.CPUAccessReadWrite:
	default:
		r.sink.post(op, InvalidArgument, "invalid CPU access: %s", access)
		return
	}
	if access.Reads() && !e.desc.Usage.Contains(gputypes.BufferUsageMapRead) {
		r.sink.post(op, InvalidState,
			"cannot map buffer with CPU read access (buffer was not created with MapRead usage)")
	}
	if access.Writes() && !e.desc.Usage.Contains(gputypes.BufferUsageMapWrite) {
		r.sink.post(op, InvalidState,
			"cannot map buffer with CPU write access (buffer was not created with MapWrite usage)")
	}
}
