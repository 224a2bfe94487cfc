// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"

	"github.com/gogpu/gputypes"
)

// BufferType is the primary role of a buffer.
type BufferType uint8

const (
	// BufferTypeVertex holds vertex data described by a VertexFormat.
	BufferTypeVertex BufferType = iota + 1

	// BufferTypeIndex holds 16- or 32-bit indices.
	BufferTypeIndex

	// BufferTypeConstant holds shader constants (uniforms).
	BufferTypeConstant

	// BufferTypeStorage holds read/write shader storage.
	BufferTypeStorage

	// BufferTypeStreamOutput receives stream-output (transform feedback) data.
	BufferTypeStreamOutput
)

// String returns the buffer type name used in diagnostics.
func (t BufferType) String() string {
	switch t {
	case BufferTypeVertex:
		return "vertex"
	case BufferTypeIndex:
		return "index"
	case BufferTypeConstant:
		return "constant"
	case BufferTypeStorage:
		return "storage"
	case BufferTypeStreamOutput:
		return "stream-output"
	default:
		return fmt.Sprintf("BufferType(%d)", t)
	}
}

// VertexFormat describes the layout of one vertex in a vertex buffer.
type VertexFormat struct {
	// Attributes are the per-vertex attributes.
	Attributes []gputypes.VertexAttribute

	// Stride is the byte distance between consecutive vertices.
	// Zero means unknown.
	Stride uint32
}

// AppendAttribute adds an attribute at the end of the vertex and grows the
// stride by the attribute size.
func (f *VertexFormat) AppendAttribute(format gputypes.VertexFormat, location uint32) {
	f.Attributes = append(f.Attributes, gputypes.VertexAttribute{
		Format:         format,
		Offset:         uint64(f.Stride),
		ShaderLocation: location,
	})
	f.Stride += uint32(format.Size())
}

// BufferDescriptor describes a buffer to create.
type BufferDescriptor struct {
	// Label is an optional debug label.
	Label string

	// Type is the primary role of the buffer.
	Type BufferType

	// Size is the buffer size in bytes.
	Size uint64

	// Usage holds additional usage flags. BufferUsageMapRead and
	// BufferUsageMapWrite grant CPU read and write access for MapBuffer.
	Usage gputypes.BufferUsage

	// VertexFormat describes vertices for vertex buffers.
	VertexFormat VertexFormat

	// IndexFormat is the index element format for index buffers.
	IndexFormat gputypes.IndexFormat
}

// CPUAccess is the access mode of a buffer mapping.
type CPUAccess uint8

const (
	CPUAccessReadOnly CPUAccess = iota + 1
	CPUAccessWriteOnly
	CPUAccessReadWrite
)

// String returns the access mode name.
func (a CPUAccess) String() string {
	switch a {
	case CPUAccessReadOnly:
		return "read-only"
	case CPUAccessWriteOnly:
		return "write-only"
	case CPUAccessReadWrite:
		return "read-write"
	default:
		return fmt.Sprintf("CPUAccess(%d)", a)
	}
}

// Reads reports whether the access mode includes CPU reads.
func (a CPUAccess) Reads() bool {
	return a == CPUAccessReadOnly || a == CPUAccessReadWrite
}

// Writes reports whether the access mode includes CPU writes.
func (a CPUAccess) Writes() bool {
	return a == CPUAccessWriteOnly || a == CPUAccessReadWrite
}
