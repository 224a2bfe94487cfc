package native

import (
	"fmt"
	"math/bits"
	"unsafe"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/gfx/render"
)

// buffer wraps a HAL buffer.
type buffer struct {
	raw      hal.Buffer
	desc     render.BufferDescriptor
	size     uint64 // allocated size, aligned to 4
	mapped   bool
	released bool
}

func (b *buffer) ResourceType() render.ResourceType { return render.ResourceTypeBuffer }
func (b *buffer) BufferType() render.BufferType     { return b.desc.Type }

type bufferArray struct {
	typ      render.BufferType
	buffers  []*buffer
	released bool
}

func (a *bufferArray) ResourceType() render.ResourceType { return render.ResourceTypeBufferArray }
func (a *bufferArray) BufferType() render.BufferType     { return a.typ }

// bufferUsage returns the HAL usage of a buffer descriptor.
func bufferUsage(desc *render.BufferDescriptor) gputypes.BufferUsage {
	usage := desc.Usage | gputypes.BufferUsageCopyDst
	switch desc.Type {
	case render.BufferTypeVertex:
		usage |= gputypes.BufferUsageVertex
	case render.BufferTypeIndex:
		usage |= gputypes.BufferUsageIndex
	case render.BufferTypeConstant:
		usage |= gputypes.BufferUsageUniform
	case render.BufferTypeStorage, render.BufferTypeStreamOutput:
		usage |= gputypes.BufferUsageStorage
	}
	return usage
}

// alignUp rounds n up to a multiple of align (a power of two).
func alignUp(n, align uint64) uint64 {
	return (n + align - 1) &^ (align - 1)
}

// CreateBuffer implements render.System.
func (s *System) CreateBuffer(desc *render.BufferDescriptor, initialData []byte) (render.Buffer, error) {
	if desc == nil {
		return nil, fmt.Errorf("native: CreateBuffer: %w", render.ErrInvalidDescriptor)
	}
	if uint64(len(initialData)) > desc.Size {
		return nil, fmt.Errorf("native: CreateBuffer: %d bytes of initial data for %d byte buffer: %w",
			len(initialData), desc.Size, ErrOutOfBounds)
	}
	size := alignUp(max(desc.Size, 4), 4)
	raw, err := s.device.CreateBuffer(&hal.BufferDescriptor{
		Label: desc.Label,
		Size:  size,
		Usage: bufferUsage(desc),
	})
	if err != nil {
		return nil, fmt.Errorf("native: create buffer %q: %w", desc.Label, err)
	}
	b := &buffer{raw: raw, desc: *desc, size: size}
	b.desc.VertexFormat.Attributes = append([]gputypes.VertexAttribute(nil), desc.VertexFormat.Attributes...)
	if len(initialData) > 0 {
		if err := s.queue.WriteBuffer(raw, 0, initialData); err != nil {
			s.device.DestroyBuffer(raw)
			return nil, fmt.Errorf("native: upload initial buffer data: %w", err)
		}
	}
	return b, nil
}

// CreateBufferArray implements render.System.
func (s *System) CreateBufferArray(buffers []render.Buffer) (render.BufferArray, error) {
	if len(buffers) == 0 {
		return nil, fmt.Errorf("native: CreateBufferArray: empty array: %w", render.ErrInvalidDescriptor)
	}
	arr := &bufferArray{buffers: make([]*buffer, len(buffers))}
	for i, rb := range buffers {
		b, err := s.buffer(rb)
		if err != nil {
			return nil, fmt.Errorf("native: CreateBufferArray: buffer %d: %w", i, err)
		}
		arr.buffers[i] = b
	}
	arr.typ = arr.buffers[0].desc.Type
	return arr, nil
}

// ReleaseBuffer implements render.System.
func (s *System) ReleaseBuffer(rb render.Buffer) error {
	b, err := s.buffer(rb)
	if err != nil {
		return err
	}
	if b.mapped {
		_ = s.device.UnmapBuffer(b.raw)
		b.mapped = false
	}
	s.device.DestroyBuffer(b.raw)
	b.released = true
	return nil
}

// ReleaseBufferArray implements render.System.
func (s *System) ReleaseBufferArray(ra render.BufferArray) error {
	arr, ok := ra.(*bufferArray)
	if !ok || arr == nil {
		return foreign("buffer array", ra)
	}
	if arr.released {
		return ErrReleased
	}
	arr.released = true
	return nil
}

// WriteBuffer implements render.System.
func (s *System) WriteBuffer(rb render.Buffer, data []byte, offset uint64) error {
	b, err := s.buffer(rb)
	if err != nil {
		return err
	}
	end, carry := bits.Add64(offset, uint64(len(data)), 0)
	if carry != 0 || end > b.desc.Size {
		return fmt.Errorf("native: write of %d bytes at offset %d into %d byte buffer: %w",
			len(data), offset, b.desc.Size, ErrOutOfBounds)
	}
	if len(data) == 0 {
		return nil
	}
	return s.queue.WriteBuffer(b.raw, offset, data)
}

// MapBuffer implements render.System.
func (s *System) MapBuffer(rb render.Buffer, access render.CPUAccess) ([]byte, error) {
	b, err := s.buffer(rb)
	if err != nil {
		return nil, err
	}
	if b.mapped {
		return nil, fmt.Errorf("native: buffer %q is already mapped: %w", b.desc.Label, ErrMapState)
	}
	if b.desc.Size == 0 {
		return nil, fmt.Errorf("native: cannot map empty buffer: %w", ErrOutOfBounds)
	}
	// Pending GPU writes must land before the CPU sees the memory.
	if access.Reads() {
		if err := s.device.WaitIdle(); err != nil {
			return nil, fmt.Errorf("native: wait before map: %w", err)
		}
	}
	m, err := s.device.MapBuffer(b.raw, 0, b.desc.Size)
	if err != nil {
		return nil, fmt.Errorf("native: map buffer %q: %w", b.desc.Label, err)
	}
	b.mapped = true
	return unsafeBytes(m, b.desc.Size), nil
}

// UnmapBuffer implements render.System.
func (s *System) UnmapBuffer(rb render.Buffer) error {
	b, err := s.buffer(rb)
	if err != nil {
		return err
	}
	if !b.mapped {
		return fmt.Errorf("native: buffer %q is not mapped: %w", b.desc.Label, ErrMapState)
	}
	b.mapped = false
	return s.device.UnmapBuffer(b.raw)
}

func (s *System) buffer(rb render.Buffer) (*buffer, error) {
	b, ok := rb.(*buffer)
	if !ok || b == nil {
		return nil, foreign("buffer", rb)
	}
	if b.released {
		return nil, ErrReleased
	}
	return b, nil
}

// unsafeBytes views a HAL mapping as a byte slice of the given length.
func unsafeBytes(m hal.BufferMapping, size uint64) []byte {
	return unsafe.Slice((*byte)(m.Ptr), size)
}
