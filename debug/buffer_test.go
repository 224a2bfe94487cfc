// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package debug

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/gfx/render"
	"github.com/gogpu/gfx/render/rendertest"
)

func TestCreateBufferValidation(t *testing.T) {
	tests := []struct {
		name     string
		desc     render.BufferDescriptor
		data     []byte
		category Category
		want     string
	}{
		{
			name:     "zero size",
			desc:     render.BufferDescriptor{Type: render.BufferTypeStorage},
			category: InvalidArgument,
			want:     "buffer size must not be zero",
		},
		{
			name:     "initial data too large",
			desc:     render.BufferDescriptor{Type: render.BufferTypeStorage, Size: 8},
			data:     make([]byte, 16),
			category: InvalidArgument,
			want:     "initial data size exceeds buffer size (16 specified but limit is 8)",
		},
		{
			name: "vertex stride",
			desc: render.BufferDescriptor{
				Type:         render.BufferTypeVertex,
				Size:         20,
				VertexFormat: render.VertexFormat{Stride: 8},
			},
			category: ImproperArgument,
			want:     "improper vertex buffer size with vertex format of 8 bytes",
		},
		{
			name:     "index size",
			desc:     render.BufferDescriptor{Type: render.BufferTypeIndex, Size: 7, IndexFormat: gputypes.IndexFormatUint16},
			category: ImproperArgument,
			want:     "improper index buffer size with index format of 2 bytes",
		},
		{
			name:     "constant alignment",
			desc:     render.BufferDescriptor{Type: render.BufferTypeConstant, Size: 52},
			category: ImproperArgument,
			want:     "constant buffer size is out of pack alignment (alignment is 16 bytes)",
		},
		{
			name:     "constant limit",
			desc:     render.BufferDescriptor{Type: render.BufferTypeConstant, Size: 65536 + 16},
			category: InvalidArgument,
			want:     "constant buffer size exceeded limit (65552 specified but limit is 65536)",
		},
		{
			name:     "invalid type",
			desc:     render.BufferDescriptor{Type: 42, Size: 16},
			category: InvalidArgument,
			want:     "invalid buffer type",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, native, rec := newTestSystem(t)
			buf, err := r.CreateBuffer(&tt.desc, tt.data)
			if err != nil {
				t.Fatalf("CreateBuffer: %v", err)
			}
			if buf == nil {
				t.Fatal("CreateBuffer returned nil buffer")
			}
			if !rec.Contains(tt.category, tt.want) {
				t.Errorf("missing %s report %q, got %v", tt.category, tt.want, rec.Reports())
			}
			if native.Count("CreateBuffer") != 1 {
				t.Error("buffer creation was not forwarded")
			}
		})
	}
}

func TestCreateBufferZeroStrideNoWarning(t *testing.T) {
	r, _, rec := newTestSystem(t)
	if _, err := r.CreateBuffer(&render.BufferDescriptor{Type: render.BufferTypeVertex, Size: 13}, nil); err != nil {
		t.Fatalf("CreateBuffer: %v", err)
	}
	if n := len(rec.Reports()); n != 0 {
		t.Errorf("got %d reports, want none: %v", n, rec.Reports())
	}
}

func TestCreateBufferSizeLimit(t *testing.T) {
	native := rendertest.New()
	native.Caps.Limits.MaxBufferSize = 64
	rec := &Recorder{}
	r := New(native, WithDebugger(rec))

	if _, err := r.CreateBuffer(&render.BufferDescriptor{Type: render.BufferTypeStorage, Size: 100}, nil); err != nil {
		t.Fatalf("CreateBuffer: %v", err)
	}
	if !rec.Contains(InvalidArgument, "buffer size exceeded limit (100 specified but limit is 64)") {
		t.Errorf("missing limit report, got %v", rec.Reports())
	}
}

func TestCreateBufferFeatureGating(t *testing.T) {
	tests := []struct {
		typ     render.BufferType
		feature render.Features
		want    string
	}{
		{render.BufferTypeConstant, render.FeatureConstantBuffers, "constant buffers not supported"},
		{render.BufferTypeStorage, render.FeatureStorageBuffers, "storage buffers not supported"},
		{render.BufferTypeStreamOutput, render.FeatureStreamOutputs, "stream outputs not supported"},
	}
	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			native := rendertest.New()
			rec := &Recorder{}
			r := New(native, WithDebugger(rec))
			desc := &render.BufferDescriptor{Type: tt.typ, Size: 64}

			if _, err := r.CreateBuffer(desc, nil); err != nil {
				t.Fatalf("CreateBuffer: %v", err)
			}
			if rec.Contains(UnsupportedFeature, tt.want) {
				t.Errorf("unexpected report with feature present: %v", rec.Reports())
			}

			native.Caps.Features &^= tt.feature
			r = New(native, WithDebugger(rec))
			if _, err := r.CreateBuffer(desc, nil); err != nil {
				t.Fatalf("CreateBuffer: %v", err)
			}
			if !rec.Contains(UnsupportedFeature, tt.want) {
				t.Errorf("missing report %q, got %v", tt.want, rec.Reports())
			}
		})
	}
}

func TestCreateBufferNilDescriptor(t *testing.T) {
	r, native, rec := newTestSystem(t)
	if _, err := r.CreateBuffer(nil, nil); !errors.Is(err, ErrNilArgument) {
		t.Fatalf("CreateBuffer(nil) = %v, want ErrNilArgument", err)
	}
	if native.Count("CreateBuffer") != 0 {
		t.Error("nil descriptor was forwarded")
	}
	if !rec.Contains(InvalidArgument, "buffer descriptor must not be null") {
		t.Errorf("missing report, got %v", rec.Reports())
	}
}

func TestWriteBufferOutOfBoundsForwarded(t *testing.T) {
	r, native, rec := newTestSystem(t)
	buf := mustBuffer(t, r, vertexBufferDesc(16))

	if err := r.WriteBuffer(buf, make([]byte, 8), 12); err != nil {
		t.Fatalf("WriteBuffer: %v", err)
	}
	if !rec.Contains(InvalidArgument, "buffer size and offset out of bounds") {
		t.Errorf("missing bounds report, got %v", rec.Reports())
	}
	if got := native.Count("WriteBuffer"); got != 1 {
		t.Errorf("forwarded WriteBuffer calls = %d, want 1", got)
	}

	rec.Reset()
	if err := r.WriteBuffer(buf, make([]byte, 8), ^uint64(0)); err != nil {
		t.Fatalf("WriteBuffer: %v", err)
	}
	if !rec.Contains(InvalidArgument, "out of bounds") {
		t.Error("offset overflow was not reported")
	}

	rec.Reset()
	if err := r.WriteBuffer(buf, make([]byte, 16), 0); err != nil {
		t.Fatalf("WriteBuffer: %v", err)
	}
	if n := len(rec.Reports()); n != 0 {
		t.Errorf("in-bounds write produced reports: %v", rec.Reports())
	}
}

func TestWriteBufferNilData(t *testing.T) {
	r, native, rec := newTestSystem(t)
	buf := mustBuffer(t, r, vertexBufferDesc(16))
	if err := r.WriteBuffer(buf, nil, 0); err != nil {
		t.Fatalf("WriteBuffer: %v", err)
	}
	if !rec.Contains(InvalidArgument, "illegal null pointer argument for 'data' parameter") {
		t.Errorf("missing null data report, got %v", rec.Reports())
	}
	if native.Count("WriteBuffer") != 1 {
		t.Error("WriteBuffer was not forwarded")
	}
}

func TestMapUnmapState(t *testing.T) {
	r, native, rec := newTestSystem(t)
	desc := &render.BufferDescriptor{
		Type:  render.BufferTypeStorage,
		Size:  32,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageMapWrite,
	}
	buf := mustBuffer(t, r, desc)

	if err := r.UnmapBuffer(buf); err != nil {
		t.Fatalf("UnmapBuffer: %v", err)
	}
	if !rec.Contains(InvalidState, "cannot unmap buffer that was not previously mapped") {
		t.Errorf("missing unmap report, got %v", rec.Reports())
	}

	rec.Reset()
	data, err := r.MapBuffer(buf, render.CPUAccessReadWrite)
	if err != nil {
		t.Fatalf("MapBuffer: %v", err)
	}
	if len(data) != 32 {
		t.Errorf("len(mapped) = %d, want 32", len(data))
	}
	if n := len(rec.Reports()); n != 0 {
		t.Errorf("valid map produced reports: %v", rec.Reports())
	}
	if _, err := r.MapBuffer(buf, render.CPUAccessReadOnly); err != nil {
		t.Fatalf("MapBuffer: %v", err)
	}
	if !rec.Contains(InvalidState, "cannot map buffer that has already been mapped") {
		t.Errorf("missing double map report, got %v", rec.Reports())
	}

	rec.Reset()
	if err := r.ReleaseBuffer(buf); err != nil {
		t.Fatalf("ReleaseBuffer: %v", err)
	}
	if !rec.Contains(ImproperState, "releasing buffer that is still mapped") {
		t.Errorf("missing mapped release report, got %v", rec.Reports())
	}
	if native.Count("MapBuffer") != 2 || native.Count("UnmapBuffer") != 1 {
		t.Errorf("forwarded Map/Unmap = %d/%d, want 2/1", native.Count("MapBuffer"), native.Count("UnmapBuffer"))
	}
}

func TestMapBufferUsage(t *testing.T) {
	tests := []struct {
		name   string
		usage  gputypes.BufferUsage
		access render.CPUAccess
		want   string
	}{
		{"read without MapRead", gputypes.BufferUsageMapWrite, render.CPUAccessReadOnly, "MapRead usage"},
		{"write without MapWrite", gputypes.BufferUsageMapRead, render.CPUAccessWriteOnly, "MapWrite usage"},
		{"invalid access", gputypes.BufferUsageMapRead, 0, "invalid CPU access"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _, rec := newTestSystem(t)
			buf := mustBuffer(t, r, &render.BufferDescriptor{Type: render.BufferTypeStorage, Size: 16, Usage: tt.usage})
			if _, err := r.MapBuffer(buf, tt.access); err != nil {
				t.Fatalf("MapBuffer: %v", err)
			}
			if !rec.Contains(InvalidState, tt.want) && !rec.Contains(InvalidArgument, tt.want) {
				t.Errorf("missing report %q, got %v", tt.want, rec.Reports())
			}
		})
	}
}

func TestBufferArray(t *testing.T) {
	r, native, rec := newTestSystem(t)
	a := mustBuffer(t, r, vertexBufferDesc(64))
	b := mustBuffer(t, r, &render.BufferDescriptor{Type: render.BufferTypeIndex, Size: 64, IndexFormat: gputypes.IndexFormatUint16})

	if _, err := r.CreateBufferArray(nil); !errors.Is(err, ErrNilArgument) {
		t.Errorf("CreateBufferArray(nil) = %v, want ErrNilArgument", err)
	}

	arr, err := r.CreateBufferArray([]render.Buffer{a, b})
	if err != nil {
		t.Fatalf("CreateBufferArray: %v", err)
	}
	if !rec.Contains(InvalidArgument, "type mismatch (vertex and index buffers)") {
		t.Errorf("missing mismatch report, got %v", rec.Reports())
	}
	if arr.BufferType() != render.BufferTypeVertex {
		t.Errorf("BufferType() = %v, want vertex", arr.BufferType())
	}

	// Members are unwrapped before forwarding.
	call, ok := native.Last("CreateBufferArray")
	if !ok {
		t.Fatal("CreateBufferArray was not forwarded")
	}
	for i, m := range call.Args[0].([]render.Buffer) {
		if _, ok := m.(*rendertest.Buffer); !ok {
			t.Errorf("member %d forwarded as %T", i, m)
		}
	}

	if err := r.ReleaseBufferArray(arr); err != nil {
		t.Fatalf("ReleaseBufferArray: %v", err)
	}
	if got := r.Live(render.ResourceTypeBufferArray); got != 0 {
		t.Errorf("Live(buffer array) = %d, want 0", got)
	}
}
