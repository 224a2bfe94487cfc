// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package debug

import (
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/gfx/render"
	"github.com/gogpu/gfx/render/rendertest"
)

func mustTexture(t *testing.T, r *RenderSystem, desc *render.TextureDescriptor) render.Texture {
	t.Helper()
	tex, err := r.CreateTexture(desc, nil)
	if err != nil {
		t.Fatalf("CreateTexture: %v", err)
	}
	return tex
}

func TestCreateTextureEmptySize(t *testing.T) {
	tests := []render.TextureDescriptor{
		{Type: render.Texture1D},
		{Type: render.Texture2D, Width: 16},
		{Type: render.Texture3D, Width: 16, Height: 16},
		{Type: render.TextureCube},
		{Type: render.Texture1DArray, Layers: 1},
		{Type: render.Texture2DArray, Height: 16, Layers: 1},
		{Type: render.TextureCubeArray, Layers: 1},
		{Type: render.Texture2DMS, Samples: 4},
		{Type: render.Texture2DMSArray, Layers: 1, Samples: 4},
	}
	for _, desc := range tests {
		t.Run(desc.Type.String(), func(t *testing.T) {
			r, native, rec := newTestSystem(t)
			mustTexture(t, r, &desc)
			if !rec.Contains(InvalidArgument, "texture size must not be empty") {
				t.Errorf("missing empty size report, got %v", rec.Reports())
			}
			if native.Count("CreateTexture") != 1 {
				t.Error("texture creation was not forwarded")
			}
		})
	}
}

func TestCreateTextureEmptySizeWithoutFeatures(t *testing.T) {
	tests := []render.TextureDescriptor{
		{Type: render.Texture1D},
		{Type: render.Texture2D, Width: 16},
		{Type: render.Texture3D, Width: 16, Height: 16},
		{Type: render.TextureCube},
		{Type: render.Texture1DArray, Layers: 1},
		{Type: render.Texture2DArray, Height: 16, Layers: 1},
		{Type: render.TextureCubeArray, Layers: 1},
		{Type: render.Texture2DMS, Samples: 4},
		{Type: render.Texture2DMSArray, Layers: 1, Samples: 4},
	}
	for _, desc := range tests {
		t.Run(desc.Type.String(), func(t *testing.T) {
			native := rendertest.New()
			native.Caps.Features = 0
			rec := &Recorder{}
			r := New(native, WithDebugger(rec))

			mustTexture(t, r, &desc)
			if !rec.Contains(InvalidArgument, "texture size must not be empty") {
				t.Errorf("missing empty size report, got %v", rec.Reports())
			}
		})
	}
}

func TestCreateTextureValidation(t *testing.T) {
	tests := []struct {
		name     string
		desc     render.TextureDescriptor
		category Category
		want     string
	}{
		{
			name:     "cube not square",
			desc:     render.TextureDescriptor{Type: render.TextureCube, Width: 16, Height: 32},
			category: InvalidArgument,
			want:     "width and height of cube textures must be equal",
		},
		{
			name:     "2D limit",
			desc:     render.TextureDescriptor{Type: render.Texture2D, Width: 8193, Height: 4},
			category: InvalidArgument,
			want:     "2D texture size exceeded limit (8193 specified but limit is 8192)",
		},
		{
			name:     "1D limit",
			desc:     render.TextureDescriptor{Type: render.Texture1D, Width: 9000},
			category: InvalidArgument,
			want:     "1D texture size exceeded limit (9000 specified but limit is 8192)",
		},
		{
			name:     "3D limit",
			desc:     render.TextureDescriptor{Type: render.Texture3D, Width: 4, Height: 4, Depth: 4096},
			category: InvalidArgument,
			want:     "3D texture size exceeded limit (4096 specified but limit is 2048)",
		},
		{
			name:     "array without layers",
			desc:     render.TextureDescriptor{Type: render.Texture2DArray, Width: 4, Height: 4},
			category: InvalidArgument,
			want:     "number of texture layers must not be zero for array textures",
		},
		{
			name:     "cube array counts faces",
			desc:     render.TextureDescriptor{Type: render.TextureCubeArray, Width: 4, Height: 4, Layers: 50},
			category: InvalidArgument,
			want:     "number of texture layers exceeded limit (300 specified but limit is 256)",
		},
		{
			name:     "layers on non-array",
			desc:     render.TextureDescriptor{Type: render.Texture2D, Width: 4, Height: 4, Layers: 3},
			category: ImproperArgument,
			want:     "texture layers is greater than 1 but no array texture is specified",
		},
		{
			name:     "too many mips",
			desc:     render.TextureDescriptor{Type: render.Texture2D, Width: 8, Height: 8, MipLevels: 5},
			category: InvalidArgument,
			want:     "number of MIP levels exceeded limit (5 specified but limit is 4)",
		},
		{
			name:     "zero samples",
			desc:     render.TextureDescriptor{Type: render.Texture2DMS, Width: 4, Height: 4},
			category: InvalidArgument,
			want:     "number of samples must not be zero",
		},
		{
			name:     "samples limit",
			desc:     render.TextureDescriptor{Type: render.Texture2DMS, Width: 4, Height: 4, Samples: 8},
			category: InvalidArgument,
			want:     "number of samples exceeded limit (8 specified but limit is 4)",
		},
		{
			name:     "samples not power of two",
			desc:     render.TextureDescriptor{Type: render.Texture2DMS, Width: 4, Height: 4, Samples: 3},
			category: ImproperArgument,
			want:     "number of samples is not a power of two (3 specified)",
		},
		{
			name:     "multi-sample mips",
			desc:     render.TextureDescriptor{Type: render.Texture2DMS, Width: 4, Height: 4, Samples: 4, MipLevels: 2},
			category: InvalidArgument,
			want:     "multi-sample textures must have exactly one MIP level",
		},
		{
			name: "multi-sample generate mips",
			desc: render.TextureDescriptor{
				Type: render.Texture2DMS, Width: 4, Height: 4, Samples: 4,
				Flags: render.TextureFlagGenerateMips,
			},
			category: ImproperArgument,
			want:     "GenerateMips flag is ignored for multi-sample textures",
		},
		{
			name:     "invalid type",
			desc:     render.TextureDescriptor{Type: 99, Width: 4, Height: 4},
			category: InvalidArgument,
			want:     "invalid texture type",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, native, rec := newTestSystem(t)
			mustTexture(t, r, &tt.desc)
			if !rec.Contains(tt.category, tt.want) {
				t.Errorf("missing %s report %q, got %v", tt.category, tt.want, rec.Reports())
			}
			if native.Count("CreateTexture") != 1 {
				t.Error("texture creation was not forwarded")
			}
		})
	}
}

func TestCreateTextureValid(t *testing.T) {
	tests := []render.TextureDescriptor{
		{Type: render.Texture1D, Width: 64},
		{Type: render.Texture2D, Width: 64, Height: 32, MipLevels: 7},
		{Type: render.Texture3D, Width: 8, Height: 8, Depth: 8},
		{Type: render.TextureCube, Width: 16, Height: 16},
		{Type: render.Texture2DArray, Width: 16, Height: 16, Layers: 4},
		{Type: render.TextureCubeArray, Width: 16, Height: 16, Layers: 2},
		{Type: render.Texture2DMS, Width: 16, Height: 16, Samples: 4},
	}
	for _, desc := range tests {
		t.Run(desc.Type.String(), func(t *testing.T) {
			r, _, rec := newTestSystem(t)
			mustTexture(t, r, &desc)
			if n := len(rec.Reports()); n != 0 {
				t.Errorf("valid texture produced %d reports: %v", n, rec.Reports())
			}
		})
	}
}

func TestCreateTextureFeatureGating(t *testing.T) {
	tests := []struct {
		desc    render.TextureDescriptor
		feature render.Features
		want    string
	}{
		{render.TextureDescriptor{Type: render.Texture3D, Width: 4, Height: 4, Depth: 4}, render.Feature3DTextures, "3D textures not supported"},
		{render.TextureDescriptor{Type: render.TextureCube, Width: 4, Height: 4}, render.FeatureCubeTextures, "cube textures not supported"},
		{render.TextureDescriptor{Type: render.Texture2DArray, Width: 4, Height: 4, Layers: 2}, render.FeatureArrayTextures, "array textures not supported"},
		{render.TextureDescriptor{Type: render.TextureCubeArray, Width: 4, Height: 4, Layers: 2}, render.FeatureCubeArrayTextures, "cube array textures not supported"},
		{render.TextureDescriptor{Type: render.Texture2DMS, Width: 4, Height: 4, Samples: 4}, render.FeatureMultiSampleTextures, "multi-sample textures not supported"},
		{render.TextureDescriptor{Type: render.Texture1DArray, Width: 4, Layers: 2}, render.FeatureArrayTextures, "array textures not supported"},
		{render.TextureDescriptor{Type: render.Texture2DMSArray, Width: 4, Height: 4, Layers: 2, Samples: 4}, render.FeatureMultiSampleTextures, "multi-sample textures not supported"},
		{render.TextureDescriptor{Type: render.Texture2DMSArray, Width: 4, Height: 4, Layers: 2, Samples: 4}, render.FeatureArrayTextures, "array textures not supported"},
	}
	for _, tt := range tests {
		t.Run(tt.desc.Type.String(), func(t *testing.T) {
			native := rendertest.New()
			native.Caps.Features &^= tt.feature
			rec := &Recorder{}
			r := New(native, WithDebugger(rec))

			mustTexture(t, r, &tt.desc)
			if !rec.Contains(UnsupportedFeature, tt.want) {
				t.Errorf("missing report %q, got %v", tt.want, rec.Reports())
			}
		})
	}
}

func TestCreateTextureImageSize(t *testing.T) {
	r, _, rec := newTestSystem(t)
	desc := &render.TextureDescriptor{Type: render.Texture2D, Width: 4, Height: 4}
	img := &render.SrcImageDescriptor{Format: render.ImageFormatRGBA, DataType: render.DataTypeUInt8, Data: make([]byte, 32)}

	if _, err := r.CreateTexture(desc, img); err != nil {
		t.Fatalf("CreateTexture: %v", err)
	}
	if !rec.Contains(InvalidArgument, "image data size too small for texture (32 specified but required is 64)") {
		t.Errorf("missing image size report, got %v", rec.Reports())
	}
}

func TestCreateTextureImageSizeArrays(t *testing.T) {
	tests := []struct {
		desc render.TextureDescriptor
		size int
		want string
	}{
		{
			desc: render.TextureDescriptor{Type: render.Texture1DArray, Width: 4, Layers: 4},
			size: 16,
			want: "image data size too small for texture (16 specified but required is 64)",
		},
		{
			desc: render.TextureDescriptor{Type: render.Texture2DArray, Width: 4, Height: 4, Layers: 4},
			size: 64,
			want: "image data size too small for texture (64 specified but required is 256)",
		},
		{
			desc: render.TextureDescriptor{Type: render.TextureCubeArray, Width: 4, Height: 4, Layers: 4},
			size: 384,
			want: "image data size too small for texture (384 specified but required is 1536)",
		},
		{
			desc: render.TextureDescriptor{Type: render.Texture2DMSArray, Width: 4, Height: 4, Layers: 4, Samples: 4},
			size: 64,
			want: "image data size too small for texture (64 specified but required is 256)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.desc.Type.String(), func(t *testing.T) {
			r, _, rec := newTestSystem(t)
			img := &render.SrcImageDescriptor{Format: render.ImageFormatRGBA, DataType: render.DataTypeUInt8, Data: make([]byte, tt.size)}
			if _, err := r.CreateTexture(&tt.desc, img); err != nil {
				t.Fatalf("CreateTexture: %v", err)
			}
			if !rec.Contains(InvalidArgument, tt.want) {
				t.Errorf("missing report %q, got %v", tt.want, rec.Reports())
			}

			rec.Reset()
			img.Data = make([]byte, tt.size*4)
			if _, err := r.CreateTexture(&tt.desc, img); err != nil {
				t.Fatalf("CreateTexture: %v", err)
			}
			if rec.Contains(InvalidArgument, "image data size too small") {
				t.Errorf("unexpected size report for full data, got %v", rec.Reports())
			}
		})
	}
}

func TestMipLevelLimitWithoutLevels(t *testing.T) {
	r, _, rec := newTestSystem(t)
	tex := mustTexture(t, r, &render.TextureDescriptor{Type: render.Texture2D})
	dst := &render.DstImageDescriptor{Format: render.ImageFormatRGBA, DataType: render.DataTypeUInt8, Data: make([]byte, 4)}

	rec.Reset()
	if err := r.ReadTexture(tex, 0, dst); err != nil {
		t.Fatalf("ReadTexture: %v", err)
	}
	if !rec.Contains(InvalidArgument, "mip level out of bounds (0 specified but limit is 0)") {
		t.Errorf("missing clamped limit report, got %v", rec.Reports())
	}
	if rec.Contains(InvalidArgument, "limit is -1") {
		t.Errorf("limit underflowed, got %v", rec.Reports())
	}
}

func TestWriteTextureRegion(t *testing.T) {
	r, native, rec := newTestSystem(t)
	tex := mustTexture(t, r, &render.TextureDescriptor{Type: render.Texture2D, Width: 4, Height: 4})
	img := &render.SrcImageDescriptor{Format: render.ImageFormatRGBA, DataType: render.DataTypeUInt8, Data: make([]byte, 64)}

	region := &render.TextureRegion{
		Offset: gputypes.Origin3D{X: 2},
		Extent: gputypes.Extent3D{Width: 4, Height: 4, DepthOrArrayLayers: 1},
	}
	if err := r.WriteTexture(tex, region, img); err != nil {
		t.Fatalf("WriteTexture: %v", err)
	}
	if !rec.Contains(InvalidArgument, "texture region exceeds MIP level 0 (4x4x1)") {
		t.Errorf("missing region report, got %v", rec.Reports())
	}

	rec.Reset()
	region.MipLevel = 3
	if err := r.WriteTexture(tex, region, img); err != nil {
		t.Fatalf("WriteTexture: %v", err)
	}
	if !rec.Contains(InvalidArgument, "mip level out of bounds (3 specified but limit is 2)") {
		t.Errorf("missing mip report, got %v", rec.Reports())
	}
	if got := native.Count("WriteTexture"); got != 2 {
		t.Errorf("forwarded WriteTexture calls = %d, want 2", got)
	}

	if err := r.WriteTexture(tex, nil, img); err == nil {
		t.Error("WriteTexture with nil region succeeded")
	}
}

func TestReadTexture(t *testing.T) {
	r, _, rec := newTestSystem(t)
	tex := mustTexture(t, r, &render.TextureDescriptor{Type: render.Texture2D, Width: 8, Height: 8})
	dst := &render.DstImageDescriptor{Format: render.ImageFormatRGBA, DataType: render.DataTypeUInt8, Data: make([]byte, 16)}

	if err := r.ReadTexture(tex, 1, dst); err != nil {
		t.Fatalf("ReadTexture: %v", err)
	}
	if !rec.Contains(InvalidArgument, "image data size too small for texture (16 specified but required is 64)") {
		t.Errorf("missing size report, got %v", rec.Reports())
	}

	rec.Reset()
	if err := r.ReadTexture(tex, 4, dst); err != nil {
		t.Fatalf("ReadTexture: %v", err)
	}
	if !rec.Contains(InvalidArgument, "mip level out of bounds (4 specified but limit is 3)") {
		t.Errorf("missing mip report, got %v", rec.Reports())
	}
}

func TestGenerateMips(t *testing.T) {
	r, native, rec := newTestSystem(t)
	plain := mustTexture(t, r, &render.TextureDescriptor{Type: render.Texture2D, Width: 8, Height: 8})
	if err := r.GenerateMips(plain); err != nil {
		t.Fatalf("GenerateMips: %v", err)
	}
	if !rec.Contains(InvalidState, "texture was not created with TextureFlagGenerateMips") {
		t.Errorf("missing flag report, got %v", rec.Reports())
	}

	rec.Reset()
	tex := mustTexture(t, r, &render.TextureDescriptor{
		Type: render.Texture2D, Width: 8, Height: 8, Flags: render.TextureFlagGenerateMips,
	})
	if err := r.GenerateMipRange(tex, 2, 5, 0, 1); err != nil {
		t.Fatalf("GenerateMipRange: %v", err)
	}
	if !rec.Contains(InvalidArgument, "MIP level out of range for texture (7 specified but limit is 4)") {
		t.Errorf("missing range report, got %v", rec.Reports())
	}
	if native.Count("GenerateMipRange") != 1 {
		t.Error("GenerateMipRange was not forwarded")
	}

	rec.Reset()
	if err := r.GenerateMipRange(tex, 0, 0, 0, 1); err != nil {
		t.Fatalf("GenerateMipRange: %v", err)
	}
	if !rec.Contains(PointlessOperation, "numMipLevels is zero") {
		t.Errorf("missing zero range report, got %v", rec.Reports())
	}

	rec.Reset()
	if err := r.GenerateMipRange(tex, 0, 1, 1, 1); err != nil {
		t.Fatalf("GenerateMipRange: %v", err)
	}
	if !rec.Contains(InvalidArgument, "array layer out of range for non-array texture type") {
		t.Errorf("missing layer report, got %v", rec.Reports())
	}
}

func TestTextureArray(t *testing.T) {
	r, native, _ := newTestSystem(t)
	a := mustTexture(t, r, &render.TextureDescriptor{Type: render.Texture2D, Width: 4, Height: 4})
	b := mustTexture(t, r, &render.TextureDescriptor{Type: render.Texture2D, Width: 4, Height: 4})

	arr, err := r.CreateTextureArray([]render.Texture{a, b})
	if err != nil {
		t.Fatalf("CreateTextureArray: %v", err)
	}
	call, _ := native.Last("CreateTextureArray")
	for i, m := range call.Args[0].([]render.Texture) {
		if _, ok := m.(*rendertest.Texture); !ok {
			t.Errorf("member %d forwarded as %T", i, m)
		}
	}
	if err := r.ReleaseTextureArray(arr); err != nil {
		t.Fatalf("ReleaseTextureArray: %v", err)
	}
	if err := r.ReleaseTexture(a); err != nil {
		t.Fatalf("ReleaseTexture: %v", err)
	}
	if _, err := r.CreateTextureArray([]render.Texture{a, b}); err == nil {
		t.Error("CreateTextureArray with released member succeeded")
	}
}
