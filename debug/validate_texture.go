// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package debug

import (
	"math/bits"

	"github.com/gogpu/gfx/render"
)

// textureFaces is 6 for cube types and 1 otherwise.
func textureFaces(desc *render.TextureDescriptor) uint32 {
	if desc.Type.IsCube() {
		return 6
	}
	return 1
}

// mipTexels returns the texel count of one MIP level across every layer and face.
func mipTexels(desc *render.TextureDescriptor, level uint32) uint64 {
	ext := desc.MipExtent(level)
	return uint64(ext.Width) * uint64(ext.Height) * uint64(ext.DepthOrArrayLayers) *
		uint64(desc.ArrayLayerCount()) * uint64(textureFaces(desc))
}

func (r *RenderSystem) validateTextureDesc(op Op, desc *render.TextureDescriptor) {
	switch desc.Type {
	case render.Texture1D:
		r.validateTextureSize1D(op, desc.Width)
		r.validateNonArrayLayers(op, desc.Layers)

	case render.Texture2D:
		r.validateTextureSize2D(op, desc.Width, desc.Height)
		r.validateNonArrayLayers(op, desc.Layers)

	case render.Texture3D:
		r.requireFeature(op, render.Feature3DTextures)
		r.validateTextureSize3D(op, desc.Width, desc.Height, desc.Depth)
		r.validateNonArrayLayers(op, desc.Layers)

	case render.TextureCube:
		r.requireFeature(op, render.FeatureCubeTextures)
		r.validateTextureSizeCube(op, desc.Width, desc.Height)
		r.validateNonArrayLayers(op, desc.Layers)

	case render.Texture1DArray:
		r.requireFeature(op, render.FeatureArrayTextures)
		r.validateTextureSize1D(op, desc.Width)
		r.validateArrayLayers(op, uint64(desc.Layers))

	case render.Texture2DArray:
		r.requireFeature(op, render.FeatureArrayTextures)
		r.validateTextureSize2D(op, desc.Width, desc.Height)
		r.validateArrayLayers(op, uint64(desc.Layers))

	case render.TextureCubeArray:
		r.requireFeature(op, render.FeatureCubeArrayTextures)
		r.validateTextureSizeCube(op, desc.Width, desc.Height)
		r.validateArrayLayers(op, uint64(desc.Layers)*6)

	case render.Texture2DMS:
		r.requireFeature(op, render.FeatureMultiSampleTextures)
		r.validateTextureSize2D(op, desc.Width, desc.Height)
		r.validateNonArrayLayers(op, desc.Layers)
		r.validateSamples(op, desc.Samples)

	case render.Texture2DMSArray:
		r.requireFeature(op, render.FeatureMultiSampleTextures)
		r.requireFeature(op, render.FeatureArrayTextures)
		r.validateTextureSize2D(op, desc.Width, desc.Height)
		r.validateArrayLayers(op, uint64(desc.Layers))
		r.validateSamples(op, desc.Samples)

	default:
		r.sink.post(op, InvalidArgument, "invalid texture type: %s", desc.Type)
		return
	}

	if desc.Type.IsMultiSample() {
		if desc.MipLevels > 1 {
			r.sink.post(op, InvalidArgument, "multi-sample textures must have exactly one MIP level")
		}
		if desc.Flags&render.TextureFlagGenerateMips != 0 {
			r.sink.post(op, ImproperArgument, "GenerateMips flag is ignored for multi-sample textures")
		}
		return
	}

	full := desc.MipLevelCount()
	desc0 := *desc
	desc0.MipLevels = 0
	if limit := desc0.MipLevelCount(); full > limit {
		r.sink.post(op, InvalidArgument,
			"number of MIP levels exceeded limit (%d specified but limit is %d)", full, limit)
	}
}

func (r *RenderSystem) validateTextureSize1D(op Op, width uint32) {
	if width == 0 {
		r.sink.post(op, InvalidArgument, "texture size must not be empty")
	}
	if limit := r.caps.Limits.MaxTextureDimension1D; width > limit {
		r.sink.post(op, InvalidArgument, "1D texture size exceeded limit (%d specified but limit is %d)", width, limit)
	}
}

func (r *RenderSystem) validateTextureSize2D(op Op, width, height uint32) {
	if width == 0 || height == 0 {
		r.sink.post(op, InvalidArgument, "texture size must not be empty")
	}
	limit := r.caps.Limits.MaxTextureDimension2D
	for _, v := range [...]uint32{width, height} {
		if v > limit {
			r.sink.post(op, InvalidArgument, "2D texture size exceeded limit (%d specified but limit is %d)", v, limit)
		}
	}
}

func (r *RenderSystem) validateTextureSize3D(op Op, width, height, depth uint32) {
	if width == 0 || height == 0 || depth == 0 {
		r.sink.post(op, InvalidArgument, "texture size must not be empty")
	}
	limit := r.caps.Limits.MaxTextureDimension3D
	for _, v := range [...]uint32{width, height, depth} {
		if v > limit {
			r.sink.post(op, InvalidArgument, "3D texture size exceeded limit (%d specified but limit is %d)", v, limit)
		}
	}
}

func (r *RenderSystem) validateTextureSizeCube(op Op, width, height uint32) {
	if width == 0 || height == 0 {
		r.sink.post(op, InvalidArgument, "texture size must not be empty")
	}
	limit := r.caps.Limits.MaxCubeTextureSize
	for _, v := range [...]uint32{width, height} {
		if v > limit {
			r.sink.post(op, InvalidArgument, "cube texture size exceeded limit (%d specified but limit is %d)", v, limit)
		}
	}
	if width != height {
		r.sink.post(op, InvalidArgument, "width and height of cube textures must be equal")
	}
}

func (r *RenderSystem) validateArrayLayers(op Op, layers uint64) {
	if layers == 0 {
		r.sink.post(op, InvalidArgument, "number of texture layers must not be zero for array textures")
	}
	if limit := uint64(r.caps.Limits.MaxTextureArrayLayers); layers > limit {
		r.sink.post(op, InvalidArgument,
			"number of texture layers exceeded limit (%d specified but limit is %d)", layers, limit)
	}
}

func (r *RenderSystem) validateNonArrayLayers(op Op, layers uint32) {
	if layers > 1 {
		r.sink.post(op, ImproperArgument, "texture layers is greater than 1 but no array texture is specified")
	}
}

func (r *RenderSystem) validateSamples(op Op, samples uint32) {
	if samples == 0 {
		r.sink.post(op, InvalidArgument, "number of samples must not be zero for multi-sample textures")
		return
	}
	if limit := r.caps.Limits.MaxSamples; samples > limit {
		r.sink.post(op, InvalidArgument,
			"number of samples exceeded limit (%d specified but limit is %d)", samples, limit)
	}
	if bits.OnesCount32(samples) != 1 {
		r.sink.post(op, ImproperArgument, "number of samples is not a power of two (%d specified)", samples)
	}
}

// lastIndex returns the highest valid index for count elements, or 0 when
// there are none.
func lastIndex(count uint32) uint32 {
	if count == 0 {
		return 0
	}
	return count - 1
}

// validateMipLevel reports whether level addresses an existing MIP level.
func (r *RenderSystem) validateMipLevel(op Op, e *textureEntry, level uint32) bool {
	count := e.mipLevels()
	if level >= count {
		r.sink.post(op, InvalidArgument, "mip level out of bounds (%d specified but limit is %d)", level, lastIndex(count))
		return false
	}
	return true
}

func (r *RenderSystem) validateTextureRegion(op Op, e *textureEntry, region *render.TextureRegion) {
	ext := e.desc.MipExtent(region.MipLevel)
	depth := uint64(ext.DepthOrArrayLayers)
	if e.desc.Type.IsArray() {
		depth = uint64(e.layers()) * uint64(textureFaces(&e.desc))
	} else if e.desc.Type.IsCube() {
		depth = 6
	}
	o, x := region.Offset, region.Extent
	if x.Width == 0 || x.Height == 0 || x.DepthOrArrayLayers == 0 {
		r.sink.post(op, PointlessOperation, "texture region is empty")
	}
	if uint64(o.X)+uint64(x.Width) > uint64(ext.Width) ||
		uint64(o.Y)+uint64(x.Height) > uint64(ext.Height) ||
		uint64(o.Z)+uint64(x.DepthOrArrayLayers) > depth {
		r.sink.post(op, InvalidArgument, "texture region exceeds MIP level %d (%dx%dx%d)",
			region.MipLevel, ext.Width, ext.Height, depth)
	}
}

// validateImageDataSize checks that an image buffer holds texels texels of
// the given format and data type.
func (r *RenderSystem) validateImageDataSize(op Op, texels uint64, format render.ImageFormat, dataType render.DataType, size int, what string) {
	required := texels * uint64(format.Size()) * uint64(dataType.Size())
	if uint64(size) < required {
		r.sink.post(op, InvalidArgument,
			"image data size too small for %s (%d specified but required is %d)", what, size, required)
	}
}

func (r *RenderSystem) validateGenerateMips(op Op, e *textureEntry) {
	if e.desc.Flags&render.TextureFlagGenerateMips == 0 {
		r.sink.post(op, InvalidState,
			"cannot generate MIP-maps for texture without GenerateMips flag (texture was not created with TextureFlagGenerateMips)")
	}
}

func (r *RenderSystem) validateMipRange(op Op, e *textureEntry, base, count uint32) {
	if count == 0 {
		r.sink.post(op, PointlessOperation, "no MIP levels generated (numMipLevels is zero)")
		return
	}
	limit := e.mipLevels()
	if end := uint64(base) + uint64(count); end > uint64(limit) {
		r.sink.post(op, InvalidArgument,
			"MIP level out of range for texture (%d specified but limit is %d)", end, limit)
	}
}

func (r *RenderSystem) validateArrayLayerRange(op Op, e *textureEntry, base, count uint32) {
	if !e.desc.Type.IsArray() {
		if base > 0 || count > 1 {
			r.sink.post(op, InvalidArgument, "array layer out of range for non-array texture type")
		}
		return
	}
	limit := e.layers()
	if end := uint64(base) + uint64(count); end > uint64(limit) {
		r.sink.post(op, InvalidArgument,
			"array layer out of range for array texture (%d specified but limit is %d)", end, limit)
	}
}
