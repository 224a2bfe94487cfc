// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"
	"math/bits"

	"github.com/gogpu/gputypes"
)

// TextureType is the dimensionality and layout of a texture.
type TextureType uint8

const (
	Texture1D TextureType = iota + 1
	Texture2D
	Texture3D
	TextureCube
	Texture1DArray
	Texture2DArray
	TextureCubeArray
	Texture2DMS
	Texture2DMSArray
)

var textureTypeNames = [...]string{
	Texture1D:        "1D",
	Texture2D:        "2D",
	Texture3D:        "3D",
	TextureCube:      "cube",
	Texture1DArray:   "1D array",
	Texture2DArray:   "2D array",
	TextureCubeArray: "cube array",
	Texture2DMS:      "2D multi-sample",
	Texture2DMSArray: "2D multi-sample array",
}

// String returns the texture type name used in diagnostics.
func (t TextureType) String() string {
	if t > 0 && int(t) < len(textureTypeNames) {
		return textureTypeNames[t]
	}
	return fmt.Sprintf("TextureType(%d)", t)
}

// IsArray reports whether the type has array layers.
func (t TextureType) IsArray() bool {
	switch t {
	case Texture1DArray, Texture2DArray, TextureCubeArray, Texture2DMSArray:
		return true
	default:
		return false
	}
}

// IsCube reports whether the type is a cube or cube array.
func (t TextureType) IsCube() bool {
	return t == TextureCube || t == TextureCubeArray
}

// IsMultiSample reports whether the type is multi-sampled.
func (t TextureType) IsMultiSample() bool {
	return t == Texture2DMS || t == Texture2DMSArray
}

// TextureFlags are optional texture creation flags.
type TextureFlags uint32

const (
	// TextureFlagGenerateMips allows GenerateMips and GenerateMipRange on the texture.
	TextureFlagGenerateMips TextureFlags = 1 << iota
)

// TextureDescriptor describes a texture to create.
type TextureDescriptor struct {
	// Label is an optional debug label.
	Label string

	// Type is the texture type.
	Type TextureType

	// Format is the texel format.
	Format gputypes.TextureFormat

	// Usage holds the WebGPU usage flags.
	Usage gputypes.TextureUsage

	// Flags are optional creation flags.
	Flags TextureFlags

	// Width is the size in texels. Used by every type.
	Width uint32

	// Height is the size in texels. Used by 2D, 3D and cube types.
	Height uint32

	// Depth is the size in texels. Used by Texture3D only.
	Depth uint32

	// Layers is the array layer count of array types. For TextureCubeArray
	// it counts cubes, not faces.
	Layers uint32

	// MipLevels is the number of MIP levels. Zero means a full MIP chain.
	MipLevels uint32

	// Samples is the sample count of multi-sample types.
	Samples uint32
}

// NumMipLevels returns the length of a full MIP chain for the given extent.
func NumMipLevels(width, height, depth uint32) uint32 {
	m := max(width, height, depth)
	if m == 0 {
		return 0
	}
	return uint32(bits.Len32(m))
}

// MipLevelCount returns the effective MIP level count of the descriptor.
func (d *TextureDescriptor) MipLevelCount() uint32 {
	if d.MipLevels != 0 {
		return d.MipLevels
	}
	if d.Type.IsMultiSample() {
		return 1
	}
	switch d.Type {
	case Texture1D, Texture1DArray:
		return NumMipLevels(d.Width, 1, 1)
	case Texture3D:
		return NumMipLevels(d.Width, d.Height, d.Depth)
	default:
		return NumMipLevels(d.Width, d.Height, 1)
	}
}

// ArrayLayerCount returns the number of array layers addressable by
// GenerateMipRange. Non-array types have one layer.
func (d *TextureDescriptor) ArrayLayerCount() uint32 {
	if d.Type.IsArray() {
		return d.Layers
	}
	return 1
}

// MipExtent returns the size of a MIP level. Dimensions not used by the
// texture type are 1.
func (d *TextureDescriptor) MipExtent(level uint32) gputypes.Extent3D {
	w, h, dep := d.Width, uint32(1), uint32(1)
	switch d.Type {
	case Texture1D, Texture1DArray:
	case Texture3D:
		h, dep = d.Height, d.Depth
	default:
		h = d.Height
	}
	return gputypes.Extent3D{
		Width:              max(w>>level, 1),
		Height:             max(h>>level, 1),
		DepthOrArrayLayers: max(dep>>level, 1),
	}
}

// TextureRegion selects a sub-region of one MIP level.
// For array types Offset.Z is the first layer and Extent.DepthOrArrayLayers
// the layer count.
type TextureRegion struct {
	MipLevel uint32
	Offset   gputypes.Origin3D
	Extent   gputypes.Extent3D
}

// SrcImageDescriptor is CPU-side image data uploaded to a texture.
type SrcImageDescriptor struct {
	Format   ImageFormat
	DataType DataType
	Data     []byte
}

// DstImageDescriptor is CPU-side storage a texture is read back into.
type DstImageDescriptor struct {
	Format   ImageFormat
	DataType DataType
	Data     []byte
}
