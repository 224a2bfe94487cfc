// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"strings"

	"github.com/gogpu/gputypes"
)

// Features is a set of optional renderer capabilities.
type Features uint32

const (
	// FeatureRenderTargets allows offscreen render targets.
	FeatureRenderTargets Features = 1 << iota

	// Feature3DTextures allows Texture3D.
	Feature3DTextures

	// FeatureCubeTextures allows TextureCube.
	FeatureCubeTextures

	// FeatureArrayTextures allows Texture1DArray, Texture2DArray and Texture2DMSArray.
	FeatureArrayTextures

	// FeatureCubeArrayTextures allows TextureCubeArray.
	FeatureCubeArrayTextures

	// FeatureMultiSampleTextures allows Texture2DMS and Texture2DMSArray.
	FeatureMultiSampleTextures

	// FeatureSamplers allows sampler objects separate from textures.
	FeatureSamplers

	// FeatureConstantBuffers allows constant (uniform) buffers.
	FeatureConstantBuffers

	// FeatureStorageBuffers allows storage buffers.
	FeatureStorageBuffers

	// FeatureStreamOutputs allows stream-output buffers.
	FeatureStreamOutputs

	// FeatureComputeShaders allows compute shaders and compute pipelines.
	FeatureComputeShaders

	// FeatureGeometryShaders allows geometry shaders.
	FeatureGeometryShaders

	// FeatureTessellationShaders allows tessellation control and evaluation shaders.
	FeatureTessellationShaders

	// FeatureInstancing allows instanced draw calls.
	FeatureInstancing

	// FeatureConservativeRasterization allows conservative rasterization in pipelines.
	FeatureConservativeRasterization
)

var featureNames = []struct {
	f    Features
	name string
}{
	{FeatureRenderTargets, "render targets"},
	{Feature3DTextures, "3D textures"},
	{FeatureCubeTextures, "cube textures"},
	{FeatureArrayTextures, "array textures"},
	{FeatureCubeArrayTextures, "cube array textures"},
	{FeatureMultiSampleTextures, "multi-sample textures"},
	{FeatureSamplers, "samplers"},
	{FeatureConstantBuffers, "constant buffers"},
	{FeatureStorageBuffers, "storage buffers"},
	{FeatureStreamOutputs, "stream outputs"},
	{FeatureComputeShaders, "compute shaders"},
	{FeatureGeometryShaders, "geometry shaders"},
	{FeatureTessellationShaders, "tessellation shaders"},
	{FeatureInstancing, "instancing"},
	{FeatureConservativeRasterization, "conservative rasterization"},
}

// Has reports whether every feature in f is present.
func (fs Features) Has(f Features) bool {
	return fs&f == f
}

// String returns the human-readable feature names separated by ", ".
// The names are the ones used in diagnostics, e.g. "3D textures".
func (fs Features) String() string {
	if fs == 0 {
		return "none"
	}
	var names []string
	for _, fn := range featureNames {
		if fs&fn.f != 0 {
			names = append(names, fn.name)
		}
	}
	return strings.Join(names, ", ")
}

// AllFeatures has every optional feature set.
const AllFeatures = FeatureRenderTargets | Feature3DTextures | FeatureCubeTextures |
	FeatureArrayTextures | FeatureCubeArrayTextures | FeatureMultiSampleTextures |
	FeatureSamplers | FeatureConstantBuffers | FeatureStorageBuffers | FeatureStreamOutputs |
	FeatureComputeShaders | FeatureGeometryShaders | FeatureTessellationShaders |
	FeatureInstancing | FeatureConservativeRasterization

// WebGPUFeatures is the feature set every WebGPU-class device provides.
const WebGPUFeatures = FeatureRenderTargets | Feature3DTextures | FeatureCubeTextures |
	FeatureArrayTextures | FeatureCubeArrayTextures | FeatureMultiSampleTextures |
	FeatureSamplers | FeatureConstantBuffers | FeatureStorageBuffers |
	FeatureComputeShaders | FeatureInstancing

// MaxBlendTargets is the number of color targets a pipeline can blend.
const MaxBlendTargets = 8

// ConstantBufferAlignment is the pack alignment of constant buffer sizes in bytes.
const ConstantBufferAlignment = 16

// Limits extends the WebGPU limits with values the renderer API needs.
//
// MaxBufferSize bounds every buffer; MaxUniformBufferBindingSize bounds
// constant buffers.
type Limits struct {
	gputypes.Limits

	// MaxCubeTextureSize is the maximum width and height of a cube face.
	MaxCubeTextureSize uint32

	// MaxSamples is the maximum sample count of a multi-sample texture.
	MaxSamples uint32
}

// DefaultLimits returns WebGPU default limits with cube and sample limits
// derived from them.
func DefaultLimits() Limits {
	return LimitsFrom(gputypes.DefaultLimits())
}

// LimitsFrom extends a WebGPU limit set.
func LimitsFrom(l gputypes.Limits) Limits {
	return Limits{
		Limits:             l,
		MaxCubeTextureSize: l.MaxTextureDimension2D,
		MaxSamples:         4,
	}
}

// RenderingCaps is the capability snapshot of a render system.
type RenderingCaps struct {
	// Features are the renderer-level optional features.
	Features Features

	// Limits are the numeric limits.
	Limits Limits

	// DeviceFeatures are the WebGPU device features (timestamp queries, ...).
	DeviceFeatures gputypes.Features
}
