// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"

	"github.com/gogpu/gputypes"
)

// PrimitiveTopology is the primitive assembly mode of a graphics pipeline.
type PrimitiveTopology uint8

const (
	TopologyTriangleList PrimitiveTopology = iota
	TopologyTriangleStrip
	TopologyTriangleFan
	TopologyPointList
	TopologyLineList
	TopologyLineStrip
	TopologyLineLoop
)

// String returns the topology name used in diagnostics.
func (t PrimitiveTopology) String() string {
	switch t {
	case TopologyTriangleList:
		return "triangle list"
	case TopologyTriangleStrip:
		return "triangle strip"
	case TopologyTriangleFan:
		return "triangle fan"
	case TopologyPointList:
		return "point list"
	case TopologyLineList:
		return "line list"
	case TopologyLineStrip:
		return "line strip"
	case TopologyLineLoop:
		return "line loop"
	default:
		return fmt.Sprintf("PrimitiveTopology(%d)", t)
	}
}

// DepthDescriptor is the depth test state.
type DepthDescriptor struct {
	TestEnabled  bool
	WriteEnabled bool
	Compare      gputypes.CompareFunction
	Format       gputypes.TextureFormat
}

// RasterizerDescriptor is the rasterizer state.
type RasterizerDescriptor struct {
	CullMode                  gputypes.CullMode
	FrontFace                 gputypes.FrontFace
	ConservativeRasterization bool

	// Samples is the multi-sample count. Zero and one mean no multi-sampling.
	Samples uint32
}

// BlendDescriptor is the blend state of all color targets.
type BlendDescriptor struct {
	AlphaToCoverage bool
	Targets         []gputypes.ColorTargetState
}

// GraphicsPipelineDescriptor describes a graphics pipeline to create.
type GraphicsPipelineDescriptor struct {
	// Label is an optional debug label.
	Label string

	// ShaderProgram is required.
	ShaderProgram ShaderProgram

	// RenderTarget is the target the pipeline renders into, or nil for the
	// render context.
	RenderTarget RenderTarget

	// PipelineLayout is optional.
	PipelineLayout PipelineLayout

	PrimitiveTopology PrimitiveTopology
	Depth             DepthDescriptor
	Rasterizer        RasterizerDescriptor
	Blend             BlendDescriptor
}

// ComputePipelineDescriptor describes a compute pipeline to create.
type ComputePipelineDescriptor struct {
	// Label is an optional debug label.
	Label string

	// ShaderProgram is required and must hold a compute shader.
	ShaderProgram ShaderProgram

	// PipelineLayout is optional.
	PipelineLayout PipelineLayout
}
