// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"

	"github.com/gogpu/gputypes"
)

// ShaderType is a programmable pipeline stage.
type ShaderType uint8

const (
	ShaderTypeVertex ShaderType = iota + 1
	ShaderTypeTessControl
	ShaderTypeTessEvaluation
	ShaderTypeGeometry
	ShaderTypeFragment
	ShaderTypeCompute
)

// String returns the stage name used in diagnostics.
func (t ShaderType) String() string {
	switch t {
	case ShaderTypeVertex:
		return "vertex"
	case ShaderTypeTessControl:
		return "tessellation-control"
	case ShaderTypeTessEvaluation:
		return "tessellation-evaluation"
	case ShaderTypeGeometry:
		return "geometry"
	case ShaderTypeFragment:
		return "fragment"
	case ShaderTypeCompute:
		return "compute"
	default:
		return fmt.Sprintf("ShaderType(%d)", t)
	}
}

// Stage returns the WebGPU stage flag of the shader type, or zero when
// WebGPU has no equivalent stage.
func (t ShaderType) Stage() gputypes.ShaderStage {
	switch t {
	case ShaderTypeVertex:
		return gputypes.ShaderStageVertex
	case ShaderTypeFragment:
		return gputypes.ShaderStageFragment
	case ShaderTypeCompute:
		return gputypes.ShaderStageCompute
	default:
		return 0
	}
}

// ShaderDescriptor describes a shader stage to create.
// Exactly one of Source and SPIRV is expected to be set.
type ShaderDescriptor struct {
	// Label is an optional debug label.
	Label string

	// Type is the shader stage.
	Type ShaderType

	// Source is WGSL source code.
	Source string

	// SPIRV is a precompiled SPIR-V module.
	SPIRV []uint32

	// EntryPoint is the entry function. Empty means "main".
	EntryPoint string
}

// ShaderProgramDescriptor links shader stages. Each field takes a shader of
// the matching type or nil.
type ShaderProgramDescriptor struct {
	// Label is an optional debug label.
	Label string

	Vertex         Shader
	TessControl    Shader
	TessEvaluation Shader
	Geometry       Shader
	Fragment       Shader
	Compute        Shader

	// VertexFormats describe the vertex buffers consumed by the vertex stage.
	VertexFormats []VertexFormat
}

// Stages returns the non-nil shaders of the program with the stage each one
// is assigned to.
func (d *ShaderProgramDescriptor) Stages() []ShaderSlot {
	all := []ShaderSlot{
		{ShaderTypeVertex, d.Vertex},
		{ShaderTypeTessControl, d.TessControl},
		{ShaderTypeTessEvaluation, d.TessEvaluation},
		{ShaderTypeGeometry, d.Geometry},
		{ShaderTypeFragment, d.Fragment},
		{ShaderTypeCompute, d.Compute},
	}
	slots := all[:0]
	for _, s := range all {
		if s.Shader != nil {
			slots = append(slots, s)
		}
	}
	return slots
}

// ShaderSlot is one stage assignment of a shader program.
type ShaderSlot struct {
	Stage  ShaderType
	Shader Shader
}
