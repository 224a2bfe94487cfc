// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package debug

import (
	"github.com/gogpu/gfx/render"
)

// spirvMagic is the first word of every SPIR-V module.
const spirvMagic = 0x07230203

// CreateShader implements render.System.
func (r *RenderSystem) CreateShader(desc *render.ShaderDescriptor) (render.Shader, error) {
	const op = OpCreateShader
	if desc == nil {
		return nil, r.nilArgument(op, "shader descriptor")
	}
	if r.sink.validating() {
		r.validateShaderDesc(op, desc)
	}

	native, err := r.instance.CreateShader(desc)
	if err != nil {
		return nil, err
	}
	e := shaderEntry{native: native, desc: *desc}
	e.desc.Source, e.desc.SPIRV = "", nil
	h := r.shaders.insert(e)
	r.sink.count(op)
	slogger().Debug("shader created", "type", desc.Type.String(), "label", desc.Label)
	return &Shader{ref: ref{owner: r, h: h}, typ: desc.Type}, nil
}

func (r *RenderSystem) validateShaderDesc(op Op, desc *render.ShaderDescriptor) {
	switch desc.Type {
	case render.ShaderTypeVertex, render.ShaderTypeFragment:
	case render.ShaderTypeTessControl, render.ShaderTypeTessEvaluation:
		r.requireFeature(op, render.FeatureTessellationShaders)
	case render.ShaderTypeGeometry:
		r.requireFeature(op, render.FeatureGeometryShaders)
	case render.ShaderTypeCompute:
		r.requireFeature(op, render.FeatureComputeShaders)
	default:
		r.sink.post(op, InvalidArgument, "invalid shader type: %s", desc.Type)
	}

	switch {
	case desc.Source == "" && len(desc.SPIRV) == 0:
		r.sink.post(op, InvalidArgument, "shader source must not be empty")
	case desc.Source != "" && len(desc.SPIRV) > 0:
		r.sink.post(op, VaryingBehavior, "both WGSL source and SPIR-V specified for %s shader", desc.Type)
	}
	if len(desc.SPIRV) > 0 && desc.SPIRV[0] != spirvMagic {
		r.sink.post(op, InvalidArgument, "invalid SPIR-V magic number (0x%08x)", desc.SPIRV[0])
	}
}

// CreateShaderProgram implements render.System.
func (r *RenderSystem) CreateShaderProgram(desc *render.ShaderProgramDescriptor) (render.ShaderProgram, error) {
	const op = OpCreateShaderProgram
	if desc == nil {
		return nil, r.nilArgument(op, "shader program descriptor")
	}

	nd := render.ShaderProgramDescriptor{Label: desc.Label, VertexFormats: desc.VertexFormats}
	var stages []render.ShaderType
	for _, slot := range desc.Stages() {
		d, e, err := r.shader(op, slot.Shader)
		if err != nil {
			return nil, err
		}
		if r.sink.validating() && d.typ != slot.Stage {
			r.sink.post(op, InvalidArgument, "%s shader assigned to %s stage", d.typ, slot.Stage)
		}
		switch slot.Stage {
		case render.ShaderTypeVertex:
			nd.Vertex = e.native
		case render.ShaderTypeTessControl:
			nd.TessControl = e.native
		case render.ShaderTypeTessEvaluation:
			nd.TessEvaluation = e.native
		case render.ShaderTypeGeometry:
			nd.Geometry = e.native
		case render.ShaderTypeFragment:
			nd.Fragment = e.native
		case render.ShaderTypeCompute:
			nd.Compute = e.native
		}
		stages = append(stages, slot.Stage)
	}
	if r.sink.validating() {
		r.validateShaderProgram(op, desc)
	}

	native, err := r.instance.CreateShaderProgram(&nd)
	if err != nil {
		return nil, err
	}
	h := r.shaderPrograms.insert(shaderProgramEntry{native: native, stages: stages})
	r.sink.count(op)
	return &ShaderProgram{ref: ref{owner: r, h: h}}, nil
}

func (r *RenderSystem) validateShaderProgram(op Op, desc *render.ShaderProgramDescriptor) {
	graphics := desc.Vertex != nil || desc.TessControl != nil || desc.TessEvaluation != nil ||
		desc.Geometry != nil || desc.Fragment != nil
	switch {
	case desc.Compute != nil && graphics:
		r.sink.post(op, InvalidArgument, "cannot mix compute shader with graphics shaders")
	case desc.Compute == nil && desc.Vertex == nil:
		r.sink.post(op, InvalidArgument, "shader program must have a vertex or compute shader")
	}
	if (desc.TessControl == nil) != (desc.TessEvaluation == nil) {
		r.sink.post(op, InvalidArgument,
			"tessellation control and tessellation evaluation shaders must be specified together")
	}
	if desc.Compute != nil && len(desc.VertexFormats) > 0 {
		r.sink.post(op, PointlessOperation, "vertex formats are ignored by compute shader programs")
	}
}

// ReleaseShader implements render.System.
func (r *RenderSystem) ReleaseShader(s render.Shader) error {
	const op = OpReleaseShader
	d, e, err := r.shader(op, s)
	if err != nil {
		return err
	}
	if err := r.instance.ReleaseShader(e.native); err != nil {
		return err
	}
	r.shaders.remove(d.h)
	r.sink.count(op)
	return nil
}

// ReleaseShaderProgram implements render.System.
func (r *RenderSystem) ReleaseShaderProgram(p render.ShaderProgram) error {
	const op = OpReleaseShaderProgram
	d, e, err := r.shaderProgram(op, p)
	if err != nil {
		return err
	}
	if err := r.instance.ReleaseShaderProgram(e.native); err != nil {
		return err
	}
	r.shaderPrograms.remove(d.h)
	r.sink.count(op)
	return nil
}
