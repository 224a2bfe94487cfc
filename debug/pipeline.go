// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package debug

import (
	"fmt"

	"github.com/gogpu/gfx/render"
)

// CreateGraphicsPipeline implements render.System.
func (r *RenderSystem) CreateGraphicsPipeline(desc *render.GraphicsPipelineDescriptor) (render.GraphicsPipeline, error) {
	const op = OpCreateGraphicsPipeline
	if desc == nil {
		return nil, r.nilArgument(op, "graphics pipeline descriptor")
	}
	if err := r.requireShaderProgram(op, desc.ShaderProgram); err != nil {
		return nil, err
	}

	nd := *desc
	_, pe, err := r.shaderProgram(op, desc.ShaderProgram)
	if err != nil {
		return nil, err
	}
	nd.ShaderProgram = pe.native

	var target targetInfo
	if desc.RenderTarget != nil {
		if target, err = r.anyTarget(op, desc.RenderTarget); err != nil {
			return nil, err
		}
		nd.RenderTarget = target.native
	}
	if desc.PipelineLayout != nil {
		_, le, err := r.pipelineLayout(op, desc.PipelineLayout)
		if err != nil {
			return nil, err
		}
		nd.PipelineLayout = le.native
	}
	if r.sink.validating() {
		r.validateGraphicsPipelineDesc(op, desc, pe, target)
	}

	native, err := r.instance.CreateGraphicsPipeline(&nd)
	if err != nil {
		return nil, err
	}
	h := r.graphicsPipelines.insert(graphicsPipelineEntry{native: native, topology: desc.PrimitiveTopology})
	r.sink.count(op)
	slogger().Debug("graphics pipeline created",
		"label", desc.Label, "topology", desc.PrimitiveTopology.String())
	return &GraphicsPipeline{ref: ref{owner: r, h: h}}, nil
}

// CreateComputePipeline implements render.System.
func (r *RenderSystem) CreateComputePipeline(desc *render.ComputePipelineDescriptor) (render.ComputePipeline, error) {
	const op = OpCreateComputePipeline
	if desc == nil {
		return nil, r.nilArgument(op, "compute pipeline descriptor")
	}
	if err := r.requireShaderProgram(op, desc.ShaderProgram); err != nil {
		return nil, err
	}

	nd := *desc
	_, pe, err := r.shaderProgram(op, desc.ShaderProgram)
	if err != nil {
		return nil, err
	}
	nd.ShaderProgram = pe.native
	if desc.PipelineLayout != nil {
		_, le, err := r.pipelineLayout(op, desc.PipelineLayout)
		if err != nil {
			return nil, err
		}
		nd.PipelineLayout = le.native
	}
	if r.sink.validating() {
		r.requireFeature(op, render.FeatureComputeShaders)
		if !pe.has(render.ShaderTypeCompute) {
			r.sink.post(op, InvalidArgument, "compute pipeline requires a shader program with a compute shader")
		}
	}

	native, err := r.instance.CreateComputePipeline(&nd)
	if err != nil {
		return nil, err
	}
	h := r.computePipelines.insert(computePipelineEntry{native: native})
	r.sink.count(op)
	return &ComputePipeline{ref: ref{owner: r, h: h}}, nil
}

// ReleaseGraphicsPipeline implements render.System.
func (r *RenderSystem) ReleaseGraphicsPipeline(p render.GraphicsPipeline) error {
	const op = OpReleaseGraphicsPipeline
	d, e, err := r.graphicsPipeline(op, p)
	if err != nil {
		return err
	}
	if err := r.instance.ReleaseGraphicsPipeline(e.native); err != nil {
		return err
	}
	r.graphicsPipelines.remove(d.h)
	r.sink.count(op)
	return nil
}

// ReleaseComputePipeline implements render.System.
func (r *RenderSystem) ReleaseComputePipeline(p render.ComputePipeline) error {
	const op = OpReleaseComputePipeline
	d, e, err := r.computePipeline(op, p)
	if err != nil {
		return err
	}
	if err := r.instance.ReleaseComputePipeline(e.native); err != nil {
		return err
	}
	r.computePipelines.remove(d.h)
	r.sink.count(op)
	return nil
}

// requireShaderProgram fails with ErrNilShaderProgram when p is a nil
// interface or a nil *ShaderProgram.
func (r *RenderSystem) requireShaderProgram(op Op, p render.ShaderProgram) error {
	if d, ok := p.(*ShaderProgram); p != nil && (!ok || d != nil) {
		return nil
	}
	r.sink.post(op, InvalidArgument, "shader program must not be null")
	return fmt.Errorf("%s: %w", op, ErrNilShaderProgram)
}
