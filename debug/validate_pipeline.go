// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package debug

import (
	"github.com/gogpu/gfx/render"
)

func (r *RenderSystem) validateGraphicsPipelineDesc(op Op, desc *render.GraphicsPipelineDescriptor, program *shaderProgramEntry, target targetInfo) {
	if !program.has(render.ShaderTypeVertex) || program.has(render.ShaderTypeCompute) {
		r.sink.post(op, InvalidArgument, "graphics pipeline requires a shader program with a vertex shader")
	}
	r.validatePrimitiveTopology(op, desc.PrimitiveTopology)

	if desc.Rasterizer.ConservativeRasterization {
		r.requireFeature(op, render.FeatureConservativeRasterization)
	}
	if n := len(desc.Blend.Targets); n > render.MaxBlendTargets {
		r.sink.post(op, InvalidArgument,
			"too many blend state targets (%d specified but limit is %d)", n, render.MaxBlendTargets)
	}

	samples := max(desc.Rasterizer.Samples, 1)
	if target.native != nil && samples != target.samples {
		r.sink.post(op, ImproperArgument,
			"pipeline sample count (%d) does not match render target sample count (%d)", samples, target.samples)
	}
	if desc.Blend.AlphaToCoverage && samples == 1 {
		r.sink.post(op, PointlessOperation, "alpha-to-coverage has no effect without multi-sampling")
	}
	if desc.Depth.WriteEnabled && !desc.Depth.TestEnabled {
		r.sink.post(op, VaryingBehavior, "depth writes enabled with depth test disabled")
	}
}

func (r *RenderSystem) validatePrimitiveTopology(op Op, t render.PrimitiveTopology) {
	switch t {
	case render.TopologyTriangleList, render.TopologyTriangleStrip,
		render.TopologyPointList, render.TopologyLineList, render.TopologyLineStrip:
	case render.TopologyLineLoop:
		if !r.id.IsOpenGL() {
			r.sink.post(op, UnsupportedFeature, "%s primitive topology is only supported by OpenGL", t)
		}
	case render.TopologyTriangleFan:
		if !r.id.IsOpenGL() && r.id != render.RendererVulkan {
			r.sink.post(op, UnsupportedFeature, "%s primitive topology is only supported by OpenGL and Vulkan", t)
		}
	default:
		r.sink.post(op, InvalidArgument, "invalid primitive topology: %s", t)
	}
}
