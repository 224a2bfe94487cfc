package native

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/gfx/render"
)

type graphicsPipeline struct {
	raw      hal.RenderPipeline
	layout   *pipelineLayout
	released bool
}

func (p *graphicsPipeline) ResourceType() render.ResourceType {
	return render.ResourceTypeGraphicsPipeline
}

type computePipeline struct {
	raw      hal.ComputePipeline
	layout   *pipelineLayout
	released bool
}

func (p *computePipeline) ResourceType() render.ResourceType {
	return render.ResourceTypeComputePipeline
}

func primitiveTopology(t render.PrimitiveTopology) (gputypes.PrimitiveTopology, error) {
	switch t {
	case render.TopologyTriangleList:
		return gputypes.PrimitiveTopologyTriangleList, nil
	case render.TopologyTriangleStrip:
		return gputypes.PrimitiveTopologyTriangleStrip, nil
	case render.TopologyPointList:
		return gputypes.PrimitiveTopologyPointList, nil
	case render.TopologyLineList:
		return gputypes.PrimitiveTopologyLineList, nil
	case render.TopologyLineStrip:
		return gputypes.PrimitiveTopologyLineStrip, nil
	default:
		return 0, fmt.Errorf("native: %s topology: %w", t, render.ErrNotSupported)
	}
}

func vertexBuffers(formats []render.VertexFormat) []gputypes.VertexBufferLayout {
	layouts := make([]gputypes.VertexBufferLayout, len(formats))
	for i, f := range formats {
		layouts[i] = gputypes.VertexBufferLayout{
			ArrayStride: uint64(f.Stride),
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes:  f.Attributes,
		}
	}
	return layouts
}

// CreateGraphicsPipeline implements render.System.
func (s *System) CreateGraphicsPipeline(desc *render.GraphicsPipelineDescriptor) (render.GraphicsPipeline, error) {
	if desc == nil {
		return nil, fmt.Errorf("native: CreateGraphicsPipeline: %w", render.ErrInvalidDescriptor)
	}
	prog, err := s.shaderProgram(desc.ShaderProgram)
	if err != nil {
		return nil, err
	}
	if prog.vertex == nil {
		return nil, fmt.Errorf("native: graphics pipeline without vertex shader: %w", render.ErrInvalidDescriptor)
	}
	topology, err := primitiveTopology(desc.PrimitiveTopology)
	if err != nil {
		return nil, err
	}

	var layout *pipelineLayout
	var rawLayout hal.PipelineLayout
	if desc.PipelineLayout != nil {
		if layout, err = s.pipelineLayout(desc.PipelineLayout); err != nil {
			return nil, err
		}
		rawLayout = layout.raw
	}

	colorFormats := []gputypes.TextureFormat{gputypes.TextureFormatBGRA8Unorm}
	depthFormat := desc.Depth.Format
	samples := max(desc.Rasterizer.Samples, 1)
	if desc.RenderTarget != nil {
		rt, err := s.renderTarget(desc.RenderTarget, render.ResourceTypeUndefined)
		if err != nil {
			return nil, err
		}
		colorFormats = rt.colorFormats
		if rt.depthView != nil {
			depthFormat = rt.depthFormat
		}
		samples = rt.samples
	}

	hd := &hal.RenderPipelineDescriptor{
		Label:  desc.Label,
		Layout: rawLayout,
		Vertex: hal.VertexState{
			Module:     prog.vertex.module,
			EntryPoint: prog.vertex.entry,
			Buffers:    vertexBuffers(prog.vertexFormats),
		},
		Primitive: gputypes.PrimitiveState{
			Topology:  topology,
			FrontFace: desc.Rasterizer.FrontFace,
			CullMode:  desc.Rasterizer.CullMode,
		},
		Multisample: gputypes.MultisampleState{
			Count:                  samples,
			Mask:                   0xFFFFFFFF,
			AlphaToCoverageEnabled: desc.Blend.AlphaToCoverage,
		},
	}
	if desc.Depth.TestEnabled || desc.Depth.WriteEnabled {
		if depthFormat == gputypes.TextureFormatUndefined {
			depthFormat = gputypes.TextureFormatDepth32Float
		}
		compare := desc.Depth.Compare
		if !desc.Depth.TestEnabled {
			compare = gputypes.CompareFunctionAlways
		}
		hd.DepthStencil = &hal.DepthStencilState{
			Format:            depthFormat,
			DepthWriteEnabled: desc.Depth.WriteEnabled,
			DepthCompare:      compare,
		}
	}
	if prog.fragment != nil {
		targets := desc.Blend.Targets
		if len(targets) == 0 {
			targets = make([]gputypes.ColorTargetState, len(colorFormats))
			for i, f := range colorFormats {
				targets[i] = gputypes.ColorTargetState{Format: f, WriteMask: gputypes.ColorWriteMaskAll}
			}
		}
		hd.Fragment = &hal.FragmentState{
			Module:     prog.fragment.module,
			EntryPoint: prog.fragment.entry,
			Targets:    targets,
		}
	}

	raw, err := s.device.CreateRenderPipeline(hd)
	if err != nil {
		return nil, fmt.Errorf("native: create render pipeline %q: %w", desc.Label, err)
	}
	return &graphicsPipeline{raw: raw, layout: layout}, nil
}

// CreateComputePipeline implements render.System.
func (s *System) CreateComputePipeline(desc *render.ComputePipelineDescriptor) (render.ComputePipeline, error) {
	if desc == nil {
		return nil, fmt.Errorf("native: CreateComputePipeline: %w", render.ErrInvalidDescriptor)
	}
	prog, err := s.shaderProgram(desc.ShaderProgram)
	if err != nil {
		return nil, err
	}
	if prog.compute == nil {
		return nil, fmt.Errorf("native: compute pipeline without compute shader: %w", render.ErrInvalidDescriptor)
	}
	var layout *pipelineLayout
	var rawLayout hal.PipelineLayout
	if desc.PipelineLayout != nil {
		if layout, err = s.pipelineLayout(desc.PipelineLayout); err != nil {
			return nil, err
		}
		rawLayout = layout.raw
	}
	raw, err := s.device.CreateComputePipeline(&hal.ComputePipelineDescriptor{
		Label:  desc.Label,
		Layout: rawLayout,
		Compute: hal.ComputeState{
			Module:     prog.compute.module,
			EntryPoint: prog.compute.entry,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("native: create compute pipeline %q: %w", desc.Label, err)
	}
	return &computePipeline{raw: raw, layout: layout}, nil
}

// ReleaseGraphicsPipeline implements render.System.
func (s *System) ReleaseGraphicsPipeline(rp render.GraphicsPipeline) error {
	p, err := s.graphicsPipeline(rp)
	if err != nil {
		return err
	}
	s.device.DestroyRenderPipeline(p.raw)
	p.released = true
	return nil
}

// ReleaseComputePipeline implements render.System.
func (s *System) ReleaseComputePipeline(rp render.ComputePipeline) error {
	p, err := s.computePipeline(rp)
	if err != nil {
		return err
	}
	s.device.DestroyComputePipeline(p.raw)
	p.released = true
	return nil
}

func (s *System) graphicsPipeline(rp render.GraphicsPipeline) (*graphicsPipeline, error) {
	p, ok := rp.(*graphicsPipeline)
	if !ok || p == nil {
		return nil, foreign("graphics pipeline", rp)
	}
	if p.released {
		return nil, ErrReleased
	}
	return p, nil
}

func (s *System) computePipeline(rp render.ComputePipeline) (*computePipeline, error) {
	p, ok := rp.(*computePipeline)
	if !ok || p == nil {
		return nil, foreign("compute pipeline", rp)
	}
	if p.released {
		return nil, ErrReleased
	}
	return p, nil
}
