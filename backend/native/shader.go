package native

import (
	"encoding/binary"
	"fmt"

	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/gfx/render"
)

const defaultEntryPoint = "main"

type shader struct {
	typ      render.ShaderType
	module   hal.ShaderModule
	entry    string
	released bool
}

func (sh *shader) ResourceType() render.ResourceType { return render.ResourceTypeShader }
func (sh *shader) ShaderType() render.ShaderType     { return sh.typ }

type shaderProgram struct {
	vertex, fragment, compute *shader
	vertexFormats             []render.VertexFormat
	released                  bool
}

func (p *shaderProgram) ResourceType() render.ResourceType { return render.ResourceTypeShaderProgram }

// compileWGSL translates WGSL source to SPIR-V words.
func compileWGSL(source string) ([]uint32, error) {
	spirv, err := naga.Compile(source)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrShaderCompile, err)
	}
	if len(spirv)%4 != 0 {
		return nil, fmt.Errorf("%w: SPIR-V output of %d bytes is not word aligned", ErrShaderCompile, len(spirv))
	}
	words := make([]uint32, len(spirv)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(spirv[i*4:])
	}
	return words, nil
}

// CreateShader implements render.System. WGSL source is compiled with naga
// and handed to the device together with the resulting SPIR-V.
func (s *System) CreateShader(desc *render.ShaderDescriptor) (render.Shader, error) {
	if desc == nil {
		return nil, fmt.Errorf("native: CreateShader: %w", render.ErrInvalidDescriptor)
	}
	if desc.Type.Stage() == 0 {
		return nil, fmt.Errorf("native: %s shaders: %w", desc.Type, render.ErrNotSupported)
	}
	src := hal.ShaderSource{WGSL: desc.Source, SPIRV: desc.SPIRV}
	if desc.Source != "" && len(desc.SPIRV) == 0 {
		words, err := compileWGSL(desc.Source)
		if err != nil {
			return nil, fmt.Errorf("native: shader %q: %w", desc.Label, err)
		}
		src.SPIRV = words
	}
	module, err := s.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  desc.Label,
		Source: src,
	})
	if err != nil {
		return nil, fmt.Errorf("native: create shader module %q: %w", desc.Label, err)
	}
	entry := desc.EntryPoint
	if entry == "" {
		entry = defaultEntryPoint
	}
	return &shader{typ: desc.Type, module: module, entry: entry}, nil
}

// CreateShaderProgram implements render.System.
func (s *System) CreateShaderProgram(desc *render.ShaderProgramDescriptor) (render.ShaderProgram, error) {
	if desc == nil {
		return nil, fmt.Errorf("native: CreateShaderProgram: %w", render.ErrInvalidDescriptor)
	}
	if desc.TessControl != nil || desc.TessEvaluation != nil || desc.Geometry != nil {
		return nil, fmt.Errorf("native: tessellation and geometry stages: %w", render.ErrNotSupported)
	}
	p := &shaderProgram{
		vertexFormats: append([]render.VertexFormat(nil), desc.VertexFormats...),
	}
	for _, slot := range desc.Stages() {
		sh, err := s.shader(slot.Shader)
		if err != nil {
			return nil, fmt.Errorf("native: %s stage: %w", slot.Stage, err)
		}
		switch slot.Stage {
		case render.ShaderTypeVertex:
			p.vertex = sh
		case render.ShaderTypeFragment:
			p.fragment = sh
		case render.ShaderTypeCompute:
			p.compute = sh
		}
	}
	return p, nil
}

// ReleaseShader implements render.System.
func (s *System) ReleaseShader(rs render.Shader) error {
	sh, err := s.shader(rs)
	if err != nil {
		return err
	}
	s.device.DestroyShaderModule(sh.module)
	sh.released = true
	return nil
}

// ReleaseShaderProgram implements render.System.
func (s *System) ReleaseShaderProgram(rp render.ShaderProgram) error {
	p, err := s.shaderProgram(rp)
	if err != nil {
		return err
	}
	p.released = true
	return nil
}

func (s *System) shader(rs render.Shader) (*shader, error) {
	sh, ok := rs.(*shader)
	if !ok || sh == nil {
		return nil, foreign("shader", rs)
	}
	if sh.released {
		return nil, ErrReleased
	}
	return sh, nil
}

func (s *System) shaderProgram(rp render.ShaderProgram) (*shaderProgram, error) {
	p, ok := rp.(*shaderProgram)
	if !ok || p == nil {
		return nil, foreign("shader program", rp)
	}
	if p.released {
		return nil, ErrReleased
	}
	return p, nil
}
