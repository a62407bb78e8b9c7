package gfx

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Program is a linked GL program with the locations of its declared variables.
type Program struct {
	ProgramID  uint32
	Uniforms   map[string]int32
	Attributes map[string]uint32
}

// NewProgram compiles every stage in cfgs and links them. Failures wrap ErrBuild.
func NewProgram(cfgs []*ShaderConfig) (*Program, error) {
	id := gl.CreateProgram()
	if id == 0 {
		return nil, fmt.Errorf("%w: no programs available", ErrBuild)
	}
	p := &Program{
		ProgramID:  id,
		Uniforms:   make(map[string]int32),
		Attributes: make(map[string]uint32),
	}

	stages := make([]uint32, 0, len(cfgs))
	defer func() {
		// linked programs keep their own copy
		for _, s := range stages {
			gl.DeleteShader(s)
		}
	}()
	for _, cfg := range cfgs {
		s, err := compile(cfg)
		if err != nil {
			gl.DeleteProgram(id)
			return nil, err
		}
		stages = append(stages, s)
		gl.AttachShader(id, s)
	}

	if err := p.link(cfgs); err != nil {
		gl.DeleteProgram(id)
		return nil, err
	}
	return p, nil
}

func (p *Program) link(cfgs []*ShaderConfig) error {
	gl.LinkProgram(p.ProgramID)

	var ok int32
	gl.GetProgramiv(p.ProgramID, gl.LINK_STATUS, &ok)
	if ok == gl.FALSE {
		var n int32
		gl.GetProgramiv(p.ProgramID, gl.INFO_LOG_LENGTH, &n)
		log := infoLog(n, func(buf *uint8) { gl.GetProgramInfoLog(p.ProgramID, n, nil, buf) })
		return fmt.Errorf("%w: linking: %s", ErrBuild, log)
	}

	for _, cfg := range cfgs {
		for _, name := range cfg.UniformNames {
			loc := gl.GetUniformLocation(p.ProgramID, gl.Str(name+"\x00"))
			if loc < 0 {
				return fmt.Errorf("%w: uniform %q is not active", ErrBuild, name)
			}
			p.Uniforms[name] = loc
		}
		for _, name := range cfg.AttributeNames {
			loc := gl.GetAttribLocation(p.ProgramID, gl.Str(name+"\x00"))
			if loc < 0 {
				return fmt.Errorf("%w: attribute %q is not active", ErrBuild, name)
			}
			p.Attributes[name] = uint32(loc)
		}
	}
	return nil
}
