package gfx

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// ErrBuild is wrapped by every shader compile or program link failure.
var ErrBuild = errors.New("gfx: building shader program")

// ShaderType is the pipeline stage of a shader.
type ShaderType int

// Supported stages.
const (
	VertexShaderType ShaderType = iota
	FragmentShaderType
)

func (t ShaderType) String() string {
	if t == VertexShaderType {
		return "vertex"
	}
	return "fragment"
}

func (t ShaderType) glEnum() uint32 {
	if t == VertexShaderType {
		return gl.VERTEX_SHADER
	}
	return gl.FRAGMENT_SHADER
}

// ShaderConfig is one stage of a program. AttributeNames and UniformNames list the
// variables the program must expose once linked.
type ShaderConfig struct {
	Source         string
	Typ            ShaderType
	AttributeNames []string
	UniformNames   []string
}

// compile builds one stage. The returned id is owned by the caller.
func compile(cfg *ShaderConfig) (uint32, error) {
	id := gl.CreateShader(cfg.Typ.glEnum())
	src, free := gl.Strs(cfg.Source + "\x00")
	gl.ShaderSource(id, 1, src, nil)
	free()
	gl.CompileShader(id)

	var ok int32
	gl.GetShaderiv(id, gl.COMPILE_STATUS, &ok)
	if ok == gl.TRUE {
		return id, nil
	}
	var n int32
	gl.GetShaderiv(id, gl.INFO_LOG_LENGTH, &n)
	log := infoLog(n, func(buf *uint8) { gl.GetShaderInfoLog(id, n, nil, buf) })
	gl.DeleteShader(id)
	return 0, fmt.Errorf("%w: compiling %v shader: %s", ErrBuild, cfg.Typ, log)
}

// infoLog reads a driver log of n bytes through read.
func infoLog(n int32, read func(*uint8)) string {
	if n <= 0 {
		return "no log"
	}
	buf := make([]uint8, n+1)
	read(&buf[0])
	return strings.TrimSpace(strings.TrimRight(string(buf), "\x00"))
}
