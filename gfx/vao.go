package gfx

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// VertexAttribute is one float attribute of an interleaved vertex.
type VertexAttribute struct {
	Name string
	Size int
}

// VAOConfig describes interleaved float vertices. OnDraw runs before every draw; it can
// set uniforms and returns false to skip the draw.
type VAOConfig struct {
	Vertices   []float32
	Layout     []VertexAttribute
	GLDrawType uint32
	OnDraw     func(ctx *Context) bool
}

// VertexArrayObject is vertex data uploaded to the GPU along with its attribute layout.
type VertexArrayObject struct {
	vaoID    uint32
	count    int32
	drawType uint32
	onDraw   func(ctx *Context) bool
}

// NewVertexArrayObject uploads cfg.Vertices and binds each attribute of cfg.Layout.
func (c *Context) NewVertexArrayObject(cfg *VAOConfig) (*VertexArrayObject, error) {
	stride := 0
	for _, a := range cfg.Layout {
		stride += a.Size
	}
	if stride == 0 || len(cfg.Vertices)%stride != 0 {
		return nil, fmt.Errorf("gfx: %d floats do not divide into vertices of %d", len(cfg.Vertices), stride)
	}

	var vao, vbo uint32
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)
	defer gl.BindVertexArray(0)

	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, 4*len(cfg.Vertices), gl.Ptr(cfg.Vertices), gl.STATIC_DRAW)

	offset := 0
	for _, a := range cfg.Layout {
		loc := c.GetAttributeLocation(a.Name)
		gl.EnableVertexAttribArray(loc)
		gl.VertexAttribPointer(loc, int32(a.Size), gl.FLOAT, false, int32(4*stride), gl.PtrOffset(4*offset))
		offset += a.Size
	}

	return &VertexArrayObject{
		vaoID:    vao,
		count:    int32(len(cfg.Vertices) / stride),
		drawType: cfg.GLDrawType,
		onDraw:   cfg.OnDraw,
	}, nil
}

// Draw draws the vertices into the current framebuffer.
func (v *VertexArrayObject) Draw(ctx *Context) {
	gl.BindVertexArray(v.vaoID)
	defer gl.BindVertexArray(0)
	if v.onDraw != nil && !v.onDraw(ctx) {
		return
	}
	gl.DrawArrays(v.drawType, 0, v.count)
}
