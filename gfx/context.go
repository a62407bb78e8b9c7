package gfx

import (
	"context"
	"fmt"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/golang/glog"
)

// Context is a context for doing opengl graphics
type Context struct {
	Window  *Window
	Program *Program

	vaos     []*VertexArrayObject
	textures []*TextureObject

	ctx context.Context
}

// NewContext opens a window, then compiles and links a program from shaderConfigs. Shader
// failures are returned wrapping ErrBuild. NewContext must be called from the goroutine that
// will run EventLoop.
func NewContext(ctx context.Context,
	windowConfig *WindowConfig, shaderConfigs []*ShaderConfig) (*Context, error) {
	runtime.LockOSThread()

	window, err := NewWindow(windowConfig)
	if err != nil {
		return nil, err
	}

	if err := gl.Init(); err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("initializing gl: %w", err)
	}
	glog.Infof("OpenGL version %s", gl.GoStr(gl.GetString(gl.VERSION)))

	program, err := NewProgram(shaderConfigs)
	if err != nil {
		glfw.Terminate()
		return nil, err
	}
	gl.UseProgram(program.ProgramID)

	return &Context{
		Window:  window,
		Program: program,
		ctx:     ctx,
	}, nil
}

// EventLoop calls render once per frame until the window closes or render returns false.
// render does the drawing; EventLoop swaps and polls.
func (c *Context) EventLoop(render func(*Context) bool) {
	// OpenGL requires that rendering functions be called from the main thread
	runtime.LockOSThread()

	for !c.Window.GlfwWindow.ShouldClose() {
		select {
		case <-c.ctx.Done():
			return
		default:
		}

		if !render(c) {
			return
		}

		glfw.PollEvents()
		c.Window.GlfwWindow.SwapBuffers()
	}
}

// Draw clears the framebuffer and draws every VAO that's attached to the context.
func (c *Context) Draw() {
	w, h := c.Window.FramebufferSize()
	gl.Viewport(0, 0, int32(w), int32(h))
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	gl.UseProgram(c.Program.ProgramID)
	for _, t := range c.textures {
		t.bind()
	}
	for _, v := range c.vaos {
		v.Draw(c)
	}
}

// Terminate ends the glfw session
func (c *Context) Terminate() {
	glfw.Terminate()
}

// AddVertexArrayObject creates a VAO and attaches it to the context.
func (c *Context) AddVertexArrayObject(cfg *VAOConfig) (*VertexArrayObject, error) {
	vao, err := c.NewVertexArrayObject(cfg)
	if err != nil {
		return nil, err
	}
	c.vaos = append(c.vaos, vao)
	return vao, nil
}

// GetUniformLocation returns the location of a uniform within the context's program.
func (c *Context) GetUniformLocation(uname string) int32 {
	uloc, ok := c.Program.Uniforms[uname]
	if !ok {
		panic("unknown uniform name: " + uname)
	}
	return uloc
}

// GetAttributeLocation returns the location of a vertex attribute within the context's
// program.
func (c *Context) GetAttributeLocation(aname string) uint32 {
	aloc, ok := c.Program.Attributes[aname]
	if !ok {
		panic("unknown attribute name: " + aname)
	}
	return aloc
}
