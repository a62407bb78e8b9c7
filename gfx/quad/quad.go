// Package quad draws the effect catalog on the GPU: the camera frame is a texture on one
// full-screen quad and the transform runs in the fragment program.
package quad

import (
	"context"
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/golang/glog"
	"github.com/peragwin/camfx/compositor"
	"github.com/peragwin/camfx/effects"
	"github.com/peragwin/camfx/gfx"
)

var vertices = []float32{
	// vertPos  texPos
	-1, 1, 0, 0,
	-1, -1, 0, 1,
	1, 1, 1, 0,
	1, -1, 1, 1,
}

// Config configures the window backing a Surface.
type Config struct {
	Width  int
	Height int
	Title  string
	Hidden bool
}

// Surface implements compositor.Surface with OpenGL. All methods must be called from the
// goroutine that called New.
type Surface struct {
	Gfx *gfx.Context

	texture *gfx.TextureObject
	staging *image.RGBA
	out     *image.RGBA
	drawn   bool

	id effects.ID
	u  effects.Uniforms
}

// New opens the window and builds the transform program. Build failures wrap gfx.ErrBuild.
func New(ctx context.Context, cfg *Config) (*Surface, error) {
	g, err := gfx.NewContext(ctx, &gfx.WindowConfig{
		Width: cfg.Width, Height: cfg.Height, Title: cfg.Title, Hidden: cfg.Hidden,
	}, []*gfx.ShaderConfig{
		{
			Source:         vertexShaderSource,
			Typ:            gfx.VertexShaderType,
			AttributeNames: []string{"vertPos", "texPos"},
			UniformNames:   []string{"flipX"},
		},
		{
			Source: fragmentShaderSource,
			Typ:    gfx.FragmentShaderType,
			UniformNames: []string{
				"tex", "resolution", "time", "filterType",
				"colorShift", "bassAmp", "midAmp", "highAmp",
			},
		},
	})
	if err != nil {
		return nil, err
	}

	s := &Surface{Gfx: g}
	s.u.FlipX = 1

	blank := image.NewRGBA(image.Rect(0, 0, cfg.Width, cfg.Height))
	if s.texture, err = g.AddTextureObject(&gfx.TextureConfig{
		Image: blank, UniformName: "tex",
	}); err != nil {
		g.Terminate()
		return nil, err
	}
	if _, err := g.AddVertexArrayObject(&gfx.VAOConfig{
		Vertices:   vertices,
		Layout:     []gfx.VertexAttribute{{Name: "vertPos", Size: 2}, {Name: "texPos", Size: 2}},
		GLDrawType: gl.TRIANGLE_STRIP,
		OnDraw:     s.setUniforms,
	}); err != nil {
		g.Terminate()
		return nil, err
	}
	return s, nil
}

// Upload implements compositor.Surface.
func (s *Surface) Upload(frame *image.RGBA) error {
	if frame.Rect.Min != (image.Point{}) {
		r := image.Rect(0, 0, frame.Rect.Dx(), frame.Rect.Dy())
		if s.staging == nil || s.staging.Rect != r {
			s.staging = image.NewRGBA(r)
		}
		for y := 0; y < r.Dy(); y++ {
			copy(s.staging.Pix[y*s.staging.Stride:(y+1)*s.staging.Stride],
				frame.Pix[frame.PixOffset(frame.Rect.Min.X, frame.Rect.Min.Y+y):])
		}
		frame = s.staging
	}
	if frame.Rect.Size() != s.texture.Size() {
		glog.V(1).Infof("quad: texture resized to %v", frame.Rect.Size())
	}
	s.texture.Update(frame)
	return nil
}

// Draw implements compositor.Surface. The result lands in the window's back buffer.
func (s *Surface) Draw(id effects.ID, u *effects.Uniforms) error {
	s.id = id
	s.u = *u
	if s.u.FlipX == 0 {
		s.u.FlipX = 1
	}
	s.Gfx.Draw()
	s.drawn = true
	return nil
}

func (s *Surface) setUniforms(g *gfx.Context) bool {
	u := &s.u
	gl.Uniform1f(g.GetUniformLocation("flipX"), u.FlipX)
	gl.Uniform2f(g.GetUniformLocation("resolution"), u.Resolution[0], u.Resolution[1])
	gl.Uniform1f(g.GetUniformLocation("time"), u.Time)
	gl.Uniform1i(g.GetUniformLocation("filterType"), int32(s.id))
	gl.Uniform3f(g.GetUniformLocation("colorShift"), u.ColorShift[0], u.ColorShift[1], u.ColorShift[2])
	gl.Uniform1f(g.GetUniformLocation("bassAmp"), u.BassAmp)
	gl.Uniform1f(g.GetUniformLocation("midAmp"), u.MidAmp)
	gl.Uniform1f(g.GetUniformLocation("highAmp"), u.HighAmp)
	return true
}

// Output implements compositor.Surface by reading back the framebuffer.
func (s *Surface) Output() (*image.RGBA, error) {
	if !s.drawn {
		return nil, compositor.ErrNoOutput
	}
	w, h := s.Gfx.Window.FramebufferSize()
	if s.out == nil || s.out.Rect.Dx() != w || s.out.Rect.Dy() != h {
		s.out = image.NewRGBA(image.Rect(0, 0, w, h))
	}
	s.Gfx.ReadPixels(s.out)
	return s.out, nil
}

// Close releases the window.
func (s *Surface) Close() {
	s.Gfx.Terminate()
}
