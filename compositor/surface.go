package compositor

import (
	"context"
	"errors"
	"image"

	"github.com/peragwin/camfx/effects"
)

// ErrNoOutput is returned by Output before the first Draw.
var ErrNoOutput = errors.New("compositor: nothing drawn yet")

// Surface is where the compositor draws. Upload replaces the input image; Draw runs one
// full-surface pass of transform id over it.
type Surface interface {
	Upload(frame *image.RGBA) error
	Draw(id effects.ID, u *effects.Uniforms) error
	// Output returns the last drawn image. It is only valid until the next Draw.
	Output() (*image.RGBA, error)
}

// CPUSurface shades on the CPU with effects.Render.
type CPUSurface struct {
	ctx context.Context
	in  *image.RGBA
	tex *effects.Texture
	out *image.RGBA
}

// NewCPUSurface returns an empty surface. Draws are abandoned when ctx is done.
func NewCPUSurface(ctx context.Context) *CPUSurface {
	return &CPUSurface{ctx: ctx}
}

// Upload implements Surface. The frame is copied.
func (s *CPUSurface) Upload(frame *image.RGBA) error {
	r := image.Rect(0, 0, frame.Rect.Dx(), frame.Rect.Dy())
	if s.in == nil || s.in.Rect != r {
		s.in = image.NewRGBA(r)
		s.out = image.NewRGBA(r)
		s.tex = effects.NewTexture(s.in)
	}
	for y := 0; y < r.Dy(); y++ {
		src := frame.Pix[frame.PixOffset(frame.Rect.Min.X, frame.Rect.Min.Y+y):]
		copy(s.in.Pix[y*s.in.Stride:(y+1)*s.in.Stride], src)
	}
	return nil
}

// Draw implements Surface.
func (s *CPUSurface) Draw(id effects.ID, u *effects.Uniforms) error {
	if s.in == nil {
		return nil
	}
	return effects.Render(s.ctx, s.out, s.tex, id, u)
}

// Output implements Surface.
func (s *CPUSurface) Output() (*image.RGBA, error) {
	if s.out == nil {
		return nil, ErrNoOutput
	}
	return s.out, nil
}
