package effects

import (
	"context"
	"image"
	"runtime"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/sync/errgroup"
)

const bandHeight = 16

// Render shades every pixel of dst with transform id, reading from src. It is the CPU
// equivalent of one full-screen quad draw: pixel centers map to uv, and u.FlipX mirrors
// the horizontal coordinate about the center before the transform runs.
//
// Rows are shaded in parallel bands; the returned error is only ever a context error.
func Render(ctx context.Context, dst *image.RGBA, src Sampler, id ID, u *Uniforms) error {
	b := dst.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return nil
	}
	fn := id.Transform()
	flip := u.FlipX
	if flip == 0 {
		flip = 1
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for y0 := 0; y0 < h; y0 += bandHeight {
		y1 := y0 + bandHeight
		if y1 > h {
			y1 = h
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			for y := y0; y < y1; y++ {
				v := (float32(y) + 0.5) / float32(h)
				row := dst.Pix[dst.PixOffset(b.Min.X, b.Min.Y+y):]
				for x := 0; x < w; x++ {
					s := (float32(x) + 0.5) / float32(w)
					uv := mgl32.Vec2{0.5 + (s-0.5)*flip, v}
					store(row[4*x:], fn(src, uv, src.Sample(uv), u))
				}
			}
			return nil
		})
	}
	return g.Wait()
}
