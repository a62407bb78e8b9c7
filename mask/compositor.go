// Package mask builds the segmentation-based compositions: the segmented frame with a
// solid, blurred, noisy or echoed layer clipped to the foreground mask.
package mask

import (
	"fmt"
	"image"
	"image/color"
	"math/rand"

	"github.com/disintegration/gift"
	"github.com/golang/glog"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/peragwin/camfx/effects"
	"github.com/peragwin/camfx/segment"
)

// Options tune the compositions.
type Options struct {
	// Fill is the silhouette color per solid effect key.
	Fill map[string]color.RGBA
	// BlurSigma is the Gaussian standard deviation of the blur effect, in pixels.
	BlurSigma float32
	// BlurMargin enlarges the blurred copy on every side so its edges stay opaque.
	BlurMargin int
	// EchoCount is the number of ghosts drawn by the echo effect.
	EchoCount int
	// EchoStep is the offset between consecutive ghosts.
	EchoStep image.Point
	// EchoShadow draws dark silhouettes as ghosts instead of copies of the subject.
	EchoShadow bool
	// Seed seeds the noise of the static silhouette.
	Seed int64
}

// DefaultOptions returns the stock look of every composition.
func DefaultOptions() Options {
	return Options{
		Fill: map[string]color.RGBA{
			effects.KeyWhiteGlow:       {0xff, 0, 0, 0xff},
			effects.KeyBlackBackground: {0, 0, 0, 0xff},
			effects.KeyWhiteBackground: {0xff, 0xff, 0xff, 0xff},
		},
		BlurSigma:  18,
		BlurMargin: 30,
		EchoCount:  7,
		EchoStep:   image.Pt(22, 6),
		Seed:       1,
	}
}

var shadow = color.RGBA{10, 10, 10, 0xff}

// Compositor draws mask compositions into a caller supplied canvas. It must only be used
// from one goroutine.
type Compositor struct {
	opts Options
	pool *Pool
	rng  *rand.Rand
	blur *gift.GIFT

	stage    *image.RGBA
	mask     *image.Alpha
	enlarged *image.RGBA
	blurred  *image.RGBA
}

// New returns a compositor drawing with opts.
func New(opts Options) *Compositor {
	c := &Compositor{
		pool: NewPool(),
		rng:  rand.New(rand.NewSource(opts.Seed)),
	}
	c.SetOptions(opts)
	return c
}

// SetOptions changes the look of later compositions. The scratch surfaces and the noise
// source are kept; opts.Seed only applies in New. The blur kernel is rebuilt when the
// sigma changes.
func (c *Compositor) SetOptions(opts Options) {
	if opts.EchoCount < 1 {
		opts.EchoCount = 1
	}
	if c.blur == nil || opts.BlurSigma != c.opts.BlurSigma {
		c.blur = nil
		if opts.BlurSigma > 0 {
			c.blur = gift.New(gift.GaussianBlur(opts.BlurSigma))
		}
	}
	c.opts = opts
}

// Options returns the options in effect.
func (c *Compositor) Options() Options { return c.opts }

// Pool exposes the scratch surfaces, mostly for tests.
func (c *Compositor) Pool() *Pool { return c.pool }

// Compose draws the composition for key into dst. The segmentation is scaled to dst's
// size. When mirror is set the finished composition is flipped horizontally, ghosts and
// all.
func (c *Compositor) Compose(dst *image.RGBA, res *segment.Result, key string, mirror bool) error {
	if !res.Complete() {
		return fmt.Errorf("mask: incomplete segmentation result")
	}
	if !effects.IsMasked(key) {
		return fmt.Errorf("mask: %q is not a mask effect", key)
	}
	r := dst.Bounds()
	if r.Min != (image.Point{}) {
		return fmt.Errorf("mask: canvas must start at the origin, got %v", r)
	}
	w, h := r.Dx(), r.Dy()

	canvas := dst
	if mirror {
		if c.stage == nil || c.stage.Rect != r {
			c.stage = image.NewRGBA(r)
		}
		canvas = c.stage
	}
	m := c.scaledMask(res.Mask, r)

	err := c.pool.With(w, h, func(a, tmp *image.RGBA) error {
		c.drawScaled(canvas, res.Image)

		switch key {
		case effects.KeyBlur:
			c.blurLayer(a, res.Image)
			clip(a, m)
			draw.Draw(canvas, r, a, image.Point{}, draw.Over)

		case effects.KeyStaticSilhouette:
			c.noiseLayer(a)
			clip(a, m)
			draw.Draw(canvas, r, a, image.Point{}, draw.Over)

		case effects.KeyEcho:
			if c.opts.EchoShadow {
				draw.Draw(a, r, image.NewUniform(shadow), image.Point{}, draw.Src)
			} else {
				c.drawScaled(a, res.Image)
			}
			clip(a, m)
			n := c.opts.EchoCount
			for i := n; i >= 1; i-- {
				off := c.opts.EchoStep.Mul(i)
				alpha := image.NewUniform(color.Alpha{A: uint8(EchoAlpha(i, n)*255 + 0.5)})
				draw.DrawMask(canvas, r, a, image.Point{}.Sub(off), alpha, image.Point{}, draw.Over)
			}
			c.drawScaled(tmp, res.Image)
			clip(tmp, m)
			draw.Draw(canvas, r, tmp, image.Point{}, draw.Over)

		default:
			fill, ok := c.opts.Fill[key]
			if !ok {
				return fmt.Errorf("mask: no fill color for %q", key)
			}
			draw.Draw(a, r, image.NewUniform(fill), image.Point{}, draw.Src)
			clip(a, m)
			draw.Draw(canvas, r, a, image.Point{}, draw.Over)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if mirror {
		flip := f64.Aff3{-1, 0, float64(w), 0, 1, 0}
		draw.NearestNeighbor.Transform(dst, flip, canvas, r, draw.Src, nil)
	}
	return nil
}

// EchoAlpha is the opacity of ghost i of n. The nearest ghost, i = 1, is the most opaque.
func EchoAlpha(i, n int) float64 {
	if n <= 1 {
		return 0.8
	}
	return 0.30 + 0.50*float64(n-i)/float64(n-1)
}

// clip keeps layer only where m covers it (destination-in).
func clip(layer *image.RGBA, m *image.Alpha) {
	r := layer.Bounds()
	draw.DrawMask(layer, r, layer, r.Min, m, m.Rect.Min, draw.Src)
}

func (c *Compositor) drawScaled(dst *image.RGBA, src *image.RGBA) {
	if src.Rect.Size() == dst.Rect.Size() {
		draw.Draw(dst, dst.Rect, src, src.Rect.Min, draw.Src)
		return
	}
	draw.ApproxBiLinear.Scale(dst, dst.Rect, src, src.Rect, draw.Src, nil)
}

func (c *Compositor) scaledMask(m *image.Alpha, r image.Rectangle) *image.Alpha {
	if m.Rect.Size() == r.Size() {
		return m
	}
	if c.mask == nil || c.mask.Rect != r {
		c.mask = image.NewAlpha(r)
		glog.V(2).Infof("mask: scaling %v mask to %v", m.Rect.Size(), r.Size())
	}
	draw.ApproxBiLinear.Scale(c.mask, r, m, m.Rect, draw.Src, nil)
	return c.mask
}

// blurLayer draws a blurred copy of img, enlarged by the margin on every side, into a.
func (c *Compositor) blurLayer(a *image.RGBA, img *image.RGBA) {
	if c.blur == nil {
		c.drawScaled(a, img)
		return
	}
	margin := c.opts.BlurMargin
	big := image.Rect(0, 0, a.Rect.Dx()+2*margin, a.Rect.Dy()+2*margin)
	if c.enlarged == nil || c.enlarged.Rect != big {
		c.enlarged = image.NewRGBA(big)
		c.blurred = image.NewRGBA(c.blur.Bounds(big))
	}
	draw.ApproxBiLinear.Scale(c.enlarged, big, img, img.Rect, draw.Src, nil)
	c.blur.Draw(c.blurred, c.enlarged)
	draw.Draw(a, a.Rect, c.blurred, image.Pt(margin, margin), draw.Src)
}

// noiseLayer fills a with opaque uniform gray noise.
func (c *Compositor) noiseLayer(a *image.RGBA) {
	for i := 0; i < len(a.Pix); i += 4 {
		v := uint8(c.rng.Intn(256))
		a.Pix[i], a.Pix[i+1], a.Pix[i+2], a.Pix[i+3] = v, v, v, 0xff
	}
}
