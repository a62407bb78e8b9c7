package camera

import (
	"image"
	"image/color"
	"time"

	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/draw"
)

// TestPattern is a synthetic Source: vertical hue bars drifting sideways with a bright
// disc in the middle, so both the color and the mask effects have something to work on.
type TestPattern struct {
	frame *image.RGBA
	start time.Time
	now   func() time.Time
	bars  []color.RGBA
}

// NewTestPattern returns a w×h pattern.
func NewTestPattern(w, h int) *TestPattern {
	p := &TestPattern{
		frame: image.NewRGBA(image.Rect(0, 0, w, h)),
		now:   time.Now,
	}
	p.start = p.now()
	for i := 0; i < 8; i++ {
		c := colorful.Hsv(float64(i)*45, 0.8, 0.6)
		r, g, b := c.RGB255()
		p.bars = append(p.bars, color.RGBA{r, g, b, 0xff})
	}
	return p
}

// Frame implements Source.
func (p *TestPattern) Frame() (*image.RGBA, error) {
	b := p.frame.Rect
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return nil, ErrNotReady
	}
	shift := int(p.now().Sub(p.start).Seconds() * 40)
	barW := w / len(p.bars)
	if barW == 0 {
		barW = 1
	}
	for x := 0; x < w; x++ {
		c := p.bars[((x+shift)/barW)%len(p.bars)]
		draw.Draw(p.frame, image.Rect(x, 0, x+1, h), image.NewUniform(c), image.Point{}, draw.Src)
	}

	r := h / 4
	cx, cy := w/2, h/2
	for y := cy - r; y < cy+r; y++ {
		for x := cx - r; x < cx+r; x++ {
			dx, dy := x-cx, y-cy
			if dx*dx+dy*dy <= r*r {
				p.frame.SetRGBA(x, y, color.RGBA{0xf0, 0xf0, 0xf0, 0xff})
			}
		}
	}
	return p.frame, nil
}
