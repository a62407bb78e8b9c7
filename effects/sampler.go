package effects

import (
	"image"

	math "github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Sampler is a texture lookup over normalized coordinates, with (0,0) at the top left of
// the image and (1,1) at the bottom right.
type Sampler interface {
	Sample(uv mgl32.Vec2) mgl32.Vec4
}

// Uniform is a Sampler returning the same color everywhere.
type Uniform mgl32.Vec4

// Sample implements Sampler.
func (c Uniform) Sample(mgl32.Vec2) mgl32.Vec4 {
	return mgl32.Vec4(c)
}

// Texture samples an RGBA image with bilinear filtering and clamp-to-edge addressing.
// Texels are blended premultiplied and the filtered color is returned unpremultiplied.
type Texture struct {
	img  *image.RGBA
	w, h int
}

// NewTexture wraps img. The image must not be resized while the texture is in use.
func NewTexture(img *image.RGBA) *Texture {
	b := img.Bounds()
	return &Texture{img: img, w: b.Dx(), h: b.Dy()}
}

// Sample implements Sampler.
func (t *Texture) Sample(uv mgl32.Vec2) mgl32.Vec4 {
	if t.w == 0 || t.h == 0 {
		return mgl32.Vec4{}
	}
	x := uv[0]*float32(t.w) - 0.5
	y := uv[1]*float32(t.h) - 0.5
	x0, y0 := math.Floor(x), math.Floor(y)
	fx, fy := x-x0, y-y0
	ix, iy := int(x0), int(y0)

	top := mix4(t.texel(ix, iy), t.texel(ix+1, iy), fx)
	bottom := mix4(t.texel(ix, iy+1), t.texel(ix+1, iy+1), fx)
	return unpremultiply(mix4(top, bottom, fy))
}

// unpremultiply is applied after filtering, the way a GPU samples a premultiplied texture.
func unpremultiply(c mgl32.Vec4) mgl32.Vec4 {
	a := c[3]
	if a <= 0 {
		return mgl32.Vec4{}
	}
	return mgl32.Vec4{c[0] / a, c[1] / a, c[2] / a, a}
}

func (t *Texture) texel(x, y int) mgl32.Vec4 {
	if x < 0 {
		x = 0
	} else if x >= t.w {
		x = t.w - 1
	}
	if y < 0 {
		y = 0
	} else if y >= t.h {
		y = t.h - 1
	}
	o := t.img.Rect.Min
	p := t.img.Pix[t.img.PixOffset(o.X+x, o.Y+y):]
	return mgl32.Vec4{float32(p[0]) / 255, float32(p[1]) / 255, float32(p[2]) / 255, float32(p[3]) / 255}
}

// store writes an unpremultiplied color into a 4 byte RGBA pixel.
func store(p []uint8, c mgl32.Vec4) {
	c = saturate4(c)
	a := c[3]
	p[0] = quantize(c[0] * a)
	p[1] = quantize(c[1] * a)
	p[2] = quantize(c[2] * a)
	p[3] = quantize(a)
}

func quantize(v float32) uint8 {
	return uint8(v*255 + 0.5)
}
