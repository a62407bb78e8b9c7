package segment

import (
	"context"
	"image"

	"github.com/disintegration/gift"
	"gonum.org/v1/gonum/floats"
)

// Otsu is a stand-in Segmenter that splits a frame at the luma threshold maximizing the
// between-class variance. Bright pixels are foreground unless Invert is set. A positive
// Softness blurs the mask edge by that many pixels.
type Otsu struct {
	Invert   bool
	Softness float32
}

// Segment implements Segmenter.
func (o Otsu) Segment(ctx context.Context, frame *image.RGBA) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b := frame.Bounds()
	luma := image.NewGray(b)
	var hist [256]float64
	for y := b.Min.Y; y < b.Max.Y; y++ {
		src := frame.Pix[frame.PixOffset(b.Min.X, y):]
		dst := luma.Pix[luma.PixOffset(b.Min.X, y):]
		for x := 0; x < b.Dx(); x++ {
			p := src[4*x:]
			l := (299*uint32(p[0]) + 587*uint32(p[1]) + 114*uint32(p[2]) + 500) / 1000
			dst[x] = uint8(l)
			hist[l]++
		}
	}
	thr := OtsuThreshold(hist[:])

	mask := image.NewGray(b)
	for i, l := range luma.Pix {
		if (l > thr) != o.Invert {
			mask.Pix[i] = 0xff
		}
	}
	if o.Softness > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		g := gift.New(gift.GaussianBlur(o.Softness))
		soft := image.NewGray(g.Bounds(b))
		g.Draw(soft, mask)
		mask = soft
	}

	alpha := image.NewAlpha(b)
	copy(alpha.Pix, mask.Pix)
	return &Result{Mask: alpha, Image: frame}, nil
}

// OtsuThreshold returns the histogram bin that best separates hist into two classes.
// Values strictly above the returned bin belong to the upper class.
func OtsuThreshold(hist []float64) uint8 {
	total := floats.Sum(hist)
	if total == 0 {
		return 0
	}
	var sum float64
	for i, h := range hist {
		sum += float64(i) * h
	}

	var (
		sumB, wB, best float64
		thr            int
	)
	for i, h := range hist {
		wB += h
		if wB == 0 {
			continue
		}
		wF := total - wB
		if wF == 0 {
			break
		}
		sumB += float64(i) * h
		mB := sumB / wB
		mF := (sum - sumB) / wF
		between := wB * wF * (mB - mF) * (mB - mF)
		if between > best {
			best = between
			thr = i
		}
	}
	return uint8(thr)
}
