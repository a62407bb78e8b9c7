package camera

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// Still is a Source that always returns the same image.
type Still struct {
	frame *image.RGBA
}

// NewStill scales img to w×h. A zero size keeps the image's own size.
func NewStill(img image.Image, w, h int) *Still {
	sr := img.Bounds()
	if w <= 0 || h <= 0 {
		w, h = sr.Dx(), sr.Dy()
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	if sr.Dx() == w && sr.Dy() == h {
		draw.Draw(dst, dst.Rect, img, sr.Min, draw.Src)
	} else {
		draw.CatmullRom.Scale(dst, dst.Rect, img, sr, draw.Src, nil)
	}
	return &Still{frame: dst}
}

// DecodeStill reads a PNG, JPEG or WebP image.
func DecodeStill(r io.Reader, w, h int) (*Still, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("camera: decoding still: %w", err)
	}
	return NewStill(img, w, h), nil
}

// OpenStill decodes the image file at path.
func OpenStill(path string, w, h int) (*Still, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("camera: %w", err)
	}
	defer f.Close()
	return DecodeStill(f, w, h)
}

// Frame implements Source.
func (s *Still) Frame() (*image.RGBA, error) {
	return s.frame, nil
}
