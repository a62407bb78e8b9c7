// Package segment runs foreground/background segmentation off the render loop and keeps
// only its newest answer.
package segment

import (
	"context"
	"image"
)

// Result is one segmentation of a frame. Mask is the foreground coverage; Image is the
// frame the mask was computed for. A Result is never mutated after it is published.
type Result struct {
	Mask  *image.Alpha
	Image *image.RGBA
}

// Complete reports whether r carries both a mask and an image.
func (r *Result) Complete() bool {
	return r != nil && r.Mask != nil && r.Image != nil
}

// Segmenter computes a mask for a frame. Implementations may block; they own frame for the
// duration of the call.
type Segmenter interface {
	Segment(ctx context.Context, frame *image.RGBA) (*Result, error)
}

// SegmenterFunc adapts a function to Segmenter.
type SegmenterFunc func(ctx context.Context, frame *image.RGBA) (*Result, error)

// Segment implements Segmenter.
func (f SegmenterFunc) Segment(ctx context.Context, frame *image.RGBA) (*Result, error) {
	return f(ctx, frame)
}

// Clone copies an RGBA image into a new buffer with the same bounds.
func Clone(src *image.RGBA) *image.RGBA {
	dst := &image.RGBA{
		Pix:    make([]uint8, len(src.Pix)),
		Stride: src.Stride,
		Rect:   src.Rect,
	}
	copy(dst.Pix, src.Pix)
	return dst
}
