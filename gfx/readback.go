package gfx

import (
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// ReadPixels copies the current read framebuffer into dst, starting at the lower left
// corner. Rows are flipped so dst's first row is the top of the window.
func (c *Context) ReadPixels(dst *image.RGBA) {
	w, h := dst.Rect.Dx(), dst.Rect.Dy()
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.PixelStorei(gl.PACK_ROW_LENGTH, int32(dst.Stride/4))
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(dst.Pix))
	gl.PixelStorei(gl.PACK_ROW_LENGTH, 0)
	flipRows(dst)
}

func flipRows(img *image.RGBA) {
	h := img.Rect.Dy()
	n := img.Rect.Dx() * 4
	tmp := make([]uint8, n)
	for y := 0; y < h/2; y++ {
		top := img.Pix[y*img.Stride : y*img.Stride+n]
		bot := img.Pix[(h-1-y)*img.Stride : (h-1-y)*img.Stride+n]
		copy(tmp, top)
		copy(top, bot)
		copy(bot, tmp)
	}
}
