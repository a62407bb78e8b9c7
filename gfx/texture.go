package gfx

import (
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// TextureConfig is a configuration for creating a new TextureObject
type TextureConfig struct {
	Image       *image.RGBA
	UniformName string
	// Unit is the texture unit the sampler uniform is bound to.
	Unit uint32
}

// TextureObject is a 2D RGBA texture bound to a sampler uniform.
type TextureObject struct {
	texID  uint32
	texLoc int32
	unit   uint32
	size   image.Point
}

// AddTextureObject creates a texture initialized from cfg.Image with linear filtering
// and clamp-to-edge wrapping.
func (c *Context) AddTextureObject(cfg *TextureConfig) (*TextureObject, error) {
	var texID uint32
	gl.GenTextures(1, &texID)
	gl.ActiveTexture(gl.TEXTURE0 + cfg.Unit)
	gl.BindTexture(gl.TEXTURE_2D, texID)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)

	tex := &TextureObject{
		texID:  texID,
		texLoc: c.GetUniformLocation(cfg.UniformName),
		unit:   cfg.Unit,
	}
	tex.Update(cfg.Image)
	gl.Uniform1i(tex.texLoc, int32(cfg.Unit))

	c.textures = append(c.textures, tex)
	return tex, nil
}

// Update uploads img. The storage is reallocated when the image size changes.
func (t *TextureObject) Update(img *image.RGBA) {
	gl.ActiveTexture(gl.TEXTURE0 + t.unit)
	gl.BindTexture(gl.TEXTURE_2D, t.texID)
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, int32(img.Stride/4))
	defer gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)

	size := img.Rect.Size()
	if size != t.size {
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(size.X), int32(size.Y),
			0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
		t.size = size
		return
	}
	gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, int32(size.X), int32(size.Y),
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
}

// Size is the size of the last uploaded image.
func (t *TextureObject) Size() image.Point { return t.size }

func (t *TextureObject) bind() {
	gl.ActiveTexture(gl.TEXTURE0 + t.unit)
	gl.BindTexture(gl.TEXTURE_2D, t.texID)
}
