// Package effects implements the per-pixel transform catalog. Every transform is a pure
// function of a texture, a coordinate and the frame uniforms, so the same catalog can be
// evaluated on the CPU by Render or mirrored in a fragment program.
package effects

import "github.com/go-gl/mathgl/mgl32"

// Transform maps the color c sampled from tex at uv to an output color. Transforms that
// need neighbouring pixels sample tex themselves.
type Transform func(tex Sampler, uv mgl32.Vec2, c mgl32.Vec4, u *Uniforms) mgl32.Vec4

// ID selects a transform. It is the integer uploaded as the filter uniform on the GPU path.
type ID int

const (
	None ID = iota
	Grayscale
	Invert
	Sepia
	EcoPink
	Weird
	GlowOutline
	AngelicalGlitch
	AudioColorShift
	ModularColorShift
	Kaleidoscope
	Mirror
	Fisheye
	Recuerdo
	Glitch2
	VHS

	// NumIDs is the number of registered transforms.
	NumIDs
)

var registry = [NumIDs]Transform{
	None:              passThrough,
	Grayscale:         grayscale,
	Invert:            invert,
	Sepia:             sepia,
	EcoPink:           ecoPink,
	Weird:             weird,
	GlowOutline:       glowOutline,
	AngelicalGlitch:   angelicalGlitch,
	AudioColorShift:   audioColorShift,
	ModularColorShift: modularColorShift,
	Kaleidoscope:      kaleidoscope,
	Mirror:            mirror,
	Fisheye:           fisheye,
	Recuerdo:          NostalgiaRecuerdo.shade,
	Glitch2:           glitch2,
	VHS:               vhs,
}

// Valid reports whether id names a registered transform.
func (id ID) Valid() bool {
	return id >= 0 && id < NumIDs
}

// Transform returns the transform for id. Out of range ids pass the color through.
func (id ID) Transform() Transform {
	if !id.Valid() {
		return passThrough
	}
	return registry[id]
}

// Shade evaluates id at uv and clamps the result to the unit range.
func Shade(id ID, tex Sampler, uv mgl32.Vec2, u *Uniforms) mgl32.Vec4 {
	return saturate4(id.Transform()(tex, uv, tex.Sample(uv), u))
}
