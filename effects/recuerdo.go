package effects

import (
	math "github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Nostalgia describes a family of "old memory" looks: a gentle wobble, a radial blur that
// grows toward the edges, a warm tint, partial sepia and film grain. The variants only
// ever differed in these constants, so each one is a preset of this type.
type Nostalgia struct {
	// Samples is the number of radial blur taps.
	Samples int
	// BlurRadius is the offset scale of the outermost tap, in uv units.
	BlurRadius float32
	// FocusInner and FocusOuter bound the sharp center, measured on the distance from the
	// center scaled by FocusScale.
	FocusInner, FocusOuter, FocusScale float32
	// Wobble is the peak coordinate displacement of the slow wave.
	Wobble float32
	Grain  float32
	// Sepia is the blend factor toward the sepia-toned color.
	Sepia float32
	Tint  mgl32.Vec3
}

// NostalgiaRecuerdo is the preset registered as the recuerdo effect.
var NostalgiaRecuerdo = Nostalgia{
	Samples:    8,
	BlurRadius: 0.015,
	FocusInner: 0.2,
	FocusOuter: 0.4,
	FocusScale: 2.5,
	Wobble:     0.01,
	Grain:      0.1,
	Sepia:      0.5,
	Tint:       mgl32.Vec3{1.1, 1.05, 0.9},
}

// Transform returns the preset as a pixel transform.
func (n Nostalgia) Transform() Transform {
	return n.shade
}

func (n Nostalgia) shade(tex Sampler, uv mgl32.Vec2, c mgl32.Vec4, u *Uniforms) mgl32.Vec4 {
	t := u.Time
	wob := math.Sin(t*0.8) * n.Wobble
	uv[0] += math.Sin(uv[1]*20+t*3) * wob
	uv[1] += math.Cos(uv[0]*22+t*2.5) * wob

	grain := random(uv.Mul(t)) * n.Grain
	dir := uv.Sub(center)
	focus := smoothstep(n.FocusOuter, n.FocusInner, dir.Len()*n.FocusScale)
	strength := (1 - focus) * n.BlurRadius

	samples := n.Samples
	if samples < 1 {
		samples = 1
	}
	var blurred mgl32.Vec4
	for i := 0; i < samples; i++ {
		off := dir.Mul(strength * float32(i) / float32(samples))
		blurred = blurred.Add(tex.Sample(uv.Add(off)))
	}
	blurred = blurred.Mul(1 / float32(samples))

	mixed := mul3(mix4(blurred, tex.Sample(uv), focus).Vec3(), n.Tint)
	toned := mix3(mixed, sepiaTone(mixed), n.Sepia)
	return rgba(saturate3(toned.Add(mgl32.Vec3{grain, grain, grain})), c[3])
}
