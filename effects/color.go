package effects

import "github.com/go-gl/mathgl/mgl32"

func passThrough(_ Sampler, _ mgl32.Vec2, c mgl32.Vec4, _ *Uniforms) mgl32.Vec4 {
	return c
}

func grayscale(_ Sampler, _ mgl32.Vec2, c mgl32.Vec4, _ *Uniforms) mgl32.Vec4 {
	l := c[0]*0.2126 + c[1]*0.7152 + c[2]*0.0722
	return mgl32.Vec4{l, l, l, c[3]}
}

func invert(_ Sampler, _ mgl32.Vec2, c mgl32.Vec4, _ *Uniforms) mgl32.Vec4 {
	return mgl32.Vec4{1 - c[0], 1 - c[1], 1 - c[2], c[3]}
}

func sepia(_ Sampler, _ mgl32.Vec2, c mgl32.Vec4, _ *Uniforms) mgl32.Vec4 {
	return rgba(sepiaTone(c.Vec3()), c[3])
}

// Byte thresholds (80, 180, 100 of 255) rounded to four places.
const (
	ecoPinkThreshold = 0.3137
	weirdHigh        = 0.7058
	weirdLow         = 0.3921
)

func ecoPink(_ Sampler, _ mgl32.Vec2, c mgl32.Vec4, _ *Uniforms) mgl32.Vec4 {
	rgb := c.Vec3()
	if average(rgb) < ecoPinkThreshold {
		rgb = mgl32.Vec3{
			clamp(rgb[0]+0.3137, 0, 1),
			clamp(rgb[1]-0.1961, 0, 1),
			clamp(rgb[2]+0.3922, 0, 1),
		}
	}
	return rgba(rgb, c[3])
}

func weird(_ Sampler, _ mgl32.Vec2, c mgl32.Vec4, _ *Uniforms) mgl32.Vec4 {
	rgb := c.Vec3()
	switch m := average(rgb); {
	case m > weirdHigh:
		rgb = mgl32.Vec3{rgb[2], rgb[0], rgb[1]}
	case m < weirdLow:
		rgb = rgb.Mul(0.5)
	}
	return rgba(rgb, c[3])
}

func audioColorShift(_ Sampler, _ mgl32.Vec2, c mgl32.Vec4, u *Uniforms) mgl32.Vec4 {
	s := u.ColorShift
	return mgl32.Vec4{mod(c[0]+s[0], 1), mod(c[1]+s[1], 1), mod(c[2]+s[2], 1), c[3]}
}

var modularPalette = [3]mgl32.Vec3{
	{0.3137, 0.4706, 0.7059},
	{0.3922, 0.7059, 0.7843},
	{0.4706, 0.5882, 1.0},
}

// modularColorShift buckets the pixel by mean intensity and pulls it toward that bucket's
// palette color, weighted by the matching band amplitude.
func modularColorShift(_ Sampler, _ mgl32.Vec2, c mgl32.Vec4, u *Uniforms) mgl32.Vec4 {
	rgb := c.Vec3()
	var out mgl32.Vec3
	switch m := average(rgb); {
	case m > 0.6667:
		out = mix3(rgb, modularPalette[2], u.HighAmp)
	case m > 0.3922:
		out = mix3(rgb, modularPalette[1], u.MidAmp)
	default:
		out = mix3(rgb, modularPalette[0], u.BassAmp)
	}
	return rgba(saturate3(out), c[3])
}
