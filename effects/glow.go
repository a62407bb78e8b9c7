package effects

import (
	math "github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const glowJitter = 0.005

// glowOutline finds edges from the red channel of four jittered neighbours and mixes them
// toward white, adding a soft bloom to bright areas.
func glowOutline(tex Sampler, uv mgl32.Vec2, c mgl32.Vec4, u *Uniforms) mgl32.Vec4 {
	px := texelSize(u)
	sy := math.Sin(uv[1]*100) * glowJitter
	cy := math.Cos(uv[1]*100) * glowJitter
	sx := math.Sin(uv[0]*100) * glowJitter
	cx := math.Cos(uv[0]*100) * glowJitter

	up := tex.Sample(uv.Add(mgl32.Vec2{sy, px[1] + cx}))
	down := tex.Sample(uv.Add(mgl32.Vec2{cy, -px[1] + sx}))
	left := tex.Sample(uv.Add(mgl32.Vec2{-px[0] + sy, cx}))
	right := tex.Sample(uv.Add(mgl32.Vec2{px[0] + cy, sx}))

	diff := math.Abs(c[0]-up[0]) + math.Abs(c[0]-down[0]) +
		math.Abs(c[0]-left[0]) + math.Abs(c[0]-right[0])
	edge := smoothstep(0.01, 0.1, diff)
	glow := smoothstep(0.7, 1.0, brightness(c.Vec3())) * 0.5

	lit := c.Vec3().Add(mgl32.Vec3{glow, glow, glow})
	return rgba(saturate3(mix3(lit, white, edge)), c[3])
}

// angelicalGlitch boosts the frame, displaces it with a time-seeded hash and tints the
// bright regions with a slowly cycling hue.
func angelicalGlitch(tex Sampler, uv mgl32.Vec2, c mgl32.Vec4, u *Uniforms) mgl32.Vec4 {
	t := u.Time
	boosted := c.Vec3().Mul(1.3)
	b := brightness(boosted)

	s, co := math.Sincos(t * 0.1)
	dist := mgl32.Vec2{
		(random(uv.Add(mgl32.Vec2{s, co})) - 0.5) * 0.1,
		(random(uv.Add(mgl32.Vec2{co, s})) - 0.5) * 0.1,
	}
	distorted := tex.Sample(uv.Add(dist)).Vec3()

	if b > 0.5 {
		hue := mgl32.Vec3{
			0.5 + 0.3*math.Sin(t*2),
			0.2 + 0.5*math.Cos(t*1.5),
			0.6 + 0.4*math.Sin(t*3),
		}
		distorted = mix3(distorted, hue, 0.5)
	}
	return rgba(saturate3(distorted), c[3])
}
