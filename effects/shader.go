package effects

import (
	math "github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Helpers mirroring the GLSL built-ins the fragment program relies on. They operate on
// float32 so the CPU path rounds the same way a mediump/highp shader would.

var (
	lumaWeights = mgl32.Vec3{0.299, 0.587, 0.114}
	hashWeights = mgl32.Vec2{12.9898, 78.233}
	white       = mgl32.Vec3{1, 1, 1}
)

// random is the classic sine hash. It is deterministic for a given st.
func random(st mgl32.Vec2) float32 {
	return fract(math.Sin(st.Dot(hashWeights)) * 43758.5453123)
}

func brightness(c mgl32.Vec3) float32 {
	return c.Dot(lumaWeights)
}

func average(c mgl32.Vec3) float32 {
	return (c[0] + c[1] + c[2]) / 3
}

func fract(x float32) float32 {
	return x - math.Floor(x)
}

func mod(x, y float32) float32 {
	return x - y*math.Floor(x/y)
}

func clamp(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

func smoothstep(edge0, edge1, x float32) float32 {
	t := clamp((x-edge0)/(edge1-edge0), 0, 1)
	return t * t * (3 - 2*t)
}

func step(edge, x float32) float32 {
	if x < edge {
		return 0
	}
	return 1
}

func sign(x float32) float32 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}

func mix3(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return a.Mul(1 - t).Add(b.Mul(t))
}

func mix4(a, b mgl32.Vec4, t float32) mgl32.Vec4 {
	return a.Mul(1 - t).Add(b.Mul(t))
}

func mul3(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{a[0] * b[0], a[1] * b[1], a[2] * b[2]}
}

func saturate3(c mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{clamp(c[0], 0, 1), clamp(c[1], 0, 1), clamp(c[2], 0, 1)}
}

func saturate4(c mgl32.Vec4) mgl32.Vec4 {
	return mgl32.Vec4{clamp(c[0], 0, 1), clamp(c[1], 0, 1), clamp(c[2], 0, 1), clamp(c[3], 0, 1)}
}

func fract2(v mgl32.Vec2) mgl32.Vec2 {
	return mgl32.Vec2{fract(v[0]), fract(v[1])}
}

func rgba(c mgl32.Vec3, alpha float32) mgl32.Vec4 {
	return c.Vec4(alpha)
}

// texelSize returns 1/resolution, or zero on an axis with no resolution set.
func texelSize(u *Uniforms) mgl32.Vec2 {
	var px mgl32.Vec2
	if u.Resolution[0] > 0 {
		px[0] = 1 / u.Resolution[0]
	}
	if u.Resolution[1] > 0 {
		px[1] = 1 / u.Resolution[1]
	}
	return px
}

// sepiaTone applies the fixed sepia matrix and clamps the result.
func sepiaTone(c mgl32.Vec3) mgl32.Vec3 {
	r, g, b := c[0], c[1], c[2]
	return saturate3(mgl32.Vec3{
		r*0.393 + g*0.769 + b*0.189,
		r*0.349 + g*0.686 + b*0.168,
		r*0.272 + g*0.534 + b*0.131,
	})
}

// aberration samples red and blue offset along x by shift, green in place.
func aberration(tex Sampler, uv mgl32.Vec2, shift float32) mgl32.Vec3 {
	return mgl32.Vec3{
		tex.Sample(mgl32.Vec2{uv[0] + shift, uv[1]})[0],
		tex.Sample(uv)[1],
		tex.Sample(mgl32.Vec2{uv[0] - shift, uv[1]})[2],
	}
}
