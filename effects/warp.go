package effects

import (
	math "github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	kaleidoscopeSector = math.Pi / 3
	fisheyeStrength    = 0.8
)

var center = mgl32.Vec2{0.5, 0.5}

// KaleidoscopeCoord folds uv into a 60° wedge around the image center, mirrored about its
// 30° bisector.
func KaleidoscopeCoord(uv mgl32.Vec2) mgl32.Vec2 {
	c := uv.Sub(center)
	r := c.Len()
	angle := math.Abs(mod(math.Atan2(c[1], c[0]), kaleidoscopeSector) - kaleidoscopeSector/2)
	s, co := math.Sincos(angle)
	return mgl32.Vec2{r * co, r * s}.Add(center)
}

// MirrorCoord reflects the right half of the image onto the left.
func MirrorCoord(uv mgl32.Vec2) mgl32.Vec2 {
	if uv[0] > 0.5 {
		uv[0] = 1 - uv[0]
	}
	return uv
}

// FisheyeCoord applies a radial lens warp of strength k. Positive k bulges the center
// outward, negative k pinches it.
func FisheyeCoord(uv mgl32.Vec2, k float32) mgl32.Vec2 {
	c := uv.Mul(2).Sub(mgl32.Vec2{1, 1})
	r := c.Len()
	theta := math.Atan2(c[1], c[0])
	var rd float32
	if k > 0 {
		rd = r / (1 - k*r)
	} else {
		rd = r * (1 + k*r)
	}
	s, co := math.Sincos(theta)
	return mgl32.Vec2{rd*co + 1, rd*s + 1}.Mul(0.5)
}

func kaleidoscope(tex Sampler, uv mgl32.Vec2, c mgl32.Vec4, _ *Uniforms) mgl32.Vec4 {
	return rgba(tex.Sample(KaleidoscopeCoord(uv)).Vec3(), c[3])
}

func mirror(tex Sampler, uv mgl32.Vec2, c mgl32.Vec4, _ *Uniforms) mgl32.Vec4 {
	return rgba(tex.Sample(MirrorCoord(uv)).Vec3(), c[3])
}

func fisheye(tex Sampler, uv mgl32.Vec2, c mgl32.Vec4, _ *Uniforms) mgl32.Vec4 {
	return rgba(tex.Sample(FisheyeCoord(uv, fisheyeStrength)).Vec3(), c[3])
}
