package effects

import (
	math "github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

var (
	glitchPink  = mgl32.Vec3{1.0, 0.05, 0.75}
	glitchGreen = mgl32.Vec3{0.0, 1.0, 0.2}
)

// glitch2 stacks several digital corruption layers: whole-frame jumps, a warped window,
// row shifts, chromatic aberration, a pink/green recolor, corrupted scanlines and flashes.
func glitch2(tex Sampler, uv mgl32.Vec2, c mgl32.Vec4, u *Uniforms) mgl32.Vec4 {
	t := u.Time

	// occasional whole-frame jump
	jt := math.Floor(t * 12)
	jr := random(mgl32.Vec2{jt * 0.017, jt * 0.031})
	jr2 := random(mgl32.Vec2{jt * 0.053, jt * 0.072})
	var jx, jy float32
	if jr > 0.75 {
		jx = (jr - 0.75) * 0.18 * sign(jr2-0.5)
		jy = (jr2 - 0.5) * 0.06
	}
	uv = fract2(uv.Add(mgl32.Vec2{jx, jy}))

	// warped window in the upper middle of the frame
	fz := smoothstep(0.08, 0.14, uv[1]) * (1 - smoothstep(0.50, 0.56, uv[1]))
	fzx := smoothstep(0.20, 0.30, uv[0]) * (1 - smoothstep(0.70, 0.80, uv[0]))
	fm := fz * fzx
	fby := math.Floor(uv[1]*80) / 80
	fg := random(mgl32.Vec2{fby * 3.1, math.Floor(t*20) * 0.7})
	var fs float32
	if fg > 0.7 && fm > 0.3 {
		fs = (fg - 0.7) * 0.35
	}
	uv[0] = fract(uv[0] + math.Sin(uv[1]*60+t*18)*0.025*fm + fs)
	uv[1] = fract(uv[1] + math.Cos(uv[0]*45+t*14)*0.018*fm)

	// row shifts
	by := math.Floor(uv[1]*40) / 40
	gs := random(mgl32.Vec2{by, math.Floor(t * 12)})
	gs2 := random(mgl32.Vec2{by + 0.3, math.Floor(t * 8)})
	if gs > 0.65 {
		uv[0] = fract(uv[0] + (gs-0.65)*1.2)
	}

	ab := 0.018 + gs2*0.025 + math.Abs(jx)*0.3
	aber := aberration(tex, uv, ab)

	lum := brightness(aber)
	wave := math.Sin(uv[1]*18+t*5)*0.5 + 0.5
	pal := mix3(glitchPink, glitchGreen, wave)
	col := mix3(aber.Mul(0.3), pal, smoothstep(0.2, 0.8, lum))

	line := mod(math.Floor(uv[1]*u.Resolution[1]), 3)
	ns := random(mgl32.Vec2{uv[0] * 100, math.Floor(t*20) + uv[1]*50})
	if line == 0 && ns > 0.6 {
		col = mix3(col, mgl32.Vec3{pal[2], pal[0], pal[1]}, 0.8)
	}

	var flash float32
	if jr > 0.88 {
		flash = (jr - 0.88) * 4
	}
	return rgba(saturate3(mix3(col, white, flash*0.5)), c[3])
}

var vhsGrid = mgl32.Vec2{320, 240}

// vhs emulates a worn tape: low resolution, bleeding channels, darkened alternate lines,
// grain in the shadows and short horizontal tracking jumps.
func vhs(tex Sampler, uv mgl32.Vec2, c mgl32.Vec4, u *Uniforms) mgl32.Vec4 {
	t := u.Time
	res := u.Resolution

	pix := mgl32.Vec2{
		(math.Floor(uv[0]*vhsGrid[0]) + 0.5) / vhsGrid[0],
		(math.Floor(uv[1]*vhsGrid[1]) + 0.5) / vhsGrid[1],
	}
	scan := 1 - mod(math.Floor(uv[1]*res[1]), 2)*0.18
	cs := 2 * texelSize(u)[0]

	col := aberration(tex, pix, cs)
	grain := random(uv.Add(mgl32.Vec2{t * 0.017, t * 0.031})) * 0.12
	g := grain * smoothstep(0.5, 0.0, brightness(col))
	col = col.Add(mgl32.Vec3{g, g, g})

	jt := math.Floor(t * 15)
	js := random(mgl32.Vec2{math.Floor(uv[1] * res[1] * 0.25), jt})
	ja := step(0.92, js)
	jamt := (random(mgl32.Vec2{js, jt * 0.1}) - 0.5) * 0.03
	juv := mgl32.Vec2{clamp(pix[0]+jamt*ja, 0, 1), clamp(pix[1], 0, 1)}
	jammed := aberration(tex, juv, cs)

	return rgba(saturate3(mix3(col, jammed, ja).Mul(scan)), c[3])
}
