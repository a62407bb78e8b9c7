package effects

import "github.com/go-gl/mathgl/mgl32"

// Uniforms are the frame-level parameters shared by every transform.
type Uniforms struct {
	Resolution  mgl32.Vec2
	AspectRatio float32
	// Time is elapsed seconds since the compositor started.
	Time float32
	// FlipX is -1 to mirror horizontally, +1 otherwise.
	FlipX float32
	// ColorShift is the audio palette vector used by audio-color-shift.
	ColorShift mgl32.Vec3

	BassAmp, MidAmp, HighAmp float32
}

// SetResolution updates the resolution and aspect ratio for a w×h frame.
func (u *Uniforms) SetResolution(w, h int) {
	u.Resolution = mgl32.Vec2{float32(w), float32(h)}
	if h > 0 {
		u.AspectRatio = float32(w) / float32(h)
	}
}
