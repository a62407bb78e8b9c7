package mask

import (
	"errors"
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/peragwin/camfx/effects"
	"github.com/peragwin/camfx/segment"
)

func uniform(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

// boxMask covers r inside a w×h frame.
func boxMask(w, h int, r image.Rectangle) *image.Alpha {
	m := image.NewAlpha(image.Rect(0, 0, w, h))
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			m.SetAlpha(x, y, color.Alpha{0xff})
		}
	}
	return m
}

func gradient(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{uint8(x * 255 / w), uint8(y * 255 / h), 40, 0xff})
		}
	}
	return img
}

func TestSolidFills(t *testing.T) {
	const w, h = 20, 10
	bg := gradient(w, h)
	res := &segment.Result{Image: bg, Mask: boxMask(w, h, image.Rect(0, 0, 10, 10))}
	c := New(DefaultOptions())

	want := map[string]color.RGBA{
		effects.KeyWhiteGlow:       {0xff, 0, 0, 0xff},
		effects.KeyBlackBackground: {0, 0, 0, 0xff},
		effects.KeyWhiteBackground: {0xff, 0xff, 0xff, 0xff},
	}
	for key, fill := range want {
		dst := image.NewRGBA(bg.Rect)
		if err := c.Compose(dst, res, key, false); err != nil {
			t.Fatal(key, err)
		}
		if got := dst.RGBAAt(3, 5); got != fill {
			t.Errorf("%s: inside mask %v, want %v", key, got, fill)
		}
		if got := dst.RGBAAt(15, 5); got != bg.RGBAAt(15, 5) {
			t.Errorf("%s: outside mask %v, want background %v", key, got, bg.RGBAAt(15, 5))
		}
	}
}

func TestMirror(t *testing.T) {
	const w, h = 24, 8
	res := &segment.Result{Image: gradient(w, h), Mask: boxMask(w, h, image.Rect(2, 1, 9, 6))}
	c := New(DefaultOptions())

	for _, key := range []string{effects.KeyWhiteGlow, effects.KeyEcho} {
		plain := image.NewRGBA(image.Rect(0, 0, w, h))
		mirrored := image.NewRGBA(image.Rect(0, 0, w, h))
		if err := c.Compose(plain, res, key, false); err != nil {
			t.Fatal(err)
		}
		if err := c.Compose(mirrored, res, key, true); err != nil {
			t.Fatal(err)
		}
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				if plain.RGBAAt(x, y) != mirrored.RGBAAt(w-1-x, y) {
					t.Fatalf("%s: (%d,%d) %v, mirrored %v", key, x, y, plain.RGBAAt(x, y), mirrored.RGBAAt(w-1-x, y))
				}
			}
		}
	}
}

func TestEchoAlpha(t *testing.T) {
	if a := EchoAlpha(7, 7); math.Abs(a-0.30) > 1e-12 {
		t.Errorf("farthest ghost %v", a)
	}
	if a := EchoAlpha(1, 7); math.Abs(a-0.80) > 1e-12 {
		t.Errorf("nearest ghost %v", a)
	}
	prev := 0.0
	for i := 7; i >= 1; i-- {
		a := EchoAlpha(i, 7)
		if a <= prev {
			t.Fatalf("ghost %d alpha %v not above %v", i, a, prev)
		}
		prev = a
	}
	if a := EchoAlpha(1, 1); a != 0.8 {
		t.Errorf("single ghost %v", a)
	}
}

func near(a, b uint8) bool {
	d := int(a) - int(b)
	return d >= -1 && d <= 1
}

func TestEchoShadow(t *testing.T) {
	const w, h = 200, 60
	gray := color.RGBA{100, 100, 100, 0xff}
	res := &segment.Result{Image: uniform(w, h, gray), Mask: boxMask(w, h, image.Rect(0, 0, 5, 5))}
	opts := DefaultOptions()
	opts.EchoShadow = true
	c := New(opts)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	if err := c.Compose(dst, res, effects.KeyEcho, false); err != nil {
		t.Fatal(err)
	}

	// ghost i sits at (22i, 6i) and blends rgb(10,10,10) over the background
	for i := 1; i <= 7; i++ {
		a := EchoAlpha(i, 7)
		want := uint8(10*a + 100*(1-a))
		got := dst.RGBAAt(22*i+2, 6*i+2)
		if !near(got.R, want) || got.R != got.G || got.A != 0xff {
			t.Errorf("ghost %d: %v, want about %d", i, got, want)
		}
	}
	// the sharp subject is on top
	if got := dst.RGBAAt(2, 2); got != gray {
		t.Errorf("subject %v", got)
	}
	if got := dst.RGBAAt(150, 2); got != gray {
		t.Errorf("background %v", got)
	}
}

func TestEchoSubjectGhosts(t *testing.T) {
	const w, h = 100, 30
	img := uniform(w, h, color.RGBA{200, 0, 0, 0xff})
	// paint the subject blue
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.SetRGBA(x, y, color.RGBA{0, 0, 200, 0xff})
		}
	}
	res := &segment.Result{Image: img, Mask: boxMask(w, h, image.Rect(0, 0, 4, 4))}
	c := New(DefaultOptions())
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	if err := c.Compose(dst, res, effects.KeyEcho, false); err != nil {
		t.Fatal(err)
	}
	got := dst.RGBAAt(23, 7)
	if got.B < 150 || got.R > 50 {
		t.Errorf("first ghost should be mostly subject colored, got %v", got)
	}
}

func TestStaticSilhouette(t *testing.T) {
	const w, h = 16, 16
	bg := gradient(w, h)
	res := &segment.Result{Image: bg, Mask: boxMask(w, h, image.Rect(4, 4, 12, 12))}
	c := New(DefaultOptions())
	dst := image.NewRGBA(bg.Rect)
	if err := c.Compose(dst, res, effects.KeyStaticSilhouette, false); err != nil {
		t.Fatal(err)
	}
	distinct := map[uint8]bool{}
	for y := 4; y < 12; y++ {
		for x := 4; x < 12; x++ {
			p := dst.RGBAAt(x, y)
			if p.R != p.G || p.G != p.B || p.A != 0xff {
				t.Fatalf("(%d,%d) not opaque gray: %v", x, y, p)
			}
			distinct[p.R] = true
		}
	}
	if len(distinct) < 10 {
		t.Errorf("noise has only %d levels", len(distinct))
	}
	if dst.RGBAAt(0, 0) != bg.RGBAAt(0, 0) {
		t.Error("background changed outside the mask")
	}
}

func TestBlurSubject(t *testing.T) {
	const w, h = 40, 40
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := uint8(0)
			if (x+y)%2 == 0 {
				v = 0xff
			}
			img.SetRGBA(x, y, color.RGBA{v, v, v, 0xff})
		}
	}
	res := &segment.Result{Image: img, Mask: boxMask(w, h, image.Rect(10, 10, 30, 30))}
	opts := DefaultOptions()
	opts.BlurSigma = 3
	opts.BlurMargin = 6
	c := New(opts)
	dst := image.NewRGBA(img.Rect)
	if err := c.Compose(dst, res, effects.KeyBlur, false); err != nil {
		t.Fatal(err)
	}
	if p := dst.RGBAAt(20, 20); p.R < 64 || p.R > 192 {
		t.Errorf("subject not blurred: %v", p)
	}
	if dst.RGBAAt(2, 2) != img.RGBAAt(2, 2) || dst.RGBAAt(3, 2) != img.RGBAAt(3, 2) {
		t.Error("background should stay sharp")
	}
}

func TestScaledInputs(t *testing.T) {
	res := &segment.Result{
		Image: uniform(10, 10, color.RGBA{0, 0xff, 0, 0xff}),
		Mask:  boxMask(10, 10, image.Rect(0, 0, 10, 10)),
	}
	c := New(DefaultOptions())
	dst := image.NewRGBA(image.Rect(0, 0, 30, 20))
	if err := c.Compose(dst, res, effects.KeyBlackBackground, false); err != nil {
		t.Fatal(err)
	}
	if p := dst.RGBAAt(15, 10); p != (color.RGBA{0, 0, 0, 0xff}) {
		t.Errorf("scaled mask did not cover the canvas: %v", p)
	}
}

func TestComposeRejects(t *testing.T) {
	c := New(DefaultOptions())
	dst := image.NewRGBA(image.Rect(0, 0, 4, 4))
	full := &segment.Result{Image: uniform(4, 4, color.RGBA{A: 0xff}), Mask: boxMask(4, 4, image.Rect(0, 0, 4, 4))}
	if err := c.Compose(dst, &segment.Result{Image: full.Image}, effects.KeyBlur, false); err == nil {
		t.Error("incomplete result accepted")
	}
	if err := c.Compose(dst, full, "sepia", false); err == nil {
		t.Error("non-mask key accepted")
	}
}

func TestPool(t *testing.T) {
	p := NewPool()
	err := p.With(4, 4, func(a, b *image.RGBA) error {
		a.Pix[0] = 9
		return p.With(4, 4, func(*image.RGBA, *image.RGBA) error { return nil })
	})
	if !errors.Is(err, ErrPoolExhausted) {
		t.Fatal("nested With:", err)
	}
	if err := p.With(4, 4, func(a, b *image.RGBA) error {
		if a.Pix[0] != 0 {
			t.Error("surface not cleared")
		}
		if a == b {
			t.Error("surfaces alias")
		}
		return nil
	}); err != nil {
		t.Fatal(err)
	}
	if p.Allocations() != 1 {
		t.Fatal("allocations", p.Allocations())
	}
	p.With(8, 4, func(a, b *image.RGBA) error {
		if a.Rect.Dx() != 8 {
			t.Error("not resized")
		}
		return nil
	})
	if p.Allocations() != 2 {
		t.Fatal("allocations after resize", p.Allocations())
	}
}

func TestSetOptionsKeepsState(t *testing.T) {
	const w, h = 16, 16
	bg := gradient(w, h)
	res := &segment.Result{Image: bg, Mask: boxMask(w, h, image.Rect(4, 4, 12, 12))}
	updated, plain := New(DefaultOptions()), New(DefaultOptions())

	a, b := image.NewRGBA(bg.Rect), image.NewRGBA(bg.Rect)
	for _, c := range []*Compositor{updated, plain} {
		if err := c.Compose(a, res, effects.KeyStaticSilhouette, false); err != nil {
			t.Fatal(err)
		}
	}
	pool := updated.Pool()

	opts := DefaultOptions()
	opts.Fill[effects.KeyWhiteGlow] = color.RGBA{0, 0xff, 0, 0xff}
	opts.BlurSigma = 4
	opts.Seed = 99
	updated.SetOptions(opts)

	if updated.Pool() != pool || pool.Allocations() != 1 {
		t.Fatalf("scratch surfaces replaced: same pool %v, allocations %d",
			updated.Pool() == pool, pool.Allocations())
	}
	if got := updated.Options().BlurSigma; got != 4 {
		t.Errorf("blur sigma %v, want 4", got)
	}

	// the noise carries on from where it was instead of restarting
	if err := updated.Compose(a, res, effects.KeyStaticSilhouette, false); err != nil {
		t.Fatal(err)
	}
	if err := plain.Compose(b, res, effects.KeyStaticSilhouette, false); err != nil {
		t.Fatal(err)
	}
	for i := range a.Pix {
		if a.Pix[i] != b.Pix[i] {
			t.Fatalf("byte %d: noise diverged after SetOptions", i)
		}
	}

	if err := updated.Compose(a, res, effects.KeyWhiteGlow, false); err != nil {
		t.Fatal(err)
	}
	if got := a.RGBAAt(6, 6); got != (color.RGBA{0, 0xff, 0, 0xff}) {
		t.Errorf("new fill not used: %v", got)
	}
	if pool.Allocations() != 1 {
		t.Errorf("allocations %d after recomposing", pool.Allocations())
	}
}
