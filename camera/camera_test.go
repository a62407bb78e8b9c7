package camera

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"
)

func TestFeed(t *testing.T) {
	var f Feed
	if _, err := f.Frame(); !errors.Is(err, ErrNotReady) {
		t.Fatal("empty feed:", err)
	}
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	f.Push(img)
	got, err := f.Frame()
	if err != nil || got != img {
		t.Fatal(got, err)
	}
}

func TestParseFacing(t *testing.T) {
	for s, want := range map[string]Facing{
		"front": FacingFront, "user": FacingFront,
		"back": FacingBack, "environment": FacingBack,
		"": FacingUnknown, "unknown": FacingUnknown,
	} {
		got, err := ParseFacing(s)
		if err != nil || got != want {
			t.Errorf("%q: %v %v", s, got, err)
		}
	}
	if _, err := ParseFacing("sideways"); err == nil {
		t.Error("bad facing accepted")
	}
	if !FacingUnknown.Mirrored() || !FacingFront.Mirrored() || FacingBack.Mirrored() {
		t.Error("mirroring by facing")
	}
}

func TestTestPatternMoves(t *testing.T) {
	p := NewTestPattern(64, 32)
	now := time.Unix(100, 0)
	p.now = func() time.Time { return now }
	p.start = now

	a, err := p.Frame()
	if err != nil {
		t.Fatal(err)
	}
	first := a.RGBAAt(0, 0)
	if a.RGBAAt(32, 16) != (color.RGBA{0xf0, 0xf0, 0xf0, 0xff}) {
		t.Error("no disc in the middle")
	}
	now = now.Add(time.Second)
	b, _ := p.Frame()
	if b.RGBAAt(0, 0) == first {
		t.Error("pattern did not move")
	}
}

func TestDecodeStill(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for i := range src.Pix {
		src.Pix[i] = 0x80
		if i%4 == 3 {
			src.Pix[i] = 0xff
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, src); err != nil {
		t.Fatal(err)
	}
	s, err := DecodeStill(bytes.NewReader(buf.Bytes()), 8, 6)
	if err != nil {
		t.Fatal(err)
	}
	f, _ := s.Frame()
	if f.Rect.Dx() != 8 || f.Rect.Dy() != 6 {
		t.Fatal("size", f.Rect)
	}
	if p := f.RGBAAt(4, 3); p.R < 0x7e || p.R > 0x82 {
		t.Error("pixel", p)
	}
	if _, err := DecodeStill(bytes.NewReader([]byte("nope")), 1, 1); err == nil {
		t.Error("garbage decoded")
	}
}
