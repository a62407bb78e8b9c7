package gfx

import (
	"image"
	"image/color"
	"testing"
)

func TestFlipRows(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 3))
	for y := 0; y < 3; y++ {
		for x := 0; x < 2; x++ {
			img.SetRGBA(x, y, color.RGBA{uint8(y), uint8(x), 0, 255})
		}
	}
	flipRows(img)
	for y := 0; y < 3; y++ {
		for x := 0; x < 2; x++ {
			got := img.RGBAAt(x, y)
			want := color.RGBA{uint8(2 - y), uint8(x), 0, 255}
			if got != want {
				t.Errorf("pixel (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestShaderTypeString(t *testing.T) {
	if VertexShaderType.String() != "vertex" || FragmentShaderType.String() != "fragment" {
		t.Fatal("unexpected shader type names")
	}
}
