package levelsensor

import (
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Palette is the cycle of shift colors the monitor steps through.
type Palette []colorful.Color

func mustParseHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic("MustParseHex: " + err.Error())
	}
	return c
}

// DefaultPalette holds the six primary and secondary colors.
func DefaultPalette() Palette {
	return Palette{
		mustParseHex("#ff0000"),
		mustParseHex("#00ff00"),
		mustParseHex("#0000ff"),
		mustParseHex("#ffff00"),
		mustParseHex("#ff00ff"),
		mustParseHex("#00ffff"),
	}
}

// At returns the color at index i, wrapping around.
func (p Palette) At(i int) colorful.Color {
	n := len(p)
	return p[((i%n)+n)%n]
}
