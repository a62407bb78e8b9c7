package levelsensor

import (
	"path/filepath"
	"testing"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

type fixedSpectrum struct {
	level byte
}

func (f *fixedSpectrum) FrequencyBinCount() int { return 128 }

func (f *fixedSpectrum) ByteFrequencyData(dst []byte) {
	for i := range dst {
		dst[i] = f.level
	}
}

func TestPaletteAdvance(t *testing.T) {
	spec := &fixedSpectrum{}
	m := NewMonitor(spec)

	spec.level = 30 // 0.118
	if m.Sample() || m.Index() != 0 {
		t.Fatal("advanced below threshold")
	}

	spec.level = 50 // 0.196
	for i := 1; i <= 7; i++ {
		if !m.Sample() {
			t.Fatalf("sample %d did not advance", i)
		}
		if m.Index() != i%6 {
			t.Fatalf("index %d after %d advances", m.Index(), i)
		}
	}
	if m.Color() != DefaultPalette()[1] {
		t.Fatal("color does not follow index", m.Color())
	}
}

func TestThresholdIsExclusive(t *testing.T) {
	m := NewMonitor(nil)
	if m.Process(DefaultThreshold) {
		t.Fatal("level equal to the threshold advanced")
	}
	if m.Sample() {
		t.Fatal("nil spectrum advanced")
	}
	if m.Level() != 0 {
		t.Fatal("level", m.Level())
	}
}

func TestPaletteWraps(t *testing.T) {
	p := DefaultPalette()
	if p.At(-1) != p[5] || p.At(6) != p[0] {
		t.Fatal("At does not wrap")
	}
	r, g, b := p[4].RGB255()
	if r != 255 || g != 0 || b != 255 {
		t.Fatal("magenta", r, g, b)
	}
}

func TestLevelTrace(t *testing.T) {
	spec := &fixedSpectrum{}
	m := NewMonitor(spec)

	levels := make([]float64, 120)
	index := make([]float64, len(levels))
	for i := range levels {
		// a beat every 20 frames lasting 4 frames
		if i%20 < 4 {
			spec.level = 90
		} else {
			spec.level = 10
		}
		m.Sample()
		levels[i] = m.Level()
		index[i] = float64(m.Index())
	}
	if m.Index() != (6*4)%6 {
		t.Fatal("expected 24 advances, index", m.Index())
	}

	p := plot.New()
	if err := plotutil.AddLinePoints(p,
		"level", newPlotter(levels),
		"index/6", newPlotter(scale(index, 1.0/6)),
	); err != nil {
		t.Fatal(err)
	}
	if err := p.Save(8*vg.Inch, 4*vg.Inch, filepath.Join(t.TempDir(), "levelTrace.png")); err != nil {
		t.Fatal(err)
	}
}

func scale(x []float64, k float64) []float64 {
	out := make([]float64, len(x))
	for i := range x {
		out[i] = x[i] * k
	}
	return out
}

func newPlotter(data []float64) plotter.XYs {
	pts := make(plotter.XYs, len(data))
	for i := range pts {
		pts[i].X = float64(i)
		pts[i].Y = data[i]
	}
	return pts
}
