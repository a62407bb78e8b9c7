// Package levelsensor watches the overall loudness of the audio spectrum and steps a
// palette pointer whenever it is loud enough.
package levelsensor

import (
	"github.com/golang/glog"
	colorful "github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/floats"
)

// DefaultThreshold is the normalized mean level above which the palette advances.
const DefaultThreshold = 0.15

// Spectrum provides byte magnitudes per frequency bin.
type Spectrum interface {
	FrequencyBinCount() int
	ByteFrequencyData(dst []byte)
}

// Monitor advances a palette index once per sample while the level is above Threshold.
// It is not safe for concurrent use.
type Monitor struct {
	Threshold float64

	spectrum Spectrum
	palette  Palette
	index    int
	level    float64

	bytes  []byte
	values []float64
}

// NewMonitor returns a monitor reading spec with the default palette and threshold. A nil
// spec is allowed; Sample then reads silence.
func NewMonitor(spec Spectrum) *Monitor {
	m := &Monitor{
		Threshold: DefaultThreshold,
		spectrum:  spec,
		palette:   DefaultPalette(),
	}
	if spec != nil {
		m.bytes = make([]byte, spec.FrequencyBinCount())
		m.values = make([]float64, len(m.bytes))
	}
	return m
}

// Sample reads the spectrum once and applies Process to its mean level.
func (m *Monitor) Sample() bool {
	if m.spectrum == nil || len(m.bytes) == 0 {
		return m.Process(0)
	}
	m.spectrum.ByteFrequencyData(m.bytes)
	for i, b := range m.bytes {
		m.values[i] = float64(b)
	}
	return m.Process(floats.Sum(m.values) / float64(len(m.values)) / 255)
}

// Process records level, in [0,1], and advances the palette if it is above the
// threshold. It reports whether the palette moved.
func (m *Monitor) Process(level float64) bool {
	m.level = level
	if level <= m.Threshold {
		return false
	}
	m.index = (m.index + 1) % len(m.palette)
	glog.V(3).Infof("levelsensor: level %.3f, palette -> %d", level, m.index)
	return true
}

// Index is the current palette index.
func (m *Monitor) Index() int { return m.index }

// Level is the last processed level.
func (m *Monitor) Level() float64 { return m.level }

// Color is the palette color at the current index.
func (m *Monitor) Color() colorful.Color {
	return m.palette.At(m.index)
}
