// Package fft turns a stream of audio samples into the byte spectrum read by the
// audio-reactive effects.
package fft

import (
	"context"
	"math"
	"math/cmplx"
	"sync"

	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"

	"github.com/peragwin/camfx/audio/util"
)

// Analyser defaults, matching what browsers ship for an AnalyserNode.
const (
	DefaultSize      = 256
	DefaultSmoothing = 0.7
	DefaultMinDB     = -100
	DefaultMaxDB     = -30
)

// Analyser keeps the latest window of samples and computes a smoothed magnitude spectrum
// on demand, scaled to bytes between MinDB and MaxDB.
type Analyser struct {
	Size      int
	Smoothing float64
	MinDB     float64
	MaxDB     float64
	// PreGain, when set, levels each block before it enters the window.
	PreGain *util.PreGain

	ring *util.RingBuffer

	mu       sync.Mutex
	frame    []float64
	smoothed []float64
}

// NewAnalyser returns an analyser over windows of size samples. size must be a power of
// two.
func NewAnalyser(size int) *Analyser {
	return &Analyser{
		Size:      size,
		Smoothing: DefaultSmoothing,
		MinDB:     DefaultMinDB,
		MaxDB:     DefaultMaxDB,
		ring:      util.NewRingBuffer(size),
		frame:     make([]float64, size),
		smoothed:  make([]float64, size/2),
	}
}

// Write appends samples to the analysis window. With a PreGain the samples are scaled in
// place.
func (a *Analyser) Write(samples []float32) {
	if a.PreGain != nil {
		a.PreGain.Apply(samples)
	}
	a.ring.Push(samples)
}

// Run feeds blocks from in until it closes or ctx is done.
func (a *Analyser) Run(ctx context.Context, in <-chan []float32) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case block, ok := <-in:
			if !ok {
				return nil
			}
			a.Write(block)
		}
	}
}

// FrequencyBinCount is half the window size.
func (a *Analyser) FrequencyBinCount() int {
	return a.Size / 2
}

// ByteFrequencyData writes the current spectrum into dst, one byte per bin. Each call
// advances the smoothing filter, so it should be called once per frame.
func (a *Analyser) ByteFrequencyData(dst []byte) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.ring.Latest(a.frame)
	window.Apply(a.frame, window.Blackman)
	spectrum := fft.FFTReal(a.frame)

	n := float64(a.Size)
	scale := 255 / (a.MaxDB - a.MinDB)
	for k := range a.smoothed {
		mag := cmplx.Abs(spectrum[k]) / n
		a.smoothed[k] = a.Smoothing*a.smoothed[k] + (1-a.Smoothing)*mag
		if k >= len(dst) {
			continue
		}
		db := 20 * math.Log10(a.smoothed[k])
		v := (db - a.MinDB) * scale
		switch {
		case math.IsInf(v, -1) || v < 0:
			dst[k] = 0
		case v > 255:
			dst[k] = 255
		default:
			dst[k] = byte(v)
		}
	}
}
