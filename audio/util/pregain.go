package util

import (
	"math"

	"github.com/golang/glog"
)

// PreGain is an automatic gain stage. A one-pole filter smooths the block RMS, and a
// PD controller on the log2 distance to Target steers the gain.
type PreGain struct {
	// A weights the new block RMS and B the previous estimate.
	A, B float64
	// Kp and Kd are the proportional and derivative gains.
	Kp, Kd float64
	Target float64

	rms  float64
	gain float64
	err  float64
}

// NewPreGain returns a gain stage aiming the signal RMS at target.
func NewPreGain(target float64) *PreGain {
	return &PreGain{
		A: 0.1, B: 0.9,
		Kp: 0.01, Kd: 0.005,
		Target: target,
		rms:    target,
		gain:   1,
	}
}

// Gain is the current multiplier.
func (p *PreGain) Gain() float64 { return p.gain }

// Apply scales block in place and updates the gain from the result.
func (p *PreGain) Apply(block []float32) {
	if len(block) == 0 {
		return
	}
	g := float32(p.gain)
	sum := 0.0
	for i := range block {
		block[i] *= g
		sum += float64(block[i]) * float64(block[i])
	}

	rms := math.Sqrt(2 * sum / float64(len(block)))
	p.rms = p.A*rms + p.B*p.rms

	e := math.Log2(p.Target) - math.Log2(p.rms+1e-7)
	p.gain += p.Kp*e + p.Kd*(e-p.err)
	if p.gain > 1e6 {
		p.gain = 1e6
	} else if p.gain < 1e-6 {
		p.gain = 1e-6
	}
	p.err = e

	glog.V(3).Infof("rms = %.04f\tpregain = %.02f", p.rms, p.gain)
}
