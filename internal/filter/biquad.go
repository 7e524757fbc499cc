// Package filter implements the direct-form-I biquad used in the voice
// signal path.
package filter

import (
	"math"

	"github.com/cbegin/polysynth-go/internal/buffer"
)

// Params selects the initial voice filter configuration from a preset.
type Params struct {
	Freq      float32
	Resonance float32
}

// Biquad is a direct-form-I second-order section. A freshly constructed
// Biquad passes audio through unchanged.
type Biquad struct {
	a1, a2     float32
	b0, b1, b2 float32
	xz1, xz2   float32
	yz1, yz2   float32
}

func New() *Biquad {
	return &Biquad{b0: 1.0}
}

// analogCutoff prewarps a digital cutoff to its analog-prototype frequency.
func analogCutoff(fd float32) float32 {
	return float32(math.Tan(math.Pi*float64(fd)/buffer.SampleRate)) / (2 * math.Pi)
}

// SetThru bypasses the filter without clearing its state history.
func (f *Biquad) SetThru() {
	f.a1, f.a2 = 0, 0
	f.b0, f.b1, f.b2 = 1, 0, 0
}

func (f *Biquad) SetLPF(cutoff, reso float32) {
	fa := analogCutoff(cutoff)
	sqfc := fa * fa
	const sqpi = math.Pi * math.Pi
	a0 := 1.0 + (2.0*math.Pi*fa)/reso + 4.0*sqpi*sqfc
	f.a1 = (8.0*sqpi*sqfc - 2.0) / a0
	f.a2 = (1.0 - 2.0*math.Pi*fa/reso + 4.0*sqpi*sqfc) / a0
	f.b0 = (4.0 * sqpi * sqfc) / a0
	f.b1 = (8.0 * sqpi * sqfc) / a0
	f.b2 = f.b0
}

func (f *Biquad) SetBPF(cutoff, reso float32) {
	fa := analogCutoff(cutoff)
	sqfc := fa * fa
	const sqpi = math.Pi * math.Pi
	a0 := 1.0 + (2.0*math.Pi*fa)/reso + 4.0*sqpi*sqfc
	f.a1 = (8.0*sqpi*sqfc - 2.0) / a0
	f.a2 = (1.0 - 2.0*math.Pi*fa/reso + 4.0*sqpi*sqfc) / a0
	f.b0 = (2.0 * math.Pi * fa / reso) / a0
	f.b1 = 0
	f.b2 = -f.b0
}

func (f *Biquad) step(x float32) float32 {
	y := f.b0*x + f.b1*f.xz1 + f.b2*f.xz2 - f.a1*f.yz1 - f.a2*f.yz2
	f.xz2 = f.xz1
	f.xz1 = x
	f.yz2 = f.yz1
	f.yz1 = y
	return y
}

// Process filters the frame in place.
func (f *Biquad) Process(abuf *buffer.AudioFrame) {
	for i := 0; i < abuf.Len(); i++ {
		abuf.Set(i, f.step(abuf.Get(i)))
	}
}
