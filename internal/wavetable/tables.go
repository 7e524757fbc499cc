// Package wavetable holds the global wave tables and the pitch math used by
// every oscillator variant. Tables are built once at init and read-only
// afterwards.
package wavetable

import "math"

// AbortFrequency is the highest partial frequency the band-limited
// generators will emit.
const AbortFrequency = 12000.0

const tableSteps = 256

// sinTable holds one sine cycle at 256 steps. The live region starts at
// index 2 and carries three guard entries past the cycle end so linear
// interpolation at the right edge never reads out of range.
var sinTable [tableSteps + 5]float32

// glottalTable holds one cycle of a glottal-pulse wave for the vocal
// oscillator, laid out like sinTable.
var glottalTable [tableSteps + 5]float32

// PulsePartials holds the Fourier series of a 10%-duty unit pulse, used by
// the pulse and additive oscillators. Index 0 is unused.
var PulsePartials [33]float32

func init() {
	for i := 0; i <= tableSteps+2; i++ {
		sinTable[i+2] = float32(math.Sin(2 * math.Pi * float64(i) / tableSteps))
	}
	for i := 0; i <= tableSteps+2; i++ {
		glottalTable[i+2] = glottalPulse(float64(i%tableSteps) / tableSteps)
	}
	for j := 1; j < len(PulsePartials); j++ {
		x := math.Pi * float64(j)
		PulsePartials[j] = float32(2.0 * math.Sin(0.1*x) / x)
	}
}

// glottalPulse evaluates a Rosenberg-style glottal flow pulse at phase
// p in [0,1): a rising-then-falling open segment over 60% of the cycle with
// a sharp closure, normalized to [-1, 1].
func glottalPulse(p float64) float32 {
	const open, peak = 0.6, 0.4
	var v float64
	switch {
	case p < peak:
		v = 0.5 * (1 - math.Cos(math.Pi*p/peak))
	case p < open:
		v = math.Cos(math.Pi * (p - peak) / (2 * (open - peak)))
	default:
		v = 0
	}
	return float32(2*v - 1)
}

func interp(table []float32, phase float32) float32 {
	for phase > 1.0 {
		phase -= 1.0
	}
	for phase < 0.0 {
		phase += 1.0
	}
	norm := phase * tableSteps
	idx := int(norm)
	frac := norm - float32(idx)
	y0 := table[idx+2]
	y := (table[idx+3]-y0)*frac + y0
	if y > 1.0 {
		y = 1.0
	} else if y < -1.0 {
		y = -1.0
	}
	return y
}

// Sine returns a table-interpolated sine for phase in cycles.
func Sine(phase float32) float32 { return interp(sinTable[:], phase) }

// Glottal returns a table-interpolated glottal pulse for phase in cycles.
func Glottal(phase float32) float32 { return interp(glottalTable[:], phase) }
