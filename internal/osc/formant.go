package osc

import (
	"math"

	"github.com/cbegin/polysynth-go/internal/wavetable"
)

// Formant synthesis constants: gaussian width around each formant centre,
// the fixed third/fourth formant rules, and the output gain trim.
const (
	formantQ     = 150.0
	formantF4    = 3500.0
	additiveTrim = 4.0
)

// SetVowel positions the vowel in the unit square and recomputes the
// formant centres. Anchors: a(0,0), e(1,0), i(-1,0), u(0,1), o(0,-1);
// positions between anchors interpolate along the quadrant diagonals.
func (o *Osc) SetVowel(x, y float32) {
	f1, f2 := vowelFormants(x, y)
	o.f1 = f1
	o.f2 = f2
}

func vowelFormants(x, y float32) (f1, f2 float32) {
	f1, f2 = 800.0, 1200.0
	switch {
	case x == 0 && y == 0:
	case y > x:
		if y > -x { // a-u
			f1 -= 500.0 * y
		} else { // a-i
			f1 += 500.0 * x
			f2 += 1100.0 * x
		}
	default:
		if y > -x { // a-e
			f1 -= 300.0 * x
			f2 += 700.0 * x
		} else { // a-o
			f1 += 300.0 * y
			f2 += 300.0 * y
		}
	}
	return f1, f2
}

// harmonicAmps fills o.amps[1..maxOvertone] with the pulse-series base
// amplitude shaped by two filters: a roll-off that narrows as the
// fundamental rises, and a gaussian around the nearest formant centre.
func (o *Osc) harmonicAmps(maxOvertone int) {
	f0 := o.basePitch
	b := f0 / 200.0
	a := (200.0 - f0) * 1.2 / 1000.0

	f1, f2 := o.f1, o.f2
	if f0 > 400.0 {
		drift := 0.5 * (f0 - 400.0)
		f1 += drift
		f2 += drift
	}
	f3 := float32(2500.0)
	if f2 > 1900.0 {
		f3 = f2 + 600.0
	}
	m12 := (f1 + f2) / 2
	m23 := (f2 + f3) / 2
	m34 := (f3 + formantF4) / 2

	for k := 1; k <= maxOvertone; k++ {
		scale := a*float32(k) + b
		if scale < 0 {
			scale = 0
		}
		fk := float32(k) * f0
		var nearest float32
		switch {
		case fk < m12:
			nearest = f1
		case fk < m23:
			nearest = f2
		case fk < m34:
			nearest = f3
		default:
			nearest = formantF4
		}
		d := float64(fk - nearest)
		g := float32(math.Exp(-d*d/(2*formantQ*formantQ)))*1.5 + 0.5
		o.amps[k] = wavetable.PulsePartials[k] * scale * g
	}
}
