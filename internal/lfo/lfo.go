// Package lfo implements the control-rate low-frequency oscillator used for
// pitch modulation. One LFO belongs to one voice; it renders one value per
// control interval into a CtrlFrame.
package lfo

import "github.com/cbegin/polysynth-go/internal/buffer"

// Wave selects the carrier shape.
type Wave int

const (
	WaveTri Wave = iota
	WaveSaw
	WaveSqu
	WaveSin
)

// Direction shapes the swing: Both passes it whole; Upper and Lower halve
// it and shift it up or down by a quarter of the current level.
type Direction int

const (
	DirBoth Direction = iota
	DirUpper
	DirLower
)

// Params configures an LFO from a preset. FadeIn and Delay are counted in
// control ticks (CtrlInterval/SampleRate seconds each).
type Params struct {
	Freq      float32
	Wave      Wave
	Direction Direction
	FadeIn    uint32
	Delay     uint32
}

// Lfo produces all four shapes from one folded-ramp expression; the shape
// is selected by the coefficients (x1, x2, y, z).
type Lfo struct {
	fadeIn     uint32
	delay      uint32
	phase      float32
	deltaPhase float32
	direction  Direction
	x1, x2     float32
	y, z       float32
	tick       uint32
}

func New(p Params) *Lfo {
	l := &Lfo{
		fadeIn:     p.FadeIn,
		delay:      p.Delay,
		deltaPhase: deltaPhase(p.Freq),
	}
	l.setShape(p.Wave, p.Direction)
	return l
}

func deltaPhase(freq float32) float32 {
	return freq * buffer.CtrlInterval / buffer.SampleRate
}

func (l *Lfo) setShape(w Wave, dir Direction) {
	switch w {
	case WaveSaw:
		l.x1, l.x2, l.y, l.z = 0.0, 2.0, 2.0, 0.0
	case WaveSqu:
		l.x1, l.x2, l.y, l.z = 0.5, 1.5, 100000.0, 0.0
	case WaveSin:
		l.x1, l.x2, l.y, l.z = 0.5, 1.5, 6.2832, 1.0/6.78
	default:
		l.x1, l.x2, l.y, l.z = 0.5, 1.5, 4.0, 0.0
	}
	l.direction = dir
}

// SetWave decodes a 7-bit controller value: bits 5..6 pick the shape, bits
// 4..5 the direction. Values outside the known codes fall back to Tri/Both.
func (l *Lfo) SetWave(value byte) {
	var w Wave
	switch value & 0x60 {
	case 0x00:
		w = WaveTri
	case 0x20:
		w = WaveSaw
	case 0x40:
		w = WaveSqu
	default:
		w = WaveSin
	}
	var dir Direction
	switch (value & 0x30) >> 4 {
	case 1:
		dir = DirUpper
	case 2:
		dir = DirLower
	default:
		dir = DirBoth
	}
	l.setShape(w, dir)
}

// SetFreq sets the rate from a 7-bit controller value, in tenths of Hz.
func (l *Lfo) SetFreq(value byte) {
	l.deltaPhase = deltaPhase(float32(value) / 10.0)
}

// Start rewinds the fade-in/delay gate; the phase keeps running.
func (l *Lfo) Start() { l.tick = 0 }

// Process renders one control value per tick into cbuf.
func (l *Lfo) Process(cbuf *buffer.CtrlFrame) {
	phase := l.phase
	for i := 0; i < cbuf.Len(); i++ {
		value := phase
		if v := l.x1 - phase; value < v {
			value = v
		}
		if v := l.x2 - phase; value > v {
			value = v
		}
		value -= 0.5
		value *= l.y
		value -= value * value * value * l.z

		phase += l.deltaPhase
		if phase >= 1.0 {
			phase -= 1.0
		}
		if value > 1.0 {
			value = 1.0
		} else if value < -1.0 {
			value = -1.0
		}

		var lvl float32 = 1.0
		var ofs float32
		if l.tick < l.fadeIn {
			lvl = 0.0
		} else if l.tick < l.fadeIn+l.delay {
			lvl = float32(l.tick-l.fadeIn) / float32(l.delay)
		}
		switch l.direction {
		case DirUpper:
			lvl /= 2.0
			ofs = lvl / 2.0
		case DirLower:
			lvl /= 2.0
			ofs = -lvl / 2.0
		}
		cbuf.Set(i, value*lvl+ofs)
		l.tick++
	}
	l.phase = phase
}
