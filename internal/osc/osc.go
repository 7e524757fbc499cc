// Package osc implements the oscillator family. One Osc renders one audio
// block per call, driven by a control-rate pitch-modulation buffer from the
// voice LFO.
package osc

import (
	"math"

	"github.com/cbegin/polysynth-go/internal/buffer"
	"github.com/cbegin/polysynth-go/internal/wavetable"
)

// Wave selects the generator variant.
type Wave int

const (
	Sine Wave = iota
	Saw
	Square
	Pulse
	AdditiveFormant
	VocalGlottal
)

const maxHarmonics = 32

// Params configures an oscillator from a preset.
type Params struct {
	Wave       Wave
	CoarseTune int     // semitones
	FineTune   float32 // cents
	LfoDepth   float32 // pitch-mod depth, 1.0 = +-1 octave
	GlideSpeed float32 // per-block glide fraction; 0 disables portamento
}

// Osc holds the phase and pitch state for one voice.
type Osc struct {
	prms        Params
	pmd         float32
	basePitch   float32 // Hz
	targetPitch float32 // Hz, portamento goal
	cntRatio    float32 // bend ratio
	phase       float32 // 0.0 - 1.0
	f1, f2      float32 // additive formant centres
	amps        [maxHarmonics + 1]float32
}

func New(prms Params, note byte, pmd, centPitch float32) *Osc {
	base := wavetable.BasePitch(prms.CoarseTune, prms.FineTune, note)
	return &Osc{
		prms:        prms,
		pmd:         pmd,
		basePitch:   base,
		targetPitch: base,
		cntRatio:    wavetable.CentRatio(centPitch),
		f1:          800.0,
		f2:          1200.0,
	}
}

// ChangePmd sets the pitch-modulation depth (1.0 = one octave).
func (o *Osc) ChangePmd(value float32) { o.pmd = value }

// ChangePitch applies a bend offset in cents.
func (o *Osc) ChangePitch(cents float32) { o.cntRatio = wavetable.CentRatio(cents) }

// ChangeNote retunes immediately, abandoning any glide in flight.
func (o *Osc) ChangeNote(note byte) {
	o.basePitch = wavetable.BasePitch(o.prms.CoarseTune, o.prms.FineTune, note)
	o.targetPitch = o.basePitch
}

// Glide retargets the pitch; the glide itself advances block by block in
// Process. With a zero glide speed the note changes immediately.
func (o *Osc) Glide(note byte) {
	o.targetPitch = wavetable.BasePitch(o.prms.CoarseTune, o.prms.FineTune, note)
	if o.prms.GlideSpeed <= 0 {
		o.basePitch = o.targetPitch
	}
}

// Phase reports the oscillator phase, always in [0, 1).
func (o *Osc) Phase() float32 { return o.phase }

// Pitch reports the current base pitch in Hz.
func (o *Osc) Pitch() float32 { return o.basePitch }

func (o *Osc) advanceGlide() {
	if o.targetPitch == o.basePitch {
		return
	}
	o.basePitch += (o.targetPitch - o.basePitch) * o.prms.GlideSpeed
	diff := o.targetPitch - o.basePitch
	if diff < 0 {
		diff = -diff
	}
	if diff <= 0.01*o.targetPitch {
		o.basePitch = o.targetPitch
	}
}

func pow2(m float32) float32 {
	return float32(math.Exp2(float64(m)))
}

// Process renders one block. lbuf carries the control-rate LFO output; an
// LFO value of +-1 at full depth shifts the pitch one octave.
func (o *Osc) Process(abuf *buffer.AudioFrame, lbuf *buffer.CtrlFrame) {
	o.advanceGlide()
	deltaPhase := o.basePitch * o.cntRatio / buffer.SampleRate
	maxOvertone := int(wavetable.AbortFrequency / o.basePitch)
	if maxOvertone > maxHarmonics {
		maxOvertone = maxHarmonics
	}
	if o.prms.Wave == AdditiveFormant {
		o.harmonicAmps(maxOvertone)
	}
	phase := o.phase
	for i := 0; i < abuf.Len(); i++ {
		abuf.Set(i, o.sample(phase, maxOvertone))
		magnitude := lbuf.CtrlForAudio(i) * o.pmd
		if magnitude != 0 {
			phase += deltaPhase * pow2(magnitude)
		} else {
			phase += deltaPhase
		}
		for phase >= 1.0 {
			phase -= 1.0
		}
	}
	o.phase = phase
}

func (o *Osc) sample(phase float32, maxOvertone int) float32 {
	switch o.prms.Wave {
	case Saw:
		var saw float32
		for j := 1; j <= maxOvertone; j++ {
			ot := float32(j)
			saw += 0.5 * wavetable.Sine(phase*ot) / ot
		}
		return saw
	case Square:
		var sq float32
		for j := 1; j <= maxOvertone; j += 2 {
			ot := float32(j)
			sq += 0.25 * wavetable.Sine(phase*ot) / ot
		}
		return sq
	case Pulse:
		var pls float32 = 0.1
		for j := 1; j <= maxOvertone; j++ {
			pls += 0.5 * wavetable.PulsePartials[j] * wavetable.Sine(phase*float32(j))
		}
		return pls
	case AdditiveFormant:
		var sum float32
		for j := 1; j <= maxOvertone; j++ {
			sum += o.amps[j] * wavetable.Sine(phase*float32(j))
		}
		return sum * additiveTrim
	case VocalGlottal:
		return wavetable.Glottal(phase)
	default:
		return wavetable.Sine(phase)
	}
}
