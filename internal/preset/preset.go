// Package preset supplies the read-only tone parameter tables addressed by
// MIDI program number. The compiled-in bank mirrors the shipped instrument
// set; hosts may override it with a YAML bank file.
package preset

import (
	"github.com/cbegin/polysynth-go/internal/effects"
	"github.com/cbegin/polysynth-go/internal/envelope"
	"github.com/cbegin/polysynth-go/internal/filter"
	"github.com/cbegin/polysynth-go/internal/lfo"
	"github.com/cbegin/polysynth-go/internal/osc"
)

// Tone is the full parameter tuple for one program. Voices copy the Tone by
// value at note-on, so later changes to a Tone never reach a sounding voice.
// A program change on a part replaces the part's instrument; the voices of
// the replaced instrument stop sounding and do not play out their release.
type Tone struct {
	Name string

	// Mono selects the monophonic note-stack policy instead of the
	// polyphonic pool.
	Mono bool

	// VolTrim scales the note volume computed from CC7 and CC11.
	VolTrim float32

	// Prm0Cutoff routes voice parameter 0 to the filter cutoff (value*20
	// Hz at Q=1) instead of the LFO rate.
	Prm0Cutoff bool

	Osc    osc.Params
	Aeg    envelope.Params
	Lfo    lfo.Params
	Delay  *effects.DelayParams
	Filter *filter.Params
}

// Bank is an ordered tone table plus the global send-delay setting.
type Bank struct {
	Tones []Tone
	Send  effects.DelayParams
}

// Tone resolves a program number; out-of-range programs clamp to the last
// defined tone.
func (b *Bank) Tone(program int) *Tone {
	if program < 0 {
		program = 0
	}
	if program >= len(b.Tones) {
		program = len(b.Tones) - 1
	}
	return &b.Tones[program]
}

const polyTrim = 0.5 * 0.5 * 0.5 * 0.5 // 4-bit headroom for the voice pool
const monoTrim = 2.0

// Default returns the compiled-in bank: six virtual-analog tones followed
// by the two monophonic singing tones.
func Default() *Bank {
	return &Bank{
		Send: effects.DelayParams{TimeL: 0.35, TimeR: 0.45, Att: 0.3},
		Tones: []Tone{
			{
				Name:    "sine echo",
				VolTrim: polyTrim,
				Osc:     osc.Params{Wave: osc.Sine, LfoDepth: 0.02},
				Aeg:     envelope.Params{AttackRate: 0.9, DecayRate: 0.2, SustainLevel: 0.0, ReleaseRate: 0.01},
				Lfo:     lfo.Params{Freq: 2.0, Wave: lfo.WaveTri, FadeIn: 30},
				Delay:   &effects.DelayParams{TimeL: 0.5, TimeR: 0.5, Att: 0.4},
			},
			{
				Name:    "saw pad",
				VolTrim: polyTrim,
				Osc:     osc.Params{Wave: osc.Saw},
				Aeg:     envelope.Params{AttackRate: 0.9, DecayRate: 1.0, SustainLevel: 1.0, ReleaseRate: 0.2},
				Lfo:     lfo.Params{Freq: 5.0, Wave: lfo.WaveTri, FadeIn: 200, Delay: 200},
				Delay:   &effects.DelayParams{TimeL: 0.6, TimeR: 0.4, Att: 0.3},
			},
			{
				Name:    "square lead",
				VolTrim: polyTrim,
				Osc:     osc.Params{Wave: osc.Square, LfoDepth: 0.02},
				Aeg:     envelope.Params{AttackRate: 0.5, DecayRate: 0.01, SustainLevel: 0.5, ReleaseRate: 0.1},
				Lfo:     lfo.Params{Freq: 4.5, Wave: lfo.WaveTri, FadeIn: 300, Delay: 300},
				Delay:   &effects.DelayParams{TimeL: 0.5, TimeR: 0.5, Att: 0.2},
			},
			{
				Name:    "sub pulse",
				VolTrim: polyTrim,
				Osc:     osc.Params{Wave: osc.Pulse, CoarseTune: -12, LfoDepth: 0.04},
				Aeg:     envelope.Params{AttackRate: 0.5, DecayRate: 0.01, SustainLevel: 0.5, ReleaseRate: 0.1},
				Lfo:     lfo.Params{Freq: 4.0, Wave: lfo.WaveTri, FadeIn: 100, Delay: 200},
				Delay:   &effects.DelayParams{TimeL: 0.8, TimeR: 0.7, Att: 0.2},
			},
			{
				Name:    "sine keys",
				VolTrim: polyTrim,
				Osc:     osc.Params{Wave: osc.Sine, LfoDepth: 0.02},
				Aeg:     envelope.Params{AttackRate: 0.5, DecayRate: 0.01, SustainLevel: 0.1, ReleaseRate: 0.01},
				Lfo:     lfo.Params{Freq: 6.0, Wave: lfo.WaveTri, FadeIn: 100, Delay: 100},
				Delay:   &effects.DelayParams{TimeL: 0.5, TimeR: 0.5, Att: 0.4},
			},
			{
				Name:    "saw keys",
				VolTrim: polyTrim,
				Osc:     osc.Params{Wave: osc.Saw},
				Aeg:     envelope.Params{AttackRate: 0.5, DecayRate: 0.01, SustainLevel: 0.1, ReleaseRate: 0.01},
				Lfo:     lfo.Params{Freq: 6.0, Wave: lfo.WaveTri, FadeIn: 100, Delay: 100},
				Delay:   &effects.DelayParams{TimeL: 0.5, TimeR: 0.5, Att: 0.4},
			},
			{
				Name:    "sing formant",
				Mono:    true,
				VolTrim: monoTrim,
				Osc:     osc.Params{Wave: osc.AdditiveFormant, LfoDepth: 0.02, GlideSpeed: 0.25},
				Aeg:     envelope.Params{AttackRate: 0.6, DecayRate: 0.05, SustainLevel: 0.5, ReleaseRate: 0.02},
				Lfo:     lfo.Params{Freq: 6.0, Wave: lfo.WaveTri, FadeIn: 100, Delay: 100},
			},
			{
				Name:       "sing glottal",
				Mono:       true,
				VolTrim:    monoTrim,
				Prm0Cutoff: true,
				Osc:        osc.Params{Wave: osc.VocalGlottal, LfoDepth: 0.02, GlideSpeed: 0.25},
				Aeg:        envelope.Params{AttackRate: 0.6, DecayRate: 0.05, SustainLevel: 0.5, ReleaseRate: 0.02},
				Lfo:        lfo.Params{Freq: 6.0, Wave: lfo.WaveTri, FadeIn: 100, Delay: 100},
				Filter:     &filter.Params{Freq: 1000.0, Resonance: 8.0},
			},
		},
	}
}
