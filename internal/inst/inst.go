// Package inst implements the per-program voice managers. Two policies
// share one interface: a polyphonic voice pool and a monophonic manager
// with a pending-note stack, used by the singing tones.
package inst

import (
	"github.com/cbegin/polysynth-go/internal/buffer"
	"github.com/cbegin/polysynth-go/internal/preset"
)

// Instrument is the voice manager behind one MIDI program on one channel.
type Instrument interface {
	ChangeInst(program int, vol, pan, exp byte)
	NoteOn(note, vel byte)
	NoteOff(note, vel byte)
	Modulation(value byte)
	Volume(value byte)
	Pan(value byte)
	Expression(value byte)
	Pitch(bend int16, tuneCoarse, tuneFine byte)
	Sustain(value byte)
	AllSoundOff()
	SetPrm(prmType, value byte)
	VoiceCount() int
	Process(l, r *buffer.AudioFrame, frames int)
}

// New picks the policy for the addressed tone.
func New(bank *preset.Bank, program int, vol, pan, exp byte) Instrument {
	if bank.Tone(program).Mono {
		return newMono(bank, program, vol, pan, exp)
	}
	return newPoly(bank, program, vol, pan, exp)
}

// calcPan maps CC10 to a 0..1 gain position; 127 is promoted to 128 so full
// right reaches exactly 1.
func calcPan(value byte) float32 {
	if value == 127 {
		value = 128
	}
	return float32(value) / 128.0
}

// calcMdlt maps CC1 to a pitch-mod depth of 0..0.5 octaves.
func calcMdlt(value byte) float32 {
	return 0.5 * float32(value) / 127.0
}

// calcBendCents converts bend and the note-shift/tune controllers to cents.
func calcBendCents(bend int16, tuneCoarse, tuneFine byte) float32 {
	return float32(bend)*200.0/8192.0 +
		(float32(tuneCoarse)-64.0)*100.0 +
		(float32(tuneFine)-64.0)*100.0/64.0
}
