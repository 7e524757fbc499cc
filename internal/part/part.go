// Package part holds the per-MIDI-channel state: the cached 7-bit
// controllers, the 14-bit pitch bend and the owned instrument, replaced on
// program change.
package part

import (
	"github.com/cbegin/polysynth-go/internal/buffer"
	"github.com/cbegin/polysynth-go/internal/inst"
	"github.com/cbegin/polysynth-go/internal/preset"
)

// Part is one MIDI channel.
type Part struct {
	cc0MSB          byte
	cc1Modulation   byte
	cc5PortamentoTm byte
	cc7Volume       byte
	cc10Pan         byte
	cc11Expression  byte
	cc12NoteShift   byte
	cc13Tune        byte
	cc32LSB         byte
	cc64Sustain     byte
	cc65Portamento  byte
	cc66Sostenuto   byte
	cc91SendLevel   byte
	cc16to31VcePrm  [16]byte
	programNumber   byte
	pitchBendValue  int16

	bank *preset.Bank
	in   inst.Instrument
}

// New builds a channel with the GM default controller set.
func New(bank *preset.Bank) *Part {
	p := &Part{
		cc7Volume:      100,
		cc10Pan:        64,
		cc11Expression: 127,
		cc12NoteShift:  64,
		cc13Tune:       64,
		bank:           bank,
	}
	p.in = inst.New(bank, 0, p.cc7Volume, p.cc10Pan, p.cc11Expression)
	return p
}

// Inst exposes the owned instrument.
func (p *Part) Inst() inst.Instrument { return p.in }

func (p *Part) NoteOn(note, vel byte)  { p.in.NoteOn(note, vel) }
func (p *Part) NoteOff(note, vel byte) { p.in.NoteOff(note, vel) }

// ControlChange dispatches a CC to the cache and, where one exists, the
// matching instrument operation.
func (p *Part) ControlChange(controller, value byte) {
	switch {
	case controller == 0:
		p.cc0MSB = value
	case controller == 1:
		p.cc1Modulation = value
		p.in.Modulation(value)
	case controller == 5:
		p.cc5PortamentoTm = value
	case controller == 7:
		p.cc7Volume = value
		p.in.Volume(value)
	case controller == 10:
		p.cc10Pan = value
		p.in.Pan(value)
	case controller == 11:
		p.cc11Expression = value
		p.in.Expression(value)
	case controller == 12:
		p.cc12NoteShift = value
		p.in.Pitch(p.pitchBendValue, value, p.cc13Tune)
	case controller == 13:
		p.cc13Tune = value
		p.in.Pitch(p.pitchBendValue, p.cc12NoteShift, value)
	case controller >= 16 && controller <= 31:
		prm := controller - 16
		p.cc16to31VcePrm[prm] = value
		p.in.SetPrm(prm, value)
	case controller == 32:
		p.cc32LSB = value
	case controller == 64:
		p.cc64Sustain = value
		p.in.Sustain(value)
	case controller == 65:
		p.cc65Portamento = value
	case controller == 66:
		p.cc66Sostenuto = value
	case controller == 91:
		p.cc91SendLevel = value
	case controller == 120:
		if value == 0 {
			p.in.AllSoundOff()
		}
	}
}

// ProgramChange swaps the instrument, carrying the cached levels and pitch
// over to the fresh one.
func (p *Part) ProgramChange(program byte) {
	p.programNumber = program
	p.in = inst.New(p.bank, int(program), p.cc7Volume, p.cc10Pan, p.cc11Expression)
	p.in.Pitch(p.pitchBendValue, p.cc12NoteShift, p.cc13Tune)
}

// PitchBend applies a centred 14-bit bend value (-8192..8191).
func (p *Part) PitchBend(bend int16) {
	p.pitchBendValue = bend
	p.in.Pitch(bend, p.cc12NoteShift, p.cc13Tune)
}

// Process renders the channel dry signal into l/r and its effect send into
// sendL/sendR.
func (p *Part) Process(l, r, sendL, sendR *buffer.AudioFrame, frames int) {
	p.in.Process(l, r, frames)
	if p.cc91SendLevel == 0 {
		return
	}
	send := float32(p.cc91SendLevel) / 127.0
	sendL.MulAndMix(l, send)
	sendR.MulAndMix(r, send)
}
