package inst

import (
	"github.com/cbegin/polysynth-go/internal/buffer"
	"github.com/cbegin/polysynth-go/internal/effects"
	"github.com/cbegin/polysynth-go/internal/preset"
	"github.com/cbegin/polysynth-go/internal/voice"
)

// Poly is the polyphonic pool: every note-on pushes a fresh voice, ended
// voices are reaped at most one per block to keep removal cost flat.
type Poly struct {
	vceAudio  *buffer.AudioFrame
	instAudio *buffer.AudioFrame
	voices    []*voice.Voice
	delay     *effects.Delay

	bank *preset.Bank
	tone preset.Tone
	mdlt float32
	pit  float32
	vol  byte
	pan  float32
	exp  byte
}

func newPoly(bank *preset.Bank, program int, vol, pan, exp byte) *Poly {
	p := &Poly{
		vceAudio:  buffer.NewAudioFrame(buffer.MaxBlock),
		instAudio: buffer.NewAudioFrame(buffer.MaxBlock),
		bank:      bank,
	}
	p.ChangeInst(program, vol, pan, exp)
	return p
}

func (p *Poly) ChangeInst(program int, vol, pan, exp byte) {
	p.tone = *p.bank.Tone(program)
	if p.tone.Delay != nil {
		p.delay = effects.NewDelay(*p.tone.Delay)
	} else {
		p.delay = nil
	}
	p.mdlt = p.tone.Osc.LfoDepth
	p.pit = 0
	p.vol = vol
	p.pan = calcPan(pan)
	p.exp = exp
}

func (p *Poly) NoteOn(note, vel byte) {
	v := voice.New(note, vel, p.mdlt, p.pit, p.vol, p.exp, p.tone)
	v.StartSound()
	p.voices = append(p.voices, v)
}

func (p *Poly) NoteOff(note, _ byte) {
	for _, v := range p.voices {
		if v.NoteNum() == note && v.Status() == voice.DuringNoteOn {
			v.NoteOff()
			return
		}
	}
}

func (p *Poly) Modulation(value byte) {
	p.mdlt = calcMdlt(value)
	for _, v := range p.voices {
		v.ChangePmd(p.mdlt)
	}
}

func (p *Poly) Volume(value byte) {
	p.vol = value
	for _, v := range p.voices {
		v.Amplitude(value, p.exp)
	}
}

func (p *Poly) Pan(value byte) {
	p.pan = calcPan(value)
}

func (p *Poly) Expression(value byte) {
	p.exp = value
	for _, v := range p.voices {
		v.Amplitude(p.vol, value)
	}
}

func (p *Poly) Pitch(bend int16, tuneCoarse, tuneFine byte) {
	p.pit = calcBendCents(bend, tuneCoarse, tuneFine)
	for _, v := range p.voices {
		v.Pitch(p.pit)
	}
}

func (p *Poly) Sustain(byte) {}

func (p *Poly) AllSoundOff() {
	for _, v := range p.voices {
		v.Damp()
	}
}

func (p *Poly) SetPrm(prmType, value byte) {
	for _, v := range p.voices {
		v.SetPrm(prmType, value)
	}
}

func (p *Poly) VoiceCount() int { return len(p.voices) }

func (p *Poly) Process(l, r *buffer.AudioFrame, frames int) {
	p.vceAudio.SetLen(frames)
	p.instAudio.SetLen(frames)
	p.instAudio.Clear()

	reap := -1
	for i, v := range p.voices {
		if v.Ended() {
			if reap < 0 {
				reap = i
			}
			continue
		}
		ended := v.Process(p.vceAudio, frames)
		p.instAudio.MulAndMix(p.vceAudio, 1.0)
		if ended && reap < 0 {
			reap = i
		}
	}

	l.MulAndMix(p.instAudio, 1.0-p.pan)
	r.MulAndMix(p.instAudio, p.pan)

	if p.delay != nil {
		p.delay.Process(l, r)
	}

	if reap >= 0 {
		p.voices = append(p.voices[:reap], p.voices[reap+1:]...)
	}
}
