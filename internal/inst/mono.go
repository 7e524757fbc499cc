package inst

import (
	"github.com/cbegin/polysynth-go/internal/buffer"
	"github.com/cbegin/polysynth-go/internal/preset"
	"github.com/cbegin/polysynth-go/internal/voice"
)

const noNote = -1

// heldNote is one entry of the pending-note stack: a key that is physically
// down (or released but still sounding through its release tail).
type heldNote struct {
	note byte
	vel  byte
	off  bool
}

// Mono is the monophonic manager used by the singing tones. At most one
// voice sounds; newer notes slide the sounding voice, and the stack of held
// keys decides what happens as keys are released.
type Mono struct {
	vceAudio  *buffer.AudioFrame
	instAudio *buffer.AudioFrame
	held      []heldNote
	vce       *voice.Voice
	activeIdx int

	bank  *preset.Bank
	tone  preset.Tone
	mdlt  float32
	pit   float32
	vol   byte
	pan   float32
	exp   byte
	spmsg [4]byte
}

func newMono(bank *preset.Bank, program int, vol, pan, exp byte) *Mono {
	m := &Mono{
		vceAudio:  buffer.NewAudioFrame(buffer.MaxBlock),
		instAudio: buffer.NewAudioFrame(buffer.MaxBlock),
		activeIdx: noNote,
		bank:      bank,
	}
	m.ChangeInst(program, vol, pan, exp)
	return m
}

func (m *Mono) ChangeInst(program int, vol, pan, exp byte) {
	m.tone = *m.bank.Tone(program)
	m.mdlt = m.tone.Osc.LfoDepth
	m.pit = 0
	m.vol = vol
	m.pan = calcPan(pan)
	m.exp = exp
}

func (m *Mono) searchNote(note byte) int {
	for i := range m.held {
		if m.held[i].note == note {
			return i
		}
	}
	return noNote
}

func (m *Mono) removeNote(idx int) {
	m.held = append(m.held[:idx], m.held[idx+1:]...)
	if idx == m.activeIdx {
		m.activeIdx = noNote
	} else if idx < m.activeIdx {
		m.activeIdx--
	}
}

func (m *Mono) NoteOn(note, vel byte) {
	if m.vce != nil {
		m.vce.Slide(note, vel)
	} else {
		v := voice.New(note, vel, m.mdlt, m.pit, m.vol, m.exp, m.tone)
		// Replay the cached per-voice parameters so vowel and LFO state
		// survive across voice gaps.
		for i, sv := range m.spmsg {
			v.SetPrm(byte(i), sv)
		}
		v.StartSound()
		m.vce = v
	}
	// A re-strike while the active key is in its release tail retires the
	// stale stack entry first.
	if m.activeIdx != noNote && m.held[m.activeIdx].off {
		m.removeNote(m.activeIdx)
	}
	m.held = append(m.held, heldNote{note: note, vel: vel})
	m.activeIdx = len(m.held) - 1
}

func (m *Mono) NoteOff(note, _ byte) {
	idx := m.searchNote(note)
	if idx == noNote {
		return
	}
	if idx == m.activeIdx {
		// The sounding key: let the voice release, keep the entry until
		// the tail ends in case more note-ons arrive meanwhile.
		if m.vce != nil {
			m.vce.NoteOff()
		}
		m.held[idx].off = true
		return
	}
	m.removeNote(idx)
}

func (m *Mono) Modulation(value byte) {
	m.mdlt = calcMdlt(value)
	if m.vce != nil {
		m.vce.ChangePmd(m.mdlt)
	}
}

func (m *Mono) Volume(value byte) {
	m.vol = value
	if m.vce != nil {
		m.vce.Amplitude(value, m.exp)
	}
}

func (m *Mono) Pan(value byte) {
	m.pan = calcPan(value)
}

func (m *Mono) Expression(value byte) {
	m.exp = value
	if m.vce != nil {
		m.vce.Amplitude(m.vol, value)
	}
}

func (m *Mono) Pitch(bend int16, tuneCoarse, tuneFine byte) {
	m.pit = calcBendCents(bend, tuneCoarse, tuneFine)
	if m.vce != nil {
		m.vce.Pitch(m.pit)
	}
}

func (m *Mono) Sustain(byte) {}

func (m *Mono) AllSoundOff() {
	if m.vce != nil {
		m.vce.Damp()
	}
}

func (m *Mono) SetPrm(prmType, value byte) {
	if int(prmType) < len(m.spmsg) {
		m.spmsg[prmType] = value
	}
	if m.vce != nil {
		m.vce.SetPrm(prmType, value)
	}
}

func (m *Mono) VoiceCount() int {
	if m.vce != nil {
		return 1
	}
	return 0
}

// HeldCount reports the pending-note stack depth.
func (m *Mono) HeldCount() int { return len(m.held) }

func (m *Mono) Process(l, r *buffer.AudioFrame, frames int) {
	m.vceAudio.SetLen(frames)
	m.instAudio.SetLen(frames)
	m.instAudio.Clear()

	ended := false
	if m.vce != nil {
		ended = m.vce.Process(m.vceAudio, frames)
		m.instAudio.MulAndMix(m.vceAudio, 1.0)
	}

	l.MulAndMix(m.instAudio, 1.0-m.pan)
	r.MulAndMix(m.instAudio, m.pan)

	if ended {
		m.vce = nil
		if m.activeIdx != noNote {
			m.removeNote(m.activeIdx)
		}
	}
}
