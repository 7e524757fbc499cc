// Package voice implements one sounding note: oscillator, filter, envelope
// and LFO wired together, plus the damping machinery that retires a note
// without a click.
package voice

import (
	"github.com/cbegin/polysynth-go/internal/buffer"
	"github.com/cbegin/polysynth-go/internal/envelope"
	"github.com/cbegin/polysynth-go/internal/filter"
	"github.com/cbegin/polysynth-go/internal/lfo"
	"github.com/cbegin/polysynth-go/internal/osc"
	"github.com/cbegin/polysynth-go/internal/preset"
)

// Status of a note. Transitions run DuringNoteOn -> (AfterNoteOff) ->
// DuringDamp -> ended; Slide is the one exception and puts a reused voice
// back to DuringNoteOn.
type Status int

const (
	DuringNoteOn Status = iota
	AfterNoteOff
	DuringDamp
)

// DampTime is the length of the quadratic fade that retires a voice, in
// audio frames.
const DampTime = 300

// Voice renders one note. All buffers are allocated at construction; the
// render path is allocation-free.
type Voice struct {
	note      byte
	vel       byte
	status    Status
	dampCount int
	lvlCheck  *buffer.AudioFrame

	tone preset.Tone // by-value snapshot; later preset edits never reach it
	ox   *osc.Osc
	flt  *filter.Biquad
	aeg  *envelope.Aeg
	lf   *lfo.Lfo

	maxVol float32
	ended  bool

	vowelX float32
	vowelY float32

	lbuf   *buffer.CtrlFrame
	aegbuf *buffer.CtrlFrame
}

// New builds a voice for a note with the instrument's cached modulation
// depth, pitch offset (cents) and CC7/CC11 levels.
func New(note, vel byte, mdlt, pit float32, vol, exp byte, tone preset.Tone) *Voice {
	v := &Voice{
		note:     note,
		vel:      vel,
		status:   DuringNoteOn,
		lvlCheck: buffer.NewAudioFrame(buffer.SampleRate / 100),
		tone:     tone,
		ox:       osc.New(tone.Osc, note, mdlt, pit),
		flt:      filter.New(),
		aeg:      envelope.New(tone.Aeg),
		lf:       lfo.New(tone.Lfo),
		lbuf:     buffer.NewCtrlFrame(buffer.MaxBlock / buffer.CtrlInterval),
		aegbuf:   buffer.NewCtrlFrame(buffer.MaxBlock / buffer.CtrlInterval),
	}
	v.Amplitude(vol, exp)
	return v
}

func (v *Voice) NoteNum() byte  { return v.note }
func (v *Voice) Velocity() byte { return v.vel }
func (v *Voice) Status() Status { return v.status }
func (v *Voice) Ended() bool    { return v.ended }

// StartSound arms the envelope and the voice filter.
func (v *Voice) StartSound() {
	v.aeg.MoveToAttack()
	if v.tone.Filter != nil {
		v.flt.SetLPF(v.tone.Filter.Freq, v.tone.Filter.Resonance)
	} else {
		v.flt.SetThru()
	}
	v.lf.Start()
}

// Slide retargets a sounding voice to a new note without reallocating:
// the pitch glides, the envelope re-attacks, the LFO gate restarts.
func (v *Voice) Slide(note, vel byte) {
	v.note = note
	v.vel = vel
	v.status = DuringNoteOn
	v.dampCount = 0
	v.ox.Glide(note)
	v.aeg.MoveToAttack()
	v.lf.Start()
}

func (v *Voice) NoteOff() {
	v.status = AfterNoteOff
	v.aeg.MoveToRelease()
}

// Damp starts the fixed-length fade that removes the voice.
func (v *Voice) Damp() {
	v.status = DuringDamp
	v.dampCount = 0
}

func (v *Voice) ChangePmd(value float32) { v.ox.ChangePmd(value) }

// Amplitude recomputes the note ceiling from CC7 and CC11.
func (v *Voice) Amplitude(vol, exp byte) {
	v.maxVol = v.tone.VolTrim * float32(vol) * float32(exp) / 16384.0
}

func (v *Voice) Pitch(cents float32) { v.ox.ChangePitch(cents) }

// SetPrm routes a per-voice parameter change (CC16..19).
func (v *Voice) SetPrm(prmType, value byte) {
	switch prmType {
	case 0:
		if v.tone.Prm0Cutoff {
			v.flt.SetLPF(float32(value)*20.0, 1.0)
		} else {
			v.lf.SetFreq(value)
		}
	case 1:
		v.lf.SetWave(value)
	case 2:
		v.vowelX = (float32(value) - 64.0) / 64.0
		v.ox.SetVowel(v.vowelX, v.vowelY)
	case 3:
		v.vowelY = (float32(value) - 64.0) / 64.0
		v.ox.SetVowel(v.vowelX, v.vowelY)
	}
}

// Process renders one block into abuf. Returns true once the voice has
// fully ended and can be removed.
func (v *Voice) Process(abuf *buffer.AudioFrame, frames int) bool {
	if v.ended {
		return true
	}
	cn := buffer.CtrlLen(frames)
	v.lbuf.SetLen(cn)
	v.lf.Process(v.lbuf)

	v.ox.Process(abuf, v.lbuf)
	v.flt.Process(abuf)

	v.aegbuf.SetLen(cn)
	v.aeg.Process(v.aegbuf)

	for i := 0; i < abuf.Len(); i++ {
		abuf.Mul(i, v.maxVol*v.aegbuf.CtrlForAudio(i))
	}
	return v.manageNoteLevel(abuf)
}

// manageNoteLevel watches the envelope for silence and runs the damp fade.
// The fade gain is quadratic in time, so the level reaches zero with zero
// slope and no click.
func (v *Voice) manageNoteLevel(abuf *buffer.AudioFrame) bool {
	if v.status != DuringDamp {
		level := v.aegbuf.Max()
		v.lvlCheck.Push(level)
		if level < buffer.SilenceLevel {
			v.Damp()
		}
		return v.ended
	}
	for i := 0; i < abuf.Len(); i++ {
		var rate float32
		if v.dampCount <= DampTime {
			cntdwn := float32(DampTime-v.dampCount) / DampTime
			rate = cntdwn * cntdwn
		}
		abuf.Mul(i, rate)
		v.dampCount++
		if v.dampCount > DampTime {
			v.ended = true
		}
	}
	return v.ended
}
