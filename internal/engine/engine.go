// Package engine is the top of the signal graph: the MIDI event queue, the
// block scheduler, part summing and the global effect bus.
package engine

import (
	"github.com/cbegin/polysynth-go/internal/buffer"
	"github.com/cbegin/polysynth-go/internal/effects"
	"github.com/cbegin/polysynth-go/internal/part"
	"github.com/cbegin/polysynth-go/internal/preset"
)

// MaxParts is the number of MIDI channels the engine serves. Events for
// channels at or above it are dropped.
const MaxParts = 10

type midiEvent struct {
	status byte // high nibble only
	ch     byte
	data2  byte
	data3  byte
}

// Engine owns the parts and all scratch buffers. One event is drained per
// process call, bounding the per-block parsing cost.
type Engine struct {
	queue []midiEvent
	parts [MaxParts]*part.Part

	dryL, dryR   *buffer.AudioFrame
	sendL, sendR *buffer.AudioFrame
	effL, effR   *buffer.AudioFrame
	wetL, wetR   *buffer.AudioFrame
	sdDelay      *effects.SendDelay
}

// New builds an engine over the given tone bank; a nil bank selects the
// compiled-in default.
func New(bank *preset.Bank) *Engine {
	if bank == nil {
		bank = preset.Default()
	}
	e := &Engine{
		queue:   make([]midiEvent, 0, 256),
		dryL:    buffer.NewAudioFrame(buffer.MaxBlock),
		dryR:    buffer.NewAudioFrame(buffer.MaxBlock),
		sendL:   buffer.NewAudioFrame(buffer.MaxBlock),
		sendR:   buffer.NewAudioFrame(buffer.MaxBlock),
		effL:    buffer.NewAudioFrame(buffer.MaxBlock),
		effR:    buffer.NewAudioFrame(buffer.MaxBlock),
		wetL:    buffer.NewAudioFrame(buffer.MaxBlock),
		wetR:    buffer.NewAudioFrame(buffer.MaxBlock),
		sdDelay: effects.NewSendDelay(bank.Send),
	}
	for i := range e.parts {
		e.parts[i] = part.New(bank)
	}
	return e
}

// Part exposes a channel for inspection.
func (e *Engine) Part(ch int) *part.Part { return e.parts[ch] }

// ReceiveMIDI queues a 3-byte message. Unknown status bytes and channels
// beyond MaxParts are silently dropped.
func (e *Engine) ReceiveMIDI(status, data2, data3 byte) {
	ch := status & 0x0f
	st := status & 0xf0
	if ch >= MaxParts {
		return
	}
	switch st {
	case 0x80, 0x90, 0xa0, 0xb0, 0xc0, 0xe0:
		e.queue = append(e.queue, midiEvent{status: st, ch: ch, data2: data2, data3: data3})
	}
}

func (e *Engine) dispatch(ev midiEvent) {
	pt := e.parts[ev.ch]
	switch ev.status {
	case 0x80:
		pt.NoteOff(ev.data2, ev.data3)
	case 0x90:
		if ev.data3 == 0 {
			pt.NoteOff(ev.data2, ev.data3)
		} else {
			pt.NoteOn(ev.data2, ev.data3)
		}
	case 0xa0:
		// per-note aftertouch: accepted, not routed
	case 0xb0:
		pt.ControlChange(ev.data2, ev.data3)
	case 0xc0:
		pt.ProgramChange(ev.data2)
	case 0xe0:
		bend := int16(ev.data2) + int16(ev.data3)*128 - 8192
		pt.PitchBend(bend)
	}
}

// Process renders the next block of frames into l and r. len(l) frames are
// rendered; l and r must be the same length, at most MaxBlock and a
// multiple of the control interval.
func (e *Engine) Process(l, r []float32) {
	frames := len(l)

	// One event per block, in arrival order, at the block boundary.
	if len(e.queue) > 0 {
		ev := e.queue[0]
		copy(e.queue, e.queue[1:])
		e.queue = e.queue[:len(e.queue)-1]
		e.dispatch(ev)
	}

	e.dryL.SetLen(frames)
	e.dryR.SetLen(frames)
	e.sendL.SetLen(frames)
	e.sendR.SetLen(frames)
	e.effL.SetLen(frames)
	e.effR.SetLen(frames)
	e.wetL.SetLen(frames)
	e.wetR.SetLen(frames)
	e.effL.Clear()
	e.effR.Clear()

	for i, pt := range e.parts {
		e.dryL.Clear()
		e.dryR.Clear()
		e.sendL.Clear()
		e.sendR.Clear()
		pt.Process(e.dryL, e.dryR, e.sendL, e.sendR, frames)
		if i == 0 {
			e.dryL.CopyToSlice(l)
			e.dryR.CopyToSlice(r)
		} else {
			e.dryL.AddToSlice(l)
			e.dryR.AddToSlice(r)
		}
		e.effL.MulAndMix(e.sendL, 1.0)
		e.effR.MulAndMix(e.sendR, 1.0)
	}

	e.sdDelay.Process(e.effL, e.effR, e.wetL, e.wetR)
	e.wetL.AddToSlice(l)
	e.wetR.AddToSlice(r)
}
