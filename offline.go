package polysynth

import (
	"encoding/binary"
	"math"
)

// Event is a MIDI message scheduled at an absolute frame position for
// offline rendering. Events land at the block boundary at or after Frame.
type Event struct {
	Frame  int
	Status byte
	Data2  byte
	Data3  byte
}

// RenderEvents renders frames of stereo audio through a fresh engine,
// delivering the given events along the way. Events must be sorted by
// Frame. The result is interleaved stereo.
func RenderEvents(events []Event, frames int) []float32 {
	return RenderEventsWithBank(nil, events, frames)
}

// RenderEventsWithBank is RenderEvents over a custom tone bank.
func RenderEventsWithBank(bank *Bank, events []Event, frames int) []float32 {
	var e *Engine
	if bank != nil {
		e = NewWithBank(bank)
	} else {
		e = New()
	}
	out := make([]float32, 0, frames*2)
	l := make([]float32, CtrlInterval)
	r := make([]float32, CtrlInterval)
	next := 0
	for pos := 0; pos < frames; pos += CtrlInterval {
		for next < len(events) && events[next].Frame <= pos {
			ev := events[next]
			e.ReceiveMIDI(ev.Status, ev.Data2, ev.Data3)
			next++
		}
		e.Process(l, r)
		for i := range l {
			out = append(out, l[i], r[i])
		}
	}
	return out[:frames*2]
}

// EncodeWAVFloat32LE wraps interleaved samples in a float32 WAV container.
func EncodeWAVFloat32LE(samples []float32, sampleRate int, channels int) []byte {
	dataSize := len(samples) * 4
	byteRate := sampleRate * channels * 4
	blockAlign := channels * 4
	chunkSize := 36 + dataSize
	out := make([]byte, 44+dataSize)
	copy(out[0:], []byte("RIFF"))
	binary.LittleEndian.PutUint32(out[4:], uint32(chunkSize))
	copy(out[8:], []byte("WAVE"))
	copy(out[12:], []byte("fmt "))
	binary.LittleEndian.PutUint32(out[16:], 16)
	binary.LittleEndian.PutUint16(out[20:], 3)
	binary.LittleEndian.PutUint16(out[22:], uint16(channels))
	binary.LittleEndian.PutUint32(out[24:], uint32(sampleRate))
	binary.LittleEndian.PutUint32(out[28:], uint32(byteRate))
	binary.LittleEndian.PutUint16(out[32:], uint16(blockAlign))
	binary.LittleEndian.PutUint16(out[34:], 32)
	copy(out[36:], []byte("data"))
	binary.LittleEndian.PutUint32(out[40:], uint32(dataSize))
	for i, s := range samples {
		binary.LittleEndian.PutUint32(out[44+i*4:], math.Float32bits(s))
	}
	return out
}
