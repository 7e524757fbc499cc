package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cbegin/polysynth-go/internal/buffer"
)

func renderBlocks(e *Engine, blocks, frames int) []float32 {
	out := make([]float32, 0, blocks*frames)
	l := make([]float32, frames)
	r := make([]float32, frames)
	for b := 0; b < blocks; b++ {
		e.Process(l, r)
		out = append(out, l...)
	}
	return out
}

func zeroCrossings(samples []float32) int {
	n := 0
	for i := 1; i < len(samples); i++ {
		if (samples[i-1] < 0 && samples[i] >= 0) || (samples[i-1] >= 0 && samples[i] < 0) {
			n++
		}
	}
	return n
}

func peak(samples []float32) float32 {
	var p float32
	for _, s := range samples {
		if s < 0 {
			s = -s
		}
		if s > p {
			p = s
		}
	}
	return p
}

func TestNoteOnProducesAudibleBlocks(t *testing.T) {
	e := New(nil)
	e.ReceiveMIDI(0x90, 69, 100)
	// Ten blocks of 128 frames with the default sine tone.
	var audible int
	l := make([]float32, 128)
	r := make([]float32, 128)
	for b := 0; b < 10; b++ {
		e.Process(l, r)
		p := peak(l)
		require.LessOrEqual(t, p, float32(0.99))
		if b >= 1 && p > 0.01 {
			audible++
		}
	}
	assert.Greater(t, audible, 0)
}

func TestPitchBendMatchesSemitone(t *testing.T) {
	// Channel 0 on the sustaining saw tone, bent up 100 cents.
	bent := New(nil)
	bent.ReceiveMIDI(0xc0, 1, 0)
	bent.ReceiveMIDI(0x90, 60, 127)
	bent.ReceiveMIDI(0xe0, 0x00, 0x60) // +4096 -> +100 cents
	// Three blocks drain the three queued events; skip the attack too.
	warm := 0.25 * buffer.SampleRate
	renderBlocks(bent, int(warm)/1024, 1024)

	ref := New(nil)
	ref.ReceiveMIDI(0xc0, 1, 0)
	ref.ReceiveMIDI(0x90, 61, 127)
	renderBlocks(ref, int(warm)/1024, 1024)

	blocks := 2 * buffer.SampleRate / 1024
	zcBent := zeroCrossings(renderBlocks(bent, blocks, 1024))
	zcRef := zeroCrossings(renderBlocks(ref, blocks, 1024))
	assert.InDelta(t, float64(zcRef), float64(zcBent), float64(zcRef)*0.01)
}

func TestSixVoicesStayBoundedAndDrain(t *testing.T) {
	e := New(nil)
	notes := []byte{60, 62, 64, 65, 67, 69}
	blocksPer100ms := buffer.SampleRate / 10 / 1024
	var all []float32
	for _, n := range notes {
		e.ReceiveMIDI(0x90, n, 100)
		all = append(all, renderBlocks(e, blocksPer100ms+1, 1024)...)
	}
	for _, n := range notes {
		e.ReceiveMIDI(0x80, n, 0)
		all = append(all, renderBlocks(e, blocksPer100ms+1, 1024)...)
	}
	assert.LessOrEqual(t, peak(all), float32(0.99))

	twoSeconds := 2 * buffer.SampleRate / 1024
	renderBlocks(e, twoSeconds, 1024)
	assert.Equal(t, 0, e.Part(0).Inst().VoiceCount())
}

func TestAllSoundOffDampsChannel(t *testing.T) {
	e := New(nil)
	e.ReceiveMIDI(0xc0, 1, 0)
	for _, n := range []byte{60, 64, 67} {
		e.ReceiveMIDI(0x90, n, 100)
	}
	renderBlocks(e, 4, 1024) // drain program change + note-ons
	require.Equal(t, 3, e.Part(0).Inst().VoiceCount())

	e.ReceiveMIDI(0xb0, 120, 0)
	// One block drains the CC; damp runs and the first voice is reaped
	// inside it, and one-per-block reaping takes two more.
	renderBlocks(e, 5, 1024)
	assert.Equal(t, 0, e.Part(0).Inst().VoiceCount())
}

func TestOneEventPerBlockThrottle(t *testing.T) {
	e := New(nil)
	e.ReceiveMIDI(0xc0, 1, 0)
	e.ReceiveMIDI(0x90, 60, 100)
	l := make([]float32, 128)
	r := make([]float32, 128)
	e.Process(l, r)
	// Only the program change has been applied so far.
	assert.Equal(t, 0, e.Part(0).Inst().VoiceCount())
	e.Process(l, r)
	assert.Equal(t, 1, e.Part(0).Inst().VoiceCount())
}

func TestChannelDispatch(t *testing.T) {
	e := New(nil)
	e.ReceiveMIDI(0x91, 60, 100) // channel 1
	l := make([]float32, 128)
	r := make([]float32, 128)
	e.Process(l, r)
	assert.Equal(t, 0, e.Part(0).Inst().VoiceCount())
	assert.Equal(t, 1, e.Part(1).Inst().VoiceCount())
}

func TestDropsBadChannelAndStatus(t *testing.T) {
	e := New(nil)
	e.ReceiveMIDI(0x9a, 60, 100) // channel 10 >= MaxParts
	e.ReceiveMIDI(0xf0, 60, 100) // system message
	e.ReceiveMIDI(0x70, 60, 100) // not a status byte
	assert.Empty(t, e.queue)
}

func TestRunningNoteOnWithZeroVelocityIsNoteOff(t *testing.T) {
	e := New(nil)
	e.ReceiveMIDI(0xc0, 1, 0)
	e.ReceiveMIDI(0x90, 60, 100)
	e.ReceiveMIDI(0x90, 60, 0)
	renderBlocks(e, 3, 1024)
	// Voice is releasing, not re-triggered: eventually it drains.
	renderBlocks(e, 2*buffer.SampleRate/1024, 1024)
	assert.Equal(t, 0, e.Part(0).Inst().VoiceCount())
}

func TestSendDelayAddsWetTail(t *testing.T) {
	e := New(nil)
	e.ReceiveMIDI(0xb0, 91, 127) // full send on channel 0
	e.ReceiveMIDI(0xc0, 1, 0)    // sustaining saw
	e.ReceiveMIDI(0x90, 69, 127)
	renderBlocks(e, 4, 1024)
	e.ReceiveMIDI(0xb0, 120, 0) // choke the dry voices
	renderBlocks(e, 6, 1024)
	require.Equal(t, 0, e.Part(0).Inst().VoiceCount())

	// The dry pool is empty, but the send delay keeps a tail ringing:
	// the first echo arrives ~0.35 s after the original signal.
	tail := renderBlocks(e, 12, 1024)
	assert.Greater(t, peak(tail), float32(0.0))
}
