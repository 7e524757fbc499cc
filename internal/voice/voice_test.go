package voice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cbegin/polysynth-go/internal/buffer"
	"github.com/cbegin/polysynth-go/internal/preset"
)

func newVoice(t *testing.T, program int, note byte) *Voice {
	t.Helper()
	tone := preset.Default().Tone(program)
	v := New(note, 100, 0, 0, 100, 127, *tone)
	v.StartSound()
	return v
}

func blockPeak(abuf *buffer.AudioFrame) float32 {
	var peak float32
	for i := 0; i < abuf.Len(); i++ {
		s := abuf.Get(i)
		if s < 0 {
			s = -s
		}
		if s > peak {
			peak = s
		}
	}
	return peak
}

func TestVoiceProducesSound(t *testing.T) {
	v := newVoice(t, 1, 69) // saw pad: full sustain
	abuf := buffer.NewAudioFrame(buffer.MaxBlock)
	var peak float32
	for b := 0; b < 10; b++ {
		require.False(t, v.Process(abuf, buffer.MaxBlock))
		if p := blockPeak(abuf); p > peak {
			peak = p
		}
	}
	assert.Greater(t, peak, float32(0.01))
	assert.LessOrEqual(t, peak, float32(0.99))
}

func TestVoiceEndsAfterRelease(t *testing.T) {
	v := newVoice(t, 1, 60)
	abuf := buffer.NewAudioFrame(buffer.MaxBlock)
	for b := 0; b < 4; b++ {
		v.Process(abuf, buffer.MaxBlock)
	}
	v.NoteOff()
	assert.Equal(t, AfterNoteOff, v.Status())
	ended := false
	for b := 0; b < 200 && !ended; b++ {
		ended = v.Process(abuf, buffer.MaxBlock)
	}
	assert.True(t, ended)
	assert.True(t, v.Ended())
}

func TestDampEndsWithinDampTime(t *testing.T) {
	v := newVoice(t, 1, 60)
	abuf := buffer.NewAudioFrame(buffer.MaxBlock)
	v.Process(abuf, buffer.MaxBlock)
	v.Damp()
	require.Equal(t, DuringDamp, v.Status())
	// 300 frames of fade fit inside a single max-size block.
	ended := v.Process(abuf, buffer.MaxBlock)
	assert.True(t, ended)
	// Past the fade the block is silent.
	var tail float32
	for i := DampTime + 1; i < abuf.Len(); i++ {
		s := abuf.Get(i)
		if s < 0 {
			s = -s
		}
		if s > tail {
			tail = s
		}
	}
	assert.Zero(t, tail)
}

func TestDampFadeIsMonotonicEnvelope(t *testing.T) {
	v := newVoice(t, 1, 60)
	abuf := buffer.NewAudioFrame(buffer.MaxBlock)
	for b := 0; b < 4; b++ {
		v.Process(abuf, buffer.MaxBlock)
	}
	v.Damp()
	v.Process(abuf, buffer.MaxBlock)
	// Peak of the first 64 frames dominates the peak around the fade end.
	var head, mid float32
	for i := 0; i < 64; i++ {
		if s := abs32(abuf.Get(i)); s > head {
			head = s
		}
	}
	for i := 200; i < 300; i++ {
		if s := abs32(abuf.Get(i)); s > mid {
			mid = s
		}
	}
	assert.Greater(t, head, mid)
}

func TestSilentEnvelopeTriggersDamp(t *testing.T) {
	v := newVoice(t, 0, 60) // sine echo: zero sustain, envelope dies out
	abuf := buffer.NewAudioFrame(buffer.MaxBlock)
	ended := false
	for b := 0; b < 400 && !ended; b++ {
		ended = v.Process(abuf, buffer.MaxBlock)
	}
	assert.True(t, ended, "voice with zero sustain retires itself")
}

func TestSlideKeepsVoiceAlive(t *testing.T) {
	v := newVoice(t, 6, 60) // mono singing tone with glide
	abuf := buffer.NewAudioFrame(buffer.MaxBlock)
	v.Process(abuf, buffer.MaxBlock)
	v.Slide(62, 100)
	assert.Equal(t, DuringNoteOn, v.Status())
	assert.Equal(t, byte(62), v.NoteNum())
	assert.False(t, v.Process(abuf, buffer.MaxBlock))
}

func TestAmplitudeScalesOutput(t *testing.T) {
	loud := newVoice(t, 1, 60)
	quiet := newVoice(t, 1, 60)
	quiet.Amplitude(32, 64)
	abuf := buffer.NewAudioFrame(buffer.MaxBlock)
	var loudPeak, quietPeak float32
	for b := 0; b < 8; b++ {
		loud.Process(abuf, buffer.MaxBlock)
		if p := blockPeak(abuf); p > loudPeak {
			loudPeak = p
		}
	}
	for b := 0; b < 8; b++ {
		quiet.Process(abuf, buffer.MaxBlock)
		if p := blockPeak(abuf); p > quietPeak {
			quietPeak = p
		}
	}
	assert.Greater(t, loudPeak, quietPeak)
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
