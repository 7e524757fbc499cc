package lfo

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cbegin/polysynth-go/internal/buffer"
)

func render(l *Lfo, ticks int) []float32 {
	out := make([]float32, 0, ticks)
	cbuf := buffer.NewCtrlFrame(8)
	for len(out) < ticks {
		l.Process(cbuf)
		for i := 0; i < cbuf.Len(); i++ {
			out = append(out, cbuf.Get(i))
		}
	}
	return out[:ticks]
}

func TestFadeInSilencesOutput(t *testing.T) {
	l := New(Params{Freq: 5, Wave: WaveTri, Direction: DirBoth, FadeIn: 16, Delay: 16})
	out := render(l, 16)
	for i, v := range out {
		assert.Zerof(t, v, "tick %d", i)
	}
}

func TestDelayRampsLevel(t *testing.T) {
	l := New(Params{Freq: 1, Wave: WaveSqu, Direction: DirBoth, FadeIn: 4, Delay: 100})
	out := render(l, 104)
	// Square output magnitude follows the ramp: later ticks are louder.
	early := out[10]
	late := out[90]
	if early < 0 {
		early = -early
	}
	if late < 0 {
		late = -late
	}
	assert.Greater(t, late, early)
}

func TestOutputBounded(t *testing.T) {
	for _, w := range []Wave{WaveTri, WaveSaw, WaveSqu, WaveSin} {
		l := New(Params{Freq: 7.3, Wave: w, Direction: DirBoth})
		for _, v := range render(l, 2048) {
			assert.LessOrEqual(t, v, float32(1.0))
			assert.GreaterOrEqual(t, v, float32(-1.0))
		}
	}
}

// Upper halves the swing and lifts it by a quarter: full level spans
// [-0.25, 0.75].
func TestUpperDirectionStaysAboveQuarterBelowZero(t *testing.T) {
	l := New(Params{Freq: 6, Wave: WaveTri, Direction: DirUpper})
	for _, v := range render(l, 2048) {
		assert.GreaterOrEqual(t, v, float32(-0.25))
	}
}

// Lower halves the swing and drops it by a quarter: full level spans
// [-0.75, 0.25].
func TestLowerDirectionStaysBelowQuarterAboveZero(t *testing.T) {
	l := New(Params{Freq: 6, Wave: WaveTri, Direction: DirLower})
	for _, v := range render(l, 2048) {
		assert.LessOrEqual(t, v, float32(0.25))
	}
}

func TestSquareSwingsBothWays(t *testing.T) {
	l := New(Params{Freq: 20, Wave: WaveSqu, Direction: DirBoth})
	out := render(l, 1024)
	var hi, lo bool
	for _, v := range out {
		if v > 0.9 {
			hi = true
		}
		if v < -0.9 {
			lo = true
		}
	}
	assert.True(t, hi, "expected positive rail")
	assert.True(t, lo, "expected negative rail")
}

func TestSetWaveDecoding(t *testing.T) {
	l := New(Params{Freq: 5})
	l.SetWave(0x20) // saw
	assert.Equal(t, float32(0.0), l.x1)
	assert.Equal(t, float32(2.0), l.x2)
	l.SetWave(0x60) // sine
	assert.InDelta(t, 6.2832, float64(l.y), 1e-3)
	l.SetWave(0x10) // tri, upper
	assert.Equal(t, DirUpper, l.direction)
	l.SetWave(0x00)
	assert.Equal(t, DirBoth, l.direction)
}

func TestSetFreqTenthsOfHz(t *testing.T) {
	l := New(Params{Freq: 1})
	l.SetFreq(50) // 5 Hz
	assert.InDelta(t, float64(5.0*buffer.CtrlInterval/buffer.SampleRate), float64(l.deltaPhase), 1e-7)
}
