package effects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cbegin/polysynth-go/internal/buffer"
)

// impulseResponse feeds a single impulse and returns the flattened output of
// the following blocks.
func impulseResponse(process func(l, r *buffer.AudioFrame), amp float32, frames int) []float32 {
	l := buffer.NewAudioFrame(buffer.MaxBlock)
	r := buffer.NewAudioFrame(buffer.MaxBlock)
	out := make([]float32, 0, frames)
	first := true
	for len(out) < frames {
		l.Clear()
		r.Clear()
		if first {
			l.Set(0, amp)
			r.Set(0, amp)
			first = false
		}
		process(l, r)
		for i := 0; i < l.Len(); i++ {
			out = append(out, l.Get(i))
		}
	}
	return out[:frames]
}

func firstAbove(out []float32, from int, threshold float32) int {
	for i := from; i < len(out); i++ {
		if out[i] > threshold {
			return i
		}
	}
	return -1
}

func TestDelayEchoesAfterConfiguredTime(t *testing.T) {
	d := NewDelay(DelayParams{TimeL: 0.1, TimeR: 0.1, Att: 0.5})
	out := impulseResponse(d.Process, 0.5, 3*4410)

	// The dry impulse is mixed in on top of itself.
	assert.InDelta(t, 1.0, float64(out[0]), 0.01)

	// First echo lands one delay time later at half amplitude.
	e1 := firstAbove(out, 8, 0.1)
	require.Greater(t, e1, 0)
	assert.InDelta(t, 4410, e1, 2)
	assert.InDelta(t, 0.25, float64(out[e1]), 0.01)

	// Second echo is attenuated again.
	e2 := firstAbove(out, e1+8, 0.05)
	require.Greater(t, e2, 0)
	assert.InDelta(t, 2*4410, e2, 4)
	assert.InDelta(t, 0.125, float64(out[e2]), 0.01)
}

func TestDelaySilenceGateKillsTinyFeedback(t *testing.T) {
	d := NewDelay(DelayParams{TimeL: 0.01, TimeR: 0.01, Att: 0.5})
	out := impulseResponse(d.Process, 5e-5, 4410)
	// A sub-threshold impulse is truncated before entering the ring, so
	// nothing ever comes back out of the line.
	for i := 1; i < len(out); i++ {
		assert.Zerof(t, out[i], "frame %d", i)
	}
}

func TestSendDelayIsDryFree(t *testing.T) {
	d := NewSendDelay(DelayParams{TimeL: 0.05, TimeR: 0.05, Att: 0.5})
	outL := buffer.NewAudioFrame(buffer.MaxBlock)
	outR := buffer.NewAudioFrame(buffer.MaxBlock)
	wet := impulseResponse(func(l, r *buffer.AudioFrame) {
		outL.SetLen(l.Len())
		outR.SetLen(r.Len())
		d.Process(l, r, outL, outR)
		for i := 0; i < l.Len(); i++ {
			l.Set(i, outL.Get(i))
		}
	}, 0.8, 3*2205)

	// No dry component: the impulse itself never reaches the output.
	assert.Zero(t, wet[0])

	e1 := firstAbove(wet, 1, 0.1)
	require.Greater(t, e1, 0)
	assert.InDelta(t, 2205, e1, 2)
	assert.InDelta(t, 0.4, float64(wet[e1]), 0.01)
}

func TestChainAppliesInOrder(t *testing.T) {
	c := NewChain(NewDelay(DelayParams{TimeL: 0.01, TimeR: 0.01, Att: 0.3}))
	l := buffer.NewAudioFrame(128)
	r := buffer.NewAudioFrame(128)
	l.Set(0, 0.25)
	c.Process(l, r)
	assert.InDelta(t, 0.5, float64(l.Get(0)), 1e-3)
	c.Reset()
}
