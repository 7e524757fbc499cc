package filter

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cbegin/polysynth-go/internal/buffer"
)

func fill(f *buffer.AudioFrame, fn func(i int) float32) {
	for i := 0; i < f.Len(); i++ {
		f.Set(i, fn(i))
	}
}

func energy(f *buffer.AudioFrame, from int) float64 {
	var e float64
	for i := from; i < f.Len(); i++ {
		e += float64(f.Get(i)) * float64(f.Get(i))
	}
	return e
}

func TestThruPassesUnchanged(t *testing.T) {
	b := New()
	buf := buffer.NewAudioFrame(64)
	fill(buf, func(i int) float32 { return float32(math.Sin(float64(i) / 3)) })
	want := make([]float32, 64)
	for i := range want {
		want[i] = buf.Get(i)
	}
	b.Process(buf)
	for i := range want {
		assert.InDelta(t, float64(want[i]), float64(buf.Get(i)), 1e-6)
	}
}

func TestLPFUnityDCGain(t *testing.T) {
	b := New()
	b.SetLPF(1000, 1.0)
	buf := buffer.NewAudioFrame(buffer.MaxBlock)
	fill(buf, func(int) float32 { return 0.5 })
	b.Process(buf)
	// After settling, a constant input passes at unity gain.
	assert.InDelta(t, 0.5, float64(buf.Get(buf.Len()-1)), 1e-3)
}

func TestLPFAttenuatesHighFrequency(t *testing.T) {
	low := New()
	low.SetLPF(500, 1.0)
	high := New()
	high.SetLPF(500, 1.0)

	lowBuf := buffer.NewAudioFrame(buffer.MaxBlock)
	fill(lowBuf, func(i int) float32 {
		return 0.5 * float32(math.Sin(2*math.Pi*100*float64(i)/buffer.SampleRate))
	})
	highBuf := buffer.NewAudioFrame(buffer.MaxBlock)
	fill(highBuf, func(i int) float32 {
		return 0.5 * float32(math.Sin(2*math.Pi*8000*float64(i)/buffer.SampleRate))
	})
	low.Process(lowBuf)
	high.Process(highBuf)
	assert.Greater(t, energy(lowBuf, 256), energy(highBuf, 256)*10)
}

func TestBPFBlocksDC(t *testing.T) {
	b := New()
	b.SetBPF(1000, 1.0)
	buf := buffer.NewAudioFrame(buffer.MaxBlock)
	fill(buf, func(int) float32 { return 0.5 })
	b.Process(buf)
	assert.InDelta(t, 0.0, float64(buf.Get(buf.Len()-1)), 1e-3)
}
