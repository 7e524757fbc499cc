// Package buffer provides the fixed-capacity audio and control-rate sample
// frames shared by every stage of the render path. Frames are allocated once
// at construction and resized per block by logical length only, so the hot
// path never touches the allocator.
package buffer

// Block geometry. All render calls operate on blocks of at most MaxBlock
// frames, and control-rate signals (envelope, LFO) hold one value per
// CtrlInterval audio frames.
const (
	SampleRate   = 44100
	MaxBlock     = 1024
	CtrlInterval = 128

	// SilenceLevel is the threshold below which a signal is treated as
	// inaudible: envelopes under it trigger voice damping, delay feedback
	// under it is zeroed.
	SilenceLevel = 1e-4
)

// AudioFrame is a mono sample buffer with a fixed capacity and a per-block
// logical length. Writes through Set/Add/Mul clamp to (-1, 1): any overflow
// lands at +-0.99 so a downstream stage can never see a full-scale sample.
type AudioFrame struct {
	buf  []float32
	n    int
	ring int
}

// NewAudioFrame allocates a frame with the given capacity; the logical
// length starts at the full capacity.
func NewAudioFrame(capacity int) *AudioFrame {
	return &AudioFrame{buf: make([]float32, capacity), n: capacity}
}

func limit(v float32) float32 {
	if v >= 1.0 {
		return 0.99
	}
	if v <= -1.0 {
		return -0.99
	}
	return v
}

// SetLen resizes the logical region, capped at the allocated capacity.
func (f *AudioFrame) SetLen(n int) {
	if n > len(f.buf) {
		n = len(f.buf)
	}
	f.n = n
}

func (f *AudioFrame) Len() int { return f.n }

func (f *AudioFrame) Clear() {
	for i := 0; i < f.n; i++ {
		f.buf[i] = 0
	}
}

func (f *AudioFrame) Get(i int) float32 { return f.buf[i] }

func (f *AudioFrame) Set(i int, v float32) { f.buf[i] = limit(v) }

func (f *AudioFrame) Add(i int, v float32) { f.buf[i] = limit(f.buf[i] + v) }

func (f *AudioFrame) Mul(i int, rate float32) { f.buf[i] = limit(f.buf[i] * rate) }

// Push writes v at a wrapping internal cursor; used for the voice level
// history ring.
func (f *AudioFrame) Push(v float32) {
	f.buf[f.ring] = limit(v)
	f.ring++
	if f.ring >= f.n {
		f.ring = 0
	}
}

// Max returns the largest sample value in the logical region, or 0 when
// every sample is negative.
func (f *AudioFrame) Max() float32 {
	var m float32
	for i := 0; i < f.n; i++ {
		if f.buf[i] > m {
			m = f.buf[i]
		}
	}
	return m
}

// MulAndMix accumulates src*k into the frame with clamping addition, over
// the overlap of both logical regions.
func (f *AudioFrame) MulAndMix(src *AudioFrame, k float32) {
	n := f.n
	if src.n < n {
		n = src.n
	}
	for i := 0; i < n; i++ {
		f.Add(i, src.buf[i]*k)
	}
}

// CopyToSlice copies the logical region into dst, which must hold at least
// Len() samples.
func (f *AudioFrame) CopyToSlice(dst []float32) {
	copy(dst[:f.n], f.buf[:f.n])
}

// AddToSlice accumulates the logical region into dst.
func (f *AudioFrame) AddToSlice(dst []float32) {
	for i := 0; i < f.n; i++ {
		dst[i] += f.buf[i]
	}
}

// CtrlFrame holds one value per CtrlInterval audio frames. It is written at
// control rate and read back at audio rate through CtrlForAudio.
type CtrlFrame struct {
	cbuf []float32
	n    int
}

// NewCtrlFrame allocates a control frame sized for capacity control samples.
func NewCtrlFrame(capacity int) *CtrlFrame {
	return &CtrlFrame{cbuf: make([]float32, capacity), n: capacity}
}

// CtrlLen converts an audio block length to the matching control length.
func CtrlLen(audioFrames int) int { return audioFrames / CtrlInterval }

func (c *CtrlFrame) SetLen(n int) {
	if n > len(c.cbuf) {
		n = len(c.cbuf)
	}
	c.n = n
}

func (c *CtrlFrame) Len() int { return c.n }

func (c *CtrlFrame) Set(i int, v float32) { c.cbuf[i] = v }

func (c *CtrlFrame) Get(i int) float32 { return c.cbuf[i] }

// CtrlForAudio returns the control value covering audio frame i.
func (c *CtrlFrame) CtrlForAudio(i int) float32 { return c.cbuf[i/CtrlInterval] }

// Max returns the largest control value in the logical region, or 0 when
// every value is negative.
func (c *CtrlFrame) Max() float32 {
	var m float32
	for i := 0; i < c.n; i++ {
		if c.cbuf[i] > m {
			m = c.cbuf[i]
		}
	}
	return m
}
