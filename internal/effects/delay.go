package effects

import "github.com/cbegin/polysynth-go/internal/buffer"

const ringFrames = buffer.SampleRate // one second per channel

// DelayParams configures a stereo delay from a preset. Times are seconds in
// 0..1, attenuation is the feedback ratio.
type DelayParams struct {
	TimeL float32
	TimeR float32
	Att   float32
}

// Delay is the per-instrument stereo echo. It adds the input plus the
// fed-back echo onto the block it was given, so the dry signal stays in
// place and is mixed in a second time alongside the echo. Feedback
// below the silence threshold is truncated to keep the tail from ringing
// forever in denormal territory.
type Delay struct {
	prms  DelayParams
	ring  [2][]float32
	rdPtr [2]int
	wrPtr [2]int
}

func NewDelay(p DelayParams) *Delay {
	d := &Delay{prms: p}
	for ch := range d.ring {
		d.ring[ch] = make([]float32, ringFrames)
	}
	d.wrPtr[0] = int(p.TimeL * ringFrames)
	d.wrPtr[1] = int(p.TimeR * ringFrames)
	return d
}

func (d *Delay) incPtr(ch int) {
	d.rdPtr[ch]++
	d.wrPtr[ch]++
	if d.rdPtr[ch] >= ringFrames {
		d.rdPtr[ch] = 0
	}
	if d.wrPtr[ch] >= ringFrames {
		d.wrPtr[ch] = 0
	}
}

func (d *Delay) Process(l, r *buffer.AudioFrame) {
	for ch, abuf := range [2]*buffer.AudioFrame{l, r} {
		for i := 0; i < abuf.Len(); i++ {
			crnt := abuf.Get(i) + d.ring[ch][d.rdPtr[ch]]*d.prms.Att
			if crnt < buffer.SilenceLevel && crnt > -buffer.SilenceLevel {
				crnt = 0
			}
			abuf.Add(i, crnt)
			d.ring[ch][d.wrPtr[ch]] = crnt
			d.incPtr(ch)
		}
	}
}

func (d *Delay) Reset() {
	for ch := range d.ring {
		for i := range d.ring[ch] {
			d.ring[ch][i] = 0
		}
	}
}
