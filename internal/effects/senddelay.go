package effects

import "github.com/cbegin/polysynth-go/internal/buffer"

// SendDelay is the global effect-bus delay. Unlike Delay it is dry-free:
// the input never reaches the output directly, only its echoes do, so the
// engine can add the result on top of the already-summed dry mix.
type SendDelay struct {
	att   float32
	ring  [2][]float32
	rdPtr [2]int
	wrPtr [2]int
}

func NewSendDelay(p DelayParams) *SendDelay {
	d := &SendDelay{att: p.Att}
	for ch := range d.ring {
		d.ring[ch] = make([]float32, ringFrames)
	}
	d.wrPtr[0] = int(p.TimeL * ringFrames)
	d.wrPtr[1] = int(p.TimeR * ringFrames)
	return d
}

func (d *SendDelay) incPtr(ch int) {
	d.rdPtr[ch]++
	d.wrPtr[ch]++
	if d.rdPtr[ch] >= ringFrames {
		d.rdPtr[ch] = 0
	}
	if d.wrPtr[ch] >= ringFrames {
		d.wrPtr[ch] = 0
	}
}

// Process reads the effect bus from in and writes only the wet signal into
// out. The input plus its own echo is fed back into the ring.
func (d *SendDelay) Process(inL, inR, outL, outR *buffer.AudioFrame) {
	for ch, bufs := range [2][2]*buffer.AudioFrame{{inL, outL}, {inR, outR}} {
		in, out := bufs[0], bufs[1]
		for i := 0; i < in.Len(); i++ {
			wet := d.ring[ch][d.rdPtr[ch]] * d.att
			out.Set(i, wet)
			d.ring[ch][d.wrPtr[ch]] = in.Get(i) + wet
			d.incPtr(ch)
		}
	}
}

func (d *SendDelay) Reset() {
	for ch := range d.ring {
		for i := range d.ring[ch] {
			d.ring[ch][i] = 0
		}
	}
}
