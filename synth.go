// Package polysynth is a polyphonic, multi-timbral realtime software
// synthesizer driven by raw 3-byte MIDI messages. A host queues messages
// with ReceiveMIDI and repeatedly asks Process for the next block of stereo
// float32 audio; rendering happens on the caller's thread and never blocks.
// A block allocates only when the event it applies is a note-on (new voice)
// or a program change (new instrument).
package polysynth

import (
	"sync"

	"github.com/cbegin/polysynth-go/internal/audio"
	"github.com/cbegin/polysynth-go/internal/buffer"
	"github.com/cbegin/polysynth-go/internal/engine"
	"github.com/cbegin/polysynth-go/internal/preset"
)

// Engine geometry, re-exported for hosts.
const (
	SampleRate   = buffer.SampleRate
	MaxBlock     = buffer.MaxBlock
	CtrlInterval = buffer.CtrlInterval
	MaxParts     = engine.MaxParts
)

// Engine is the host-facing synthesizer instance.
type Engine struct {
	core *engine.Engine
}

// New builds an engine with the compiled-in tone bank.
func New() *Engine {
	return &Engine{core: engine.New(nil)}
}

// NewWithBank builds an engine over a custom tone bank, e.g. one loaded
// from a YAML file.
func NewWithBank(bank *Bank) *Engine {
	return &Engine{core: engine.New((*preset.Bank)(bank))}
}

// Bank is a tone bank for NewWithBank.
type Bank = preset.Bank

// LoadBank reads a YAML tone bank from disk.
func LoadBank(path string) (*Bank, error) { return preset.LoadBank(path) }

// ReceiveMIDI queues one MIDI message; status carries the channel in its
// low nibble. Unrecognised status bytes and out-of-range channels are
// dropped silently. Messages take effect in arrival order, one per
// processed block.
func (e *Engine) ReceiveMIDI(status, data2, data3 byte) {
	e.core.ReceiveMIDI(status, data2, data3)
}

// Process renders len(l) frames into l and r. The block length must not
// exceed MaxBlock and must be a multiple of CtrlInterval.
func (e *Engine) Process(l, r []float32) {
	e.core.Process(l, r)
}

// SampleSource adapts the engine to the streaming audio bridge. The
// returned source serializes MIDI input against rendering, so a host may
// queue messages from another goroutine via its Enqueue method.
func (e *Engine) SampleSource() *StreamSource {
	return &StreamSource{
		eng: e,
		l:   make([]float32, MaxBlock),
		r:   make([]float32, MaxBlock),
	}
}

// StreamSource renders the engine in control-aligned blocks and re-chunks
// them to whatever frame counts the audio backend asks for.
type StreamSource struct {
	mu   sync.Mutex
	eng  *Engine
	l, r []float32
	rest []float32 // interleaved leftover frames
}

var _ audio.SampleSource = (*StreamSource)(nil)

// Enqueue queues a MIDI message under the source lock.
func (s *StreamSource) Enqueue(status, data2, data3 byte) {
	s.mu.Lock()
	s.eng.ReceiveMIDI(status, data2, data3)
	s.mu.Unlock()
}

// Process fills dst with interleaved stereo frames.
func (s *StreamSource) Process(dst []float32) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for len(dst) > 0 {
		if len(s.rest) > 0 {
			n := copy(dst, s.rest)
			s.rest = s.rest[n:]
			dst = dst[n:]
			continue
		}
		frames := len(dst) / 2
		frames -= frames % CtrlInterval
		if frames > MaxBlock {
			frames = MaxBlock
		}
		if frames == 0 {
			frames = CtrlInterval
		}
		s.eng.Process(s.l[:frames], s.r[:frames])
		if len(dst) >= frames*2 {
			interleave(dst[:frames*2], s.l[:frames], s.r[:frames])
			dst = dst[frames*2:]
			continue
		}
		// Rendered past the request: stash the surplus for the next read.
		full := make([]float32, frames*2)
		interleave(full, s.l[:frames], s.r[:frames])
		n := copy(dst, full)
		s.rest = full[n:]
		dst = dst[n:]
	}
}

func interleave(dst, l, r []float32) {
	for i := range l {
		dst[i*2] = l[i]
		dst[i*2+1] = r[i]
	}
}
