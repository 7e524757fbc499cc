// Package effects holds the block-wise stereo effects: the per-instrument
// echo delay and the dry-free send delay behind the global effect bus.
package effects

import "github.com/cbegin/polysynth-go/internal/buffer"

// Effector processes a stereo block in place.
type Effector interface {
	Process(l, r *buffer.AudioFrame)
	Reset()
}

// Chain applies a sequence of effects in order.
type Chain struct {
	effects []Effector
}

func NewChain(effects ...Effector) *Chain {
	return &Chain{effects: effects}
}

func (c *Chain) Process(l, r *buffer.AudioFrame) {
	for _, e := range c.effects {
		e.Process(l, r)
	}
}

func (c *Chain) Reset() {
	for _, e := range c.effects {
		e.Reset()
	}
}

func (c *Chain) Add(e Effector) {
	c.effects = append(c.effects, e)
}
