// Package envelope implements the amplitude envelope generator. It renders
// at control rate into a CtrlFrame; the voice broadcasts the values back to
// audio rate.
package envelope

import "github.com/cbegin/polysynth-go/internal/buffer"

// State of the envelope machine. Transitions move forward along
// NotYet -> Attack -> Decay -> Sustain -> Release -> EgDone, except that
// MoveToAttack re-arms the envelope from any state.
type State int

const (
	NotYet State = iota
	Attack
	Decay
	Sustain
	Release
	EgDone
)

// Params configures the envelope from a preset. Rates are per-control-tick
// interpolation speeds in 0..1; a DecayRate of 1.0 means no decay segment,
// a SustainLevel of 0 ends the envelope after decay.
type Params struct {
	AttackRate   float32
	DecayRate    float32
	SustainLevel float32
	ReleaseRate  float32
}

// Aeg tracks one envelope. Each segment interpolates from src toward tgt
// with an exponential approach that switches to a linear tail above 0.98 so
// the target is reached in finite time.
type Aeg struct {
	prms       Params
	state      State
	tgt        float32
	src        float32
	crnt       float32
	rate       float32
	interp     float32
	releaseRsv bool
}

func New(p Params) *Aeg {
	return &Aeg{prms: p, rate: 1.0}
}

func (a *Aeg) State() State { return a.state }

func (a *Aeg) MoveToAttack() {
	a.src = 0.0
	a.tgt = 1.0
	a.rate = a.prms.AttackRate
	a.state = Attack
	a.interp = 0.0
	a.releaseRsv = false
}

func (a *Aeg) moveToDecay(crnt float32) {
	if a.prms.DecayRate == 1.0 {
		a.moveToSustain(crnt)
		return
	}
	a.src = crnt
	a.tgt = a.prms.SustainLevel
	a.rate = a.prms.DecayRate
	a.state = Decay
	a.interp = 0.0
}

func (a *Aeg) moveToSustain(crnt float32) {
	if a.prms.SustainLevel == 0.0 {
		a.moveToEgDone()
		return
	}
	a.src = crnt
	a.tgt = a.prms.SustainLevel
	a.rate = 0.0
	a.state = Sustain
	a.interp = 0.0
}

// MoveToRelease releases the envelope. A release slower than an in-flight
// decay is reserved until the decay segment lands on the sustain level.
func (a *Aeg) MoveToRelease() {
	if a.state == Decay && a.prms.ReleaseRate < a.prms.DecayRate {
		a.releaseRsv = true
		return
	}
	a.src = a.crnt
	a.tgt = 0.0
	a.rate = a.prms.ReleaseRate
	a.state = Release
	a.interp = 0.0
}

func (a *Aeg) moveToEgDone() {
	a.src = 0.0
	a.tgt = 0.0
	a.rate = 0.0
	a.state = EgDone
	a.interp = 0.0
}

// interpStep advances the 0 -> 1.001 interpolation position.
func (a *Aeg) interpStep() float32 {
	s := a.interp
	if s > 0.98 {
		s += 0.001
		if s > 1.001 {
			s = 1.001
		}
	} else {
		s += (1.0 - s) * a.rate
	}
	a.interp = s
	return s
}

// Process renders one envelope value per control tick into cbuf.
func (a *Aeg) Process(cbuf *buffer.CtrlFrame) {
	diff := a.tgt - a.src
	for i := 0; i < cbuf.Len(); i++ {
		crnt := a.tgt
		switch a.state {
		case Attack:
			crnt = diff*a.interpStep() + a.src
			if diff > 0 && crnt >= a.tgt {
				crnt = a.tgt
				a.moveToDecay(crnt)
				diff = a.tgt - a.src
			}
		case Decay:
			crnt = diff*a.interpStep() + a.src
			if diff < 0 && crnt <= a.tgt {
				crnt = a.tgt
				if a.releaseRsv {
					a.releaseRsv = false
					a.state = Sustain
					a.crnt = crnt
					a.MoveToRelease()
				} else {
					a.moveToSustain(crnt)
				}
				diff = a.tgt - a.src
			}
		case Release:
			crnt = diff*a.interpStep() + a.src
			if diff < 0 && crnt <= a.tgt {
				crnt = a.tgt
				a.moveToEgDone()
				diff = a.tgt - a.src
			}
		}
		cbuf.Set(i, crnt)
		a.crnt = crnt
	}
}
