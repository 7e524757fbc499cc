package wavetable

import "math"

// pitchOfA holds one A anchor per octave. Entry k serves the notes from
// note number 12k-3 (-3, 9, 21, ... 117) upward; the A at that note sounds
// at half the entry, so note 69 resolves to 880/2 = 440 Hz.
var pitchOfA = [11]float32{
	13.75, 27.5, 55.0, 110.0, 220.0, 440.0, 880.0, 1760.0, 3520.0, 7040.0, 14080.0,
}

var semitoneRatio = float32(math.Exp(math.Ln2 / 12.0))

// LimitNote folds a coarse-tuned note number back into 0..127 by octaves.
func LimitNote(note int) int {
	for note < 0 {
		note += 12
	}
	for note >= 128 {
		note -= 12
	}
	return note
}

// BasePitch converts a MIDI note plus coarse (semitones) and fine (cents)
// offsets to Hz, anchored on the per-octave A table.
func BasePitch(coarse int, fineCent float32, note byte) float32 {
	tuned := LimitNote(int(note) + coarse)
	solfa := (tuned + 3) % 12
	octave := (tuned + 3) / 12
	ap := pitchOfA[octave] / 2
	for i := 0; i < solfa; i++ {
		ap *= semitoneRatio
	}
	if fineCent != 0 {
		ap *= float32(math.Exp(float64(fineCent) * math.Ln2 / 1200.0))
	}
	return ap
}

// CentRatio converts a pitch offset in cents to a frequency ratio.
func CentRatio(cents float32) float32 {
	if cents == 0 {
		return 1.0
	}
	return float32(math.Exp(float64(cents) * math.Ln2 / 1200.0))
}
