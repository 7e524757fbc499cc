package preset

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cbegin/polysynth-go/internal/effects"
	"github.com/cbegin/polysynth-go/internal/envelope"
	"github.com/cbegin/polysynth-go/internal/filter"
	"github.com/cbegin/polysynth-go/internal/lfo"
	"github.com/cbegin/polysynth-go/internal/osc"
)

// yamlBank is the on-disk bank layout. It is kept separate from the runtime
// types so wave and direction names stay symbolic in the files.
type yamlBank struct {
	Send  yamlDelay  `yaml:"send"`
	Tones []yamlTone `yaml:"tones"`
}

type yamlTone struct {
	Name       string     `yaml:"name"`
	Mono       bool       `yaml:"mono"`
	VolTrim    float32    `yaml:"vol_trim"`
	Prm0Cutoff bool       `yaml:"prm0_cutoff"`
	Osc        yamlOsc    `yaml:"osc"`
	Aeg        yamlAeg    `yaml:"aeg"`
	Lfo        yamlLfo    `yaml:"lfo"`
	Delay      *yamlDelay `yaml:"delay"`
	Filter     *yamlFlt   `yaml:"filter"`
}

type yamlOsc struct {
	Wave       string  `yaml:"wave"`
	CoarseTune int     `yaml:"coarse_tune"`
	FineTune   float32 `yaml:"fine_tune"`
	LfoDepth   float32 `yaml:"lfo_depth"`
	GlideSpeed float32 `yaml:"glide_speed"`
}

type yamlAeg struct {
	Attack  float32 `yaml:"attack"`
	Decay   float32 `yaml:"decay"`
	Sustain float32 `yaml:"sustain"`
	Release float32 `yaml:"release"`
}

type yamlLfo struct {
	Freq      float32 `yaml:"freq"`
	Wave      string  `yaml:"wave"`
	Direction string  `yaml:"direction"`
	FadeIn    uint32  `yaml:"fade_in"`
	Delay     uint32  `yaml:"delay"`
}

type yamlDelay struct {
	TimeL float32 `yaml:"time_l"`
	TimeR float32 `yaml:"time_r"`
	Att   float32 `yaml:"att"`
}

type yamlFlt struct {
	Freq      float32 `yaml:"freq"`
	Resonance float32 `yaml:"resonance"`
}

var oscWaves = map[string]osc.Wave{
	"sine":     osc.Sine,
	"saw":      osc.Saw,
	"square":   osc.Square,
	"pulse":    osc.Pulse,
	"additive": osc.AdditiveFormant,
	"vocal":    osc.VocalGlottal,
}

var lfoWaves = map[string]lfo.Wave{
	"tri": lfo.WaveTri,
	"saw": lfo.WaveSaw,
	"squ": lfo.WaveSqu,
	"sin": lfo.WaveSin,
}

var lfoDirections = map[string]lfo.Direction{
	"both":  lfo.DirBoth,
	"upper": lfo.DirUpper,
	"lower": lfo.DirLower,
}

// LoadBank reads a YAML tone bank from path.
func LoadBank(path string) (*Bank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read bank: %w", err)
	}
	return ParseBank(data)
}

// ParseBank decodes a YAML tone bank.
func ParseBank(data []byte) (*Bank, error) {
	var yb yamlBank
	if err := yaml.Unmarshal(data, &yb); err != nil {
		return nil, fmt.Errorf("parse bank: %w", err)
	}
	if len(yb.Tones) == 0 {
		return nil, fmt.Errorf("parse bank: no tones defined")
	}
	b := &Bank{
		Send: effects.DelayParams{TimeL: yb.Send.TimeL, TimeR: yb.Send.TimeR, Att: yb.Send.Att},
	}
	for i, yt := range yb.Tones {
		tone, err := yt.toTone()
		if err != nil {
			return nil, fmt.Errorf("tone %d (%s): %w", i, yt.Name, err)
		}
		b.Tones = append(b.Tones, tone)
	}
	return b, nil
}

func (yt yamlTone) toTone() (Tone, error) {
	wave, ok := oscWaves[yt.Osc.Wave]
	if !ok {
		return Tone{}, fmt.Errorf("unknown osc wave %q", yt.Osc.Wave)
	}
	lw, ok := lfoWaves[yt.Lfo.Wave]
	if !ok && yt.Lfo.Wave != "" {
		return Tone{}, fmt.Errorf("unknown lfo wave %q", yt.Lfo.Wave)
	}
	dir, ok := lfoDirections[yt.Lfo.Direction]
	if !ok && yt.Lfo.Direction != "" {
		return Tone{}, fmt.Errorf("unknown lfo direction %q", yt.Lfo.Direction)
	}
	trim := yt.VolTrim
	if trim == 0 {
		trim = polyTrim
		if yt.Mono {
			trim = monoTrim
		}
	}
	t := Tone{
		Name:       yt.Name,
		Mono:       yt.Mono,
		VolTrim:    trim,
		Prm0Cutoff: yt.Prm0Cutoff,
		Osc: osc.Params{
			Wave:       wave,
			CoarseTune: yt.Osc.CoarseTune,
			FineTune:   yt.Osc.FineTune,
			LfoDepth:   yt.Osc.LfoDepth,
			GlideSpeed: yt.Osc.GlideSpeed,
		},
		Aeg: envelope.Params{
			AttackRate:   yt.Aeg.Attack,
			DecayRate:    yt.Aeg.Decay,
			SustainLevel: yt.Aeg.Sustain,
			ReleaseRate:  yt.Aeg.Release,
		},
		Lfo: lfo.Params{
			Freq:      yt.Lfo.Freq,
			Wave:      lw,
			Direction: dir,
			FadeIn:    yt.Lfo.FadeIn,
			Delay:     yt.Lfo.Delay,
		},
	}
	if yt.Delay != nil {
		t.Delay = &effects.DelayParams{TimeL: yt.Delay.TimeL, TimeR: yt.Delay.TimeR, Att: yt.Delay.Att}
	}
	if yt.Filter != nil {
		t.Filter = &filter.Params{Freq: yt.Filter.Freq, Resonance: yt.Filter.Resonance}
	}
	return t, nil
}
