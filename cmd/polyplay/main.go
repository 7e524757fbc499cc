// Command polyplay plays a live demo phrase through the system audio
// device, streaming the engine block by block.
package main

import (
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"github.com/cbegin/polysynth-go"
	"github.com/cbegin/polysynth-go/internal/audio"
)

func main() {
	program := pflag.IntP("program", "p", 0, "tone program number")
	seconds := pflag.Float64P("seconds", "s", 6.0, "playback length in seconds")
	bankPath := pflag.StringP("bank", "b", "", "optional YAML tone bank")
	send := pflag.Int("send", 48, "effect send level (CC91, 0-127)")
	verbose := pflag.BoolP("verbose", "v", false, "debug logging")
	pflag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "polyplay"})
	if *verbose {
		logger.SetLevel(log.DebugLevel)
	}

	eng := polysynth.New()
	if *bankPath != "" {
		bank, err := polysynth.LoadBank(*bankPath)
		if err != nil {
			logger.Fatal("load bank", "err", err)
		}
		eng = polysynth.NewWithBank(bank)
		logger.Info("loaded tone bank", "path", *bankPath, "tones", len(bank.Tones))
	}

	src := eng.SampleSource()
	pl, err := audio.NewPlayer(polysynth.SampleRate, src)
	if err != nil {
		logger.Fatal("open audio", "err", err)
	}
	defer pl.Stop()

	src.Enqueue(0xc0, byte(*program), 0)
	src.Enqueue(0xb0, 91, byte(*send))
	pl.Play()
	logger.Info("playing", "program", *program, "seconds", *seconds)

	notes := []byte{60, 64, 67, 71, 67, 64}
	step := time.Duration(*seconds * 0.75 / float64(len(notes)) * float64(time.Second))
	for _, n := range notes {
		src.Enqueue(0x90, n, 100)
		logger.Debug("note on", "note", n)
		time.Sleep(step * 3 / 4)
		src.Enqueue(0x80, n, 0)
		time.Sleep(step / 4)
	}
	time.Sleep(time.Duration(*seconds * 0.25 * float64(time.Second)))
	logger.Info("done")
}
