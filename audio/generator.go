package audio

import (
	"math"

	"github.com/gopxl/beep"
)

// ToneGenerator produces a sine tone with an exponential decay, like a plucked note
// It never ends on its own; wrap it in beep.Take
type ToneGenerator struct {
	sr     beep.SampleRate
	freq   float64
	volume float64
	decay  float64 // Samples for the amplitude to fall by 1/e
	pos    int
}

// NewToneGenerator creates a decaying tone at freq Hz
func NewToneGenerator(sr beep.SampleRate, freq, volume float64) *ToneGenerator {
	return &ToneGenerator{
		sr:     sr,
		freq:   freq,
		volume: volume,
		decay:  float64(sr) * 0.04,
	}
}

func (g *ToneGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		env := math.Exp(-float64(g.pos) / g.decay)
		v := g.volume * env * math.Sin(2*math.Pi*g.freq*t)
		samples[i][0] = v
		samples[i][1] = v
		g.pos++
	}
	return len(samples), true
}

func (g *ToneGenerator) Err() error {
	return nil
}

// ThudGenerator produces a low square-ish pulse for blocks landing
type ThudGenerator struct {
	sr     beep.SampleRate
	freq   float64
	volume float64
	pos    int
}

// NewThudGenerator creates a thud at freq Hz
func NewThudGenerator(sr beep.SampleRate, freq, volume float64) *ThudGenerator {
	return &ThudGenerator{sr: sr, freq: freq, volume: volume}
}

func (g *ThudGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		// Soft-clipped sine approximates a square wave without harsh harmonics
		raw := math.Tanh(3 * math.Sin(2*math.Pi*g.freq*t))
		env := math.Exp(-t * 30)
		v := g.volume * 0.6 * env * raw
		samples[i][0] = v
		samples[i][1] = v
		g.pos++
	}
	return len(samples), true
}

func (g *ThudGenerator) Err() error {
	return nil
}
