package chroma

import (
	"math"
)

// Accumulator builds a 12-bin pitch-class profile from magnitude spectra
type Accumulator struct {
	sampleRate int
	fftSize    int
	minFreq    float64
	maxFreq    float64
	maxBins    int

	bins [12]float64
}

// NewAccumulator creates a chroma accumulator for the given analysis geometry.
// Only the first maxBins spectrum bins within [minFreq, maxFreq] contribute.
func NewAccumulator(sampleRate, fftSize, maxBins int, minFreq, maxFreq float64) *Accumulator {
	return &Accumulator{
		sampleRate: sampleRate,
		fftSize:    fftSize,
		minFreq:    minFreq,
		maxFreq:    maxFreq,
		maxBins:    maxBins,
	}
}

// AddFrame accumulates one magnitude-spectrum frame into the pitch-class bins
func (a *Accumulator) AddFrame(magnitude []float64) {
	limit := len(magnitude)
	if a.maxBins < limit {
		limit = a.maxBins
	}

	for bin := 1; bin < limit; bin++ {
		freq := float64(bin) * float64(a.sampleRate) / float64(a.fftSize)
		if freq < a.minFreq || freq > a.maxFreq {
			continue
		}

		pc := PitchClass(freq)
		a.bins[pc] += magnitude[bin]
	}
}

// Vector returns the accumulated chroma normalized to sum 1. An empty
// accumulation yields all zeros.
func (a *Accumulator) Vector() [12]float64 {
	var out [12]float64

	total := 0.0
	for _, v := range a.bins {
		total += v
	}
	if total < 1e-12 {
		return out
	}

	for i, v := range a.bins {
		out[i] = v / total
	}
	return out
}

// PitchClass maps a frequency to its equal-temperament pitch class
// (0=C, 1=C#, ..., 11=B) relative to A4 = 440 Hz.
func PitchClass(freq float64) int {
	midi := int(math.Round(12.0*math.Log2(freq/440.0) + 69.0))
	pc := midi % 12
	if pc < 0 {
		pc += 12
	}
	return pc
}
