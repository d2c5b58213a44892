package analysis

import (
	"math"
)

// WaveformSummarizer downsamples PCM into a peak envelope for display
type WaveformSummarizer struct{}

// NewWaveformSummarizer creates a waveform summarizer
func NewWaveformSummarizer() *WaveformSummarizer {
	return &WaveformSummarizer{}
}

// Summarize partitions the signal into ceil(len/targetPoints)-sized blocks and
// emits each block's maximum absolute amplitude. Output length is at most
// targetPoints and every value is non-negative.
func (w *WaveformSummarizer) Summarize(samples []float64, targetPoints int) []float64 {
	if len(samples) == 0 || targetPoints <= 0 {
		return []float64{}
	}

	blockSize := (len(samples) + targetPoints - 1) / targetPoints
	numBlocks := (len(samples) + blockSize - 1) / blockSize

	preview := make([]float64, numBlocks)
	for i := 0; i < numBlocks; i++ {
		start := i * blockSize
		end := start + blockSize
		if end > len(samples) {
			end = len(samples)
		}

		peak := 0.0
		for _, s := range samples[start:end] {
			if abs := math.Abs(s); abs > peak {
				peak = abs
			}
		}
		preview[i] = peak
	}

	return preview
}
