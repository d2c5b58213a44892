package spectral

import (
	"fmt"
)

// Window is the windowing function applied to each analysis frame
type Window interface {
	ApplyInPlace(signal []float64) error
}

// STFT provides Short-Time Fourier Transform magnitude analysis
type STFT struct {
	fft *FFT
}

// STFTResult holds the result of STFT analysis
type STFTResult struct {
	Magnitude      [][]float64 `json:"magnitude"`       // Time x Frequency magnitude matrix
	TimeFrames     int         `json:"time_frames"`     // Number of time frames
	FreqBins       int         `json:"freq_bins"`       // Number of frequency bins
	WindowSize     int         `json:"window_size"`     // FFT window size
	HopSize        int         `json:"hop_size"`        // Hop size between frames
	FreqResolution float64     `json:"freq_resolution"` // Frequency resolution (Hz/bin)
}

// NewSTFT creates a new STFT calculator
func NewSTFT() *STFT {
	return &STFT{fft: NewFFT()}
}

// Compute computes the magnitude spectrogram of a signal. A nil window means
// rectangular framing.
func (s *STFT) Compute(signal []float64, windowSize, hopSize, sampleRate int, window Window) (*STFTResult, error) {
	if len(signal) == 0 {
		return nil, fmt.Errorf("empty signal")
	}
	if windowSize <= 0 {
		return nil, fmt.Errorf("window size must be positive")
	}
	if hopSize <= 0 {
		return nil, fmt.Errorf("hop size must be positive")
	}

	numFrames := (len(signal)-windowSize)/hopSize + 1
	if numFrames <= 0 {
		return nil, fmt.Errorf("signal too short for window size %d", windowSize)
	}

	freqBins := windowSize/2 + 1
	magnitude := make([][]float64, numFrames)

	frame := make([]float64, windowSize)
	for t := 0; t < numFrames; t++ {
		start := t * hopSize
		copy(frame, signal[start:start+windowSize])

		if window != nil {
			if err := window.ApplyInPlace(frame); err != nil {
				return nil, fmt.Errorf("windowing frame %d: %w", t, err)
			}
		}

		magnitude[t] = s.fft.Magnitude(frame)
	}

	return &STFTResult{
		Magnitude:      magnitude,
		TimeFrames:     numFrames,
		FreqBins:       freqBins,
		WindowSize:     windowSize,
		HopSize:        hopSize,
		FreqResolution: float64(sampleRate) / float64(windowSize),
	}, nil
}
