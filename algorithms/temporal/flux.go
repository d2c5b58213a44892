package temporal

import "math"

// OnsetFlux computes a rectified frame-to-frame energy flux signal, a proxy
// for rhythmic events. Frames of frameSize samples are taken every hopSize
// samples; flux[i] is the positive part of the energy increase from frame i
// to frame i+1.
func OnsetFlux(signal []float64, frameSize, hopSize int) []float64 {
	if len(signal) < frameSize || frameSize <= 0 || hopSize <= 0 {
		return []float64{}
	}

	numFrames := (len(signal)-frameSize)/hopSize + 1
	energies := make([]float64, numFrames)
	for i := 0; i < numFrames; i++ {
		start := i * hopSize
		sum := 0.0
		for _, s := range signal[start : start+frameSize] {
			sum += s * s
		}
		energies[i] = sum
	}

	if numFrames < 2 {
		return []float64{}
	}

	flux := make([]float64, numFrames-1)
	for i := range flux {
		if diff := energies[i+1] - energies[i]; diff > 0 {
			flux[i] = diff
		}
	}

	return flux
}

// FrameEnergies computes per-frame RMS energy over non-overlapping frames of
// frameSize samples. The final partial frame, if any, is included.
func FrameEnergies(signal []float64, frameSize int) []float64 {
	if len(signal) == 0 || frameSize <= 0 {
		return []float64{}
	}

	numFrames := (len(signal) + frameSize - 1) / frameSize
	energies := make([]float64, numFrames)

	for i := 0; i < numFrames; i++ {
		start := i * frameSize
		end := start + frameSize
		if end > len(signal) {
			end = len(signal)
		}

		sum := 0.0
		for _, s := range signal[start:end] {
			sum += s * s
		}
		n := end - start
		if n > 0 {
			energies[i] = sum / float64(n)
		}
	}

	// RMS, not mean-square
	for i, e := range energies {
		energies[i] = math.Sqrt(e)
	}

	return energies
}
