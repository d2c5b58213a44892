package common

// Resample converts a signal from one sample rate to another using linear
// interpolation. This is not bandlimited resampling; it is adequate for
// feature extraction where mild aliasing above the mel range is harmless.
func Resample(signal []float64, fromRate, toRate int) []float64 {
	if fromRate == toRate || len(signal) == 0 || fromRate <= 0 || toRate <= 0 {
		out := make([]float64, len(signal))
		copy(out, signal)
		return out
	}

	ratio := float64(fromRate) / float64(toRate)
	outLen := int(float64(len(signal)) / ratio)
	if outLen < 1 {
		outLen = 1
	}

	out := make([]float64, outLen)
	for i := range out {
		srcPos := float64(i) * ratio
		idx := int(srcPos)
		frac := srcPos - float64(idx)

		if idx+1 < len(signal) {
			out[i] = signal[idx]*(1.0-frac) + signal[idx+1]*frac
		} else if idx < len(signal) {
			out[i] = signal[idx]
		}
	}

	return out
}
