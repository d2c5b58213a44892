package analysis

import (
	"math"

	"github.com/soundcrate/mixplan/algorithms/common"
)

// LoudnessResult holds simplified loudness measurements. These are RMS-based
// approximations, not EBU R128 measurements; the values are comparable across
// tracks analyzed by this package but not against certified meters.
type LoudnessResult struct {
	IntegratedLoudness float64 `json:"integrated_loudness"` // Approximate LUFS
	TruePeak           float64 `json:"true_peak"`           // Sample peak in dBFS
	LoudnessRange      float64 `json:"loudness_range"`      // Fixed placeholder, LU
}

// loudnessRangePlaceholder stands in until a windowed short-term measurement
// is implemented
const loudnessRangePlaceholder = 6.0

// LoudnessAnalyzer computes the simplified loudness measurements
type LoudnessAnalyzer struct{}

// NewLoudnessAnalyzer creates a loudness analyzer
func NewLoudnessAnalyzer() *LoudnessAnalyzer {
	return &LoudnessAnalyzer{}
}

// Analyze measures whole-track RMS loudness and sample peak
func (l *LoudnessAnalyzer) Analyze(samples []float64) LoudnessResult {
	rms := common.RMS(samples)
	if rms < 1e-10 {
		rms = 1e-10
	}

	peak := common.MaxAbs(samples)
	if peak < 1e-10 {
		peak = 1e-10
	}

	return LoudnessResult{
		IntegratedLoudness: 20.0*math.Log10(rms) - 10.0,
		TruePeak:           20.0 * math.Log10(peak),
		LoudnessRange:      loudnessRangePlaceholder,
	}
}
