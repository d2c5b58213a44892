package analysis

import (
	"github.com/soundcrate/mixplan/algorithms/chroma"
	"github.com/soundcrate/mixplan/algorithms/spectral"
	"github.com/soundcrate/mixplan/logging"
)

// KeyParams contains parameters for key detection
type KeyParams struct {
	FrameSize int     `json:"frame_size"` // FFT frame size (default: 4096)
	HopSize   int     `json:"hop_size"`   // Hop between frames (default: 2048)
	MaxBins   int     `json:"max_bins"`   // Spectrum bins considered per frame (default: 500)
	MinFreq   float64 `json:"min_freq"`   // Lowest contributing frequency in Hz (default: 20)
	MaxFreq   float64 `json:"max_freq"`   // Highest contributing frequency in Hz (default: 5000)
}

// DefaultKeyParams returns the standard key detection parameters
func DefaultKeyParams() KeyParams {
	return KeyParams{
		FrameSize: 4096,
		HopSize:   2048,
		MaxBins:   500,
		MinFreq:   20.0,
		MaxFreq:   5000.0,
	}
}

// KeyResult holds the detected musical key
type KeyResult struct {
	// Camelot wheel label, e.g. "8A" for A minor
	Key string `json:"key"`

	// Raw Krumhansl profile correlation. Deliberately NOT normalized to
	// [0, 1]; treat it as a relative strength, not a probability.
	Confidence float64 `json:"confidence"`
}

// Camelot wheel lookup tables indexed by tonic pitch class (0=C ... 11=B).
// The values are fixed DJ-notation assignments, not derivable from a formula.
var (
	camelotMajor = [12]string{"8B", "3B", "10B", "5B", "12B", "7B", "2B", "9B", "4B", "11B", "6B", "1B"}
	camelotMinor = [12]string{"5A", "12A", "7A", "2A", "9A", "4A", "11A", "6A", "1A", "8A", "3A", "10A"}
)

// KeyAnalyzer detects the musical key of a track via chroma profile correlation
type KeyAnalyzer struct {
	params KeyParams
	stft   *spectral.STFT
	logger logging.Logger
}

// NewKeyAnalyzer creates a key analyzer with default parameters
func NewKeyAnalyzer() *KeyAnalyzer {
	return NewKeyAnalyzerWithParams(DefaultKeyParams())
}

// NewKeyAnalyzerWithParams creates a key analyzer with custom parameters
func NewKeyAnalyzerWithParams(params KeyParams) *KeyAnalyzer {
	return &KeyAnalyzer{
		params: params,
		stft:   spectral.NewSTFT(),
		logger: logging.WithFields(logging.Fields{"component": "key_analyzer"}),
	}
}

// Analyze builds a normalized 12-bin chroma vector from the magnitude
// spectrogram and correlates it against rotated Krumhansl-Schmuckler major and
// minor profiles. Tracks shorter than one frame yield the all-zero chroma,
// which deterministically resolves to C major ("8B") at zero confidence.
func (k *KeyAnalyzer) Analyze(samples []float64, sampleRate int) KeyResult {
	acc := chroma.NewAccumulator(sampleRate, k.params.FrameSize, k.params.MaxBins, k.params.MinFreq, k.params.MaxFreq)

	stftResult, err := k.stft.Compute(samples, k.params.FrameSize, k.params.HopSize, sampleRate, nil)
	if err == nil {
		for _, frame := range stftResult.Magnitude {
			acc.AddFrame(frame)
		}
	} else {
		k.logger.Debug("signal too short for key analysis, using empty chroma")
	}

	match := chroma.BestKeyMatch(acc.Vector())
	return KeyResult{Key: CamelotLabel(match.Tonic, match.Mode), Confidence: match.Correlation}
}

// CamelotLabel maps a (tonic pitch class, mode) pair to its Camelot label
func CamelotLabel(tonic int, mode chroma.Mode) string {
	tonic = ((tonic % 12) + 12) % 12
	if mode == chroma.ModeMinor {
		return camelotMinor[tonic]
	}
	return camelotMajor[tonic]
}
