package analysis

import (
	"math"

	"github.com/soundcrate/mixplan/algorithms/temporal"
	"github.com/soundcrate/mixplan/logging"
)

// BeatgridParams contains parameters for tempo estimation
type BeatgridParams struct {
	FrameSize int     `json:"frame_size"` // Onset analysis frame size (default: 1024)
	HopSize   int     `json:"hop_size"`   // Hop between frames (default: 512)
	MinBPM    float64 `json:"min_bpm"`    // Lower tempo bound (default: 60)
	MaxBPM    float64 `json:"max_bpm"`    // Upper tempo bound (default: 200)
	MaxOnsets int     `json:"max_onsets"` // Onset samples considered in autocorrelation (default: 1000)
	ConfScale float64 `json:"conf_scale"` // Correlation-to-confidence divisor (default: 10)
}

// DefaultBeatgridParams returns the standard tempo analysis parameters
func DefaultBeatgridParams() BeatgridParams {
	return BeatgridParams{
		FrameSize: 1024,
		HopSize:   512,
		MinBPM:    60.0,
		MaxBPM:    200.0,
		MaxOnsets: 1000,
		ConfScale: 10.0,
	}
}

// BeatgridResult holds the estimated tempo
type BeatgridResult struct {
	BPM        float64 `json:"bpm"`        // Estimated tempo, always within [MinBPM, MaxBPM]
	Confidence float64 `json:"confidence"` // Heuristic confidence in [0, 1], not a calibrated probability
}

// BeatgridAnalyzer estimates track tempo from onset energy flux
type BeatgridAnalyzer struct {
	params BeatgridParams
	logger logging.Logger
}

// NewBeatgridAnalyzer creates a tempo analyzer with default parameters
func NewBeatgridAnalyzer() *BeatgridAnalyzer {
	return NewBeatgridAnalyzerWithParams(DefaultBeatgridParams())
}

// NewBeatgridAnalyzerWithParams creates a tempo analyzer with custom parameters
func NewBeatgridAnalyzerWithParams(params BeatgridParams) *BeatgridAnalyzer {
	return &BeatgridAnalyzer{
		params: params,
		logger: logging.WithFields(logging.Fields{"component": "beatgrid_analyzer"}),
	}
}

// Analyze estimates tempo by autocorrelating the onset flux signal over the
// lag range corresponding to [MinBPM, MaxBPM]. The lag scan runs from low lag
// to high lag and only a strictly larger correlation replaces the current
// best, so exact ties resolve to the faster tempo.
func (b *BeatgridAnalyzer) Analyze(samples []float64, sampleRate int) BeatgridResult {
	fallback := BeatgridResult{BPM: 120.0, Confidence: 0.05}
	if len(samples) == 0 || sampleRate <= 0 {
		return fallback
	}

	flux := temporal.OnsetFlux(samples, b.params.FrameSize, b.params.HopSize)
	if len(flux) < 2 {
		b.logger.Debug("too few onset frames, returning fallback tempo")
		return fallback
	}

	// Peak-normalize so the confidence scale is signal-level independent
	maxFlux := 0.0
	for _, f := range flux {
		if f > maxFlux {
			maxFlux = f
		}
	}
	if maxFlux < 1e-12 {
		return fallback
	}
	norm := make([]float64, len(flux))
	for i, f := range flux {
		norm[i] = f / maxFlux
	}

	framesPerSecond := float64(sampleRate) / float64(b.params.HopSize)
	minLag := int(math.Ceil(framesPerSecond * 60.0 / b.params.MaxBPM))
	maxLag := int(math.Floor(framesPerSecond * 60.0 / b.params.MinBPM))
	if minLag < 1 {
		minLag = 1
	}
	if maxLag > len(norm)-1 {
		maxLag = len(norm) - 1
	}
	if minLag > maxLag {
		return fallback
	}

	limit := len(norm)
	if limit > b.params.MaxOnsets {
		limit = b.params.MaxOnsets
	}

	bestLag := 0
	bestCorr := 0.0
	for lag := minLag; lag <= maxLag; lag++ {
		corr := 0.0
		for i := 0; i+lag < limit; i++ {
			corr += norm[i] * norm[i+lag]
		}
		if corr > bestCorr {
			bestCorr = corr
			bestLag = lag
		}
	}

	if bestLag == 0 {
		return fallback
	}

	bpm := 60.0 * framesPerSecond / float64(bestLag)
	if bpm < b.params.MinBPM {
		bpm = b.params.MinBPM
	}
	if bpm > b.params.MaxBPM {
		bpm = b.params.MaxBPM
	}

	confidence := bestCorr / b.params.ConfScale
	if confidence > 1.0 {
		confidence = 1.0
	}

	return BeatgridResult{BPM: bpm, Confidence: confidence}
}
