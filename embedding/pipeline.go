package embedding

import (
	"context"
	"errors"
	"fmt"

	"github.com/soundcrate/mixplan/algorithms/common"
	"github.com/soundcrate/mixplan/algorithms/spectral"
	"github.com/soundcrate/mixplan/algorithms/windowing"
	"github.com/soundcrate/mixplan/logging"
)

// Fixed embedding pipeline geometry. The spectrogram shape is part of the
// inference boundary contract and must not drift from the model's input.
const (
	Dim              = 512   // Embedding vector length
	TargetSampleRate = 22050 // Analysis sample rate; sources are resampled
	MelBands         = 128   // Mel filterbank size
	MelFrames        = 199   // Time frames per window spectrogram

	windowSamples = TargetSampleRate     // 1.0 s analysis window
	hopSamples    = TargetSampleRate / 2 // 0.5 s step
	fftSize       = 2048
	frameHop      = 101 // Yields exactly MelFrames frames per window
)

// Pipeline turns raw PCM into a single unit-length track embedding:
// per-window log-mel spectrograms are submitted to the inference boundary,
// each window vector is L2-normalized, and the mean of the window vectors is
// re-normalized into the track embedding.
type Pipeline struct {
	handle     *ModelHandle
	stft       *spectral.STFT
	mel        *spectral.MelScale
	window     *windowing.Hann
	filterBank [][]float64
	logger     logging.Logger
}

// NewPipeline creates an embedding pipeline over the given model handle
func NewPipeline(handle *ModelHandle) *Pipeline {
	mel := spectral.NewMelScale()
	return &Pipeline{
		handle:     handle,
		stft:       spectral.NewSTFT(),
		mel:        mel,
		window:     windowing.NewHann(fftSize),
		filterBank: mel.CreateMelFilterBank(MelBands, fftSize, TargetSampleRate, 0, TargetSampleRate/2),
		logger:     logging.WithFields(logging.Fields{"component": "embedding_pipeline"}),
	}
}

// TrackEmbedding computes the pooled track embedding.
//
// Windows whose prediction fails are skipped and noted; the pooled result then
// averages fewer windows. If every window fails the whole extraction fails.
// Audio shorter than one window is ErrInsufficientAudio rather than a padded,
// fabricated embedding.
func (p *Pipeline) TrackEmbedding(ctx context.Context, samples []float64, sampleRate int) ([]float64, error) {
	resampled := common.Resample(samples, sampleRate, TargetSampleRate)
	if len(resampled) < windowSamples {
		return nil, fmt.Errorf("%w: %d samples at %d Hz", ErrInsufficientAudio, len(resampled), TargetSampleRate)
	}

	pooled := make([]float64, Dim)
	windowsUsed := 0
	windowsFailed := 0
	var lastErr error

	for start := 0; start+windowSamples <= len(resampled); start += hopSamples {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		spectrogram, err := p.windowSpectrogram(resampled[start : start+windowSamples])
		if err != nil {
			return nil, err
		}

		vec, err := p.handle.Infer(spectrogram)
		if err != nil {
			if errors.Is(err, ErrModelUnavailable) {
				// Backend missing entirely; retrying per window is pointless
				return nil, err
			}
			windowsFailed++
			lastErr = err
			continue
		}
		if len(vec) != Dim {
			windowsFailed++
			lastErr = fmt.Errorf("%w: got %d values, want %d", ErrPredictionFailed, len(vec), Dim)
			continue
		}

		windowVec := make([]float64, Dim)
		copy(windowVec, vec)
		common.L2Normalize(windowVec)

		for i := range pooled {
			pooled[i] += windowVec[i]
		}
		windowsUsed++
	}

	if windowsUsed == 0 {
		if lastErr != nil {
			return nil, lastErr
		}
		return nil, fmt.Errorf("%w: no analysis windows", ErrInsufficientAudio)
	}

	if windowsFailed > 0 {
		p.logger.Warn("pooled embedding from reduced window count", logging.Fields{
			"windows_used":   windowsUsed,
			"windows_failed": windowsFailed,
		})
	}

	for i := range pooled {
		pooled[i] /= float64(windowsUsed)
	}
	common.L2Normalize(pooled)

	return pooled, nil
}

// windowSpectrogram computes the normalized log-mel spectrogram of one 1.0 s
// window, shaped [MelBands][MelFrames] with all values in [0, 1].
func (p *Pipeline) windowSpectrogram(window []float64) ([][]float64, error) {
	stftResult, err := p.stft.Compute(window, fftSize, frameHop, TargetSampleRate, p.window)
	if err != nil {
		return nil, fmt.Errorf("window spectrogram: %w", err)
	}

	frames := stftResult.Magnitude
	if len(frames) > MelFrames {
		frames = frames[:MelFrames]
	}

	// Band-major layout: spectrogram[band][frame]
	spectrogram := make([][]float64, MelBands)
	for b := range spectrogram {
		spectrogram[b] = make([]float64, MelFrames)
	}

	flat := make([]float64, 0, MelBands*len(frames))
	for t, frame := range frames {
		logMel := p.mel.LogMelFrame(frame, p.filterBank)
		for b := 0; b < MelBands; b++ {
			spectrogram[b][t] = logMel[b]
			flat = append(flat, logMel[b])
		}
	}

	// Min/max normalize the whole spectrogram to [0, 1]
	common.MinMaxNormalize(flat)
	i := 0
	for t := range frames {
		for b := 0; b < MelBands; b++ {
			spectrogram[b][t] = flat[i]
			i++
		}
	}

	return spectrogram, nil
}
