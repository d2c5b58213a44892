package analysis

import (
	"context"
	"errors"
	"fmt"

	"github.com/soundcrate/mixplan/logging"
)

// EmbeddingExtractor is the boundary to the timbral embedding pipeline. The
// returned vector is unit length. Implementations live outside this package
// so the analyzers stay free of model concerns.
type EmbeddingExtractor interface {
	TrackEmbedding(ctx context.Context, samples []float64, sampleRate int) ([]float64, error)
}

// TrackAnalyzerParams configures a full per-track analysis run
type TrackAnalyzerParams struct {
	Beatgrid BeatgridParams `json:"beatgrid"`
	Key      KeyParams      `json:"key"`

	// WaveformPoints is the preview envelope resolution (default: 1024)
	WaveformPoints int `json:"waveform_points"`

	// Version tags every produced AnalysisResult; bump it when analysis
	// parameters change so cached results are not confused across runs
	Version int `json:"version"`
}

// DefaultTrackAnalyzerParams returns the standard analysis configuration
func DefaultTrackAnalyzerParams() TrackAnalyzerParams {
	return TrackAnalyzerParams{
		Beatgrid:       DefaultBeatgridParams(),
		Key:            DefaultKeyParams(),
		WaveformPoints: 1024,
		Version:        1,
	}
}

// TrackAnalyzer runs the full per-track analysis pipeline:
// beatgrid, key, energy, loudness, sections, cues, waveform, embedding.
//
// Stages run sequentially within a track. Every stage outcome is reported
// through the progress callback keyed by stage name; a stage failure other
// than decode never aborts the stages that already completed.
type TrackAnalyzer struct {
	params   TrackAnalyzerParams
	beatgrid *BeatgridAnalyzer
	key      *KeyAnalyzer
	loudness *LoudnessAnalyzer
	sections *SectionDetector
	cues     *CueGenerator
	waveform *WaveformSummarizer
	embedder EmbeddingExtractor
	logger   logging.Logger
}

// NewTrackAnalyzer creates an analyzer with default parameters. The embedder
// may be nil, in which case the embedding stage fails with the embedder's
// unavailability reported and every other stage still completes.
func NewTrackAnalyzer(embedder EmbeddingExtractor) *TrackAnalyzer {
	return NewTrackAnalyzerWithParams(DefaultTrackAnalyzerParams(), embedder)
}

// NewTrackAnalyzerWithParams creates an analyzer with custom parameters
func NewTrackAnalyzerWithParams(params TrackAnalyzerParams, embedder EmbeddingExtractor) *TrackAnalyzer {
	if params.WaveformPoints <= 0 {
		params.WaveformPoints = 1024
	}
	if params.Version <= 0 {
		params.Version = 1
	}

	return &TrackAnalyzer{
		params:   params,
		beatgrid: NewBeatgridAnalyzerWithParams(params.Beatgrid),
		key:      NewKeyAnalyzerWithParams(params.Key),
		loudness: NewLoudnessAnalyzer(),
		sections: NewSectionDetector(),
		cues:     NewCueGenerator(),
		waveform: NewWaveformSummarizer(),
		embedder: embedder,
		logger:   logging.WithFields(logging.Fields{"component": "track_analyzer"}),
	}
}

var errNoEmbedder = errors.New("no embedding extractor configured")

// Analyze runs every stage for one track. The progress callback, if non-nil,
// receives one event per stage in pipeline order, then a terminal complete or
// failed event. A fatal failure is attributed to the failing stage's own event
// immediately before the terminal failed event. Cancellation via ctx discards
// the partial result.
//
// The pipeline is deterministic: identical samples always produce an
// identical result.
func (a *TrackAnalyzer) Analyze(ctx context.Context, trackID string, signal AudioSignal, progress func(StageEvent)) (*AnalysisResult, error) {
	emit := func(stage Stage, err error) {
		if progress != nil {
			progress(StageEvent{TrackID: trackID, Stage: stage, Err: err})
		}
	}

	if len(signal.Samples) == 0 || signal.SampleRate <= 0 {
		err := fmt.Errorf("%w: track %s", ErrNoAudioData, trackID)
		emit(StageDecoding, err)
		emit(StageFailed, err)
		return nil, err
	}
	emit(StageDecoding, nil)

	logger := a.logger.WithFields(logging.Fields{"track_id": trackID})
	logger.Debug("starting analysis", logging.Fields{"samples": len(signal.Samples), "sample_rate": signal.SampleRate})

	result := &AnalysisResult{
		TrackID:  trackID,
		Version:  a.params.Version,
		Duration: signal.Duration(),
	}

	type stageFn struct {
		stage Stage
		run   func() error
	}

	stages := []stageFn{
		{StageBeatgrid, func() error {
			grid := a.beatgrid.Analyze(signal.Samples, signal.SampleRate)
			result.BPM = grid.BPM
			result.BPMConfidence = grid.Confidence
			return nil
		}},
		{StageKey, func() error {
			key := a.key.Analyze(signal.Samples, signal.SampleRate)
			result.Key = key.Key
			result.KeyConfidence = key.Confidence
			return nil
		}},
		{StageEnergy, func() error {
			result.EnergyGlobal = EnergyRating(signal.Samples, signal.SampleRate)
			return nil
		}},
		{StageLoudness, func() error {
			loud := a.loudness.Analyze(signal.Samples)
			result.IntegratedLoudness = loud.IntegratedLoudness
			result.TruePeak = loud.TruePeak
			result.LoudnessRange = loud.LoudnessRange
			return nil
		}},
		{StageSections, func() error {
			result.Sections = a.sections.Detect(signal.Samples, signal.SampleRate, result.Duration)
			return nil
		}},
		{StageCues, func() error {
			result.CuePoints = a.cues.Generate(result.Sections, result.BPM)
			return nil
		}},
		{StageWaveform, func() error {
			result.WaveformPreview = a.waveform.Summarize(signal.Samples, a.params.WaveformPoints)
			return nil
		}},
		{StageEmbedding, func() error {
			if a.embedder == nil {
				return errNoEmbedder
			}
			vec, err := a.embedder.TrackEmbedding(ctx, signal.Samples, signal.SampleRate)
			if err != nil {
				return err
			}
			result.Embedding = vec
			return nil
		}},
	}

	for _, s := range stages {
		if err := ctx.Err(); err != nil {
			// Cancelled mid-pipeline: attribute the error to the stage that
			// could not run, then fail; the partial result is discarded
			emit(s.stage, err)
			emit(StageFailed, err)
			return nil, err
		}

		err := s.run()
		if ctx.Err() != nil {
			emit(s.stage, ctx.Err())
			emit(StageFailed, ctx.Err())
			return nil, ctx.Err()
		}
		emit(s.stage, err)
		if err != nil {
			// Non-fatal: the track keeps every completed stage's output
			logger.Warn("stage failed", logging.Fields{"stage": string(s.stage), "error": err.Error()})
		}
	}

	emit(StageComplete, nil)
	return result, nil
}
