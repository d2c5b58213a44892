package analysis

// AudioSignal is decoded mono PCM plus its sample rate. It is ephemeral input
// to the analyzers and is never persisted by this package.
type AudioSignal struct {
	Samples    []float64
	SampleRate int
}

// Duration returns the signal length in seconds
func (s AudioSignal) Duration() float64 {
	if s.SampleRate <= 0 {
		return 0
	}
	return float64(len(s.Samples)) / float64(s.SampleRate)
}

// SectionType classifies a structural section of a track
type SectionType string

const (
	SectionIntro     SectionType = "intro"
	SectionVerse     SectionType = "verse"
	SectionBuild     SectionType = "build"
	SectionBreakdown SectionType = "breakdown"
	SectionDrop      SectionType = "drop"
	SectionOutro     SectionType = "outro"
)

// Section is a structural region of a track. EndTime is always strictly
// greater than StartTime.
type Section struct {
	Type       SectionType `json:"type"`
	StartTime  float64     `json:"start_time"`
	EndTime    float64     `json:"end_time"`
	Confidence float64     `json:"confidence"`
}

// CueType classifies a generated cue point
type CueType string

const (
	CueIntroStart CueType = "introStart"
	CueDrop       CueType = "drop"
	CueBreakdown  CueType = "breakdown"
	CueBuild      CueType = "build"
	CueMarker     CueType = "marker"
	CueOutroStart CueType = "outroStart"
)

// CuePoint marks a mix-relevant position in a track
type CuePoint struct {
	Type        CueType `json:"type"`
	Label       string  `json:"label"`
	TimeSeconds float64 `json:"time_seconds"`
	BeatIndex   int     `json:"beat_index"`
}

// AnalysisResult aggregates every per-track analysis output. A result is
// created once per analysis run and never mutated afterwards; re-analysis
// produces a new result under a new version.
type AnalysisResult struct {
	TrackID string `json:"track_id"`
	Version int    `json:"version"`

	BPM           float64 `json:"bpm"`
	BPMConfidence float64 `json:"bpm_confidence"`

	// Camelot key label, e.g. "8A". KeyConfidence is the raw profile
	// correlation and is not bounded to [0, 1].
	Key           string  `json:"key"`
	KeyConfidence float64 `json:"key_confidence"`

	EnergyGlobal int `json:"energy_global"` // 0-10 rating

	IntegratedLoudness float64 `json:"integrated_loudness"`
	TruePeak           float64 `json:"true_peak"`
	LoudnessRange      float64 `json:"loudness_range"`

	Duration        float64    `json:"duration"`
	Sections        []Section  `json:"sections"`
	CuePoints       []CuePoint `json:"cue_points"`
	WaveformPreview []float64  `json:"waveform_preview"`

	// Unit-length timbral embedding; nil when the embedding stage failed
	Embedding []float64 `json:"embedding,omitempty"`
}

// Stage identifies one step of the per-track analysis pipeline
type Stage string

const (
	StageDecoding  Stage = "decoding"
	StageBeatgrid  Stage = "beatgrid"
	StageKey       Stage = "key"
	StageEnergy    Stage = "energy"
	StageLoudness  Stage = "loudness"
	StageSections  Stage = "sections"
	StageCues      Stage = "cues"
	StageWaveform  Stage = "waveform"
	StageEmbedding Stage = "embedding"
	StageComplete  Stage = "complete"
	StageFailed    Stage = "failed"
)

// StageEvent reports progress of one pipeline stage for one track. Err is nil
// on success; a non-nil Err is always attributed to exactly the named stage.
type StageEvent struct {
	TrackID string
	Stage   Stage
	Err     error
}
