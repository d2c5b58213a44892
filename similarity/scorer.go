package similarity

import (
	"fmt"
	"math"

	"github.com/soundcrate/mixplan/algorithms/common"
	"github.com/soundcrate/mixplan/analysis"
	"github.com/soundcrate/mixplan/logging"
)

// Component weights for the combined score. One scheme is used everywhere,
// by the scorer and the set planner alike.
const (
	WeightTempo     = 0.25
	WeightKey       = 0.25
	WeightEmbedding = 0.30
	WeightEnergy    = 0.20
)

// Tempo deltas at or beyond this many BPM score zero
const tempoDeltaFloor = 20.0

// KeyRelation labels how two Camelot keys sit on the wheel
type KeyRelation string

const (
	RelationSame       KeyRelation = "same"
	RelationCompatible KeyRelation = "compatible"
	RelationRelative   KeyRelation = "relative"
	RelationHarmonic   KeyRelation = "harmonic"
	RelationClash      KeyRelation = "clash"
)

// Key relation scores
const (
	keyScoreSame       = 1.0
	keyScoreCompatible = 0.8
	keyScoreRelative   = 0.6
	keyScoreHarmonic   = 0.5
	keyScoreClash      = 0.2
)

// ComponentScores are the four per-dimension similarity scores, each in [0, 1]
type ComponentScores struct {
	Tempo     float64 `json:"tempo"`
	Key       float64 `json:"key"`
	Energy    float64 `json:"energy"`
	Embedding float64 `json:"embedding"`
}

// Score is the pairwise compatibility of two analyzed tracks. It is always
// re-derivable from the two AnalysisResults; cache it freely.
type Score struct {
	TrackAID    string          `json:"track_a_id"`
	TrackBID    string          `json:"track_b_id"`
	Components  ComponentScores `json:"component_scores"`
	Combined    float64         `json:"combined_score"` // Weighted sum, in [0, 1]
	KeyRelation KeyRelation     `json:"key_relation"`
	Explanation string          `json:"explanation"`
}

// Scorer computes pairwise track compatibility
type Scorer struct {
	logger logging.Logger
}

// NewScorer creates a similarity scorer
func NewScorer() *Scorer {
	return &Scorer{
		logger: logging.WithFields(logging.Fields{"component": "similarity_scorer"}),
	}
}

// Score computes the component and combined similarity of two tracks.
// Self-comparison attains the maximum combined score.
func (s *Scorer) Score(a, b *analysis.AnalysisResult) Score {
	tempo := TempoSimilarity(a.BPM, b.BPM)
	keyScore, relation := KeySimilarity(a.Key, b.Key)
	energy := EnergySimilarity(a.EnergyGlobal, b.EnergyGlobal)
	embed := EmbeddingSimilarity(a.Embedding, b.Embedding)

	components := ComponentScores{Tempo: tempo, Key: keyScore, Energy: energy, Embedding: embed}
	combined := common.Clamp(
		WeightTempo*tempo+WeightKey*keyScore+WeightEnergy*energy+WeightEmbedding*embed,
		0, 1,
	)

	return Score{
		TrackAID:    a.TrackID,
		TrackBID:    b.TrackID,
		Components:  components,
		Combined:    combined,
		KeyRelation: relation,
		Explanation: Explanation(a, b, components, relation),
	}
}

// TempoSimilarity maps the BPM delta to [0, 1], checking the half/double
// tempo interpretation and keeping whichever delta is smaller.
func TempoSimilarity(bpmA, bpmB float64) float64 {
	delta := math.Abs(bpmA - bpmB)
	halfDouble := math.Min(math.Abs(bpmA-2*bpmB), math.Abs(2*bpmA-bpmB))
	if halfDouble < delta {
		delta = halfDouble
	}
	return 1.0 - math.Min(delta/tempoDeltaFloor, 1.0)
}

// KeySimilarity scores two Camelot keys by wheel adjacency. Unparseable keys
// score as a clash.
func KeySimilarity(keyA, keyB string) (float64, KeyRelation) {
	numA, letterA, okA := ParseCamelot(keyA)
	numB, letterB, okB := ParseCamelot(keyB)
	if !okA || !okB {
		return keyScoreClash, RelationClash
	}

	dist := numA - numB
	if dist < 0 {
		dist = -dist
	}
	if dist > 6 {
		dist = 12 - dist
	}

	switch {
	case dist == 0 && letterA == letterB:
		return keyScoreSame, RelationSame
	case dist == 1 && letterA == letterB:
		return keyScoreCompatible, RelationCompatible
	case dist == 0:
		return keyScoreRelative, RelationRelative
	case dist == 2 && letterA == letterB:
		return keyScoreHarmonic, RelationHarmonic
	default:
		return keyScoreClash, RelationClash
	}
}

// EnergySimilarity maps the 0-10 energy rating gap to [0, 1]
func EnergySimilarity(energyA, energyB int) float64 {
	delta := energyA - energyB
	if delta < 0 {
		delta = -delta
	}
	return 1.0 - float64(delta)/10.0
}

// EmbeddingSimilarity is cosine similarity remapped from [-1, 1] to [0, 1].
// A missing embedding on either side contributes a neutral 0.5.
func EmbeddingSimilarity(a, b []float64) float64 {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return 0.5
	}
	return (common.CosineSimilarity(a, b) + 1.0) / 2.0
}

// ParseCamelot splits a Camelot label like "8A" into its wheel number (1-12)
// and letter ('A' or 'B')
func ParseCamelot(key string) (int, byte, bool) {
	if len(key) < 2 || len(key) > 3 {
		return 0, 0, false
	}

	letter := key[len(key)-1]
	if letter != 'A' && letter != 'B' {
		return 0, 0, false
	}

	num := 0
	for i := 0; i < len(key)-1; i++ {
		c := key[i]
		if c < '0' || c > '9' {
			return 0, 0, false
		}
		num = num*10 + int(c-'0')
	}
	if num < 1 || num > 12 {
		return 0, 0, false
	}

	return num, letter, true
}

// Explanation renders the deterministic, ordered clause list for a pair:
// vibe, tempo delta, key relation, energy delta.
func Explanation(a, b *analysis.AnalysisResult, components ComponentScores, relation KeyRelation) string {
	return fmt.Sprintf("similar vibe (%d%%); Δ%+.0f BPM; key: %s→%s (%s); energy %+d",
		int(math.Round(components.Embedding*100)),
		b.BPM-a.BPM,
		a.Key, b.Key, relation,
		b.EnergyGlobal-a.EnergyGlobal,
	)
}
