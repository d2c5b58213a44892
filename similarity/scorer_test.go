package similarity

import (
	"math"
	"testing"

	"github.com/soundcrate/mixplan/analysis"
)

func track(id string, bpm float64, key string, energy int, embedding []float64) *analysis.AnalysisResult {
	return &analysis.AnalysisResult{
		TrackID:      id,
		BPM:          bpm,
		Key:          key,
		EnergyGlobal: energy,
		Embedding:    embedding,
	}
}

func TestScoreCombinedBounds(t *testing.T) {
	scorer := NewScorer()

	pairs := []struct {
		a, b *analysis.AnalysisResult
	}{
		{track("a", 120, "8A", 5, nil), track("b", 128, "9A", 6, nil)},
		{track("a", 60, "1A", 0, []float64{1, 0}), track("b", 200, "7B", 10, []float64{-1, 0})},
		{track("a", 174, "12B", 9, []float64{0.5, 0.5}), track("b", 174, "12B", 9, []float64{0.5, 0.5})},
	}

	for _, p := range pairs {
		score := scorer.Score(p.a, p.b)
		if score.Combined < 0 || score.Combined > 1 {
			t.Errorf("Combined = %.4f for %s vs %s, want within [0, 1]", score.Combined, p.a.TrackID, p.b.TrackID)
		}
		for _, c := range []float64{score.Components.Tempo, score.Components.Key, score.Components.Energy, score.Components.Embedding} {
			if c < 0 || c > 1 {
				t.Errorf("component %.4f out of [0, 1] for %s vs %s", c, p.a.TrackID, p.b.TrackID)
			}
		}
	}
}

func TestScoreSelfIsMaximal(t *testing.T) {
	scorer := NewScorer()
	self := track("a", 128, "8A", 7, []float64{0.6, 0.8})
	others := []*analysis.AnalysisResult{
		track("b", 130, "9A", 6, []float64{0.8, 0.6}),
		track("c", 90, "3B", 2, []float64{-1, 0}),
		track("d", 128, "8A", 7, nil),
	}

	selfScore := scorer.Score(self, self).Combined
	if selfScore != 1.0 {
		t.Errorf("self score = %.4f, want 1", selfScore)
	}
	for _, other := range others {
		if got := scorer.Score(self, other).Combined; got > selfScore {
			t.Errorf("score(a, %s) = %.4f exceeds self score %.4f", other.TrackID, got, selfScore)
		}
	}
}

func TestTempoSimilarity(t *testing.T) {
	tests := []struct {
		name       string
		bpmA, bpmB float64
		want       float64
	}{
		{"identical", 128, 128, 1.0},
		{"four apart", 124, 128, 0.8},
		{"at floor", 120, 140, 0.0},
		{"beyond floor", 100, 180, 0.0},
		{"exact double", 80, 160, 1.0},
		{"exact half", 160, 80, 1.0},
		{"near double", 80, 162, 0.9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TempoSimilarity(tt.bpmA, tt.bpmB); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("TempoSimilarity(%.0f, %.0f) = %.4f, want %.4f", tt.bpmA, tt.bpmB, got, tt.want)
			}
		})
	}
}

func TestKeySimilarity(t *testing.T) {
	tests := []struct {
		keyA, keyB   string
		wantScore    float64
		wantRelation KeyRelation
	}{
		{"8A", "8A", 1.0, RelationSame},
		{"8A", "9A", 0.8, RelationCompatible},
		{"9A", "8A", 0.8, RelationCompatible},
		{"12A", "1A", 0.8, RelationCompatible},
		{"1B", "12B", 0.8, RelationCompatible},
		{"8A", "8B", 0.6, RelationRelative},
		{"8A", "10A", 0.5, RelationHarmonic},
		{"12B", "2B", 0.5, RelationHarmonic},
		{"8A", "2A", 0.2, RelationClash},
		{"8A", "10B", 0.2, RelationClash},
		{"", "8A", 0.2, RelationClash},
		{"8A", "13A", 0.2, RelationClash},
		{"8A", "0A", 0.2, RelationClash},
		{"8C", "8A", 0.2, RelationClash},
	}

	for _, tt := range tests {
		score, relation := KeySimilarity(tt.keyA, tt.keyB)
		if score != tt.wantScore || relation != tt.wantRelation {
			t.Errorf("KeySimilarity(%q, %q) = %.2f/%s, want %.2f/%s",
				tt.keyA, tt.keyB, score, relation, tt.wantScore, tt.wantRelation)
		}
	}
}

func TestEnergySimilarity(t *testing.T) {
	if got := EnergySimilarity(5, 5); got != 1.0 {
		t.Errorf("equal energies = %.4f, want 1", got)
	}
	if got := EnergySimilarity(0, 10); got != 0.0 {
		t.Errorf("extreme gap = %.4f, want 0", got)
	}
	if got := EnergySimilarity(7, 4); math.Abs(got-0.7) > 1e-9 {
		t.Errorf("gap of 3 = %.4f, want 0.7", got)
	}
	if EnergySimilarity(3, 8) != EnergySimilarity(8, 3) {
		t.Error("energy similarity is not symmetric")
	}
}

func TestEmbeddingSimilarity(t *testing.T) {
	if got := EmbeddingSimilarity([]float64{1, 0}, []float64{1, 0}); math.Abs(got-1.0) > 1e-9 {
		t.Errorf("identical vectors = %.4f, want 1", got)
	}
	if got := EmbeddingSimilarity([]float64{1, 0}, []float64{-1, 0}); math.Abs(got-0.0) > 1e-9 {
		t.Errorf("opposite vectors = %.4f, want 0", got)
	}
	if got := EmbeddingSimilarity([]float64{1, 0}, []float64{0, 1}); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("orthogonal vectors = %.4f, want 0.5", got)
	}
	if got := EmbeddingSimilarity(nil, []float64{1, 0}); got != 0.5 {
		t.Errorf("missing embedding = %.4f, want neutral 0.5", got)
	}
	if got := EmbeddingSimilarity([]float64{1}, []float64{1, 0}); got != 0.5 {
		t.Errorf("mismatched lengths = %.4f, want neutral 0.5", got)
	}
}

func TestParseCamelot(t *testing.T) {
	tests := []struct {
		key        string
		wantNum    int
		wantLetter byte
		wantOK     bool
	}{
		{"1A", 1, 'A', true},
		{"12B", 12, 'B', true},
		{"8A", 8, 'A', true},
		{"0A", 0, 0, false},
		{"13B", 0, 0, false},
		{"8C", 0, 0, false},
		{"A", 0, 0, false},
		{"", 0, 0, false},
		{"8a", 0, 0, false},
	}

	for _, tt := range tests {
		num, letter, ok := ParseCamelot(tt.key)
		if num != tt.wantNum || letter != tt.wantLetter || ok != tt.wantOK {
			t.Errorf("ParseCamelot(%q) = %d/%c/%v, want %d/%c/%v",
				tt.key, num, letter, ok, tt.wantNum, tt.wantLetter, tt.wantOK)
		}
	}
}

func TestExplanationFormat(t *testing.T) {
	a := track("a", 126, "8A", 6, []float64{1, 0})
	b := track("b", 128, "9A", 7, []float64{1, 0})

	score := NewScorer().Score(a, b)

	want := "similar vibe (100%); Δ+2 BPM; key: 8A→9A (compatible); energy +1"
	if score.Explanation != want {
		t.Errorf("Explanation = %q, want %q", score.Explanation, want)
	}

	reverse := NewScorer().Score(b, a)
	wantReverse := "similar vibe (100%); Δ-2 BPM; key: 9A→8A (compatible); energy -1"
	if reverse.Explanation != wantReverse {
		t.Errorf("Explanation = %q, want %q", reverse.Explanation, wantReverse)
	}
}
