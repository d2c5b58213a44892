package setplan

import (
	"fmt"
	"math"
	"sort"

	"github.com/soundcrate/mixplan/algorithms/common"
	"github.com/soundcrate/mixplan/analysis"
	"github.com/soundcrate/mixplan/logging"
	"github.com/soundcrate/mixplan/similarity"
)

// Mode selects the energy-progression objective for a set
type Mode string

const (
	ModeWarmUp     Mode = "warmUp"     // Prefer gradual energy increases
	ModePeakTime   Mode = "peakTime"   // Hold high energy, tolerate strategic drops
	ModeOpenFormat Mode = "openFormat" // Prefer smooth, small energy deltas
)

// lookaheadWeight discounts the best follow-up transition when ranking
// candidates during the greedy search
const lookaheadWeight = 0.3

// TransitionPlan describes one adjacent pair in the final order
type TransitionPlan struct {
	FromTrackID string  `json:"from_track_id"`
	ToTrackID   string  `json:"to_track_id"`
	Score       float64 `json:"score"`

	BPMDelta    float64                `json:"bpm_delta"`
	KeyRelation similarity.KeyRelation `json:"key_relation"`
	EnergyDelta int                    `json:"energy_delta"`
	Explanation string                 `json:"explanation"`
}

// Result is the optimized running order. It is built fresh per planning call
// and never mutated after construction.
type Result struct {
	OrderedTracks          []string         `json:"ordered_tracks"`
	Transitions            []TransitionPlan `json:"transitions"`
	TotalScore             float64          `json:"total_score"`
	AverageTransitionScore float64          `json:"average_transition_score"`
	EnergyFlow             []int            `json:"energy_flow"`
}

// Planner orders a candidate track set by building a directed transition
// graph and walking it greedily with one-step lookahead. It runs synchronously
// and single-threaded; pairwise scores are rebuilt per call.
type Planner struct {
	scorer *similarity.Scorer
	logger logging.Logger
}

// NewPlanner creates a set planner
func NewPlanner() *Planner {
	return &Planner{
		scorer: similarity.NewScorer(),
		logger: logging.WithFields(logging.Fields{"component": "set_planner"}),
	}
}

// Optimize orders the tracks for the given mode. startTrackID and endTrackID
// are optional (empty string = unconstrained); an end track is withheld from
// selection until it is the only candidate left, forcing it last.
//
// Fewer than two tracks is not an error: the input order comes back unchanged
// with no transitions and a zero score.
func (p *Planner) Optimize(tracks []*analysis.AnalysisResult, mode Mode, startTrackID, endTrackID string) (*Result, error) {
	n := len(tracks)

	if n < 2 {
		ordered := make([]string, 0, n)
		flow := make([]int, 0, n)
		for _, t := range tracks {
			ordered = append(ordered, t.TrackID)
			flow = append(flow, t.EnergyGlobal)
		}
		return &Result{OrderedTracks: ordered, Transitions: []TransitionPlan{}, EnergyFlow: flow}, nil
	}

	indexOf := make(map[string]int, n)
	for i, t := range tracks {
		if _, dup := indexOf[t.TrackID]; dup {
			return nil, fmt.Errorf("duplicate track id %q", t.TrackID)
		}
		indexOf[t.TrackID] = i
	}

	// Directed transition graph: scores[i][j] is the desirability of playing
	// track j after track i. Not symmetric; the energy term is directional.
	scores := make([][]float64, n)
	for i := range scores {
		scores[i] = make([]float64, n)
		for j := range scores[i] {
			if i == j {
				continue
			}
			scores[i][j] = p.transitionScore(tracks[i], tracks[j], mode)
		}
	}

	endIndex := -1
	if endTrackID != "" {
		idx, ok := indexOf[endTrackID]
		if !ok {
			return nil, fmt.Errorf("end track %q not in candidate set", endTrackID)
		}
		endIndex = idx
	}

	start, err := p.startIndex(tracks, mode, startTrackID, indexOf, endIndex)
	if err != nil {
		return nil, err
	}

	order := p.greedyOrder(scores, n, start, endIndex)

	result := &Result{
		OrderedTracks: make([]string, n),
		Transitions:   make([]TransitionPlan, 0, n-1),
		EnergyFlow:    make([]int, n),
	}

	for pos, idx := range order {
		result.OrderedTracks[pos] = tracks[idx].TrackID
		result.EnergyFlow[pos] = tracks[idx].EnergyGlobal
	}

	for pos := 0; pos+1 < n; pos++ {
		from := tracks[order[pos]]
		to := tracks[order[pos+1]]
		pair := p.scorer.Score(from, to)

		result.Transitions = append(result.Transitions, TransitionPlan{
			FromTrackID: from.TrackID,
			ToTrackID:   to.TrackID,
			Score:       scores[order[pos]][order[pos+1]],
			BPMDelta:    to.BPM - from.BPM,
			KeyRelation: pair.KeyRelation,
			EnergyDelta: to.EnergyGlobal - from.EnergyGlobal,
			Explanation: pair.Explanation,
		})
		result.TotalScore += scores[order[pos]][order[pos+1]]
	}

	if len(result.Transitions) > 0 {
		result.AverageTransitionScore = result.TotalScore / float64(len(result.Transitions))
	}

	return result, nil
}

// transitionScore combines the pairwise similarity components with the
// mode-specific energy progression term
func (p *Planner) transitionScore(from, to *analysis.AnalysisResult, mode Mode) float64 {
	tempo := similarity.TempoSimilarity(from.BPM, to.BPM)
	keyScore, _ := similarity.KeySimilarity(from.Key, to.Key)
	embed := similarity.EmbeddingSimilarity(from.Embedding, to.Embedding)
	energy := EnergyTerm(mode, from.EnergyGlobal, to.EnergyGlobal)

	return similarity.WeightTempo*tempo +
		similarity.WeightKey*keyScore +
		similarity.WeightEmbedding*embed +
		similarity.WeightEnergy*energy
}

// EnergyTerm scores the energy delta of a transition under a mode. All curves
// return values in [0, 1].
func EnergyTerm(mode Mode, from, to int) float64 {
	delta := to - from

	switch mode {
	case ModeWarmUp:
		switch {
		case delta >= 1 && delta <= 2:
			return 1.0
		case delta == 0:
			return 0.7
		case delta > 2:
			return common.Clamp(1.0-0.15*float64(delta-2), 0, 1)
		default:
			return common.Clamp(0.5+0.15*float64(delta), 0, 1)
		}

	case ModePeakTime:
		abs := delta
		if abs < 0 {
			abs = -abs
		}
		if to >= 7 {
			return common.Clamp(1.0-0.05*float64(abs), 0, 1)
		}
		return common.Clamp(0.6-0.1*float64(abs), 0, 1)

	default: // openFormat
		return 1.0 - math.Min(math.Abs(float64(delta))/5.0, 1.0)
	}
}

// startIndex resolves the first track: the explicit request when given,
// otherwise a mode-specific pick. A reserved end track is never picked
// automatically; only an explicit start conflicting with the end is an error.
func (p *Planner) startIndex(tracks []*analysis.AnalysisResult, mode Mode, startTrackID string, indexOf map[string]int, endIndex int) (int, error) {
	if startTrackID != "" {
		idx, ok := indexOf[startTrackID]
		if !ok {
			return 0, fmt.Errorf("start track %q not in candidate set", startTrackID)
		}
		if idx == endIndex {
			return 0, fmt.Errorf("start track %q is also the end track", startTrackID)
		}
		return idx, nil
	}

	switch mode {
	case ModeWarmUp:
		// Lowest energy opens the set; input order breaks ties
		best := -1
		for i, t := range tracks {
			if i == endIndex {
				continue
			}
			if best == -1 || t.EnergyGlobal < tracks[best].EnergyGlobal {
				best = i
			}
		}
		return best, nil

	case ModePeakTime:
		// The track a third of the way down the energy-descending ranking
		ranked := make([]int, 0, len(tracks))
		for i := range tracks {
			if i == endIndex {
				continue
			}
			ranked = append(ranked, i)
		}
		sort.SliceStable(ranked, func(a, b int) bool {
			return tracks[ranked[a]].EnergyGlobal > tracks[ranked[b]].EnergyGlobal
		})
		return ranked[len(ranked)/3], nil

	default: // openFormat
		if endIndex == 0 {
			return 1, nil
		}
		return 0, nil
	}
}

// greedyOrder walks the graph from start using nearest-neighbor selection
// with one-step lookahead. Candidates are scanned in original input order and
// only a strictly better value displaces the current pick, so ties resolve to
// the earlier index. A reserved end track is skipped until it is the only
// candidate remaining.
func (p *Planner) greedyOrder(scores [][]float64, n, start, endIndex int) []int {
	remaining := make([]bool, n)
	for i := range remaining {
		remaining[i] = true
	}
	remaining[start] = false

	order := make([]int, 1, n)
	order[0] = start
	current := start

	for len(order) < n {
		bestCandidate := -1
		bestValue := math.Inf(-1)

		remainingCount := n - len(order)
		for c := 0; c < n; c++ {
			if !remaining[c] {
				continue
			}
			if c == endIndex && remainingCount > 1 {
				continue
			}

			value := scores[current][c]

			// One-step lookahead: the best continuation from c
			future := math.Inf(-1)
			for f := 0; f < n; f++ {
				if !remaining[f] || f == c {
					continue
				}
				if scores[c][f] > future {
					future = scores[c][f]
				}
			}
			if !math.IsInf(future, -1) {
				value += lookaheadWeight * future
			}

			if value > bestValue {
				bestValue = value
				bestCandidate = c
			}
		}

		remaining[bestCandidate] = false
		order = append(order, bestCandidate)
		current = bestCandidate
	}

	return order
}
