package analysis

import (
	"math"

	"github.com/soundcrate/mixplan/algorithms/common"
	"github.com/soundcrate/mixplan/algorithms/temporal"
)

// energyWindowSeconds is the analysis window shared by the global energy
// rating and the section detector
const energyWindowSeconds = 4

// EnergyRating rates the overall intensity of a track on a 0-10 scale: the
// mean 4-second-window RMS relative to the loudest window, scaled and rounded.
// Silence and empty input rate 0.
func EnergyRating(samples []float64, sampleRate int) int {
	if len(samples) == 0 || sampleRate <= 0 {
		return 0
	}

	windows := temporal.FrameEnergies(samples, energyWindowSeconds*sampleRate)
	if len(windows) == 0 {
		return 0
	}

	peak := 0.0
	for _, w := range windows {
		if w > peak {
			peak = w
		}
	}
	if peak < 1e-12 {
		return 0
	}

	rating := int(math.Round(10.0 * common.Mean(windows) / peak))
	if rating < 0 {
		rating = 0
	}
	if rating > 10 {
		rating = 10
	}
	return rating
}
