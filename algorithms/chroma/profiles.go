package chroma

// Krumhansl-Schmuckler key profiles: reference weightings of the 12 pitch
// classes for major and minor tonality, indexed from the tonic.
var (
	KrumhanslMajor = [12]float64{6.35, 2.23, 3.48, 2.33, 4.38, 4.09, 2.52, 5.19, 2.39, 3.66, 2.29, 2.88}
	KrumhanslMinor = [12]float64{6.33, 2.68, 3.52, 5.38, 2.60, 3.53, 2.54, 4.75, 3.98, 2.69, 3.34, 3.17}
)

// Mode distinguishes major from minor tonality
type Mode int

const (
	ModeMajor Mode = iota
	ModeMinor
)

func (m Mode) String() string {
	if m == ModeMinor {
		return "minor"
	}
	return "major"
}

// KeyMatch is the best-correlating (tonic, mode) pair for a chroma vector
type KeyMatch struct {
	Tonic       int     // Pitch class of the tonic (0=C ... 11=B)
	Mode        Mode    // Major or minor
	Correlation float64 // Raw profile correlation, unbounded
}

// BestKeyMatch correlates the chroma vector against all 24 rotated
// Krumhansl-Schmuckler profiles and returns the strongest match.
//
// The scan order is behaviorally significant: tonics are tried 0 through 11,
// major before minor at each tonic, and only a strictly greater correlation
// replaces the current best. Exact ties therefore keep the earlier candidate.
func BestKeyMatch(chromaVector [12]float64) KeyMatch {
	best := KeyMatch{Tonic: 0, Mode: ModeMajor, Correlation: correlate(chromaVector, 0, KrumhanslMajor)}

	for tonic := 0; tonic < 12; tonic++ {
		for _, mode := range []Mode{ModeMajor, ModeMinor} {
			if tonic == 0 && mode == ModeMajor {
				continue // seeded above
			}

			profile := KrumhanslMajor
			if mode == ModeMinor {
				profile = KrumhanslMinor
			}

			corr := correlate(chromaVector, tonic, profile)
			if corr > best.Correlation {
				best = KeyMatch{Tonic: tonic, Mode: mode, Correlation: corr}
			}
		}
	}

	return best
}

// correlate computes the dot product of the chroma vector against a profile
// rotated so that its tonic sits at the given pitch class.
func correlate(chromaVector [12]float64, tonic int, profile [12]float64) float64 {
	sum := 0.0
	for i := 0; i < 12; i++ {
		sum += chromaVector[(tonic+i)%12] * profile[i]
	}
	return sum
}
