package analysis

import (
	"github.com/soundcrate/mixplan/algorithms/temporal"
	"github.com/soundcrate/mixplan/logging"
)

// Section classification thresholds over peak-normalized window energy.
// These constants define the expected detector output exactly; tests and
// downstream cue generation depend on them.
const (
	sectionDropThreshold  = 0.7
	sectionVerseThreshold = 0.4
	sectionMergeTolerance = 0.3

	sectionConfidence     = 0.7
	edgeConfidence        = 0.8
	introOutroWindowCount = 4
)

// SectionDetector segments a track into structural sections from its
// 4-second-window energy profile. This is a threshold heuristic, not a
// learned segmenter.
type SectionDetector struct {
	logger logging.Logger
}

// NewSectionDetector creates a section detector
func NewSectionDetector() *SectionDetector {
	return &SectionDetector{
		logger: logging.WithFields(logging.Fields{"component": "section_detector"}),
	}
}

// Detect returns the ordered, non-overlapping section list whose union spans
// [0, duration]. The first four windows are always intro and the last four
// always outro; windows in between classify by energy (> 0.7 drop, > 0.4
// verse, otherwise breakdown) and merge forward while the energy stays within
// 0.3 of the run's first window.
func (d *SectionDetector) Detect(samples []float64, sampleRate int, duration float64) []Section {
	windows := temporal.FrameEnergies(samples, energyWindowSeconds*sampleRate)
	windowCount := len(windows)
	if windowCount == 0 || duration <= 0 {
		return []Section{}
	}

	// Peak-normalize window energies
	peak := 0.0
	for _, w := range windows {
		if w > peak {
			peak = w
		}
	}
	if peak > 1e-12 {
		for i := range windows {
			windows[i] /= peak
		}
	}

	boundary := func(idx int) float64 {
		t := float64(idx * energyWindowSeconds)
		if t > duration {
			return duration
		}
		return t
	}

	introEnd := introOutroWindowCount
	if introEnd > windowCount {
		introEnd = windowCount
	}
	outroStart := windowCount - introOutroWindowCount
	if outroStart < introEnd {
		outroStart = introEnd
	}

	sections := []Section{}

	introUpper := boundary(introEnd)
	if outroStart == windowCount {
		// No outro region: the intro carries through to the end
		introUpper = duration
	}
	if introUpper > 0 {
		sections = append(sections, Section{
			Type:       SectionIntro,
			StartTime:  0,
			EndTime:    introUpper,
			Confidence: edgeConfidence,
		})
	}

	for i := introEnd; i < outroStart; {
		startEnergy := windows[i]

		sectionType := SectionBreakdown
		if startEnergy > sectionDropThreshold {
			sectionType = SectionDrop
		} else if startEnergy > sectionVerseThreshold {
			sectionType = SectionVerse
		}

		j := i
		for j+1 < outroStart && windows[j+1]-startEnergy <= sectionMergeTolerance && startEnergy-windows[j+1] <= sectionMergeTolerance {
			j++
		}

		sections = append(sections, Section{
			Type:       sectionType,
			StartTime:  boundary(i),
			EndTime:    boundary(j + 1),
			Confidence: sectionConfidence,
		})
		i = j + 1
	}

	if outroStart < windowCount {
		sections = append(sections, Section{
			Type:       SectionOutro,
			StartTime:  boundary(outroStart),
			EndTime:    duration,
			Confidence: edgeConfidence,
		})
	}

	// Drop degenerate zero-length tail sections introduced by clamping
	kept := sections[:0]
	for _, s := range sections {
		if s.EndTime > s.StartTime {
			kept = append(kept, s)
		}
	}
	if len(kept) > 0 {
		kept[len(kept)-1].EndTime = duration
	}

	return kept
}
