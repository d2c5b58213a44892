package analysis

import (
	"fmt"
	"math"
)

// CueGenerator derives one cue point per structural section
type CueGenerator struct{}

// NewCueGenerator creates a cue generator
func NewCueGenerator() *CueGenerator {
	return &CueGenerator{}
}

// Generate maps sections 1:1 to cue points. The beat index is the zero-based
// beat count at the section start for the given tempo. Drops are numbered in
// order of appearance.
func (g *CueGenerator) Generate(sections []Section, bpm float64) []CuePoint {
	cues := make([]CuePoint, 0, len(sections))

	dropCount := 0
	for _, section := range sections {
		cue := CuePoint{
			TimeSeconds: section.StartTime,
			BeatIndex:   int(math.Floor(section.StartTime * bpm / 60.0)),
		}

		switch section.Type {
		case SectionIntro:
			cue.Type = CueIntroStart
			cue.Label = "Intro"
		case SectionDrop:
			dropCount++
			cue.Type = CueDrop
			cue.Label = fmt.Sprintf("Drop %d", dropCount)
		case SectionBreakdown:
			cue.Type = CueBreakdown
			cue.Label = "Breakdown"
		case SectionBuild:
			cue.Type = CueBuild
			cue.Label = "Build"
		case SectionVerse:
			cue.Type = CueMarker
			cue.Label = "Verse"
		case SectionOutro:
			cue.Type = CueOutroStart
			cue.Label = "Outro"
		}

		cues = append(cues, cue)
	}

	return cues
}
