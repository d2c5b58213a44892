package analysis

import (
	"testing"
)

func TestCueGeneration(t *testing.T) {
	sections := []Section{
		{SectionIntro, 0, 16, 0.8},
		{SectionDrop, 16, 40, 0.7},
		{SectionBreakdown, 40, 60, 0.7},
		{SectionBuild, 60, 70, 0.7},
		{SectionDrop, 70, 100, 0.7},
		{SectionVerse, 100, 110, 0.7},
		{SectionOutro, 110, 126, 0.8},
	}

	cues := NewCueGenerator().Generate(sections, 120.0)

	want := []CuePoint{
		{CueIntroStart, "Intro", 0, 0},
		{CueDrop, "Drop 1", 16, 32},
		{CueBreakdown, "Breakdown", 40, 80},
		{CueBuild, "Build", 60, 120},
		{CueDrop, "Drop 2", 70, 140},
		{CueMarker, "Verse", 100, 200},
		{CueOutroStart, "Outro", 110, 220},
	}

	if len(cues) != len(want) {
		t.Fatalf("got %d cues, want %d", len(cues), len(want))
	}
	for i, w := range want {
		if cues[i] != w {
			t.Errorf("cue %d = %+v, want %+v", i, cues[i], w)
		}
	}
}

func TestCueBeatIndexRoundsDown(t *testing.T) {
	sections := []Section{{SectionVerse, 1.9, 4, 0.7}}

	cues := NewCueGenerator().Generate(sections, 100.0)
	if len(cues) != 1 {
		t.Fatalf("got %d cues, want 1", len(cues))
	}
	// 1.9 s at 100 BPM is beat 3.1(6); floor to 3
	if cues[0].BeatIndex != 3 {
		t.Errorf("BeatIndex = %d, want 3", cues[0].BeatIndex)
	}
}

func TestCueGenerationEmptySections(t *testing.T) {
	if got := NewCueGenerator().Generate(nil, 128); len(got) != 0 {
		t.Errorf("got %d cues for no sections, want none", len(got))
	}
}
