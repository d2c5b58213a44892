package analysis

import (
	"testing"
)

// blockSignal builds a signal from constant-amplitude 4-second windows
func blockSignal(amplitudes []float64, sampleRate int) []float64 {
	windowLen := energyWindowSeconds * sampleRate
	samples := make([]float64, 0, len(amplitudes)*windowLen)
	for _, amp := range amplitudes {
		for j := 0; j < windowLen; j++ {
			samples = append(samples, amp)
		}
	}
	return samples
}

func TestSectionDetectorStructure(t *testing.T) {
	const sampleRate = 1000

	// 15 windows: 4 intro, drop run, breakdown run, lone verse, 4 outro
	amplitudes := []float64{
		0.2, 0.2, 0.2, 0.2, // intro
		1.0, 1.0, 1.0, // drop
		0.2, 0.2, 0.2, // breakdown
		0.55, // verse
		0.2, 0.2, 0.2, 0.2, // outro
	}
	samples := blockSignal(amplitudes, sampleRate)
	duration := float64(len(samples)) / float64(sampleRate)

	sections := NewSectionDetector().Detect(samples, sampleRate, duration)

	want := []Section{
		{SectionIntro, 0, 16, 0.8},
		{SectionDrop, 16, 28, 0.7},
		{SectionBreakdown, 28, 40, 0.7},
		{SectionVerse, 40, 44, 0.7},
		{SectionOutro, 44, 60, 0.8},
	}

	if len(sections) != len(want) {
		t.Fatalf("got %d sections %+v, want %d", len(sections), sections, len(want))
	}
	for i, w := range want {
		if sections[i] != w {
			t.Errorf("section %d = %+v, want %+v", i, sections[i], w)
		}
	}
}

func TestSectionInvariants(t *testing.T) {
	const sampleRate = 1000

	tests := []struct {
		name       string
		amplitudes []float64
	}{
		{"short track", []float64{0.5, 0.5}},
		{"exactly intro plus outro", []float64{0.3, 0.3, 0.3, 0.3, 0.9, 0.9, 0.9, 0.9}},
		{"long varied", []float64{0.1, 0.2, 0.3, 0.4, 0.9, 0.1, 0.8, 0.2, 0.7, 0.3, 0.6, 0.4, 0.5, 0.5, 0.5, 0.5}},
	}

	detector := NewSectionDetector()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			samples := blockSignal(tt.amplitudes, sampleRate)
			duration := float64(len(samples)) / float64(sampleRate)

			sections := detector.Detect(samples, sampleRate, duration)
			if len(sections) == 0 {
				t.Fatal("no sections returned")
			}

			if sections[0].StartTime != 0 {
				t.Errorf("first section starts at %.2f, want 0", sections[0].StartTime)
			}
			if last := sections[len(sections)-1]; last.EndTime != duration {
				t.Errorf("last section ends at %.2f, want duration %.2f", last.EndTime, duration)
			}

			for i, s := range sections {
				if s.EndTime <= s.StartTime {
					t.Errorf("section %d has non-positive span: %+v", i, s)
				}
				if i > 0 && sections[i-1].EndTime != s.StartTime {
					t.Errorf("gap or overlap between section %d and %d: %.2f vs %.2f",
						i-1, i, sections[i-1].EndTime, s.StartTime)
				}
			}
		})
	}
}

func TestSectionDetectorEmptyInput(t *testing.T) {
	if got := NewSectionDetector().Detect(nil, 44100, 0); len(got) != 0 {
		t.Errorf("got %d sections for empty input, want none", len(got))
	}
}
