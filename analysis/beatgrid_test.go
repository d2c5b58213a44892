package analysis

import (
	"math"
	"testing"
)

// clickTrack builds a synthetic signal with a single-sample impulse at every
// beat of the given tempo.
func clickTrack(bpm float64, sampleRate int, seconds float64) []float64 {
	samples := make([]float64, int(seconds*float64(sampleRate)))
	period := int(60.0 / bpm * float64(sampleRate))
	for i := 0; i < len(samples); i += period {
		samples[i] = 1.0
	}
	return samples
}

func TestBeatgridClickTrack(t *testing.T) {
	// 32768 Hz makes 128 BPM land on an exact autocorrelation lag
	const sampleRate = 32768
	samples := clickTrack(128.0, sampleRate, 30.0)

	result := NewBeatgridAnalyzer().Analyze(samples, sampleRate)

	if math.Abs(result.BPM-128.0) > 1.0 {
		t.Fatalf("BPM = %.2f, want 128 +/- 1", result.BPM)
	}
	if result.Confidence <= 0.5 {
		t.Fatalf("Confidence = %.3f, want > 0.5 for a clean click track", result.Confidence)
	}
}

func TestBeatgridBounds(t *testing.T) {
	analyzer := NewBeatgridAnalyzer()

	sine := make([]float64, 44100*5)
	for i := range sine {
		sine[i] = math.Sin(2 * math.Pi * 220 * float64(i) / 44100)
	}

	tests := []struct {
		name       string
		samples    []float64
		sampleRate int
	}{
		{"empty", nil, 44100},
		{"silence", make([]float64, 44100), 44100},
		{"sine", sine, 44100},
		{"click 60", clickTrack(60, 44100, 20), 44100},
		{"click 200", clickTrack(200, 44100, 20), 44100},
		{"short burst", []float64{1, 0, 0, 1}, 44100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := analyzer.Analyze(tt.samples, tt.sampleRate)
			if result.BPM < 60 || result.BPM > 200 {
				t.Errorf("BPM = %.2f, want within [60, 200]", result.BPM)
			}
			if result.Confidence < 0 || result.Confidence > 1 {
				t.Errorf("Confidence = %.3f, want within [0, 1]", result.Confidence)
			}
		})
	}
}

func TestBeatgridDegenerateInputFallsBack(t *testing.T) {
	result := NewBeatgridAnalyzer().Analyze(make([]float64, 512), 44100)
	if result.BPM != 120.0 {
		t.Errorf("BPM = %.2f, want fallback 120", result.BPM)
	}
	if result.Confidence > 0.1 {
		t.Errorf("Confidence = %.3f, want near zero", result.Confidence)
	}
}

func TestBeatgridDeterminism(t *testing.T) {
	samples := clickTrack(140, 44100, 15)
	analyzer := NewBeatgridAnalyzer()

	first := analyzer.Analyze(samples, 44100)
	second := analyzer.Analyze(samples, 44100)
	if first != second {
		t.Errorf("repeated analysis differs: %+v vs %+v", first, second)
	}
}
