package analysis

import (
	"testing"
)

func TestWaveformSummarize(t *testing.T) {
	samples := []float64{0.1, -0.5, 0.2, 0.9, -0.3, 0.4, -0.8, 0.05}

	// ceil(8/4) = 2 samples per block
	preview := NewWaveformSummarizer().Summarize(samples, 4)

	want := []float64{0.5, 0.9, 0.4, 0.8}
	if len(preview) != len(want) {
		t.Fatalf("got %d points, want %d", len(preview), len(want))
	}
	for i, w := range want {
		if preview[i] != w {
			t.Errorf("point %d = %.3f, want %.3f", i, preview[i], w)
		}
	}
}

func TestWaveformNonNegativeAndBounded(t *testing.T) {
	samples := make([]float64, 10000)
	for i := range samples {
		samples[i] = float64(i%200-100) / 100.0
	}

	preview := NewWaveformSummarizer().Summarize(samples, 256)
	if len(preview) == 0 || len(preview) > 256 {
		t.Fatalf("got %d points, want within (0, 256]", len(preview))
	}
	for i, p := range preview {
		if p < 0 {
			t.Errorf("point %d = %.3f, want non-negative", i, p)
		}
	}
}

func TestWaveformEmptyInput(t *testing.T) {
	if got := NewWaveformSummarizer().Summarize(nil, 100); len(got) != 0 {
		t.Errorf("got %d points for empty input, want none", len(got))
	}
	if got := NewWaveformSummarizer().Summarize([]float64{1, 2}, 0); len(got) != 0 {
		t.Errorf("got %d points for zero target, want none", len(got))
	}
}
