package common

import (
	"math"
	"testing"
)

func TestRMS(t *testing.T) {
	if got := RMS([]float64{3, 4, 3, 4}); math.Abs(got-3.5355) > 1e-3 {
		t.Errorf("RMS = %.4f, want 3.5355", got)
	}
	if got := RMS(nil); got != 0 {
		t.Errorf("RMS(nil) = %.4f, want 0", got)
	}
}

func TestMinMaxNormalize(t *testing.T) {
	data := []float64{2, 4, 6}
	MinMaxNormalize(data)
	want := []float64{0, 0.5, 1}
	for i, w := range want {
		if math.Abs(data[i]-w) > 1e-9 {
			t.Errorf("data[%d] = %.4f, want %.4f", i, data[i], w)
		}
	}

	constant := []float64{5, 5, 5}
	MinMaxNormalize(constant)
	for i, v := range constant {
		if v != 0 {
			t.Errorf("constant[%d] = %.4f, want 0", i, v)
		}
	}
}

func TestL2Normalize(t *testing.T) {
	vec := []float64{3, 4}
	L2Normalize(vec)
	if math.Abs(vec[0]-0.6) > 1e-9 || math.Abs(vec[1]-0.8) > 1e-9 {
		t.Errorf("normalized = %v, want [0.6 0.8]", vec)
	}

	zero := []float64{0, 0}
	L2Normalize(zero)
	if zero[0] != 0 || zero[1] != 0 {
		t.Errorf("zero vector modified: %v", zero)
	}
}

func TestCosineSimilarity(t *testing.T) {
	if got := CosineSimilarity([]float64{1, 0}, []float64{0, 1}); math.Abs(got) > 1e-9 {
		t.Errorf("orthogonal = %.4f, want 0", got)
	}
	if got := CosineSimilarity([]float64{2, 0}, []float64{5, 0}); math.Abs(got-1) > 1e-9 {
		t.Errorf("parallel = %.4f, want 1", got)
	}
	if got := CosineSimilarity([]float64{0, 0}, []float64{1, 1}); got != 0 {
		t.Errorf("zero vector = %.4f, want 0", got)
	}
	if got := CosineSimilarity([]float64{1}, []float64{1, 2}); got != 0 {
		t.Errorf("length mismatch = %.4f, want 0", got)
	}
}

func TestResample(t *testing.T) {
	t.Run("identity", func(t *testing.T) {
		in := []float64{1, 2, 3}
		out := Resample(in, 44100, 44100)
		if len(out) != 3 {
			t.Fatalf("got %d samples, want 3", len(out))
		}
		out[0] = 99
		if in[0] == 99 {
			t.Error("identity resample aliases the input slice")
		}
	})

	t.Run("downsample halves length", func(t *testing.T) {
		in := make([]float64, 1000)
		for i := range in {
			in[i] = float64(i)
		}
		out := Resample(in, 44100, 22050)
		if len(out) != 500 {
			t.Fatalf("got %d samples, want 500", len(out))
		}
		// Linear ramp survives linear interpolation exactly
		if math.Abs(out[250]-500.0) > 1e-9 {
			t.Errorf("out[250] = %.4f, want 500", out[250])
		}
	})

	t.Run("upsample doubles length", func(t *testing.T) {
		in := []float64{0, 1, 2, 3}
		out := Resample(in, 22050, 44100)
		if len(out) != 8 {
			t.Fatalf("got %d samples, want 8", len(out))
		}
		if math.Abs(out[1]-0.5) > 1e-9 {
			t.Errorf("out[1] = %.4f, want 0.5", out[1])
		}
	})
}
