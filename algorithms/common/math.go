package common

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Basic statistical functions used across algorithms using gonum for robustness

// Mean calculates the arithmetic mean of a slice using gonum
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	return stat.Mean(data, nil)
}

// RMS calculates root mean square
func RMS(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}

	sumSquares := 0.0
	for _, val := range data {
		sumSquares += val * val
	}

	return math.Sqrt(sumSquares / float64(len(data)))
}

// Clamp limits a value to the range [lo, hi]
func Clamp(val, lo, hi float64) float64 {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// MaxAbs returns the maximum absolute value in the slice
func MaxAbs(data []float64) float64 {
	maxVal := 0.0
	for _, val := range data {
		if abs := math.Abs(val); abs > maxVal {
			maxVal = abs
		}
	}
	return maxVal
}

// MinMaxNormalize rescales data to [0, 1] in place. Constant input maps to all
// zeros rather than dividing by a zero range.
func MinMaxNormalize(data []float64) {
	if len(data) == 0 {
		return
	}

	minVal := floats.Min(data)
	maxVal := floats.Max(data)
	span := maxVal - minVal

	if span < 1e-12 {
		for i := range data {
			data[i] = 0.0
		}
		return
	}

	for i := range data {
		data[i] = (data[i] - minVal) / span
	}
}

// L2Norm returns the Euclidean norm of the vector
func L2Norm(vec []float64) float64 {
	return floats.Norm(vec, 2)
}

// L2Normalize scales the vector to unit Euclidean length in place.
// Zero vectors are left untouched.
func L2Normalize(vec []float64) {
	norm := floats.Norm(vec, 2)
	if norm < 1e-12 {
		return
	}
	floats.Scale(1.0/norm, vec)
}

// Dot returns the dot product of two equal-length vectors
func Dot(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0.0
	}
	return floats.Dot(a, b)
}

// CosineSimilarity returns the cosine of the angle between two vectors,
// in [-1, 1]. Degenerate (zero) vectors yield 0.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0.0
	}

	normA := floats.Norm(a, 2)
	normB := floats.Norm(b, 2)
	if normA < 1e-12 || normB < 1e-12 {
		return 0.0
	}

	return floats.Dot(a, b) / (normA * normB)
}
