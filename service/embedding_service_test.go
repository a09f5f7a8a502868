package service

import (
	"math"
	"testing"
)

func TestNormalizeVector(t *testing.T) {
	v := NormalizeVector([]float32{3, 4})
	if math.Abs(float64(v[0])-0.6) > 1e-6 || math.Abs(float64(v[1])-0.8) > 1e-6 {
		t.Fatalf("unexpected normalized vector: %v", v)
	}

	var norm float64
	for _, x := range v {
		norm += float64(x) * float64(x)
	}
	if math.Abs(math.Sqrt(norm)-1.0) > 1e-6 {
		t.Fatalf("expected unit norm, got %f", math.Sqrt(norm))
	}
}

func TestNormalizeZeroVector(t *testing.T) {
	v := NormalizeVector([]float32{0, 0, 0})
	for i, x := range v {
		if x != 0 {
			t.Fatalf("zero vector must pass through unchanged, index %d is %f", i, x)
		}
	}
}

func TestNormalizeBatch(t *testing.T) {
	vectors := Normalize([][]float32{{1, 0}, {0, 5}, {0, 0}})
	if len(vectors) != 3 {
		t.Fatalf("expected 3 vectors, got %d", len(vectors))
	}
	if vectors[1][1] != 1 {
		t.Fatalf("expected {0,1}, got %v", vectors[1])
	}
	if vectors[2][0] != 0 || vectors[2][1] != 0 {
		t.Fatalf("zero vector must stay zero, got %v", vectors[2])
	}
}

func TestNormalizeDoesNotMutateInput(t *testing.T) {
	in := []float32{3, 4}
	NormalizeVector(in)
	if in[0] != 3 || in[1] != 4 {
		t.Fatalf("input vector was mutated: %v", in)
	}
}
