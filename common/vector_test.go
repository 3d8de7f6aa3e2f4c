package common

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/blas/blas64"
)

func TestNewVec(t *testing.T) {
	var v blas64.Vector
	v = NewVec([]float64{0.0, 42.0})
	if blas64.Asum(v) != 42.0 {
		t.Fatal("Corrupted conversion to blas vector")
	}
	v = NewVec(nil)
	if blas64.Asum(v) != 0.0 {
		t.Fatal("Corrupted conversion to blas vector: nil should return empty vector")
	}
}

func TestL2(t *testing.T) {
	v1 := NewVec([]float64{0.0, 0.0})
	v2 := NewVec([]float64{-4.0, 3.0})
	l2 := L2(v1, v2)
	if l2 != 5.0 {
		t.Fatal("L2 distance is wrong")
	}
	if L2Raw([]float64{0.0, 0.0}, []float64{-4.0, 3.0}) != 5.0 {
		t.Fatal("L2 distance over raw slices is wrong")
	}
}

func TestL2DoesNotMutateArgs(t *testing.T) {
	a := []float64{1.0, 2.0}
	b := []float64{3.0, 4.0}
	L2Raw(a, b)
	if a[0] != 1.0 || b[0] != 3.0 {
		t.Fatal("L2 must not mutate input vectors")
	}
}

func TestIsZeroVec(t *testing.T) {
	v1 := NewVec([]float64{0.0, 0.0})
	v2 := NewVec([]float64{0.0, 1.0})
	if !IsZeroVector(v1) {
		t.Fatal("Provided vector should be zero vector")
	}
	if IsZeroVector(v2) {
		t.Fatal("Provided vector should be non-zero vector")
	}
	if !IsZeroVector(NewVec([]float64{math.SmallestNonzeroFloat64})) {
		t.Fatal("Vector with sum below tolerance should count as zero vector")
	}
}

func TestGetRandomID(t *testing.T) {
	id1, err := GetRandomID()
	if err != nil {
		t.Fatal(err)
	}
	id2, err := GetRandomID()
	if err != nil {
		t.Fatal(err)
	}
	if len(id1) != 32 || id1 == id2 {
		t.Fatal("Random ids must be 32 chars long and unique")
	}
}
