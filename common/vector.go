package common

import (
	"math"

	"gonum.org/v1/gonum/blas/blas64"
)

const tol = 1e-6

// NewVec creates new blas vector
func NewVec(data []float64) blas64.Vector {
	if data == nil {
		data = make([]float64, 0)
	}
	return blas64.Vector{
		N:    len(data),
		Inc:  1,
		Data: data,
	}
}

// L2 calculates l2-distance between two vectors
func L2(a, b blas64.Vector) float64 {
	res := NewVec(make([]float64, b.N))
	blas64.Copy(b, res)
	blas64.Axpy(-1.0, a, res)
	return blas64.Nrm2(res)
}

// L2Raw calculates l2-distance between two raw float slices
func L2Raw(a, b []float64) float64 {
	return L2(NewVec(a), NewVec(b))
}

// IsZeroVector returns true if the sum of vector elements is close to 0.0
func IsZeroVector(v blas64.Vector) bool {
	return math.Abs(blas64.Asum(v)) <= tol
}
