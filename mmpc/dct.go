package mmpc

import (
	"math"
)

// DCTBasis builds the orthonormal DCT-II basis matrix for block size b,
// stored row-major as a b*b slice:
//
//	basis[k*b+n] = α(k) · cos(π·(2n+1)·k / (2b))
//
// with α(0) = √(1/b) and α(k) = √(2/b) for k > 0. The matrix is
// orthonormal, so the inverse transform is multiplication by the
// transpose; no separate inverse matrix is ever derived.
func DCTBasis(b int) []float64 {
	basis := make([]float64, b*b)
	for k := 0; k < b; k++ {
		alpha := math.Sqrt(2.0 / float64(b))
		if k == 0 {
			alpha = math.Sqrt(1.0 / float64(b))
		}
		for n := 0; n < b; n++ {
			basis[k*b+n] = alpha * math.Cos(math.Pi*float64(2*n+1)*float64(k)/float64(2*b))
		}
	}
	return basis
}

// forwardTransform computes out = basis · block · basisᵀ for b×b
// row-major matrices. tmp is caller-owned scratch of b*b elements;
// none of the slices may alias.
func forwardTransform(basis, block, tmp, out []float64, b int) {
	// tmp = basis · block
	for i := 0; i < b; i++ {
		for j := 0; j < b; j++ {
			var sum float64
			for k := 0; k < b; k++ {
				sum += basis[i*b+k] * block[k*b+j]
			}
			tmp[i*b+j] = sum
		}
	}
	// out = tmp · basisᵀ
	for i := 0; i < b; i++ {
		for j := 0; j < b; j++ {
			var sum float64
			for k := 0; k < b; k++ {
				sum += tmp[i*b+k] * basis[j*b+k]
			}
			out[i*b+j] = sum
		}
	}
}

// inverseTransform computes out = basisᵀ · coeff · basis, the exact
// inverse of forwardTransform given an orthonormal basis.
func inverseTransform(basis, coeff, tmp, out []float64, b int) {
	// tmp = basisᵀ · coeff
	for i := 0; i < b; i++ {
		for j := 0; j < b; j++ {
			var sum float64
			for k := 0; k < b; k++ {
				sum += basis[k*b+i] * coeff[k*b+j]
			}
			tmp[i*b+j] = sum
		}
	}
	// out = tmp · basis
	for i := 0; i < b; i++ {
		for j := 0; j < b; j++ {
			var sum float64
			for k := 0; k < b; k++ {
				sum += tmp[i*b+k] * basis[k*b+j]
			}
			out[i*b+j] = sum
		}
	}
}
