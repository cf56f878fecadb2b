package rsvd

import (
	"errors"

	"gonum.org/v1/gonum/mat"
)

// Decomposition holds the truncated factors of an approximate rank-k
// factorization A ≈ U·Σ·V^T.
type Decomposition struct {
	// U holds the k leading left singular vectors in its columns (m×k,
	// orthonormal columns).
	U *mat.Dense
	// Values holds the k leading singular values in descending order.
	Values []float64
	// V holds the k leading right singular vectors in its columns (n×k,
	// orthonormal columns).
	V *mat.Dense
	// Q is the orthonormal sketch basis (m×l) the input was compressed
	// into. It is nil unless the decomposer was created with WithBasis.
	Q *mat.Dense
}

// VT returns the transposed right factor (k×n) without copying.
func (d *Decomposition) VT() mat.Matrix {
	return d.V.T()
}

// Reconstruct multiplies the factors back into a dense m×n matrix
// U·Σ·V^T, the rank-k approximation of the original input.
func (d *Decomposition) Reconstruct() *mat.Dense {
	sigma := mat.NewDiagDense(len(d.Values), d.Values)
	var res mat.Dense
	res.Product(d.U, sigma, d.V.T())
	return &res
}

// RelativeError returns ‖a − U·Σ·V^T‖ / ‖a‖ in the Frobenius norm, where a
// is the matrix the decomposition was computed from.
func (d *Decomposition) RelativeError(a mat.Matrix) float64 {
	var diff mat.Dense
	diff.Sub(a, d.Reconstruct())
	return mat.Norm(&diff, 2) / mat.Norm(a, 2)
}

// BasisError returns ‖a − Q·Q^T·a‖ in the Frobenius norm, the part of a the
// sketch basis missed. Comparing it with the factorization residual
// separates the error introduced by the randomized Stage A from the exact
// Stage B. It requires the basis; create the decomposer with WithBasis.
func (d *Decomposition) BasisError(a mat.Matrix) (float64, error) {
	if d.Q == nil {
		return 0, errors.New("basis was not kept: create the decomposer with WithBasis")
	}
	var proj mat.Dense
	proj.Product(d.Q, d.Q.T(), a)
	var diff mat.Dense
	diff.Sub(a, &proj)
	return mat.Norm(&diff, 2), nil
}
