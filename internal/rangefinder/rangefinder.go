// Package rangefinder builds orthonormal bases approximating the range of a
// matrix from random projections.
//
// See "Finding structure with randomness: Probabilistic algorithms for
// constructing approximate matrix decompositions" by Halko, Martinsson,
// Tropp, SIAM 2011, Algorithm 4.1.
package rangefinder

import (
	"fmt"
	"math/rand/v2"

	"github.com/yyyoichi/rsvd/internal/normalize"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

type RangeFinder struct {
	normal distuv.Normal
}

// New returns a RangeFinder that draws its Gaussian test matrices from src.
func New(src rand.Source) *RangeFinder {
	return &RangeFinder{
		normal: distuv.Normal{Mu: 0, Sigma: 1, Src: src},
	}
}

// Find returns a matrix Q with orthonormal columns whose range approximates
// the range of the m×n matrix a. Q has min(l, m) columns: an m-dimensional
// space holds at most m orthonormal directions, so a wider sketch is capped
// at the row count, matching what a reduced QR of an m×l matrix with l > m
// can produce.
//
// l ≤ min(m, n) is expected but not enforced: when a has fewer than l
// meaningful directions, the trailing columns of Q span noise directions
// and accuracy degrades instead of failing.
func (rf *RangeFinder) Find(a mat.Matrix, l int) (*mat.Dense, error) {
	if l < 1 {
		return nil, fmt.Errorf("sketch dimension must be positive, got %d", l)
	}
	m, n := a.Dims()
	l = min(l, m)

	// Step 1. Draw an n×l Gaussian test matrix Ω.
	omega := mat.NewDense(n, l, nil)
	for i := range n {
		for j := range l {
			omega.Set(i, j, rf.normal.Rand())
		}
	}

	// Step 2. Sketch Y = A·Ω and rescale its columns before factorizing.
	var y mat.Dense
	y.Mul(a, omega)
	sketch, err := normalize.Columns(&y)
	if err != nil {
		return nil, fmt.Errorf("normalize sketch: %w", err)
	}

	// Step 3. Reduced QR factorization Y = QR. The leading l columns of the
	// full Q form an orthonormal basis for the range of the sketch; R is
	// discarded.
	var qr mat.QR
	qr.Factorize(sketch)
	var q mat.Dense
	qr.QTo(&q)
	return q.Slice(0, m, 0, l).(*mat.Dense), nil
}
