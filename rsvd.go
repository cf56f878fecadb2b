// Package rsvd computes approximate low-rank matrix factorizations by
// randomized projection.
//
// Given an m×n matrix A and a target rank k, it produces orthonormal
// factors U, V and nonnegative singular values Σ such that A ≈ U·Σ·V^T,
// far more cheaply than a full decomposition when k ≪ min(m, n).
//
// See:
//
//	"Finding structure with randomness: Probabilistic algorithms for
//	constructing approximate matrix decompositions"
//
//	by Halko, Martinsson, Tropp, SIAM 2011
package rsvd

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/yyyoichi/rsvd/internal/normalize"
	"github.com/yyyoichi/rsvd/internal/rangefinder"
	"gonum.org/v1/gonum/mat"
)

var (
	// ErrInsufficientRank reports a requested rank larger than the sketch
	// dimension, which cannot yield k singular triplets.
	ErrInsufficientRank = errors.New("requested rank exceeds the sketch dimension")
	// ErrDegenerateColumn reports a sketch column whose maximum entry is
	// zero, which cannot be rescaled during range finding.
	ErrDegenerateColumn = normalize.ErrDegenerateColumn
)

// Decompose computes an approximate rank-k factorization of a with the
// specified options. This is a convenience function that creates an RSVD
// instance and calls its Decompose method.
func Decompose(a mat.Matrix, k int, opts ...Option) (*Decomposition, error) {
	r, err := New(opts...)
	if err != nil {
		return nil, err
	}
	return r.Decompose(a, k)
}

// RSVD decomposes matrices using a single stream of random projections.
// An instance is not safe for concurrent use, since every Decompose call
// advances the shared random source; for concurrent calls on independent
// inputs, use the package-level Decompose, which builds a fresh instance
// per call.
type RSVD struct {
	oversample int
	keepBasis  bool
	src        rand.Source
}

// New initializes a randomized decomposer.
// The sketch dimension, random source and basis retention can be optionally
// specified. For default values, refer to the init function.
func New(opts ...Option) (*RSVD, error) {
	r := new(RSVD)
	if err := r.init(opts...); err != nil {
		return nil, err
	}
	return r, nil
}

// Decompose computes an approximate rank-k factorization a ≈ U·Σ·V^T.
//
// Process:
//  1. Stage A: builds an orthonormal basis Q approximating the range of a
//     from l random projections. l defaults to 2k, is capped at the row
//     count of a (at most m orthonormal directions exist), and is the only
//     point where randomness enters; a different draw yields a different,
//     generally similarly accurate, basis.
//  2. Stage B: compresses a into the basis (B = Q^T·a), computes the exact
//     singular value decomposition of the small l×n matrix B, and lifts the
//     left factor back to the original row space (U = Q·S).
//  3. Truncates all factors to the leading k singular triplets. The exact
//     decomposition of B already sorts Σ in descending order, so truncation
//     takes a prefix.
//
// Returns ErrInsufficientRank if k exceeds the number of singular triplets
// the sketch can produce.
func (r *RSVD) Decompose(a mat.Matrix, k int) (*Decomposition, error) {
	if k < 1 {
		return nil, fmt.Errorf("rank must be positive, got %d", k)
	}
	l := r.oversample
	if l == 0 {
		l = 2 * k
	}
	if k > l {
		return nil, fmt.Errorf("%w: rank=%d sketch=%d", ErrInsufficientRank, k, l)
	}

	// Stage A.
	q, err := rangefinder.New(r.src).Find(a, l)
	if err != nil {
		return nil, err
	}

	// Stage B.
	var b mat.Dense
	b.Mul(q.T(), a)
	var svd mat.SVD
	if ok := svd.Factorize(&b, mat.SVDThin); !ok {
		return nil, errors.New("cannot factorize compressed matrix")
	}
	values := svd.Values(nil)
	if k > len(values) {
		return nil, fmt.Errorf("%w: rank=%d singular values=%d", ErrInsufficientRank, k, len(values))
	}
	var s, v mat.Dense
	svd.UTo(&s)
	svd.VTo(&v)

	// Lift the compressed left factor back to the original row space.
	// Q and S both have orthonormal columns, so U does too.
	var u mat.Dense
	u.Mul(q, &s)

	m, n := a.Dims()
	d := &Decomposition{
		U:      u.Slice(0, m, 0, k).(*mat.Dense),
		Values: values[:k],
		V:      v.Slice(0, n, 0, k).(*mat.Dense),
	}
	if r.keepBasis {
		d.Q = q
	}
	return d, nil
}

func (r *RSVD) init(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return err
		}
	}
	if r.src == nil {
		r.src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	return nil
}
