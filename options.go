package rsvd

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

type Option func(*RSVD) error

// WithOversampling sets the sketch dimension l, the number of random
// projections used to capture the range of the input. It defaults to twice
// the requested rank. Larger values improve the probability that the basis
// captures the dominant subspace at additional cost, and it must be at
// least the requested rank.
func WithOversampling(l int) Option {
	return func(r *RSVD) error {
		if l < 1 {
			return fmt.Errorf("oversampling must be positive, got %d", l)
		}
		r.oversample = l
		return nil
	}
}

// WithSeed makes the random projection deterministic: decomposers created
// with the same seed produce identical factors for identical inputs.
func WithSeed(seed uint64) Option {
	return func(r *RSVD) error {
		r.src = rand.NewPCG(seed, seed)
		return nil
	}
}

// WithSource supplies the random source the Gaussian test matrix is drawn
// from. Options apply in order, so the last of WithSeed and WithSource wins.
// Every Decompose call on the instance consumes the source, so it must not
// be shared with decomposers used concurrently.
func WithSource(src rand.Source) Option {
	return func(r *RSVD) error {
		if src == nil {
			return errors.New("random source must not be nil")
		}
		r.src = src
		return nil
	}
}

// WithBasis keeps the orthonormal basis Q on the returned Decomposition so
// that the caller can measure the approximation error of Stage A
// independently of the factorization. See Decomposition.BasisError.
func WithBasis() Option {
	return func(r *RSVD) error {
		r.keepBasis = true
		return nil
	}
}
