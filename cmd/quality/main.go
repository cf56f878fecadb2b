// Command quality evaluates the approximation quality of the randomized
// decomposition against the optimal rank-k error given by a full SVD, over
// a grid of matrix sizes, target ranks and oversampling factors.
package main

import (
	"flag"
	"log"
	"math"
	"math/rand/v2"
	"time"

	"github.com/yyyoichi/rsvd"
	"gonum.org/v1/gonum/mat"
)

type testParams struct {
	M, N   int
	Rank   int
	Sketch int
	Noise  float64
}

func main() {
	// Parse command-line arguments
	trials := flag.Int("n", 3, "number of random trials per configuration")
	noise := flag.Float64("noise", 1e-3, "relative magnitude of full-rank noise added to each test matrix")
	slack := flag.Float64("slack", 10, "accepted ratio between randomized and optimal error")
	flag.Parse()

	// Test parameters: 3 matrix sizes × 3 target ranks × 3 oversampling factors
	sizes := [][]int{
		{200, 100},
		{400, 200},
		{800, 300},
	}
	ranks := []int{5, 10, 20}
	// Sketch dimension l = factor * rank.
	factors := []int{2, 3, 4}

	total := len(sizes) * len(ranks) * len(factors) * *trials
	log.Printf("Starting quality evaluation with %d trials per configuration\n", *trials)
	log.Printf("Total test cases: %d (sizes) x %d (ranks) x %d (oversampling factors) x %d (trials) = %d\n",
		len(sizes), len(ranks), len(factors), *trials, total)

	successCount := 0
	totalTests := 0

	for _, size := range sizes {
		for _, k := range ranks {
			for _, f := range factors {
				params := testParams{
					M:      size[0],
					N:      size[1],
					Rank:   k,
					Sketch: f * k,
					Noise:  *noise,
				}
				for trial := range *trials {
					totalTests++
					if evaluate(params, uint64(trial), *slack) {
						successCount++
					}
				}
			}
		}
	}

	log.Printf("\n=== Results ===\n")
	log.Printf("Total tests: %d\n", totalTests)
	log.Printf("Successful: %d (%.2f%%)\n", successCount, float64(successCount)/float64(totalTests)*100)
	log.Printf("Failed: %d (%.2f%%)\n", totalTests-successCount, float64(totalTests-successCount)/float64(totalTests)*100)
}

// evaluate runs one randomized decomposition and compares its relative
// reconstruction error with the optimal rank-k error of a full SVD.
func evaluate(params testParams, seed uint64, slack float64) bool {
	a := lowRankPlusNoise(params.M, params.N, params.Rank, params.Noise, seed)

	start := time.Now()
	d, err := rsvd.Decompose(a, params.Rank,
		rsvd.WithOversampling(params.Sketch),
		rsvd.WithSeed(seed),
	)
	if err != nil {
		log.Printf("[FAIL] Size=%dx%d Rank=%d Sketch=%d - Decompose error: %v\n",
			params.M, params.N, params.Rank, params.Sketch, err)
		return false
	}
	duration := time.Since(start)
	relErr := d.RelativeError(a)

	start = time.Now()
	optErr := optimalError(a, params.Rank)
	svdDuration := time.Since(start)

	ok := relErr <= slack*optErr+1e-12
	status := "FAIL"
	if ok {
		status = "OK"
	}
	log.Printf("[%s] Size=%dx%d Rank=%d Sketch=%d RelErr=%.3e Optimal=%.3e Time=%v SVDTime=%v\n",
		status, params.M, params.N, params.Rank, params.Sketch, relErr, optErr, duration, svdDuration)
	return ok
}

// optimalError returns the relative Frobenius error of the best possible
// rank-k approximation, computed from the exact singular values of a.
func optimalError(a mat.Matrix, k int) float64 {
	var svd mat.SVD
	if ok := svd.Factorize(a, mat.SVDNone); !ok {
		return math.NaN()
	}
	values := svd.Values(nil)
	var tail, total float64
	for i, s := range values {
		total += s * s
		if i >= k {
			tail += s * s
		}
	}
	if total == 0 {
		return 0
	}
	return math.Sqrt(tail / total)
}

// lowRankPlusNoise builds an m×n matrix of rank r from Gaussian factors and
// perturbs every entry with noise of the given relative magnitude, so the
// result has a dominant r-dimensional range but full numerical rank.
func lowRankPlusNoise(m, n, r int, noise float64, seed uint64) *mat.Dense {
	rng := rand.New(rand.NewPCG(seed, seed+1))
	left := mat.NewDense(m, r, nil)
	for i := range m {
		for j := range r {
			left.Set(i, j, rng.NormFloat64())
		}
	}
	right := mat.NewDense(r, n, nil)
	for i := range r {
		for j := range n {
			right.Set(i, j, rng.NormFloat64())
		}
	}
	var a mat.Dense
	a.Mul(left, right)

	scale := noise * mat.Norm(&a, 2) / math.Sqrt(float64(m*n))
	for i := range m {
		for j := range n {
			a.Set(i, j, a.At(i, j)+scale*rng.NormFloat64())
		}
	}
	return &a
}
