// The MIT License (MIT)
//
// # Copyright (c) 2016 xtaci
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// Package tentmap implements the chaotic tent-map pseudo-random sequence
// used to build the two scatter permutations over the 16384 block
// positions of a 256x256 image. The map itself is reproduced from the
// original source; its emission modulus is corrected from Domain-1 to
// Domain (see emitModulus and DESIGN.md) so every block position is
// reachable.
package tentmap

import (
	"math"

	"github.com/secvis/imgshare/imgerrors"
)

// Domain is the number of block positions in a 256x256 image tiled into
// non-overlapping 2x2 blocks (256/2 * 256/2).
const Domain = 16384

// emitModulus is the modulus applied to each raw emission. The source
// this was distilled from computes `round(x*1e14) % 16383` (Domain-1),
// which makes the value 16383 permanently unreachable: by the pigeonhole
// principle a permutation builder drawing from only 16383 distinct
// outputs can never fill a 16384-slot domain, so the builder loops until
// its iteration guard fires and every call fails. This is corrected here
// to Domain per the spec's own recommendation; see Open Question 2 in
// DESIGN.md.
const emitModulus = Domain

// maxBuildIterations bounds the permutation builder's loop. Measured
// against both canonical seeds the builder completes within roughly
// 1.45e5-1.5e5 iterations; 2e6 leaves ample margin while still catching a
// pathological seed whose orbit never covers every value in [0, Domain).
const maxBuildIterations = 2_000_000

// Sequence is a stateful iterator over the tent map x_{i+1} = f(x_i),
// f(x) = 1.999999*x for x<0.5, 1.999999*(1-x) otherwise.
type Sequence struct {
	x float64
}

// New returns a Sequence primed with the given seed. Two Sequences created
// with the same seed emit identical values in lockstep.
func New(seed float64) *Sequence {
	return &Sequence{x: seed}
}

// Next advances the map by one iteration and returns the scaled, reduced
// emission in [0, Domain).
func (s *Sequence) Next() int {
	if s.x < 0.5 {
		s.x = s.x * 1.999999
	} else {
		s.x = (1 - s.x) * 1.999999
	}
	scaled := math.Round(s.x * 1e14)
	n := math.Mod(scaled, float64(emitModulus))
	if n < 0 {
		n += float64(emitModulus)
	}
	return int(n)
}

// Permutation builds a permutation of [0, Domain) by repeatedly drawing
// from the tent map seeded at `seed` and keeping the first occurrence of
// each distinct value, in emission order. It returns
// imgerrors.InternalInconsistency if the domain is not filled within a
// bounded number of iterations.
func Permutation(seed float64) ([]int, error) {
	seq := New(seed)
	out := make([]int, 0, Domain)
	seen := make([]bool, Domain)
	filled := 0

	for iter := 0; filled < Domain; iter++ {
		if iter >= maxBuildIterations {
			return nil, imgerrors.InternalInconsistencyf(
				"tent-map permutation for seed %g failed to fill %d slots within %d iterations",
				seed, Domain, maxBuildIterations)
		}
		n := seq.Next()
		if n < 0 || n >= Domain {
			continue
		}
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
			filled++
		}
	}
	return out, nil
}

// Invert returns the inverse of permutation pi: inv[pi[k]] == k.
func Invert(pi []int) []int {
	inv := make([]int, len(pi))
	for k, v := range pi {
		inv[v] = k
	}
	return inv
}

// Canonical seeds for the two independent scatter permutations used by
// the recovery watermark (spec component C5).
const (
	SeedPrimary   = 1e-5
	SeedSecondary = 1e-8
)
