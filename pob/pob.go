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

// Package pob implements the Position-Ordered Binary number system: a
// bijection between n-bit vectors of a fixed Hamming weight r and integers
// in [0, C(n, r)).
package pob

import "github.com/secvis/imgshare/imgerrors"

// Bits is a fixed-length bit vector with values restricted to {0, 1}.
type Bits []byte

// Weight returns the Hamming weight (number of set bits) of b.
func (b Bits) Weight() int {
	w := 0
	for _, v := range b {
		if v != 0 {
			w++
		}
	}
	return w
}

// maxN is the largest vector length this package is specified for; C(i,k)
// for i <= maxN fits comfortably in a machine int, so no bignum is needed.
const maxN = 10

// binom returns C(n, k), the number of k-combinations of n elements. It
// returns 0 for out-of-range k, matching the convention used by the POB
// recurrences in Decode and Encode.
func binom(n, k int) int {
	if k < 0 || k > n || n < 0 {
		return 0
	}
	if k == 0 || k == n {
		return 1
	}
	if k > n-k {
		k = n - k
	}
	result := 1
	for i := 0; i < k; i++ {
		result = result * (n - i) / (i + 1)
	}
	return result
}

// Decode reconstructs the unique n-bit vector of Hamming weight r whose POB
// index is v. Callers must guarantee 0 <= v < C(n, r) and 0 <= r <= n; an
// out-of-range v indicates a corrupted weight map or share upstream (see
// imgerrors.InvalidWeight), which Decode itself does not detect since the
// core trusts its own internally produced weights.
func Decode(n, r, v int) Bits {
	b := make(Bits, n)
	t := r
	rem := v
	for i := n - 1; i >= 1; i-- {
		x := binom(i, t)
		if x <= rem {
			rem -= x
			t--
			b[i] = 1
		}
	}
	if t != 0 {
		b[0] = 1
	}
	return reversed(b)
}

// Encode computes the POB index of bit vector b. Encode(Decode(n, r, v)) ==
// v for every v in [0, C(n, r)), and Weight(Decode(n, r, v)) == r.
func Encode(b Bits) int {
	n := len(b)
	rev := reversed(b)

	cumWeight := 0
	result := 0
	for pos := 0; pos < n; pos++ {
		if rev[pos] == 0 {
			continue
		}
		cumWeight++
		if pos > 0 {
			result += binom(pos, cumWeight)
		}
	}
	return result
}

func reversed(b Bits) Bits {
	n := len(b)
	out := make(Bits, n)
	for i := 0; i < n; i++ {
		out[i] = b[n-1-i]
	}
	return out
}

// ValidateWeight reports imgerrors.InvalidWeight if r exceeds n or v falls
// outside [0, C(n, r)). Extractors that consume an untrusted weight map
// (C7) call this before Decode.
func ValidateWeight(n, r, v int) error {
	if r < 0 || r > n {
		return imgerrors.InvalidWeightf("weight %d out of range for n=%d", r, n)
	}
	count := binom(n, r)
	if v < 0 || v >= count {
		return imgerrors.InvalidWeightf("index %d out of range for C(%d,%d)=%d", v, n, r, count)
	}
	return nil
}
