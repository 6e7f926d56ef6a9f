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

// Package watermark computes the per-block detection watermark (SVD
// parity, component C3) and recovery watermark (block-mean scatter,
// component C5).
package watermark

import (
	"math"
	"math/bits"
	"strconv"
	"strings"

	"github.com/secvis/imgshare/tile"
	"github.com/secvis/imgshare/types"
)

// Bits3 holds the three detection bits for one 2x2 block.
type Bits3 struct {
	WD1, WD2, WD3 uint8
}

// Equal compares two detection triples element-wise. spec Open Question 3
// flags that the original source collapsed each triple to a single bool
// via `.all()`, which is almost certainly unintended; tamper detection
// here always compares the three bits individually.
func (b Bits3) Equal(o Bits3) bool {
	return b.WD1 == o.WD1 && b.WD2 == o.WD2 && b.WD3 == o.WD3
}

// singularValues returns the two singular values (s0 >= s1) of the 2x2
// matrix [[a,b],[c,d]] using the closed form from spec §9: s =
// trace(M^T M), d = det(M), singular values = sqrt((s +/- sqrt(s^2 -
// 4d^2))/2).
func singularValues(a, b, c, d float64) (s0, s1 float64) {
	trace := a*a + b*b + c*c + d*d
	det := a*d - b*c
	disc := trace*trace - 4*det*det
	if disc < 0 {
		// Guards against negative rounding noise; mathematically disc >= 0
		// always holds for a real 2x2 matrix.
		disc = 0
	}
	root := math.Sqrt(disc)
	hi := (trace + root) / 2
	lo := (trace - root) / 2
	if lo < 0 {
		lo = 0
	}
	s0 = math.Sqrt(hi)
	s1 = math.Sqrt(lo)
	return
}

// epsilon implements spec §4.3/§9's scaling rule for turning a
// (possibly fractional) singular-value combination into an integer whose
// popcount feeds the parity bit. When x is exactly integral it is used
// as-is; otherwise its fractional part is scaled up by 10^k, where k is
// the number of digits after the decimal point in the shortest
// round-trip decimal rendering of that fractional part (x - floor(x)).
//
// This resolves spec Open Question 1 in favor of a *per-block* scale
// factor: the distilled source instead computed k once from the first
// block and applied it globally, which silently corrupts every other
// block's epsilon whenever blocks differ in fractional precision. A
// fixed, Go-idiomatic per-block scale keeps the watermark self-consistent
// (the same channel always re-derives the same DW on both sides of a
// round trip) without depending on a single block's arbitrary precision.
func epsilon(x float64) int {
	if x == math.Trunc(x) {
		return int(x)
	}
	frac := x - math.Floor(x)
	s := strconv.FormatFloat(frac, 'f', -1, 64)
	digits := 0
	if i := strings.IndexByte(s, '.'); i >= 0 {
		digits = len(s) - i - 1
	}
	scaled := frac * math.Pow(10, float64(digits))
	return int(math.Round(scaled))
}

func parity(x int) uint8 {
	if x < 0 {
		x = -x
	}
	return uint8(bits.OnesCount(uint(x)) & 1)
}

// blockBits computes the detection triple for a single 2x2 block given
// in row-major order (cell order matches tile.Cells).
func blockBits(cells [4]uint16) Bits3 {
	s0, s1 := singularValues(float64(cells[0]), float64(cells[1]), float64(cells[2]), float64(cells[3]))
	delta := s0 - s1
	eta := s0 + s1

	var wd Bits3
	wd.WD1 = parity(epsilon(delta))
	wd.WD2 = 0
	if delta >= 255 {
		wd.WD2 = 1
	}
	wd.WD3 = parity(epsilon(eta))
	return wd
}

// Generate computes the detection watermark for every block of a POB
// index share (component C3). The watermark is share-specific: it must
// be computed from the pre-embedding POB(8) share, not from the original
// channel pixels.
func Generate(share *types.Share) []Bits3 {
	out := make([]Bits3, tile.Count)
	for k := 0; k < tile.Count; k++ {
		out[k] = blockBits(tile.Cells(share, k))
	}
	return out
}
