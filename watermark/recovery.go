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

package watermark

import (
	"github.com/secvis/imgshare/tile"
	"github.com/secvis/imgshare/types"
)

// Bits5 holds a 5-bit recovery code, MSB (bit 4) first.
type Bits5 [5]uint8

// RecoveryCode computes the 5-bit block-mean code from a 2x2 block's
// pixel sum. spec §3 prescribes "(sum // 4) & 0x1F" as the normative
// formula (Open Question 4): the low 5 bits of the integer block mean.
// The distilled source instead sliced a variable-length Python bin()
// string, which for means >= 32 has no fixed relationship to a bitmask
// (the number of discarded low bits depends on the mean's own bit
// length). That rendering isn't something a fixed-width Go type can
// reproduce faithfully, so this implementation follows spec §3's own
// explicit "& 0x1F" formula.
func RecoveryCode(blockSum int) uint8 {
	mean := blockSum / 4
	return uint8(mean & 0x1F)
}

// ExpandBits5 splits an integer 5-bit code into its bit vector, MSB first.
func ExpandBits5(code uint8) Bits5 {
	var b Bits5
	for i := 0; i < 5; i++ {
		b[i] = (code >> uint(4-i)) & 1
	}
	return b
}

// CollapseBits5 reassembles a 5-bit code from its bit vector.
func CollapseBits5(b Bits5) uint8 {
	var v uint8
	for i := 0; i < 5; i++ {
		v = (v << 1) | (b[i] & 1)
	}
	return v
}

// ApproximatePixel widens a recovered 5-bit mean code back into an 8-bit
// pixel approximation for tamper recovery: the 5 known bits become the
// high bits and the 3 unknown low bits are filled with 1s. This matches
// spec scenario 3's worked example (a checkerboard block's mean of 127
// truncates to code 31, which widens back to 255).
func ApproximatePixel(code uint8) uint8 {
	return (code << 3) | 0x07
}

// BlockMeanCodes computes the 5-bit mean code for every block of the
// original channel, in row-major block order.
func BlockMeanCodes(c *types.Channel) []uint8 {
	codes := make([]uint8, tile.Count)
	for k := 0; k < tile.Count; k++ {
		cells := tile.Cells(c, k)
		sum := int(cells[0]) + int(cells[1]) + int(cells[2]) + int(cells[3])
		codes[k] = RecoveryCode(sum)
	}
	return codes
}

// Scatter produces RW[k] = bv_{pi(k)} for every block k, per spec
// component C5: the recovery bit at output position k is the bit vector
// belonging to the block that permutation pi maps k to.
func Scatter(codes []uint8, pi []int) []Bits5 {
	out := make([]Bits5, tile.Count)
	for k, src := range pi {
		out[k] = ExpandBits5(codes[src])
	}
	return out
}

// Gather inverts Scatter: given the scattered recovery bits RW and the
// inverse of the permutation used to build it, it recovers the 5-bit
// code that was computed for block j of the original channel.
func Gather(rw []Bits5, piInverse []int, j int) uint8 {
	return CollapseBits5(rw[piInverse[j]])
}

// GenerateRecovery computes both canonical scattered recovery watermarks
// for channel c using the two tent-map permutations pi1 (seed 1e-5) and
// pi2 (seed 1e-8).
func GenerateRecovery(c *types.Channel, pi1, pi2 []int) (codes []uint8, rw1, rw2 []Bits5) {
	codes = BlockMeanCodes(c)
	rw1 = Scatter(codes, pi1)
	rw2 = Scatter(codes, pi2)
	return
}
