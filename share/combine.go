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

package share

import (
	"github.com/templexxx/xorsimd"

	"github.com/secvis/imgshare/imgerrors"
	"github.com/secvis/imgshare/pob"
	"github.com/secvis/imgshare/tile"
	"github.com/secvis/imgshare/types"
)

// Combine implements component C9, the single sibling-XOR entry point
// every pixel recombination in this module goes through. It validates
// every (R, S) pair against its POB domain, decodes both shares back to
// their 8-bit vectors, packs them into flat byte buffers, and recombines
// the whole channel with one vectorized XOR call.
func Combine(s1, s2 *types.Share, r1, r2 *types.WeightMap) (*types.Channel, error) {
	aBytes := make([]byte, tile.Size*tile.Size)
	bBytes := make([]byte, tile.Size*tile.Size)

	for row := 0; row < tile.Size; row++ {
		for col := 0; col < tile.Size; col++ {
			idx := row*tile.Size + col
			ra, va := int(r1[row][col]), int(s1[row][col])
			rb, vb := int(r2[row][col]), int(s2[row][col])
			if err := pob.ValidateWeight(8, ra, va); err != nil {
				return nil, imgerrors.InvalidWeightf("share 1 pixel (%d,%d): %v", row, col, err)
			}
			if err := pob.ValidateWeight(8, rb, vb); err != nil {
				return nil, imgerrors.InvalidWeightf("share 2 pixel (%d,%d): %v", row, col, err)
			}
			aBytes[idx] = bitsToByte(pob.Decode(8, ra, va))
			bBytes[idx] = bitsToByte(pob.Decode(8, rb, vb))
		}
	}

	out := make([]byte, tile.Size*tile.Size)
	xorsimd.Encode(out, [][]byte{aBytes, bBytes})
	return tile.UnflattenU8(out), nil
}
