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

// Package embed implements the 10-bit embedder (component C6) and its
// inverse extractor (component C7): every POB(8) share cell is widened to
// POB(10) by appending two watermark carrier bits, packing 3 detection
// bits and 5 recovery bits into the 8 carrier bits available per 2x2
// block.
package embed

import (
	"github.com/secvis/imgshare/imgerrors"
	"github.com/secvis/imgshare/pob"
	"github.com/secvis/imgshare/tile"
	"github.com/secvis/imgshare/types"
	"github.com/secvis/imgshare/watermark"
)

// Carrier is a 256x256 grid of POB(10) indices (values in [0, 1024)).
type Carrier = tile.Matrix[uint16]

// carrierBits returns the two watermark bits destined for cell i of a
// block (row-major: 0=top-left, 1=top-right, 2=bottom-left,
// 3=bottom-right), per the fixed layout of this package:
//
//	cell 0: DW[0], DW[1]
//	cell 1: DW[2], RW[0]
//	cell 2: RW[1], RW[2]
//	cell 3: RW[3], RW[4]
func carrierBits(i int, dw watermark.Bits3, rw watermark.Bits5) (b0, b1 uint8) {
	switch i {
	case 0:
		return dw.WD1, dw.WD2
	case 1:
		return dw.WD3, rw[0]
	case 2:
		return rw[1], rw[2]
	case 3:
		return rw[3], rw[4]
	}
	panic("embed: cell index out of range")
}

// Embed implements component C6 for a single channel's share. r is the
// pre-embedding POB(8) weight map (R1 or R2 from the splitter); dw and rw
// are the per-block detection and recovery watermarks. It returns the
// widened carrier share and its companion POB(10) weight map.
func Embed(s *types.Share, r *types.WeightMap, dw []watermark.Bits3, rw []watermark.Bits5) (*Carrier, *types.WeightMap) {
	carrier := new(Carrier)
	weights := new(types.WeightMap)

	for k := 0; k < tile.Count; k++ {
		vCells := tile.Cells(s, k)
		rCells := tile.Cells(r, k)
		var outV, outR [4]uint16

		for i := 0; i < 4; i++ {
			b8 := pob.Decode(8, int(rCells[i]), int(vCells[i]))
			bit0, bit1 := carrierBits(i, dw[k], rw[k])
			b10 := make(pob.Bits, 0, 10)
			b10 = append(b10, b8...)
			b10 = append(b10, bit0, bit1)

			outR[i] = uint16(b10.Weight())
			outV[i] = uint16(pob.Encode(b10))
		}

		tile.SetCells(carrier, k, outV)
		tile.SetCells(weights, k, [4]uint8{uint8(outR[0]), uint8(outR[1]), uint8(outR[2]), uint8(outR[3])})
	}
	return carrier, weights
}

// Extracted holds the result of running the extractor (C7) over a single
// embedded share.
type Extracted struct {
	Share   *types.Share
	Weight  *types.WeightMap
	DW      []watermark.Bits3
	RW      []watermark.Bits5
}

// Extract implements component C7: the inverse of Embed. carrier and
// weight are the post-embedding POB(10) share and weight map (ES1/R3, or
// ES2/R4).
func Extract(carrier *Carrier, weight *types.WeightMap) (*Extracted, error) {
	s := new(types.Share)
	r := new(types.WeightMap)
	dw := make([]watermark.Bits3, tile.Count)
	rw := make([]watermark.Bits5, tile.Count)

	for k := 0; k < tile.Count; k++ {
		vCells := tile.Cells(carrier, k)
		rCells := tile.Cells(weight, k)
		var outV, outR [4]uint8

		var block watermark.Bits3
		var recov watermark.Bits5

		for i := 0; i < 4; i++ {
			rr, vv := int(rCells[i]), int(vCells[i])
			if err := pob.ValidateWeight(10, rr, vv); err != nil {
				return nil, imgerrors.InvalidWeightf("embed: block %d cell %d: %v", k, i, err)
			}
			b10 := pob.Decode(10, rr, vv)
			b8 := b10[0:8]
			bit0, bit1 := b10[8], b10[9]

			outV[i] = uint8(pob.Encode(b8))
			outR[i] = uint8(b8.Weight())

			switch i {
			case 0:
				block.WD1, block.WD2 = bit0, bit1
			case 1:
				block.WD3, recov[0] = bit0, bit1
			case 2:
				recov[1], recov[2] = bit0, bit1
			case 3:
				recov[3], recov[4] = bit0, bit1
			}
		}

		tile.SetCells(s, k, [4]uint16{uint16(outV[0]), uint16(outV[1]), uint16(outV[2]), uint16(outV[3])})
		tile.SetCells(r, k, outR)
		dw[k] = block
		rw[k] = recov
	}

	return &Extracted{Share: s, Weight: r, DW: dw, RW: rw}, nil
}
