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

// Package tile provides the fixed 256x256 -> 16384 non-overlapping 2x2
// block tiling shared by every pipeline stage. Block k sits at
// (row, col) = (2*(k/128), 2*(k%128)), i.e. row-major block order; this
// order is part of the contract (spec §5) since the recovery watermark's
// scatter permutation acts on this index domain directly.
package tile

// Size is the fixed channel width/height.
const Size = 256

// Dim is the side length of a block.
const Dim = 2

// PerRow is the number of blocks across one row of the channel.
const PerRow = Size / Dim

// Count is the total number of 2x2 blocks in a channel (16384).
const Count = PerRow * PerRow

// Matrix is a Size x Size grid of pixel-like values.
type Matrix[T any] [Size][Size]T

// Position returns the top-left pixel coordinate of block k.
func Position(k int) (row, col int) {
	row = Dim * (k / PerRow)
	col = Dim * (k % PerRow)
	return
}

// Cells reads the four cells of block k in row-major order: (row,col),
// (row,col+1), (row+1,col), (row+1,col+1).
func Cells[T any](m *Matrix[T], k int) [4]T {
	row, col := Position(k)
	return [4]T{m[row][col], m[row][col+1], m[row+1][col], m[row+1][col+1]}
}

// SetCells writes the four cells of block k in row-major order.
func SetCells[T any](m *Matrix[T], k int, cells [4]T) {
	row, col := Position(k)
	m[row][col] = cells[0]
	m[row][col+1] = cells[1]
	m[row+1][col] = cells[2]
	m[row+1][col+1] = cells[3]
}

// FlattenU8 copies an 8-bit matrix into a flat, row-major byte slice
// suitable for vectorized byte operations (e.g. xorsimd).
func FlattenU8(m *Matrix[uint8]) []byte {
	out := make([]byte, Size*Size)
	idx := 0
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			out[idx] = m[r][c]
			idx++
		}
	}
	return out
}

// UnflattenU8 is the inverse of FlattenU8.
func UnflattenU8(flat []byte) *Matrix[uint8] {
	var m Matrix[uint8]
	idx := 0
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			m[r][c] = flat[idx]
			idx++
		}
	}
	return &m
}
