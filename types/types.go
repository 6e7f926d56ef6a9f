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

// Package types names the domain-level matrices the pipeline passes
// between stages, per spec §3's data model.
package types

import "github.com/secvis/imgshare/tile"

// Channel is a 256x256 8-bit color channel.
type Channel = tile.Matrix[uint8]

// Share is a 256x256 matrix of POB indices. Pre-embedding this holds
// values in [0, 256); post-embedding (the carrier) it holds values in
// [0, 1024), so the wider uint16 element type serves both.
type Share = tile.Matrix[uint16]

// WeightMap is a 256x256 matrix of Hamming weights in [0, 10].
type WeightMap = tile.Matrix[uint8]
