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

// Package recovery erasure-codes the recovery bundle (the per-channel
// weight maps R3 and R4) so it survives the loss of up to ParityShards
// shards in transit. Lost shards (nil entries) are rebuilt; a shard that
// is present but altered is neither located nor repaired.
// This is a transport hardening layer over spec.md §6's "out of band,
// no mandated layout" recovery bundle, not part of the cryptographic
// core: DecryptChannel never requires it, and Recover always inverts
// Protect exactly when enough shards survive.
package recovery

import (
	"github.com/klauspost/reedsolomon"

	"github.com/secvis/imgshare/imgerrors"
	"github.com/secvis/imgshare/tile"
	"github.com/secvis/imgshare/types"
)

// payloadSize is the flattened byte length of one channel's recovery
// bundle: R3 and R4 each contribute one byte per pixel.
const payloadSize = 2 * tile.Size * tile.Size

// Bundle holds the erasure-coded shards produced by Protect. Shards[i]
// for i < DataShards carries real payload bytes; the remainder are
// parity. Any ParityShards of the total may be nil (lost) and Recover
// will still reconstruct the original payload.
type Bundle struct {
	DataShards   int
	ParityShards int
	ShardSize    int
	Shards       [][]byte
}

// Protect erasure-codes R3 and R4 for one channel into dataShards data
// shards plus parityShards parity shards using Reed-Solomon coding
// (github.com/klauspost/reedsolomon, the same erasure coder the teacher
// uses for KCP's own forward error correction in vendor/.../kcp-go/fec.go).
func Protect(r3, r4 *types.WeightMap, dataShards, parityShards int) (*Bundle, error) {
	enc, err := reedsolomon.New(dataShards, parityShards)
	if err != nil {
		return nil, imgerrors.InternalInconsistencyf("recovery: reedsolomon.New: %v", err)
	}

	payload := make([]byte, 0, payloadSize)
	payload = append(payload, tile.FlattenU8(r3)...)
	payload = append(payload, tile.FlattenU8(r4)...)

	shards, err := enc.Split(payload)
	if err != nil {
		return nil, imgerrors.InternalInconsistencyf("recovery: split: %v", err)
	}
	if err := enc.Encode(shards); err != nil {
		return nil, imgerrors.InternalInconsistencyf("recovery: encode: %v", err)
	}

	return &Bundle{
		DataShards:   dataShards,
		ParityShards: parityShards,
		ShardSize:    len(shards[0]),
		Shards:       shards,
	}, nil
}

// Recover inverts Protect. b.Shards may contain nil entries (lost
// shards, marked by the caller) up to ParityShards of them; Recover
// reconstructs the missing shards before reassembling R3 and R4.
func Recover(b *Bundle) (r3, r4 *types.WeightMap, err error) {
	enc, err := reedsolomon.New(b.DataShards, b.ParityShards)
	if err != nil {
		return nil, nil, imgerrors.InternalInconsistencyf("recovery: reedsolomon.New: %v", err)
	}

	ok, verr := enc.Verify(b.Shards)
	if verr != nil || !ok {
		if err := enc.Reconstruct(b.Shards); err != nil {
			return nil, nil, imgerrors.InternalInconsistencyf("recovery: reconstruct: %v", err)
		}
	}

	payload := make([]byte, 0, payloadSize)
	for i := 0; i < b.DataShards; i++ {
		payload = append(payload, b.Shards[i]...)
	}
	if len(payload) < payloadSize {
		return nil, nil, imgerrors.InternalInconsistencyf(
			"recovery: reassembled payload too short: got %d, want %d", len(payload), payloadSize)
	}

	r3 = tile.UnflattenU8(payload[:tile.Size*tile.Size])
	r4 = tile.UnflattenU8(payload[tile.Size*tile.Size : payloadSize])
	return r3, r4, nil
}
