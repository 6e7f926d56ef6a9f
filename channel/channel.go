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

// Package channel wires components C1-C7 into the two entry points
// spec.md §6 names for a single color channel: EncryptChannel and
// DecryptChannel. It also implements the optional tamper-detection and
// recovery flow from spec.md §4.7.
//
// Each share embeds its own detection watermark plus the recovery
// watermark scattered with its own canonical permutation: share 1 carries
// (DW1, RW1 via tentmap.SeedPrimary), share 2 carries (DW2, RW2 via
// tentmap.SeedSecondary). Recovering a flagged block of one share reads
// the companion share's scattered recovery bits through that share's own
// inverse permutation; spec.md §4.7's tamper-flow paragraph reads as
// invoking both inverse permutations when describing the two shares
// generically, not as requiring a single share to carry both recovery
// watermarks at once (the 8 carrier bits per block only hold 3 detection
// + 5 recovery bits, as §4.6 lays out), so this is the consistent
// per-share pairing. See DESIGN.md.
package channel

import (
	"github.com/secvis/imgshare/embed"
	"github.com/secvis/imgshare/entropy"
	"github.com/secvis/imgshare/share"
	"github.com/secvis/imgshare/tentmap"
	"github.com/secvis/imgshare/tile"
	"github.com/secvis/imgshare/types"
	"github.com/secvis/imgshare/watermark"
)

// Bundle holds the full output of EncryptChannel: two carrier shares and
// their post-embedding weight maps, exactly spec.md §6's
// (ES1, ES2, R3, R4) tuple.
type Bundle struct {
	ES1, ES2 *embed.Carrier
	R3, R4   *types.WeightMap
}

// TamperReport records which blocks of each share failed detection
// watermark verification during DecryptChannel.
type TamperReport struct {
	Share1Blocks []int
	Share2Blocks []int
}

// Tampered reports whether either share had any flagged block.
func (r TamperReport) Tampered() bool {
	return len(r.Share1Blocks) > 0 || len(r.Share2Blocks) > 0
}

// EncryptChannel implements spec.md §6's encrypt_channel entry point,
// running the splitter (C2), detection watermark (C3), tent-map
// permutations (C4), recovery watermark (C5), and embedder (C6) for one
// 256x256 channel. src supplies C2's independent randomness; production
// callers should pass entropy.CryptoSource{}.
func EncryptChannel(c *types.Channel, src entropy.Source) (*Bundle, error) {
	s1, s2, r1, r2, err := share.Split(c, src)
	if err != nil {
		return nil, err
	}

	dw1 := watermark.Generate(s1)
	dw2 := watermark.Generate(s2)

	pi1, err := tentmap.Permutation(tentmap.SeedPrimary)
	if err != nil {
		return nil, err
	}
	pi2, err := tentmap.Permutation(tentmap.SeedSecondary)
	if err != nil {
		return nil, err
	}

	_, rw1, rw2 := watermark.GenerateRecovery(c, pi1, pi2)

	es1, r3 := embed.Embed(s1, r1, dw1, rw1)
	es2, r4 := embed.Embed(s2, r2, dw2, rw2)

	return &Bundle{ES1: es1, ES2: es2, R3: r3, R4: r4}, nil
}

// DecryptChannel implements spec.md §6's decrypt_channel entry point: it
// extracts both shares (C7) and recombines them (C9) into the original
// channel. It never mutates b; tamper detection/recovery is a separate
// opt-in call, DetectAndRecover, since spec.md marks it optional for core
// correctness.
func DecryptChannel(b *Bundle) (*types.Channel, error) {
	e1, err := embed.Extract(b.ES1, b.R3)
	if err != nil {
		return nil, err
	}
	e2, err := embed.Extract(b.ES2, b.R4)
	if err != nil {
		return nil, err
	}
	return share.Combine(e1.Share, e2.Share, e1.Weight, e2.Weight)
}

// DetectAndRecover implements spec.md §4.7's optional tamper flow. It
// re-extracts both shares, recomputes each share's detection watermark
// from the recovered POB(8) share, and flags any block whose recomputed
// triple disagrees with the one extracted from the carrier. Flagged
// blocks of the returned channel are replaced with the gray-tile
// approximation recovered from the companion share's scattered recovery
// bits.
func DetectAndRecover(b *Bundle) (*types.Channel, TamperReport, error) {
	var report TamperReport

	e1, err := embed.Extract(b.ES1, b.R3)
	if err != nil {
		return nil, report, err
	}
	e2, err := embed.Extract(b.ES2, b.R4)
	if err != nil {
		return nil, report, err
	}

	recomputedDW1 := watermark.Generate(e1.Share)
	recomputedDW2 := watermark.Generate(e2.Share)

	pi1, err := tentmap.Permutation(tentmap.SeedPrimary)
	if err != nil {
		return nil, report, err
	}
	pi2, err := tentmap.Permutation(tentmap.SeedSecondary)
	if err != nil {
		return nil, report, err
	}
	inv1 := tentmap.Invert(pi1)
	inv2 := tentmap.Invert(pi2)

	for k := 0; k < tile.Count; k++ {
		if !recomputedDW1[k].Equal(e1.DW[k]) {
			report.Share1Blocks = append(report.Share1Blocks, k)
		}
		if !recomputedDW2[k].Equal(e2.DW[k]) {
			report.Share2Blocks = append(report.Share2Blocks, k)
		}
	}

	out, err := share.Combine(e1.Share, e2.Share, e1.Weight, e2.Weight)
	if err != nil {
		return nil, report, err
	}

	for _, k := range report.Share1Blocks {
		code := watermark.Gather(e2.RW, inv2, k)
		fillBlock(out, k, watermark.ApproximatePixel(code))
	}
	for _, k := range report.Share2Blocks {
		code := watermark.Gather(e1.RW, inv1, k)
		fillBlock(out, k, watermark.ApproximatePixel(code))
	}

	return out, report, nil
}

func fillBlock(c *types.Channel, k int, v uint8) {
	tile.SetCells(c, k, [4]uint8{v, v, v, v})
}

// Clone returns a deep copy of a Bundle; the outer pipeline orchestration
// (C12) uses this where it must hand a bundle to more than one goroutine
// without sharing backing arrays.
func (b *Bundle) Clone() *Bundle {
	if b == nil {
		return nil
	}
	es1 := *b.ES1
	es2 := *b.ES2
	r3 := *b.R3
	r4 := *b.R4
	return &Bundle{ES1: &es1, ES2: &es2, R3: &r3, R4: &r4}
}
