package embed

import (
	"testing"

	"github.com/secvis/imgshare/entropy"
	"github.com/secvis/imgshare/share"
	"github.com/secvis/imgshare/tile"
	"github.com/secvis/imgshare/types"
	"github.com/secvis/imgshare/watermark"
)

// TestEmbedExtractInvertibility exercises spec's embedding invertibility
// property: running C7 on the untampered output of C6 must reproduce the
// pre-embedding POB(8) share and the exact watermark bits fed in.
func TestEmbedExtractInvertibility(t *testing.T) {
	var channel types.Channel
	for row := range channel {
		for col := range channel[row] {
			channel[row][col] = uint8((row*7 + col*13) % 256)
		}
	}

	var nonce [16]byte
	src, err := entropy.NewSeededSource("embed-test", nonce)
	if err != nil {
		t.Fatalf("NewSeededSource: %v", err)
	}
	s1, _, r1, _, err := share.Split(&channel, src)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}

	dw := watermark.Generate(s1)

	pi := make([]int, tile.Count)
	for k := range pi {
		pi[k] = (k*7 + 3) % tile.Count
	}
	codes := watermark.BlockMeanCodes(&channel)
	rw := watermark.Scatter(codes, pi)

	carrier, weight := Embed(s1, r1, dw, rw)
	extracted, err := Extract(carrier, weight)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	if *extracted.Share != *s1 {
		t.Fatalf("extracted POB(8) share does not match pre-embedding share")
	}
	if *extracted.Weight != *r1 {
		t.Fatalf("extracted POB(8) weight map does not match pre-embedding weight map")
	}
	for k := 0; k < tile.Count; k++ {
		if !extracted.DW[k].Equal(dw[k]) {
			t.Fatalf("block %d: extracted DW %+v != input DW %+v", k, extracted.DW[k], dw[k])
		}
		if extracted.RW[k] != rw[k] {
			t.Fatalf("block %d: extracted RW %v != input RW %v", k, extracted.RW[k], rw[k])
		}
	}
}

func TestCarrierValuesAreTenBit(t *testing.T) {
	var channel types.Channel
	for row := range channel {
		for col := range channel[row] {
			channel[row][col] = uint8((row ^ col) % 256)
		}
	}
	s1, _, r1, _, err := share.Split(&channel, entropy.CryptoSource{})
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	dw := watermark.Generate(s1)
	rw := make([]watermark.Bits5, tile.Count)

	carrier, weight := Embed(s1, r1, dw, rw)
	for row := 0; row < tile.Size; row++ {
		for col := 0; col < tile.Size; col++ {
			if carrier[row][col] >= 1024 {
				t.Fatalf("carrier value %d out of POB(10) range at (%d,%d)", carrier[row][col], row, col)
			}
			if weight[row][col] > 10 {
				t.Fatalf("weight %d out of range at (%d,%d)", weight[row][col], row, col)
			}
		}
	}
}
