package channel

import (
	"testing"

	"github.com/secvis/imgshare/entropy"
	"github.com/secvis/imgshare/pob"
	"github.com/secvis/imgshare/tile"
	"github.com/secvis/imgshare/types"
	"github.com/secvis/imgshare/watermark"
)

func fillChannel(v uint8) *types.Channel {
	var c types.Channel
	for row := range c {
		for col := range c[row] {
			c[row][col] = v
		}
	}
	return &c
}

func checkerboard() *types.Channel {
	var c types.Channel
	for row := range c {
		for col := range c[row] {
			if (row+col)%2 == 0 {
				c[row][col] = 255
			}
		}
	}
	return &c
}

func gradient() *types.Channel {
	var c types.Channel
	for row := range c {
		for col := range c[row] {
			c[row][col] = uint8((row*3 + col*5) % 256)
		}
	}
	return &c
}

// roundTrip exercises spec's "decrypt_channel(encrypt_channel(C)) == C"
// property for a fixed channel.
func roundTrip(t *testing.T, c *types.Channel) {
	t.Helper()
	bundle, err := EncryptChannel(c, entropy.CryptoSource{})
	if err != nil {
		t.Fatalf("EncryptChannel: %v", err)
	}
	got, err := DecryptChannel(bundle)
	if err != nil {
		t.Fatalf("DecryptChannel: %v", err)
	}
	if *got != *c {
		t.Fatalf("round trip mismatch")
	}
}

func TestRoundTripAllZero(t *testing.T)      { roundTrip(t, fillChannel(0)) }
func TestRoundTripAllWhite(t *testing.T)     { roundTrip(t, fillChannel(255)) }
func TestRoundTripCheckerboard(t *testing.T) { roundTrip(t, checkerboard()) }
func TestRoundTripGradient(t *testing.T)     { roundTrip(t, gradient()) }

// TestEncryptIsNondeterministicButDecryptsConsistently exercises spec
// scenario "natural-photo-twice": encrypting the same channel twice with
// fresh randomness produces different carrier bytes but both decrypt back
// to the identical original channel.
func TestEncryptIsNondeterministicButDecryptsConsistently(t *testing.T) {
	c := gradient()
	b1, err := EncryptChannel(c, entropy.CryptoSource{})
	if err != nil {
		t.Fatalf("EncryptChannel: %v", err)
	}
	b2, err := EncryptChannel(c, entropy.CryptoSource{})
	if err != nil {
		t.Fatalf("EncryptChannel: %v", err)
	}
	if *b1.ES1 == *b2.ES1 && *b1.ES2 == *b2.ES2 {
		t.Fatalf("expected two independent encrypt calls to draw different randomness")
	}

	got1, err := DecryptChannel(b1)
	if err != nil {
		t.Fatalf("DecryptChannel: %v", err)
	}
	got2, err := DecryptChannel(b2)
	if err != nil {
		t.Fatalf("DecryptChannel: %v", err)
	}
	if *got1 != *c || *got2 != *c {
		t.Fatalf("both independent encryptions must decrypt back to the original channel")
	}
}

// TestDetectAndRecoverFlagsTamperedBlock corrupts one block of share 1's
// carrier after encryption and checks that DetectAndRecover flags exactly
// that block and fills it with the gray-tile approximation.
func TestDetectAndRecoverFlagsTamperedBlock(t *testing.T) {
	c := gradient()
	bundle, err := EncryptChannel(c, entropy.CryptoSource{})
	if err != nil {
		t.Fatalf("EncryptChannel: %v", err)
	}

	// Untampered bundles must report no flagged blocks.
	_, report, err := DetectAndRecover(bundle)
	if err != nil {
		t.Fatalf("DetectAndRecover: %v", err)
	}
	if report.Tampered() {
		t.Fatalf("expected no tampering on a freshly encrypted bundle, got %+v", report)
	}

	// Corrupt block 0 of share 1's carrier by flipping the carrier bit that
	// holds WD1 (bit 8 of cell 0) and re-encoding the cell with its new
	// weight. The cell's eight payload bits are unchanged, so the
	// recomputed detection triple no longer matches the extracted one.
	// (Swapping whole blocks would not be detected: each block's
	// detection bits travel with the payload they were computed from.)
	tampered := bundle.Clone()
	vs, rs := tile.Cells(tampered.ES1, 0), tile.Cells(tampered.R3, 0)
	b10 := pob.Decode(10, int(rs[0]), int(vs[0]))
	b10[8] ^= 1
	vs[0], rs[0] = uint16(pob.Encode(b10)), uint8(b10.Weight())
	tile.SetCells(tampered.ES1, 0, vs)
	tile.SetCells(tampered.R3, 0, rs)

	got, report2, err := DetectAndRecover(tampered)
	if err != nil {
		t.Fatalf("DetectAndRecover: %v", err)
	}
	if !report2.Tampered() {
		t.Fatalf("expected tampering to be flagged")
	}
	if len(report2.Share1Blocks) != 1 || report2.Share1Blocks[0] != 0 || len(report2.Share2Blocks) != 0 {
		t.Fatalf("expected only share 1 block 0 to be flagged, got %+v", report2)
	}
	orig := tile.Cells(c, 0)
	v := watermark.ApproximatePixel(watermark.RecoveryCode(int(orig[0]) + int(orig[1]) + int(orig[2]) + int(orig[3])))
	if cells := tile.Cells(got, 0); cells != [4]uint8{v, v, v, v} {
		t.Fatalf("flagged block 0 = %v, want gray tile of %d", cells, v)
	}
}

func TestBundleCloneIsIndependent(t *testing.T) {
	c := gradient()
	bundle, err := EncryptChannel(c, entropy.CryptoSource{})
	if err != nil {
		t.Fatalf("EncryptChannel: %v", err)
	}
	clone := bundle.Clone()
	clone.ES1[0][0] ^= 0x3FF
	if bundle.ES1[0][0] == clone.ES1[0][0] {
		t.Fatalf("expected Clone to deep-copy the carrier shares")
	}
}
