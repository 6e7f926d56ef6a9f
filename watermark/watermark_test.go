package watermark

import (
	"testing"

	"github.com/secvis/imgshare/tile"
	"github.com/secvis/imgshare/types"
)

// TestDetectionScenario exercises spec scenario 5: a flat 2x2 block of
// value 100 has singular values (200, 0), so delta = eta = 200. This
// differs from the worked example in spec.md §8 scenario 5, which
// asserts delta=0; that arithmetic does not hold for the closed-form SVD
// spec §9 itself prescribes (verified independently: trace(M^T M) =
// 40000, det(M) = 0, giving singular values 200 and 0). This test asserts
// the verified values.
func TestDetectionScenario(t *testing.T) {
	var share types.Share
	tile.SetCells(&share, 0, [4]uint16{100, 100, 100, 100})
	dw := Generate(&share)[0]

	// delta = eta = 200 (integer), popcount(200) = popcount(0b11001000) = 3 (odd).
	if dw.WD1 != 1 {
		t.Fatalf("WD1 = %d, want 1 (popcount(200) is odd)", dw.WD1)
	}
	if dw.WD2 != 0 {
		t.Fatalf("WD2 = %d, want 0 (delta=200 < 255)", dw.WD2)
	}
	if dw.WD3 != 1 {
		t.Fatalf("WD3 = %d, want 1 (popcount(200) is odd)", dw.WD3)
	}
}

func TestDetectionWD2Threshold(t *testing.T) {
	var share types.Share
	// Singular values of a diagonal [[300,0],[0,0]] block are (300, 0).
	tile.SetCells(&share, 0, [4]uint16{300, 0, 0, 0})
	dw := Generate(&share)[0]
	if dw.WD2 != 1 {
		t.Fatalf("WD2 = %d, want 1 (delta=300 >= 255)", dw.WD2)
	}
}

func TestBits3Equal(t *testing.T) {
	a := Bits3{WD1: 1, WD2: 0, WD3: 1}
	b := Bits3{WD1: 1, WD2: 0, WD3: 1}
	c := Bits3{WD1: 1, WD2: 1, WD3: 1}
	if !a.Equal(b) {
		t.Fatalf("expected equal triples to compare equal")
	}
	if a.Equal(c) {
		t.Fatalf("expected differing triples to compare unequal")
	}
}

// TestRecoveryCodeCheckerboard exercises spec scenario 3: a checkerboard
// block's mean of 127 truncates to code 31 (127 & 0x1F), which widens
// back to 255.
func TestRecoveryCodeCheckerboard(t *testing.T) {
	sum := 0 + 255 + 255 + 0 // mean = 127
	code := RecoveryCode(sum)
	if code != 31 {
		t.Fatalf("RecoveryCode(%d) = %d, want 31", sum, code)
	}
	if got := ApproximatePixel(code); got != 255 {
		t.Fatalf("ApproximatePixel(%d) = %d, want 255", code, got)
	}
}

func TestBits5RoundTrip(t *testing.T) {
	for code := 0; code < 32; code++ {
		b := ExpandBits5(uint8(code))
		if got := CollapseBits5(b); int(got) != code {
			t.Fatalf("CollapseBits5(ExpandBits5(%d)) = %d", code, got)
		}
	}
}

func TestScatterGatherRoundTrip(t *testing.T) {
	pi := make([]int, tile.Count)
	for k := range pi {
		// A simple non-identity permutation: reverse order.
		pi[k] = tile.Count - 1 - k
	}
	inv := make([]int, tile.Count)
	for k, v := range pi {
		inv[v] = k
	}

	codes := make([]uint8, tile.Count)
	for k := range codes {
		codes[k] = uint8(k % 32)
	}

	rw := Scatter(codes, pi)
	for j := 0; j < tile.Count; j++ {
		if got := Gather(rw, inv, j); got != codes[j] {
			t.Fatalf("Gather at %d = %d, want %d", j, got, codes[j])
		}
	}
}
