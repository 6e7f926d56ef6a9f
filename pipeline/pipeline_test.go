package pipeline

import (
	"image"
	"image/color"
	"testing"
)

func testImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 256, 256))
	for y := 0; y < 256; y++ {
		for x := 0; x < 256; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8((x + y) % 256),
				G: uint8((x * 2) % 256),
				B: uint8((y * 3) % 256),
				A: 0xFF,
			})
		}
	}
	return img
}

func TestEncryptDecryptImageRoundTrip(t *testing.T) {
	img := testImage()
	bundle, err := EncryptImage(img)
	if err != nil {
		t.Fatalf("EncryptImage: %v", err)
	}
	got, err := DecryptImage(bundle)
	if err != nil {
		t.Fatalf("DecryptImage: %v", err)
	}

	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			wantR, wantG, wantB, _ := img.At(x, y).RGBA()
			gotR, gotG, gotB, _ := got.At(x, y).RGBA()
			if wantR>>8 != gotR>>8 || wantG>>8 != gotG>>8 || wantB>>8 != gotB>>8 {
				t.Fatalf("pixel (%d,%d) mismatch: want (%d,%d,%d) got (%d,%d,%d)",
					x, y, wantR>>8, wantG>>8, wantB>>8, gotR>>8, gotG>>8, gotB>>8)
			}
		}
	}
}

func TestEncryptImageRejectsWrongDimensions(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 128, 128))
	_, err := EncryptImage(img)
	if err == nil {
		t.Fatalf("expected an error for a non-256x256 image")
	}
}
