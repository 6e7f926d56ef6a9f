package obfuscate

import (
	"bytes"
	"testing"
)

func TestPadUnpadRoundTrip(t *testing.T) {
	data := make([]byte, 2048)
	for i := range data {
		data[i] = byte(i * 31)
	}

	padded, err := Pad(data, "correct-horse-battery-staple", DefaultPads)
	if err != nil {
		t.Fatalf("Pad: %v", err)
	}
	if bytes.Equal(padded, data) {
		t.Fatalf("expected Pad to transform the input")
	}

	unpadded, err := Unpad(padded, "correct-horse-battery-staple", DefaultPads)
	if err != nil {
		t.Fatalf("Unpad: %v", err)
	}
	if !bytes.Equal(unpadded, data) {
		t.Fatalf("Unpad(Pad(data)) != data")
	}
}

func TestUnpadWrongPassphraseFails(t *testing.T) {
	data := bytes.Repeat([]byte{0xAB, 0xCD, 0x01, 0x02}, 512)
	padded, err := Pad(data, "passphrase-one", DefaultPads)
	if err != nil {
		t.Fatalf("Pad: %v", err)
	}
	wrong, err := Unpad(padded, "passphrase-two", DefaultPads)
	if err != nil {
		t.Fatalf("Unpad: %v", err)
	}
	if bytes.Equal(wrong, data) {
		t.Fatalf("expected the wrong passphrase to fail to recover the original bytes")
	}
}

func TestValidateParamsRejectsNonPositive(t *testing.T) {
	if err := ValidateParams(0); err == nil {
		t.Fatalf("expected an error for a non-positive pad count")
	}
}
