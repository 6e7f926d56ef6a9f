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

// Package obfuscate applies an optional Quantum Permutation Pad transform
// (github.com/xtaci/qpp, the teacher's own permutation-cipher dependency,
// std/qpp.go) over a serialized share's bytes. This is a transport
// hardening convenience over the carrier bytes, entirely separate from
// the splitter's information-theoretic share hiding (component C2):
// DecryptChannel never requires it, and a share round-trips through
// Pad/Unpad with or without tampering the cryptographic core.
package obfuscate

import (
	"crypto/sha1"

	"github.com/xtaci/qpp"
	"golang.org/x/crypto/pbkdf2"

	"github.com/secvis/imgshare/imgerrors"
)

// pbkdf2Salt and pbkdf2Iterations mirror entropy.go's own key-expansion
// convention so the two optional layers derive key material the same way.
const pbkdf2Salt = "imgshare-obfuscate"
const pbkdf2Iterations = 4096

// qubits is the permutation dimension, matching the teacher's own fixed
// choice (std/qpp.go's qppPower).
const qubits = 8

// DefaultPads is a prime pad count, satisfying both
// qpp.QPPMinimumPads(qubits) and the teacher's own recommendation
// (std/qpp.go's ValidateQPPParams warns when the count shares a factor
// with qubits) to pick a prime.
const DefaultPads = 257

// deriveSeed expands passphrase into QPP seed material of sufficient
// length for qpp.QPPMinimumSeedLength(qubits).
func deriveSeed(passphrase string) []byte {
	return pbkdf2.Key([]byte(passphrase), []byte(pbkdf2Salt), pbkdf2Iterations, 64, sha1.New)
}

// ValidateParams reports a non-nil error if numPads is unusable for the
// fixed qubit width this package uses, matching std/qpp.go's
// ValidateQPPParams shape.
func ValidateParams(numPads int) error {
	if numPads <= 0 {
		return imgerrors.InternalInconsistencyf("obfuscate: numPads must be positive, got %d", numPads)
	}
	if numPads < qpp.QPPMinimumPads(qubits) {
		return imgerrors.InternalInconsistencyf(
			"obfuscate: numPads %d is below the minimum %d", numPads, qpp.QPPMinimumPads(qubits))
	}
	return nil
}

// Pad obfuscates a copy of data using a fresh Quantum Permutation Pad
// keyed from passphrase and returns the transformed bytes; the input is
// left untouched.
func Pad(data []byte, passphrase string, numPads int) ([]byte, error) {
	if err := ValidateParams(numPads); err != nil {
		return nil, err
	}
	out := make([]byte, len(data))
	copy(out, data)

	pad := qpp.NewQPP(deriveSeed(passphrase), uint16(numPads))
	pad.Encrypt(out)
	return out, nil
}

// Unpad inverts Pad given the same passphrase and numPads.
func Unpad(data []byte, passphrase string, numPads int) ([]byte, error) {
	if err := ValidateParams(numPads); err != nil {
		return nil, err
	}
	out := make([]byte, len(data))
	copy(out, data)

	pad := qpp.NewQPP(deriveSeed(passphrase), uint16(numPads))
	pad.Decrypt(out)
	return out, nil
}
