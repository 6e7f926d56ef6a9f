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

// Package entropy supplies the nondeterministic random source the share
// splitter (component C2) needs for its per-pixel coin flips. This is
// kept as a separate collaborator from the deterministic tent map
// (package tentmap, component C4) per spec §9: the two roles of
// randomness must never be conflated.
package entropy

import (
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha1"
	"io"

	"github.com/pkg/errors"
	"github.com/tjfoc/gmsm/sm4"
	"golang.org/x/crypto/pbkdf2"
)

// pbkdf2Salt matches the teacher's own key-expansion convention
// (client/main.go derives a KCP session key from a passphrase with
// pbkdf2 and a fixed salt) generalized to this package's own domain.
const pbkdf2Salt = "imgshare-entropy"

const pbkdf2Iterations = 4096

// Source is a uniform random-bit source for the share splitter.
type Source interface {
	// Bytes fills buf with uniform random bytes.
	Bytes(buf []byte) error
}

// CryptoSource reads from crypto/rand. This is the default source: every
// encrypt call draws fresh, non-reproducible randomness, as spec §2's C2
// requires ("different calls must produce different (R1, R2) except with
// negligible probability").
type CryptoSource struct{}

// Bytes implements Source.
func (CryptoSource) Bytes(buf []byte) error {
	_, err := io.ReadFull(rand.Reader, buf)
	return errors.Wrap(err, "entropy: crypto/rand read failed")
}

// SeededSource is a deterministic Source for reproducible runs such as
// tests (the CLI does not use it): it derives an SM4 key from a passphrase via PBKDF2 (the same
// derivation shape the teacher uses for its own session keys) and reads
// an SM4-CTR keystream as the random byte stream. It must never be used
// to back a production invocation of the share splitter, since
// determinism there would let an attacker who knows the passphrase infer
// (R1, R2) for a captured share.
type SeededSource struct {
	stream cipher.Stream
}

// NewSeededSource derives a keystream from passphrase and an explicit
// nonce, so the same (passphrase, nonce) pair always yields the same
// byte stream.
func NewSeededSource(passphrase string, nonce [16]byte) (*SeededSource, error) {
	key := pbkdf2.Key([]byte(passphrase), []byte(pbkdf2Salt), pbkdf2Iterations, 16, sha1.New)
	block, err := sm4.NewCipher(key)
	if err != nil {
		return nil, errors.Wrap(err, "entropy: sm4 cipher init failed")
	}
	stream := cipher.NewCTR(block, nonce[:])
	return &SeededSource{stream: stream}, nil
}

// Bytes implements Source by advancing the CTR keystream.
func (s *SeededSource) Bytes(buf []byte) error {
	zero := make([]byte, len(buf))
	s.stream.XORKeyStream(buf, zero)
	return nil
}
