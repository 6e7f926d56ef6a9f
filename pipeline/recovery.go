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

package pipeline

import (
	"bytes"
	"encoding/gob"

	"github.com/golang/snappy"

	"github.com/secvis/imgshare/channel"
	"github.com/secvis/imgshare/imgerrors"
	"github.com/secvis/imgshare/recovery"
)

// recoveryWireVersion tags the erasure-coded recovery file's shape, same
// reasoning as wireFormatVersion in wire.go.
const recoveryWireVersion = 1

// RecoveryBundle is the out-of-band erasure-coded companion to a Bundle:
// one recovery.Bundle per color plane, protecting that plane's R3/R4
// weight maps against partial corruption in transit. It is never
// required to decrypt an image; it only lets a corrupted R3/R4 pair be
// repaired before DecryptImage is called.
type RecoveryBundle struct {
	R, G, B *recovery.Bundle
}

// ProtectRecovery erasure-codes every color plane's weight maps with
// dataShards data shards and parityShards parity shards.
func ProtectRecovery(b *Bundle, dataShards, parityShards int) (*RecoveryBundle, error) {
	planes := [3]*channel.Bundle{b.R, b.G, b.B}
	var out [3]*recovery.Bundle
	for i, p := range planes {
		rb, err := recovery.Protect(p.R3, p.R4, dataShards, parityShards)
		if err != nil {
			return nil, err
		}
		out[i] = rb
	}
	return &RecoveryBundle{R: out[0], G: out[1], B: out[2]}, nil
}

// RestoreRecovery reconstructs each color plane's R3/R4 weight maps from
// rb and overwrites b's copies in place, repairing any corruption the
// main wire bundle suffered in transit.
func RestoreRecovery(b *Bundle, rb *RecoveryBundle) error {
	planes := [3]*channel.Bundle{b.R, b.G, b.B}
	shards := [3]*recovery.Bundle{rb.R, rb.G, rb.B}
	for i, p := range planes {
		r3, r4, err := recovery.Recover(shards[i])
		if err != nil {
			return err
		}
		p.R3, p.R4 = r3, r4
	}
	return nil
}

type recoveryWireEnvelope struct {
	Version int
	Bundle  RecoveryBundle
}

// MarshalRecoveryBundle serializes a RecoveryBundle the same way
// MarshalBundle does (gob plus snappy), kept as a separate envelope
// since the recovery file is an optional, independently-shipped
// artifact from the main wire bundle.
func MarshalRecoveryBundle(rb *RecoveryBundle) ([]byte, error) {
	var buf bytes.Buffer
	env := recoveryWireEnvelope{Version: recoveryWireVersion, Bundle: *rb}
	if err := gob.NewEncoder(&buf).Encode(env); err != nil {
		return nil, imgerrors.InternalInconsistencyf("pipeline: marshal recovery bundle: %v", err)
	}
	return snappy.Encode(nil, buf.Bytes()), nil
}

// UnmarshalRecoveryBundle inverts MarshalRecoveryBundle.
func UnmarshalRecoveryBundle(data []byte) (*RecoveryBundle, error) {
	raw, err := snappy.Decode(nil, data)
	if err != nil {
		return nil, imgerrors.InternalInconsistencyf("pipeline: snappy decode: %v", err)
	}

	var env recoveryWireEnvelope
	if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(&env); err != nil {
		return nil, imgerrors.InternalInconsistencyf("pipeline: unmarshal recovery bundle: %v", err)
	}
	if env.Version != recoveryWireVersion {
		return nil, imgerrors.InternalInconsistencyf(
			"pipeline: unsupported recovery wire version %d, want %d", env.Version, recoveryWireVersion)
	}
	return &env.Bundle, nil
}
