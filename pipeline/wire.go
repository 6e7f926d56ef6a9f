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

	"github.com/secvis/imgshare/imgerrors"
)

// wireFormatVersion tags the serialized bundle shape (spec.md §3's "wire
// bundle" addition), so a future incompatible layout can be rejected
// cleanly instead of silently misreading gob output.
const wireFormatVersion = 1

type wireEnvelope struct {
	Version int
	Bundle  Bundle
}

// MarshalBundle serializes a full-image Bundle and snappy-compresses the
// result, grounded on the teacher's own CompStream
// (generic/comp.go/std/comp.go), generalized from a streaming net.Conn
// wrapper to a one-shot byte buffer since a wire bundle is written once,
// not streamed. No serialization library appears anywhere in the example
// pack's dependency surface (the teacher and its siblings all move bytes
// directly over io.ReadWriteCloser pipes, never structured payloads), so
// the envelope shape itself is implemented directly on the standard
// library's encoding/gob rather than adopting an unrelated dependency
// purely to avoid it.
func MarshalBundle(b *Bundle) ([]byte, error) {
	var buf bytes.Buffer
	env := wireEnvelope{Version: wireFormatVersion, Bundle: *b}
	if err := gob.NewEncoder(&buf).Encode(env); err != nil {
		return nil, imgerrors.InternalInconsistencyf("pipeline: marshal bundle: %v", err)
	}
	return snappy.Encode(nil, buf.Bytes()), nil
}

// UnmarshalBundle inverts MarshalBundle.
func UnmarshalBundle(data []byte) (*Bundle, error) {
	raw, err := snappy.Decode(nil, data)
	if err != nil {
		return nil, imgerrors.InternalInconsistencyf("pipeline: snappy decode: %v", err)
	}

	var env wireEnvelope
	if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(&env); err != nil {
		return nil, imgerrors.InternalInconsistencyf("pipeline: unmarshal bundle: %v", err)
	}
	if env.Version != wireFormatVersion {
		return nil, imgerrors.InternalInconsistencyf(
			"pipeline: unsupported wire format version %d, want %d", env.Version, wireFormatVersion)
	}
	return &env.Bundle, nil
}
