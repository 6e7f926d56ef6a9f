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

// Package imgerrors defines the error kinds the core pipeline can surface.
package imgerrors

import (
	"github.com/pkg/errors"
)

// Sentinel kinds. Use errors.Is(err, imgerrors.InvalidDimensions) etc. to
// classify a returned error; the underlying error carries a stack trace
// courtesy of github.com/pkg/errors.
var (
	// InvalidDimensions is returned when a channel is not 256x256.
	InvalidDimensions = errors.New("imgshare: channel is not 256x256")
	// InvalidWeight is returned when a (n, r, v) triple supplied to the
	// extractor is out of range for the POB combinatorics.
	InvalidWeight = errors.New("imgshare: invalid pob weight/index")
	// InternalInconsistency guards invariants that should never fail for
	// the documented seeds/inputs, such as the tent-map permutation
	// builder failing to fill its domain within a bounded iteration count.
	InternalInconsistency = errors.New("imgshare: internal invariant violated")
)

// InvalidDimensionsf wraps InvalidDimensions with a formatted message while
// preserving errors.Is(err, InvalidDimensions).
func InvalidDimensionsf(format string, args ...interface{}) error {
	return errors.Wrapf(InvalidDimensions, format, args...)
}

// InvalidWeightf wraps InvalidWeight with a formatted message.
func InvalidWeightf(format string, args ...interface{}) error {
	return errors.Wrapf(InvalidWeight, format, args...)
}

// InternalInconsistencyf wraps InternalInconsistency with a formatted message.
func InternalInconsistencyf(format string, args ...interface{}) error {
	return errors.Wrapf(InternalInconsistency, format, args...)
}
