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

// Package pipeline is the outer collaborator (component C12) that fans
// the per-channel core (package channel) out across an image's three
// color planes. The core itself stays a pure function from channel to
// shares; this package is the only place image.Image and goroutines
// enter the picture, mirroring the teacher's own separation between its
// pure stream-copy helpers and the goroutine fan-out that drives them
// (std/copy.go's Pipe).
package pipeline

import (
	"image"
	"image/color"
	"sync"

	"github.com/secvis/imgshare/channel"
	"github.com/secvis/imgshare/entropy"
	"github.com/secvis/imgshare/imgerrors"
	"github.com/secvis/imgshare/tile"
	"github.com/secvis/imgshare/types"
)

// Bundle is the wire-level result of encrypting a full RGB image: one
// channel.Bundle per color plane, in a fixed order so no string-keyed
// channel dictionary is needed anywhere in the core (spec §9's
// architectural note).
type Bundle struct {
	R, G, B *channel.Bundle
}

// EncryptImage decodes img into its three 256x256 color channels and
// runs EncryptChannel on each concurrently. img must be exactly 256x256;
// anything else is reported as imgerrors.InvalidDimensions.
func EncryptImage(img image.Image) (*Bundle, error) {
	r, g, b, err := splitChannels(img)
	if err != nil {
		return nil, err
	}

	var (
		bundles [3]*channel.Bundle
		errs    [3]error
	)
	planes := [3]*types.Channel{r, g, b}

	var wg sync.WaitGroup
	wg.Add(3)
	for i := 0; i < 3; i++ {
		go func(i int) {
			defer wg.Done()
			bundles[i], errs[i] = channel.EncryptChannel(planes[i], entropy.CryptoSource{})
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return &Bundle{R: bundles[0], G: bundles[1], B: bundles[2]}, nil
}

// DecryptImage inverts EncryptImage, running DecryptChannel on each color
// plane concurrently and reassembling an image.NRGBA.
func DecryptImage(b *Bundle) (image.Image, error) {
	var (
		planes [3]*types.Channel
		errs   [3]error
	)
	bundles := [3]*channel.Bundle{b.R, b.G, b.B}

	var wg sync.WaitGroup
	wg.Add(3)
	for i := 0; i < 3; i++ {
		go func(i int) {
			defer wg.Done()
			planes[i], errs[i] = channel.DecryptChannel(bundles[i])
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return joinChannels(planes[0], planes[1], planes[2]), nil
}

func splitChannels(img image.Image) (r, g, b *types.Channel, err error) {
	bounds := img.Bounds()
	if bounds.Dx() != tile.Size || bounds.Dy() != tile.Size {
		return nil, nil, nil, imgerrors.InvalidDimensionsf(
			"pipeline: image is %dx%d, want %dx%d", bounds.Dx(), bounds.Dy(), tile.Size, tile.Size)
	}

	r = new(types.Channel)
	g = new(types.Channel)
	b = new(types.Channel)
	for y := 0; y < tile.Size; y++ {
		for x := 0; x < tile.Size; x++ {
			pr, pg, pb, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			r[y][x] = uint8(pr >> 8)
			g[y][x] = uint8(pg >> 8)
			b[y][x] = uint8(pb >> 8)
		}
	}
	return
}

func joinChannels(r, g, b *types.Channel) *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, tile.Size, tile.Size))
	for y := 0; y < tile.Size; y++ {
		for x := 0; x < tile.Size; x++ {
			out.SetNRGBA(x, y, color.NRGBA{R: r[y][x], G: g[y][x], B: b[y][x], A: 0xFF})
		}
	}
	return out
}
