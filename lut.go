// seehuhn.de/go/threshold - highlight, midtone and shadow masks
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package threshold

import (
	"image"
	"math"
)

// LUT is a lookup table mapping an 8-bit input intensity (the index) to an
// output intensity in the range [0, 255].
//
// Entries are stored as floating point numbers so that smoothed tables keep
// their full precision.  [LUT.Table] quantises a table for use on images.
type LUT [256]float64

// NewLUT returns the unsmoothed lookup table for band b.
//
// Intensities p with p <= shadowsPoint belong to the shadows band,
// intensities with shadowsPoint < p <= highlightsPoint to the midtones band
// and intensities with p > highlightsPoint to the highlights band.  Entries
// inside the band are 255, all others are 0.
func NewLUT(b Band, highlightsPoint, shadowsPoint int) LUT {
	var lut LUT
	for p := range lut {
		var in bool
		switch b {
		case Highlights:
			in = p > highlightsPoint
		case Midtones:
			in = p > shadowsPoint && p <= highlightsPoint
		case Shadows:
			in = p <= shadowsPoint
		}
		if in {
			lut[p] = 255
		}
	}
	return lut
}

// Blur returns a copy of the table, smoothed by a Gaussian filter with
// standard deviation sigma.  The filter runs over the table entries, not over
// image pixels.  Values beyond the ends of the table are obtained by
// mirroring the table at its boundaries.
//
// If sigma is zero or negative, the table is returned unchanged.
func (l LUT) Blur(sigma float64) LUT {
	if !(sigma > 0) {
		return l
	}
	var res LUT
	gaussianFilter1D(res[:], l[:], sigma)
	return res
}

// Table returns the quantised form of the table.
// Entries are rounded to the nearest integer and clamped to [0, 255].
func (l LUT) Table() [256]uint8 {
	var res [256]uint8
	for i, v := range l {
		res[i] = uint8(math.Round(clamp(v, 0, 255)))
	}
	return res
}

// Apply remaps every pixel of src through the table.
// The result has the same bounds as src; src is not modified.
func (l LUT) Apply(src *image.Gray) *image.Gray {
	table := l.Table()
	return remap(src, &table)
}

func remap(src *image.Gray, table *[256]uint8) *image.Gray {
	r := src.Rect
	dst := image.NewGray(r)
	w := r.Dx()
	for y := 0; y < r.Dy(); y++ {
		in := src.Pix[y*src.Stride : y*src.Stride+w]
		out := dst.Pix[y*dst.Stride : y*dst.Stride+w]
		for x, p := range in {
			out[x] = table[p]
		}
	}
	return dst
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
