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
	"image/color"
)

// Limits on the size of images accepted by [ToGray].
const (
	MaxDimension = 1 << 20
	MaxPixels    = 1 << 30
)

// ToGray returns img as an 8-bit grayscale image.
//
// If img already is an [*image.Gray], it is returned unchanged.  Other images
// are converted using the ITU-R 601-2 luma transform
// L = 0.299 R + 0.587 G + 0.114 B on non-premultiplied 8-bit samples; the
// alpha channel is ignored.  16-bit grayscale samples are reduced to their
// high byte.
//
// An error wrapping [ErrUnsupportedImage] is returned if img is nil, has
// empty bounds, or exceeds [MaxDimension] or [MaxPixels].
func ToGray(img image.Image) (*image.Gray, error) {
	if img == nil {
		return nil, unsupportedImage("missing image")
	}
	r := img.Bounds()
	if r.Empty() {
		return nil, unsupportedImage("empty image")
	}
	w, h := r.Dx(), r.Dy()
	if w > MaxDimension || h > MaxDimension || int64(w)*int64(h) > MaxPixels {
		return nil, unsupportedImage("image too large")
	}

	switch src := img.(type) {
	case *image.Gray:
		return src, nil
	case *image.Gray16:
		dst := image.NewGray(r)
		for y := r.Min.Y; y < r.Max.Y; y++ {
			for x := r.Min.X; x < r.Max.X; x++ {
				dst.SetGray(x, y, color.Gray{Y: uint8(src.Gray16At(x, y).Y >> 8)})
			}
		}
		return dst, nil
	case *image.NRGBA:
		dst := image.NewGray(r)
		for y := 0; y < h; y++ {
			in := src.Pix[y*src.Stride : y*src.Stride+4*w]
			out := dst.Pix[y*dst.Stride : y*dst.Stride+w]
			for x := range out {
				out[x] = luma(in[4*x], in[4*x+1], in[4*x+2])
			}
		}
		return dst, nil
	}

	dst := image.NewGray(r)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			dst.SetGray(x, y, color.Gray{Y: luma(c.R, c.G, c.B)})
		}
	}
	return dst, nil
}

// luma computes (299 R + 587 G + 114 B) / 1000 in 16-bit fixed point,
// rounded to the nearest integer.
func luma(r, g, b uint8) uint8 {
	return uint8((uint32(r)*19595 + uint32(g)*38470 + uint32(b)*7471 + 0x8000) >> 16)
}
