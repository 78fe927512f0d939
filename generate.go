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

import "image"

// Masks holds the three masks computed by [Generate].
// All masks have the same bounds as the input image.
type Masks struct {
	Highlights *image.Gray
	Midtones   *image.Gray
	Shadows    *image.Gray
}

// Get returns the mask for band b, or nil if b is not a valid band.
func (m *Masks) Get(b Band) *image.Gray {
	switch b {
	case Highlights:
		return m.Highlights
	case Midtones:
		return m.Midtones
	case Shadows:
		return m.Shadows
	default:
		return nil
	}
}

// Generate computes the highlight, midtone and shadow masks of img.
//
// Colour images are first converted to grayscale, see [ToGray].  The input
// image is never modified.  If p.LUTBlur is zero, every pixel of the result
// is either 0 or 255.
//
// Generate holds no state and can be called concurrently.
func Generate(img image.Image, p Params) (*Masks, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	gray, err := ToGray(img)
	if err != nil {
		return nil, err
	}

	m := &Masks{
		Highlights: p.LUT(Highlights).Apply(gray),
		Midtones:   p.LUT(Midtones).Apply(gray),
		Shadows:    p.LUT(Shadows).Apply(gray),
	}
	return m, nil
}
