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

// Package threshold splits a grayscale image into highlight, midtone and
// shadow masks.
//
// Two intensity points divide the range 0-255 into three bands.  For each
// band a 256-entry lookup table ([LUT]) maps intensities inside the band to
// 255 and all other intensities to 0.  The tables can optionally be smoothed
// with a one-dimensional Gaussian filter, which turns the hard cut-offs into
// graduated transitions.  Every pixel of the image is then remapped through
// each table.
//
// # Generating Masks
//
// Use [Generate] to compute the three masks directly:
//
//	p := threshold.DefaultParams()
//	p.LUTBlur = 2.5
//	m, err := threshold.Generate(img, p)
//	if err != nil {
//	    // handle error
//	}
//	// use m.Highlights, m.Midtones and m.Shadows
//
// # Running as a Node
//
// A [Node] fetches its input from an [ImageStore], generates the masks and
// saves them back to the store:
//
//	n := &threshold.Node{ID: "n1", Image: ref, Params: threshold.DefaultParams()}
//	out, err := n.Invoke(ctx, st, sessionID)
//
// The package store provides in-memory and directory-backed implementations
// of [ImageStore].
package threshold

import (
	"fmt"
	"math"
)

// Default parameter values.
const (
	DefaultHighlightsPoint = 170
	DefaultShadowsPoint    = 85
	DefaultLUTBlur         = 0.0
)

// Params holds the parameters of the mask computation.
//
// ShadowsPoint may be greater than or equal to HighlightsPoint.  In this case
// the midtones band is empty and the midtones mask is all black.
type Params struct {
	// HighlightsPoint is the largest intensity belonging to the midtones
	// band.  Intensities above this value are highlights.
	HighlightsPoint int `yaml:"highlights_point" json:"highlights_point"`

	// ShadowsPoint is the largest intensity belonging to the shadows band.
	ShadowsPoint int `yaml:"shadows_point" json:"shadows_point"`

	// LUTBlur is the standard deviation, in intensity steps, of the Gaussian
	// filter applied to the lookup tables.  Zero disables smoothing.
	LUTBlur float64 `yaml:"lut_blur" json:"lut_blur"`
}

// DefaultParams returns the default parameters.
func DefaultParams() Params {
	return Params{
		HighlightsPoint: DefaultHighlightsPoint,
		ShadowsPoint:    DefaultShadowsPoint,
		LUTBlur:         DefaultLUTBlur,
	}
}

// Validate checks that all parameters are in range.
// The returned error, if any, is a [*ParameterError].
func (p Params) Validate() error {
	if p.HighlightsPoint < 0 || p.HighlightsPoint > 255 {
		return invalidParameter("highlights_point", p.HighlightsPoint, "must be in [0, 255]")
	}
	if p.ShadowsPoint < 0 || p.ShadowsPoint > 255 {
		return invalidParameter("shadows_point", p.ShadowsPoint, "must be in [0, 255]")
	}
	if math.IsNaN(p.LUTBlur) || math.IsInf(p.LUTBlur, 0) {
		return invalidParameter("lut_blur", p.LUTBlur, "must be finite")
	}
	if p.LUTBlur < 0 {
		return invalidParameter("lut_blur", p.LUTBlur, "must not be negative")
	}
	return nil
}

// LUT returns the lookup table for band b, smoothed if p.LUTBlur > 0.
// The parameters must be valid.
func (p Params) LUT(b Band) LUT {
	lut := NewLUT(b, p.HighlightsPoint, p.ShadowsPoint)
	if p.LUTBlur > 0 {
		lut = lut.Blur(p.LUTBlur)
	}
	return lut
}

// Band selects one of the three intensity bands.
type Band int

// The three intensity bands, in output order.
const (
	Highlights Band = iota
	Midtones
	Shadows
)

// Bands lists all bands in output order.
var Bands = []Band{Highlights, Midtones, Shadows}

// String returns the name of the output field holding the band's mask.
func (b Band) String() string {
	switch b {
	case Highlights:
		return "highlights_mask"
	case Midtones:
		return "midtones_mask"
	case Shadows:
		return "shadows_mask"
	default:
		return fmt.Sprintf("Band(%d)", int(b))
	}
}
