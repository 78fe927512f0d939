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
	"errors"
	"image"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestGenerate2x2(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 2, 2))
	copy(img.Pix, []uint8{0, 85, 170, 255})

	m, err := Generate(img, DefaultParams())
	if err != nil {
		t.Fatal(err)
	}

	want := map[Band][]uint8{
		Highlights: {0, 0, 0, 255},
		Midtones:   {0, 0, 255, 0},
		Shadows:    {255, 255, 0, 0},
	}
	for _, b := range Bands {
		got := m.Get(b)
		if got.Rect != img.Rect {
			t.Errorf("%s: bounds = %v, want %v", b, got.Rect, img.Rect)
		}
		if d := cmp.Diff(want[b], got.Pix); d != "" {
			t.Errorf("%s mismatch (-want +got):\n%s", b, d)
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 17, 9))
	for i := range img.Pix {
		img.Pix[i] = uint8(i * 7)
	}
	orig := append([]uint8(nil), img.Pix...)

	p := Params{HighlightsPoint: 140, ShadowsPoint: 60, LUTBlur: 3.3}
	m1, err := Generate(img, p)
	if err != nil {
		t.Fatal(err)
	}
	m2, err := Generate(img, p)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(m1, m2); d != "" {
		t.Errorf("results differ (-first +second):\n%s", d)
	}
	if d := cmp.Diff(orig, img.Pix); d != "" {
		t.Errorf("input modified (-want +got):\n%s", d)
	}
}

func TestGenerateInvalidParams(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 1, 1))
	tests := []struct {
		p    Params
		name string
	}{
		{Params{HighlightsPoint: 256, ShadowsPoint: 85}, "highlights_point"},
		{Params{HighlightsPoint: -1, ShadowsPoint: 85}, "highlights_point"},
		{Params{HighlightsPoint: 170, ShadowsPoint: 300}, "shadows_point"},
		{Params{HighlightsPoint: 170, ShadowsPoint: -5}, "shadows_point"},
		{Params{HighlightsPoint: 170, ShadowsPoint: 85, LUTBlur: -0.1}, "lut_blur"},
		{Params{HighlightsPoint: 170, ShadowsPoint: 85, LUTBlur: math.NaN()}, "lut_blur"},
		{Params{HighlightsPoint: 170, ShadowsPoint: 85, LUTBlur: math.Inf(1)}, "lut_blur"},
	}
	for _, tt := range tests {
		m, err := Generate(img, tt.p)
		if m != nil {
			t.Errorf("%+v: got masks for invalid parameters", tt.p)
		}
		if !errors.Is(err, ErrInvalidParameter) {
			t.Errorf("%+v: got %v, want ErrInvalidParameter", tt.p, err)
			continue
		}
		var pErr *ParameterError
		if !errors.As(err, &pErr) || pErr.Name != tt.name {
			t.Errorf("%+v: error %v does not name %s", tt.p, err, tt.name)
		}
	}
}

func TestGenerateInvalidBeforeImage(t *testing.T) {
	// parameter errors take precedence over image errors
	_, err := Generate(nil, Params{HighlightsPoint: 999})
	if !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("got %v, want ErrInvalidParameter", err)
	}
	_, err = Generate(nil, DefaultParams())
	if !errors.Is(err, ErrUnsupportedImage) {
		t.Errorf("got %v, want ErrUnsupportedImage", err)
	}
}

func FuzzGenerate(f *testing.F) {
	f.Add(170, 85, 0.0, []byte{0, 85, 170, 255})
	f.Add(85, 170, 0.0, []byte{1, 2, 3})
	f.Add(255, 0, 12.5, []byte{128})
	f.Add(10, 200, 0.75, []byte{9, 10, 11, 199, 200, 201})
	f.Fuzz(func(t *testing.T, hp, sp int, sigma float64, pix []byte) {
		if len(pix) == 0 {
			return
		}
		img := image.NewGray(image.Rect(0, 0, len(pix), 1))
		copy(img.Pix, pix)
		p := Params{HighlightsPoint: hp, ShadowsPoint: sp, LUTBlur: sigma}

		m, err := Generate(img, p)
		if err != nil {
			if p.Validate() == nil {
				t.Fatalf("valid parameters %+v rejected: %v", p, err)
			}
			return
		}

		for _, b := range Bands {
			if m.Get(b).Rect != img.Rect {
				t.Fatalf("%s: wrong bounds", b)
			}
		}
		for i, v := range pix {
			h, mid, s := m.Highlights.Pix[i], m.Midtones.Pix[i], m.Shadows.Pix[i]
			if sigma == 0 {
				for _, x := range []uint8{h, mid, s} {
					if x != 0 && x != 255 {
						t.Fatalf("pixel %d: non-binary value %d without blur", v, x)
					}
				}
			}
			if sp >= hp && sigma == 0 && mid != 0 {
				t.Fatalf("pixel %d: midtones set with empty band", v)
			}
			if sp < hp {
				sum := int(h) + int(mid) + int(s)
				if sum < 254 || sum > 256 {
					t.Fatalf("pixel %d: masks sum to %d", v, sum)
				}
			}
		}
	})
}
