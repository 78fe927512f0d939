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

import "math"

// gaussianTruncate is the kernel radius in units of the standard deviation.
const gaussianTruncate = 4.0

// maxGaussianRadius limits the kernel size.  Kernels this wide fold to an
// almost uniform filter on a 256-entry table.
const maxGaussianRadius = 1 << 16

// gaussianKernel returns the normalised weights exp(-x²/2σ²) for
// x = -radius, ..., radius, where radius = int(4σ + 0.5).
func gaussianKernel(sigma float64) []float64 {
	r := gaussianTruncate*sigma + 0.5
	if r >= maxGaussianRadius {
		r = maxGaussianRadius
	}
	radius := int(r)
	if radius == 0 {
		return []float64{1}
	}
	weights := make([]float64, 2*radius+1)
	s := -0.5 / (sigma * sigma)
	sum := 0.0
	for i := range weights {
		x := float64(i - radius)
		w := math.Exp(s * x * x)
		weights[i] = w
		sum += w
	}
	for i := range weights {
		weights[i] /= sum
	}
	return weights
}

// gaussianFilter1D convolves src with a Gaussian kernel and stores the
// result in dst.  Both slices must have the same, non-zero length.
//
// The signal is extended by reflection about the edge of the last sample
// ("d c b a | a b c d | d c b a"), repeated as often as the kernel requires.
func gaussianFilter1D(dst, src []float64, sigma float64) {
	n := len(src)
	weights := gaussianKernel(sigma)
	radius := len(weights) / 2

	// The reflected extension has period 2n, so kernel taps whose offsets
	// agree modulo 2n always hit the same sample.  Folding the kernel first
	// keeps the work bounded for very wide kernels.
	period := 2 * n
	folded := make([]float64, period)
	for i, w := range weights {
		k := (i - radius) % period
		if k < 0 {
			k += period
		}
		folded[k] += w
	}

	for i := range dst {
		sum := 0.0
		for k, w := range folded {
			if w == 0 {
				continue
			}
			sum += w * src[reflectIndex(i+k, n)]
		}
		dst[i] = sum
	}
}

// reflectIndex maps an arbitrary index onto [0, n) using half-sample
// symmetric extension.
func reflectIndex(i, n int) int {
	period := 2 * n
	i %= period
	if i < 0 {
		i += period
	}
	if i >= n {
		i = period - 1 - i
	}
	return i
}
