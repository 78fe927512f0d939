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

// Package store implements [threshold.ImageStore] in memory and on disk.
package store

import (
	"errors"
	"fmt"
	"image"

	"seehuhn.de/go/threshold"
)

var (
	// ErrNotFound is returned by [Memory.Get] for unknown image names.
	ErrNotFound = errors.New("store: image not found")

	errInvalidName = errors.New("store: invalid image name")
)

// convert applies mode to an image read from a store.
func convert(img image.Image, mode threshold.Mode) (image.Image, error) {
	switch mode {
	case threshold.ModeOriginal:
		return img, nil
	case threshold.ModeGray:
		return threshold.ToGray(img)
	default:
		return nil, fmt.Errorf("store: unsupported mode %s", mode)
	}
}
