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
	"fmt"
)

var (
	// ErrInvalidParameter is matched by every [*ParameterError].
	ErrInvalidParameter = errors.New("threshold: invalid parameter")

	// ErrUnsupportedImage indicates that an image cannot be interpreted as a
	// single-channel raster.
	ErrUnsupportedImage = errors.New("threshold: unsupported image")
)

// ParameterError indicates that a parameter is out of range.
type ParameterError struct {
	Name   string
	Value  any
	Reason string
}

func invalidParameter(name string, value any, reason string) error {
	return &ParameterError{Name: name, Value: value, Reason: reason}
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf("threshold: invalid parameter %s=%v: %s", e.Name, e.Value, e.Reason)
}

// Is reports whether target is [ErrInvalidParameter].
func (e *ParameterError) Is(target error) bool {
	return target == ErrInvalidParameter
}

func unsupportedImage(reason string) error {
	return fmt.Errorf("%w: %s", ErrUnsupportedImage, reason)
}

// SaveError reports that the image store failed to save one of the masks.
// Masks saved before the failure are not removed.
type SaveError struct {
	Band Band
	Err  error
}

func (e *SaveError) Error() string {
	return fmt.Sprintf("threshold: saving %s: %v", e.Band, e.Err)
}

func (e *SaveError) Unwrap() error {
	return e.Err
}
