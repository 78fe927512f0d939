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

package store

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	"image/png"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/exp/maps"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp" // register WebP decoder

	"seehuhn.de/go/threshold"
)

// Dir is an [threshold.ImageStore] which keeps images as files in a
// directory.
//
// Get reads PNG, JPEG, GIF, BMP, TIFF and WebP files.  Save writes files in
// the format chosen by [Dir.SetFormat] (PNG by default) with random names,
// together with a JSON sidecar file (the image name plus ".json") holding the
// save options.
type Dir struct {
	root   string
	logger *logrus.Logger
	format Format
}

// Format is a file format which [Dir.Save] can write.
type Format int

// Supported output formats.
const (
	FormatPNG Format = iota
	FormatTIFF
	FormatBMP
)

// ParseFormat returns the format for a format name or file extension, for
// example "png", ".tif" or "BMP".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "png":
		return FormatPNG, nil
	case "tif", "tiff":
		return FormatTIFF, nil
	case "bmp":
		return FormatBMP, nil
	default:
		return 0, fmt.Errorf("store: unknown image format %q", s)
	}
}

func (f Format) String() string {
	switch f {
	case FormatPNG:
		return "png"
	case FormatTIFF:
		return "tiff"
	case FormatBMP:
		return "bmp"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

func (f Format) encode(w io.Writer, img image.Image) error {
	switch f {
	case FormatPNG:
		return png.Encode(w, img)
	case FormatTIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	case FormatBMP:
		return bmp.Encode(w, img)
	default:
		return fmt.Errorf("store: cannot encode %s", f)
	}
}

// NewDir returns a store for the directory root, creating the directory if
// needed.  If logger is nil, nothing is logged.
func NewDir(root string, logger *logrus.Logger) (*Dir, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("store: %w", err)
	}
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	return &Dir{root: root, logger: logger}, nil
}

// SetFormat selects the file format for images written by Save.
// It must not be called concurrently with Save.
func (d *Dir) SetFormat(f Format) {
	d.format = f
}

// Root returns the directory holding the images.
func (d *Dir) Root() string {
	return d.root
}

// Path returns the file name of the image referred to by ref.
func (d *Dir) Path(ref threshold.ImageRef) (string, error) {
	name := ref.Name
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, `/\`) || filepath.Base(name) != name {
		return "", fmt.Errorf("%w: %q", errInvalidName, name)
	}
	return filepath.Join(d.root, name), nil
}

// Get implements [threshold.ImageStore].
//
// A missing file gives an error wrapping [io/fs.ErrNotExist]; a file which
// cannot be decoded gives an error wrapping [threshold.ErrUnsupportedImage].
func (d *Dir) Get(ctx context.Context, ref threshold.ImageRef, mode threshold.Mode) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := d.Path(ref)
	if err != nil {
		return nil, err
	}
	d.logger.WithFields(logrus.Fields{"image": ref.Name, "mode": mode.String()}).Debug("loading image")

	img, err := decodeFile(path)
	if err != nil {
		return nil, err
	}
	res, err := convert(img, mode)
	if err != nil {
		return nil, err
	}

	b := res.Bounds()
	d.logger.WithFields(logrus.Fields{
		"image":  ref.Name,
		"width":  b.Dx(),
		"height": b.Dy(),
	}).Info("image loaded")
	return res, nil
}

// Save implements [threshold.ImageStore].
func (d *Dir) Save(ctx context.Context, img image.Image, opts threshold.SaveOptions) (threshold.ImageRef, error) {
	if err := ctx.Err(); err != nil {
		return threshold.ImageRef{}, err
	}
	if img == nil {
		return threshold.ImageRef{}, fmt.Errorf("store: cannot save %w", threshold.ErrUnsupportedImage)
	}

	format := d.format
	name, err := newName(format)
	if err != nil {
		return threshold.ImageRef{}, err
	}
	ref := threshold.ImageRef{Name: name}
	path := filepath.Join(d.root, name)

	err = writeAtomic(path, func(w io.Writer) error {
		return format.encode(w, img)
	})
	if err != nil {
		return threshold.ImageRef{}, err
	}
	err = writeAtomic(path+".json", func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(opts)
	})
	if err != nil {
		os.Remove(path)
		return threshold.ImageRef{}, err
	}

	b := img.Bounds()
	d.logger.WithFields(logrus.Fields{
		"image":    name,
		"width":    b.Dx(),
		"height":   b.Dy(),
		"format":   format.String(),
		"category": opts.Category.String(),
		"node":     opts.NodeID,
	}).Info("image saved")
	return ref, nil
}

// Options returns the save options recorded for ref.
func (d *Dir) Options(ref threshold.ImageRef) (threshold.SaveOptions, error) {
	var opts threshold.SaveOptions
	path, err := d.Path(ref)
	if err != nil {
		return opts, err
	}
	data, err := os.ReadFile(path + ".json")
	if err != nil {
		return opts, fmt.Errorf("store: %w", err)
	}
	if err := json.Unmarshal(data, &opts); err != nil {
		return opts, fmt.Errorf("store: %s: %w", ref.Name, err)
	}
	return opts, nil
}

// Names returns the names of all images in the store in sorted order.  Only
// files with a sidecar, as written by Save, are listed.
func (d *Dir) Names() ([]string, error) {
	entries, err := os.ReadDir(d.root)
	if err != nil {
		return nil, fmt.Errorf("store: %w", err)
	}
	files := make(map[string]bool, len(entries))
	for _, e := range entries {
		if e.Type().IsRegular() && !strings.HasPrefix(e.Name(), ".") {
			files[e.Name()] = true
		}
	}
	images := make(map[string]bool)
	for name := range files {
		if !strings.HasSuffix(name, ".json") && files[name+".json"] {
			images[name] = true
		}
	}
	names := maps.Keys(images)
	slices.Sort(names)
	return names, nil
}

// Import decodes the image file at path and adds it to the store as an
// external image.
func (d *Dir) Import(ctx context.Context, path string) (threshold.ImageRef, error) {
	img, err := decodeFile(path)
	if err != nil {
		return threshold.ImageRef{}, err
	}
	d.logger.WithField("file", path).Debug("importing image")
	return d.Save(ctx, img, threshold.SaveOptions{
		Origin:   threshold.OriginExternal,
		Category: threshold.CategoryGeneral,
	})
}

func decodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("store: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", threshold.ErrUnsupportedImage, filepath.Base(path), err)
	}
	return img, nil
}

func newName(f Format) (string, error) {
	var buf [16]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "", fmt.Errorf("store: %w", err)
	}
	return hex.EncodeToString(buf[:]) + "." + f.String(), nil
}

// writeAtomic writes a file via a temporary file in the same directory, so
// that readers never see partial content.  The file is created with mode
// 0644.
func writeAtomic(path string, write func(io.Writer) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return fmt.Errorf("store: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return fmt.Errorf("store: %w", err)
	}

	if err := write(tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("store: %s: %w", filepath.Base(path), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("store: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("store: %w", err)
	}
	return nil
}
