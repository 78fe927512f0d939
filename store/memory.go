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
	"fmt"
	"image"
	"slices"
	"sync"

	"golang.org/x/exp/maps"

	"seehuhn.de/go/threshold"
)

// Record is an image held by a [Memory] store, together with the options it
// was saved with.
type Record struct {
	Image   image.Image
	Options threshold.SaveOptions
}

// Memory is an [threshold.ImageStore] which keeps all images in memory.
// Saved images get the names image-0001.png, image-0002.png, ... in order.
//
// The zero value is an empty store ready for use.
type Memory struct {
	mu      sync.Mutex
	records map[string]*Record
	seq     int
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{}
}

// Put stores img under the given name, replacing any previous image.
func (m *Memory) Put(name string, img image.Image, opts threshold.SaveOptions) threshold.ImageRef {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.records == nil {
		m.records = make(map[string]*Record)
	}
	m.records[name] = &Record{Image: img, Options: opts}
	return threshold.ImageRef{Name: name}
}

// Get implements [threshold.ImageStore].
func (m *Memory) Get(ctx context.Context, ref threshold.ImageRef, mode threshold.Mode) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rec, ok := m.Record(ref.Name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, ref.Name)
	}
	return convert(rec.Image, mode)
}

// Save implements [threshold.ImageStore].
func (m *Memory) Save(ctx context.Context, img image.Image, opts threshold.SaveOptions) (threshold.ImageRef, error) {
	if err := ctx.Err(); err != nil {
		return threshold.ImageRef{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.records == nil {
		m.records = make(map[string]*Record)
	}
	var name string
	for {
		m.seq++
		name = fmt.Sprintf("image-%04d.png", m.seq)
		if _, exists := m.records[name]; !exists {
			break
		}
	}
	m.records[name] = &Record{Image: img, Options: opts}
	return threshold.ImageRef{Name: name}, nil
}

// Record returns the record stored under name.
func (m *Memory) Record(name string) (*Record, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.records[name]
	return rec, ok
}

// Names returns the names of all stored images in sorted order.
func (m *Memory) Names() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	names := maps.Keys(m.records)
	slices.Sort(names)
	return names
}
