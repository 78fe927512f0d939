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
	"context"
	"fmt"
	"image"
	"maps"
)

// ImageRef refers to an image held by an [ImageStore].
type ImageRef struct {
	Name string `yaml:"image_name" json:"image_name"`
}

// Mode selects the pixel format returned by [ImageStore.Get].
type Mode int

// Supported modes.
const (
	// ModeOriginal returns the image as stored.
	ModeOriginal Mode = iota
	// ModeGray converts the image to 8-bit grayscale.
	ModeGray
)

func (m Mode) String() string {
	switch m {
	case ModeOriginal:
		return "original"
	case ModeGray:
		return "L"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Origin records whether an image was produced by a node or supplied from
// outside.
type Origin int

// Image origins.
const (
	OriginInternal Origin = iota
	OriginExternal
)

func (o Origin) String() string {
	switch o {
	case OriginInternal:
		return "internal"
	case OriginExternal:
		return "external"
	default:
		return fmt.Sprintf("Origin(%d)", int(o))
	}
}

// Category classifies stored images.
type Category int

// Image categories.
const (
	CategoryGeneral Category = iota
	CategoryMask
)

func (c Category) String() string {
	switch c {
	case CategoryGeneral:
		return "general"
	case CategoryMask:
		return "mask"
	default:
		return fmt.Sprintf("Category(%d)", int(c))
	}
}

// SaveOptions describes an image passed to [ImageStore.Save].
type SaveOptions struct {
	Origin       Origin         `json:"origin"`
	Category     Category       `json:"category"`
	NodeID       string         `json:"node_id,omitempty"`
	SessionID    string         `json:"session_id,omitempty"`
	Intermediate bool           `json:"is_intermediate"`
	Metadata     map[string]any `json:"metadata,omitempty"`
	Workflow     map[string]any `json:"workflow,omitempty"`
}

// ImageStore fetches and persists images on behalf of a [Node].
//
// Implementations must be safe for concurrent use.
type ImageStore interface {
	// Get returns the image referred to by ref, converted according to mode.
	Get(ctx context.Context, ref ImageRef, mode Mode) (image.Image, error)

	// Save stores img and returns a reference to it.
	Save(ctx context.Context, img image.Image, opts SaveOptions) (ImageRef, error)
}

// Node is one invocation of the thresholding operation.
type Node struct {
	ID    string   `yaml:"id" json:"id"`
	Image ImageRef `yaml:"image" json:"image"`

	Params `yaml:",inline"`

	// IsIntermediate marks the saved masks as intermediate results.
	IsIntermediate bool `yaml:"is_intermediate" json:"is_intermediate"`

	// Metadata is stored alongside each mask.
	Metadata map[string]any `yaml:"metadata,omitempty" json:"metadata,omitempty"`

	// Workflow is the host's workflow description, stored alongside each
	// mask.
	Workflow map[string]any `yaml:"workflow,omitempty" json:"workflow,omitempty"`
}

// Output holds the references to the saved masks.
type Output struct {
	HighlightsMask ImageRef `yaml:"highlights_mask" json:"highlights_mask"`
	MidtonesMask   ImageRef `yaml:"midtones_mask" json:"midtones_mask"`
	ShadowsMask    ImageRef `yaml:"shadows_mask" json:"shadows_mask"`
}

// Get returns the reference for band b.
func (o *Output) Get(b Band) ImageRef {
	switch b {
	case Highlights:
		return o.HighlightsMask
	case Midtones:
		return o.MidtonesMask
	case Shadows:
		return o.ShadowsMask
	default:
		return ImageRef{}
	}
}

func (o *Output) set(b Band, ref ImageRef) {
	switch b {
	case Highlights:
		o.HighlightsMask = ref
	case Midtones:
		o.MidtonesMask = ref
	case Shadows:
		o.ShadowsMask = ref
	}
}

// Invoke fetches the node's input image from st, computes the three masks
// and saves them to st in the order highlights, midtones, shadows.
//
// Invalid parameters are reported before st is accessed.  Errors from
// st.Get are returned as they are.  If saving a mask fails, Invoke returns a
// [*SaveError] which records the band and wraps the store's error, so that
// the store's error is still found by [errors.Is] and [errors.As]; masks
// saved earlier remain in the store.
func (n *Node) Invoke(ctx context.Context, st ImageStore, sessionID string) (*Output, error) {
	if err := n.Params.Validate(); err != nil {
		return nil, err
	}

	img, err := st.Get(ctx, n.Image, ModeGray)
	if err != nil {
		return nil, err
	}
	masks, err := Generate(img, n.Params)
	if err != nil {
		return nil, err
	}

	out := &Output{}
	for _, b := range Bands {
		opts := SaveOptions{
			Origin:       OriginInternal,
			Category:     CategoryMask,
			NodeID:       n.ID,
			SessionID:    sessionID,
			Intermediate: n.IsIntermediate,
			Metadata:     maps.Clone(n.Metadata),
			Workflow:     maps.Clone(n.Workflow),
		}
		ref, err := st.Save(ctx, masks.Get(b), opts)
		if err != nil {
			return nil, &SaveError{Band: b, Err: err}
		}
		out.set(b, ref)
	}
	return out, nil
}
