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

// NodeInfo describes a node type to a host which renders and validates the
// node's inputs.
type NodeInfo struct {
	Type        string      `yaml:"type" json:"type"`
	Title       string      `yaml:"title" json:"title"`
	Description string      `yaml:"description" json:"description"`
	Tags        []string    `yaml:"tags" json:"tags"`
	Version     string      `yaml:"version" json:"version"`
	Inputs      []FieldInfo `yaml:"inputs" json:"inputs"`
	OutputType  string      `yaml:"output_type" json:"output_type"`
	Outputs     []FieldInfo `yaml:"outputs" json:"outputs"`
}

// FieldInfo describes one input or output field of a node.
type FieldInfo struct {
	Name        string `yaml:"name" json:"name"`
	Type        string `yaml:"type" json:"type"` // "image", "int" or "float"
	Min         any    `yaml:"min,omitempty" json:"min,omitempty"`
	Max         any    `yaml:"max,omitempty" json:"max,omitempty"`
	Default     any    `yaml:"default,omitempty" json:"default,omitempty"`
	Required    bool   `yaml:"required,omitempty" json:"required,omitempty"`
	Description string `yaml:"description" json:"description"`
}

// Info describes the thresholding node.
var Info = NodeInfo{
	Type:        "thresholding",
	Title:       "Thresholding",
	Description: "Puts out 3 masks for a source image representing highlights, midtones, and shadows",
	Tags:        []string{"thresholding"},
	Version:     "1.0.0",
	Inputs: []FieldInfo{
		{Name: "image", Type: "image", Required: true, Description: "The source image"},
		{Name: "highlights_point", Type: "int", Min: 0, Max: 255, Default: DefaultHighlightsPoint, Description: "Highlight point"},
		{Name: "shadows_point", Type: "int", Min: 0, Max: 255, Default: DefaultShadowsPoint, Description: "Shadow point"},
		{Name: "lut_blur", Type: "float", Min: 0.0, Default: DefaultLUTBlur, Description: "LUT blur"},
	},
	OutputType: "thresholding_output",
	Outputs: []FieldInfo{
		{Name: Highlights.String(), Type: "image", Description: "Mask of the intensities above the highlight point"},
		{Name: Midtones.String(), Type: "image", Description: "Mask of the intensities between the two points"},
		{Name: Shadows.String(), Type: "image", Description: "Mask of the intensities up to the shadow point"},
	},
}
