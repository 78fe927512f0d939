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

package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"seehuhn.de/go/threshold"
)

// addParamFlags registers the flags shared by all commands which compute
// lookup tables.
func addParamFlags(cmd *cobra.Command) {
	cmd.Flags().String("config", "", "YAML file with highlights_point, shadows_point and lut_blur")
	cmd.Flags().Int("highlights", threshold.DefaultHighlightsPoint, "Highlight point (0-255)")
	cmd.Flags().Int("shadows", threshold.DefaultShadowsPoint, "Shadow point (0-255)")
	cmd.Flags().Float64("lut-blur", threshold.DefaultLUTBlur, "Standard deviation of the LUT blur (>= 0)")
}

// paramsFromFlags starts from the defaults, applies the config file if one
// is given and then any flags set on the command line.
func paramsFromFlags(cmd *cobra.Command) (threshold.Params, error) {
	p := threshold.DefaultParams()

	configPath, _ := cmd.Flags().GetString("config")
	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return p, fmt.Errorf("reading config: %w", err)
		}
		p, err = parseParams(data)
		if err != nil {
			return p, fmt.Errorf("%s: %w", configPath, err)
		}
	}

	if cmd.Flags().Changed("highlights") {
		p.HighlightsPoint, _ = cmd.Flags().GetInt("highlights")
	}
	if cmd.Flags().Changed("shadows") {
		p.ShadowsPoint, _ = cmd.Flags().GetInt("shadows")
	}
	if cmd.Flags().Changed("lut-blur") {
		p.LUTBlur, _ = cmd.Flags().GetFloat64("lut-blur")
	}

	return p, p.Validate()
}

// parseParams decodes YAML parameters.  Missing keys keep their default
// values and unknown keys are rejected.
func parseParams(data []byte) (threshold.Params, error) {
	p := threshold.DefaultParams()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil && !errors.Is(err, io.EOF) {
		return p, err
	}
	return p, nil
}
