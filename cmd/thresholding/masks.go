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
	"fmt"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"seehuhn.de/go/threshold"
	"seehuhn.de/go/threshold/store"
)

var masksCmd = &cobra.Command{
	Use:   "masks",
	Short: "Write highlight, midtone and shadow masks of an image",
	RunE:  runMasks,
}

func init() {
	masksCmd.Flags().StringP("input", "i", "", "Input image (PNG, JPEG, GIF, BMP, TIFF or WebP)")
	masksCmd.Flags().StringP("output", "o", "", "Output directory")
	masksCmd.Flags().StringP("format", "f", "png", "Mask file format (png, tiff or bmp)")
	masksCmd.Flags().String("node-id", "thresholding", "Node id recorded with the masks")
	masksCmd.Flags().String("session", "", "Session id recorded with the masks")
	masksCmd.Flags().Bool("intermediate", false, "Mark the masks as intermediate results")
	addParamFlags(masksCmd)
	masksCmd.MarkFlagRequired("input")
	masksCmd.MarkFlagRequired("output")
	rootCmd.AddCommand(masksCmd)
}

func runMasks(cmd *cobra.Command, args []string) error {
	inputPath, _ := cmd.Flags().GetString("input")
	outputDir, _ := cmd.Flags().GetString("output")
	formatName, _ := cmd.Flags().GetString("format")
	nodeID, _ := cmd.Flags().GetString("node-id")
	sessionID, _ := cmd.Flags().GetString("session")
	intermediate, _ := cmd.Flags().GetBool("intermediate")

	logger := newLogger(debugMode)

	params, err := paramsFromFlags(cmd)
	if err != nil {
		return err
	}

	format, err := store.ParseFormat(formatName)
	if err != nil {
		return err
	}
	st, err := store.NewDir(outputDir, logger)
	if err != nil {
		return err
	}
	st.SetFormat(format)

	ctx := cmd.Context()
	src, err := st.Import(ctx, inputPath)
	if err != nil {
		return fmt.Errorf("importing input: %w", err)
	}

	node := &threshold.Node{
		ID:             nodeID,
		Image:          src,
		Params:         params,
		IsIntermediate: intermediate,
		Metadata: map[string]any{
			"source": filepath.Base(inputPath),
		},
	}

	start := time.Now()
	out, err := node.Invoke(ctx, st, sessionID)
	if err != nil {
		return err
	}
	logger.WithFields(logrus.Fields{
		"node":             nodeID,
		"highlights_point": params.HighlightsPoint,
		"shadows_point":    params.ShadowsPoint,
		"lut_blur":         params.LUTBlur,
		"duration":         time.Since(start).String(),
	}).Info("masks generated")

	for _, b := range threshold.Bands {
		fmt.Fprintf(cmd.OutOrStdout(), "%-16s %s\n", b, filepath.Join(st.Root(), out.Get(b).Name))
	}
	return nil
}
