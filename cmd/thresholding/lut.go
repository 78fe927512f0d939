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
	"io"

	"github.com/spf13/cobra"

	"seehuhn.de/go/threshold"
)

var lutCmd = &cobra.Command{
	Use:   "lut",
	Short: "Print the highlight, midtone and shadow lookup tables",
	RunE:  runLUT,
}

func init() {
	addParamFlags(lutCmd)
	lutCmd.Flags().Bool("changed", false, "Only print intensities with at least one value strictly between 0 and 255")
	rootCmd.AddCommand(lutCmd)
}

func runLUT(cmd *cobra.Command, args []string) error {
	params, err := paramsFromFlags(cmd)
	if err != nil {
		return err
	}
	onlyChanged, _ := cmd.Flags().GetBool("changed")

	writeLUTs(cmd.OutOrStdout(), params, onlyChanged)
	return nil
}

func writeLUTs(w io.Writer, p threshold.Params, onlyChanged bool) {
	var tables [3][256]uint8
	for i, b := range threshold.Bands {
		tables[i] = p.LUT(b).Table()
	}

	fmt.Fprintf(w, "%5s %10s %10s %10s\n", "p", "highlights", "midtones", "shadows")
	for v := range 256 {
		h, m, s := tables[0][v], tables[1][v], tables[2][v]
		if onlyChanged && isBinary(h) && isBinary(m) && isBinary(s) {
			continue
		}
		fmt.Fprintf(w, "%5d %10d %10d %10d\n", v, h, m, s)
	}
}

func isBinary(v uint8) bool {
	return v == 0 || v == 255
}
