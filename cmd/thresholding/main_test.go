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
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/pflag"

	"seehuhn.de/go/threshold"
)

// execute runs the command line tool with the given arguments, starting from
// the default flag values, and returns its standard output.
func execute(t *testing.T, args ...string) string {
	t.Helper()
	for _, c := range rootCmd.Commands() {
		c.Flags().VisitAll(func(f *pflag.Flag) {
			f.Value.Set(f.DefValue)
			f.Changed = false
		})
	}
	var stdout bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("%v: %v", args, err)
	}
	return stdout.String()
}

// lutRows maps the intensities printed by the lut command to their rows.
func lutRows(out string) map[string][]string {
	rows := make(map[string][]string)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	for _, line := range lines[1:] {
		fields := strings.Fields(line)
		rows[fields[0]] = fields[1:]
	}
	return rows
}

func TestParseParams(t *testing.T) {
	tests := []struct {
		in   string
		want threshold.Params
	}{
		{"", threshold.DefaultParams()},
		{"lut_blur: 1.5\n", threshold.Params{HighlightsPoint: 170, ShadowsPoint: 85, LUTBlur: 1.5}},
		{"highlights_point: 200\nshadows_point: 20\n", threshold.Params{HighlightsPoint: 200, ShadowsPoint: 20}},
	}
	for _, tt := range tests {
		got, err := parseParams([]byte(tt.in))
		if err != nil {
			t.Errorf("%q: %v", tt.in, err)
			continue
		}
		if d := cmp.Diff(tt.want, got); d != "" {
			t.Errorf("%q: mismatch (-want +got):\n%s", tt.in, d)
		}
	}

	if _, err := parseParams([]byte("blur: 3\n")); err == nil {
		t.Error("unknown key accepted")
	}
}

func TestWriteLUTs(t *testing.T) {
	var buf bytes.Buffer
	writeLUTs(&buf, threshold.DefaultParams(), false)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 257 {
		t.Fatalf("got %d lines, want 257", len(lines))
	}
	if got := strings.Fields(lines[1+170]); !cmp.Equal(got, []string{"170", "0", "255", "0"}) {
		t.Errorf("row 170 = %v", got)
	}

	// without blur no entry is graduated
	buf.Reset()
	writeLUTs(&buf, threshold.DefaultParams(), true)
	if n := strings.Count(buf.String(), "\n"); n != 1 {
		t.Errorf("got %d lines with -changed and no blur, want header only", n)
	}
}

func TestCommands(t *testing.T) {
	config := filepath.Join(t.TempDir(), "params.yaml")
	err := os.WriteFile(config, []byte("highlights_point: 200\nshadows_point: 20\n"), 0o644)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		args  []string
		check func(t *testing.T, out string)
	}{
		{
			name: "config file with flag override",
			args: []string{"lut", "--config", config, "--shadows", "40"},
			check: func(t *testing.T, out string) {
				rows := lutRows(out)
				want := map[string][]string{
					"30":  {"0", "0", "255"},
					"41":  {"0", "255", "0"},
					"200": {"0", "255", "0"},
					"201": {"255", "0", "0"},
				}
				for p, w := range want {
					if d := cmp.Diff(w, rows[p]); d != "" {
						t.Errorf("row %s mismatch (-want +got):\n%s", p, d)
					}
				}
			},
		},
		{
			name: "changed rows with blur",
			args: []string{"lut", "--changed", "--lut-blur", "2"},
			check: func(t *testing.T, out string) {
				rows := lutRows(out)
				for _, p := range []string{"85", "170"} {
					if _, ok := rows[p]; !ok {
						t.Errorf("row %s missing", p)
					}
				}
				for p, values := range rows {
					graduated := false
					for _, v := range values {
						if v != "0" && v != "255" {
							graduated = true
						}
					}
					if !graduated {
						t.Errorf("row %s has only binary values %v", p, values)
					}
				}
			},
		},
		{
			name: "info",
			args: []string{"info"},
			check: func(t *testing.T, out string) {
				for _, s := range []string{
					"type: thresholding\n",
					"version: 1.0.0\n",
					"output_type: thresholding_output\n",
					"name: midtones_mask\n",
					"default: 170\n",
				} {
					if !strings.Contains(out, s) {
						t.Errorf("output lacks %q:\n%s", s, out)
					}
				}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, execute(t, tt.args...))
		})
	}
}

func TestMasksCommand(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")
	img := image.NewGray(image.Rect(0, 0, 2, 2))
	copy(img.Pix, []uint8{0, 85, 170, 255})
	f, err := os.Create(in)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	out := filepath.Join(dir, "out")
	stdout := execute(t, "masks", "-i", in, "-o", out, "--session", "s")

	want := map[string][]uint8{
		"highlights_mask": {0, 0, 0, 255},
		"midtones_mask":   {0, 0, 255, 0},
		"shadows_mask":    {255, 255, 0, 0},
	}
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	if len(lines) != 3 {
		t.Fatalf("unexpected output %q", stdout)
	}
	for _, line := range lines {
		fields := strings.Fields(line)
		r, err := os.Open(fields[1])
		if err != nil {
			t.Fatal(err)
		}
		mask, err := png.Decode(r)
		r.Close()
		if err != nil {
			t.Fatal(err)
		}
		if d := cmp.Diff(want[fields[0]], mask.(*image.Gray).Pix); d != "" {
			t.Errorf("%s mismatch (-want +got):\n%s", fields[0], d)
		}
	}
}
