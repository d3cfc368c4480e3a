/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"kinzaquest/internal/effect"
	"kinzaquest/internal/game"
	"kinzaquest/internal/script"
	"kinzaquest/internal/tomlcfg"
)

func newClassifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classify <file>",
		Short: "Classify dialogue lines as speech or effect",
		Long: `Classify every dialogue line of a plain script (one line per line) or of
the [[events]] in an events.toml file, and print one result per line.`,
		Example: `  kinzaquest classify intro.txt
  kinzaquest classify assets/config/events.toml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			out := cmd.OutOrStdout()
			if strings.EqualFold(filepath.Ext(path), ".toml") {
				doc, _, err := tomlcfg.ParseFile(path)
				if err != nil {
					return err
				}
				for i, ev := range game.BuildEvents(doc) {
					_, _ = fmt.Fprintf(out, "# event %d (%d,%d) %s\n", i, ev.X, ev.Y, ev.Emoji)
					for n, l := range ev.Dialogue {
						writeLine(out, n+1, l)
					}
				}
				return nil
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}
			for _, l := range script.ParseText(string(data)) {
				writeLine(out, l.LineNo, l)
			}
			return nil
		},
	}
}

func writeLine(w io.Writer, n int, l script.Line) {
	if l.IsEffect() {
		_, _ = fmt.Fprintf(w, "%4d  effect  %s\n", n, describeDirective(*l.Effect))
		return
	}
	speaker := l.Speaker
	if speaker == "" {
		speaker = "-"
	}
	_, _ = fmt.Fprintf(w, "%4d  speech  %s | %s\n", n, speaker, l.Message)
}

// describeDirective renders targets, duration and fields in a stable order.
func describeDirective(d effect.Directive) string {
	places := make([]string, 0, len(d.Targets))
	for _, t := range d.Targets {
		p := t.Place
		var opts []string
		if t.Scale != nil {
			opts = append(opts, "scale="+formatFloat(*t.Scale))
		}
		if t.X != nil {
			opts = append(opts, "x="+formatFloat(*t.X))
		}
		if t.Y != nil {
			opts = append(opts, "y="+formatFloat(*t.Y))
		}
		if len(opts) > 0 {
			p += "(" + strings.Join(opts, ",") + ")"
		}
		places = append(places, p)
	}
	parts := []string{"in=" + strings.Join(places, ";"), "duration=" + formatFloat(d.Duration)}
	keys := make([]string, 0, len(d.Fields))
	for k := range d.Fields {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		parts = append(parts, k+"="+d.Fields[k])
	}
	return strings.Join(parts, " ")
}

func formatFloat(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }
