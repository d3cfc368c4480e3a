/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"kinzaquest/internal/tomlcfg"
)

func newParseCmd() *cobra.Command {
	var (
		format string
		strict bool
	)
	cmd := &cobra.Command{
		Use:   "parse <file.toml>",
		Short: "Parse a content file and print the result",
		Long: `Parse a TOML content file with the game's lenient parser and print the
resulting document. Lines the parser skipped are reported on stderr.`,
		Example: `  kinzaquest parse assets/config/events.toml
  kinzaquest parse --format json assets/world/layout.toml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, skips, err := tomlcfg.ParseFile(args[0])
			if err != nil {
				return err
			}
			if err := writeDocument(cmd.OutOrStdout(), format, doc); err != nil {
				return err
			}
			for _, s := range skips {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "skipped %s\n", s)
			}
			if strict && len(skips) > 0 {
				return fmt.Errorf("%s: %d line(s) skipped", args[0], len(skips))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "output format (yaml|json)")
	cmd.Flags().BoolVar(&strict, "strict", false, "fail when any line was skipped")
	_ = cmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"yaml", "json"}, cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}

func writeDocument(w io.Writer, format string, doc tomlcfg.Document) error {
	switch format {
	case "yaml", "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown format %q (want yaml or json)", format)
	}
}
