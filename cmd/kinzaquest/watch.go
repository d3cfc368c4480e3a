/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"kinzaquest/internal/game"
	"kinzaquest/internal/tomlcfg"
	"kinzaquest/internal/watch"
)

func newWatchCmd(a *app) *cobra.Command {
	var debounce time.Duration
	cmd := &cobra.Command{
		Use:   "watch [assets-dir]",
		Short: "Re-parse content files whenever they change",
		Long: `Watch an assets directory and re-parse every .toml file when it is saved,
reporting skipped lines. Stops on interrupt.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := a.cfg.Game.AssetsDir
			if len(args) == 1 {
				root = args[0]
			}
			return watchAssets(cmd.Context(), root, debounce, cmd.OutOrStdout())
		},
	}
	cmd.Flags().DurationVar(&debounce, "debounce", watch.DefaultDebounce, "quiet period before a change is reported")
	return cmd
}

func watchAssets(ctx context.Context, root string, debounce time.Duration, out io.Writer) error {
	for _, rel := range game.Files {
		report(out, root, filepath.Join(root, filepath.FromSlash(rel)))
	}
	w, err := watch.New(".toml", debounce, root)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "watching %s\n", root)
	return w.Run(ctx, func(c watch.Change) {
		if c.Removed {
			_, _ = fmt.Fprintf(out, "%s: removed\n", rel(root, c.Path))
			return
		}
		report(out, root, c.Path)
	})
}

func report(out io.Writer, root, path string) {
	name := rel(root, path)
	doc, skips, err := tomlcfg.ParseFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		_, _ = fmt.Fprintf(out, "%s: missing\n", name)
		return
	}
	if err != nil {
		_, _ = fmt.Fprintf(out, "%s: %v\n", name, err)
		return
	}
	if len(skips) == 0 {
		_, _ = fmt.Fprintf(out, "%s: ok (%d keys)\n", name, len(doc))
		return
	}
	_, _ = fmt.Fprintf(out, "%s: %d skipped\n", name, len(skips))
	for _, s := range skips {
		_, _ = fmt.Fprintf(out, "  %s\n", s)
	}
}

func rel(root, path string) string {
	if r, err := filepath.Rel(root, path); err == nil {
		return filepath.ToSlash(r)
	}
	return path
}
