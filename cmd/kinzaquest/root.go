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
	"strings"

	"github.com/spf13/cobra"

	"kinzaquest/internal/config"
	applog "kinzaquest/internal/log"
	"kinzaquest/internal/version"
)

// app carries the loaded configuration and the progress hook crash recovery calls.
type app struct {
	cfg config.AppConfig
	// saveHook persists progress of a running play session; nil otherwise.
	saveHook func() error
}

func (a *app) flush() error {
	if a.saveHook == nil {
		return nil
	}
	return a.saveHook()
}

func newRootCmd(a *app) *cobra.Command {
	var logLevel string
	root := &cobra.Command{
		Use:   "kinzaquest",
		Short: "Kinza Quest content tools",
		Long: `Kinza Quest reads the game's TOML content files and dialogue scripts.

It can dump parsed content, classify dialogue lines, play the event
story in the terminal and watch content files while they are edited.`,
		Version: version.String(),
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if strings.TrimSpace(logLevel) != "" {
				applog.SetLevel(logLevel)
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetVersionTemplate("{{.Name}} {{.Version}}\n")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "override log level (debug|info|warn|error)")
	_ = root.RegisterFlagCompletionFunc("log-level", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"debug", "info", "warn", "error"}, cobra.ShellCompDirectiveNoFileComp
	})

	root.AddCommand(newVersionCmd())
	root.AddCommand(newParseCmd())
	root.AddCommand(newClassifyCmd())
	root.AddCommand(newPlayCmd(a))
	root.AddCommand(newWatchCmd(a))
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display the Kinza Quest tools version and build commit.`,
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Kinza Quest %s\n", version.String())
		},
	}
}
