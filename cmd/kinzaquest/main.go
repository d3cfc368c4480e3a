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
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"kinzaquest/internal/config"
	"kinzaquest/internal/crash"
	applog "kinzaquest/internal/log"
)

func main() {
	cfg, cfgErr := config.Load()
	applog.Init(applog.Options{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		AddSource: cfg.Logging.Source,
		File:      cfg.Logging.File,
	})
	l := applog.WithComponent("cli")
	if cfgErr != nil {
		l.Warn("config load failed, using defaults", slog.Any("err", cfgErr))
	}

	a := &app{cfg: cfg}
	saveDir, err := cfg.SaveDir()
	if err != nil {
		l.Warn("save dir unresolved", slog.Any("err", err))
	}
	code := func() int {
		defer crash.Recover(saveDir, a.flush)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := newRootCmd(a).ExecuteContext(ctx); err != nil {
			l.Debug("command failed", slog.Any("err", err))
			fmt.Fprintln(os.Stderr, "Error:", err)
			return 1
		}
		return 0
	}()
	os.Exit(code)
}
